package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrNoImage is returned when an image edit response carries no image part.
var ErrNoImage = errors.New("no image in response")

// Role tags a turn of a conversation sent to the model.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one turn of a conversation.
type Message struct {
	Role Role
	Text string
}

// ChatRequest is a multi-turn request. The last message must come from the user.
type ChatRequest struct {
	System  string
	History []Message
	Tier    ModelTier
}

// ChatResponse is the model's reply plus any citation URIs it reported.
type ChatResponse struct {
	Text      string
	Citations []string
}

// Image is an inline image payload.
type Image struct {
	MIMEType string
	Data     []byte
}

// Client is an abstraction over LLM providers
type Client interface {
	// GenerateContent generates free text using the specified model tier
	GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// GenerateJSON generates JSON, constrained to schema when one is given
	GenerateJSON(ctx context.Context, prompt string, schema *Schema, tier ModelTier) (string, error)
	// Chat continues a conversation under a system instruction
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
	// EditImage sends an image with an instruction and returns the edited image
	EditImage(ctx context.Context, instruction string, img Image, tier ModelTier) (*Image, error)
	// GetModel returns the underlying provider model for a tier
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini, "":
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", config.Provider)
	}
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

func (c *GeminiClient) model(tier ModelTier) (*genai.GenerativeModel, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return nil, fmt.Errorf("no model configured for tier %s", tier)
	}

	model := c.client.GenerativeModel(modelName)
	if c.config.Temperature > 0 {
		model.SetTemperature(c.config.Temperature)
	}
	return model, nil
}

// GenerateContent generates text content using the specified model tier
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	model, err := c.model(tier)
	if err != nil {
		return "", err
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return extractTextFromResponse(resp)
}

// GenerateJSON generates JSON content using the specified model tier
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, schema *Schema, tier ModelTier) (string, error) {
	model, err := c.model(tier)
	if err != nil {
		return "", err
	}
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = schema.Genai()

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", err
	}

	return CleanJSONBlock(text), nil
}

// Chat sends the last user message with the earlier turns as session history
func (c *GeminiClient) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if len(req.History) == 0 {
		return nil, fmt.Errorf("chat history is empty")
	}
	last := req.History[len(req.History)-1]
	if last.Role != RoleUser {
		return nil, fmt.Errorf("last chat message must come from the user, got %q", last.Role)
	}

	model, err := c.model(req.Tier)
	if err != nil {
		return nil, err
	}
	if req.System != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.System)}}
	}

	session := model.StartChat()
	session.History = toContents(req.History[:len(req.History)-1])

	resp, err := session.SendMessage(ctx, genai.Text(last.Text))
	if err != nil {
		return nil, fmt.Errorf("failed to send chat message: %w", err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return nil, err
	}
	return &ChatResponse{Text: text, Citations: extractCitations(resp)}, nil
}

// EditImage sends the image inline with the instruction
func (c *GeminiClient) EditImage(ctx context.Context, instruction string, img Image, tier ModelTier) (*Image, error) {
	if len(img.Data) == 0 {
		return nil, fmt.Errorf("image is empty")
	}

	model, err := c.model(tier)
	if err != nil {
		return nil, err
	}

	resp, err := model.GenerateContent(ctx,
		genai.Blob{MIMEType: img.MIMEType, Data: img.Data},
		genai.Text(instruction),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to edit image: %w", err)
	}

	return extractImageFromResponse(resp)
}

// GetModel returns the model name for a tier
func (c *GeminiClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// toContents maps conversation turns onto provider contents. Consecutive turns
// from the same role are merged, since the provider expects them to alternate.
func toContents(history []Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		if msg.Text == "" {
			continue
		}
		role := string(msg.Role)
		if n := len(contents); n > 0 && contents[n-1].Role == role {
			contents[n-1].Parts = append(contents[n-1].Parts, genai.Text(msg.Text))
			continue
		}
		contents = append(contents, &genai.Content{Role: role, Parts: []genai.Part{genai.Text(msg.Text)}})
	}
	return contents
}
