package screens

import (
	"context"
	"strings"

	"github.com/jonathan/jobpilot/internal/store"
	"github.com/jonathan/jobpilot/internal/types"
)

const (
	// WelcomeMessage opens every new conversation.
	WelcomeMessage = "Olá! Sou seu assistente de carreira, atuando como um especialista de RH. Estou aqui para ajudar você a se destacar. Pergunte-me sobre como se portar em entrevistas, preencher formulários, ou se preparar para testes profissionais."
	// ErrorReply is appended when the advisor fails to answer.
	ErrorReply = "Desculpe, encontrei um erro. Por favor, tente novamente."
)

// CreativeStudio is the career advisor chat.
type CreativeStudio struct {
	env     Env
	sending Action
}

// NewCreativeStudio creates the chat controller.
func NewCreativeStudio(env Env) *CreativeStudio {
	return &CreativeStudio{env: env.withDefaults()}
}

func welcome() []types.ChatMessage {
	return []types.ChatMessage{{Role: types.RoleModel, Text: WelcomeMessage}}
}

// Messages returns the conversation, starting with the welcome message.
func (c *CreativeStudio) Messages(ctx context.Context) []types.ChatMessage {
	msgs := store.Get(ctx, c.env.Store, store.KeyChatMessages, []types.ChatMessage{})
	if len(msgs) == 0 {
		return welcome()
	}
	return msgs
}

// Send appends the user's message and the advisor's reply. When the advisor
// fails, an apology is appended instead and the error is returned.
func (c *CreativeStudio) Send(ctx context.Context, text string) (types.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return types.ChatMessage{}, invalid("text", "Digite uma mensagem.")
	}

	var reply types.ChatMessage
	err := c.sending.Run(func() error {
		msgs := append(c.Messages(ctx), types.ChatMessage{Role: types.RoleUser, Text: text})
		if err := store.Set(ctx, c.env.Store, store.KeyChatMessages, msgs); err != nil {
			return err
		}

		answer, chatErr := c.env.Generator.Chat(ctx, msgs)
		if chatErr != nil {
			reply = types.ChatMessage{Role: types.RoleModel, Text: ErrorReply}
		} else {
			reply = types.ChatMessage{Role: types.RoleModel, Text: answer.Text, Sources: answer.Sources}
		}

		if err := store.Set(ctx, c.env.Store, store.KeyChatMessages, append(msgs, reply)); err != nil {
			return err
		}
		return chatErr
	})
	return reply, err
}

// Status reports the send action.
func (c *CreativeStudio) Status() Status {
	return c.sending.Status()
}

// Reset clears the conversation.
func (c *CreativeStudio) Reset(ctx context.Context) error {
	return c.env.Store.Remove(ctx, store.KeyChatMessages)
}
