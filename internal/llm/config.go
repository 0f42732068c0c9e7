// Package llm wraps the hosted generative model behind a small client interface
// with named model tiers, so callers choose a capability level instead of a model id.
package llm

import "fmt"

// ModelTier is the capability level a call asks for.
type ModelTier string

const (
	// TierLite is for short, cheap tasks
	TierLite ModelTier = "lite"
	// TierStandard is for text generation and structured output
	TierStandard ModelTier = "standard"
	// TierAdvanced is for the advisor chat
	TierAdvanced ModelTier = "advanced"
	// TierImage is for image-in, image-out edits
	TierImage ModelTier = "image"
)

// Provider names the hosted model vendor.
type Provider string

// ProviderGemini is the Google Gemini provider
const ProviderGemini Provider = "gemini"

// textFallbacks is the order in which text tiers borrow an unset model.
// TierImage never borrows: a text model cannot return pixels.
var textFallbacks = []ModelTier{TierStandard, TierLite, TierAdvanced}

// Models maps each tier to a model id. Empty fields are unset.
type Models struct {
	Lite     string `mapstructure:"lite"`
	Standard string `mapstructure:"standard"`
	Advanced string `mapstructure:"advanced"`
	Image    string `mapstructure:"image"`
}

// For returns the model configured for tier without fallback.
func (m Models) For(tier ModelTier) string {
	switch tier {
	case TierLite:
		return m.Lite
	case TierStandard:
		return m.Standard
	case TierAdvanced:
		return m.Advanced
	case TierImage:
		return m.Image
	}
	return ""
}

// merge returns m with every non-empty field of o applied on top.
func (m Models) merge(o Models) Models {
	pick := func(base, over string) string {
		if over != "" {
			return over
		}
		return base
	}
	return Models{
		Lite:     pick(m.Lite, o.Lite),
		Standard: pick(m.Standard, o.Standard),
		Advanced: pick(m.Advanced, o.Advanced),
		Image:    pick(m.Image, o.Image),
	}
}

// Config selects the provider, models and sampling temperature.
type Config struct {
	Provider    Provider
	Models      Models
	Temperature float32
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the Gemini models the app ships with.
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: Models{
			Lite:     "gemini-2.5-flash-lite",
			Standard: "gemini-2.5-flash",
			Advanced: "gemini-2.5-pro",
			Image:    "gemini-2.5-flash-image-preview",
		},
		Temperature: 0.7,
	}
}

// GetModel resolves tier to a model id. Unset text tiers fall back to
// standard, then lite, then advanced; an unset image tier resolves to "".
func (c *Config) GetModel(tier ModelTier) string {
	if model := c.Models.For(tier); model != "" {
		return model
	}
	if tier == TierImage {
		return ""
	}
	for _, t := range textFallbacks {
		if model := c.Models.For(t); model != "" {
			return model
		}
	}
	return ""
}

// WithModels returns a copy of c where the non-empty fields of overrides win.
func (c *Config) WithModels(overrides Models) *Config {
	out := *c
	out.Models = c.Models.merge(overrides)
	return &out
}

// Validate checks that at least one text model is set and the temperature is
// within the range Gemini accepts.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderGemini, "":
	default:
		return fmt.Errorf("unsupported LLM provider %q", c.Provider)
	}
	if c.GetModel(TierStandard) == "" {
		return fmt.Errorf("no text model configured")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature %.2f out of range [0, 2]", c.Temperature)
	}
	return nil
}
