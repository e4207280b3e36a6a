// Package config holds the resolved runtime settings and the prompt
// override machinery (loading plus hot reload).
package config

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Operation modes.
const (
	ModeServer = "server"
	ModeChat   = "chat"
)

// Supported LLM providers (the prefix part of a model name).
const (
	ProviderGoogleAI  = "googleai"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Config carries the settings resolved from flags and environment in main.
type Config struct {
	Mode string
	Port string

	// ModelName is provider-qualified, e.g. "googleai/gemini-2.0-pro-exp-02-05".
	ModelName string

	GoogleAPIKey    string
	OpenAIAPIKey    string
	AnthropicAPIKey string

	// Optional prompt override files; empty means built-in defaults.
	SystemPromptFile  string
	ConvertPromptFile string
}

// Provider returns the provider prefix of ModelName.
func (c Config) Provider() string {
	provider, _, _ := strings.Cut(c.ModelName, "/")
	return provider
}

// ModelID returns the model part of ModelName.
func (c Config) ModelID() string {
	_, id, _ := strings.Cut(c.ModelName, "/")
	return id
}

// Validate checks the configuration before any component is wired up.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Mode, validation.Required, validation.In(ModeServer, ModeChat)),
		validation.Field(&c.Port, validation.When(c.Mode == ModeServer, validation.Required, is.Port)),
		validation.Field(&c.ModelName, validation.Required, validation.By(checkModelName)),
		validation.Field(&c.GoogleAPIKey, validation.When(c.Provider() == ProviderGoogleAI,
			validation.Required.Error("API key is required for googleai models"))),
		validation.Field(&c.OpenAIAPIKey, validation.When(c.Provider() == ProviderOpenAI,
			validation.Required.Error("API key is required for openai models"))),
		validation.Field(&c.AnthropicAPIKey, validation.When(c.Provider() == ProviderAnthropic,
			validation.Required.Error("API key is required for anthropic models"))),
	)
}

func checkModelName(value any) error {
	name, _ := value.(string)
	provider, modelID, found := strings.Cut(name, "/")
	if !found || provider == "" || modelID == "" {
		return validation.NewError("config_model_name_format",
			"must be of the form provider/model-id, e.g. googleai/gemini-2.0-pro-exp-02-05")
	}
	switch provider {
	case ProviderGoogleAI, ProviderOpenAI, ProviderAnthropic:
		return nil
	default:
		return validation.NewError("config_model_name_provider",
			"unsupported provider (want googleai, openai or anthropic)")
	}
}
