// Package langchain implements the llm.QueryTranslator interface using
// LangChainGo, so any of its chat models (Google AI, OpenAI, Anthropic)
// can serve as the translation backend.
package langchain

import (
	"context"
	"fmt"
	"strings"
	"sync"

	tiktoken "github.com/pkoukk/tiktoken-go"
	"github.com/tmc/langchaingo/llms"

	"github.com/prashantgupta17/mqlpromql/llm"
	"github.com/prashantgupta17/mqlpromql/prompts"
)

// Generation settings applied to every translation call.
const (
	callTemperature = 0.2
	callTopP        = 0.90
	callTopK        = 30
	callMaxTokens   = 8192
)

// tokenEncoding is the tiktoken encoding used for prompt size estimates.
const tokenEncoding = "cl100k_base"

// Client translates MQL queries to PromQL through a LangChainGo model.
type Client struct {
	model   llms.Model
	prompts *prompts.Store

	encoderOnce sync.Once
	encoder     *tiktoken.Tiktoken
}

// NewClient creates a Client around the given model. Prompt texts are read
// from store on every call, so runtime prompt reloads take effect without
// rebuilding the client.
func NewClient(model llms.Model, store *prompts.Store) *Client {
	return &Client{
		model:   model,
		prompts: store,
	}
}

// TranslateQuery sends the raw MQL text to the model and returns the
// translated PromQL. All failures come back as *llm.TranslationError.
func (c *Client) TranslateQuery(ctx context.Context, mqlQuery string) (string, error) {
	if c.model == nil {
		return "", &llm.TranslationError{Reason: "LangChain LLM model is not initialized"}
	}

	systemPrompt, userPrompt := c.buildPrompts(mqlQuery)
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, userPrompt),
	}

	resp, err := c.model.GenerateContent(ctx, messages,
		llms.WithTemperature(callTemperature),
		llms.WithTopP(callTopP),
		llms.WithTopK(callTopK),
		llms.WithMaxTokens(callMaxTokens),
	)
	if err != nil {
		return "", &llm.TranslationError{Reason: "LangChain LLM GenerateContent call failed", Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &llm.TranslationError{Reason: "LLM returned no choices"}
	}

	promql := strings.TrimSpace(resp.Choices[0].Content)
	if promql == "" {
		return "", &llm.TranslationError{Reason: "LLM returned an empty translation"}
	}
	return promql, nil
}

// EstimatePromptTokens returns the approximate token count of the full
// prompt (system instruction plus user prompt) for the given query. It
// returns 0 when the encoding is unavailable.
func (c *Client) EstimatePromptTokens(mqlQuery string) int {
	c.encoderOnce.Do(func() {
		enc, err := tiktoken.GetEncoding(tokenEncoding)
		if err != nil {
			return
		}
		c.encoder = enc
	})
	if c.encoder == nil {
		return 0
	}

	systemPrompt, userPrompt := c.buildPrompts(mqlQuery)
	return len(c.encoder.Encode(systemPrompt, nil, nil)) + len(c.encoder.Encode(userPrompt, nil, nil))
}

func (c *Client) buildPrompts(mqlQuery string) (systemPrompt, userPrompt string) {
	systemPrompt, convertPrompt := c.prompts.Current()
	return systemPrompt, fmt.Sprintf(convertPrompt, mqlQuery)
}

// Ensure Client implements the llm interfaces.
var (
	_ llm.QueryTranslator = (*Client)(nil)
	_ llm.TokenEstimator  = (*Client)(nil)
)
