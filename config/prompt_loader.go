package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/prashantgupta17/mqlpromql/prompts"
)

// LoadPrompts returns the system and convert prompt texts, preferring the
// override files when they exist and falling back to the built-in defaults.
// A convert override must keep exactly one %s slot for the MQL query.
func LoadPrompts(systemPromptFile, convertPromptFile string) (string, string, error) {
	systemPrompt, err := loadPromptFromFile(systemPromptFile)
	if err != nil {
		return "", "", fmt.Errorf("error loading system prompt: %w", err)
	}
	if systemPrompt == "" {
		systemPrompt = prompts.SystemPrompt
	}

	convertPrompt, err := loadPromptFromFile(convertPromptFile)
	if err != nil {
		return "", "", fmt.Errorf("error loading convert prompt: %w", err)
	}
	if convertPrompt == "" {
		convertPrompt = prompts.ConvertPrompt
	} else if strings.Count(convertPrompt, "%s") != 1 {
		return "", "", fmt.Errorf("convert prompt override %s must contain exactly one %%s query slot", convertPromptFile)
	}

	return systemPrompt, convertPrompt, nil
}

// loadPromptFromFile loads a prompt from the specified file path.
// If the path is empty or the file doesn't exist, it returns an empty string.
func loadPromptFromFile(filePath string) (string, error) {
	if filePath == "" {
		return "", nil
	}
	if _, err := os.Stat(filePath); err != nil {
		return "", nil
	}
	content, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("error reading prompt file: %w", err)
	}
	return string(content), nil
}
