package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/googleai"
	lcOpenai "github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"

	"github.com/prashantgupta17/mqlpromql/config"
	"github.com/prashantgupta17/mqlpromql/converter"
	"github.com/prashantgupta17/mqlpromql/langchain"
	"github.com/prashantgupta17/mqlpromql/metrics"
	"github.com/prashantgupta17/mqlpromql/prompts"
	"github.com/prashantgupta17/mqlpromql/server"
)

const defaultModelName = "googleai/gemini-2.0-pro-exp-02-05"

func main() {
	mode := flag.String("mode", "server", "Mode of operation: 'server' or 'chat'")
	port := flag.String("port", "8080", "Port for the HTTP server (server mode only)")
	llmModelNameFlag := flag.String("llm_model_name", defaultModelName, "The identifier for the LangChainGo LLM model to use (e.g., 'googleai/gemini-2.0-pro-exp-02-05', 'openai/gpt-4o', 'anthropic/claude-3-5-sonnet-latest').")
	googleAPIKeyFlag := flag.String("google_api_key", "", "Google AI API key. Overrides GOOGLE_API_KEY environment variable.")
	openaiAPIKeyFlag := flag.String("openai_api_key", "", "OpenAI API key. Overrides OPENAI_API_KEY environment variable.")
	anthropicAPIKeyFlag := flag.String("anthropic_api_key", "", "Anthropic API key. Overrides ANTHROPIC_API_KEY environment variable.")
	systemPromptFileFlag := flag.String("system_prompt_file", "", "Optional file overriding the built-in system prompt; reloaded on change.")
	convertPromptFileFlag := flag.String("convert_prompt_file", "", "Optional file overriding the built-in convert prompt; must keep one %s query slot; reloaded on change.")

	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// API key resolution (flag > env)
	cfg := config.Config{
		Mode:              *mode,
		Port:              *port,
		ModelName:         *llmModelNameFlag,
		GoogleAPIKey:      resolveKey(*googleAPIKeyFlag, "GOOGLE_API_KEY"),
		OpenAIAPIKey:      resolveKey(*openaiAPIKeyFlag, "OPENAI_API_KEY"),
		AnthropicAPIKey:   resolveKey(*anthropicAPIKeyFlag, "ANTHROPIC_API_KEY"),
		SystemPromptFile:  *systemPromptFileFlag,
		ConvertPromptFile: *convertPromptFileFlag,
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	model, err := newLLMModel(cfg)
	if err != nil {
		logger.Fatal("Error initializing LLM model", zap.String("model", cfg.ModelName), zap.Error(err))
	}
	logger.Info("Initialized LLM model", zap.String("model", cfg.ModelName))

	store := prompts.NewStore()
	if err := reloadPrompts(cfg, store); err != nil {
		logger.Fatal("Error loading prompts", zap.Error(err))
	}
	if cfg.SystemPromptFile != "" || cfg.ConvertPromptFile != "" {
		watcher, err := config.WatchPrompts(
			[]string{cfg.SystemPromptFile, cfg.ConvertPromptFile},
			func() {
				if err := reloadPrompts(cfg, store); err != nil {
					logger.Warn("Keeping previous prompts after failed reload", zap.Error(err))
					return
				}
				logger.Info("Reloaded prompt overrides")
			},
			logger,
		)
		if err != nil {
			logger.Fatal("Error watching prompt files", zap.Error(err))
		}
		defer watcher.Close()
	}

	client := langchain.NewClient(model, store)

	switch cfg.Mode {
	case config.ModeServer:
		runServer(cfg, client, logger)
	case config.ModeChat:
		runChatMode(converter.New(client))
	default:
		logger.Fatal("Invalid mode", zap.String("mode", cfg.Mode))
	}
}

// resolveKey prefers the flag value over the environment variable.
func resolveKey(flagValue, envVar string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(envVar)
}

// newLLMModel builds the LangChainGo model named by the configuration.
func newLLMModel(cfg config.Config) (llms.Model, error) {
	modelID := cfg.ModelID()
	switch cfg.Provider() {
	case config.ProviderGoogleAI:
		// MQL payloads can trip safety filters, so harm blocking is off.
		return googleai.New(context.Background(),
			googleai.WithAPIKey(cfg.GoogleAPIKey),
			googleai.WithDefaultModel(modelID),
			googleai.WithHarmThreshold(googleai.HarmBlockNone),
		)
	case config.ProviderOpenAI:
		return lcOpenai.New(lcOpenai.WithToken(cfg.OpenAIAPIKey), lcOpenai.WithModel(modelID))
	case config.ProviderAnthropic:
		return anthropic.New(anthropic.WithToken(cfg.AnthropicAPIKey), anthropic.WithModel(modelID))
	default:
		return nil, fmt.Errorf("unsupported LLM model name: %s", cfg.ModelName)
	}
}

func reloadPrompts(cfg config.Config, store *prompts.Store) error {
	systemPrompt, convertPrompt, err := config.LoadPrompts(cfg.SystemPromptFile, cfg.ConvertPromptFile)
	if err != nil {
		return err
	}
	store.Update(systemPrompt, convertPrompt)
	return nil
}

func runServer(cfg config.Config, client *langchain.Client, logger *zap.Logger) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	srv := server.New(client, cfg.ModelName, metrics.New(registry), registry, logger)
	if err := srv.Start(cfg.Port); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("Shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}
}

// runChatMode reads MQL queries from stdin and prints their PromQL
// translations. A query may span several lines; a blank line submits it.
func runChatMode(conv *converter.Converter) {
	fmt.Println("Enter an MQL query across one or more lines; submit with a blank line. Type 'exit' to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	var lines []string
	for {
		if len(lines) == 0 {
			fmt.Print("mql> ")
		} else {
			fmt.Print("...> ")
		}

		if !scanner.Scan() {
			if len(lines) > 0 {
				fmt.Println()
				convertAndPrint(conv, strings.Join(lines, "\n"))
			}
			return
		}
		line := scanner.Text()

		if len(lines) == 0 && strings.TrimSpace(line) == "exit" {
			return
		}
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
			continue
		}
		if len(lines) == 0 {
			continue
		}

		convertAndPrint(conv, strings.Join(lines, "\n"))
		lines = nil
	}
}

func convertAndPrint(conv *converter.Converter, query string) {
	outcome := conv.Convert(context.Background(), query)

	switch outcome.Status {
	case converter.StatusValidationFailed:
		fmt.Println("Validation errors:")
		for _, e := range outcome.Errors {
			fmt.Println(" -", e)
		}
	case converter.StatusTranslationFailed:
		fmt.Fprintln(os.Stderr, "Conversion failed:", outcome.FailureMessage)
	default:
		fmt.Println(outcome.PromQL)
	}
	for _, warning := range outcome.Warnings {
		fmt.Println("Warning:", warning)
	}
}
