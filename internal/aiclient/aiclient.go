// Package aiclient builds the configured AI client from the environment.
package aiclient

import (
	"github.com/OFFIS-RIT/storyboard/backend/internal/util"
	"github.com/OFFIS-RIT/storyboard/backend/pkg/ai"
	oai "github.com/OFFIS-RIT/storyboard/backend/pkg/ai/ollama"
	gai "github.com/OFFIS-RIT/storyboard/backend/pkg/ai/openai"
	"github.com/OFFIS-RIT/storyboard/backend/pkg/relation"
)

// FromEnv creates the client selected by AI_ADAPTER ("openai" or "ollama").
func FromEnv() (ai.GraphAIClient, error) {
	switch util.GetEnv("AI_ADAPTER") {
	case "ollama":
		return oai.NewGraphOllamaClient(oai.NewGraphOllamaClientParams{
			DescriptionModel: util.GetEnv("AI_CHAT_DESCRIBE_MODEL"),
			ExtractionModel:  util.GetEnv("AI_CHAT_EXTRACT_MODEL"),

			BaseURL: util.GetEnv("AI_CHAT_URL"),
			ApiKey:  util.GetEnv("AI_CHAT_KEY"),

			MaxConcurrentRequests: int64(util.GetEnvNumeric("AI_PARALLEL_REQ", 15)),
		})
	default:
		return gai.NewGraphOpenAIClient(gai.NewGraphOpenAIClientParams{
			DescribeModel: util.GetEnv("AI_CHAT_DESCRIBE_MODEL"),
			ExtractModel:  util.GetEnv("AI_CHAT_EXTRACT_MODEL"),

			ChatURL: util.GetEnv("AI_CHAT_URL"),
			ChatKey: util.GetEnv("AI_CHAT_KEY"),
		}), nil
	}
}

// SuggesterOptionsFromEnv reads the prompt budget and retry settings of the
// relationship suggester.
func SuggesterOptionsFromEnv() relation.AISuggesterOptions {
	return relation.AISuggesterOptions{
		MaxPromptTokens: util.GetEnvInt("AI_MAX_PROMPT_TOKENS", 6000),
		MaxRetries:      util.GetEnvInt("AI_MAX_RETRIES", 2),
		Temperature:     util.GetEnvNumeric("AI_TEMPERATURE", 0),
	}
}
