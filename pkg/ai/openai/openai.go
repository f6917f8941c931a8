package openai

import (
	"sync"

	"github.com/OFFIS-RIT/storyboard/backend/pkg/ai"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// GraphOpenAIClient talks to an OpenAI compatible chat completion endpoint.
// It is used for relationship suggestions and other story analysis prompts.
//
// A GraphOpenAIClient should be created using NewGraphOpenAIClient.
type GraphOpenAIClient struct {
	describeModel string
	extractModel  string

	chatURL string

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics

	ChatClient *openai.Client
}

// NewGraphOpenAIClientParams defines the configuration parameters for creating
// a new GraphOpenAIClient.
//
// DescribeModel is used for free text completions, ExtractModel for
// structured output. ChatURL may be empty to use the OpenAI default endpoint.
type NewGraphOpenAIClientParams struct {
	DescribeModel string
	ExtractModel  string

	ChatURL string
	ChatKey string
}

// NewGraphOpenAIClient creates a new client. The chat client is nil when no
// key is configured; calls then fail with ErrNotConfigured.
//
// Example:
//
//	client := openai.NewGraphOpenAIClient(openai.NewGraphOpenAIClientParams{
//		DescribeModel: "gpt-4o-mini",
//		ExtractModel:  "gpt-4o-mini",
//		ChatKey:       os.Getenv("AI_CHAT_KEY"),
//	})
func NewGraphOpenAIClient(params NewGraphOpenAIClientParams) *GraphOpenAIClient {
	extractModel := params.ExtractModel
	if extractModel == "" {
		extractModel = params.DescribeModel
	}
	return &GraphOpenAIClient{
		describeModel: params.DescribeModel,
		extractModel:  extractModel,
		chatURL:       params.ChatURL,
		metricsLock:   sync.Mutex{},
		ChatClient:    newOpenaiClient(params.ChatURL, params.ChatKey),
	}
}

func newOpenaiClient(
	baseURL string,
	apiKey string,
) *openai.Client {
	if apiKey == "" {
		return nil
	}
	options := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}

	if baseURL != "" {
		options = append(options, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(options...)

	return &client
}
