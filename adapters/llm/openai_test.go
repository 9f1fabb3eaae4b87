package llm

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap/zaptest"

	"github.com/notavoz/notavoz/domain/repositories"
)

type fakeChatAPI struct {
	gotRequest openai.ChatCompletionRequest
	resp       openai.ChatCompletionResponse
	err        error
}

func (f *fakeChatAPI) CreateChatCompletion(_ context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.gotRequest = request
	return f.resp, f.err
}

func TestGenerate(t *testing.T) {
	api := &fakeChatAPI{
		resp: openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: "  resumo do texto  "}},
			},
		},
	}
	g := &OpenAIGenerator{api: api, logger: zaptest.NewLogger(t), model: openaiModel}

	got, err := g.Generate(context.Background(), repositories.GenerationRequest{
		System:      "assistente",
		Prompt:      "resuma isto",
		Temperature: 0.2,
		MaxTokens:   1500,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "resumo do texto" {
		t.Errorf("Generate() = %q, want trimmed completion", got)
	}

	req := api.gotRequest
	if req.Model != "gpt-4o-mini" {
		t.Errorf("Model = %q, want gpt-4o-mini", req.Model)
	}
	if req.Temperature != 0.2 {
		t.Errorf("Temperature = %v, want 0.2", req.Temperature)
	}
	if req.MaxTokens != 1500 {
		t.Errorf("MaxTokens = %d, want 1500", req.MaxTokens)
	}
	if len(req.Messages) != 2 || req.Messages[0].Role != openai.ChatMessageRoleSystem || req.Messages[1].Role != openai.ChatMessageRoleUser {
		t.Errorf("Messages = %+v, want system then user", req.Messages)
	}
}

func TestGenerateAPIError(t *testing.T) {
	api := &fakeChatAPI{err: errors.New("boom")}
	g := &OpenAIGenerator{api: api, logger: zaptest.NewLogger(t), model: openaiModel}

	if _, err := g.Generate(context.Background(), repositories.GenerationRequest{Prompt: "x"}); err == nil {
		t.Fatal("Generate() succeeded despite API error")
	}
}

func TestGenerateEmptyCompletion(t *testing.T) {
	api := &fakeChatAPI{
		resp: openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: "   "}},
			},
		},
	}
	g := &OpenAIGenerator{api: api, logger: zaptest.NewLogger(t), model: openaiModel}

	if _, err := g.Generate(context.Background(), repositories.GenerationRequest{Prompt: "x"}); err == nil {
		t.Fatal("Generate() accepted an empty completion")
	}
}

func TestGenerateNoChoices(t *testing.T) {
	api := &fakeChatAPI{resp: openai.ChatCompletionResponse{}}
	g := &OpenAIGenerator{api: api, logger: zaptest.NewLogger(t), model: openaiModel}

	if _, err := g.Generate(context.Background(), repositories.GenerationRequest{Prompt: "x"}); err == nil {
		t.Fatal("Generate() accepted a response without choices")
	}
}
