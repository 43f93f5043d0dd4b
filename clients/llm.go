package clients

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/maastricht-university/edmo-transcript/config"
)

const correctionPrompt = `Limpe e corrija a transcrição abaixo:

- Corrija concordância e gramática
- Retire vícios de fala ("né", "tá", "enfim") apenas se não afetar o sentido
- Mantenha o sentido original
- NÃO resuma
- Melhore fluidez e clareza
- Mantenha termos técnicos (pitch, MVP, Storytelling, etc.)

Texto:
%s

Texto corrigido:`

// openAIClientInterface is the part of the OpenAI client used here, so tests
// can substitute it.
type openAIClientInterface interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// LLMCorrector rewrites text through an OpenAI compatible chat completion
// endpoint.
type LLMCorrector struct {
	config       *config.LLM
	openaiClient openAIClientInterface
}

func NewLLMCorrector(cfg *config.LLM) *LLMCorrector {
	openaiConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		openaiConfig.BaseURL = cfg.BaseURL
	}
	return &LLMCorrector{config: cfg, openaiClient: openai.NewClientWithConfig(openaiConfig)}
}

func (c *LLMCorrector) maxTokens(text string) int {
	if c.config.MaxTokens > 0 {
		return c.config.MaxTokens
	}
	// the reply is about as long as the input
	return max(64, len(strings.Fields(text))*2)
}

func (c *LLMCorrector) Correct(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	req := openai.ChatCompletionRequest{
		Model: c.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(correctionPrompt, text)},
		},
		Temperature: 0.3,
		MaxTokens:   c.maxTokens(text),
	}
	resp, err := c.openaiClient.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("llm correction: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("llm correction: no choices returned")
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	content = strings.TrimPrefix(content, "```text")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)
	if content == "" {
		return "", errors.New("llm correction: empty reply")
	}
	return content, nil
}
