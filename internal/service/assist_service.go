package service

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"barangayconnect/api/internal/config"
)

const draftSystemPrompt = "You are a professional HOA announcement writer. " +
	"Create clear, friendly, and professional announcements for homeowners association members."

// AssistService drafts announcement text with the external text-generation
// service.
type AssistService struct {
	client *openai.Client
	model  string
}

func NewAssistService(cfg config.AssistConfig) *AssistService {
	return &AssistService{
		client: openai.NewClient(cfg.OpenAIKey),
		model:  cfg.Model,
	}
}

func (s *AssistService) DraftAnnouncement(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: draftSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: "Create a professional HOA announcement about: " + prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("draft announcement: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("draft announcement: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}
