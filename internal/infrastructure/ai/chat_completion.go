package ai

import (
	"strings"

	"github.com/doeshing/askcmd/internal/domain"
)

type chatCompletionRequest struct {
	Model    string                       `json:"model"`
	Messages []domain.ConversationMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message domain.ConversationMessage `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *apiError) String() string {
	if e == nil {
		return ""
	}
	parts := make([]string, 0, 2)
	if e.Type != "" {
		parts = append(parts, e.Type)
	}
	if e.Message != "" {
		parts = append(parts, e.Message)
	}
	return strings.Join(parts, ": ")
}

// FirstMessage returns the first choice's content and whether one exists.
func (c chatCompletionResponse) FirstMessage() (string, bool) {
	if len(c.Choices) == 0 {
		return "", false
	}
	return c.Choices[0].Message.Content, true
}
