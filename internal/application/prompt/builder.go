// Package prompt assembles the few-shot conversation sent for every query.
package prompt

import (
	"strings"

	"github.com/doeshing/askcmd/internal/domain"
)

// The exemplar turn steers the model toward answering with a bare command.
const (
	SystemInstruction = "You are bash command generator. Only return the command."
	ExampleQuestion   = "How to list contents of a directory in bash?"
	ExampleAnswer     = "ls"
)

// Build returns system instruction, one example exchange and the trimmed query, in that order.
func Build(userQuery string) []domain.ConversationMessage {
	return []domain.ConversationMessage{
		{Role: domain.RoleSystem, Content: SystemInstruction},
		{Role: domain.RoleUser, Content: ExampleQuestion},
		{Role: domain.RoleAssistant, Content: ExampleAnswer},
		{Role: domain.RoleUser, Content: strings.TrimSpace(userQuery)},
	}
}
