// Package domain defines core business entities and value objects for askcmd.
//
// This file contains the chat message types exchanged with the completion
// endpoint. The domain layer is independent of infrastructure concerns and
// represents pure business logic and data structures.
package domain

// Role labels a message in a chat completion conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationMessage follows the role/content pair required by chat completion APIs.
// Messages are built per request and never persisted.
type ConversationMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
