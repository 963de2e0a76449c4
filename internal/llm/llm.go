// Package llm provides the model boundary for plankit: role-tagged chat
// messages, a schema-constrained chat client interface, a registry that
// resolves configuration names to clients, and an executor that runs a unit
// of work against a prioritized list of backends.
package llm

import (
	"context"
	"time"
)

// Role tags a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single role-tagged conversation turn.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// System returns a system message.
func System(content string) Message { return Message{Role: RoleSystem, Content: content} }

// User returns a user message.
func User(content string) Message { return Message{Role: RoleUser, Content: content} }

// Assistant returns an assistant message.
func Assistant(content string) Message { return Message{Role: RoleAssistant, Content: content} }

// ChatResponse carries the raw model output plus per-call accounting.
type ChatResponse struct {
	// Text is the raw message content returned by the backend.
	Text string
	// Duration is the wall-clock time of the call.
	Duration time.Duration
	// ByteCount is len(Text) in bytes.
	ByteCount int
	// TokenCount is the tokenizer-estimated size of Text, 0 if unknown.
	TokenCount int
}

// Client is the abstract "chat with a structured schema" capability every
// feature depends on. Given role-tagged messages and a pointer to a target
// schema value, Chat must return a response whose Text decodes into out.
// Implementations must not retry internally; fallback across backends is the
// executor's job.
type Client interface {
	// Name is the configuration name this client was resolved from.
	Name() string
	// ClassName identifies the backend implementation, e.g. "OpenAICompatible".
	ClassName() string
	// Chat sends messages and decodes the structured response into out.
	Chat(ctx context.Context, messages []Message, out any) (*ChatResponse, error)
}
