// Package llmtest provides scripted chat clients for tests.
package llmtest

import (
	"context"
	"fmt"
	"time"

	"github.com/plankit/plankit/internal/llm"
)

// Step is one scripted Chat outcome: a raw reply to decode, or an error.
type Step struct {
	Reply string
	Err   error
}

// Reply builds a successful step from raw response text.
func Reply(text string) Step { return Step{Reply: text} }

// Fail builds a failing step.
func Fail(err error) Step { return Step{Err: err} }

// ScriptedClient replays a fixed sequence of steps and records every call it
// receives. Running past the end of the script is an error.
type ScriptedClient struct {
	name  string
	steps []Step
	next  int

	// Calls holds the messages of each Chat invocation, in order.
	Calls [][]llm.Message
}

// NewScripted builds a client that replays steps in order.
func NewScripted(name string, steps ...Step) *ScriptedClient {
	return &ScriptedClient{name: name, steps: steps}
}

func (c *ScriptedClient) Name() string      { return c.name }
func (c *ScriptedClient) ClassName() string { return "Scripted" }

// Chat pops the next scripted step. Successful replies are decoded into out
// the same way real backends decode them.
func (c *ScriptedClient) Chat(_ context.Context, messages []llm.Message, out any) (*llm.ChatResponse, error) {
	c.Calls = append(c.Calls, messages)
	if c.next >= len(c.steps) {
		return nil, fmt.Errorf("scripted client %q exhausted after %d calls", c.name, len(c.steps))
	}
	step := c.steps[c.next]
	c.next++
	if step.Err != nil {
		return nil, step.Err
	}
	if err := llm.DecodeStrict(step.Reply, out); err != nil {
		return nil, err
	}
	return &llm.ChatResponse{
		Text:       step.Reply,
		Duration:   time.Millisecond,
		ByteCount:  len(step.Reply),
		TokenCount: llm.CountTokens(step.Reply),
	}, nil
}
