// Package activity appends one JSONL record per model call, for auditing
// runs after the fact. Secrets are redacted before anything hits disk.
package activity

import (
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/plankit/plankit/internal/llm"
)

// Record is one line of the activity log.
type Record struct {
	Timestamp          time.Time `json:"timestamp"`
	Model              string    `json:"model"`
	ClassName          string    `json:"llm_classname"`
	DurationMS         int64     `json:"duration_ms"`
	ResponseByteCount  int       `json:"response_byte_count,omitempty"`
	ResponseTokenCount int       `json:"response_token_count,omitempty"`
	UserPrompt         string    `json:"user_prompt,omitempty"`
	Error              string    `json:"error,omitempty"`
}

var (
	keyPattern    = regexp.MustCompile(`(?i)("(?:api[_-]?key|authorization)"\s*:\s*")[^"]*(")`)
	bearerPattern = regexp.MustCompile(`(?i)(bearer\s+)\S+`)
)

// Redact replaces API key and bearer token values with a placeholder.
func Redact(s string) string {
	s = keyPattern.ReplaceAllString(s, "${1}REDACTED${2}")
	return bearerPattern.ReplaceAllString(s, "${1}REDACTED")
}

// Tracker serializes records to a writer, one JSON object per line.
type Tracker struct {
	mu sync.Mutex
	w  io.Writer
}

// NewTracker writes records to w.
func NewTracker(w io.Writer) *Tracker { return &Tracker{w: w} }

// Open creates a tracker appending to path, creating the file if needed.
// The returned closer owns the file handle.
func Open(path string) (*Tracker, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening activity log: %w", err)
	}
	return NewTracker(f), f, nil
}

// Append writes one record.
func (t *Tracker) Append(rec Record) error {
	rec.UserPrompt = Redact(rec.UserPrompt)
	rec.Error = Redact(rec.Error)
	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding activity record: %w", err)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := t.w.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("writing activity record: %w", err)
	}
	return nil
}

// Wrap decorates a client so every Chat call is recorded. Tracking failures
// never fail the call itself.
func (t *Tracker) Wrap(client llm.Client) llm.Client {
	return &trackedClient{inner: client, tracker: t}
}

type trackedClient struct {
	inner   llm.Client
	tracker *Tracker
}

func (c *trackedClient) Name() string      { return c.inner.Name() }
func (c *trackedClient) ClassName() string { return c.inner.ClassName() }

func (c *trackedClient) Chat(ctx context.Context, messages []llm.Message, out any) (*llm.ChatResponse, error) {
	start := time.Now()
	resp, err := c.inner.Chat(ctx, messages, out)

	rec := Record{
		Timestamp:  start.UTC(),
		Model:      c.inner.Name(),
		ClassName:  c.inner.ClassName(),
		DurationMS: time.Since(start).Milliseconds(),
		UserPrompt: lastUserContent(messages),
	}
	if resp != nil {
		rec.DurationMS = resp.Duration.Milliseconds()
		rec.ResponseByteCount = resp.ByteCount
		rec.ResponseTokenCount = resp.TokenCount
	}
	if err != nil {
		rec.Error = err.Error()
	}
	_ = c.tracker.Append(rec)
	return resp, err
}

func lastUserContent(messages []llm.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == llm.RoleUser {
			return messages[i].Content
		}
	}
	return ""
}
