// Package report defines the metadata attached to generated planning
// artifacts and helpers for writing them to disk.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"

	"github.com/plankit/plankit/internal/llm"
)

// CallMetadata describes one model call that contributed to an artifact.
type CallMetadata struct {
	Model              string `json:"model"`
	ClassName          string `json:"llm_classname"`
	DurationSeconds    int    `json:"duration"`
	ResponseByteCount  int    `json:"response_byte_count"`
	ResponseTokenCount int    `json:"response_token_count"`
}

// Call builds metadata from a chat response. Durations are rounded up so a
// sub-second call never reports zero.
func Call(model, className string, resp *llm.ChatResponse) CallMetadata {
	cm := CallMetadata{Model: model, ClassName: className}
	if resp == nil {
		return cm
	}
	seconds := int(resp.Duration / time.Second)
	if resp.Duration%time.Second > 0 {
		seconds++
	}
	cm.DurationSeconds = seconds
	cm.ResponseByteCount = resp.ByteCount
	cm.ResponseTokenCount = resp.TokenCount
	return cm
}

// RunMetadata aggregates the calls of a multi-turn run.
type RunMetadata struct {
	Models            []CallMetadata `json:"models"`
	ResponseByteCount int            `json:"response_byte_count"`
}

// Run aggregates per-call metadata and totals the response sizes.
func Run(calls []CallMetadata) RunMetadata {
	rm := RunMetadata{Models: calls}
	for _, c := range calls {
		rm.ResponseByteCount += c.ResponseByteCount
	}
	return rm
}

// SaveJSON writes v as indented JSON, creating parent directories.
func SaveJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	return save(path, append(data, '\n'))
}

// SaveText writes content as-is, creating parent directories. A trailing
// newline is added when missing.
func SaveText(path, content string) error {
	if len(content) == 0 || content[len(content)-1] != '\n' {
		content += "\n"
	}
	return save(path, []byte(content))
}

func save(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}
