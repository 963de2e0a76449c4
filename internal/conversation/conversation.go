// Package conversation runs a fixed sequence of user prompts as one
// multi-turn chat, decoding each reply into the same structured type.
//
// Each successful reply is re-serialized as compact JSON and appended to the
// history as an assistant turn, so later prompts can refer back to earlier
// structured output. The first turn must succeed; a later turn that fails is
// logged and skipped, leaving no trace in the history, and the run continues.
package conversation

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/plankit/plankit/internal/llm"
)

// Turn is the structured result of one prompt in the sequence.
type Turn[T any] struct {
	// Index is the zero-based position of the prompt that produced this turn.
	Index int
	// Response is the decoded structured reply.
	Response T
	// Raw carries the per-call accounting of the attempt that succeeded.
	Raw *llm.ChatResponse
	// Model is the name of the model that produced the reply.
	Model string
	// ClassName identifies the backend implementation that produced the reply.
	ClassName string
}

// Run executes userPrompts in order against exec. The stop signal is checked
// between turns; when it fires, the turns completed so far are returned
// together with llm.ErrStopRequested.
func Run[T any](ctx context.Context, exec *llm.Executor, systemPrompt string, userPrompts []string) ([]Turn[T], error) {
	if len(userPrompts) == 0 {
		return nil, errors.New("conversation needs at least one user prompt")
	}

	history := []llm.Message{llm.System(systemPrompt)}

	var turns []Turn[T]
	for i, prompt := range userPrompts {
		if i > 0 && exec.ShouldStop() {
			return turns, llm.ErrStopRequested
		}
		// The prompt joins history only if the turn succeeds; the capped
		// slice keeps the failed copy from sharing history's backing array.
		messages := append(history[:len(history):len(history)], llm.User(prompt))

		var (
			out       T
			raw       *llm.ChatResponse
			model     string
			className string
		)
		err := exec.Run(func(client llm.Client) error {
			var attempt T
			resp, err := client.Chat(ctx, messages, &attempt)
			if err != nil {
				return err
			}
			out, raw = attempt, resp
			model, className = client.Name(), client.ClassName()
			return nil
		})
		if err != nil {
			if errors.Is(err, llm.ErrStopRequested) {
				return turns, err
			}
			if i == 0 {
				return nil, fmt.Errorf("turn 1 of %d failed: %w", len(userPrompts), err)
			}
			log.Warn().
				Int("turn", i+1).
				Int("turns", len(userPrompts)).
				Err(err).
				Msg("turn failed, continuing without it")
			continue
		}

		compact, err := json.Marshal(out)
		if err != nil {
			return nil, fmt.Errorf("serializing turn %d response: %w", i+1, err)
		}
		history = append(messages, llm.Assistant(string(compact)))
		turns = append(turns, Turn[T]{
			Index:     i,
			Response:  out,
			Raw:       raw,
			Model:     model,
			ClassName: className,
		})
	}
	return turns, nil
}
