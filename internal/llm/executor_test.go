package llm_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/plankit/plankit/internal/llm"
	"github.com/plankit/plankit/internal/llm/llmtest"
)

type ExecutorSuite struct {
	suite.Suite
}

func TestExecutorSuite(t *testing.T) {
	suite.Run(t, new(ExecutorSuite))
}

func (s *ExecutorSuite) chat(client llm.Client) error {
	var out map[string]string
	_, err := client.Chat(context.Background(), []llm.Message{llm.User("go")}, &out)
	return err
}

func (s *ExecutorSuite) TestEmptyFallbackList() {
	_, err := llm.NewExecutor(nil, nil)
	s.Require().Error(err)
}

func (s *ExecutorSuite) TestFirstClientSucceeds() {
	primary := llmtest.NewScripted("primary", llmtest.Reply(`{"ok":"yes"}`))
	secondary := llmtest.NewScripted("secondary", llmtest.Reply(`{"ok":"yes"}`))
	exec, err := llm.NewExecutor([]llm.Client{primary, secondary}, nil)
	s.Require().NoError(err)

	s.Require().NoError(exec.Run(s.chat))
	s.Len(primary.Calls, 1)
	s.Empty(secondary.Calls, "fallback must not run when the primary succeeds")
}

func (s *ExecutorSuite) TestFallsBackOnFailure() {
	primary := llmtest.NewScripted("primary", llmtest.Fail(errors.New("rate limited")))
	secondary := llmtest.NewScripted("secondary", llmtest.Reply(`{"ok":"yes"}`))
	exec, err := llm.NewExecutor([]llm.Client{primary, secondary}, nil)
	s.Require().NoError(err)

	s.Require().NoError(exec.Run(s.chat))
	s.Len(primary.Calls, 1)
	s.Len(secondary.Calls, 1)
}

func (s *ExecutorSuite) TestAllClientsFail() {
	primary := llmtest.NewScripted("primary", llmtest.Fail(errors.New("down")))
	secondary := llmtest.NewScripted("secondary", llmtest.Fail(errors.New("also down")))
	exec, err := llm.NewExecutor([]llm.Client{primary, secondary}, nil)
	s.Require().NoError(err)

	err = exec.Run(s.chat)
	s.Require().Error(err)
	s.Contains(err.Error(), "all 2 models failed")
	s.Contains(err.Error(), "primary")
	s.Contains(err.Error(), "secondary")
}

func (s *ExecutorSuite) TestStopRequestedNeverFallsBack() {
	primary := llmtest.NewScripted("primary",
		llmtest.Fail(fmt.Errorf("between turns: %w", llm.ErrStopRequested)))
	secondary := llmtest.NewScripted("secondary", llmtest.Reply(`{"ok":"yes"}`))
	exec, err := llm.NewExecutor([]llm.Client{primary, secondary}, nil)
	s.Require().NoError(err)

	err = exec.Run(s.chat)
	s.Require().ErrorIs(err, llm.ErrStopRequested)
	s.Empty(secondary.Calls, "a stop signal must not trigger fallback")
}

func (s *ExecutorSuite) TestStopFuncCheckedBeforeAttempt() {
	primary := llmtest.NewScripted("primary", llmtest.Reply(`{"ok":"yes"}`))
	exec, err := llm.NewExecutor([]llm.Client{primary}, func() bool { return true })
	s.Require().NoError(err)

	err = exec.Run(s.chat)
	s.Require().ErrorIs(err, llm.ErrStopRequested)
	s.Empty(primary.Calls)
}

func (s *ExecutorSuite) TestStopFuncCheckedBetweenAttempts() {
	stopped := false
	primary := llmtest.NewScripted("primary", llmtest.Fail(errors.New("down")))
	secondary := llmtest.NewScripted("secondary", llmtest.Reply(`{"ok":"yes"}`))
	exec, err := llm.NewExecutor([]llm.Client{primary, secondary}, func() bool { return stopped })
	s.Require().NoError(err)

	err = exec.Run(func(client llm.Client) error {
		stopped = true
		return s.chat(client)
	})
	s.Require().ErrorIs(err, llm.ErrStopRequested)
	s.Empty(secondary.Calls)
}
