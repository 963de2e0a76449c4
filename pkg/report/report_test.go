package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/suite"

	"github.com/plankit/plankit/internal/llm"
)

type ReportSuite struct {
	suite.Suite
	dir string
}

func (s *ReportSuite) SetupTest() {
	s.dir = s.T().TempDir()
}

func TestReportSuite(t *testing.T) {
	suite.Run(t, new(ReportSuite))
}

func (s *ReportSuite) TestCallRoundsDurationUp() {
	resp := &llm.ChatResponse{
		Text:       "x",
		Duration:   1200 * time.Millisecond,
		ByteCount:  1,
		TokenCount: 1,
	}
	cm := Call("fast", "OpenAICompatible", resp)
	s.Equal(2, cm.DurationSeconds)
	s.Equal("fast", cm.Model)
	s.Equal("OpenAICompatible", cm.ClassName)
}

func (s *ReportSuite) TestCallExactSecondNotRounded() {
	cm := Call("fast", "OpenAICompatible", &llm.ChatResponse{Duration: 3 * time.Second})
	s.Equal(3, cm.DurationSeconds)
}

func (s *ReportSuite) TestCallNilResponse() {
	cm := Call("fast", "OpenAICompatible", nil)
	s.Equal(0, cm.DurationSeconds)
}

func (s *ReportSuite) TestRunTotalsBytes() {
	rm := Run([]CallMetadata{
		{Model: "a", ResponseByteCount: 10},
		{Model: "b", ResponseByteCount: 32},
	})
	s.Equal(42, rm.ResponseByteCount)
	s.Len(rm.Models, 2)
}

func (s *ReportSuite) TestSaveJSON() {
	path := filepath.Join(s.dir, "nested", "run.json")
	s.Require().NoError(SaveJSON(path, map[string]int{"answer": 42}))

	data, err := os.ReadFile(path)
	s.Require().NoError(err)
	var got map[string]int
	s.Require().NoError(json.Unmarshal(data, &got))
	s.Equal(42, got["answer"])
}

func (s *ReportSuite) TestSaveTextAddsTrailingNewline() {
	path := filepath.Join(s.dir, "doc.md")
	s.Require().NoError(SaveText(path, "# Title"))

	data, err := os.ReadFile(path)
	s.Require().NoError(err)
	s.Equal("# Title\n", string(data))
}
