package advice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mellowlog/core/internal/pkg/completion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubClient struct {
	responses []stubResponse
	calls     int
}

type stubResponse struct {
	text string
	err  error
}

func (s *stubClient) Complete(_ context.Context, _ completion.Request) (string, error) {
	idx := s.calls
	if idx >= len(s.responses) {
		idx = len(s.responses) - 1
	}
	s.calls++
	r := s.responses[idx]
	return r.text, r.err
}

func (s *stubClient) Model() string { return "stub" }

func newTestGenerator(stub *stubClient) *Generator {
	g := NewGenerator(stub, zap.NewNop())
	g.interval = time.Millisecond
	return g
}

func TestGenerateReturnsFiveItems(t *testing.T) {
	stub := &stubClient{responses: []stubResponse{
		{text: `{"advice":["Go for a walk.","Call a friend.","Drink water.","Rest early.","Write it down."]}`},
	}}
	items := newTestGenerator(stub).Generate(context.Background(), "long day", "sad")

	require.Len(t, items, AdviceCount)
	assert.Equal(t, "Go for a walk.", items[0])
	assert.Equal(t, 1, stub.calls)
}

func TestGenerateWrongCountFallsBack(t *testing.T) {
	stub := &stubClient{responses: []stubResponse{
		{text: `{"advice":["Only one suggestion."]}`},
	}}
	items := newTestGenerator(stub).Generate(context.Background(), "long day", "")

	assert.Equal(t, DefaultAdvice, items)
	assert.Equal(t, 1, stub.calls)
}

func TestGenerateMalformedFallsBackWithoutRetry(t *testing.T) {
	stub := &stubClient{responses: []stubResponse{
		{text: "here are some thoughts for you"},
	}}
	items := newTestGenerator(stub).Generate(context.Background(), "long day", "anger")

	assert.Equal(t, DefaultAdvice, items)
	assert.Equal(t, 1, stub.calls)
}

func TestGenerateRetriesTransientThenSucceeds(t *testing.T) {
	stub := &stubClient{responses: []stubResponse{
		{err: errors.Join(completion.ErrTransient, errors.New("overloaded"))},
		{text: `{"advice":["a","b","c","d","e"]}`},
	}}
	items := newTestGenerator(stub).Generate(context.Background(), "long day", "fear")

	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, items)
	assert.Equal(t, 2, stub.calls)
}

func TestGenerateExhaustedRetriesFallBack(t *testing.T) {
	stub := &stubClient{responses: []stubResponse{
		{err: errors.Join(completion.ErrTransient, errors.New("unavailable"))},
	}}
	items := newTestGenerator(stub).Generate(context.Background(), "long day", "fear")

	assert.Equal(t, DefaultAdvice, items)
	assert.Equal(t, 5, stub.calls)
}

func TestGenerateDoesNotShareDefaultSlice(t *testing.T) {
	stub := &stubClient{responses: []stubResponse{
		{err: errors.New("bad key")},
	}}
	items := newTestGenerator(stub).Generate(context.Background(), "x", "")
	items[0] = "mutated"
	assert.Equal(t, "Take a moment to breathe and reflect on your feelings.", DefaultAdvice[0])
}
