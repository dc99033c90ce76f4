package emotion

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mellowlog/core/internal/pkg/completion"
	"github.com/stretchr/testify/assert"
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

func newTestExtractor(stub *stubClient) *Extractor {
	e := NewExtractor(stub, zap.NewNop())
	e.interval = time.Millisecond
	return e
}

func TestClassifyScalesToPercentages(t *testing.T) {
	stub := &stubClient{responses: []stubResponse{
		{text: `{"happy":0.6,"sad":0.1,"fear":0.1,"disgust":0.05,"anger":0.15}`},
	}}
	dist := newTestExtractor(stub).Classify(context.Background(), "great day at the beach")

	assert.InDelta(t, 60, dist.Happy, 1e-9)
	assert.InDelta(t, 10, dist.Sad, 1e-9)
	assert.InDelta(t, 15, dist.Anger, 1e-9)
	assert.Equal(t, 1, stub.calls)
}

func TestClassifyAcceptsFencedJSON(t *testing.T) {
	stub := &stubClient{responses: []stubResponse{
		{text: "```json\n{\"happy\":0.2,\"sad\":0.5,\"fear\":0.1,\"disgust\":0.1,\"anger\":0.1}\n```"},
	}}
	dist := newTestExtractor(stub).Classify(context.Background(), "rough week")
	assert.InDelta(t, 50, dist.Sad, 1e-9)
}

func TestClassifyMalformedJSONNotRetried(t *testing.T) {
	stub := &stubClient{responses: []stubResponse{
		{text: "I feel like this entry is mostly happy!"},
	}}
	dist := newTestExtractor(stub).Classify(context.Background(), "whatever")

	assert.Equal(t, ZeroDistribution(), dist)
	assert.Equal(t, 1, stub.calls)
}

func TestClassifyMissingKeyRejectsWholeResponse(t *testing.T) {
	stub := &stubClient{responses: []stubResponse{
		{text: `{"happy":0.5,"sad":0.5,"fear":0.0,"disgust":0.0}`},
	}}
	dist := newTestExtractor(stub).Classify(context.Background(), "whatever")

	assert.Equal(t, ZeroDistribution(), dist)
	assert.Equal(t, 1, stub.calls)
}

func TestClassifyRetriesTransientErrors(t *testing.T) {
	transient := errors.New("rate limited")
	stub := &stubClient{responses: []stubResponse{
		{err: errors.Join(completion.ErrTransient, transient)},
		{err: errors.Join(completion.ErrTransient, transient)},
		{text: `{"happy":0.1,"sad":0.1,"fear":0.1,"disgust":0.1,"anger":0.6}`},
	}}
	dist := newTestExtractor(stub).Classify(context.Background(), "argh")

	assert.InDelta(t, 60, dist.Anger, 1e-9)
	assert.Equal(t, 3, stub.calls)
}

func TestClassifyExhaustsAttemptsThenZero(t *testing.T) {
	stub := &stubClient{responses: []stubResponse{
		{err: errors.Join(completion.ErrTransient, errors.New("unavailable"))},
	}}
	dist := newTestExtractor(stub).Classify(context.Background(), "argh")

	assert.Equal(t, ZeroDistribution(), dist)
	assert.Equal(t, 5, stub.calls)
}

func TestClassifyPermanentErrorNotRetried(t *testing.T) {
	stub := &stubClient{responses: []stubResponse{
		{err: errors.New("invalid api key")},
	}}
	dist := newTestExtractor(stub).Classify(context.Background(), "argh")

	assert.Equal(t, ZeroDistribution(), dist)
	assert.Equal(t, 1, stub.calls)
}
