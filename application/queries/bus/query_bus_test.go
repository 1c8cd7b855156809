package bus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoQuery struct {
	Text string
}

func (q echoQuery) Validate() error {
	if q.Text == "" {
		return errors.New("text is required")
	}
	return nil
}

type otherQuery struct{}

func (otherQuery) Validate() error { return nil }

type recordingMetrics struct {
	queries []string
	errs    []error
}

func (m *recordingMetrics) ObserveQuery(queryType string, _ time.Duration, err error) {
	m.queries = append(m.queries, queryType)
	m.errs = append(m.errs, err)
}

func echo(ctx context.Context, q echoQuery) (string, error) {
	if q.Text == "fail" {
		return "", errors.New("boom")
	}
	return q.Text, nil
}

func TestQueryBus_Ask(t *testing.T) {
	ctx := context.Background()
	metrics := &recordingMetrics{}
	b := NewQueryBus(NewMetricsMiddleware(metrics))
	require.NoError(t, b.Register(echoQuery{}, Typed(echo)))

	t.Run("dispatches by type", func(t *testing.T) {
		result, err := b.Ask(ctx, echoQuery{Text: "hello"})
		require.NoError(t, err)
		assert.Equal(t, "hello", result)
	})

	t.Run("validation runs before the handler", func(t *testing.T) {
		before := len(metrics.queries)
		_, err := b.Ask(ctx, echoQuery{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "query validation failed")
		assert.Len(t, metrics.queries, before)
	})

	t.Run("handler errors are wrapped", func(t *testing.T) {
		_, err := b.Ask(ctx, echoQuery{Text: "fail"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
		assert.Error(t, metrics.errs[len(metrics.errs)-1])
	})

	t.Run("unregistered query", func(t *testing.T) {
		_, err := b.Ask(ctx, otherQuery{})
		assert.ErrorContains(t, err, "no handler registered")
	})

	t.Run("duplicate registration", func(t *testing.T) {
		assert.Error(t, b.Register(echoQuery{}, Typed(echo)))
	})

	assert.Contains(t, metrics.queries, "echoQuery")
}

func TestTyped_RejectsWrongQuery(t *testing.T) {
	handler := Typed(echo)
	_, err := handler.Handle(context.Background(), otherQuery{})
	assert.ErrorContains(t, err, "unexpected query type")
}
