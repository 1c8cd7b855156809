package bus

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type pingCommand struct {
	Fail bool
}

func (c pingCommand) Validate() error { return nil }

type invalidCommand struct{}

func (invalidCommand) Validate() error { return errors.New("invalid") }

func TestCommandBus_Send(t *testing.T) {
	ctx := context.Background()
	var order []string
	trace := func(name string) Middleware {
		return func(next CommandHandler) CommandHandler {
			return CommandHandlerFunc(func(ctx context.Context, cmd Command) error {
				order = append(order, name)
				return next.Handle(ctx, cmd)
			})
		}
	}

	b := NewCommandBus(trace("outer"), trace("inner"), LoggingMiddleware(zap.NewNop()))
	require.NoError(t, b.Register(pingCommand{}, CommandHandlerFunc(func(ctx context.Context, cmd Command) error {
		if cmd.(pingCommand).Fail {
			return errors.New("ping failed")
		}
		return nil
	})))

	require.NoError(t, b.Send(ctx, pingCommand{}))
	assert.Equal(t, []string{"outer", "inner"}, order)

	err := b.Send(ctx, pingCommand{Fail: true})
	assert.ErrorContains(t, err, "ping failed")

	assert.ErrorContains(t, b.Send(ctx, invalidCommand{}), "command validation failed")

	assert.Error(t, b.Register(pingCommand{}, CommandHandlerFunc(func(context.Context, Command) error { return nil })))
}

func TestSerialMiddleware(t *testing.T) {
	var running, peak int32
	b := NewCommandBus(SerialMiddleware())
	require.NoError(t, b.Register(pingCommand{}, CommandHandlerFunc(func(ctx context.Context, cmd Command) error {
		n := atomic.AddInt32(&running, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&running, -1)
		return nil
	})))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, b.Send(context.Background(), pingCommand{}))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&peak))
}
