package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"careergraph/application/commands"
	apperrors "careergraph/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubReloader struct {
	calls int
	err   error
}

func (s *stubReloader) Reload(ctx context.Context) error {
	s.calls++
	return s.err
}

type otherCommand struct{}

func (otherCommand) Validate() error { return nil }

func TestReloadDatasetHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("reloads", func(t *testing.T) {
		reloader := &stubReloader{}
		handler := NewReloadDatasetHandler(reloader, zap.NewNop())

		require.NoError(t, handler.Handle(ctx, commands.ReloadDatasetCommand{Reason: "test"}))
		assert.Equal(t, 1, reloader.calls)
	})

	t.Run("failure is unavailable", func(t *testing.T) {
		cause := errors.New("missing column Identity No")
		handler := NewReloadDatasetHandler(&stubReloader{err: cause}, zap.NewNop())

		err := handler.Handle(ctx, commands.ReloadDatasetCommand{})
		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusServiceUnavailable, appErr.HTTPStatus)
		assert.Equal(t, "RELOAD_FAILED", appErr.Code)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("wrong command", func(t *testing.T) {
		reloader := &stubReloader{}
		handler := NewReloadDatasetHandler(reloader, zap.NewNop())

		assert.Error(t, handler.Handle(ctx, otherCommand{}))
		assert.Zero(t, reloader.calls)
	})
}
