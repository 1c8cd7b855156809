package handlers

import (
	"context"
	"errors"

	"careergraph/application/ports"
	apperrors "careergraph/pkg/errors"
)

// translateError maps repository errors onto application errors
func translateError(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case apperrors.IsAppError(err):
		return err
	case errors.Is(err, ports.ErrOfficerNotFound):
		return apperrors.NewNotFoundError(resource).WithCause(err)
	case errors.Is(err, ports.ErrDatasetNotLoaded):
		return apperrors.NewUnavailableError("dataset").WithCause(err)
	case errors.Is(err, ports.ErrBackendUnavailable):
		appErr := apperrors.NewUnavailableError("graph database").WithCause(err).WithCode("QUERY_FAILED")
		appErr.Message = "query failed: graph database unavailable"
		return appErr
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.NewTimeoutError("overlap query").WithCause(err).WithCode("QUERY_FAILED")
	default:
		return apperrors.NewQueryFailedError(err)
	}
}
