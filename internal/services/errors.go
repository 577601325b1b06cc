package services

import (
	"errors"

	"vendorhub/internal/apperr"
	"vendorhub/internal/repositories"
)

// mapRepoError converts a repository failure into an application error.
func mapRepoError(err error, notFoundMsg, internalMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrNotFound):
		return apperr.NotFound(notFoundMsg)
	default:
		return apperr.Internal(internalMsg, err)
	}
}

func isInUse(err error) bool {
	return errors.Is(err, repositories.ErrInUse)
}
