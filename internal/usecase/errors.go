package usecase

import (
	"errors"

	"github.com/fadilmartias/talent-pipeline/internal/repository"
)

var (
	ErrUnauthenticated = errors.New("sign in required")
	ErrForbidden       = errors.New("not allowed")
	ErrNotFound        = errors.New("not found")
	ErrMissingResume   = errors.New("upload a resume or complete your profile before applying")
	ErrUnavailable     = errors.New("feature unavailable")
)

func mapStoreErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
