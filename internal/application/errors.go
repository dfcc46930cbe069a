package application

import (
	"errors"
	"fmt"

	repo "github.com/oksasatya/data-labeling-backend/internal/domain/repository"
)

// Every lookup failure wraps repository.ErrNotFound so the HTTP layer can
// translate all of them with a single errors.Is check.
var (
	ErrGroupNotFound    = fmt.Errorf("group %w", repo.ErrNotFound)
	ErrLabelNotFound    = fmt.Errorf("label %w", repo.ErrNotFound)
	ErrTemplateNotFound = fmt.Errorf("template %w", repo.ErrNotFound)
	ErrUserNotFound     = fmt.Errorf("user %w", repo.ErrNotFound)
)

// ErrLabelNameTaken wraps repository.ErrConflict.
var ErrLabelNameTaken = fmt.Errorf("label name %w", repo.ErrConflict)

// lookupErr swaps a store-level not-found for the entity specific error and
// wraps anything else with op.
func lookupErr(err, notFound error, op string) error {
	if errors.Is(err, repo.ErrNotFound) {
		return notFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

// labelWriteErr reports a name clash as ErrLabelNameTaken.
func labelWriteErr(err error, op string) error {
	if errors.Is(err, repo.ErrConflict) {
		return ErrLabelNameTaken
	}
	return lookupErr(err, ErrLabelNotFound, op)
}
