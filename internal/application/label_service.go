package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/data-labeling-backend/internal/domain/entity"
	repo "github.com/oksasatya/data-labeling-backend/internal/domain/repository"
)

type LabelService struct {
	Labels repo.LabelRepository
	Tx     repo.TxRunner
	Events EventPublisher
	Logger *logrus.Logger
	NewID  func() string
}

func NewLabelService(labels repo.LabelRepository, tx repo.TxRunner, events EventPublisher, logger *logrus.Logger) *LabelService {
	return &LabelService{
		Labels: labels,
		Tx:     tx,
		Events: events,
		Logger: logger,
		NewID:  uuid.NewString,
	}
}

// CreateLabels creates a label for every normalized name not already stored
// and returns only the new ones, in submission order. Names that normalize to
// an existing key, including one earlier in the same batch, are skipped.
func (s *LabelService) CreateLabels(ctx context.Context, names []string) ([]LabelResponse, error) {
	var created []*entity.Label
	err := s.Tx.RunInTx(ctx, func(tx repo.Store) error {
		created = make([]*entity.Label, 0, len(names))
		seen := make(map[string]struct{}, len(names))
		for _, raw := range names {
			name := entity.NormalizeLabelName(raw)
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}

			_, err := tx.Labels().FindByName(ctx, name)
			if err == nil {
				continue
			}
			if !errors.Is(err, repo.ErrNotFound) {
				return fmt.Errorf("find label %q: %w", name, err)
			}
			created = append(created, entity.NewLabel(s.NewID(), name))
		}
		if err := tx.Labels().SaveAll(ctx, created); err != nil {
			return labelWriteErr(err, "save labels")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]LabelResponse, 0, len(created))
	for _, l := range created {
		out = append(out, toLabelResponse(l))
		publishEvent(ctx, s.Events, s.Logger, Event{
			Type:     EventLabelCreated,
			EntityID: l.ID,
			Data:     map[string]any{"name": l.Name},
		})
	}
	return out, nil
}

func (s *LabelService) GetLabelByID(ctx context.Context, id string) (*LabelResponse, error) {
	l, err := s.Labels.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, ErrLabelNotFound, "find label")
	}
	res := toLabelResponse(l)
	return &res, nil
}

func (s *LabelService) GetAllLabels(ctx context.Context) ([]LabelResponse, error) {
	labels, err := s.Labels.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list labels: %w", err)
	}
	out := make([]LabelResponse, 0, len(labels))
	for _, l := range labels {
		out = append(out, toLabelResponse(l))
	}
	return out, nil
}

// UpdateLabel renames a label. Unlike group and user updates there is no
// blank guard: a blank name normalizes to "" and is written as is. A name
// already held by another label yields ErrLabelNameTaken.
func (s *LabelService) UpdateLabel(ctx context.Context, id, newName string) (*LabelResponse, error) {
	var updated *entity.Label
	err := s.Tx.RunInTx(ctx, func(tx repo.Store) error {
		l, err := tx.Labels().FindByID(ctx, id)
		if err != nil {
			return lookupErr(err, ErrLabelNotFound, "find label")
		}
		l.Rename(newName)
		if err := tx.Labels().Save(ctx, l); err != nil {
			return labelWriteErr(err, "save label")
		}
		updated = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	if s.Logger != nil && updated.Name == "" {
		s.Logger.WithField("label_id", updated.ID).Warn("label renamed to an empty name")
	}
	publishEvent(ctx, s.Events, s.Logger, Event{
		Type:     EventLabelUpdated,
		EntityID: updated.ID,
		Data:     map[string]any{"name": updated.Name},
	})
	res := toLabelResponse(updated)
	return &res, nil
}
