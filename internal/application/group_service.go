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

type GroupService struct {
	Groups repo.GroupRepository
	Tx     repo.TxRunner
	Events EventPublisher
	Logger *logrus.Logger
	NewID  func() string
}

func NewGroupService(groups repo.GroupRepository, tx repo.TxRunner, events EventPublisher, logger *logrus.Logger) *GroupService {
	return &GroupService{
		Groups: groups,
		Tx:     tx,
		Events: events,
		Logger: logger,
		NewID:  uuid.NewString,
	}
}

type CreateGroupInput struct {
	Name        string
	Description string
}

// UpdateGroupInput fields are applied only when non-nil and non-empty.
type UpdateGroupInput struct {
	NewName        *string
	NewDescription *string
}

func (s *GroupService) CreateGroup(ctx context.Context, in CreateGroupInput) (*GroupResponse, error) {
	g := entity.NewGroup(s.NewID(), in.Name, in.Description)
	if err := s.Groups.Create(ctx, g); err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	saved, err := s.Groups.FindByID(ctx, g.ID)
	if err != nil {
		return nil, lookupErr(err, ErrGroupNotFound, "reload group")
	}
	publishEvent(ctx, s.Events, s.Logger, Event{Type: EventGroupCreated, EntityID: saved.ID})
	res := toGroupResponse(saved)
	return &res, nil
}

// GetGroupByID looks the group up by raw id, so inactive groups are still returned.
func (s *GroupService) GetGroupByID(ctx context.Context, id string) (*GroupDetailResponse, error) {
	g, err := s.Groups.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, ErrGroupNotFound, "find group")
	}
	return toGroupDetailResponse(g), nil
}

func (s *GroupService) GetAllGroups(ctx context.Context) ([]GroupResponse, error) {
	groups, err := s.Groups.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	out := make([]GroupResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, toGroupResponse(g))
	}
	return out, nil
}

func (s *GroupService) UpdateGroup(ctx context.Context, id string, in UpdateGroupInput) (*GroupResponse, error) {
	var updated *entity.Group
	err := s.Tx.RunInTx(ctx, func(tx repo.Store) error {
		g, err := tx.Groups().FindByID(ctx, id)
		if err != nil {
			return lookupErr(err, ErrGroupNotFound, "find group")
		}
		if in.NewName != nil && *in.NewName != "" {
			g.Name = *in.NewName
		}
		if in.NewDescription != nil && *in.NewDescription != "" {
			g.Description = *in.NewDescription
		}
		if err := tx.Groups().Save(ctx, g); err != nil {
			return lookupErr(err, ErrGroupNotFound, "save group")
		}
		updated = g
		return nil
	})
	if err != nil {
		return nil, err
	}
	publishEvent(ctx, s.Events, s.Logger, Event{Type: EventGroupUpdated, EntityID: updated.ID})
	res := toGroupResponse(updated)
	return &res, nil
}

// DeleteGroup deactivates an active group. Deleting an inactive group fails
// with ErrGroupNotFound.
func (s *GroupService) DeleteGroup(ctx context.Context, id string) error {
	err := s.Tx.RunInTx(ctx, func(tx repo.Store) error {
		g, err := tx.Groups().FindActiveByID(ctx, id)
		if err != nil {
			return lookupErr(err, ErrGroupNotFound, "find group")
		}
		if err := g.Deactivate(); err != nil {
			if errors.Is(err, entity.ErrAlreadyInactive) {
				return ErrGroupNotFound
			}
			return err
		}
		if err := tx.Groups().Save(ctx, g); err != nil {
			return lookupErr(err, ErrGroupNotFound, "save group")
		}
		return nil
	})
	if err != nil {
		return err
	}
	publishEvent(ctx, s.Events, s.Logger, Event{Type: EventGroupDeactivated, EntityID: id})
	return nil
}

// AddReviewer makes an active user a reviewer of an active group.
func (s *GroupService) AddReviewer(ctx context.Context, groupID, userID string) (*GroupDetailResponse, error) {
	return s.changeMembership(ctx, groupID, "reviewer_added", userID, func(tx repo.Store, g *entity.Group) (bool, error) {
		if _, err := tx.Users().FindActiveByID(ctx, userID); err != nil {
			return false, lookupErr(err, ErrUserNotFound, "find user")
		}
		return g.AddReviewer(userID), nil
	})
}

func (s *GroupService) RemoveReviewer(ctx context.Context, groupID, userID string) (*GroupDetailResponse, error) {
	return s.changeMembership(ctx, groupID, "reviewer_removed", userID, func(_ repo.Store, g *entity.Group) (bool, error) {
		return g.RemoveReviewer(userID), nil
	})
}

func (s *GroupService) AddSample(ctx context.Context, groupID, sampleID string) (*GroupDetailResponse, error) {
	return s.changeMembership(ctx, groupID, "sample_added", sampleID, func(_ repo.Store, g *entity.Group) (bool, error) {
		return g.AddSample(sampleID), nil
	})
}

func (s *GroupService) RemoveSample(ctx context.Context, groupID, sampleID string) (*GroupDetailResponse, error) {
	return s.changeMembership(ctx, groupID, "sample_removed", sampleID, func(_ repo.Store, g *entity.Group) (bool, error) {
		return g.RemoveSample(sampleID), nil
	})
}

// changeMembership runs mutate against an active group inside a transaction
// and saves only when mutate reports a change.
func (s *GroupService) changeMembership(
	ctx context.Context,
	groupID, change, memberID string,
	mutate func(tx repo.Store, g *entity.Group) (bool, error),
) (*GroupDetailResponse, error) {
	var (
		result  *entity.Group
		changed bool
	)
	err := s.Tx.RunInTx(ctx, func(tx repo.Store) error {
		g, err := tx.Groups().FindActiveByID(ctx, groupID)
		if err != nil {
			return lookupErr(err, ErrGroupNotFound, "find group")
		}
		changed, err = mutate(tx, g)
		if err != nil {
			return err
		}
		if changed {
			if err := tx.Groups().Save(ctx, g); err != nil {
				return lookupErr(err, ErrGroupNotFound, "save group")
			}
		}
		result = g
		return nil
	})
	if err != nil {
		return nil, err
	}
	if changed {
		publishEvent(ctx, s.Events, s.Logger, Event{
			Type:     EventGroupMembershipChanged,
			EntityID: groupID,
			Data:     map[string]any{"change": change, "member_id": memberID},
		})
	}
	return toGroupDetailResponse(result), nil
}
