package application

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/data-labeling-backend/internal/domain/entity"
	repo "github.com/oksasatya/data-labeling-backend/internal/domain/repository"
)

// PasswordHasher produces one-way password hashes.
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// UserIndex is the full-text search index for users. Search returns user ids.
type UserIndex interface {
	IndexUser(ctx context.Context, doc UserDocument) error
	SearchUsers(ctx context.Context, q string, size int) ([]string, error)
}

// UserDocument is what gets indexed for search.
type UserDocument struct {
	ID       string
	Username string
	Role     entity.Role
	Active   bool
}

// UserServiceConfig carries the admin activation code. It is compared on
// user creation and never logged or returned.
type UserServiceConfig struct {
	AdminCode string
}

type UserService struct {
	Users  repo.UserRepository
	Groups repo.GroupRepository
	Tx     repo.TxRunner
	Hasher PasswordHasher
	Index  UserIndex
	Events EventPublisher
	Logger *logrus.Logger
	NewID  func() string

	adminCode string
}

func NewUserService(
	users repo.UserRepository,
	groups repo.GroupRepository,
	tx repo.TxRunner,
	hasher PasswordHasher,
	cfg UserServiceConfig,
	index UserIndex,
	events EventPublisher,
	logger *logrus.Logger,
) *UserService {
	return &UserService{
		Users:     users,
		Groups:    groups,
		Tx:        tx,
		Hasher:    hasher,
		Index:     index,
		Events:    events,
		Logger:    logger,
		NewID:     uuid.NewString,
		adminCode: cfg.AdminCode,
	}
}

type CreateUserInput struct {
	Username  string
	Password  string
	AdminCode *string
}

// UpdateUserInput fields are applied only when they contain non-whitespace text.
type UpdateUserInput struct {
	NewUsername *string
	NewPassword *string
}

// roleFor grants ADMIN only for a non-empty code equal to the configured one.
// An empty configured code disables admin sign-up.
func (s *UserService) roleFor(code *string) entity.Role {
	if code == nil || *code == "" || s.adminCode == "" {
		return entity.RoleUser
	}
	if subtle.ConstantTimeCompare([]byte(*code), []byte(s.adminCode)) == 1 {
		return entity.RoleAdmin
	}
	return entity.RoleUser
}

func hasText(p *string) bool {
	return p != nil && strings.TrimSpace(*p) != ""
}

func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*UserResponse, error) {
	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &entity.User{
		ID:           s.NewID(),
		Username:     in.Username,
		PasswordHash: hash,
		Role:         s.roleFor(in.AdminCode),
		State:        entity.Active,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "role": u.Role}).Info("user created")
	}
	s.indexUser(ctx, u)
	publishEvent(ctx, s.Events, s.Logger, Event{
		Type:     EventUserCreated,
		EntityID: u.ID,
		Data:     map[string]any{"role": string(u.Role)},
	})
	return s.toResponse(ctx, u)
}

func (s *UserService) GetUserByID(ctx context.Context, id string) (*UserResponse, error) {
	u, err := s.Users.FindActiveByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, ErrUserNotFound, "find user")
	}
	return s.toResponse(ctx, u)
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]UserResponse, error) {
	users, err := s.Users.FindAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		res, err := s.toResponse(ctx, u)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id string, in UpdateUserInput) (*UserResponse, error) {
	var newHash string
	if hasText(in.NewPassword) {
		h, err := s.Hasher.Hash(*in.NewPassword)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		newHash = h
	}

	var updated *entity.User
	err := s.Tx.RunInTx(ctx, func(tx repo.Store) error {
		u, err := tx.Users().FindActiveByID(ctx, id)
		if err != nil {
			return lookupErr(err, ErrUserNotFound, "find user")
		}
		if hasText(in.NewUsername) {
			u.Username = *in.NewUsername
		}
		if newHash != "" {
			u.PasswordHash = newHash
		}
		if err := tx.Users().Save(ctx, u); err != nil {
			return lookupErr(err, ErrUserNotFound, "save user")
		}
		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.indexUser(ctx, updated)
	publishEvent(ctx, s.Events, s.Logger, Event{Type: EventUserUpdated, EntityID: updated.ID})
	return s.toResponse(ctx, updated)
}

// DeleteUser deactivates an active user. Group membership is left untouched.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	var deleted *entity.User
	err := s.Tx.RunInTx(ctx, func(tx repo.Store) error {
		u, err := tx.Users().FindActiveByID(ctx, id)
		if err != nil {
			return lookupErr(err, ErrUserNotFound, "find user")
		}
		if err := u.Deactivate(); err != nil {
			if errors.Is(err, entity.ErrAlreadyInactive) {
				return ErrUserNotFound
			}
			return err
		}
		if err := tx.Users().Save(ctx, u); err != nil {
			return lookupErr(err, ErrUserNotFound, "save user")
		}
		deleted = u
		return nil
	})
	if err != nil {
		return err
	}
	s.indexUser(ctx, deleted)
	publishEvent(ctx, s.Events, s.Logger, Event{Type: EventUserDeactivated, EntityID: id})
	return nil
}

// SearchUsers queries the search index and returns the matching users that
// are still active. Without an index it returns an empty list.
func (s *UserService) SearchUsers(ctx context.Context, q string, size int) ([]UserResponse, error) {
	out := make([]UserResponse, 0)
	if s.Index == nil {
		return out, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	ids, err := s.Index.SearchUsers(ctx, q, size)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	for _, id := range ids {
		u, err := s.Users.FindActiveByID(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("find user: %w", err)
		}
		res, err := s.toResponse(ctx, u)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, nil
}

// toResponse resolves group membership at call time; it is never cached on the user.
func (s *UserService) toResponse(ctx context.Context, u *entity.User) (*UserResponse, error) {
	groups, err := s.Groups.FindByUserID(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("find user groups: %w", err)
	}
	ids := make([]string, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, g.ID)
	}
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		GroupIDs:  ids,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}, nil
}

func (s *UserService) indexUser(ctx context.Context, u *entity.User) {
	if s.Index == nil {
		return
	}
	doc := UserDocument{ID: u.ID, Username: u.Username, Role: u.Role, Active: u.State.IsActive()}
	if err := s.Index.IndexUser(ctx, doc); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("index user failed")
	}
}
