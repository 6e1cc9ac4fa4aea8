package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/campustech/clubhub/backend/internal/auth"
	"github.com/campustech/clubhub/backend/internal/database"
	"github.com/campustech/clubhub/backend/internal/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrNotFound indicates no user row matches the given identifier.
	ErrNotFound = errors.New("users: not found")
	// ErrInvalidSync indicates the webhook payload lacked required fields.
	ErrInvalidSync = errors.New("users: external id and email required")

	errMissingDatabase = errors.New("users: database connection required")
)

const defaultListLimit = 10

// ServiceConfig describes the dependencies required by the user service.
type ServiceConfig struct {
	Database   *gorm.DB
	Clock      func() time.Time
	IDProvider database.IDProvider
	Logger     *zap.Logger
}

// Service owns the local member records. Rows are written only through the
// identity webhook sync and the member's own profile update.
type Service struct {
	db         *gorm.DB
	now        func() time.Time
	idProvider database.IDProvider
	logger     *zap.Logger
}

// NewService constructs the user service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Database == nil {
		return nil, errMissingDatabase
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	idProvider := cfg.IDProvider
	if idProvider == nil {
		idProvider = database.NewUUIDProvider()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{db: cfg.Database, now: clock, idProvider: idProvider, logger: logger}, nil
}

// SyncInput carries the fields delivered by a user-lifecycle webhook event.
type SyncInput struct {
	ExternalID string
	Email      string
	FirstName  string
}

// Sync upserts the local user row keyed by the identity provider's id.
// Creation assigns the default USER role; updates never touch the role, so a
// promotion made locally survives later webhook deliveries.
func (s *Service) Sync(ctx context.Context, input SyncInput) (*model.User, error) {
	externalID := strings.TrimSpace(input.ExternalID)
	email := strings.TrimSpace(input.Email)
	if externalID == "" || email == "" {
		return nil, ErrInvalidSync
	}

	var user model.User
	err := s.db.WithContext(ctx).Where("external_id = ?", externalID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		id, idErr := s.idProvider.NewID()
		if idErr != nil {
			return nil, fmt.Errorf("users: id generation failed: %w", idErr)
		}
		user = model.User{
			ID:         id,
			ExternalID: externalID,
			Email:      email,
			FirstName:  strings.TrimSpace(input.FirstName),
			Role:       model.RoleUser,
			CreatedAt:  s.now().UTC(),
		}
		if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
			return nil, err
		}
		s.logger.Info("user created from webhook", zap.String("external_id", externalID))
		return &user, nil
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"email": email}
	if firstName := strings.TrimSpace(input.FirstName); firstName != "" {
		updates["first_name"] = firstName
	}
	if err := s.db.WithContext(ctx).Model(&user).Updates(updates).Error; err != nil {
		return nil, err
	}
	s.logger.Info("user updated from webhook", zap.String("external_id", externalID))
	return &user, nil
}

// GetByExternalID resolves the local row for a verified session subject.
func (s *Service) GetByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	if strings.TrimSpace(externalID) == "" {
		return nil, ErrNotFound
	}
	var user model.User
	err := s.db.WithContext(ctx).Where("external_id = ?", externalID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Profile returns the caller's own row with all owned collections attached.
func (s *Service) Profile(ctx context.Context, userID string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).
		Preload("Events").
		Preload("Projects").
		Preload("Resources").
		Preload("Polls").
		Preload("Votes").
		Where("id = ?", userID).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns a page of users, admin-only at the resolver boundary.
func (s *Service) List(ctx context.Context, limit, offset int) ([]model.User, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	var users []model.User
	if err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateFirstName updates the caller's own row only.
func (s *Service) UpdateFirstName(ctx context.Context, actor auth.Actor, firstName string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("id = ?", actor.UserID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&user).Update("first_name", strings.TrimSpace(firstName)).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
