package projects

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campustech/clubhub/backend/internal/auth"
	"github.com/campustech/clubhub/backend/internal/database"
	"github.com/campustech/clubhub/backend/internal/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrNotFound indicates no project row matches the given identifier.
	ErrNotFound = errors.New("projects: not found")

	errMissingDatabase = errors.New("projects: database connection required")
	noOpLogger         = zap.NewNop()
)

// ServiceError carries a stable machine-readable code alongside the cause.
type ServiceError struct {
	code string
	err  error
}

func (e *ServiceError) Error() string {
	if e.err == nil {
		return e.code
	}
	return fmt.Sprintf("%s: %v", e.code, e.err)
}

func (e *ServiceError) Unwrap() error {
	return e.err
}

// Code returns the stable error code.
func (e *ServiceError) Code() string {
	return e.code
}

const (
	opCreate     = "projects.create"
	opUpdate     = "projects.update"
	opDelete     = "projects.delete"
	opToggleLike = "projects.toggle_like"
)

func newServiceError(operation, reason string, cause error) error {
	return &ServiceError{code: fmt.Sprintf("%s.%s", operation, reason), err: cause}
}

// ServiceConfig describes the dependencies required by the project service.
type ServiceConfig struct {
	Database   *gorm.DB
	Clock      func() time.Time
	IDProvider database.IDProvider
	Logger     *zap.Logger
}

// Service implements project reads and writes, including the like toggle.
type Service struct {
	db         *gorm.DB
	now        func() time.Time
	idProvider database.IDProvider
	logger     *zap.Logger
}

// NewService constructs the project service.
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
		logger = noOpLogger
	}
	return &Service{db: cfg.Database, now: clock, idProvider: idProvider, logger: logger}, nil
}

// Get returns one project with its owner and likes (each with the liking
// user) attached.
func (s *Service) Get(ctx context.Context, id string) (*model.Project, error) {
	var project model.Project
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("LikedBy").
		Preload("LikedBy.User").
		Where("id = ?", id).
		First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// List returns all projects, newest first, with owners and likes attached.
func (s *Service) List(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	if err := s.db.WithContext(ctx).
		Preload("User").
		Preload("LikedBy").
		Preload("LikedBy.User").
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// CreateInput carries the fields accepted when creating a project.
type CreateInput struct {
	Title       string
	Description string
	GithubLink  string
	LiveLink    string
	Tags        []string
}

// Create stores a project owned by the caller.
func (s *Service) Create(ctx context.Context, actor auth.Actor, input CreateInput) (*model.Project, error) {
	id, err := s.idProvider.NewID()
	if err != nil {
		return nil, newServiceError(opCreate, "id_generation_failed", err)
	}

	project := model.Project{
		ID:          id,
		UserID:      actor.UserID,
		Title:       input.Title,
		Description: input.Description,
		GithubLink:  input.GithubLink,
		LiveLink:    input.LiveLink,
		Tags:        input.Tags,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&project).Error; err != nil {
		return nil, newServiceError(opCreate, "insert_failed", err)
	}
	return s.Get(ctx, id)
}

// UpdateInput carries the optional fields accepted when updating a project.
type UpdateInput struct {
	Title       *string
	Description *string
	GithubLink  *string
	LiveLink    *string
	Tags        []string
}

// Update applies the supplied fields. Only the owner or a global admin may
// update.
func (s *Service) Update(ctx context.Context, actor auth.Actor, id string, input UpdateInput) (*model.Project, error) {
	var project model.Project
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !actor.CanMutate(project.UserID) {
		return nil, auth.ErrUnauthorized
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.GithubLink != nil {
		updates["github_link"] = *input.GithubLink
	}
	if input.LiveLink != nil {
		updates["live_link"] = *input.LiveLink
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&project).Updates(updates).Error; err != nil {
			return nil, newServiceError(opUpdate, "update_failed", err)
		}
	}
	if input.Tags != nil {
		if err := s.db.WithContext(ctx).Model(&project).Update("tags", input.Tags).Error; err != nil {
			return nil, newServiceError(opUpdate, "update_failed", err)
		}
	}
	return s.Get(ctx, id)
}

// Delete removes a project and its likes. Only the owner or a global admin
// may delete.
func (s *Service) Delete(ctx context.Context, actor auth.Actor, id string) error {
	var project model.Project
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if !actor.CanMutate(project.UserID) {
		return auth.ErrUnauthorized
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Like{}, "project_id = ?", id).Error; err != nil {
			return newServiceError(opDelete, "like_delete_failed", err)
		}
		if err := tx.Delete(&model.Project{}, "id = ?", id).Error; err != nil {
			return newServiceError(opDelete, "project_delete_failed", err)
		}
		return nil
	})
}

// ToggleResult reports the caller's like state and the project's counter
// after a toggle.
type ToggleResult struct {
	Liked bool `json:"liked"`
	Likes int  `json:"likes"`
}

// ToggleLike flips the caller's like on a project. Both the Like row and the
// stored counter change inside one transaction, and the counter is assigned
// from the live row count, so the two can never drift. The unique index on
// (user_id, project_id) makes a concurrent double-insert impossible; a
// duplicate-key error is treated as "already liked".
func (s *Service) ToggleLike(ctx context.Context, actor auth.Actor, projectID string) (ToggleResult, error) {
	var result ToggleResult
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project model.Project
		err := tx.Where("id = ?", projectID).Take(&project).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return newServiceError(opToggleLike, "project_select_failed", err)
		}

		var existing model.Like
		err = tx.Where("user_id = ? AND project_id = ?", actor.UserID, projectID).Take(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			id, idErr := s.idProvider.NewID()
			if idErr != nil {
				return newServiceError(opToggleLike, "id_generation_failed", idErr)
			}
			like := model.Like{
				ID:        id,
				UserID:    actor.UserID,
				ProjectID: projectID,
				CreatedAt: s.now().UTC(),
			}
			if err := tx.Create(&like).Error; err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
				return newServiceError(opToggleLike, "like_insert_failed", err)
			}
			result.Liked = true
		case err != nil:
			return newServiceError(opToggleLike, "like_select_failed", err)
		default:
			if err := tx.Delete(&model.Like{}, "id = ?", existing.ID).Error; err != nil {
				return newServiceError(opToggleLike, "like_delete_failed", err)
			}
			result.Liked = false
		}

		var count int64
		if err := tx.Model(&model.Like{}).Where("project_id = ?", projectID).Count(&count).Error; err != nil {
			return newServiceError(opToggleLike, "like_count_failed", err)
		}
		if err := tx.Model(&model.Project{}).Where("id = ?", projectID).Update("likes", count).Error; err != nil {
			return newServiceError(opToggleLike, "counter_update_failed", err)
		}
		result.Likes = int(count)
		return nil
	})
	if txErr != nil {
		s.logError(opToggleLike, txErr, zap.String("project_id", projectID), zap.String("user_id", actor.UserID))
		return ToggleResult{}, txErr
	}
	return result, nil
}

func (s *Service) logError(operation string, err error, fields ...zap.Field) {
	attrs := append([]zap.Field{zap.String("operation", operation), zap.Error(err)}, fields...)
	s.logger.Error("project service error", attrs...)
}
