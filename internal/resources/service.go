package resources

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
	// ErrNotFound indicates no resource row matches the given identifier.
	ErrNotFound = errors.New("resources: not found")
	// ErrInvalidDocumentType surfaces verbatim on an unknown document type.
	ErrInvalidDocumentType = errors.New("Invalid document type.")

	errMissingDatabase = errors.New("resources: database connection required")
)

const defaultListLimit = 20

// ServiceConfig describes the dependencies required by the resource service.
type ServiceConfig struct {
	Database   *gorm.DB
	Clock      func() time.Time
	IDProvider database.IDProvider
	Logger     *zap.Logger
}

// Service implements resource reads and writes. Update and delete are
// owner-gated (or admin), unlike the plain-auth reads.
type Service struct {
	db         *gorm.DB
	now        func() time.Time
	idProvider database.IDProvider
	logger     *zap.Logger
}

// NewService constructs the resource service.
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

// Get returns one resource with its owner attached.
func (s *Service) Get(ctx context.Context, id string) (*model.Resource, error) {
	var resource model.Resource
	err := s.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&resource).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &resource, nil
}

// List returns a page of resources ordered newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]model.Resource, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	var resources []model.Resource
	if err := s.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&resources).Error; err != nil {
		return nil, err
	}
	return resources, nil
}

// CreateInput carries the fields accepted when creating a resource. Links
// point at files the client already uploaded to the storage provider.
type CreateInput struct {
	Title        string
	Description  string
	Category     string
	DocumentType string
	Links        []string
}

// Create stores a resource owned by the caller.
func (s *Service) Create(ctx context.Context, actor auth.Actor, input CreateInput) (*model.Resource, error) {
	if !model.ValidDocumentType(input.DocumentType) {
		return nil, ErrInvalidDocumentType
	}

	id, err := s.idProvider.NewID()
	if err != nil {
		return nil, fmt.Errorf("resources: id generation failed: %w", err)
	}

	resource := model.Resource{
		ID:           id,
		UserID:       actor.UserID,
		Title:        input.Title,
		Description:  input.Description,
		Category:     input.Category,
		DocumentType: input.DocumentType,
		Links:        input.Links,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&resource).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// UpdateInput carries the optional fields accepted when updating a resource.
type UpdateInput struct {
	Title        *string
	Description  *string
	Category     *string
	DocumentType *string
	Links        []string
}

// Update applies the supplied fields. Only the owner or a global admin may
// update; anyone else gets Unauthorized and the row stays unchanged.
func (s *Service) Update(ctx context.Context, actor auth.Actor, id string, input UpdateInput) (*model.Resource, error) {
	var resource model.Resource
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&resource).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !actor.CanMutate(resource.UserID) {
		return nil, auth.ErrUnauthorized
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Category != nil {
		updates["category"] = *input.Category
	}
	if input.DocumentType != nil {
		if !model.ValidDocumentType(*input.DocumentType) {
			return nil, ErrInvalidDocumentType
		}
		updates["document_type"] = *input.DocumentType
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&resource).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	if input.Links != nil {
		if err := s.db.WithContext(ctx).Model(&resource).Update("resource_links", input.Links).Error; err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, id)
}

// Delete removes a resource. Only the owner or a global admin may delete.
func (s *Service) Delete(ctx context.Context, actor auth.Actor, id string) error {
	var resource model.Resource
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&resource).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if !actor.CanMutate(resource.UserID) {
		return auth.ErrUnauthorized
	}
	return s.db.WithContext(ctx).Delete(&model.Resource{}, "id = ?", id).Error
}
