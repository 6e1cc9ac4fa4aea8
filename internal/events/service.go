package events

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
	// ErrNotFound indicates no event row matches the given identifier.
	ErrNotFound = errors.New("events: not found")
	// ErrInvalidDatetime surfaces verbatim when the caller-supplied datetime
	// string cannot be parsed.
	ErrInvalidDatetime = errors.New("Invalid datetime value. Please provide a valid ISO datetime string.")
	// ErrPastEvent surfaces verbatim when the parsed time is not strictly in
	// the future.
	ErrPastEvent = errors.New("Event time must be in the future.")

	errMissingDatabase = errors.New("events: database connection required")
)

// ServiceConfig describes the dependencies required by the event service.
type ServiceConfig struct {
	Database   *gorm.DB
	Clock      func() time.Time
	IDProvider database.IDProvider
	Logger     *zap.Logger
}

// Service implements event reads and writes.
type Service struct {
	db         *gorm.DB
	now        func() time.Time
	idProvider database.IDProvider
	logger     *zap.Logger
}

// NewService constructs the event service.
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

// Get returns one event with its host attached.
func (s *Service) Get(ctx context.Context, id string) (*model.Event, error) {
	var event model.Event
	err := s.db.WithContext(ctx).Preload("Host").Where("id = ?", id).First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// List returns all events with hosts attached, newest first.
func (s *Service) List(ctx context.Context) ([]model.Event, error) {
	var events []model.Event
	if err := s.db.WithContext(ctx).
		Preload("Host").
		Order("created_at DESC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// CreateInput carries the fields accepted when creating an event.
type CreateInput struct {
	Title       string
	Description string
	Type        string
	Location    string
	Guest       string
	Tags        string
	Datetime    string
	Participant int
}

// Create validates the supplied datetime and stores the event with the caller
// as host. The datetime must parse and lie strictly in the future.
func (s *Service) Create(ctx context.Context, actor auth.Actor, input CreateInput) (*model.Event, error) {
	eventTime, err := s.parseFutureTime(input.Datetime)
	if err != nil {
		return nil, err
	}

	id, err := s.idProvider.NewID()
	if err != nil {
		return nil, fmt.Errorf("events: id generation failed: %w", err)
	}

	event := model.Event{
		ID:          id,
		HostID:      actor.UserID,
		Title:       input.Title,
		Description: input.Description,
		Type:        input.Type,
		Location:    input.Location,
		Guest:       input.Guest,
		Tags:        input.Tags,
		Time:        eventTime,
		Participant: input.Participant,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&event).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// UpdateInput carries the optional fields accepted when updating an event.
type UpdateInput struct {
	Title       *string
	Description *string
	Type        *string
	Location    *string
	Guest       *string
	Tags        *string
	Datetime    *string
	Participant *int
}

// Update applies the supplied fields to an existing event. Only the host or a
// global admin may update; a supplied datetime is re-validated.
func (s *Service) Update(ctx context.Context, actor auth.Actor, id string, input UpdateInput) (*model.Event, error) {
	var event model.Event
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !actor.CanMutate(event.HostID) {
		return nil, auth.ErrUnauthorized
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Type != nil {
		updates["type"] = *input.Type
	}
	if input.Location != nil {
		updates["location"] = *input.Location
	}
	if input.Guest != nil {
		updates["guest"] = *input.Guest
	}
	if input.Tags != nil {
		updates["tags"] = *input.Tags
	}
	if input.Participant != nil {
		updates["participant"] = *input.Participant
	}
	if input.Datetime != nil {
		eventTime, err := s.parseFutureTime(*input.Datetime)
		if err != nil {
			return nil, err
		}
		updates["time"] = eventTime
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&event).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, id)
}

// Delete removes an event. Only the host or a global admin may delete.
func (s *Service) Delete(ctx context.Context, actor auth.Actor, id string) error {
	var event model.Event
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if !actor.CanMutate(event.HostID) {
		return auth.ErrUnauthorized
	}
	return s.db.WithContext(ctx).Delete(&model.Event{}, "id = ?", id).Error
}

func (s *Service) parseFutureTime(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, ErrInvalidDatetime
	}
	eventTime, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, ErrInvalidDatetime
	}
	if !eventTime.After(s.now()) {
		return time.Time{}, ErrPastEvent
	}
	return eventTime.UTC(), nil
}
