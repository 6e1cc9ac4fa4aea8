package polls

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
	// ErrNotFound indicates no poll row matches the given identifier.
	ErrNotFound = errors.New("polls: not found")
	// ErrAlreadyVoted surfaces verbatim on a duplicate vote attempt.
	ErrAlreadyVoted = errors.New("You have already voted in this poll.")
	// ErrPollClosed surfaces verbatim when voting on a closed or expired poll.
	ErrPollClosed = errors.New("Poll is closed or expired.")
	// ErrInvalidOption surfaces verbatim when the option does not belong to
	// the poll.
	ErrInvalidOption = errors.New("Invalid option selected.")
	// ErrInvalidExpiry surfaces verbatim when expiresAt cannot be parsed.
	ErrInvalidExpiry = errors.New("Invalid expiresAt value. Please provide a valid ISO datetime string.")
	// ErrNoOptions surfaces verbatim when a poll would end up without options.
	ErrNoOptions = errors.New("A poll needs at least one option.")

	errMissingDatabase = errors.New("polls: database connection required")
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
	opCreate = "polls.create"
	opVote   = "polls.vote"
	opUpdate = "polls.update"
	opDelete = "polls.delete"
)

func newServiceError(operation, reason string, cause error) error {
	return &ServiceError{code: fmt.Sprintf("%s.%s", operation, reason), err: cause}
}

// ServiceConfig describes the dependencies required by the poll service.
type ServiceConfig struct {
	Database   *gorm.DB
	Clock      func() time.Time
	IDProvider database.IDProvider
	Logger     *zap.Logger
}

// Service implements poll and vote reads and writes.
type Service struct {
	db         *gorm.DB
	now        func() time.Time
	idProvider database.IDProvider
	logger     *zap.Logger
}

// NewService constructs the poll service.
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

// Get returns one poll with its options and votes attached.
func (s *Service) Get(ctx context.Context, id string) (*model.Poll, error) {
	var poll model.Poll
	err := s.db.WithContext(ctx).
		Preload("Options").
		Preload("Votes").
		Where("id = ?", id).
		First(&poll).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &poll, nil
}

// List returns all polls with their options attached.
func (s *Service) List(ctx context.Context) ([]model.Poll, error) {
	var polls []model.Poll
	if err := s.db.WithContext(ctx).
		Preload("Options").
		Order("created_at DESC").
		Find(&polls).Error; err != nil {
		return nil, err
	}
	return polls, nil
}

// CreateInput carries the fields accepted when creating a poll.
type CreateInput struct {
	Title       string
	Description string
	Options     []string
	ExpiresAt   string
}

// Create stores an OPEN poll with its nested options in one transaction. The
// caller becomes the poll's admin, independent of the global role.
func (s *Service) Create(ctx context.Context, actor auth.Actor, input CreateInput) (*model.Poll, error) {
	if len(input.Options) == 0 {
		return nil, ErrNoOptions
	}
	expiresAt, err := parseExpiry(input.ExpiresAt)
	if err != nil {
		return nil, err
	}

	pollID, err := s.idProvider.NewID()
	if err != nil {
		return nil, newServiceError(opCreate, "id_generation_failed", err)
	}

	poll := model.Poll{
		ID:          pollID,
		AdminID:     actor.UserID,
		Title:       input.Title,
		Description: input.Description,
		Status:      model.PollStatusOpen,
		ExpiresAt:   expiresAt,
		CreatedAt:   s.now().UTC(),
	}

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&poll).Error; err != nil {
			return newServiceError(opCreate, "poll_insert_failed", err)
		}
		for _, text := range input.Options {
			optionID, idErr := s.idProvider.NewID()
			if idErr != nil {
				return newServiceError(opCreate, "id_generation_failed", idErr)
			}
			option := model.PollOption{ID: optionID, PollID: pollID, Text: text}
			if err := tx.Create(&option).Error; err != nil {
				return newServiceError(opCreate, "option_insert_failed", err)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.Get(ctx, pollID)
}

// Vote records the caller's choice. The unique index on (poll_id, user_id) is
// the authority on duplicates: the insert is attempted unconditionally and a
// duplicate-key error maps to ErrAlreadyVoted, so concurrent double
// submission cannot slip past a pre-check. Closed and expired polls reject
// votes.
func (s *Service) Vote(ctx context.Context, actor auth.Actor, pollID, optionID string) (*model.Vote, error) {
	var poll model.Poll
	err := s.db.WithContext(ctx).Preload("Options").Where("id = ?", pollID).First(&poll).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if poll.Status == model.PollStatusClose || s.now().After(poll.ExpiresAt) {
		return nil, ErrPollClosed
	}

	validOption := false
	for _, option := range poll.Options {
		if option.ID == optionID {
			validOption = true
			break
		}
	}
	if !validOption {
		return nil, ErrInvalidOption
	}

	voteID, err := s.idProvider.NewID()
	if err != nil {
		return nil, newServiceError(opVote, "id_generation_failed", err)
	}
	vote := model.Vote{
		ID:        voteID,
		PollID:    pollID,
		UserID:    actor.UserID,
		OptionID:  optionID,
		CreatedAt: s.now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&vote).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, ErrAlreadyVoted
		}
		s.logger.Error("vote insert failed", zap.String("poll_id", pollID), zap.Error(err))
		return nil, newServiceError(opVote, "vote_insert_failed", err)
	}

	var stored model.Vote
	if err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Option").
		Where("id = ?", voteID).
		First(&stored).Error; err != nil {
		return nil, newServiceError(opVote, "vote_select_failed", err)
	}
	return &stored, nil
}

// UpdateInput carries the optional fields accepted when updating a poll. A
// non-nil Options slice replaces the entire option set.
type UpdateInput struct {
	Title       *string
	Description *string
	Status      *string
	ExpiresAt   *string
	Options     []string
}

// Update applies the supplied fields. Only the poll admin or a global admin
// may update. Replacing the option set deletes all votes first, then deletes
// and recreates the options, inside one transaction, since dropped options
// would orphan the votes referencing them.
func (s *Service) Update(ctx context.Context, actor auth.Actor, id string, input UpdateInput) (*model.Poll, error) {
	var poll model.Poll
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&poll).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !actor.CanMutate(poll.AdminID) {
		return nil, auth.ErrUnauthorized
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Status != nil {
		status := model.PollStatus(*input.Status)
		if status != model.PollStatusOpen && status != model.PollStatusClose {
			return nil, newServiceError(opUpdate, "invalid_status", fmt.Errorf("unknown status %q", *input.Status))
		}
		updates["status"] = status
	}
	if input.ExpiresAt != nil {
		expiresAt, err := parseExpiry(*input.ExpiresAt)
		if err != nil {
			return nil, err
		}
		updates["expires_at"] = expiresAt
	}
	if input.Options != nil && len(input.Options) == 0 {
		return nil, ErrNoOptions
	}

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&model.Poll{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return newServiceError(opUpdate, "poll_update_failed", err)
			}
		}
		if input.Options == nil {
			return nil
		}
		if err := tx.Delete(&model.Vote{}, "poll_id = ?", id).Error; err != nil {
			return newServiceError(opUpdate, "vote_delete_failed", err)
		}
		if err := tx.Delete(&model.PollOption{}, "poll_id = ?", id).Error; err != nil {
			return newServiceError(opUpdate, "option_delete_failed", err)
		}
		for _, text := range input.Options {
			optionID, idErr := s.idProvider.NewID()
			if idErr != nil {
				return newServiceError(opUpdate, "id_generation_failed", idErr)
			}
			option := model.PollOption{ID: optionID, PollID: id, Text: text}
			if err := tx.Create(&option).Error; err != nil {
				return newServiceError(opUpdate, "option_insert_failed", err)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.Get(ctx, id)
}

// Delete removes a poll with its options and votes. Only the poll admin or a
// global admin may delete. The deleted poll is returned.
func (s *Service) Delete(ctx context.Context, actor auth.Actor, id string) (*model.Poll, error) {
	poll, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanMutate(poll.AdminID) {
		return nil, auth.ErrUnauthorized
	}

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Vote{}, "poll_id = ?", id).Error; err != nil {
			return newServiceError(opDelete, "vote_delete_failed", err)
		}
		if err := tx.Delete(&model.PollOption{}, "poll_id = ?", id).Error; err != nil {
			return newServiceError(opDelete, "option_delete_failed", err)
		}
		if err := tx.Delete(&model.Poll{}, "id = ?", id).Error; err != nil {
			return newServiceError(opDelete, "poll_delete_failed", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return poll, nil
}

func parseExpiry(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, ErrInvalidExpiry
	}
	expiresAt, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, ErrInvalidExpiry
	}
	return expiresAt.UTC(), nil
}
