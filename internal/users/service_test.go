package users

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/campustech/clubhub/backend/internal/auth"
	"github.com/campustech/clubhub/backend/internal/model"
	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type sequenceIDGenerator struct {
	prefix string
	next   int
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	g.next++
	return fmt.Sprintf("%s-%d", g.prefix, g.next), nil
}

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:users_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Event{}, &model.Project{}, &model.Like{}, &model.Resource{}, &model.Poll{}, &model.PollOption{}, &model.Vote{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	service, err := NewService(ServiceConfig{
		Database:   db,
		Clock:      func() time.Time { return time.Unix(1780000000, 0).UTC() },
		IDProvider: &sequenceIDGenerator{prefix: "user"},
	})
	if err != nil {
		t.Fatalf("failed to construct user service: %v", err)
	}
	return service, db
}

func TestSyncCreatesUserWithDefaultRole(t *testing.T) {
	service, db := newTestService(t)

	created, err := service.Sync(context.Background(), SyncInput{
		ExternalID: "idp_1",
		Email:      "ada@club.edu",
		FirstName:  "Ada",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Role != model.RoleUser {
		t.Fatalf("expected default role USER, got %s", created.Role)
	}
	if created.ID == "" {
		t.Fatalf("expected generated id")
	}

	var stored model.User
	if err := db.Where("external_id = ?", "idp_1").First(&stored).Error; err != nil {
		t.Fatalf("failed to load stored user: %v", err)
	}
	if stored.Email != "ada@club.edu" || stored.FirstName != "Ada" {
		t.Fatalf("unexpected stored user: %+v", stored)
	}
}

func TestSyncUpdatePreservesRole(t *testing.T) {
	service, db := newTestService(t)

	if _, err := service.Sync(context.Background(), SyncInput{ExternalID: "idp_1", Email: "ada@club.edu", FirstName: "Ada"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := db.Model(&model.User{}).Where("external_id = ?", "idp_1").Update("role", model.RoleAdmin).Error; err != nil {
		t.Fatalf("failed to promote user: %v", err)
	}

	if _, err := service.Sync(context.Background(), SyncInput{ExternalID: "idp_1", Email: "ada@alumni.edu", FirstName: "Adaline"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var stored model.User
	if err := db.Where("external_id = ?", "idp_1").First(&stored).Error; err != nil {
		t.Fatalf("failed to load stored user: %v", err)
	}
	if stored.Role != model.RoleAdmin {
		t.Fatalf("expected promotion to survive webhook update, got role %s", stored.Role)
	}
	if stored.Email != "ada@alumni.edu" {
		t.Fatalf("expected email update, got %s", stored.Email)
	}
	if stored.FirstName != "Adaline" {
		t.Fatalf("expected first name update, got %s", stored.FirstName)
	}

	var count int64
	if err := db.Model(&model.User{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count users: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected upsert to keep a single row, got %d", count)
	}
}

func TestSyncUpdateKeepsFirstNameWhenAbsent(t *testing.T) {
	service, db := newTestService(t)

	if _, err := service.Sync(context.Background(), SyncInput{ExternalID: "idp_1", Email: "ada@club.edu", FirstName: "Ada"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := service.Sync(context.Background(), SyncInput{ExternalID: "idp_1", Email: "ada@club.edu"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var stored model.User
	if err := db.Where("external_id = ?", "idp_1").First(&stored).Error; err != nil {
		t.Fatalf("failed to load stored user: %v", err)
	}
	if stored.FirstName != "Ada" {
		t.Fatalf("expected blank webhook first name to leave the stored one, got %q", stored.FirstName)
	}
}

func TestSyncRejectsMissingFields(t *testing.T) {
	service, _ := newTestService(t)

	if _, err := service.Sync(context.Background(), SyncInput{Email: "ada@club.edu"}); !errors.Is(err, ErrInvalidSync) {
		t.Fatalf("expected ErrInvalidSync for missing external id, got %v", err)
	}
	if _, err := service.Sync(context.Background(), SyncInput{ExternalID: "idp_1"}); !errors.Is(err, ErrInvalidSync) {
		t.Fatalf("expected ErrInvalidSync for missing email, got %v", err)
	}
}

func TestGetByExternalIDNotFound(t *testing.T) {
	service, _ := newTestService(t)

	if _, err := service.GetByExternalID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListAppliesDefaultLimit(t *testing.T) {
	service, db := newTestService(t)

	for i := 0; i < 15; i++ {
		user := model.User{
			ID:         fmt.Sprintf("seed-%02d", i),
			ExternalID: fmt.Sprintf("idp_%02d", i),
			Email:      fmt.Sprintf("member%02d@club.edu", i),
			Role:       model.RoleUser,
			CreatedAt:  time.Unix(int64(1780000000+i), 0).UTC(),
		}
		if err := db.Create(&user).Error; err != nil {
			t.Fatalf("failed to seed user: %v", err)
		}
	}

	page, err := service.List(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page) != 10 {
		t.Fatalf("expected default page of 10, got %d", len(page))
	}

	rest, err := service.List(context.Background(), 10, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rest) != 5 {
		t.Fatalf("expected remaining 5 users, got %d", len(rest))
	}
}

func TestUpdateFirstNameTouchesOnlyCaller(t *testing.T) {
	service, db := newTestService(t)

	first, err := service.Sync(context.Background(), SyncInput{ExternalID: "idp_1", Email: "ada@club.edu", FirstName: "Ada"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := service.Sync(context.Background(), SyncInput{ExternalID: "idp_2", Email: "grace@club.edu", FirstName: "Grace"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := service.UpdateFirstName(context.Background(), auth.Actor{UserID: first.ID}, "Adaline")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.FirstName != "Adaline" {
		t.Fatalf("expected updated first name, got %q", updated.FirstName)
	}

	var other model.User
	if err := db.Where("external_id = ?", "idp_2").First(&other).Error; err != nil {
		t.Fatalf("failed to load other user: %v", err)
	}
	if other.FirstName != "Grace" {
		t.Fatalf("expected other user untouched, got %q", other.FirstName)
	}
}
