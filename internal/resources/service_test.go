package resources

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
	next int
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	g.next++
	return fmt.Sprintf("gen-%d", g.next), nil
}

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:resources_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Resource{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	service, err := NewService(ServiceConfig{
		Database:   db,
		Clock:      func() time.Time { return time.Unix(1780000000, 0).UTC() },
		IDProvider: &sequenceIDGenerator{},
	})
	if err != nil {
		t.Fatalf("failed to construct resource service: %v", err)
	}
	return service, db
}

func seedMember(t *testing.T, db *gorm.DB, id string) model.User {
	t.Helper()
	user := model.User{
		ID:         id,
		ExternalID: "idp_" + id,
		Email:      id + "@club.edu",
		Role:       model.RoleUser,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func TestCreateStoresResourceWithLinks(t *testing.T) {
	service, db := newTestService(t)
	owner := seedMember(t, db, "owner-1")

	resource, err := service.Create(context.Background(), auth.Actor{UserID: owner.ID}, CreateInput{
		Title:        "Go course notes",
		Description:  "Week 1 through 4",
		Category:     "backend",
		DocumentType: "docs",
		Links:        []string{"https://files.example.com/notes-1.pdf", "https://files.example.com/notes-2.pdf"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resource.UserID != owner.ID {
		t.Fatalf("expected caller as owner, got %s", resource.UserID)
	}
	if len(resource.Links) != 2 {
		t.Fatalf("expected both links stored, got %v", resource.Links)
	}
	if resource.User == nil || resource.User.ID != owner.ID {
		t.Fatalf("expected owner preloaded, got %+v", resource.User)
	}
}

func TestCreateRejectsUnknownDocumentType(t *testing.T) {
	service, db := newTestService(t)
	owner := seedMember(t, db, "owner-1")

	_, err := service.Create(context.Background(), auth.Actor{UserID: owner.ID}, CreateInput{
		Title:        "Weird",
		DocumentType: "spreadsheets",
		Links:        []string{"https://files.example.com/x"},
	})
	if !errors.Is(err, ErrInvalidDocumentType) {
		t.Fatalf("expected ErrInvalidDocumentType, got %v", err)
	}
	if err.Error() != "Invalid document type." {
		t.Fatalf("unexpected error message: %q", err.Error())
	}
}

func TestUpdateRequiresOwnerOrAdmin(t *testing.T) {
	service, db := newTestService(t)
	owner := seedMember(t, db, "owner-1")
	stranger := seedMember(t, db, "member-2")

	resource, err := service.Create(context.Background(), auth.Actor{UserID: owner.ID}, CreateInput{
		Title:        "Guarded",
		DocumentType: "links",
		Links:        []string{"https://example.com"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	title := "Renamed"
	if _, err := service.Update(context.Background(), auth.Actor{UserID: stranger.ID}, resource.ID, UpdateInput{Title: &title}); !errors.Is(err, auth.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	var stored model.Resource
	if err := db.Where("id = ?", resource.ID).First(&stored).Error; err != nil {
		t.Fatalf("failed to load resource: %v", err)
	}
	if stored.Title != "Guarded" {
		t.Fatalf("expected rejected update to leave row unchanged, got %q", stored.Title)
	}

	updated, err := service.Update(context.Background(), auth.Actor{UserID: owner.ID}, resource.ID, UpdateInput{
		Title: &title,
		Links: []string{"https://example.com/a", "https://example.com/b"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != "Renamed" || len(updated.Links) != 2 {
		t.Fatalf("unexpected updated resource: %+v", updated)
	}
}

func TestUpdateRejectsUnknownDocumentType(t *testing.T) {
	service, db := newTestService(t)
	owner := seedMember(t, db, "owner-1")

	resource, err := service.Create(context.Background(), auth.Actor{UserID: owner.ID}, CreateInput{
		Title:        "Typed",
		DocumentType: "videos",
		Links:        []string{"https://example.com/v"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := "slides"
	if _, err := service.Update(context.Background(), auth.Actor{UserID: owner.ID}, resource.ID, UpdateInput{DocumentType: &bad}); !errors.Is(err, ErrInvalidDocumentType) {
		t.Fatalf("expected ErrInvalidDocumentType, got %v", err)
	}
}

func TestDeleteRequiresOwnerOrAdmin(t *testing.T) {
	service, db := newTestService(t)
	owner := seedMember(t, db, "owner-1")
	stranger := seedMember(t, db, "member-2")

	resource, err := service.Create(context.Background(), auth.Actor{UserID: owner.ID}, CreateInput{
		Title:        "Short lived",
		DocumentType: "images",
		Links:        []string{"https://example.com/i"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := service.Delete(context.Background(), auth.Actor{UserID: stranger.ID}, resource.ID); !errors.Is(err, auth.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if err := service.Delete(context.Background(), auth.Actor{UserID: stranger.ID, Admin: true}, resource.ID); err != nil {
		t.Fatalf("expected admin delete to succeed, got %v", err)
	}
	if _, err := service.Get(context.Background(), resource.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestListPagesNewestFirst(t *testing.T) {
	service, db := newTestService(t)
	owner := seedMember(t, db, "owner-1")

	for i := 0; i < 3; i++ {
		resource := model.Resource{
			ID:           fmt.Sprintf("seed-%d", i),
			UserID:       owner.ID,
			Title:        fmt.Sprintf("Resource %d", i),
			DocumentType: "docs",
			CreatedAt:    time.Unix(int64(1780000000+i), 0).UTC(),
		}
		if err := db.Create(&resource).Error; err != nil {
			t.Fatalf("failed to seed resource: %v", err)
		}
	}

	page, err := service.List(context.Background(), 2, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("expected page of 2, got %d", len(page))
	}
	if page[0].ID != "seed-2" {
		t.Fatalf("expected newest resource first, got %s", page[0].ID)
	}
}
