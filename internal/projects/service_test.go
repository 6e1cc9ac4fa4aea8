package projects

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

	dsn := fmt.Sprintf("file:projects_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Project{}, &model.Like{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	service, err := NewService(ServiceConfig{
		Database:   db,
		Clock:      func() time.Time { return time.Unix(1780000000, 0).UTC() },
		IDProvider: &sequenceIDGenerator{},
	})
	if err != nil {
		t.Fatalf("failed to construct project service: %v", err)
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

func TestCreateStoresProjectWithOwner(t *testing.T) {
	service, db := newTestService(t)
	owner := seedMember(t, db, "owner-1")

	project, err := service.Create(context.Background(), auth.Actor{UserID: owner.ID}, CreateInput{
		Title:       "Club Site",
		Description: "Static site for the club",
		GithubLink:  "https://github.com/club/site",
		Tags:        []string{"web", "go"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if project.UserID != owner.ID {
		t.Fatalf("expected caller to own project, got %s", project.UserID)
	}
	if project.User == nil || project.User.ID != owner.ID {
		t.Fatalf("expected owner preloaded, got %+v", project.User)
	}
	if len(project.Tags) != 2 || project.Tags[0] != "web" {
		t.Fatalf("unexpected tags %v", project.Tags)
	}
	if project.Likes != 0 {
		t.Fatalf("expected fresh project to start at zero likes, got %d", project.Likes)
	}
}

func TestToggleLikeIsAnInvolution(t *testing.T) {
	service, db := newTestService(t)
	owner := seedMember(t, db, "owner-1")
	fan := seedMember(t, db, "fan-2")

	project, err := service.Create(context.Background(), auth.Actor{UserID: owner.ID}, CreateInput{
		Title:       "Toggled",
		Description: "d",
		GithubLink:  "https://github.com/club/toggled",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, err := service.ToggleLike(context.Background(), auth.Actor{UserID: fan.ID}, project.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !first.Liked || first.Likes != 1 {
		t.Fatalf("expected liked=true likes=1, got %+v", first)
	}

	second, err := service.ToggleLike(context.Background(), auth.Actor{UserID: fan.ID}, project.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Liked || second.Likes != 0 {
		t.Fatalf("expected liked=false likes=0, got %+v", second)
	}

	var likeCount int64
	if err := db.Model(&model.Like{}).Where("project_id = ?", project.ID).Count(&likeCount).Error; err != nil {
		t.Fatalf("failed to count likes: %v", err)
	}
	if likeCount != 0 {
		t.Fatalf("expected no like rows after double toggle, got %d", likeCount)
	}
}

func TestToggleLikeCountsDistinctUsers(t *testing.T) {
	service, db := newTestService(t)
	owner := seedMember(t, db, "owner-1")
	fanA := seedMember(t, db, "fan-a")
	fanB := seedMember(t, db, "fan-b")

	project, err := service.Create(context.Background(), auth.Actor{UserID: owner.ID}, CreateInput{
		Title:       "Popular",
		Description: "d",
		GithubLink:  "https://github.com/club/popular",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := service.ToggleLike(context.Background(), auth.Actor{UserID: fanA.ID}, project.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result, err := service.ToggleLike(context.Background(), auth.Actor{UserID: fanB.ID}, project.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Likes != 2 {
		t.Fatalf("expected two likes, got %d", result.Likes)
	}

	var stored model.Project
	if err := db.Where("id = ?", project.ID).First(&stored).Error; err != nil {
		t.Fatalf("failed to load project: %v", err)
	}
	var likeRows int64
	if err := db.Model(&model.Like{}).Where("project_id = ?", project.ID).Count(&likeRows).Error; err != nil {
		t.Fatalf("failed to count likes: %v", err)
	}
	if int64(stored.Likes) != likeRows {
		t.Fatalf("counter drifted from like rows: counter=%d rows=%d", stored.Likes, likeRows)
	}
}

func TestToggleLikeUnknownProject(t *testing.T) {
	service, db := newTestService(t)
	fan := seedMember(t, db, "fan-1")

	if _, err := service.ToggleLike(context.Background(), auth.Actor{UserID: fan.ID}, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateRequiresOwnerOrAdmin(t *testing.T) {
	service, db := newTestService(t)
	owner := seedMember(t, db, "owner-1")
	stranger := seedMember(t, db, "member-2")

	project, err := service.Create(context.Background(), auth.Actor{UserID: owner.ID}, CreateInput{
		Title:       "Guarded",
		Description: "d",
		GithubLink:  "https://github.com/club/guarded",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	title := "Taken over"
	if _, err := service.Update(context.Background(), auth.Actor{UserID: stranger.ID}, project.ID, UpdateInput{Title: &title}); !errors.Is(err, auth.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	updated, err := service.Update(context.Background(), auth.Actor{UserID: stranger.ID, Admin: true}, project.ID, UpdateInput{Title: &title, Tags: []string{"archived"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != "Taken over" {
		t.Fatalf("expected admin update to apply, got %q", updated.Title)
	}
	if len(updated.Tags) != 1 || updated.Tags[0] != "archived" {
		t.Fatalf("expected tags replaced, got %v", updated.Tags)
	}
}

func TestDeleteRemovesLikesWithProject(t *testing.T) {
	service, db := newTestService(t)
	owner := seedMember(t, db, "owner-1")
	fan := seedMember(t, db, "fan-2")

	project, err := service.Create(context.Background(), auth.Actor{UserID: owner.ID}, CreateInput{
		Title:       "Short lived",
		Description: "d",
		GithubLink:  "https://github.com/club/short",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := service.ToggleLike(context.Background(), auth.Actor{UserID: fan.ID}, project.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := service.Delete(context.Background(), auth.Actor{UserID: owner.ID}, project.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var likeRows int64
	if err := db.Model(&model.Like{}).Count(&likeRows).Error; err != nil {
		t.Fatalf("failed to count likes: %v", err)
	}
	if likeRows != 0 {
		t.Fatalf("expected likes removed with project, got %d rows", likeRows)
	}
	if _, err := service.Get(context.Background(), project.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
