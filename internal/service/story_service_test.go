package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sefazor/tournest-backend/internal/models"
	"github.com/sefazor/tournest-backend/pkg/utils"
	"go.uber.org/zap"
)

func strPtr(s string) *string { return &s }

func TestStoryOwnership(t *testing.T) {
	f := newFixture(t)
	f.mustUser(t, tourist.Email, models.RoleTourist)
	svc := NewStoryService(f.stories, f.users, nil, zap.NewNop())

	story, err := svc.Create(models.CreateStoryRequest{
		Title:  "Sundarbans diary",
		Images: []string{"https://img/1.jpg", "https://img/2.jpg", "https://img/1.jpg"},
	}, tourist)
	if err != nil {
		t.Fatal(err)
	}
	if story.AuthorName != tourist.Email || story.AuthorRole != models.RoleTourist || len(story.Images) != 2 {
		t.Fatalf("story = %+v", story)
	}

	updated, err := svc.Update(context.Background(), story.ID, models.UpdateStoryRequest{
		Title:        strPtr("Sundarbans, day two"),
		RemoveImages: []string{"https://img/1.jpg"},
		AddImages:    []string{"https://img/3.jpg", "https://img/2.jpg"},
	}, tourist)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Title != "Sundarbans, day two" || strings.Join(updated.Images, ",") != "https://img/2.jpg,https://img/3.jpg" {
		t.Fatalf("updated = %+v", updated)
	}

	if _, err := svc.Update(context.Background(), story.ID, models.UpdateStoryRequest{Title: strPtr("mine now")}, guide); !errors.Is(err, ErrForbidden) {
		t.Fatalf("foreign edit: %v", err)
	}
	if _, err := svc.Update(context.Background(), story.ID, models.UpdateStoryRequest{Title: strPtr("  ")}, tourist); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("blank title: %v", err)
	}
	if err := svc.Delete(context.Background(), story.ID, guide); !errors.Is(err, ErrForbidden) {
		t.Fatalf("foreign delete: %v", err)
	}
	if err := svc.Delete(context.Background(), story.ID, admin); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if _, err := svc.Get(story.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("after delete: %v", err)
	}
}

func TestStoryImagesLeaveTheBucket(t *testing.T) {
	f := newFixture(t)
	f.mustUser(t, tourist.Email, models.RoleTourist)
	store := &fakeStorage{}
	svc := NewStoryService(f.stories, f.users, store, zap.NewNop())
	ctx := context.Background()

	story, err := svc.Create(models.CreateStoryRequest{
		Title: "Sajek",
		Images: []string{
			"https://cdn.example.com/stories/a.jpg",
			"https://cdn.example.com/stories/b.jpg",
			"https://elsewhere.example.com/c.jpg",
		},
	}, tourist)
	if err != nil {
		t.Fatal(err)
	}

	// b.jpg is removed and added back in the same edit, so it stays
	if _, err := svc.Update(ctx, story.ID, models.UpdateStoryRequest{
		RemoveImages: []string{"https://cdn.example.com/stories/a.jpg", "https://cdn.example.com/stories/b.jpg", "https://elsewhere.example.com/c.jpg"},
		AddImages:    []string{"https://cdn.example.com/stories/b.jpg"},
	}, tourist); err != nil {
		t.Fatal(err)
	}
	if strings.Join(store.deleted, ",") != "stories/a.jpg" {
		t.Fatalf("deleted after update = %v", store.deleted)
	}

	store.deleteErr = errors.New("bucket unavailable")
	if err := svc.Delete(ctx, story.ID, tourist); err != nil {
		t.Fatalf("storage failure leaked into delete: %v", err)
	}
	if _, err := svc.Get(story.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("story still present: %v", err)
	}
}

func TestStoryDeleteRemovesObjects(t *testing.T) {
	f := newFixture(t)
	f.mustUser(t, tourist.Email, models.RoleTourist)
	store := &fakeStorage{}
	svc := NewStoryService(f.stories, f.users, store, zap.NewNop())

	story, err := svc.Create(models.CreateStoryRequest{Title: "Ratargul", Images: []string{"https://cdn.example.com/stories/r.png"}}, tourist)
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(context.Background(), story.ID, admin); err != nil {
		t.Fatal(err)
	}
	if len(store.deleted) != 1 || store.deleted[0] != "stories/r.png" {
		t.Fatalf("deleted = %v", store.deleted)
	}
}

func TestStoryListByAuthor(t *testing.T) {
	f := newFixture(t)
	f.mustUser(t, tourist.Email, models.RoleTourist)
	f.mustUser(t, guide.Email, models.RoleTourGuide)
	svc := NewStoryService(f.stories, f.users, nil, zap.NewNop())

	svc.Create(models.CreateStoryRequest{Title: "Hill tracts"}, tourist)
	svc.Create(models.CreateStoryRequest{Title: "Tea gardens"}, tourist)
	svc.Create(models.CreateStoryRequest{Title: "Mangroves"}, guide)

	page, err := svc.List(tourist.Email, "", utils.Pagination{Page: 1, Limit: 10})
	if err != nil || page.Total != 2 {
		t.Fatalf("by author: %+v %v", page, err)
	}
	page, _ = svc.List("", "mangrove", utils.Pagination{Page: 1, Limit: 10})
	if page.Total != 1 {
		t.Fatalf("search: %+v", page)
	}

	random, err := svc.Random(0)
	if err != nil || len(random) != 3 {
		t.Fatalf("random: %d %v", len(random), err)
	}
}

func TestUploadImages(t *testing.T) {
	f := newFixture(t)
	store := &fakeStorage{}
	svc := NewStoryService(f.stories, f.users, store, zap.NewNop())

	urls, err := svc.UploadImages(context.Background(), []ImageUpload{
		{Filename: "a.JPG", ContentType: "image/jpeg", Size: 3, Body: strings.NewReader("abc")},
		{Filename: "b.png", ContentType: "image/png", Size: 3, Body: strings.NewReader("def")},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(urls) != 2 || !strings.HasSuffix(urls[0], ".jpg") || !strings.HasPrefix(store.keys[1], "stories/") {
		t.Fatalf("urls = %v keys = %v", urls, store.keys)
	}

	_, err = svc.UploadImages(context.Background(), []ImageUpload{{Filename: "cv.pdf", ContentType: "application/pdf", Body: strings.NewReader("x")}})
	if !errors.Is(err, ErrBadRequest) {
		t.Fatalf("pdf: %v", err)
	}
	_, err = svc.UploadImages(context.Background(), []ImageUpload{{Filename: "big.png", ContentType: "image/png", Size: MaxImageSize + 1, Body: strings.NewReader("x")}})
	if !errors.Is(err, ErrBadRequest) {
		t.Fatalf("oversized: %v", err)
	}

	noStore := NewStoryService(f.stories, f.users, nil, zap.NewNop())
	if _, err := noStore.UploadImages(context.Background(), []ImageUpload{{Filename: "a.png", ContentType: "image/png"}}); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("no storage: %v", err)
	}
}
