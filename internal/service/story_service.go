package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/sefazor/tournest-backend/internal/models"
	"github.com/sefazor/tournest-backend/internal/repository"
	"github.com/sefazor/tournest-backend/pkg/storage"
	"github.com/sefazor/tournest-backend/pkg/utils"
	"go.uber.org/zap"
)

const (
	MaxImageSize      = 5 << 20
	MaxImagesPerBatch = 10
)

type StoryService struct {
	storyRepo *repository.StoryRepository
	userRepo  *repository.UserRepository
	storage   storage.StorageService
	log       *zap.Logger
}

// NewStoryService accepts a nil store; uploads then fail with ErrUnavailable.
func NewStoryService(storyRepo *repository.StoryRepository, userRepo *repository.UserRepository, store storage.StorageService, log *zap.Logger) *StoryService {
	return &StoryService{
		storyRepo: storyRepo,
		userRepo:  userRepo,
		storage:   store,
		log:       log.Named("stories"),
	}
}

type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

func (s *StoryService) List(authorEmail, search string, page utils.Pagination) (*models.Page[models.Story], error) {
	q := repository.ListQuery{
		SearchColumn: "title",
		Search:       search,
		OrderBy:      "created_at DESC",
		Offset:       page.Offset,
		Limit:        page.Limit,
	}
	if authorEmail != "" {
		q.Filters = map[string]interface{}{"author_email": authorEmail}
	}

	stories, total, err := s.storyRepo.List(q)
	if err != nil {
		return nil, err
	}
	return &models.Page[models.Story]{Items: stories, Total: total, Page: page.Page, Limit: page.Limit}, nil
}

func (s *StoryService) Random(size int) ([]models.Story, error) {
	return s.storyRepo.Random(clampRandomSize(size))
}

func (s *StoryService) Get(id uint) (*models.Story, error) {
	story, err := s.storyRepo.GetByID(id)
	if err != nil {
		return nil, notFound(err, "story")
	}
	return story, nil
}

// Create copies the author's name, photo and role from their account.
func (s *StoryService) Create(req models.CreateStoryRequest, actor Actor) (*models.Story, error) {
	story := &models.Story{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Images:      dedupe(nil, req.Images),
		AuthorEmail: actor.Email,
		AuthorRole:  actor.Role,
	}

	author, err := s.userRepo.GetByEmail(actor.Email)
	if err != nil {
		return nil, notFound(err, "author")
	}
	story.AuthorName = author.Name
	story.AuthorPhoto = author.Photo

	if err := s.storyRepo.Create(story); err != nil {
		return nil, err
	}
	return story, nil
}

// Update is owner-only. Removals apply before additions. Removed images that live in our
// bucket are deleted once the story is saved.
func (s *StoryService) Update(ctx context.Context, id uint, req models.UpdateStoryRequest, actor Actor) (*models.Story, error) {
	story, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if story.AuthorEmail != actor.Email {
		return nil, fmt.Errorf("only the author can edit this story: %w", ErrForbidden)
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, fmt.Errorf("title cannot be empty: %w", ErrBadRequest)
		}
		story.Title = title
	}
	if req.Description != nil {
		story.Description = *req.Description
	}
	var dropped []string
	if len(req.RemoveImages) > 0 {
		remove := make(map[string]bool, len(req.RemoveImages))
		for _, img := range req.RemoveImages {
			remove[img] = true
		}
		kept := make([]string, 0, len(story.Images))
		for _, img := range story.Images {
			if remove[img] {
				dropped = append(dropped, img)
				continue
			}
			kept = append(kept, img)
		}
		story.Images = kept
	}
	story.Images = dedupe(story.Images, req.AddImages)

	if err := s.storyRepo.Update(story); err != nil {
		return nil, err
	}
	s.purgeImages(ctx, dropped, story.Images)
	return story, nil
}

// Delete is allowed for the author and for admins.
func (s *StoryService) Delete(ctx context.Context, id uint, actor Actor) error {
	story, err := s.Get(id)
	if err != nil {
		return err
	}
	if story.AuthorEmail != actor.Email && actor.Role != models.RoleAdmin {
		return fmt.Errorf("only the author or an admin can delete this story: %w", ErrForbidden)
	}

	if _, err := s.storyRepo.Delete(id); err != nil {
		return err
	}
	s.purgeImages(ctx, story.Images, nil)
	return nil
}

// purgeImages removes bucket objects behind urls that are not still in keep. Failures are
// logged and never fail the request.
func (s *StoryService) purgeImages(ctx context.Context, urls, keep []string) {
	if s.storage == nil {
		return
	}
	for _, url := range urls {
		if contains(keep, url) {
			continue
		}
		key, ok := s.storage.KeyFromURL(url)
		if !ok {
			continue
		}
		if err := s.storage.Delete(ctx, key); err != nil {
			s.log.Warn("story image delete failed", zap.String("key", key), zap.Error(err))
		}
	}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// UploadImages stores each image under stories/<uuid><ext> and returns the public URLs in
// input order. Earlier uploads are not rolled back when a later one fails.
func (s *StoryService) UploadImages(ctx context.Context, files []ImageUpload) ([]string, error) {
	if s.storage == nil {
		return nil, fmt.Errorf("image storage is not configured: %w", ErrUnavailable)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no images provided: %w", ErrBadRequest)
	}
	if len(files) > MaxImagesPerBatch {
		return nil, fmt.Errorf("at most %d images per upload: %w", MaxImagesPerBatch, ErrBadRequest)
	}
	for _, f := range files {
		if !utils.IsSupportedImage(f.ContentType) {
			return nil, fmt.Errorf("%s: unsupported image type %q: %w", f.Filename, f.ContentType, ErrBadRequest)
		}
		if f.Size > MaxImageSize {
			return nil, fmt.Errorf("%s exceeds %d bytes: %w", f.Filename, MaxImageSize, ErrBadRequest)
		}
	}

	urls := make([]string, 0, len(files))
	for _, f := range files {
		key := "stories/" + uuid.NewString() + strings.ToLower(path.Ext(f.Filename))
		url, err := s.storage.Upload(ctx, key, f.ContentType, f.Body)
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", f.Filename, err)
		}
		urls = append(urls, url)
	}

	s.log.Info("story images uploaded", zap.Int("count", len(urls)))
	return urls, nil
}

func dedupe(base []string, add []string) []string {
	out := make([]string, 0, len(base)+len(add))
	seen := make(map[string]bool, len(base)+len(add))
	for _, list := range [][]string{base, add} {
		for _, v := range list {
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
