package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/125mkl54l7m/flaskblog/internal/cache"
	blogerrors "github.com/125mkl54l7m/flaskblog/internal/errors"
	"github.com/125mkl54l7m/flaskblog/internal/model"
	"github.com/125mkl54l7m/flaskblog/internal/repository"
)

const (
	listingCacheKey = "posts:listing"
	listingCacheTTL = 5 * time.Minute
)

// PostInput carries the mutable fields of a post from the authoring form.
type PostInput struct {
	Title    string
	Subtitle string
	Body     string
	ImgURL   string
}

// PostService handles blog post operations.
type PostService interface {
	List(ctx context.Context) ([]model.BlogPost, error)
	Get(ctx context.Context, id uint) (*model.BlogPost, error)
	Create(ctx context.Context, authorID uint, in PostInput) (*model.BlogPost, error)
	Update(ctx context.Context, id uint, in PostInput) (*model.BlogPost, error)
	Delete(ctx context.Context, id uint) error
}

type postService struct {
	postRepo repository.PostRepository
	cache    *cache.Client
}

// NewPostService creates a new post service.
func NewPostService(postRepo repository.PostRepository, cache *cache.Client) PostService {
	return &postService{postRepo: postRepo, cache: cache}
}

// List returns every post, serving from the listing cache when warm.
func (s *postService) List(ctx context.Context) ([]model.BlogPost, error) {
	if data, _ := s.cache.Get(ctx, listingCacheKey); data != nil {
		var cached []model.BlogPost
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	if data, err := json.Marshal(posts); err == nil {
		s.cache.Set(ctx, listingCacheKey, data, listingCacheTTL)
	}
	return posts, nil
}

// Get retrieves a post by identifier.
func (s *postService) Get(ctx context.Context, id uint) (*model.BlogPost, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, blogerrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post %d: %w", id, err)
	}
	return post, nil
}

// Create inserts a new post stamped with today's formatted publication date.
func (s *postService) Create(ctx context.Context, authorID uint, in PostInput) (*model.BlogPost, error) {
	if err := s.checkTitle(ctx, in.Title, 0); err != nil {
		return nil, err
	}

	post := &model.BlogPost{
		Title:    in.Title,
		Subtitle: in.Subtitle,
		Date:     time.Now().Format(model.DateFormat),
		Body:     in.Body,
		ImgURL:   in.ImgURL,
		AuthorID: authorID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	s.cache.Delete(ctx, listingCacheKey)
	return post, nil
}

// Update overwrites the mutable fields of an existing post. The publication
// date and author are never touched.
func (s *postService) Update(ctx context.Context, id uint, in PostInput) (*model.BlogPost, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkTitle(ctx, in.Title, id); err != nil {
		return nil, err
	}

	post.Title = in.Title
	post.Subtitle = in.Subtitle
	post.Body = in.Body
	post.ImgURL = in.ImgURL
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update post %d: %w", id, err)
	}
	s.cache.Delete(ctx, listingCacheKey)
	return post, nil
}

// Delete removes a post and its comments.
func (s *postService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.postRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete post %d: %w", id, err)
	}
	s.cache.Delete(ctx, listingCacheKey)
	return nil
}

// checkTitle enforces title uniqueness, ignoring the post being edited.
func (s *postService) checkTitle(ctx context.Context, title string, selfID uint) error {
	existing, err := s.postRepo.FindByTitle(ctx, title)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("check post title: %w", err)
	}
	if existing.ID != selfID {
		return blogerrors.ErrTitleTaken
	}
	return nil
}
