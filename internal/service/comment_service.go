package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	blogerrors "github.com/125mkl54l7m/flaskblog/internal/errors"
	"github.com/125mkl54l7m/flaskblog/internal/model"
	"github.com/125mkl54l7m/flaskblog/internal/repository"
)

// CommentService handles visitor comments.
type CommentService interface {
	Add(ctx context.Context, postID, authorID uint, text string) (*model.Comment, error)
	ListByPost(ctx context.Context, postID uint) ([]model.Comment, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// NewCommentService creates a new comment service.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) CommentService {
	return &commentService{commentRepo: commentRepo, postRepo: postRepo}
}

// Add attaches a comment to a post. The parent post must exist.
func (s *commentService) Add(ctx context.Context, postID, authorID uint, text string) (*model.Comment, error) {
	if _, err := s.postRepo.FindByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, blogerrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post %d: %w", postID, err)
	}

	comment := &model.Comment{
		Text:     strings.TrimSpace(text),
		AuthorID: authorID,
		PostID:   postID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

// ListByPost returns the comments belonging to one post.
func (s *commentService) ListByPost(ctx context.Context, postID uint) ([]model.Comment, error) {
	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments for post %d: %w", postID, err)
	}
	return comments, nil
}
