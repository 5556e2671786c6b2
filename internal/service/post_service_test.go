package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	blogerrors "github.com/125mkl54l7m/flaskblog/internal/errors"
	"github.com/125mkl54l7m/flaskblog/internal/model"
)

// MockPostRepository is a mock implementation of PostRepository.
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *model.BlogPost) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Update(ctx context.Context, post *model.BlogPost) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepository) FindByID(ctx context.Context, id uint) (*model.BlogPost, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BlogPost), args.Error(1)
}

func (m *MockPostRepository) FindByTitle(ctx context.Context, title string) (*model.BlogPost, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BlogPost), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context) ([]model.BlogPost, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BlogPost), args.Error(1)
}

func TestPostService_Create(t *testing.T) {
	input := PostInput{
		Title:    "T",
		Subtitle: "S",
		Body:     "B",
		ImgURL:   "http://x/i.png",
	}

	t.Run("stamps today's formatted date and the author", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockRepo.On("FindByTitle", mock.Anything, "T").Return(nil, gorm.ErrRecordNotFound)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.BlogPost")).Return(nil)

		svc := NewPostService(mockRepo, nil)
		post, err := svc.Create(context.Background(), 1, input)

		assert.NoError(t, err)
		assert.Equal(t, "T", post.Title)
		assert.Equal(t, "S", post.Subtitle)
		assert.Equal(t, "B", post.Body)
		assert.Equal(t, "http://x/i.png", post.ImgURL)
		assert.Equal(t, uint(1), post.AuthorID)
		assert.Equal(t, time.Now().Format(model.DateFormat), post.Date)
		mockRepo.AssertExpectations(t)
	})

	t.Run("title collision is a conflict", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockRepo.On("FindByTitle", mock.Anything, "T").Return(&model.BlogPost{ID: 7, Title: "T"}, nil)

		svc := NewPostService(mockRepo, nil)
		post, err := svc.Create(context.Background(), 1, input)

		assert.Equal(t, blogerrors.ErrTitleTaken, err)
		assert.Nil(t, post)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestPostService_Update(t *testing.T) {
	existing := func() *model.BlogPost {
		return &model.BlogPost{
			ID:       3,
			Title:    "Old Title",
			Subtitle: "Old Subtitle",
			Date:     "May 1, 2020",
			Body:     "Old body",
			ImgURL:   "http://x/old.png",
			AuthorID: 1,
		}
	}

	t.Run("overwrites exactly the submitted fields", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockRepo.On("FindByID", mock.Anything, uint(3)).Return(existing(), nil)
		mockRepo.On("FindByTitle", mock.Anything, "New Title").Return(nil, gorm.ErrRecordNotFound)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.BlogPost")).Return(nil)

		svc := NewPostService(mockRepo, nil)
		post, err := svc.Update(context.Background(), 3, PostInput{
			Title:    "New Title",
			Subtitle: "New Subtitle",
			Body:     "New body",
			ImgURL:   "http://x/new.png",
		})

		assert.NoError(t, err)
		assert.Equal(t, "New Title", post.Title)
		assert.Equal(t, "New Subtitle", post.Subtitle)
		assert.Equal(t, "New body", post.Body)
		assert.Equal(t, "http://x/new.png", post.ImgURL)
		// publication date and author survive the edit
		assert.Equal(t, "May 1, 2020", post.Date)
		assert.Equal(t, uint(1), post.AuthorID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("keeping your own title is not a conflict", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockRepo.On("FindByID", mock.Anything, uint(3)).Return(existing(), nil)
		mockRepo.On("FindByTitle", mock.Anything, "Old Title").Return(existing(), nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.BlogPost")).Return(nil)

		svc := NewPostService(mockRepo, nil)
		_, err := svc.Update(context.Background(), 3, PostInput{
			Title:    "Old Title",
			Subtitle: "Changed",
			Body:     "Changed",
			ImgURL:   "http://x/changed.png",
		})

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("another post's title is a conflict", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockRepo.On("FindByID", mock.Anything, uint(3)).Return(existing(), nil)
		mockRepo.On("FindByTitle", mock.Anything, "Taken").Return(&model.BlogPost{ID: 9, Title: "Taken"}, nil)

		svc := NewPostService(mockRepo, nil)
		_, err := svc.Update(context.Background(), 3, PostInput{
			Title:    "Taken",
			Subtitle: "S",
			Body:     "B",
			ImgURL:   "http://x/i.png",
		})

		assert.Equal(t, blogerrors.ErrTitleTaken, err)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("missing post is not found", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockRepo.On("FindByID", mock.Anything, uint(404)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewPostService(mockRepo, nil)
		_, err := svc.Update(context.Background(), 404, PostInput{Title: "T", Subtitle: "S", Body: "B", ImgURL: "http://x/i.png"})

		assert.Equal(t, blogerrors.ErrPostNotFound, err)
	})
}

func TestPostService_Delete(t *testing.T) {
	t.Run("removes an existing post", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockRepo.On("FindByID", mock.Anything, uint(3)).Return(&model.BlogPost{ID: 3}, nil)
		mockRepo.On("Delete", mock.Anything, uint(3)).Return(nil)

		svc := NewPostService(mockRepo, nil)
		assert.NoError(t, svc.Delete(context.Background(), 3))
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing post is not found", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockRepo.On("FindByID", mock.Anything, uint(404)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewPostService(mockRepo, nil)
		err := svc.Delete(context.Background(), 404)

		assert.Equal(t, blogerrors.ErrPostNotFound, err)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestPostService_List(t *testing.T) {
	mockRepo := new(MockPostRepository)
	mockRepo.On("List", mock.Anything).Return([]model.BlogPost{
		{ID: 1, Title: "First"},
		{ID: 2, Title: "Second"},
	}, nil)

	svc := NewPostService(mockRepo, nil)
	posts, err := svc.List(context.Background())

	assert.NoError(t, err)
	assert.Len(t, posts, 2)
	assert.Equal(t, "First", posts[0].Title)
	mockRepo.AssertExpectations(t)
}
