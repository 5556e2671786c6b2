package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/125mkl54l7m/flaskblog/internal/auth"
	blogerrors "github.com/125mkl54l7m/flaskblog/internal/errors"
	"github.com/125mkl54l7m/flaskblog/internal/model"
	"github.com/125mkl54l7m/flaskblog/internal/service"
)

// PostHandler handles the listing, detail, comment and admin authoring routes.
type PostHandler struct {
	postService    service.PostService
	commentService service.CommentService
}

// NewPostHandler creates a new post handler.
func NewPostHandler(postService service.PostService, commentService service.CommentService) *PostHandler {
	return &PostHandler{postService: postService, commentService: commentService}
}

// PostForm is the authoring/editing input schema.
type PostForm struct {
	Title    string `form:"title" validate:"required,max=250"`
	Subtitle string `form:"subtitle" validate:"required,max=250"`
	ImgURL   string `form:"img_url" validate:"required,url"`
	Body     string `form:"body" validate:"required"`
}

// CommentForm is the comment input schema.
type CommentForm struct {
	Text string `form:"comment" validate:"required"`
}

// Index lists every post.
func (h *PostHandler) Index(c echo.Context) error {
	posts, err := h.postService.List(c.Request().Context())
	if err != nil {
		return err
	}
	viewer := auth.CurrentSession(c)
	return c.Render(http.StatusOK, "index.html", echo.Map{
		"Posts":   posts,
		"Viewer":  viewer,
		"IsAdmin": viewer != nil && viewer.Role == model.RoleAdmin,
	})
}

// Show renders one post with its own comments and an empty comment form.
func (h *PostHandler) Show(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	return h.renderPost(c, id, http.StatusOK, nil)
}

// Comment attaches a comment to the post. Anonymous visitors are sent to the
// login page instead.
func (h *PostHandler) Comment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	viewer := auth.CurrentSession(c)
	if viewer == nil {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	var form CommentForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderPost(c, id, http.StatusBadRequest, formErrors(err))
	}

	if _, err := h.commentService.Add(c.Request().Context(), id, viewer.UserID, form.Text); err != nil {
		return mapDomainError(err)
	}
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/post/%d", id))
}

// NewPostPage renders the empty authoring form.
func (h *PostHandler) NewPostPage(c echo.Context) error {
	return h.renderPostForm(c, http.StatusOK, "New Post", "/new-post", PostForm{}, nil, "")
}

// CreatePost inserts a post authored by the session user.
func (h *PostHandler) CreatePost(c echo.Context) error {
	viewer := auth.CurrentSession(c)
	var form PostForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderPostForm(c, http.StatusBadRequest, "New Post", "/new-post", form, formErrors(err), "")
	}

	if _, err := h.postService.Create(c.Request().Context(), viewer.UserID, postInput(form)); err != nil {
		if errors.Is(err, blogerrors.ErrTitleTaken) {
			return h.renderPostForm(c, http.StatusConflict, "New Post", "/new-post", form, nil,
				"A post with that title already exists.")
		}
		return mapDomainError(err)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// EditPostPage renders the authoring form pre-populated from an existing post.
func (h *PostHandler) EditPostPage(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	post, err := h.postService.Get(c.Request().Context(), id)
	if err != nil {
		return mapDomainError(err)
	}
	form := PostForm{
		Title:    post.Title,
		Subtitle: post.Subtitle,
		ImgURL:   post.ImgURL,
		Body:     post.Body,
	}
	return h.renderPostForm(c, http.StatusOK, "Edit Post", fmt.Sprintf("/edit-post/%d", id), form, nil, "")
}

// EditPost overwrites the mutable fields and redirects to the detail page.
func (h *PostHandler) EditPost(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	action := fmt.Sprintf("/edit-post/%d", id)

	var form PostForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderPostForm(c, http.StatusBadRequest, "Edit Post", action, form, formErrors(err), "")
	}

	if _, err := h.postService.Update(c.Request().Context(), id, postInput(form)); err != nil {
		if errors.Is(err, blogerrors.ErrTitleTaken) {
			return h.renderPostForm(c, http.StatusConflict, "Edit Post", action, form, nil,
				"A post with that title already exists.")
		}
		return mapDomainError(err)
	}
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/post/%d", id))
}

// DeletePostPage asks for confirmation before the destructive POST.
func (h *PostHandler) DeletePostPage(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	post, err := h.postService.Get(c.Request().Context(), id)
	if err != nil {
		return mapDomainError(err)
	}
	return c.Render(http.StatusOK, "delete-post.html", echo.Map{
		"Viewer": auth.CurrentSession(c),
		"Post":   post,
	})
}

// DeletePost removes the post and its comments.
func (h *PostHandler) DeletePost(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.postService.Delete(c.Request().Context(), id); err != nil {
		return mapDomainError(err)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *PostHandler) renderPost(c echo.Context, id uint, status int, errs map[string]string) error {
	ctx := c.Request().Context()
	post, err := h.postService.Get(ctx, id)
	if err != nil {
		return mapDomainError(err)
	}
	comments, err := h.commentService.ListByPost(ctx, id)
	if err != nil {
		return err
	}
	viewer := auth.CurrentSession(c)
	return c.Render(status, "post.html", echo.Map{
		"Post":     post,
		"Comments": comments,
		"Viewer":   viewer,
		"IsAdmin":  viewer != nil && viewer.Role == model.RoleAdmin,
		"Errors":   errs,
	})
}

func (h *PostHandler) renderPostForm(c echo.Context, status int, heading, action string, form PostForm, errs map[string]string, message string) error {
	return c.Render(status, "make-post.html", echo.Map{
		"Viewer":  auth.CurrentSession(c),
		"Heading": heading,
		"Action":  action,
		"Form":    form,
		"Errors":  errs,
		"Message": message,
	})
}

func postInput(form PostForm) service.PostInput {
	return service.PostInput{
		Title:    form.Title,
		Subtitle: form.Subtitle,
		Body:     form.Body,
		ImgURL:   form.ImgURL,
	}
}

// parseID reads the :id route parameter; anything non-numeric is a 404.
func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusNotFound, "post not found")
	}
	return uint(id), nil
}

// mapDomainError converts domain sentinels into echo HTTP errors so the
// central error handler renders the right page.
func mapDomainError(err error) error {
	httpErr := blogerrors.MapErrorToHTTP(err)
	if httpErr.StatusCode == http.StatusInternalServerError {
		return err
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
}
