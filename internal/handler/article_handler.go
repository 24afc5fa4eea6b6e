package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"pressroom/internal/auth"
	apperrors "pressroom/internal/errors"
	"pressroom/internal/model"
	"pressroom/internal/response"
	"pressroom/internal/service"
	"pressroom/internal/validation"
)

// ArticleHandler handles article endpoints.
type ArticleHandler struct {
	articleService service.ArticleService
}

// NewArticleHandler creates a new article handler.
func NewArticleHandler(articleService service.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

// CreateArticleRequest represents an article creation request.
type CreateArticleRequest struct {
	Title   string `json:"title" validate:"required,min=3,max=200"`
	Content string `json:"content" validate:"required,min=10,max=10000"`
	Status  string `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED"`
}

// UpdateArticleRequest represents a partial article update; at least one
// field must be set.
type UpdateArticleRequest struct {
	Title   *string `json:"title" validate:"omitempty,min=3,max=200"`
	Content *string `json:"content" validate:"omitempty,min=10,max=10000"`
	Status  string  `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED"`
}

// PublicList godoc
// @Summary List published articles
// @Tags articles
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param search query string false "Search in title or content"
// @Success 200 {object} response.Envelope
// @Router /articles/public [get]
func (h *ArticleHandler) PublicList(c echo.Context) error {
	filters, err := validation.ParseListFilters(c.QueryParams())
	if err != nil {
		return err
	}

	result, err := h.articleService.PublicList(c.Request().Context(), filters)
	if err != nil {
		return err
	}
	return response.JSON(c, http.StatusOK, "", result)
}

// List godoc
// @Summary List articles with filters and pagination
// @Tags articles
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param status query string false "DRAFT or PUBLISHED"
// @Param authorId query int false "Filter by author"
// @Param search query string false "Search in title or content"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /articles [get]
func (h *ArticleHandler) List(c echo.Context) error {
	filters, err := validation.ParseListFilters(c.QueryParams())
	if err != nil {
		return err
	}

	result, err := h.articleService.List(c.Request().Context(), filters)
	if err != nil {
		return err
	}
	return response.JSON(c, http.StatusOK, "", result)
}

// MyArticles godoc
// @Summary List the caller's own articles
// @Tags articles
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param status query string false "DRAFT or PUBLISHED"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /articles/my-articles [get]
func (h *ArticleHandler) MyArticles(c echo.Context) error {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		return echo.ErrUnauthorized
	}

	filters, err := validation.ParseListFilters(c.QueryParams())
	if err != nil {
		return err
	}

	result, err := h.articleService.ListByAuthor(c.Request().Context(), claims.UserID, filters)
	if err != nil {
		return err
	}
	return response.JSON(c, http.StatusOK, "", result)
}

// Get godoc
// @Summary Fetch a single article
// @Tags articles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Article ID"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /articles/{id} [get]
func (h *ArticleHandler) Get(c echo.Context) error {
	id, err := articleID(c)
	if err != nil {
		return err
	}

	article, err := h.articleService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return response.JSON(c, http.StatusOK, "", article)
}

// Create godoc
// @Summary Create an article
// @Tags articles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateArticleRequest true "Article data"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /articles [post]
func (h *ArticleHandler) Create(c echo.Context) error {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		return echo.ErrUnauthorized
	}

	var req CreateArticleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	article, err := h.articleService.Create(c.Request().Context(), claims.UserID, claims.Role, req.Title, req.Content, model.ArticleStatus(req.Status))
	if err != nil {
		return err
	}
	return response.JSON(c, http.StatusCreated, "Article created successfully", article)
}

// Update godoc
// @Summary Update an article
// @Tags articles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Article ID"
// @Param request body UpdateArticleRequest true "Fields to update"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /articles/{id} [put]
func (h *ArticleHandler) Update(c echo.Context) error {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		return echo.ErrUnauthorized
	}

	id, err := articleID(c)
	if err != nil {
		return err
	}

	var req UpdateArticleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	article, err := h.articleService.Update(c.Request().Context(), id, claims.UserID, claims.Role, req.Title, req.Content, model.ArticleStatus(req.Status))
	if err != nil {
		return err
	}
	return response.JSON(c, http.StatusOK, "Article updated successfully", article)
}

// Delete godoc
// @Summary Delete an article
// @Tags articles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Article ID"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /articles/{id} [delete]
func (h *ArticleHandler) Delete(c echo.Context) error {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		return echo.ErrUnauthorized
	}

	id, err := articleID(c)
	if err != nil {
		return err
	}

	if err := h.articleService.Delete(c.Request().Context(), id, claims.UserID, claims.Role); err != nil {
		return err
	}
	return response.JSON(c, http.StatusOK, "Article deleted successfully", nil)
}

func articleID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.NewValidationError("id", "Id must be a positive integer")
	}
	return uint(id), nil
}
