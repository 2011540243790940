package transport

import (
	"errors"
	"fmt"
	"net/http"

	"produtos-api/internal/middleware"
	"produtos-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CategoryHandler handles HTTP requests for category operations
type CategoryHandler struct {
	categoryService service.CategoryService
	logger          *zap.Logger
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService service.CategoryService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		logger:          logger,
	}
}

// RegisterRoutes registers all category routes
func (h *CategoryHandler) RegisterRoutes(r chi.Router) {
	r.Route("/categoria", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
	})
}

// List handles listing every category. An empty catalog answers 204.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.ListCategories(r.Context())
	if err != nil {
		middleware.RespondWithAppError(w, r, h.logger, err)
		return
	}

	if len(categories) == 0 {
		middleware.RespondNoContent(w)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toCategoryResponses(categories))
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		middleware.RespondWithAppError(w, r, h.logger, err)
		return
	}

	category, err := h.categoryService.GetCategory(r.Context(), id)
	if err != nil {
		middleware.RespondWithAppError(w, r, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toCategoryResponse(category))
}

// Create handles category creation
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if !decodeRequest(w, r, h.logger, &req) {
		return
	}

	category, err := h.categoryService.CreateCategory(r.Context(), req.Name)
	if err != nil {
		middleware.RespondWithAppError(w, r, h.logger, err)
		return
	}

	h.logger.Info("Category created", zap.Int64("category_id", category.ID))
	w.Header().Set("Location", fmt.Sprintf("/categoria/%d", category.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, toCategoryResponse(category))
}

// Update handles renaming a category
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		middleware.RespondWithAppError(w, r, h.logger, err)
		return
	}

	var req CategoryRequest
	if !decodeRequest(w, r, h.logger, &req) {
		return
	}

	if _, err := h.categoryService.UpdateCategory(r.Context(), id, req.Name); err != nil {
		middleware.RespondWithAppError(w, r, h.logger, err)
		return
	}

	h.logger.Info("Category updated", zap.Int64("category_id", id))
	middleware.RespondNoContent(w)
}

// decodeRequest decodes and validates the body into v, writing a 400 response
// and returning false when it is unusable.
func decodeRequest(w http.ResponseWriter, r *http.Request, logger *zap.Logger, v interface{}) bool {
	err := middleware.DecodeAndValidate(r, v)
	if err == nil {
		return true
	}

	logger.Debug("Request validation failed", zap.String("path", r.URL.Path), zap.Error(err))

	if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
		middleware.RespondWithValidationErrors(w, validationErrors)
		return false
	}

	message := "invalid request body"
	if !errors.Is(err, middleware.ErrInvalidBody) {
		message = err.Error()
	}
	middleware.RespondWithError(w, http.StatusBadRequest, message)
	return false
}
