package transport

import (
	"context"
	"fmt"
	"net/http"

	"produtos-api/internal/domain"
	"produtos-api/internal/middleware"
	"produtos-api/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductHandler handles HTTP requests for product operations
type ProductHandler struct {
	productService service.ProductService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/produto", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/emEstoque", h.ListInStock)
		r.Get("/esgotado", h.ListOutOfStock)
		r.Get("/categoria/{categoryId}", h.ListByCategory)
		r.Get("/precoAcima/{min}", h.ListByMinPrice)
		r.Get("/precoAbaixo/{max}", h.ListByMaxPrice)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.ListProducts(r.Context())
	h.respondList(w, r, products, err)
}

func (h *ProductHandler) ListInStock(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.ListInStock(r.Context())
	h.respondList(w, r, products, err)
}

func (h *ProductHandler) ListOutOfStock(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.ListOutOfStock(r.Context())
	h.respondList(w, r, products, err)
}

func (h *ProductHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := idParam(r, "categoryId")
	if err != nil {
		middleware.RespondWithAppError(w, r, h.logger, err)
		return
	}
	products, err := h.productService.ListByCategory(r.Context(), categoryID)
	h.respondList(w, r, products, err)
}

func (h *ProductHandler) ListByMinPrice(w http.ResponseWriter, r *http.Request) {
	h.listByPrice(w, r, "min", h.productService.ListByMinPrice)
}

func (h *ProductHandler) ListByMaxPrice(w http.ResponseWriter, r *http.Request) {
	h.listByPrice(w, r, "max", h.productService.ListByMaxPrice)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		middleware.RespondWithAppError(w, r, h.logger, err)
		return
	}

	product, err := h.productService.GetProduct(r.Context(), id)
	if err != nil {
		middleware.RespondWithAppError(w, r, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toProductResponse(product))
}

// Create handles product creation
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if !decodeRequest(w, r, h.logger, &req) {
		return
	}

	product, err := h.productService.CreateProduct(r.Context(), req.toInput())
	if err != nil {
		middleware.RespondWithAppError(w, r, h.logger, err)
		return
	}

	h.logger.Info("Product created",
		zap.Int64("product_id", product.ID),
		zap.Int64("category_id", product.CategoryID),
	)
	w.Header().Set("Location", fmt.Sprintf("/produto/%d", product.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, toProductResponse(product))
}

// Update handles replacing every field of a product
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		middleware.RespondWithAppError(w, r, h.logger, err)
		return
	}

	var req ProductRequest
	if !decodeRequest(w, r, h.logger, &req) {
		return
	}

	if _, err := h.productService.UpdateProduct(r.Context(), id, req.toInput()); err != nil {
		middleware.RespondWithAppError(w, r, h.logger, err)
		return
	}

	h.logger.Info("Product updated", zap.Int64("product_id", id))
	middleware.RespondNoContent(w)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		middleware.RespondWithAppError(w, r, h.logger, err)
		return
	}

	if err := h.productService.DeleteProduct(r.Context(), id); err != nil {
		middleware.RespondWithAppError(w, r, h.logger, err)
		return
	}

	h.logger.Info("Product deleted", zap.Int64("product_id", id))
	middleware.RespondNoContent(w)
}

type priceLister func(ctx context.Context, value decimal.Decimal) ([]*domain.ProductDetails, error)

func (h *ProductHandler) listByPrice(w http.ResponseWriter, r *http.Request, param string, list priceLister) {
	value, err := priceParam(r, param)
	if err != nil {
		middleware.RespondWithAppError(w, r, h.logger, err)
		return
	}

	products, err := list(r.Context(), value)
	h.respondList(w, r, products, err)
}

func (h *ProductHandler) respondList(w http.ResponseWriter, r *http.Request, products []*domain.ProductDetails, err error) {
	if err != nil {
		middleware.RespondWithAppError(w, r, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, toProductResponses(products))
}

func (req ProductRequest) toInput() service.ProductInput {
	input := service.ProductInput{Name: req.Name}
	if req.Price != nil {
		input.Price = *req.Price
	}
	if req.Quantity != nil {
		input.Quantity = *req.Quantity
	}
	if req.CategoryID != nil {
		input.CategoryID = *req.CategoryID
	}
	return input
}
