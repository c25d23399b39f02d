package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/storebooks/internal/application/service"
	"github.com/sangkips/storebooks/internal/domain/repository"
	"github.com/sangkips/storebooks/internal/presentation/http/dto/request"
	"github.com/sangkips/storebooks/internal/presentation/http/dto/response"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List handles listing products
func (h *ProductHandler) List(c *gin.Context) {
	var filter request.ProductFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.productService.ListProducts(c.Request.Context(), &repository.ProductFilterParams{
		Pagination: pageParams(filter.Page, filter.PerPage),
		Search:     filter.Search,
		LowStock:   filter.LowStock,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Products retrieved successfully", result)
}

// Create handles adding a product to the catalogue
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &service.CreateProductInput{
		Name:          req.Name,
		SKU:           req.SKU,
		Quantity:      req.Quantity,
		PurchasePrice: req.PurchasePrice,
		SalePrice:     req.SalePrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// Get handles getting a product by ID
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// LowStock handles listing products under the low-stock threshold
func (h *ProductHandler) LowStock(c *gin.Context) {
	products := h.productService.LowStock(c.Request.Context())
	response.OK(c, "Low stock products retrieved successfully", gin.H{
		"threshold": h.productService.LowStockThreshold(),
		"products":  products,
	})
}

// Movements handles listing the stock movement history of a product
func (h *ProductHandler) Movements(c *gin.Context) {
	movements, err := h.productService.ItemMovements(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product movements retrieved successfully", movements)
}
