package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/storebooks/internal/application/service"
	"github.com/sangkips/storebooks/internal/domain/entity"
	"github.com/sangkips/storebooks/internal/domain/repository"
	"github.com/sangkips/storebooks/internal/presentation/http/dto/request"
	"github.com/sangkips/storebooks/internal/presentation/http/dto/response"
	"github.com/sangkips/storebooks/pkg/apperror"
)

// PurchaseHandler handles purchase-related HTTP requests
type PurchaseHandler struct {
	purchaseService *service.PurchaseService
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(purchaseService *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// List handles listing purchases
func (h *PurchaseHandler) List(c *gin.Context) {
	var filter request.PurchaseFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	start, end, err := parseDateRange(filter.StartDate, filter.EndDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.purchaseService.ListPurchases(c.Request.Context(), &repository.PurchaseFilterParams{
		Pagination: pageParams(filter.Page, filter.PerPage),
		Search:     filter.Search,
		ProductID:  filter.ProductID,
		StartDate:  start,
		EndDate:    end,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Purchases retrieved successfully", result)
}

// Create handles recording a purchase
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req request.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	date, fieldErr := parseDate("date", req.Date)
	if fieldErr != nil {
		response.ValidationError(c, []apperror.FieldError{*fieldErr})
		return
	}

	items := make([]entity.PurchaseItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, entity.PurchaseItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	receipt, err := h.purchaseService.RecordPurchase(c.Request.Context(), &service.RecordPurchaseInput{
		Date:         date,
		Supplier:     req.Supplier,
		Items:        items,
		ShippingCost: req.ShippingCost,
		CustomsCost:  req.CustomsCost,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Purchase recorded successfully", receipt)
}

// Get handles getting a purchase by ID
func (h *PurchaseHandler) Get(c *gin.Context) {
	purchase, err := h.purchaseService.GetPurchase(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase retrieved successfully", purchase)
}
