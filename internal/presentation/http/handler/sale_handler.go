package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/storebooks/internal/application/service"
	"github.com/sangkips/storebooks/internal/domain/entity"
	"github.com/sangkips/storebooks/internal/domain/enum"
	"github.com/sangkips/storebooks/internal/domain/repository"
	"github.com/sangkips/storebooks/internal/presentation/http/dto/request"
	"github.com/sangkips/storebooks/internal/presentation/http/dto/response"
	"github.com/sangkips/storebooks/pkg/apperror"
)

// SaleHandler handles sale-related HTTP requests
type SaleHandler struct {
	saleService    *service.SaleService
	receiptService *service.ReceiptService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService, receiptService *service.ReceiptService) *SaleHandler {
	return &SaleHandler{saleService: saleService, receiptService: receiptService}
}

// List handles listing sales
func (h *SaleHandler) List(c *gin.Context) {
	var filter request.SaleFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	start, end, err := parseDateRange(filter.StartDate, filter.EndDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	params := &repository.SaleFilterParams{
		Pagination: pageParams(filter.Page, filter.PerPage),
		Search:     filter.Search,
		StartDate:  start,
		EndDate:    end,
	}
	if filter.Status != "" {
		status, err := enum.ParseSaleStatus(filter.Status)
		if err != nil {
			response.BadRequest(c, "Invalid status, expected new or shipped")
			return
		}
		params.Status = &status
	}

	result, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Sales retrieved successfully", result)
}

// Create handles recording a sale
func (h *SaleHandler) Create(c *gin.Context) {
	var req request.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	date, fieldErr := parseDate("date", req.Date)
	if fieldErr != nil {
		response.ValidationError(c, []apperror.FieldError{*fieldErr})
		return
	}

	items := make([]entity.SaleItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, entity.SaleItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	receipt, err := h.saleService.RecordSale(c.Request.Context(), &service.RecordSaleInput{
		Date:          date,
		Customer:      req.Customer,
		Items:         items,
		PromotionCost: req.PromotionCost,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale recorded successfully", receipt)
}

// Get handles getting a sale by ID
func (h *SaleHandler) Get(c *gin.Context) {
	sale, err := h.saleService.GetSale(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// Ship handles marking a sale as shipped
func (h *SaleHandler) Ship(c *gin.Context) {
	sale, err := h.saleService.MarkShipped(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale handed to carrier", sale)
}

// PrintReceipt handles printing a sale receipt
func (h *SaleHandler) PrintReceipt(c *gin.Context) {
	if err := h.receiptService.PrintSale(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt sent to printer", gin.H{"sale_id": c.Param("id")})
}
