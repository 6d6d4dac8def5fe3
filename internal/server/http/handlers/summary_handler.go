package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adonay-express/orderflow/internal/domain/model"
	"github.com/adonay-express/orderflow/internal/server/http/dto"
)

// SummaryHandler serves the derived settlement and sales views.
type SummaryHandler struct {
	facade SummaryFacade
}

// NewSummaryHandler constructs SummaryHandler.
func NewSummaryHandler(facade SummaryFacade) *SummaryHandler {
	return &SummaryHandler{facade: facade}
}

// Batches handles GET /api/summaries/batches.
func (h *SummaryHandler) Batches(c *gin.Context) {
	summaries := h.facade.BatchSummaries()

	response := make([]dto.BatchSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		response = append(response, toBatchSummaryResponse(s))
	}
	c.JSON(http.StatusOK, response)
}

// Batch handles GET /api/summaries/batches/:tag.
func (h *SummaryHandler) Batch(c *gin.Context) {
	summary, err := h.facade.BatchSummary(c.Param("tag"))
	if err != nil {
		c.Status(statusForError(err))
		return
	}
	c.JSON(http.StatusOK, toBatchSummaryResponse(*summary))
}

// Categories handles GET /api/summaries/categories.
func (h *SummaryHandler) Categories(c *gin.Context) {
	summaries := h.facade.CategorySummaries()

	response := make([]dto.CategorySummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		response = append(response, dto.CategorySummaryResponse{
			Category: string(s.Category),
			Products: toProductSalesResponse(s.Products),
		})
	}
	c.JSON(http.StatusOK, response)
}

// BatchCSV handles GET /api/summaries/batches/:tag/export.
func (h *SummaryHandler) BatchCSV(c *gin.Context) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="tanda-`+c.Param("tag")+`.csv"`)
	if err := h.facade.ExportBatchSummary(c.Writer, c.Param("tag")); err != nil {
		c.Status(statusForError(err))
		return
	}
	c.Status(http.StatusOK)
}

// CategoriesCSV handles GET /api/summaries/categories/export.
func (h *SummaryHandler) CategoriesCSV(c *gin.Context) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="ventas-categorias.csv"`)
	if err := h.facade.ExportCategorySummaries(c.Writer); err != nil {
		c.Status(statusForError(err))
		return
	}
	c.Status(http.StatusOK)
}

func toBatchSummaryResponse(s model.BatchSummary) dto.BatchSummaryResponse {
	response := dto.BatchSummaryResponse{
		Tag:          s.Tag,
		OrderCount:   s.OrderCount,
		TotalRevenue: s.TotalRevenue,
		Products:     toProductSalesResponse(s.Products),
	}
	if !s.FirstOrderAt.IsZero() {
		first, last := s.FirstOrderAt, s.LastOrderAt
		response.FirstOrderAt = &first
		response.LastOrderAt = &last
	}
	return response
}

func toProductSalesResponse(products []model.ProductSales) []dto.ProductSalesResponse {
	result := make([]dto.ProductSalesResponse, 0, len(products))
	for _, p := range products {
		result = append(result, dto.ProductSalesResponse{
			ProductID: p.ProductID,
			Name:      p.Name,
			Code:      p.Code,
			Category:  string(p.Category),
			Quantity:  p.Quantity,
			Revenue:   p.Revenue,
		})
	}
	return result
}
