package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/listify/backend/internal/domain"
	"github.com/listify/backend/internal/usecase"
	"github.com/sirupsen/logrus"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	research *usecase.ResearchService
	importer *usecase.ImportService
	catalog  domain.CatalogClient
	logger   *logrus.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(
	research *usecase.ResearchService,
	importer *usecase.ImportService,
	catalog domain.CatalogClient,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		research: research,
		importer: importer,
		catalog:  catalog,
		logger:   logger,
	}
}

// HealthCheck returns the liveness status of the service itself
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "listify-backend",
		"version": "1.0.0",
	})
}

// ResearchProduct runs the research pipeline for a product name
func (h *Handler) ResearchProduct(c *gin.Context) {
	var req usecase.ResearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productName is required"})
		return
	}

	record, duplicate, err := h.research.Research(c.Request.Context(), &req)
	if err != nil {
		h.writeResearchError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product":           record,
		"possibleDuplicate": duplicate,
	})
}

// ValidateProduct runs the pure rule checker over a submitted record
func (h *Handler) ValidateProduct(c *gin.Context) {
	var record domain.ProductRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product record"})
		return
	}

	c.JSON(http.StatusOK, usecase.ValidateProduct(&record))
}

// ImportProduct validates a record and, if no blocking errors remain,
// submits it to the catalog as a draft
func (h *Handler) ImportProduct(c *gin.Context) {
	var record domain.ProductRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product record"})
		return
	}

	validation := usecase.ValidateProduct(&record)
	if !validation.IsValid {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":      "record failed validation",
			"validation": validation,
		})
		return
	}

	result, err := h.importer.Import(c.Request.Context(), &record)
	if err != nil {
		h.writeImportError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CatalogHealth probes catalog connectivity and auth. The probe outcome
// is carried in the body; the endpoint itself always answers 200.
func (h *Handler) CatalogHealth(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.CheckHealth(c.Request.Context()))
}

func (h *Handler) writeResearchError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUpstreamEmpty),
		errors.Is(err, domain.ErrUpstreamParse),
		errors.Is(err, domain.ErrUpstreamRequest):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		h.logger.WithError(err).Error("research failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "research failed"})
	}
}

func (h *Handler) writeImportError(c *gin.Context, err error) {
	var catalogErr *domain.CatalogError

	switch {
	case errors.Is(err, domain.ErrNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrImportRejected):
		response := gin.H{"error": err.Error()}
		if errors.As(err, &catalogErr) {
			response["code"] = catalogErr.Code
			response["details"] = catalogErr.Message
		}
		c.JSON(http.StatusConflict, response)
	case errors.Is(err, domain.ErrUpstreamRequest):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		h.logger.WithError(err).Error("import failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "import failed"})
	}
}
