package server

import (
	"encoding/base64"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// @Summary      Export Invoice PDF
// @Description  Render the invoice as a single-page PDF, base64-encoded
// @Tags         exports
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path  string  true  "Invoice ID"
// @Success      200  {object}  map[string]string
// @Router       /invoices/{id}/pdf [get]
func (s *Server) ExportInvoicePDF(c *gin.Context) {
	if !s.exportLimiter.Allow(c.ClientIP()) {
		AbortWithError(c, ErrRateLimited)
		return
	}

	start := time.Now()
	output, err := s.invoiceSvc.RenderPDF(c.Request.Context(), c.Param("id"))
	s.renderMetrics.ObserveRender("pdf", time.Since(start), err)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"content_type": "application/pdf",
		"content":      base64.StdEncoding.EncodeToString(output),
	}})
}

// @Summary      Export Invoice Image
// @Description  Render the invoice as an HTML document suitable for rasterization
// @Tags         exports
// @Produce      html
// @Security     ApiKeyAuth
// @Param        id   path  string  true  "Invoice ID"
// @Success      200  {string}  string
// @Router       /invoices/{id}/image [get]
func (s *Server) ExportInvoiceImage(c *gin.Context) {
	if !s.exportLimiter.Allow(c.ClientIP()) {
		AbortWithError(c, ErrRateLimited)
		return
	}

	start := time.Now()
	output, err := s.invoiceSvc.RenderImage(c.Request.Context(), c.Param("id"))
	s.renderMetrics.ObserveRender("image", time.Since(start), err)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", output)
}
