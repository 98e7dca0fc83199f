package server

import (
	"io"
	"net/http"

	"github.com/faktur-app/faktur/internal/sheetstore"
	"github.com/gin-gonic/gin"
)

const maxSheetSize = 4 << 20

func readSheet(c *gin.Context) ([]byte, bool) {
	sheet, err := io.ReadAll(io.LimitReader(c.Request.Body, maxSheetSize+1))
	if err != nil || len(sheet) == 0 || len(sheet) > maxSheetSize {
		AbortWithError(c, newValidationError("sheet", "invalid_sheet", "sheet body is empty or too large"))
		return nil, false
	}
	return sheet, true
}

func writeImportResult(c *gin.Context, result sheetstore.ImportResult, rowErrs []sheetstore.RowError, err error) {
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if len(rowErrs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": gin.H{
			"code":       "sheet_rejected",
			"message":    "sheet failed validation, nothing was imported",
			"row_errors": rowErrs,
		}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

// @Summary      Import Product Sheet
// @Description  Import products from a CSV sheet; rejected sheets import nothing
// @Tags         sheets
// @Accept       text/csv
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  sheetstore.ImportResult
// @Router       /sheets/products/import [post]
func (s *Server) ImportProductSheet(c *gin.Context) {
	sheet, ok := readSheet(c)
	if !ok {
		return
	}
	result, rowErrs, err := s.sheetSvc.ImportProducts(c.Request.Context(), sheet)
	if err == nil && len(rowErrs) == 0 {
		s.audit(c, "sheet.import", "product", "", map[string]any{"created": result.Created})
	}
	writeImportResult(c, result, rowErrs, err)
}

// @Summary      Import Customer Sheet
// @Tags         sheets
// @Accept       text/csv
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  sheetstore.ImportResult
// @Router       /sheets/customers/import [post]
func (s *Server) ImportCustomerSheet(c *gin.Context) {
	sheet, ok := readSheet(c)
	if !ok {
		return
	}
	result, rowErrs, err := s.sheetSvc.ImportCustomers(c.Request.Context(), sheet)
	if err == nil && len(rowErrs) == 0 {
		s.audit(c, "sheet.import", "customer", "", map[string]any{"created": result.Created})
	}
	writeImportResult(c, result, rowErrs, err)
}

// @Summary      Export Product Sheet
// @Tags         sheets
// @Produce      text/csv
// @Security     ApiKeyAuth
// @Success      200  {string}  string
// @Router       /sheets/products/export [get]
func (s *Server) ExportProductSheet(c *gin.Context) {
	out, err := s.sheetSvc.ExportProducts(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/csv; charset=utf-8", out)
}

// @Summary      Export Customer Sheet
// @Tags         sheets
// @Produce      text/csv
// @Security     ApiKeyAuth
// @Success      200  {string}  string
// @Router       /sheets/customers/export [get]
func (s *Server) ExportCustomerSheet(c *gin.Context) {
	out, err := s.sheetSvc.ExportCustomers(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/csv; charset=utf-8", out)
}

// @Summary      Export Invoice Sheet
// @Tags         sheets
// @Produce      text/csv
// @Security     ApiKeyAuth
// @Success      200  {string}  string
// @Router       /sheets/invoices/export [get]
func (s *Server) ExportInvoiceSheet(c *gin.Context) {
	out, err := s.sheetSvc.ExportInvoices(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/csv; charset=utf-8", out)
}
