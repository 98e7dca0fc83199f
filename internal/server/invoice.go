package server

import (
	"net/http"
	"strings"
	"time"

	auditdomain "github.com/faktur-app/faktur/internal/audit/domain"
	invoicedomain "github.com/faktur-app/faktur/internal/invoice/domain"
	obscontext "github.com/faktur-app/faktur/internal/observability/context"
	"github.com/faktur-app/faktur/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

type lineItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

type saveInvoiceRequest struct {
	Number            string            `json:"number"`
	CustomerID        string            `json:"customer_id"`
	Items             []lineItemRequest `json:"items"`
	TaxPercent        float64           `json:"tax_percent"`
	DiscountValue     int64             `json:"discount_value"`
	UnderpaymentValue int64             `json:"underpayment_value"`
	InvoiceDate       string            `json:"invoice_date"`
	DueDate           string            `json:"due_date"`
	Notes             string            `json:"notes"`
}

func (r saveInvoiceRequest) toDomain() (invoicedomain.SaveInvoiceRequest, error) {
	invoiceDate, err := parseDate(r.InvoiceDate)
	if err != nil {
		return invoicedomain.SaveInvoiceRequest{}, newValidationError("invoice_date", "invalid_date", "invoice_date must be YYYY-MM-DD")
	}
	dueDate, err := parseDate(r.DueDate)
	if err != nil {
		return invoicedomain.SaveInvoiceRequest{}, newValidationError("due_date", "invalid_date", "due_date must be YYYY-MM-DD")
	}

	items := make([]invoicedomain.LineItemInput, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, invoicedomain.LineItemInput{
			ProductID: strings.TrimSpace(item.ProductID),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	return invoicedomain.SaveInvoiceRequest{
		Number:            strings.TrimSpace(r.Number),
		CustomerID:        strings.TrimSpace(r.CustomerID),
		Items:             items,
		TaxPercent:        r.TaxPercent,
		DiscountValue:     r.DiscountValue,
		UnderpaymentValue: r.UnderpaymentValue,
		InvoiceDate:       invoiceDate,
		DueDate:           dueDate,
		Notes:             r.Notes,
	}, nil
}

func parseDate(value string) (time.Time, error) {
	return time.Parse(time.DateOnly, strings.TrimSpace(value))
}

// @Summary      Create Invoice
// @Description  Create an invoice; totals are computed server-side
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        request body saveInvoiceRequest true "Create Invoice Request"
// @Success      200  {object}  invoicedomain.Invoice
// @Router       /invoices [post]
func (s *Server) CreateInvoice(c *gin.Context) {
	var req saveInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	domainReq, err := req.toDomain()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.invoiceSvc.Create(c.Request.Context(), domainReq)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "invoice.create", "invoice", resp.ID.String(), map[string]any{
		"number": resp.Number,
		"total":  resp.Total,
	})
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      List Invoices
// @Tags         invoices
// @Produce      json
// @Security     ApiKeyAuth
// @Param        status      query  string  false  "Status"
// @Param        customer    query  string  false  "Customer ID"
// @Param        page_token  query  string  false  "Page Token"
// @Param        page_size   query  int     false  "Page Size"
// @Success      200  {object}  invoicedomain.ListInvoiceResponse
// @Router       /invoices [get]
func (s *Server) ListInvoices(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Status   string `form:"status"`
		Customer string `form:"customer"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.List(c.Request.Context(), invoicedomain.ListInvoiceRequest{
		PageToken: query.PageToken,
		PageSize:  int32(query.PageSize),
		Status:    strings.TrimSpace(query.Status),
		Customer:  strings.TrimSpace(query.Customer),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Get Invoice
// @Tags         invoices
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  invoicedomain.Invoice
// @Router       /invoices/{id} [get]
func (s *Server) GetInvoice(c *gin.Context) {
	resp, err := s.invoiceSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Update Invoice
// @Description  Replace an invoice's content; totals are recomputed
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id       path  string              true  "Invoice ID"
// @Param        request  body  saveInvoiceRequest  true  "Update Invoice Request"
// @Success      200  {object}  invoicedomain.Invoice
// @Router       /invoices/{id} [put]
func (s *Server) UpdateInvoice(c *gin.Context) {
	var req saveInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	domainReq, err := req.toDomain()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.invoiceSvc.Update(c.Request.Context(), invoicedomain.UpdateInvoiceRequest{
		ID:                 c.Param("id"),
		SaveInvoiceRequest: domainReq,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "invoice.update", "invoice", resp.ID.String(), map[string]any{
		"number": resp.Number,
		"total":  resp.Total,
	})
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateInvoiceStatusRequest struct {
	Status string `json:"status"`
}

// @Summary      Update Invoice Status
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id       path  string                      true  "Invoice ID"
// @Param        request  body  updateInvoiceStatusRequest  true  "Status"
// @Success      200  {object}  invoicedomain.Invoice
// @Router       /invoices/{id}/status [patch]
func (s *Server) UpdateInvoiceStatus(c *gin.Context) {
	var req updateInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	status, ok := invoicedomain.ParseStatus(req.Status)
	if !ok {
		AbortWithError(c, newValidationError("status", "invalid_status", "status must be unpaid, paid or overdue"))
		return
	}
	resp, err := s.invoiceSvc.UpdateStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "invoice.status", "invoice", resp.ID.String(), map[string]any{
		"status": string(resp.Status),
	})
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Delete Invoice
// @Tags         invoices
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path  string  true  "Invoice ID"
// @Success      200  {object}  map[string]string
// @Router       /invoices/{id} [delete]
func (s *Server) DeleteInvoice(c *gin.Context) {
	id := c.Param("id")
	if err := s.invoiceSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "invoice.delete", "invoice", id, nil)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) audit(c *gin.Context, action, targetType, targetID string, metadata map[string]any) {
	if s.auditSvc == nil {
		return
	}
	ctx := c.Request.Context()
	actor := auditdomain.ActorTypeSystem
	if obscontext.ActorFromContext(ctx) == "owner" {
		actor = auditdomain.ActorTypeOwner
	}
	id := targetID
	_ = s.auditSvc.Record(ctx, actor, action, targetType, &id, metadata)
}
