// Package service drafts payment reminders. When a suggestion endpoint
// is configured it is asked first; otherwise a built-in template is
// filled from the invoice.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	companydomain "github.com/faktur-app/faktur/internal/company/domain"
	"github.com/faktur-app/faktur/internal/config"
	customerdomain "github.com/faktur-app/faktur/internal/customer/domain"
	invoicedomain "github.com/faktur-app/faktur/internal/invoice/domain"
	"github.com/faktur-app/faktur/internal/money"
	"github.com/faktur-app/faktur/internal/observability/metrics"
	"github.com/faktur-app/faktur/internal/observability/tracing"
	"github.com/faktur-app/faktur/internal/reminder/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ServiceParam struct {
	fx.In

	Config      *config.Config
	Log         *zap.Logger
	InvoiceSvc  invoicedomain.Service
	CustomerSvc customerdomain.Service
	CompanySvc  companydomain.Service
	Metrics     *metrics.RenderMetrics `optional:"true"`
}

type Service struct {
	cfg         *config.Config
	log         *zap.Logger
	invoiceSvc  invoicedomain.Service
	customerSvc customerdomain.Service
	companySvc  companydomain.Service
	metrics     *metrics.RenderMetrics
	client      *http.Client
}

func NewService(p ServiceParam) domain.Service {
	timeout := p.Config.Reminder.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Service{
		cfg:         p.Config,
		log:         p.Log.Named("reminder.service"),
		invoiceSvc:  p.InvoiceSvc,
		customerSvc: p.CustomerSvc,
		companySvc:  p.CompanySvc,
		metrics:     p.Metrics,
		client:      tracing.WrapHTTPClient(&http.Client{Timeout: timeout}),
	}
}

func (s *Service) Draft(ctx context.Context, invoiceID string) (domain.Draft, error) {
	invoice, err := s.invoiceSvc.GetByID(ctx, invoiceID)
	if err != nil {
		return domain.Draft{}, err
	}
	if invoice.Status == invoicedomain.InvoiceStatusPaid {
		return domain.Draft{}, domain.ErrAlreadyPaid
	}

	profile, err := s.companySvc.Get(ctx)
	if err != nil {
		return domain.Draft{}, err
	}

	customerName := ""
	if customer, err := s.customerSvc.GetByID(ctx, invoice.CustomerID.String()); err == nil {
		customerName = customer.Name
	}

	if endpoint := strings.TrimSpace(s.cfg.Reminder.Endpoint); endpoint != "" {
		draft, err := s.requestSuggestion(ctx, endpoint, invoice, profile, customerName)
		if err == nil {
			s.metrics.IncReminderDraft(domain.SourceSuggestion)
			return draft, nil
		}
		s.log.Warn("reminder suggestion failed, using template",
			zap.String("invoice_id", invoice.ID.String()),
			zap.Error(err),
		)
	}

	draft := s.templateDraft(invoice, profile, customerName)
	s.metrics.IncReminderDraft(domain.SourceTemplate)
	return draft, nil
}

type suggestionRequest struct {
	InvoiceNumber string `json:"invoice_number"`
	CustomerName  string `json:"customer_name"`
	CompanyName   string `json:"company_name"`
	Total         string `json:"total"`
	DueDate       string `json:"due_date"`
	Overdue       bool   `json:"overdue"`
	Language      string `json:"language"`
}

type suggestionResponse struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (s *Service) requestSuggestion(ctx context.Context, endpoint string, invoice invoicedomain.Invoice, profile companydomain.Profile, customerName string) (domain.Draft, error) {
	payload, err := json.Marshal(suggestionRequest{
		InvoiceNumber: invoice.Number,
		CustomerName:  customerName,
		CompanyName:   profile.Name,
		Total:         money.Format(invoice.Total, profile.Currency, profile.Language),
		DueDate:       money.FormatDate(invoice.DueDate, profile.Language),
		Overdue:       invoice.Status == invoicedomain.InvoiceStatusOverdue,
		Language:      profile.Language,
	})
	if err != nil {
		return domain.Draft{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return domain.Draft{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey := strings.TrimSpace(s.cfg.Reminder.APIKey); apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return domain.Draft{}, fmt.Errorf("%w: %v", domain.ErrSuggestionUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return domain.Draft{}, fmt.Errorf("%w: status %d", domain.ErrSuggestionUnavailable, resp.StatusCode)
	}

	var suggestion suggestionResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&suggestion); err != nil {
		return domain.Draft{}, fmt.Errorf("%w: %v", domain.ErrSuggestionUnavailable, err)
	}
	if strings.TrimSpace(suggestion.Body) == "" {
		return domain.Draft{}, fmt.Errorf("%w: empty body", domain.ErrSuggestionUnavailable)
	}

	subject := strings.TrimSpace(suggestion.Subject)
	if subject == "" {
		subject = s.templateSubject(invoice, profile.Language)
	}

	return domain.Draft{
		InvoiceID: invoice.ID.String(),
		Subject:   subject,
		Body:      strings.TrimSpace(suggestion.Body),
		Source:    domain.SourceSuggestion,
	}, nil
}

func (s *Service) templateDraft(invoice invoicedomain.Invoice, profile companydomain.Profile, customerName string) domain.Draft {
	total := money.Format(invoice.Total, profile.Currency, profile.Language)
	dueDate := money.FormatDate(invoice.DueDate, profile.Language)

	greeting := "Dear"
	closing := "Kind regards"
	line := "This is a friendly reminder that invoice %s for %s is due on %s."
	if invoice.Status == invoicedomain.InvoiceStatusOverdue {
		line = "Invoice %s for %s was due on %s and remains unpaid."
	}
	if profile.Language == "id" {
		greeting = "Yth."
		closing = "Hormat kami"
		line = "Dengan ini kami mengingatkan bahwa faktur %s sebesar %s jatuh tempo pada %s."
		if invoice.Status == invoicedomain.InvoiceStatusOverdue {
			line = "Faktur %s sebesar %s telah jatuh tempo pada %s dan belum dibayar."
		}
	}

	if customerName == "" {
		customerName = "Customer"
		if profile.Language == "id" {
			customerName = "Pelanggan"
		}
	}

	body := fmt.Sprintf("%s %s,\n\n", greeting, customerName) +
		fmt.Sprintf(line, invoice.Number, total, dueDate) +
		fmt.Sprintf("\n\n%s,\n%s", closing, profile.Name)

	return domain.Draft{
		InvoiceID: invoice.ID.String(),
		Subject:   s.templateSubject(invoice, profile.Language),
		Body:      body,
		Source:    domain.SourceTemplate,
	}
}

func (s *Service) templateSubject(invoice invoicedomain.Invoice, language string) string {
	if language == "id" {
		return "Pengingat Pembayaran " + invoice.Number
	}
	return "Payment Reminder " + invoice.Number
}
