// Package domain defines payment reminder drafting.
package domain

import (
	"context"
	"errors"
)

// Draft is a ready-to-send reminder message for an unpaid invoice.
type Draft struct {
	InvoiceID string `json:"invoice_id"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	Source    string `json:"source"` // suggestion | template
}

const (
	SourceSuggestion = "suggestion"
	SourceTemplate   = "template"
)

// Service drafts reminder messages. Drafting never sends anything; the
// caller decides what to do with the text.
type Service interface {
	Draft(ctx context.Context, invoiceID string) (Draft, error)
}

var (
	ErrAlreadyPaid           = errors.New("invoice_already_paid")
	ErrSuggestionUnavailable = errors.New("suggestion_service_unavailable")
)
