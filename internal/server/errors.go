package server

import (
	"errors"
	"net/http"

	catalogdomain "github.com/faktur-app/faktur/internal/catalog/domain"
	companydomain "github.com/faktur-app/faktur/internal/company/domain"
	customerdomain "github.com/faktur-app/faktur/internal/customer/domain"
	invoicedomain "github.com/faktur-app/faktur/internal/invoice/domain"
	"github.com/faktur-app/faktur/internal/observability/logger"
	reminderdomain "github.com/faktur-app/faktur/internal/reminder/domain"
	"github.com/faktur-app/faktur/internal/sheetstore"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	ErrNotFound     = errors.New("not_found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrRateLimited  = errors.New("rate_limited")
)

type validationError struct {
	Field   string `json:"field,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e validationError) Error() string { return e.Message }

func newValidationError(field, code, message string) error {
	return validationError{Field: field, Code: code, Message: message}
}

func invalidRequestError() error {
	return validationError{Code: "invalid_request", Message: "request body could not be parsed"}
}

var notFoundErrors = []error{
	ErrNotFound,
	invoicedomain.ErrInvoiceNotFound,
	invoicedomain.ErrCustomerNotFound,
	invoicedomain.ErrProductNotFound,
	catalogdomain.ErrNotFound,
	customerdomain.ErrNotFound,
	companydomain.ErrProfileNotFound,
}

var conflictErrors = []error{
	invoicedomain.ErrDuplicateNumber,
	reminderdomain.ErrAlreadyPaid,
}

var badRequestErrors = []error{
	invoicedomain.ErrInvalidID,
	invoicedomain.ErrInvalidNumber,
	invoicedomain.ErrInvalidCustomer,
	invoicedomain.ErrInvalidProduct,
	invoicedomain.ErrNoLineItems,
	invoicedomain.ErrInvalidQuantity,
	invoicedomain.ErrInvalidUnitPrice,
	invoicedomain.ErrInvalidItemIndex,
	invoicedomain.ErrInvalidTaxPercent,
	invoicedomain.ErrInvalidDiscount,
	invoicedomain.ErrInvalidUnderpay,
	invoicedomain.ErrInvalidDueDate,
	invoicedomain.ErrInvalidInvoiceDate,
	invoicedomain.ErrInvalidStatus,
	catalogdomain.ErrInvalidID,
	catalogdomain.ErrInvalidName,
	catalogdomain.ErrInvalidUnitPrice,
	catalogdomain.ErrInvalidUnit,
	customerdomain.ErrInvalidID,
	customerdomain.ErrInvalidName,
	customerdomain.ErrInvalidEmail,
	companydomain.ErrInvalidName,
	companydomain.ErrInvalidLanguage,
	sheetstore.ErrInvalidSheet,
}

func errorInList(err error, list []error) bool {
	for _, candidate := range list {
		if errors.Is(err, candidate) {
			return true
		}
	}
	return false
}

// AbortWithError writes the error envelope for err and stops the
// handler chain. Unrecognized errors become an opaque 500.
func AbortWithError(c *gin.Context, err error) {
	var verr validationError
	switch {
	case errors.As(err, &verr):
		abortJSON(c, http.StatusBadRequest, gin.H{
			"code":    verr.Code,
			"message": verr.Message,
			"field":   verr.Field,
		})
	case errors.Is(err, ErrUnauthorized):
		abortJSON(c, http.StatusUnauthorized, gin.H{
			"code":    "unauthorized",
			"message": "missing or invalid API key",
		})
	case errors.Is(err, ErrRateLimited):
		abortJSON(c, http.StatusTooManyRequests, gin.H{
			"code":    "rate_limited",
			"message": "too many export requests, retry later",
		})
	case errorInList(err, notFoundErrors):
		abortJSON(c, http.StatusNotFound, gin.H{
			"code":    err.Error(),
			"message": "resource not found",
		})
	case errorInList(err, conflictErrors):
		abortJSON(c, http.StatusConflict, gin.H{
			"code":    err.Error(),
			"message": "request conflicts with current state",
		})
	case errorInList(err, badRequestErrors):
		abortJSON(c, http.StatusBadRequest, gin.H{
			"code":    err.Error(),
			"message": "request failed validation",
		})
	default:
		logger.FromContext(c.Request.Context()).Error("unhandled request error",
			zap.Error(err),
		)
		abortJSON(c, http.StatusInternalServerError, gin.H{
			"code":    "internal_error",
			"message": "internal error",
		})
	}
}

func abortJSON(c *gin.Context, status int, body gin.H) {
	c.AbortWithStatusJSON(status, gin.H{"error": body})
}
