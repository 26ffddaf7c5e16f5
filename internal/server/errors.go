package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/smallbiznis/recibo/internal/money"
	"github.com/smallbiznis/recibo/internal/printing"
	"github.com/smallbiznis/recibo/internal/providers/printer"
	receiptdomain "github.com/smallbiznis/recibo/internal/receipt/domain"
	templatedomain "github.com/smallbiznis/recibo/internal/receipttemplate/domain"
	settingsdomain "github.com/smallbiznis/recibo/internal/settings/domain"
	"github.com/smallbiznis/recibo/internal/words"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	var payloadErr *settingsdomain.PayloadError
	if errors.As(err, &payloadErr) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   payloadErr.Location,
					Code:    settingsdomain.ErrInvalidPayload.Error(),
					Message: payloadErr.Message,
				},
			},
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	switch {
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, templatedomain.ErrNameTaken),
		errors.Is(err, receiptdomain.ErrNumberConflict):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	case errors.Is(err, words.ErrRangeExceeded):
		return http.StatusUnprocessableEntity, errorPayload{
			Type:    "amount_out_of_range",
			Message: "amount exceeds the supported range",
		}
	case errors.Is(err, printing.ErrThrottled):
		return http.StatusTooManyRequests, errorPayload{
			Type:    "throttled",
			Message: "too many print requests",
		}
	case errors.Is(err, printer.ErrSurfaceUnavailable):
		return http.StatusServiceUnavailable, errorPayload{
			Type:    "service_unavailable",
			Message: "print surface unavailable",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

// classifyErrorForLog names the error type and code attached to request logs.
func classifyErrorForLog(err error) (string, string) {
	_, payload := mapError(err)
	if len(payload.Errors) > 0 {
		return payload.Type, payload.Errors[0].Code
	}
	return payload.Type, payload.Type
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return true
	case isReceiptValidationError(err),
		isTemplateValidationError(err),
		isMoneyValidationError(err),
		errors.Is(err, settingsdomain.ErrInvalidCompanyName),
		errors.Is(err, settingsdomain.ErrInvalidPayload):
		return true
	default:
		return false
	}
}

func isReceiptValidationError(err error) bool {
	switch {
	case errors.Is(err, receiptdomain.ErrInvalidID),
		errors.Is(err, receiptdomain.ErrInvalidCustomerName),
		errors.Is(err, receiptdomain.ErrInvalidEmail),
		errors.Is(err, receiptdomain.ErrInvalidStatus),
		errors.Is(err, receiptdomain.ErrInvalidPaymentMethod),
		errors.Is(err, receiptdomain.ErrNoItems),
		errors.Is(err, receiptdomain.ErrInvalidDescription),
		errors.Is(err, receiptdomain.ErrInvalidQuantity),
		errors.Is(err, receiptdomain.ErrInvalidUnitPrice),
		errors.Is(err, receiptdomain.ErrInvalidDateRange):
		return true
	default:
		return false
	}
}

func isTemplateValidationError(err error) bool {
	switch {
	case errors.Is(err, templatedomain.ErrInvalidID),
		errors.Is(err, templatedomain.ErrInvalidName),
		errors.Is(err, templatedomain.ErrInvalidItem):
		return true
	default:
		return false
	}
}

func isMoneyValidationError(err error) bool {
	switch {
	case errors.Is(err, money.ErrNegativeAmount),
		errors.Is(err, money.ErrNonFinite),
		errors.Is(err, money.ErrInvalidAmount):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, receiptdomain.ErrNotFound),
		errors.Is(err, templatedomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request"
	case isReceiptValidationError(err):
		return firstMatch(err, receiptValidationErrors)
	case isTemplateValidationError(err):
		return firstMatch(err, templateValidationErrors)
	case isMoneyValidationError(err):
		return firstMatch(err, moneyValidationErrors)
	case errors.Is(err, settingsdomain.ErrInvalidCompanyName):
		return settingsdomain.ErrInvalidCompanyName.Error()
	case errors.Is(err, settingsdomain.ErrInvalidPayload):
		return settingsdomain.ErrInvalidPayload.Error()
	default:
		return err.Error()
	}
}

var (
	receiptValidationErrors = []error{
		receiptdomain.ErrInvalidID,
		receiptdomain.ErrInvalidCustomerName,
		receiptdomain.ErrInvalidEmail,
		receiptdomain.ErrInvalidStatus,
		receiptdomain.ErrInvalidPaymentMethod,
		receiptdomain.ErrNoItems,
		receiptdomain.ErrInvalidDescription,
		receiptdomain.ErrInvalidQuantity,
		receiptdomain.ErrInvalidUnitPrice,
		receiptdomain.ErrInvalidDateRange,
	}
	templateValidationErrors = []error{
		templatedomain.ErrInvalidID,
		templatedomain.ErrInvalidName,
		templatedomain.ErrInvalidItem,
	}
	moneyValidationErrors = []error{
		money.ErrNegativeAmount,
		money.ErrNonFinite,
		money.ErrInvalidAmount,
	}
)

// firstMatch returns the sentinel code wrapped by err, so wrapped errors keep a stable code.
func firstMatch(err error, sentinels []error) string {
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return err.Error()
}

func validationErrorField(code string) string {
	switch code {
	case "invalid_request":
		return "request"
	case "no_items", "invalid_template_item":
		return "items"
	case "invalid_item_description", "invalid_item_quantity", "invalid_item_unit_price":
		return "items." + strings.TrimPrefix(code, "invalid_item_")
	case "negative_amount", "non_finite_amount", "invalid_amount":
		return "amount"
	case "invalid_settings_payload":
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	case "no_items":
		return "at least one line item is required"
	case "invalid_date_range":
		return "date_from must not be after date_to"
	default:
		return "invalid value"
	}
}
