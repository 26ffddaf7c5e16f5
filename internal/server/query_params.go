package server

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	receiptdomain "github.com/smallbiznis/recibo/internal/receipt/domain"
	"github.com/smallbiznis/recibo/pkg/db/pagination"
)

const dateOnlyLayout = "2006-01-02"

// parseListReceiptRequest reads the receipt list filters shared by the list and export routes.
func parseListReceiptRequest(c *gin.Context) (receiptdomain.ListReceiptRequest, error) {
	req := receiptdomain.ListReceiptRequest{
		Search: strings.TrimSpace(c.Query("search")),
		Status: receiptdomain.Status(strings.TrimSpace(c.Query("status"))),
	}

	dateFrom, err := parseOptionalTime(c.Query("date_from"), false)
	if err != nil {
		return req, newValidationError("date_from", "invalid_date_from", "invalid date_from")
	}
	dateTo, err := parseOptionalTime(c.Query("date_to"), true)
	if err != nil {
		return req, newValidationError("date_to", "invalid_date_to", "invalid date_to")
	}
	req.DateFrom = dateFrom
	req.DateTo = dateTo

	skip, err := parseOptionalInt(c.Query("skip"))
	if err != nil {
		return req, newValidationError("skip", "invalid_skip", "invalid skip")
	}
	limit, err := parseOptionalInt(c.Query("limit"))
	if err != nil {
		return req, newValidationError("limit", "invalid_limit", "invalid limit")
	}
	req.Pagination = pagination.Pagination{Skip: skip, Limit: limit}
	return req, nil
}

func parseOptionalBool(value string) (*bool, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(trimmed)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseOptionalInt(value string) (int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil || parsed < 0 {
		return 0, errors.New("invalid_int")
	}
	return parsed, nil
}

func parseOptionalTime(value string, endOfDay bool) (*time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	if parsed, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return &parsed, nil
	}
	if parsed, err := time.Parse(dateOnlyLayout, trimmed); err == nil {
		if endOfDay {
			parsed = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
		} else {
			parsed = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
		}
		return &parsed, nil
	}
	return nil, errors.New("invalid_time")
}
