package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smallbiznis/recibo/pkg/db/pagination"
)

// Content is the editable body of a receipt. Status and number are managed separately.
type Content struct {
	Date            *time.Time    `json:"date,omitempty"`
	CustomerName    string        `json:"customer_name"`
	CustomerNIT     string        `json:"customer_nit"`
	CustomerPhone   string        `json:"customer_phone"`
	CustomerEmail   string        `json:"customer_email"`
	CustomerAddress string        `json:"customer_address"`
	Institution     string        `json:"institution"`
	Concept         string        `json:"concept"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
	CheckNumber     string        `json:"check_number"`
	BankAccount     string        `json:"bank_account"`
	ReceivedByName  string        `json:"received_by_name"`
	Notes           string        `json:"notes"`
	Signature       string        `json:"signature"`
	Items           []ItemInput   `json:"items"`
}

type ItemInput struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type CreateReceiptRequest struct {
	Content
	Status Status `json:"status"`
}

type UpdateReceiptRequest struct {
	ID string `json:"-"`
	Content
	Status Status `json:"status"`
}

type UpdateStatusRequest struct {
	ID     string `json:"-"`
	Status Status `json:"status"`
}

type ListReceiptRequest struct {
	Search   string
	DateFrom *time.Time
	DateTo   *time.Time
	Status   Status
	pagination.Pagination
}

type ListReceiptFilter struct {
	Search   string
	DateFrom *time.Time
	DateTo   *time.Time
	Status   Status
}

type ListReceiptResponse struct {
	pagination.PageInfo
	Receipts []Receipt `json:"receipts"`
}

type NextNumberResponse struct {
	ReceiptNumber string `json:"receipt_number"`
}

type Service interface {
	Create(context.Context, CreateReceiptRequest) (Receipt, error)
	Get(context.Context, string) (Receipt, error)
	List(context.Context, ListReceiptRequest) (ListReceiptResponse, error)
	Update(context.Context, UpdateReceiptRequest) (Receipt, error)
	UpdateStatus(context.Context, UpdateStatusRequest) (Receipt, error)
	Delete(context.Context, string) error
	NextNumber(context.Context) (NextNumberResponse, error)
}

var (
	ErrInvalidID            = errors.New("invalid_id")
	ErrNotFound             = errors.New("not_found")
	ErrInvalidCustomerName  = errors.New("invalid_customer_name")
	ErrInvalidEmail         = errors.New("invalid_email")
	ErrInvalidStatus        = errors.New("invalid_status")
	ErrInvalidPaymentMethod = errors.New("invalid_payment_method")
	ErrNoItems              = errors.New("no_items")
	ErrInvalidDescription   = errors.New("invalid_item_description")
	ErrInvalidQuantity      = errors.New("invalid_item_quantity")
	ErrInvalidUnitPrice     = errors.New("invalid_item_unit_price")
	ErrInvalidDateRange     = errors.New("invalid_date_range")
	ErrNumberConflict       = errors.New("receipt_number_conflict")
)
