package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"

	"github.com/smallbiznis/recibo/internal/money"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusCompleted Status = "completed"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

var statusLabels = map[Status]string{
	StatusDraft:     "Borrador",
	StatusCompleted: "Completado",
	StatusPaid:      "Pagado",
	StatusCancelled: "Cancelado",
}

func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label is the Spanish name shown next to the receipt number.
func (s Status) Label() string {
	return statusLabels[s]
}

type PaymentMethod string

const (
	PaymentCheque   PaymentMethod = "Cheque"
	PaymentTransfer PaymentMethod = "Transferencia"
	PaymentCash     PaymentMethod = "Efectivo"
	PaymentOther    PaymentMethod = "Otro"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case "", PaymentCheque, PaymentTransfer, PaymentCash, PaymentOther:
		return true
	}
	return false
}

type Receipt struct {
	ID              snowflake.ID  `gorm:"primaryKey" json:"id"`
	ReceiptNumber   string        `gorm:"column:receipt_number;size:32;not null;uniqueIndex" json:"receipt_number"`
	Sequence        int64         `gorm:"column:sequence;not null;index" json:"-"`
	Date            time.Time     `gorm:"column:date;not null;index" json:"date"`
	Status          Status        `gorm:"column:status;size:20;not null;index" json:"status"`
	CustomerName    string        `gorm:"column:customer_name;size:200;not null;index" json:"customer_name"`
	CustomerNIT     string        `gorm:"column:customer_nit;size:20;index" json:"customer_nit"`
	CustomerPhone   string        `gorm:"column:customer_phone;size:20" json:"customer_phone"`
	CustomerEmail   string        `gorm:"column:customer_email;size:100" json:"customer_email"`
	CustomerAddress string        `gorm:"column:customer_address;size:300" json:"customer_address"`
	Institution     string        `gorm:"column:institution;size:200" json:"institution"`
	Concept         string        `gorm:"column:concept;type:text" json:"concept"`
	PaymentMethod   PaymentMethod `gorm:"column:payment_method;size:20" json:"payment_method"`
	CheckNumber     string        `gorm:"column:check_number;size:50" json:"check_number"`
	BankAccount     string        `gorm:"column:bank_account;size:50" json:"bank_account"`
	ReceivedByName  string        `gorm:"column:received_by_name;size:200" json:"received_by_name"`
	Notes           string        `gorm:"column:notes;type:text" json:"notes"`
	Signature       string        `gorm:"column:signature;type:text" json:"signature"`
	Subtotal        money.Cents   `gorm:"column:subtotal_cents;not null;default:0" json:"subtotal"`
	Total           money.Cents   `gorm:"column:total_cents;not null;default:0" json:"total"`
	Items           []LineItem    `gorm:"foreignKey:ReceiptID" json:"items"`
	CreatedAt       time.Time     `gorm:"not null;index" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"not null" json:"updated_at"`
}

func (Receipt) TableName() string { return "receipts" }

type LineItem struct {
	ID          snowflake.ID    `gorm:"primaryKey" json:"id"`
	ReceiptID   snowflake.ID    `gorm:"column:receipt_id;not null;index" json:"-"`
	Description string          `gorm:"column:description;size:500;not null" json:"description"`
	Quantity    decimal.Decimal `gorm:"column:quantity;type:decimal(10,2);not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:decimal(12,2);not null" json:"unit_price"`
	Total       money.Cents     `gorm:"column:total_cents;not null" json:"total"`
	LineOrder   int             `gorm:"column:line_order;not null;default:0" json:"line_order"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
}

func (LineItem) TableName() string { return "receipt_items" }
