package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ItemScale is the number of decimal places stored for quantities and unit
// prices. The bounds are the largest values the item columns can hold.
const ItemScale = 2

var (
	MaxQuantity  = decimal.RequireFromString("99999999.99")
	MaxUnitPrice = decimal.RequireFromString("9999999999.99")
)

// Validate checks a submission before it is persisted. Items are always required.
func (c Content) Validate() error {
	if strings.TrimSpace(c.CustomerName) == "" {
		return ErrInvalidCustomerName
	}
	if email := strings.TrimSpace(c.CustomerEmail); email != "" && !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	if !c.PaymentMethod.Valid() {
		return ErrInvalidPaymentMethod
	}
	if len(c.Items) == 0 {
		return ErrNoItems
	}
	for _, item := range c.Items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (i ItemInput) Validate() error {
	if strings.TrimSpace(i.Description) == "" {
		return ErrInvalidDescription
	}
	if !i.Quantity.IsPositive() || i.Quantity.GreaterThan(MaxQuantity) {
		return ErrInvalidQuantity
	}
	if i.UnitPrice.IsNegative() || i.UnitPrice.GreaterThan(MaxUnitPrice) {
		return ErrInvalidUnitPrice
	}
	return nil
}

// Normalize trims text fields, drops line items with a blank description,
// rounds quantities and unit prices to ItemScale and clears payment details
// that do not apply to the selected method. Validate runs on the result, so
// a quantity that rounds to zero is rejected.
func (c Content) Normalize() Content {
	out := c
	out.CustomerName = strings.TrimSpace(c.CustomerName)
	out.CustomerNIT = strings.TrimSpace(c.CustomerNIT)
	out.CustomerPhone = strings.TrimSpace(c.CustomerPhone)
	out.CustomerEmail = strings.TrimSpace(c.CustomerEmail)
	out.CustomerAddress = strings.TrimSpace(c.CustomerAddress)
	out.Institution = strings.TrimSpace(c.Institution)
	out.Concept = strings.TrimSpace(c.Concept)
	out.ReceivedByName = strings.TrimSpace(c.ReceivedByName)
	out.Notes = strings.TrimSpace(c.Notes)
	out.CheckNumber = strings.TrimSpace(c.CheckNumber)
	out.BankAccount = strings.TrimSpace(c.BankAccount)

	if out.PaymentMethod != PaymentCheque {
		out.CheckNumber = ""
	}
	if out.PaymentMethod != PaymentTransfer {
		out.BankAccount = ""
	}

	out.Items = make([]ItemInput, 0, len(c.Items))
	for _, item := range c.Items {
		item.Description = strings.TrimSpace(item.Description)
		if item.Description == "" {
			continue
		}
		item.Quantity = item.Quantity.Round(ItemScale)
		item.UnitPrice = item.UnitPrice.Round(ItemScale)
		out.Items = append(out.Items, item)
	}
	return out
}

// Draft builds an unsaved receipt from content, for live previews.
func (c Content) Draft(number string, date time.Time, status Status) Receipt {
	r := Receipt{
		ReceiptNumber:   number,
		Date:            date,
		Status:          status,
		CustomerName:    c.CustomerName,
		CustomerNIT:     c.CustomerNIT,
		CustomerPhone:   c.CustomerPhone,
		CustomerEmail:   c.CustomerEmail,
		CustomerAddress: c.CustomerAddress,
		Institution:     c.Institution,
		Concept:         c.Concept,
		PaymentMethod:   c.PaymentMethod,
		CheckNumber:     c.CheckNumber,
		BankAccount:     c.BankAccount,
		ReceivedByName:  c.ReceivedByName,
		Notes:           c.Notes,
		Signature:       c.Signature,
		Items:           make([]LineItem, 0, len(c.Items)),
	}
	for i, item := range c.Items {
		r.Items = append(r.Items, LineItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineOrder:   i,
		})
	}
	return r
}
