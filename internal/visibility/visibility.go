// Package visibility resolves which receipt fields are shown. Editor and
// print surfaces both read from a Set produced by Resolve, so they cannot
// disagree about a field.
package visibility

import (
	"encoding/json"
	"sort"
)

type Field int

const (
	CustomerName Field = iota
	CustomerNIT
	CustomerAddress
	CustomerPhone
	CustomerEmail
	Institution
	InstitutionUseCompanyName
	AmountInWords
	Concept
	PaymentMethod
	PaymentMethodInPrint
	Notes
	Signature
	ReceivedByName
	AuthorizedSignature
	LineItems
	LineItemsInPrint
	ShowCompanyNameInHeader
	ShowCompanyInfoInHeader

	numFields
)

type fieldSpec struct {
	key string
	def bool
}

// fields is keyed by Field; a missing entry leaves an empty key and fails TestFieldsComplete.
var fields = [numFields]fieldSpec{
	CustomerName:              {"customer_name", true},
	CustomerNIT:               {"customer_nit", true},
	CustomerAddress:           {"customer_address", true},
	CustomerPhone:             {"customer_phone", true},
	CustomerEmail:             {"customer_email", true},
	Institution:               {"institution", true},
	InstitutionUseCompanyName: {"institution_use_company_name", false},
	AmountInWords:             {"amount_in_words", true},
	Concept:                   {"concept", true},
	PaymentMethod:             {"payment_method", true},
	PaymentMethodInPrint:      {"payment_method_in_print", true},
	Notes:                     {"notes", true},
	Signature:                 {"signature", true},
	ReceivedByName:            {"received_by_name", true},
	AuthorizedSignature:       {"authorized_signature", true},
	LineItems:                 {"line_items", true},
	LineItemsInPrint:          {"line_items_in_print", true},
	ShowCompanyNameInHeader:   {"show_company_name_in_header", true},
	ShowCompanyInfoInHeader:   {"show_company_info_in_header", true},
}

var byKey = func() map[string]Field {
	m := make(map[string]Field, numFields)
	for i := Field(0); i < numFields; i++ {
		m[fields[i].key] = i
	}
	return m
}()

func (f Field) Key() string {
	if f < 0 || f >= numFields {
		return ""
	}
	return fields[f].key
}

func (f Field) String() string { return f.Key() }

// Default is the value used when a field has never been stored.
func (f Field) Default() bool {
	if f < 0 || f >= numFields {
		return false
	}
	return fields[f].def
}

// All lists every field in declaration order.
func All() []Field {
	out := make([]Field, numFields)
	for i := range out {
		out[i] = Field(i)
	}
	return out
}

func Parse(key string) (Field, bool) {
	f, ok := byKey[key]
	return f, ok
}

// Set is a fully resolved visibility configuration: every field has a value.
type Set [numFields]bool

func Defaults() Set {
	var s Set
	for i := range s {
		s[i] = fields[i].def
	}
	return s
}

// Resolve overlays stored values on the defaults. Unknown keys are ignored.
func Resolve(stored map[string]bool) Set {
	s := Defaults()
	for key, v := range stored {
		if f, ok := byKey[key]; ok {
			s[f] = v
		}
	}
	return s
}

// ResolveAny is Resolve for loosely typed stored JSON. Values that are not
// booleans fall back to the default.
func ResolveAny(stored map[string]any) Set {
	s := Defaults()
	for key, raw := range stored {
		f, ok := byKey[key]
		if !ok {
			continue
		}
		if v, ok := raw.(bool); ok {
			s[f] = v
		}
	}
	return s
}

func (s Set) Visible(f Field) bool {
	if f < 0 || f >= numFields {
		return false
	}
	return s[f]
}

func (s Set) With(f Field, v bool) Set {
	if f >= 0 && f < numFields {
		s[f] = v
	}
	return s
}

// Apply overlays a partial update. Unknown keys are returned, not applied.
func (s Set) Apply(patch map[string]bool) (Set, []string) {
	var unknown []string
	for key, v := range patch {
		f, ok := byKey[key]
		if !ok {
			unknown = append(unknown, key)
			continue
		}
		s[f] = v
	}
	sort.Strings(unknown)
	return s, unknown
}

func (s Set) Map() map[string]bool {
	out := make(map[string]bool, numFields)
	for i, v := range s {
		out[fields[i].key] = v
	}
	return out
}

func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Map())
}

func (s *Set) UnmarshalJSON(b []byte) error {
	var stored map[string]bool
	if err := json.Unmarshal(b, &stored); err != nil {
		return err
	}
	*s = Resolve(stored)
	return nil
}
