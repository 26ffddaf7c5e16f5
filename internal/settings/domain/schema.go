package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const updateSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "company_name": {"type": "string", "maxLength": 200},
    "company_info": {"type": "string"},
    "receipt_title": {"type": "string", "maxLength": 200},
    "field_visibility": {
      "type": "object",
      "additionalProperties": {"type": "boolean"}
    }
  },
  "additionalProperties": false
}`

var compiledUpdateSchema = jsonschema.MustCompileString("settings_update.json", updateSchema)

// PayloadError names the offending location inside an update payload.
type PayloadError struct {
	Location string
	Message  string
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Location, e.Message)
}

func (e *PayloadError) Unwrap() error { return ErrInvalidPayload }

// ValidateUpdatePayload checks a raw settings update body before it is decoded.
func ValidateUpdatePayload(raw []byte) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return &PayloadError{Location: "/", Message: "malformed JSON"}
	}
	if err := compiledUpdateSchema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			leaf := deepest(ve)
			loc := leaf.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			return &PayloadError{Location: loc, Message: leaf.Message}
		}
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return nil
}

func deepest(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}
