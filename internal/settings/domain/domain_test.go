package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/smallbiznis/recibo/internal/visibility"
)

func TestInfoLines(t *testing.T) {
	p := CompanyProfile{CompanyInfo: "Zona 1 | Tel: 2222-3333 || "}
	assert.Equal(t, []string{"Zona 1", "Tel: 2222-3333"}, p.InfoLines())
	assert.Empty(t, CompanyProfile{}.InfoLines())
}

func TestToViewResolvesVisibility(t *testing.T) {
	s := Settings{
		CompanyName:     "ACME",
		FieldVisibility: datatypes.JSONMap{"signature": false, "legacy_flag": true},
	}
	v := s.ToView()
	assert.Equal(t, "ACME", v.Profile.CompanyName)
	assert.False(t, v.FieldVisibility.Visible(visibility.Signature))
	assert.True(t, v.FieldVisibility.Visible(visibility.AuthorizedSignature))
}

func TestValidateUpdatePayload(t *testing.T) {
	require.NoError(t, ValidateUpdatePayload([]byte(`{"company_name":"ACME","field_visibility":{"notes":false}}`)))

	err := ValidateUpdatePayload([]byte(`{"field_visibility":{"notes":"no"}}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidPayload))
	var pe *PayloadError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "/field_visibility/notes", pe.Location)

	err = ValidateUpdatePayload([]byte(`{"company_name":12}`))
	assert.ErrorIs(t, err, ErrInvalidPayload)

	err = ValidateUpdatePayload([]byte(`{"unknown":1}`))
	assert.ErrorIs(t, err, ErrInvalidPayload)

	err = ValidateUpdatePayload([]byte(`{`))
	assert.ErrorIs(t, err, ErrInvalidPayload)
}
