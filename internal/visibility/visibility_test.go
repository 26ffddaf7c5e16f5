package visibility

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldsComplete(t *testing.T) {
	seen := map[string]bool{}
	for _, f := range All() {
		key := f.Key()
		require.NotEmpty(t, key, "field %d has no key", int(f))
		require.False(t, seen[key], "duplicate key %s", key)
		seen[key] = true

		parsed, ok := Parse(key)
		require.True(t, ok)
		assert.Equal(t, f, parsed)
	}
	assert.Len(t, seen, 19)
}

func TestDefaults(t *testing.T) {
	d := Defaults()
	for _, f := range All() {
		if f == InstitutionUseCompanyName {
			assert.False(t, d.Visible(f))
			continue
		}
		assert.True(t, d.Visible(f), f.Key())
	}
}

func TestResolveTotality(t *testing.T) {
	assert.Equal(t, Defaults(), Resolve(nil))
	assert.Equal(t, Defaults(), Resolve(map[string]bool{}))

	s := Resolve(map[string]bool{"notes": false, "institution_use_company_name": true})
	assert.False(t, s.Visible(Notes))
	assert.True(t, s.Visible(InstitutionUseCompanyName))
	assert.True(t, s.Visible(Concept))
}

func TestResolveEachFieldExhaustive(t *testing.T) {
	for _, f := range All() {
		for _, v := range []bool{true, false} {
			s := Resolve(map[string]bool{f.Key(): v})
			for _, g := range All() {
				want := g.Default()
				if g == f {
					want = v
				}
				assert.Equal(t, want, s.Visible(g), "stored %s=%v, field %s", f.Key(), v, g.Key())
			}
		}
	}
}

func TestResolveAllInverted(t *testing.T) {
	stored := map[string]bool{}
	for _, f := range All() {
		stored[f.Key()] = !f.Default()
	}
	s := Resolve(stored)
	for _, f := range All() {
		assert.Equal(t, !f.Default(), s.Visible(f), f.Key())
	}
}

func TestResolveIgnoresUnknownKeys(t *testing.T) {
	s := Resolve(map[string]bool{"tax_id": false, "customer_nit": false})
	assert.Equal(t, Defaults().With(CustomerNIT, false), s)
}

func TestResolveAny(t *testing.T) {
	s := ResolveAny(map[string]any{"notes": false, "concept": "no", "bogus": true})
	assert.False(t, s.Visible(Notes))
	assert.True(t, s.Visible(Concept))
}

func TestApplyReportsUnknown(t *testing.T) {
	s, unknown := Defaults().Apply(map[string]bool{"signature": false, "zzz": true, "aaa": false})
	assert.False(t, s.Visible(Signature))
	assert.Equal(t, []string{"aaa", "zzz"}, unknown)
}

func TestJSONRoundTripResolves(t *testing.T) {
	var s Set
	require.NoError(t, json.Unmarshal([]byte(`{"amount_in_words":false,"x":true}`), &s))
	assert.False(t, s.Visible(AmountInWords))
	assert.True(t, s.Visible(LineItems))

	b, err := json.Marshal(s)
	require.NoError(t, err)

	var m map[string]bool
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Len(t, m, 19)
	assert.False(t, m["amount_in_words"])
}

func TestOutOfRangeField(t *testing.T) {
	assert.False(t, Defaults().Visible(Field(99)))
	assert.Equal(t, "", Field(-1).Key())
}
