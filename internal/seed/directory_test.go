package seed

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDirectory(t *testing.T) *Directory {
	t.Helper()
	d, err := NewDirectory()
	require.NoError(t, err)
	return d
}

func TestNormalizeHandle(t *testing.T) {
	assert.Equal(t, "@bibubib", NormalizeHandle("bibubib"))
	assert.Equal(t, "@bibubib", NormalizeHandle("@bibubib"))
	assert.Equal(t, "@capy", NormalizeHandle("  capy "))
}

func TestMatch(t *testing.T) {
	d := newTestDirectory(t)

	tests := []struct {
		name       string
		handle     string
		credential string
		wantOK     bool
	}{
		{"exact handle", "@bibubib", "admin", true},
		{"missing at sign and mixed case", "BibuBib", "admin", true},
		{"upper case with at sign", "@CAPY", "chill", true},
		{"credential is case sensitive", "bibubib", "ADMIN", false},
		{"wrong credential", "bibubib", "nope", false},
		{"unknown handle", "@nadie", "admin", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := d.Match(tt.handle, tt.credential)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestMatchReturnsIndependentCopies(t *testing.T) {
	d := newTestDirectory(t)

	first, ok := d.Match("bibubib", "admin")
	require.True(t, ok)
	require.Len(t, first.Messages, 2)
	first.Messages[0].Read = true
	first.Transactions[0].Title = "changed"
	first.Balance = decimal.Zero

	second, ok := d.Match("bibubib", "admin")
	require.True(t, ok)
	assert.False(t, second.Messages[0].Read)
	assert.Equal(t, "Nómina Unión", second.Transactions[0].Title)
	assert.True(t, second.Balance.Equal(decimal.NewFromInt(999999999)))
}

func TestLeadersSortedByBalance(t *testing.T) {
	d := newTestDirectory(t)

	profiles := d.Leaders()
	require.Len(t, profiles, 8)
	assert.Equal(t, "@bibubib", profiles[0].Handle)
	assert.Equal(t, "@pingui", profiles[1].Handle)
	assert.Equal(t, "@perrito", profiles[7].Handle)
	for i := 1; i < len(profiles); i++ {
		assert.True(t, profiles[i-1].Balance.GreaterThanOrEqual(profiles[i].Balance))
	}
}

func TestCataloguesAreFreshCopies(t *testing.T) {
	d := newTestDirectory(t)

	routes := d.Routes()
	require.Len(t, routes, 7)
	routes[0].Name = "changed"
	assert.Equal(t, "Ruta Dorada", d.Routes()[0].Name)

	assert.Len(t, d.Companies(), 4)
	assert.Len(t, d.CountryServices(), 7)
	assert.Len(t, d.OpeningChat(), 2)
}
