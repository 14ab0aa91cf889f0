package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("trims and normalizes", func(t *testing.T) {
		u, err := NewUser("  Ana  ", " Ana@Example.COM ", " 555-1234 ")
		require.NoError(t, err)
		assert.Equal(t, "Ana", u.Name)
		assert.Equal(t, "ana@example.com", u.Email)
		assert.Equal(t, "555-1234", u.Phone)
	})

	tests := []struct {
		name    string
		inName  string
		inEmail string
		wantErr error
	}{
		{"empty name", "", "a@b.com", ErrNameTooShort},
		{"one char name", "A", "a@b.com", ErrNameTooShort},
		{"whitespace only name", "   x   ", "a@b.com", ErrNameTooShort},
		{"email without at", "Ana", "not-an-email", ErrInvalidEmail},
		{"empty email", "Ana", "", ErrInvalidEmail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := NewUser(tt.inName, tt.inEmail, "")
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, u)
		})
	}
}

func TestNewProduct(t *testing.T) {
	t.Run("valid with defaults", func(t *testing.T) {
		p, err := NewProduct("Teclado", "9.99", "", "", "")
		require.NoError(t, err)
		assert.True(t, p.Price.Equal(decimal.RequireFromString("9.99")))
		assert.Equal(t, 0, p.Stock)
	})

	t.Run("valid with all fields", func(t *testing.T) {
		p, err := NewProduct(" Monitor ", "199.90", " 24 pulgadas ", "12", " electronica ")
		require.NoError(t, err)
		assert.Equal(t, "Monitor", p.Name)
		assert.Equal(t, "24 pulgadas", p.Description)
		assert.Equal(t, 12, p.Stock)
		assert.Equal(t, "electronica", p.Category)
	})

	tests := []struct {
		name    string
		inName  string
		price   string
		stock   string
		wantErr error
	}{
		{"short name", "X", "9.99", "1", ErrNameTooShort},
		{"non-numeric price", "Teclado", "abc", "1", ErrInvalidPrice},
		{"empty price", "Teclado", "", "1", ErrInvalidPrice},
		{"zero price", "Teclado", "0", "1", ErrNonPositivePrice},
		{"negative price", "Teclado", "-5.00", "1", ErrNonPositivePrice},
		{"non-integer stock", "Teclado", "9.99", "many", ErrInvalidStock},
		{"fractional stock", "Teclado", "9.99", "1.5", ErrInvalidStock},
		{"negative stock", "Teclado", "9.99", "-1", ErrNegativeStock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProduct(tt.inName, tt.price, "", tt.stock, "")
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, p)
		})
	}

	t.Run("name is checked before price and stock", func(t *testing.T) {
		_, err := NewProduct("X", "abc", "", "-1", "")
		require.ErrorIs(t, err, ErrNameTooShort)
	})

	t.Run("price is checked before stock", func(t *testing.T) {
		_, err := NewProduct("Teclado", "abc", "", "-1", "")
		require.ErrorIs(t, err, ErrInvalidPrice)
	})
}

func TestIsAvailable(t *testing.T) {
	p := Product{Stock: 5}
	assert.True(t, p.IsAvailable(5))
	assert.True(t, p.IsAvailable(1))
	assert.False(t, p.IsAvailable(6))
}
