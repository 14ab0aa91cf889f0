package domain

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

type User struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
}

type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Category    string
	CreatedAt   time.Time
}

// IsAvailable reports whether there is enough stock to cover qty.
func (p *Product) IsAvailable(qty int) bool {
	return p.Stock >= qty
}

type Order struct {
	ID        int64
	UserID    int64
	ProductID int64
	Quantity  int
	// Total is a snapshot of unit price x quantity at creation time; it is
	// never recomputed when the product price changes.
	Total     decimal.Decimal
	Status    Status
	CreatedAt time.Time
}

// OrderDetail is the pedido-usuario-producto join triple used by the orders page.
type OrderDetail struct {
	Order   Order
	User    User
	Product Product
}

// NewUser validates and normalizes input for a user record. The email is
// lowercased so uniqueness checks are case-insensitive.
func NewUser(name, email, phone string) (*User, error) {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < 2 {
		return nil, ErrNameTooShort
	}
	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}
	return &User{
		Name:  name,
		Email: strings.ToLower(email),
		Phone: strings.TrimSpace(phone),
	}, nil
}

// NewProduct validates form input for a product record. Checks run in order
// name, price, stock and stop at the first failure.
func NewProduct(name, price, description, stock, category string) (*Product, error) {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < 2 {
		return nil, ErrNameTooShort
	}
	priceDec, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil {
		return nil, ErrInvalidPrice
	}
	if !priceDec.IsPositive() {
		return nil, ErrNonPositivePrice
	}
	stockInt := 0
	if s := strings.TrimSpace(stock); s != "" {
		stockInt, err = strconv.Atoi(s)
		if err != nil {
			return nil, ErrInvalidStock
		}
		if stockInt < 0 {
			return nil, ErrNegativeStock
		}
	}
	return &Product{
		Name:        name,
		Description: strings.TrimSpace(description),
		Price:       priceDec,
		Stock:       stockInt,
		Category:    strings.TrimSpace(category),
	}, nil
}
