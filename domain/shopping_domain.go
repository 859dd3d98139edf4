package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessDownloadCart = "shopping list generated"
	MessageFailedDownloadCart  = "failed to generate shopping list"

	// ErrShoppingCartEmpty is raised by the download endpoint only; the
	// aggregator itself treats an empty cart as an empty result.
	ErrShoppingCartEmpty = errors.New("shopping cart is empty")
)

// ShoppingItem is one merged purchase line: every cart recipe's amounts for
// the same (name, unit) pair summed exactly.
type ShoppingItem struct {
	Name            string          `json:"name"`
	MeasurementUnit string          `json:"measurement_unit"`
	Amount          decimal.Decimal `json:"amount"`
}
