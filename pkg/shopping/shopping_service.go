package shopping

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/foodgram-app/foodgram-backend/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type (
	ShoppingService interface {
		Aggregate(ctx context.Context, userID string) ([]domain.ShoppingItem, error)
		RenderText(items []domain.ShoppingItem) string
	}

	shoppingService struct {
		shoppingRepository ShoppingRepository
	}
)

func NewShoppingService(shoppingRepository ShoppingRepository) ShoppingService {
	return &shoppingService{shoppingRepository: shoppingRepository}
}

// Aggregate merges the ingredient lines of every recipe in the user's cart
// into one purchase list: lines are grouped by (name, unit), amounts summed
// with exact decimals, and the result ordered by name (case-insensitive,
// unit as tie-break) so repeated calls over the same cart produce identical
// output. An empty cart yields an empty list, not an error.
func (s *shoppingService) Aggregate(ctx context.Context, userID string) ([]domain.ShoppingItem, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	lines, err := s.shoppingRepository.GetCartLines(ctx, userUUID)
	if err != nil {
		return nil, domain.StorageError(err)
	}

	totals := make(map[string]*domain.ShoppingItem)
	for _, line := range lines {
		if line.Ingredient == nil {
			// The catalog row vanished under a concurrent delete; skip the
			// line rather than fail the whole list.
			continue
		}

		key := line.Ingredient.Name + "\x00" + line.Ingredient.MeasurementUnit
		if item, ok := totals[key]; ok {
			item.Amount = item.Amount.Add(line.Amount)
			continue
		}
		totals[key] = &domain.ShoppingItem{
			Name:            line.Ingredient.Name,
			MeasurementUnit: line.Ingredient.MeasurementUnit,
			Amount:          line.Amount,
		}
	}

	items := make([]domain.ShoppingItem, 0, len(totals))
	for _, item := range totals {
		items = append(items, *item)
	}

	sort.Slice(items, func(i, j int) bool {
		a, b := strings.ToLower(items[i].Name), strings.ToLower(items[j].Name)
		if a != b {
			return a < b
		}
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].MeasurementUnit < items[j].MeasurementUnit
	})

	return items, nil
}

// RenderText produces the downloadable document, one merged line per
// ingredient.
func (s *shoppingService) RenderText(items []domain.ShoppingItem) string {
	var sb strings.Builder
	sb.WriteString("Shopping list:\n\n")
	for _, item := range items {
		sb.WriteString(fmt.Sprintf(
			"%s (%s) - %s\n",
			item.Name,
			item.MeasurementUnit,
			formatAmount(item.Amount),
		))
	}
	return sb.String()
}

func formatAmount(amount decimal.Decimal) string {
	if amount.IsInteger() {
		return amount.Truncate(0).String()
	}
	return amount.String()
}
