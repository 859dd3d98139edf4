package domain

import "errors"

// RelationKind selects which of the three many-to-many relations a ledger
// call operates on.
type RelationKind string

const (
	RelationFavorite     RelationKind = "favorite"
	RelationShoppingCart RelationKind = "shopping_cart"
	RelationSubscription RelationKind = "subscription"
)

var (
	MessageSuccessAddFavorite      = "recipe added to favorites"
	MessageSuccessRemoveFavorite   = "recipe removed from favorites"
	MessageSuccessAddToCart        = "recipe added to shopping cart"
	MessageSuccessRemoveFromCart   = "recipe removed from shopping cart"
	MessageSuccessSubscribe        = "subscribed successfully"
	MessageSuccessUnsubscribe      = "subscription removed"
	MessageSuccessGetSubscriptions = "success get subscriptions"

	MessageFailedAddFavorite      = "failed to add recipe to favorites"
	MessageFailedRemoveFavorite   = "failed to remove recipe from favorites"
	MessageFailedAddToCart        = "failed to add recipe to shopping cart"
	MessageFailedRemoveFromCart   = "failed to remove recipe from shopping cart"
	MessageFailedSubscribe        = "failed to subscribe"
	MessageFailedUnsubscribe      = "failed to remove subscription"
	MessageFailedGetSubscriptions = "failed to get subscriptions"

	ErrAlreadyInFavorites = errors.New("recipe already in favorites")
	ErrNotInFavorites     = errors.New("recipe not in favorites")
	ErrAlreadyInCart      = errors.New("recipe already in shopping cart")
	ErrNotInCart          = errors.New("recipe not in shopping cart")
	ErrAlreadySubscribed  = errors.New("already subscribed to this user")
	ErrNotSubscribed      = errors.New("not subscribed to this user")
)

// AlreadyExistsError returns the conflict sentinel for a relation kind.
func (k RelationKind) AlreadyExistsError() error {
	switch k {
	case RelationShoppingCart:
		return ErrAlreadyInCart
	case RelationSubscription:
		return ErrAlreadySubscribed
	default:
		return ErrAlreadyInFavorites
	}
}

// NotFoundError returns the missing-pair sentinel for a relation kind.
func (k RelationKind) NotFoundError() error {
	switch k {
	case RelationShoppingCart:
		return ErrNotInCart
	case RelationSubscription:
		return ErrNotSubscribed
	default:
		return ErrNotInFavorites
	}
}
