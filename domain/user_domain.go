package domain

import "errors"

var (
	MessageSuccessGetUser    = "success get user"
	MessageSuccessGetUsers   = "success get users"
	MessageSuccessDeleteUser = "user deleted successfully"

	MessageFailedGetUser    = "failed to get user"
	MessageFailedGetUsers   = "failed to get users"
	MessageFailedDeleteUser = "failed to delete user"

	ErrUserNotFound = errors.New("user not found")
)

type (
	User struct {
		ID        string `json:"id"`
		Username  string `json:"username"`
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		AvatarURL string `json:"avatar,omitempty"`
	}

	// SubscribedAuthor is one entry of the subscriptions listing: the author
	// plus a recent slice of their recipes and the full count.
	SubscribedAuthor struct {
		User
		Recipes      []Recipe `json:"recipes"`
		RecipesCount int64    `json:"recipes_count"`
	}
)
