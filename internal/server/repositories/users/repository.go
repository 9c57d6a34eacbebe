// Package users contains the credential store: persistence of user records
// with a uniqueness guarantee on email.
package users

import (
	"context"

	"github.com/dmitrijs2005/libauth/internal/server/models"
)

// Repository persists user records.
//
// Create returns common.ErrorAlreadyExists when the email is taken. The
// lookups return common.ErrorNotFound when no record matches. Any other
// error is a storage fault.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}
