package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-backrooms/domain"
	"github.com/google/uuid"
)

// UserRepo defines the interface for user persistence operations.
type UserRepo interface {
	// Save inserts or updates a user in the repository.
	// If the user already exists, it updates the record. Otherwise, it creates a new one.
	Save(user *dmn.User) error

	// ByID retrieves a user by their unique ID.
	// Returns an error if the user is not found or in case of an unexpected error.
	ByID(id uuid.UUID) (*dmn.User, error)

	// ByUsername retrieves a user by their username.
	// Returns an error if the user is not found or in case of an unexpected error.
	ByUsername(username string) (*dmn.User, error)
}

// LayoutRepo persists generated layouts.
type LayoutRepo interface {
	// Save inserts the layout, replacing any layout with the same ID.
	Save(ctx context.Context, layout *dmn.Layout) error

	// ByID returns dmn.ErrLayoutNotFound when no layout has the ID.
	ByID(ctx context.Context, id uuid.UUID) (*dmn.Layout, error)

	// ByOwner returns the owner's most recent layouts, newest first.
	ByOwner(ctx context.Context, ownerID uuid.UUID, limit int64) ([]*dmn.Layout, error)
}
