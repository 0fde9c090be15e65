package auth

import "context"

// UserStore is the persistence contract required by the auth subsystem.
// Implementations must apply Save atomically per row; concurrent writers to
// the same account race on the refresh-token slot and the last writer wins.
type UserStore interface {
	Create(ctx context.Context, u *User) error
	Find(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Save(ctx context.Context, u *User) error
}
