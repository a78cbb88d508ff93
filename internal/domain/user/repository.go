package user

import "context"

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (User, error)
	// GetByCredential resolves a Google ID token to its user.
	GetByCredential(ctx context.Context, credential string) (User, error)
	// Create stores u and makes credential sign it in.
	Create(ctx context.Context, u User, credential string) (User, error)
}
