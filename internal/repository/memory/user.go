package memory

import (
	"context"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/user"
)

type userRepositoryImpl struct {
	db *DB
}

func NewUserRepository(db *DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, u user.User, credential string) (user.User, error) {
	u = r.db.users.insert(u)
	r.db.credentials.Store(credential, u.ID)
	return u, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id int64) (user.User, error) {
	u, ok := r.db.users.get(id)
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

// GetByCredential implements user.UserRepository.
func (r *userRepositoryImpl) GetByCredential(ctx context.Context, credential string) (user.User, error) {
	id, ok := r.db.credentials.Load(credential)
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return r.GetByID(ctx, id.(int64))
}
