package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/siteforge/apiserver/types"
)

// UserRepository handles persistence for users on top of a record
// collection.
type UserRepository struct {
	records RecordCollection
}

func NewUserRepository(records RecordCollection) *UserRepository {
	return &UserRepository{records: records}
}

// GetByEmail scans the collection for a user with the given
// normalized email. Emails are stored normalized, so the comparison
// is exact.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (types.User, error) {
	records, err := r.records.All(ctx)
	if err != nil {
		return types.User{}, err
	}
	for _, record := range records {
		var user types.User
		if err := json.Unmarshal(record, &user); err != nil {
			return types.User{}, fmt.Errorf("decode user record: %w", err)
		}
		if user.Email == email {
			return user, nil
		}
	}
	return types.User{}, ErrNotFound
}

// Create appends a new user with a time-derived id.
func (r *UserRepository) Create(ctx context.Context, user types.User) (types.User, error) {
	now := time.Now()
	user.ID = now.UnixMilli()
	user.CreatedAt = now.UTC()

	record, err := json.Marshal(user)
	if err != nil {
		return types.User{}, fmt.Errorf("encode user record: %w", err)
	}
	if err := r.records.Append(ctx, record); err != nil {
		return types.User{}, err
	}
	return user, nil
}
