package memory

import (
	"context"

	"jobboard/internal/domain/user"

	"github.com/google/uuid"
)

type UserStore struct {
	db *DB
}

func (s *UserStore) Create(ctx context.Context, u user.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, existing := range s.db.users {
		if existing.Email == u.Email {
			return user.ErrEmailTaken
		}
	}
	now := s.db.tick()
	u.CreatedAt = now
	u.UpdatedAt = now
	s.db.users[u.ID] = u
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	if err := ctx.Err(); err != nil {
		return user.User{}, err
	}

	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	u, ok := s.db.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (user.User, error) {
	if err := ctx.Err(); err != nil {
		return user.User{}, err
	}

	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	for _, u := range s.db.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (s *UserStore) UpdateProfile(ctx context.Context, id uuid.UUID, fullName *string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	u, ok := s.db.users[id]
	if !ok {
		return user.ErrNotFound
	}
	u.FullName = fullName
	u.UpdatedAt = s.db.tick()
	s.db.users[id] = u
	return nil
}
