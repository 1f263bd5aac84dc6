package datastore

import (
	"context"
	"fmt"
	"strings"

	"github.com/mind-engage/howacademia/internal/events"
)

// displayName derives a name from the local part of an email address.
func displayName(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

// SignIn looks the user up by exact email and auto-creates a student when
// none exists. The password is not checked. The user becomes current.
func (s *Store) SignIn(ctx context.Context, email, password string) (User, error) {
	if email == "" {
		return User{}, fmt.Errorf("sign in: empty email: %w", ErrInvalidArgument)
	}
	s.mu.Lock()
	var (
		u       User
		created bool
	)
	if i := s.userIndexByEmail(email); i >= 0 {
		u = s.users[i]
	} else {
		u = User{
			ID:        s.newID("user"),
			Email:     email,
			Name:      displayName(email),
			Role:      RoleStudent,
			CreatedAt: s.now(),
		}
		s.users = append(s.users, u)
		persist(s, ctx, KeyUsers, s.users)
		created = true
	}
	s.setCurrentLocked(ctx, &u)
	s.mu.Unlock()

	if created {
		s.publish(events.UserCreated, u.ID)
	}
	return u, nil
}

// SignUp always creates a new user, even when the email is taken.
func (s *Store) SignUp(ctx context.Context, email, password string, role Role, name string) (User, error) {
	if !role.Valid() {
		return User{}, fmt.Errorf("sign up: %q: %w", role, ErrInvalidRole)
	}
	if name == "" {
		name = displayName(email)
	}
	u := User{
		ID:        s.newID("user"),
		Email:     email,
		Name:      name,
		Role:      role,
		CreatedAt: s.now(),
	}
	s.mu.Lock()
	s.users = append(s.users, u)
	persist(s, ctx, KeyUsers, s.users)
	s.setCurrentLocked(ctx, &u)
	s.mu.Unlock()

	s.publish(events.UserCreated, u.ID)
	return u, nil
}

func (s *Store) SignOut(ctx context.Context) {
	s.SetCurrentUser(ctx, nil)
}

func (s *Store) GetUsers(_ context.Context, f UserFilter) []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []User{}
	for _, u := range s.users {
		if f.match(u) {
			out = append(out, u)
		}
	}
	return out
}

func (s *Store) GetUserByID(_ context.Context, id string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.userIndex(id); i >= 0 {
		return s.users[i], true
	}
	return User{}, false
}

// UpdateUser merges the non-nil fields of up into the user. When the user
// is the current user the current reference is refreshed too.
func (s *Store) UpdateUser(ctx context.Context, id string, up UserUpdate) (User, error) {
	if up.Role != nil && !up.Role.Valid() {
		return User{}, fmt.Errorf("update user %s: %q: %w", id, *up.Role, ErrInvalidRole)
	}
	s.mu.Lock()
	i := s.userIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return User{}, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	u := up.apply(s.users[i])
	s.users[i] = u
	persist(s, ctx, KeyUsers, s.users)
	if s.current != nil && s.current.ID == id {
		s.setCurrentLocked(ctx, &u)
	}
	s.mu.Unlock()

	s.publish(events.UserUpdated, u.ID)
	return u, nil
}

func (s *Store) userIndex(id string) int {
	for i := range s.users {
		if s.users[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) userIndexByEmail(email string) int {
	for i := range s.users {
		if s.users[i].Email == email {
			return i
		}
	}
	return -1
}
