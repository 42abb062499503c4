package auth

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Sentinel errors surfaced by the account manager.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnknownUser        = errors.New("unknown user")
	ErrUserExists         = errors.New("user already exists")
	ErrLastAdmin          = errors.New("cannot remove or demote the last admin")
)

// Manager owns the account table behind a mutex. Every mutation is a
// load-modify-save over the Users backend; account changes are rare and
// human-paced, so re-reading is cheaper than cache invalidation.
type Manager struct {
	mu    sync.Mutex
	users Users
}

// NewManager wraps a Users backend.
func NewManager(users Users) *Manager {
	return &Manager{users: users}
}

// Authenticate verifies the credentials and returns the account's role.
// Unknown user and wrong password are indistinguishable to the caller.
func (m *Manager) Authenticate(ctx context.Context, username, password string) (Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	all, err := m.users.LoadUsers(ctx)
	if err != nil {
		return "", fmt.Errorf("authenticate: %w", err)
	}
	u, ok := all[username]
	if !ok || !VerifyPassword(password, u.PasswordHash) {
		return "", ErrInvalidCredentials
	}
	return u.Role, nil
}

// Add creates an account. Fails if the username is taken or the role is
// unrecognized.
func (m *Manager) Add(ctx context.Context, username, password string, role Role) error {
	if username == "" {
		return fmt.Errorf("add user: username is required")
	}
	if !ValidRole(role) {
		return fmt.Errorf("add user: invalid role %q", role)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	all, err := m.users.LoadUsers(ctx)
	if err != nil {
		return fmt.Errorf("add user: %w", err)
	}
	if _, taken := all[username]; taken {
		return fmt.Errorf("add user %q: %w", username, ErrUserExists)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("add user: %w", err)
	}
	all[username] = User{PasswordHash: hash, Role: role}

	if err := m.users.SaveUsers(ctx, all); err != nil {
		return fmt.Errorf("add user: %w", err)
	}
	return nil
}

// Remove deletes an account, refusing to delete the last admin.
func (m *Manager) Remove(ctx context.Context, username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	all, err := m.users.LoadUsers(ctx)
	if err != nil {
		return fmt.Errorf("remove user: %w", err)
	}
	u, ok := all[username]
	if !ok {
		return fmt.Errorf("remove user %q: %w", username, ErrUnknownUser)
	}
	if u.Role == RoleAdmin && countAdmins(all) == 1 {
		return fmt.Errorf("remove user %q: %w", username, ErrLastAdmin)
	}
	delete(all, username)

	if err := m.users.SaveUsers(ctx, all); err != nil {
		return fmt.Errorf("remove user: %w", err)
	}
	return nil
}

// SetRole changes an account's role, refusing to demote the last admin.
func (m *Manager) SetRole(ctx context.Context, username string, role Role) error {
	if !ValidRole(role) {
		return fmt.Errorf("set role: invalid role %q", role)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	all, err := m.users.LoadUsers(ctx)
	if err != nil {
		return fmt.Errorf("set role: %w", err)
	}
	u, ok := all[username]
	if !ok {
		return fmt.Errorf("set role for %q: %w", username, ErrUnknownUser)
	}
	if u.Role == RoleAdmin && role != RoleAdmin && countAdmins(all) == 1 {
		return fmt.Errorf("set role for %q: %w", username, ErrLastAdmin)
	}
	u.Role = role
	all[username] = u

	if err := m.users.SaveUsers(ctx, all); err != nil {
		return fmt.Errorf("set role: %w", err)
	}
	return nil
}

// SetPassword rehashes an account's password.
func (m *Manager) SetPassword(ctx context.Context, username, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	all, err := m.users.LoadUsers(ctx)
	if err != nil {
		return fmt.Errorf("set password: %w", err)
	}
	u, ok := all[username]
	if !ok {
		return fmt.Errorf("set password for %q: %w", username, ErrUnknownUser)
	}
	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("set password: %w", err)
	}
	u.PasswordHash = hash
	all[username] = u

	if err := m.users.SaveUsers(ctx, all); err != nil {
		return fmt.Errorf("set password: %w", err)
	}
	return nil
}

// List returns usernames and roles sorted by username.
func (m *Manager) List(ctx context.Context) ([]Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	all, err := m.users.LoadUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	accounts := make([]Account, 0, len(all))
	for name, u := range all {
		accounts = append(accounts, Account{Username: name, Role: u.Role})
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].Username < accounts[j].Username
	})
	return accounts, nil
}

// Count returns the number of accounts.
func (m *Manager) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	all, err := m.users.LoadUsers(ctx)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return len(all), nil
}

// Account is a listing row: everything about a user except the hash.
type Account struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

func countAdmins(all map[string]User) int {
	n := 0
	for _, u := range all {
		if u.Role == RoleAdmin {
			n++
		}
	}
	return n
}
