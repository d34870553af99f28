// Package users manages the station accounts. Login is a plain string match
// and not a security boundary.
package users

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/lysyi3m/radio-guiones/app/parser"
	"github.com/lysyi3m/radio-guiones/app/records"
	"github.com/lysyi3m/radio-guiones/app/store"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrDuplicate          = errors.New("username already exists")
	ErrProtected          = errors.New("user cannot be deleted")
	ErrUsernameRequired   = errors.New("username is required")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidClass       = errors.New("invalid classification")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type Service struct {
	store         store.Store
	adminPassword string
	mu            sync.Mutex
}

// NewService creates a new user service; adminPassword seeds the built-in
// admin account.
func NewService(s store.Store, adminPassword string) *Service {
	return &Service{store: s, adminPassword: adminPassword}
}

// EnsureAdmin creates the built-in admin account when it is missing.
func (s *Service) EnsureAdmin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load()
	if err != nil {
		return err
	}
	if indexOf(list, records.AdminUsername) >= 0 {
		return nil
	}

	list = append([]records.User{{
		Username:       records.AdminUsername,
		Name:           "Administrador",
		Password:       s.adminPassword,
		Role:           records.RoleAdmin,
		Classification: records.ClassAdministrator,
	}}, list...)

	if err := s.save(list); err != nil {
		return err
	}
	slog.Info("Admin account created")
	return nil
}

func (s *Service) List() ([]records.User, error) {
	return s.load()
}

func (s *Service) Get(username string) (records.User, error) {
	list, err := s.load()
	if err != nil {
		return records.User{}, err
	}
	i := indexOf(list, username)
	if i < 0 {
		return records.User{}, ErrNotFound
	}
	return list[i], nil
}

// Add creates an account. Role defaults to worker.
func (s *Service) Add(user records.User) (records.User, error) {
	user.Username = strings.TrimSpace(user.Username)
	if user.Username == "" {
		return user, ErrUsernameRequired
	}
	user.Role = cmp.Or(user.Role, records.RoleWorker)
	if !user.Role.Valid() {
		return user, fmt.Errorf("%w: %s", ErrInvalidRole, user.Role)
	}
	if user.Classification != "" && !slices.Contains(records.Classifications, user.Classification) {
		return user, fmt.Errorf("%w: %s", ErrInvalidClass, user.Classification)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load()
	if err != nil {
		return user, err
	}
	if indexOf(list, user.Username) >= 0 {
		return user, fmt.Errorf("%w: %s", ErrDuplicate, user.Username)
	}

	if err := s.save(append(list, user)); err != nil {
		return user, err
	}
	return user, nil
}

// Delete removes an account. The built-in admin is protected.
func (s *Service) Delete(username string) error {
	if username == records.AdminUsername {
		return ErrProtected
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load()
	if err != nil {
		return err
	}
	i := indexOf(list, username)
	if i < 0 {
		return ErrNotFound
	}

	return s.save(append(list[:i], list[i+1:]...))
}

// ImportReport summarizes a bulk user import.
type ImportReport struct {
	Added        int `json:"added"`
	Existing     int `json:"existing"`
	Skipped      int `json:"skipped"`
	WithDefaults int `json:"withDefaults"`
}

// Import appends the accounts parsed from raw. Usernames that already exist
// are left untouched.
func (s *Service) Import(raw string) (ImportReport, error) {
	result := parser.ParseUsers(raw)
	report := ImportReport{Skipped: result.Skipped, WithDefaults: result.WithDefaults}
	if err := result.Err(); err != nil {
		return report, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load()
	if err != nil {
		return report, err
	}

	for _, user := range result.Records {
		if indexOf(list, user.Username) >= 0 {
			report.Existing++
			continue
		}
		list = append(list, user)
		report.Added++
	}

	if report.Added > 0 {
		if err := s.save(list); err != nil {
			return report, err
		}
	}

	slog.Info("Users imported", "added", report.Added, "existing", report.Existing, "skipped", report.Skipped)
	return report, nil
}

// Login returns the account whose username and password match exactly.
func (s *Service) Login(username, password string) (records.User, error) {
	user, err := s.Get(strings.TrimSpace(username))
	if err != nil || user.Password != password {
		return records.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// CanViewDigest reports whether user may read the monthly digest.
func CanViewDigest(user records.User) bool {
	if user.Role == records.RoleAdmin {
		return true
	}
	switch user.Classification {
	case records.ClassDirector, records.ClassAdministrator:
		return true
	}
	return false
}

func (s *Service) load() ([]records.User, error) {
	return store.Load[[]records.User](s.store, records.KeyUsers)
}

func (s *Service) save(list []records.User) error {
	if err := s.store.Set(records.KeyUsers, list); err != nil {
		return fmt.Errorf("failed to save users: %w", err)
	}
	return nil
}

func indexOf(list []records.User, username string) int {
	return slices.IndexFunc(list, func(u records.User) bool {
		return u.Username == username
	})
}
