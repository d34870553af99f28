// Package payroll records who worked which program on which day and what
// that work pays.
package payroll

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lysyi3m/radio-guiones/app/catalog"
	"github.com/lysyi3m/radio-guiones/app/dates"
	"github.com/lysyi3m/radio-guiones/app/records"
	"github.com/lysyi3m/radio-guiones/app/store"
)

var (
	ErrMissingField = errors.New("user, role and program are required")
	ErrInvalidMonth = errors.New("month must be YYYY-MM")
)

// RateSource prices a role at a level in a program.
type RateSource interface {
	Current() (*catalog.Catalog, error)
}

type Service struct {
	store store.Store
	rates RateSource
	now   func() time.Time
	mu    sync.Mutex
}

func NewService(s store.Store, rates RateSource) *Service {
	return &Service{store: s, rates: rates, now: time.Now}
}

// Toggle adds the work log for (userID, role, program, date) or removes it
// when it already exists. The amount is priced from the catalog at creation
// using the level of the user's payment config. It reports whether the log
// now exists.
func (s *Service) Toggle(userID, role, program, date string) (records.WorkLog, bool, error) {
	entry := records.WorkLog{
		UserID:      strings.TrimSpace(userID),
		Role:        strings.TrimSpace(role),
		ProgramName: strings.TrimSpace(program),
	}
	if entry.UserID == "" || entry.Role == "" || entry.ProgramName == "" {
		return entry, false, ErrMissingField
	}
	parsed, _ := dates.ParseAt(date, s.now())
	entry.Date = dates.ISO(parsed)

	s.mu.Lock()
	defer s.mu.Unlock()

	logs, err := s.Logs()
	if err != nil {
		return entry, false, err
	}

	key := entry.NaturalKey()
	for i := range logs {
		if logs[i].NaturalKey() == key {
			removed := logs[i]
			logs = append(logs[:i], logs[i+1:]...)
			if err := s.saveLogs(logs); err != nil {
				return entry, false, err
			}
			slog.Debug("Work log removed", "user", removed.UserID, "role", removed.Role, "program", removed.ProgramName, "date", removed.Date)
			return removed, false, nil
		}
	}

	config, err := s.loadConfig(entry.UserID)
	if err != nil {
		return entry, false, err
	}
	prices, err := s.rates.Current()
	if err != nil {
		return entry, false, err
	}

	entry.ID = uuid.NewString()
	entry.Amount = prices.Rate(entry.ProgramName, entry.Role, LevelFor(config, entry.Role))

	if err := s.saveLogs(append(logs, entry)); err != nil {
		return entry, false, err
	}
	slog.Debug("Work log added", "user", entry.UserID, "role", entry.Role, "program", entry.ProgramName, "date", entry.Date, "amount", entry.Amount)
	return entry, true, nil
}

// Logs returns every stored work log.
func (s *Service) Logs() ([]records.WorkLog, error) {
	return store.Load[[]records.WorkLog](s.store, records.KeyWorkLogs)
}

// UserLogs returns the logs of userID in month (YYYY-MM), by date.
func (s *Service) UserLogs(userID, month string) ([]records.WorkLog, error) {
	if err := validMonth(month); err != nil {
		return nil, err
	}

	logs, err := s.Logs()
	if err != nil {
		return nil, err
	}

	var out []records.WorkLog
	for _, l := range logs {
		if l.UserID == userID && strings.HasPrefix(l.Date, month) {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// Total is the amount earned by userID in month.
func (s *Service) Total(userID, month string) (float64, error) {
	logs, err := s.UserLogs(userID, month)
	if err != nil {
		return 0, err
	}

	total := 0.0
	for _, l := range logs {
		total += l.Amount
	}
	return total, nil
}

type RoleSummary struct {
	Role   string  `json:"role"`
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

type ProgramSummary struct {
	Program string        `json:"program"`
	Total   float64       `json:"total"`
	Roles   []RoleSummary `json:"roles"`
}

type UserSummary struct {
	UserID   string           `json:"userId"`
	Total    float64          `json:"total"`
	Programs []ProgramSummary `json:"programs"`
}

// Summary groups the logs of month by user, program and role.
func (s *Service) Summary(month string) ([]UserSummary, error) {
	if err := validMonth(month); err != nil {
		return nil, err
	}

	logs, err := s.Logs()
	if err != nil {
		return nil, err
	}

	byUser := make(map[string]map[string]map[string]*RoleSummary)
	for _, l := range logs {
		if !strings.HasPrefix(l.Date, month) {
			continue
		}
		if byUser[l.UserID] == nil {
			byUser[l.UserID] = make(map[string]map[string]*RoleSummary)
		}
		if byUser[l.UserID][l.ProgramName] == nil {
			byUser[l.UserID][l.ProgramName] = make(map[string]*RoleSummary)
		}
		role := byUser[l.UserID][l.ProgramName][l.Role]
		if role == nil {
			role = &RoleSummary{Role: l.Role}
			byUser[l.UserID][l.ProgramName][l.Role] = role
		}
		role.Count++
		role.Amount += l.Amount
	}

	var summaries []UserSummary
	for _, userID := range sortedKeys(byUser) {
		user := UserSummary{UserID: userID}
		for _, program := range sortedKeys(byUser[userID]) {
			ps := ProgramSummary{Program: program}
			for _, role := range sortedKeys(byUser[userID][program]) {
				rs := byUser[userID][program][role]
				ps.Roles = append(ps.Roles, *rs)
				ps.Total += rs.Amount
			}
			user.Programs = append(user.Programs, ps)
			user.Total += ps.Total
		}
		summaries = append(summaries, user)
	}

	return summaries, nil
}

// LoadConfig returns the payment config of username, migrating and
// rewriting older stored shapes.
func (s *Service) LoadConfig(username string) (records.PaymentConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadConfig(username)
}

// SaveConfig stores config for username at the current schema version.
func (s *Service) SaveConfig(username string, config records.PaymentConfig) (records.PaymentConfig, error) {
	config.Version = ConfigVersion
	for i := range config.Roles {
		config.Roles[i].Role = strings.TrimSpace(config.Roles[i].Role)
		config.Roles[i].Level = strings.TrimSpace(config.Roles[i].Level)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Set(records.PaymentConfigKey(username), config); err != nil {
		return config, fmt.Errorf("failed to save payment config of %s: %w", username, err)
	}
	return config, nil
}

func (s *Service) loadConfig(username string) (records.PaymentConfig, error) {
	key := records.PaymentConfigKey(username)

	var doc map[string]json.RawMessage
	ok, err := s.store.Get(key, &doc)
	if err != nil {
		return records.PaymentConfig{}, err
	}
	if !ok || doc == nil {
		return records.PaymentConfig{Version: ConfigVersion}, nil
	}

	config, migrated, err := upgradeConfig(doc)
	if err != nil {
		return records.PaymentConfig{}, fmt.Errorf("payment config of %s: %w", username, err)
	}

	if migrated {
		if err := s.store.Set(key, config); err != nil {
			return config, fmt.Errorf("failed to rewrite payment config of %s: %w", username, err)
		}
		slog.Info("Payment config upgraded", "user", username, "version", config.Version)
	}
	return config, nil
}

func (s *Service) saveLogs(logs []records.WorkLog) error {
	if err := s.store.Set(records.KeyWorkLogs, logs); err != nil {
		return fmt.Errorf("failed to save work logs: %w", err)
	}
	return nil
}

func validMonth(month string) error {
	if _, err := time.Parse("2006-01", month); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidMonth, month)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
