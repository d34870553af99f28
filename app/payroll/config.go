package payroll

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lysyi3m/radio-guiones/app/records"
)

// ConfigVersion is the schema version written by SaveConfig.
const ConfigVersion = 1

// DefaultLevel applies to roles the user has no level for.
const DefaultLevel = "I"

// configMigration upgrades a stored config by exactly one version.
type configMigration func(map[string]json.RawMessage) (map[string]json.RawMessage, error)

// configMigrations[n] upgrades version n to n+1.
var configMigrations = []configMigration{
	migrateSingleRole,
}

// migrateSingleRole turns {role, level} into {roles: [{role, level}]}.
func migrateSingleRole(doc map[string]json.RawMessage) (map[string]json.RawMessage, error) {
	var single records.RoleLevel
	if raw, ok := doc["role"]; ok {
		if err := json.Unmarshal(raw, &single.Role); err != nil {
			return nil, fmt.Errorf("invalid role: %w", err)
		}
	}
	if raw, ok := doc["level"]; ok {
		if err := json.Unmarshal(raw, &single.Level); err != nil {
			return nil, fmt.Errorf("invalid level: %w", err)
		}
	}

	var roles []records.RoleLevel
	if single.Role != "" {
		roles = append(roles, single)
	}
	encoded, err := json.Marshal(roles)
	if err != nil {
		return nil, err
	}

	return map[string]json.RawMessage{"roles": encoded}, nil
}

// upgradeConfig applies the migrations needed to bring doc to ConfigVersion
// and reports whether anything changed.
func upgradeConfig(doc map[string]json.RawMessage) (records.PaymentConfig, bool, error) {
	version, err := configVersion(doc)
	if err != nil {
		return records.PaymentConfig{}, false, err
	}
	if version > ConfigVersion {
		return records.PaymentConfig{}, false, fmt.Errorf("unsupported config version %d", version)
	}

	from := version
	for ; version < ConfigVersion; version++ {
		if doc, err = configMigrations[version](doc); err != nil {
			return records.PaymentConfig{}, false, fmt.Errorf("failed to migrate config from version %d: %w", version, err)
		}
	}

	var config records.PaymentConfig
	if raw, ok := doc["roles"]; ok {
		if err := json.Unmarshal(raw, &config.Roles); err != nil {
			return records.PaymentConfig{}, false, fmt.Errorf("invalid config roles: %w", err)
		}
	}
	config.Version = ConfigVersion

	if from != version {
		slog.Debug("Payment config migrated", "from", from, "to", version)
	}
	return config, from != version, nil
}

// configVersion reads the stored version. Documents written before versioning
// are told apart by shape: a roles list is already the current layout.
func configVersion(doc map[string]json.RawMessage) (int, error) {
	raw, ok := doc["version"]
	if !ok {
		if _, hasRoles := doc["roles"]; hasRoles {
			return 1, nil
		}
		return 0, nil
	}

	var version int
	if err := json.Unmarshal(raw, &version); err != nil {
		return 0, fmt.Errorf("invalid config version: %w", err)
	}
	return version, nil
}

// LevelFor returns the level configured for role, or DefaultLevel.
func LevelFor(config records.PaymentConfig, role string) string {
	for _, r := range config.Roles {
		if strings.EqualFold(strings.TrimSpace(r.Role), strings.TrimSpace(role)) && r.Level != "" {
			return r.Level
		}
	}
	return DefaultLevel
}
