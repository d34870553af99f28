package payroll

import (
	"encoding/json"
	"testing"

	"github.com/lysyi3m/radio-guiones/app/records"
)

func TestLoadConfigMigratesSingleRole(t *testing.T) {
	s, mem := newTestService(t)

	mem.SetRaw(records.PaymentConfigKey("ana"), []byte(`{"role":"Locutor","level":"II"}`))

	config, err := s.LoadConfig("ana")
	if err != nil {
		t.Fatal(err)
	}
	if config.Version != ConfigVersion {
		t.Errorf("Expected version %d, got %d", ConfigVersion, config.Version)
	}
	if len(config.Roles) != 1 || config.Roles[0] != (records.RoleLevel{Role: "Locutor", Level: "II"}) {
		t.Errorf("Unexpected roles: %+v", config.Roles)
	}

	var stored map[string]json.RawMessage
	if _, err := mem.Get(records.PaymentConfigKey("ana"), &stored); err != nil {
		t.Fatal(err)
	}
	if _, ok := stored["role"]; ok {
		t.Error("Expected the old shape to be rewritten")
	}
	if string(stored["version"]) != "1" {
		t.Errorf("Expected stored version 1, got %s", stored["version"])
	}
}

func TestLoadConfigCurrentShape(t *testing.T) {
	s, mem := newTestService(t)

	mem.SetRaw(records.PaymentConfigKey("luis"), []byte(`{"version":1,"roles":[{"role":"Director","level":"III"}]}`))

	config, err := s.LoadConfig("luis")
	if err != nil {
		t.Fatal(err)
	}
	if LevelFor(config, "director") != "III" {
		t.Errorf("Expected level III, got %q", LevelFor(config, "director"))
	}
	if LevelFor(config, "Locutor") != DefaultLevel {
		t.Errorf("Expected default level for unconfigured role")
	}
}

func TestLoadConfigUnversionedRoles(t *testing.T) {
	s, mem := newTestService(t)

	raw := `{"roles":[{"role":"Director","level":"II"}]}`
	mem.SetRaw(records.PaymentConfigKey("ana"), []byte(raw))

	config, err := s.LoadConfig("ana")
	if err != nil {
		t.Fatal(err)
	}
	if len(config.Roles) != 1 || config.Roles[0] != (records.RoleLevel{Role: "Director", Level: "II"}) {
		t.Errorf("Expected the stored roles to survive, got %+v", config.Roles)
	}
	if config.Version != ConfigVersion {
		t.Errorf("Expected version %d, got %d", ConfigVersion, config.Version)
	}

	var stored json.RawMessage
	if _, err := mem.Get(records.PaymentConfigKey("ana"), &stored); err != nil {
		t.Fatal(err)
	}
	if string(stored) != raw {
		t.Errorf("Expected the stored document to be left as is, got %s", stored)
	}

	entry, _, err := s.Toggle("ana", "Director", "Sembrando Valores", "2026-10-14")
	if err != nil {
		t.Fatal(err)
	}
	if entry.Amount != 90 {
		t.Errorf("Expected the director to be priced at level II (90), got %v", entry.Amount)
	}
}

func TestLoadConfigMissingOrUnsupported(t *testing.T) {
	s, mem := newTestService(t)

	config, err := s.LoadConfig("nadie")
	if err != nil {
		t.Fatal(err)
	}
	if len(config.Roles) != 0 || config.Version != ConfigVersion {
		t.Errorf("Unexpected empty config: %+v", config)
	}

	mem.SetRaw(records.PaymentConfigKey("futuro"), []byte(`{"version":7,"roles":[]}`))
	if _, err := s.LoadConfig("futuro"); err == nil {
		t.Error("Expected an error for a newer config version")
	}
}

func TestMigrateSingleRoleWithoutRole(t *testing.T) {
	doc := map[string]json.RawMessage{"level": json.RawMessage(`"II"`)}

	config, migrated, err := upgradeConfig(doc)
	if err != nil {
		t.Fatal(err)
	}
	if !migrated || len(config.Roles) != 0 {
		t.Errorf("Expected migration to an empty role list, got %+v (migrated=%v)", config, migrated)
	}
}
