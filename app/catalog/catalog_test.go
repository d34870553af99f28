package catalog

import (
	"errors"
	"testing"

	"github.com/lysyi3m/radio-guiones/app/records"
	"github.com/lysyi3m/radio-guiones/app/store"
)

func testCatalog() *Catalog {
	return New([]records.ProgramCatalog{
		{
			Name: "Sembrando Valores",
			Roles: []records.RolePaymentInfo{
				{
					Role:     "Director",
					Rates:    []records.LevelAmount{{Level: "I", Amount: 100}, {Level: "II", Amount: 90}},
					Salaries: []records.LevelAmount{{Level: "I", Amount: 3500}},
				},
				{Role: "Producción Musical", Rates: []records.LevelAmount{{Level: "I", Amount: 50}}},
				{Role: "Realizador", Rates: []records.LevelAmount{{Level: "I", Amount: 40}}},
				{Role: "Locutor", Rates: []records.LevelAmount{{Level: "I", Amount: 0}}},
			},
		},
		{
			Name: "La Hora del Campesino",
			Roles: []records.RolePaymentInfo{
				{Role: "Director", Rates: []records.LevelAmount{{Level: "I", Amount: 80}}},
				{Role: "Asesor", Rates: []records.LevelAmount{{Level: "I", Amount: 30}}},
			},
		},
		{
			Name: "La Hora Musical",
			Roles: []records.RolePaymentInfo{
				{Role: "Locutor principal", Rates: []records.LevelAmount{{Level: "I", Amount: 25}}},
				{Role: "Locutor invitado", Rates: []records.LevelAmount{{Level: "I", Amount: 15}}},
			},
		},
	})
}

func TestRateUnknownProgramIsZero(t *testing.T) {
	c := testCatalog()

	if got := c.Rate("Programa Inexistente", "Director", "I"); got != 0 {
		t.Errorf("Expected 0 for unknown program, got %v", got)
	}
	if got := New(nil).Rate("Sembrando Valores", "Locutor", "III"); got != 0 {
		t.Errorf("Expected 0 for empty catalog, got %v", got)
	}
}

func TestRateDirectorAddsMusicProduction(t *testing.T) {
	c := testCatalog()

	if got := c.Rate("Sembrando Valores", "Director", "I"); got != 150 {
		t.Errorf("Expected combined director rate 150, got %v", got)
	}
	if got := c.Rate("Sembrando Valores", "Director", "II"); got != 90 {
		t.Errorf("Expected 90 when music production is not priced at level II, got %v", got)
	}
	if got := c.Rate("La Hora del Campesino", "Director", "I"); got != 80 {
		t.Errorf("Expected 80 for program without music production, got %v", got)
	}
}

func TestRateMatching(t *testing.T) {
	c := testCatalog()

	tests := []struct {
		name    string
		program string
		role    string
		level   string
		want    float64
	}{
		{"normalized program", "sembrando valores", "Realizador", "I", 40},
		{"program containment", "Sembrando", "Realizador", "I", 40},
		{"sound classification alias", "Sembrando Valores", "Realizador de sonido", "I", 40},
		{"accent-insensitive role", "Sembrando Valores", "produccion musical", "I", 50},
		{"exact program beats containment", "La Hora del Campesino", "Asesor", "I", 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Rate(tt.program, tt.role, tt.level); got != tt.want {
				t.Errorf("Rate(%q, %q, %q) = %v, want %v", tt.program, tt.role, tt.level, got, tt.want)
			}
		})
	}
}

func TestLookupErrors(t *testing.T) {
	c := testCatalog()

	tests := []struct {
		name    string
		program string
		role    string
		level   string
		wantErr error
	}{
		{"unknown program", "Noticiero", "Director", "I", ErrProgramNotFound},
		{"unknown role", "Sembrando Valores", "Asesor", "I", ErrRoleNotFound},
		{"level not priced", "Sembrando Valores", "Realizador", "III", ErrLevelNotPriced},
		{"ambiguous program", "La Hora", "Director", "I", ErrAmbiguous},
		{"ambiguous role", "La Hora Musical", "Locutor", "I", ErrAmbiguous},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Lookup(tt.program, tt.role, tt.level)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Lookup(%q, %q, %q) error = %v, want %v", tt.program, tt.role, tt.level, err, tt.wantErr)
			}
		})
	}
}

func TestLookupDistinguishesFreeRole(t *testing.T) {
	c := testCatalog()

	rate, err := c.Lookup("Sembrando Valores", "Locutor", "I")
	if err != nil {
		t.Fatalf("Expected priced free role, got error %v", err)
	}
	if rate != 0 {
		t.Errorf("Expected 0, got %v", rate)
	}
}

func TestSalary(t *testing.T) {
	c := testCatalog()

	salary, err := c.Salary("Sembrando Valores", "Director", "I")
	if err != nil {
		t.Fatal(err)
	}
	if salary != 3500 {
		t.Errorf("Expected salary 3500, got %v", salary)
	}

	if _, err := c.Salary("Sembrando Valores", "Realizador", "I"); !errors.Is(err, ErrLevelNotPriced) {
		t.Errorf("Expected ErrLevelNotPriced, got %v", err)
	}
}

func TestServiceImport(t *testing.T) {
	s := NewService(store.NewMemoryStore())

	raw := "Programa: Sembrando Valores\nDirector\nTasas por niveles\nI: 100\nProducción Musical\nTasas por niveles\nI: 50"
	result, err := s.Import(raw)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Records) != 1 {
		t.Fatalf("Expected 1 program, got %d", len(result.Records))
	}

	c, err := s.Current()
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Rate("Sembrando Valores", "Director", "I"); got != 150 {
		t.Errorf("Expected 150 from stored catalog, got %v", got)
	}

	if _, err := s.Import("   "); err == nil {
		t.Error("Expected error for empty import")
	}
	c, _ = s.Current()
	if len(c.Programs()) != 1 {
		t.Errorf("Failed import should leave the catalog untouched, got %d programs", len(c.Programs()))
	}
}
