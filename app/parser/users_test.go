package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lysyi3m/radio-guiones/app/records"
)

func TestParseUsers(t *testing.T) {
	raw := "Nombre completo: Ana Ruiz, Nombre de usuario: ana, Número de móvil: 555, Contraseña: pw1\r\n" +
		"\n" +
		"línea inválida\n" +
		"Nombre completo: Luis Peña, Nombre de usuario: luis, Numero de movil: , Contrasena: clave, con coma\n"

	result := ParseUsers(raw)

	want := []records.User{
		{Username: "ana", Name: "Ana Ruiz", Mobile: "555", Password: "pw1", Role: records.RoleWorker, Classification: records.ClassUser},
		{Username: "luis", Name: "Luis Peña", Mobile: "", Password: "clave, con coma", Role: records.RoleWorker, Classification: records.ClassUser},
	}
	if diff := cmp.Diff(want, result.Records); diff != "" {
		t.Errorf("ParseUsers mismatch (-want +got):\n%s", diff)
	}
	if result.Skipped != 1 {
		t.Errorf("Expected 1 skipped line, got %d", result.Skipped)
	}
	if result.WithDefaults != 1 {
		t.Errorf("Expected 1 user with defaults, got %d", result.WithDefaults)
	}
}
