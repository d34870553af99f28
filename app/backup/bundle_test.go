package backup

import (
	"encoding/json"
	"testing"

	"github.com/lysyi3m/radio-guiones/app/records"
	"github.com/lysyi3m/radio-guiones/app/store"
)

func seed(t *testing.T, s store.Store) {
	t.Helper()

	sets := map[string]any{
		records.KeyUsers:                []records.User{{Username: "admin", Role: records.RoleAdmin}},
		records.KeyHistoryText:          "Fundada en 1960.",
		records.KeyNews:                 []records.NewsItem{{ID: "n1", Title: "Zafra"}},
		records.ScriptsKey("tertulia"):  []records.Script{{ID: "s1", Title: "Uno"}},
		records.ScriptsKey("sembrando"): []records.Script{{ID: "s2", Title: "Dos"}},
		records.KeyAgendaEfemerides:     map[string]string{"01-28": "Natalicio de Martí"},
	}
	for key, v := range sets {
		if err := s.Set(key, v); err != nil {
			t.Fatal(err)
		}
	}
}

func TestBuild(t *testing.T) {
	s := store.NewMemoryStore()
	seed(t, s)

	b, err := Build(s)
	if err != nil {
		t.Fatal(err)
	}

	if len(b.Users) != 1 || b.HistoryText != "Fundada en 1960." || len(b.News) != 1 {
		t.Errorf("Unexpected bundle: %+v", b)
	}
	if len(b.Scripts) != 2 || b.Scripts[records.ScriptsKey("tertulia")][0].Title != "Uno" {
		t.Errorf("Unexpected scripts: %+v", b.Scripts)
	}
	if _, ok := b.Agenda[records.KeyAgendaEfemerides]; !ok || len(b.Agenda) != 1 {
		t.Errorf("Unexpected agenda: %v", b.Agenda)
	}
}

func TestRestoreOverwritesWholesale(t *testing.T) {
	source := store.NewMemoryStore()
	seed(t, source)
	b, err := Build(source)
	if err != nil {
		t.Fatal(err)
	}

	target := store.NewMemoryStore()
	if err := target.Set(records.ScriptsKey("viejo"), []records.Script{{ID: "x"}}); err != nil {
		t.Fatal(err)
	}
	if err := target.Set(records.KeyAgendaPropaganda, []string{"cuña"}); err != nil {
		t.Fatal(err)
	}
	if err := target.Set(records.KeyNews, []records.NewsItem{{ID: "local"}, {ID: "local2"}}); err != nil {
		t.Fatal(err)
	}

	if err := Restore(target, b); err != nil {
		t.Fatal(err)
	}

	keys, _ := target.Keys(records.KeyScriptsPrefix)
	if len(keys) != 2 {
		t.Errorf("Expected only the bundled collections, got %v", keys)
	}
	if ok, _ := target.Get(records.KeyAgendaPropaganda, new(json.RawMessage)); ok {
		t.Error("Expected agenda data missing from the bundle to be removed")
	}

	news, _ := store.Load[[]records.NewsItem](target, records.KeyNews)
	if len(news) != 1 || news[0].ID != "n1" {
		t.Errorf("Expected news to be replaced, got %+v", news)
	}

	var efemerides map[string]string
	if _, err := target.Get(records.KeyAgendaEfemerides, &efemerides); err != nil {
		t.Fatal(err)
	}
	if efemerides["01-28"] != "Natalicio de Martí" {
		t.Errorf("Unexpected agenda data: %v", efemerides)
	}
}

func TestRestoreIgnoresForeignScriptKeys(t *testing.T) {
	target := store.NewMemoryStore()
	b := &Bundle{Scripts: map[string][]records.Script{"users": {{ID: "x"}}}}

	if err := Restore(target, b); err != nil {
		t.Fatal(err)
	}

	users, _ := store.Load[[]records.User](target, records.KeyUsers)
	if len(users) != 0 {
		t.Errorf("Script entries must not overwrite other datasets, got %+v", users)
	}
}
