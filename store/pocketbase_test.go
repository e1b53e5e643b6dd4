package store_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"budgettool/budget"
	"budgettool/store"
	"budgettool/testhelpers"
)

func sampleDocument(name, date string) budget.Document {
	return budget.NormalizeDocument(map[string]any{
		"metadata":     map[string]any{"name": name, "client": "ACME", "date": date, "discountPercent": 5},
		"parameters":   map[string]any{"tax": 0.07},
		"oneOffValues": []any{map[string]any{"description": "Diária", "unitValue": 100, "people": 2, "days": 3}},
	})
}

func TestPocketBase_CreateRead(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	g := store.NewPocketBase(app)

	doc := sampleDocument("Fauna", "2025-01-10")
	id, err := g.Create(doc, "alice")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if id == "" {
		t.Fatal("Create() returned empty id")
	}

	got, err := g.Read(id)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got == nil {
		t.Fatal("Read() returned nil")
	}
	if diff := cmp.Diff(doc, got.Document); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
	if got.CreatedBy != "alice" || got.UpdatedBy != "alice" {
		t.Errorf("actors = %q/%q, want alice/alice", got.CreatedBy, got.UpdatedBy)
	}
	if got.FormulaVersion != budget.FormulaVersion {
		t.Errorf("FormulaVersion = %q, want %q", got.FormulaVersion, budget.FormulaVersion)
	}
	if got.Created.IsZero() || got.Updated.IsZero() {
		t.Error("expected timestamps to be set")
	}

	record, err := app.FindRecordById(store.CollectionName, id)
	if err != nil {
		t.Fatalf("FindRecordById() error = %v", err)
	}
	if record.GetString("name") != "Fauna" || record.GetString("date") != "2025-01-10" {
		t.Errorf("listing columns = %q/%q", record.GetString("name"), record.GetString("date"))
	}
}

func TestPocketBase_ReadMissing(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	g := store.NewPocketBase(app)

	got, err := g.Read("doesnotexist123")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got != nil {
		t.Errorf("Read() = %+v, want nil", got)
	}
}

func TestPocketBase_Update(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	g := store.NewPocketBase(app)

	id, err := g.Create(sampleDocument("Fauna", "2025-01-10"), "alice")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	changed := budget.Reduce(sampleDocument("Fauna", "2025-01-10"), budget.UpdateMetadata{Patch: map[string]any{"name": "Flora"}})
	if err := g.Update(id, changed, "bob"); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, _ := g.Read(id)
	if got.Document.Metadata.Name != "Flora" {
		t.Errorf("Name = %q, want Flora", got.Document.Metadata.Name)
	}
	if got.CreatedBy != "alice" || got.UpdatedBy != "bob" {
		t.Errorf("actors = %q/%q, want alice/bob", got.CreatedBy, got.UpdatedBy)
	}

	if err := g.Update("doesnotexist123", changed, "bob"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Update(missing) error = %v, want ErrNotFound", err)
	}
}

func TestPocketBase_MissingActor(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	g := store.NewPocketBase(app)

	if _, err := g.Create(budget.NewDocument(), ""); !errors.Is(err, store.ErrMissingActor) {
		t.Errorf("Create() error = %v, want ErrMissingActor", err)
	}

	id := testhelpers.CreateTestBudget(t, app, budget.NewDocument())
	if err := g.Update(id, budget.NewDocument(), ""); !errors.Is(err, store.ErrMissingActor) {
		t.Errorf("Update() error = %v, want ErrMissingActor", err)
	}
}

func TestPocketBase_Delete(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	g := store.NewPocketBase(app)

	id := testhelpers.CreateTestBudget(t, app, sampleDocument("Fauna", "2025-01-10"))
	if err := g.Delete(id); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if got, _ := g.Read(id); got != nil {
		t.Error("budget still readable after Delete()")
	}
	if err := g.Delete(id); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestPocketBase_ListOrdersByDate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	g := store.NewPocketBase(app)

	older := testhelpers.CreateTestBudget(t, app, sampleDocument("Antigo", "2023-05-01"))
	newer := testhelpers.CreateTestBudget(t, app, sampleDocument("Novo", "2025-02-01"))
	undated := testhelpers.CreateTestBudget(t, app, sampleDocument("Sem data", ""))

	list, err := g.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []string{newer, older, undated}
	if len(list) != len(want) {
		t.Fatalf("List() returned %d budgets, want %d", len(list), len(want))
	}
	for i, id := range want {
		if list[i].ID != id {
			t.Errorf("position %d = %s (%s), want %s", i, list[i].ID, list[i].Document.Metadata.Name, id)
		}
	}
}

func TestPocketBase_NormalizesLegacyOnRead(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	g := store.NewPocketBase(app)

	record := testhelpers.CreateRawBudgetRecord(t, app, map[string]any{
		"metadata":      map[string]any{"nome": "Legado", "data": "2022-08-01"},
		"profissionais": []any{map[string]any{"cargo": "Botânico", "prolabore": 6000, "pessoas": 1, "dias": 30}},
	})

	got, err := g.Read(record.Id)
	if err != nil || got == nil {
		t.Fatalf("Read() = %v, %v", got, err)
	}
	if got.Document.Metadata.Name != "Legado" {
		t.Errorf("Name = %q, want Legado", got.Document.Metadata.Name)
	}
	if len(got.Document.Professionals) != 1 || got.Document.Professionals[0].Subtotal() != 6000 {
		t.Errorf("Professionals = %+v", got.Document.Professionals)
	}
}
