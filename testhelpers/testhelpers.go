// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"

	"budgettool/budget"
	"budgettool/collections"
	"budgettool/store"
)

// TestActor is the actor id used by fixtures.
const TestActor = "tester"

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestBudget stores doc through the PocketBase gateway and returns its id.
func CreateTestBudget(t *testing.T, app *pocketbase.PocketBase, doc budget.Document) string {
	t.Helper()

	id, err := store.NewPocketBase(app).Create(doc, TestActor)
	if err != nil {
		t.Fatalf("failed to save test budget: %v", err)
	}
	return id
}

// CreateRawBudgetRecord stores raw as-is, bypassing normalization, the way
// documents written by older releases sit in the database.
func CreateRawBudgetRecord(t *testing.T, app *pocketbase.PocketBase, raw map[string]any) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId(store.CollectionName)
	if err != nil {
		t.Fatalf("failed to find budgets collection: %v", err)
	}
	b, err := json.Marshal(raw)
	if err != nil {
		t.Fatalf("failed to encode raw document: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("document", types.JSONRaw(b))
	record.Set("created_by", TestActor)
	record.Set("updated_by", TestActor)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save raw budget: %v", err)
	}
	return record
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
