package collections

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/tools/types"

	"budgettool/budget"
	"budgettool/store"
)

// MigrateLegacyBudgets rewrites every stored document whose schema version
// is older than the current one into canonical form. Actor and timestamps
// other than updated are left alone. Safe to call on every startup.
func MigrateLegacyBudgets(app *pocketbase.PocketBase) error {
	records, err := app.FindAllRecords(store.CollectionName)
	if err != nil {
		return fmt.Errorf("migrate: could not query budgets: %w", err)
	}

	migrated := 0
	for _, record := range records {
		var raw any
		if err := record.UnmarshalJSONField("document", &raw); err != nil {
			log.Printf("migrate: budget %s has unreadable document: %v\n", record.Id, err)
			continue
		}
		from := budget.RawSchemaVersion(raw)
		if from >= budget.SchemaVersion {
			continue
		}

		doc := budget.NormalizeDocument(raw)
		b, err := json.Marshal(doc)
		if err != nil {
			log.Printf("migrate: budget %s: %v\n", record.Id, err)
			continue
		}

		record.Set("document", types.JSONRaw(b))
		record.Set("name", doc.Metadata.Name)
		record.Set("client", doc.Metadata.Client)
		record.Set("date", doc.Metadata.Date)
		record.Set("formula_version", budget.FormulaVersion)
		if err := app.Save(record); err != nil {
			log.Printf("migrate: failed to save budget %s: %v\n", record.Id, err)
			continue
		}

		log.Printf("migrate: budget %s schema v%d -> v%d\n", record.Id, from, budget.SchemaVersion)
		migrated++
	}

	if migrated > 0 {
		log.Printf("migrate: %d legacy budget(s) rewritten.\n", migrated)
	}
	return nil
}
