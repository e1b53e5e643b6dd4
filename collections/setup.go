package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// documentMaxSize bounds the stored budget JSON.
const documentMaxSize = 5 << 20

// Setup programmatically creates/ensures the budgets collection exists.
func Setup(app *pocketbase.PocketBase) {
	ensureCollection(app, "budgets", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: false})
		c.Fields.Add(&core.TextField{Name: "client", Required: false})
		c.Fields.Add(&core.TextField{Name: "date", Required: false})
		c.Fields.Add(&core.JSONField{Name: "document", Required: true, MaxSize: documentMaxSize})
		c.Fields.Add(&core.TextField{Name: "formula_version", Required: false})
		c.Fields.Add(&core.TextField{Name: "created_by", Required: true})
		c.Fields.Add(&core.TextField{Name: "updated_by", Required: true})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		c.AddIndex("idx_budgets_date", false, "date", "")
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("collections: %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("collections: failed to create %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
