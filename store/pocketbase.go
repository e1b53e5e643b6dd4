package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"

	"budgettool/budget"
)

// CollectionName is the PocketBase collection holding budgets.
const CollectionName = "budgets"

// PocketBase stores budgets as records of the budgets collection. The
// collection must already exist (see collections.Setup).
type PocketBase struct {
	app core.App
}

// NewPocketBase returns a gateway backed by app.
func NewPocketBase(app core.App) *PocketBase {
	return &PocketBase{app: app}
}

func (g *PocketBase) Create(doc budget.Document, actorID string) (string, error) {
	if actorID == "" {
		return "", ErrMissingActor
	}

	col, err := g.app.FindCollectionByNameOrId(CollectionName)
	if err != nil {
		return "", fmt.Errorf("find %s collection: %w", CollectionName, err)
	}

	record := core.NewRecord(col)
	if err := fillRecord(record, doc, actorID); err != nil {
		return "", err
	}
	record.Set("created_by", actorID)

	if err := g.app.Save(record); err != nil {
		return "", fmt.Errorf("save budget: %w", err)
	}
	return record.Id, nil
}

func (g *PocketBase) Read(id string) (*StoredBudget, error) {
	record, err := g.find(id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	stored, err := recordToStored(record)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (g *PocketBase) Update(id string, doc budget.Document, actorID string) error {
	if actorID == "" {
		return ErrMissingActor
	}

	record, err := g.find(id)
	if err != nil {
		return err
	}
	if err := fillRecord(record, doc, actorID); err != nil {
		return err
	}

	if err := g.app.Save(record); err != nil {
		return fmt.Errorf("save budget %s: %w", id, err)
	}
	return nil
}

func (g *PocketBase) Delete(id string) error {
	record, err := g.find(id)
	if err != nil {
		return err
	}
	if err := g.app.Delete(record); err != nil {
		return fmt.Errorf("delete budget %s: %w", id, err)
	}
	return nil
}

func (g *PocketBase) List() ([]StoredBudget, error) {
	records, err := g.app.FindAllRecords(CollectionName)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}

	list := make([]StoredBudget, 0, len(records))
	for _, r := range records {
		stored, err := recordToStored(r)
		if err != nil {
			g.app.Logger().Warn("skipping unreadable budget", "budget", r.Id, "error", err)
			continue
		}
		list = append(list, stored)
	}
	sortByDate(list)
	return list, nil
}

func (g *PocketBase) find(id string) (*core.Record, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	record, err := g.app.FindRecordById(CollectionName, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find budget %s: %w", id, err)
	}
	return record, nil
}

// fillRecord writes the normalized document and its denormalized listing
// columns.
func fillRecord(record *core.Record, doc budget.Document, actorID string) error {
	doc, raw, err := encodeDocument(doc)
	if err != nil {
		return err
	}
	record.Set("name", doc.Metadata.Name)
	record.Set("client", doc.Metadata.Client)
	record.Set("date", doc.Metadata.Date)
	record.Set("document", types.JSONRaw(raw))
	record.Set("formula_version", budget.FormulaVersion)
	record.Set("updated_by", actorID)
	return nil
}

func recordToStored(record *core.Record) (StoredBudget, error) {
	var raw any
	if err := record.UnmarshalJSONField("document", &raw); err != nil {
		return StoredBudget{}, fmt.Errorf("read budget %s: %w", record.Id, err)
	}
	doc := budget.NormalizeDocument(raw)

	return StoredBudget{
		ID:             record.Id,
		Document:       doc,
		CreatedBy:      record.GetString("created_by"),
		UpdatedBy:      record.GetString("updated_by"),
		Created:        record.GetDateTime("created").Time(),
		Updated:        record.GetDateTime("updated").Time(),
		FormulaVersion: record.GetString("formula_version"),
	}, nil
}
