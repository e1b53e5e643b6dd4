// Package store persists budget documents. Documents are normalized on the
// way in and on the way out, so callers always see the canonical shape.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"budgettool/budget"
)

var (
	// ErrNotFound is returned by Update and Delete for an unknown id.
	ErrNotFound = errors.New("budget not found")
	// ErrMissingActor is returned when a write carries no actor id.
	ErrMissingActor = errors.New("actor id is required")
)

// StoredBudget is a persisted document plus its bookkeeping. The actor ids
// and timestamps are passed through untouched.
type StoredBudget struct {
	ID             string          `json:"id"`
	Document       budget.Document `json:"document"`
	CreatedBy      string          `json:"createdBy"`
	UpdatedBy      string          `json:"updatedBy"`
	Created        time.Time       `json:"created"`
	Updated        time.Time       `json:"updated"`
	FormulaVersion string          `json:"formulaVersion"`
}

// Gateway is the persistence boundary. Read returns (nil, nil) for an
// unknown id. Writes are last-write-wins.
type Gateway interface {
	Create(doc budget.Document, actorID string) (string, error)
	Read(id string) (*StoredBudget, error)
	Update(id string, doc budget.Document, actorID string) error
	Delete(id string) error
	List() ([]StoredBudget, error)
}

// encodeDocument normalizes doc and serializes it for storage.
func encodeDocument(doc budget.Document) (budget.Document, []byte, error) {
	doc = budget.NormalizeDocument(doc)
	b, err := json.Marshal(doc)
	if err != nil {
		return doc, nil, fmt.Errorf("encode document: %w", err)
	}
	return doc, b, nil
}

// decodeDocument parses a stored document, tolerating legacy field names.
func decodeDocument(b []byte) (budget.Document, error) {
	if len(b) == 0 {
		return budget.NewDocument(), nil
	}
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return budget.Document{}, fmt.Errorf("decode document: %w", err)
	}
	return budget.NormalizeDocument(raw), nil
}

// sortByDate orders budgets most recent first; equal dates fall back to id.
func sortByDate(list []StoredBudget) {
	sort.SliceStable(list, func(i, j int) bool {
		di, dj := list[i].Document.Metadata.Date, list[j].Document.Metadata.Date
		if di != dj {
			return di > dj
		}
		return list[i].ID < list[j].ID
	})
}
