package budget

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownAction   = errors.New("unknown action type")
	ErrUnknownCategory = errors.New("unknown category")
)

// Action type tags accepted on the wire.
const (
	ActionSetAll           = "SET_ALL"
	ActionUpdateMetadata   = "UPDATE_METADATA"
	ActionUpdateParameters = "UPDATE_PARAMETERS"
	ActionUpdateItem       = "UPDATE_ITEM"
	ActionAddItem          = "ADD_ITEM"
	ActionRemoveItem       = "REMOVE_ITEM"
)

// legacyCategories maps the list suffixes used by the first editor
// ("UPDATE_COORDENACAO", "ADD_LOGISTICA", ...) to categories.
var legacyCategories = map[string]Category{
	"COORDENACAO":    CategoryCoordination,
	"PROFISSIONAIS":  CategoryProfessionals,
	"VALORES_UNICOS": CategoryOneOffValues,
	"LOGISTICA":      CategoryLogistics,
}

type wireAction struct {
	Type     string         `json:"type"`
	Category Category       `json:"category"`
	ID       any            `json:"id"`
	Patch    map[string]any `json:"patch"`
	Item     any            `json:"item"`
	Document any            `json:"document"`
	Payload  any            `json:"payload"`
}

// DecodeAction parses one JSON action. Besides the canonical shape
//
//	{"type": "UPDATE_ITEM", "category": "logistics", "id": "log-1", "patch": {...}}
//
// it accepts the payload-wrapped actions of the first editor, e.g.
// {"type": "UPDATE_LOGISTICA", "payload": {"id": 0, "updates": {...}}}.
func DecodeAction(data []byte) (Action, error) {
	var w wireAction
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode action: %w", err)
	}
	return w.action()
}

// DecodeActions parses a JSON array of actions.
func DecodeActions(data []byte) ([]Action, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode actions: %w", err)
	}
	actions := make([]Action, 0, len(raw))
	for i, r := range raw {
		a, err := DecodeAction(r)
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		actions = append(actions, a)
	}
	return actions, nil
}

func (w wireAction) action() (Action, error) {
	kind, category := w.kinds()
	payload := asMap(w.Payload)

	switch kind {
	case ActionSetAll:
		doc := w.Document
		if doc == nil {
			doc = w.Payload
		}
		return SetAll{Raw: doc}, nil
	case ActionUpdateMetadata:
		return UpdateMetadata{Patch: w.patchOr(payload)}, nil
	case ActionUpdateParameters:
		return UpdateParameters{Patch: w.patchOr(payload)}, nil
	}

	if !category.Valid() {
		return nil, fmt.Errorf("%w %q", ErrUnknownCategory, category)
	}
	id := w.ID
	if id == nil {
		id = payload["id"]
	}

	switch kind {
	case ActionUpdateItem:
		patch := w.Patch
		if patch == nil {
			patch = asMap(payload["updates"])
		}
		return UpdateItem{Category: category, ID: text(id), Patch: patch}, nil
	case ActionAddItem:
		item := w.Item
		if item == nil {
			item = payload["item"]
		}
		return AddItem{Category: category, Item: item}, nil
	case ActionRemoveItem:
		return RemoveItem{Category: category, ID: text(id)}, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownAction, w.Type)
}

// kinds resolves the canonical action kind and category, translating the
// first editor's tags.
func (w wireAction) kinds() (string, Category) {
	t := strings.ToUpper(strings.TrimSpace(w.Type))
	switch t {
	case "ATUALIZAR_METADATA":
		return ActionUpdateMetadata, w.Category
	case "UPDATE_PARAMETROS":
		return ActionUpdateParameters, w.Category
	}
	for _, verb := range []string{"UPDATE", "ADD", "REMOVE"} {
		suffix, ok := strings.CutPrefix(t, verb+"_")
		if !ok {
			continue
		}
		if c, ok := legacyCategories[suffix]; ok {
			return verb + "_ITEM", c
		}
	}
	return t, w.Category
}

func (w wireAction) patchOr(payload map[string]any) map[string]any {
	if w.Patch != nil {
		return w.Patch
	}
	return payload
}
