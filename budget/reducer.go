package budget

import "strconv"

// Action is a document edit. The set of actions is closed: only the types
// in this file implement it.
type Action interface {
	isAction()
}

// SetAll replaces the whole document with the normalized form of Raw.
type SetAll struct {
	Raw any
}

// UpdateMetadata shallow-merges Patch into the metadata.
type UpdateMetadata struct {
	Patch map[string]any
}

// UpdateParameters shallow-merges Patch into the parameters. Values are
// expected as fractions already; range checks belong to Validate.
type UpdateParameters struct {
	Patch map[string]any
}

// UpdateItem shallow-merges Patch into the item identified by ID. When no
// item has that id and ID is a list index, the item at that index is used.
type UpdateItem struct {
	Category Category
	ID       string
	Patch    map[string]any
}

// AddItem appends Item to a category under a freshly assigned id.
type AddItem struct {
	Category Category
	Item     any
}

// RemoveItem drops the item identified by ID (or index, as in UpdateItem).
type RemoveItem struct {
	Category Category
	ID       string
}

func (SetAll) isAction()           {}
func (UpdateMetadata) isAction()   {}
func (UpdateParameters) isAction() {}
func (UpdateItem) isAction()       {}
func (AddItem) isAction()          {}
func (RemoveItem) isAction()       {}

// Reduce returns the document that results from applying action to doc.
// doc is never modified and the result shares no slices with it. Actions
// that reference an unknown category, id or index return an unchanged copy.
func Reduce(doc Document, action Action) Document {
	switch a := action.(type) {
	case SetAll:
		return NormalizeDocument(a.Raw)
	case UpdateMetadata:
		next := doc.Clone()
		next.Metadata = normalizeMetadata(merge(asMap(doc.Metadata), metadataAliases.canonicalPatch(a.Patch)))
		return next
	case UpdateParameters:
		next := doc.Clone()
		next.Parameters = normalizeParameters(merge(asMap(doc.Parameters), parametersAliases.canonicalPatch(a.Patch)))
		return next
	case UpdateItem:
		return updateItem(doc, a)
	case AddItem:
		return addItem(doc, a)
	case RemoveItem:
		return removeItem(doc, a)
	}
	return doc.Clone()
}

// ReduceAll applies actions in order.
func ReduceAll(doc Document, actions ...Action) Document {
	next := doc.Clone()
	for _, a := range actions {
		next = Reduce(next, a)
	}
	return next
}

// NextItemID returns the id AddItem would assign in category c.
func NextItemID(doc Document, c Category) string {
	taken := make(map[string]bool)
	for _, id := range doc.ItemIDs(c) {
		taken[id] = true
	}
	return freeID(c.idPrefix(), len(taken)+1, func(s string) bool { return taken[s] })
}

func updateItem(doc Document, a UpdateItem) Document {
	next := doc.Clone()
	if !a.Category.Valid() {
		return next
	}
	raw := doc.rawItems(a.Category)
	idx := findItem(doc.ItemIDs(a.Category), a.ID)
	if idx < 0 {
		return next
	}
	raw[idx] = merge(asMap(raw[idx]), itemAliases[a.Category].canonicalPatch(a.Patch))
	next.setItems(a.Category, raw)
	return next
}

func addItem(doc Document, a AddItem) Document {
	next := doc.Clone()
	if !a.Category.Valid() {
		return next
	}
	item := merge(asMap(a.Item), nil)
	item["id"] = NextItemID(doc, a.Category)
	next.setItems(a.Category, append(doc.rawItems(a.Category), item))
	return next
}

func removeItem(doc Document, a RemoveItem) Document {
	next := doc.Clone()
	if !a.Category.Valid() {
		return next
	}
	raw := doc.rawItems(a.Category)
	idx := findItem(doc.ItemIDs(a.Category), a.ID)
	if idx < 0 {
		return next
	}
	next.setItems(a.Category, append(raw[:idx:idx], raw[idx+1:]...))
	return next
}

// findItem resolves ref against ids, falling back to ref as a list index.
// It returns -1 when neither matches.
func findItem(ids []string, ref string) int {
	for i, id := range ids {
		if id == ref {
			return i
		}
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 0 && n < len(ids) {
		return n
	}
	return -1
}

// merge returns a new map holding base overlaid with patch.
func merge(base, patch map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(patch))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range patch {
		out[k] = v
	}
	return out
}

func (d Document) rawItems(c Category) []any {
	switch c {
	case CategoryCoordination:
		return asList(d.Coordination)
	case CategoryProfessionals:
		return asList(d.Professionals)
	case CategoryOneOffValues:
		return asList(d.OneOffValues)
	case CategoryLogistics:
		return asList(d.Logistics)
	}
	return nil
}

// setItems re-runs the category normalizer over raw and stores the result.
func (d *Document) setItems(c Category, raw []any) {
	switch c {
	case CategoryCoordination:
		d.Coordination = NormalizeCoordination(raw)
	case CategoryProfessionals:
		d.Professionals = NormalizeProfessionals(raw)
	case CategoryOneOffValues:
		d.OneOffValues = NormalizeOneOffValues(raw)
	case CategoryLogistics:
		d.Logistics = NormalizeLogistics(raw)
	}
}
