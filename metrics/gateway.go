package metrics

import (
	"budgettool/budget"
	"budgettool/store"
)

// InstrumentGateway wraps g so every call is counted.
func InstrumentGateway(g store.Gateway) store.Gateway {
	return instrumented{next: g}
}

type instrumented struct {
	next store.Gateway
}

func (i instrumented) Create(doc budget.Document, actorID string) (string, error) {
	id, err := i.next.Create(doc, actorID)
	ObserveStore("create", err)
	return id, err
}

func (i instrumented) Read(id string) (*store.StoredBudget, error) {
	b, err := i.next.Read(id)
	ObserveStore("read", err)
	return b, err
}

func (i instrumented) Update(id string, doc budget.Document, actorID string) error {
	err := i.next.Update(id, doc, actorID)
	ObserveStore("update", err)
	return err
}

func (i instrumented) Delete(id string) error {
	err := i.next.Delete(id)
	ObserveStore("delete", err)
	return err
}

func (i instrumented) List() ([]store.StoredBudget, error) {
	list, err := i.next.List()
	ObserveStore("list", err)
	return list, err
}
