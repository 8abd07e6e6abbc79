package carwash

import (
	"context"
	"fmt"
)

// update records a call to memStore.Update
type update struct {
	table string
	id    any
	patch Row
}

// memStore is an in memory RecordStore holding rows in insertion order
type memStore struct {
	tables      map[string][]Row
	updates     []update
	streamErr   error
	updateErr   error
	failAfterN  int // fail updates after this many succeed, if updateErr is set
	streamCalls []string
}

func newMemStore() *memStore {
	return &memStore{tables: map[string][]Row{}}
}

func (m *memStore) insert(table string, rows ...Row) {
	for _, r := range rows {
		m.tables[table] = append(m.tables[table], r.clone())
	}
}

func (m *memStore) find(table string, id any) (Row, bool) {
	for _, r := range m.tables[table] {
		if r.ID() == id {
			return r, true
		}
	}
	return nil, false
}

func (m *memStore) Stream(ctx context.Context, table string) (RowIterator, error) {
	m.streamCalls = append(m.streamCalls, table)
	if m.streamErr != nil {
		return nil, m.streamErr
	}
	return &memIterator{store: m, table: table, pos: -1}, nil
}

func (m *memStore) Update(ctx context.Context, table string, id any, patch Row) error {
	if m.updateErr != nil && len(m.updates) >= m.failAfterN {
		return m.updateErr
	}
	r, ok := m.find(table, id)
	if !ok {
		return fmt.Errorf("%s row %v not found", table, id)
	}
	for k, v := range patch {
		r[k] = v
	}
	m.updates = append(m.updates, update{table: table, id: id, patch: patch.clone()})
	return nil
}

// memIterator yields copies of a table's rows one at a time
type memIterator struct {
	store *memStore
	table string
	pos   int
}

func (it *memIterator) Next(ctx context.Context) bool {
	it.pos++
	return it.pos < len(it.store.tables[it.table])
}

func (it *memIterator) Row() Row {
	return it.store.tables[it.table][it.pos].clone()
}

func (it *memIterator) Err() error   { return nil }
func (it *memIterator) Close() error { return nil }
