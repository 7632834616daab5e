package sqlite

import (
	"github.com/evansagge/shoulda/orm"
)

// interface assertions
var _ orm.Subject = (*Bound)(nil)
var _ orm.Record = (*Bound)(nil)
var _ orm.Persister = (*Bound)(nil)
var _ orm.Scoper = (*Bound)(nil)

// Bound combines a model instance with the store backing its schema and
// implements the full capability surface consumed by the matchers.
type Bound struct {
	model orm.Model
	meta  *orm.Meta
	store *Store
}

// Bind binds the provided model instance to the store.
func Bind(model orm.Model, store *Store) *Bound {
	return &Bound{
		model: model,
		meta:  orm.GetMeta(model),
		store: store,
	}
}

// Model returns the bound model.
func (b *Bound) Model() orm.Model {
	return b.model
}

// Reflect implements the orm.Subject interface.
func (b *Bound) Reflect(name string) *orm.Reflection {
	return b.meta.Reflect(name)
}

// Column implements the orm.Subject interface.
func (b *Bound) Column(name string) *orm.Column {
	return b.ColumnIn(b.meta.Table, name)
}

// ColumnIn implements the orm.Subject interface.
func (b *Bound) ColumnIn(table, name string) *orm.Column {
	column, err := b.store.Column(table, name)
	if err != nil {
		return nil
	}

	return column
}

// Indexes implements the orm.Subject interface.
func (b *Bound) Indexes() []orm.Index {
	indexes, err := b.store.Indexes(b.meta.Table)
	if err != nil {
		return nil
	}

	return indexes
}

// Get implements the orm.Record interface.
func (b *Bound) Get(name string) (interface{}, bool) {
	return orm.Get(b.model, name)
}

// Set implements the orm.Record interface.
func (b *Bound) Set(name string, value interface{}) bool {
	return orm.Set(b.model, name, value)
}

// Assign implements the orm.Record interface.
func (b *Bound) Assign(attrs map[string]interface{}) error {
	return orm.Assign(b.model, attrs)
}

// Save implements the orm.Persister interface.
func (b *Bound) Save() error {
	return b.store.Save(b.model)
}

// Reload implements the orm.Persister interface.
func (b *Bound) Reload() error {
	return b.store.Reload(b.model)
}

// Scope implements the orm.Scoper interface.
func (b *Bound) Scope(name string) (orm.ScopeFunc, bool) {
	return b.meta.Scope(name)
}
