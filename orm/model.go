package orm

import (
	"reflect"
)

// Model is the interface implemented by all models through embedding the
// Base type.
type Model interface {
	// GetBase returns the models base.
	GetBase() *Base

	// ID returns the primary id.
	ID() string
}

// Base is the base for every model. The embedding field carries a tag of the
// form orm:"table-name" that names the backing table.
type Base struct {
	DocID string `json:"id"`
}

// B is a short-hand to construct a base with the provided id.
func B(id string) Base {
	return Base{
		DocID: id,
	}
}

// ID implements the Model interface.
func (b *Base) ID() string {
	return b.DocID
}

// GetBase implements the Model interface.
func (b *Base) GetBase() *Base {
	return b
}

// Get will look up the specified field on the model and return its value and
// whether the field was found at all.
func Get(model Model, name string) (interface{}, bool) {
	return accessorGet(model, name)
}

// GetRaw will look up the specified field on the model and return its raw
// value and whether the field was found at all.
func GetRaw(model Model, name string) (reflect.Value, bool) {
	return accessorGetRaw(model, name)
}

// Set will set the specified field on the model with the provided value and
// return whether the field has been found and the value has been set.
func Set(model Model, name string, value interface{}) bool {
	return accessorSet(model, name, value)
}

// MustGet will call Get and panic if the operation failed.
func MustGet(model Model, name string) interface{} {
	value, ok := Get(model, name)
	if !ok {
		panic(`orm: field "` + name + `" not found on "` + GetMeta(model).Name + `"`)
	}

	return value
}

// MustSet will call Set and panic if the operation failed.
func MustSet(model Model, name string, value interface{}) {
	ok := Set(model, name, value)
	if !ok {
		panic(`orm: could not set field "` + name + `" on "` + GetMeta(model).Name + `"`)
	}
}
