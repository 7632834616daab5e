package orm

import (
	"reflect"
	"sync"
)

// accessField is a dynamically accessible field.
type accessField struct {
	Index int
	Type  reflect.Type
}

// accessor provides dynamic access to a structs fields.
type accessor struct {
	Name   string
	Fields map[string]*accessField
}

var accessMutex sync.Mutex
var accessCache = map[reflect.Type]*accessor{}

func getAccessor(model Model) *accessor {
	// get type
	typ := structType(model)

	// acquire mutex
	accessMutex.Lock()
	defer accessMutex.Unlock()

	// check if accessor has already been cached
	acc, ok := accessCache[typ]
	if ok {
		return acc
	}

	// prepare accessor
	acc = &accessor{
		Name:   typ.String(),
		Fields: map[string]*accessField{},
	}

	// iterate through all fields
	for i := 0; i < typ.NumField(); i++ {
		// get field
		field := typ.Field(i)

		// skip base
		if field.Type == baseType {
			continue
		}

		// add field
		acc.Fields[field.Name] = &accessField{
			Index: i,
			Type:  field.Type,
		}
	}

	// cache accessor
	accessCache[typ] = acc

	return acc
}

func accessorGet(model Model, name string) (interface{}, bool) {
	// find field
	field := getAccessor(model).Fields[name]
	if field == nil {
		return nil, false
	}

	// get value
	value := structValue(model).Field(field.Index).Interface()

	return value, true
}

func accessorGetRaw(model Model, name string) (reflect.Value, bool) {
	// find field
	field := getAccessor(model).Fields[name]
	if field == nil {
		return reflect.Value{}, false
	}

	// get value
	value := structValue(model).Field(field.Index)

	return value, true
}

func accessorSet(model Model, name string, value interface{}) bool {
	// find field
	field := getAccessor(model).Fields[name]
	if field == nil {
		return false
	}

	// get value
	fieldValue := structValue(model).Field(field.Index)

	// get value value
	valueValue := reflect.ValueOf(value)

	// correct untyped nil values
	if value == nil && field.Type.Kind() == reflect.Ptr {
		valueValue = reflect.Zero(field.Type)
	}

	// check type
	if fieldValue.Type() != valueValue.Type() {
		return false
	}

	// set value
	fieldValue.Set(valueValue)

	return true
}

func structType(v interface{}) reflect.Type {
	typ := reflect.TypeOf(v)
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		panic("orm: expected struct")
	}
	return typ
}

func structValue(v interface{}) reflect.Value {
	val := reflect.ValueOf(v)
	for val.Type().Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		panic("orm: expected struct")
	}
	return val
}
