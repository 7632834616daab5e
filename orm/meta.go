package orm

import (
	"reflect"
	"strings"
	"sync"

	"github.com/256dpi/xo"
)

var metaMutex sync.Mutex
var metaCache = map[reflect.Type]*Meta{}

var baseType = reflect.TypeOf(Base{})
var belongsToType = reflect.TypeOf(BelongsTo{})
var hasOneType = reflect.TypeOf(HasOne{})
var hasManyType = reflect.TypeOf(HasMany{})
var habtmType = reflect.TypeOf(HABTM{})

// The BelongsTo type denotes a belongs-to association in a model declaration.
// The tag has the form orm:"name:target" where target is the table of the
// associated models, or orm:"name:*,polymorphic" for polymorphic associations.
type BelongsTo struct{}

// The HasOne type denotes a has-one association in a model declaration. The
// tag has the form orm:"name:target:foreign-key" and accepts the modifiers
// "through:name" and "dependent:mode".
type HasOne struct{}

// The HasMany type denotes a has-many association in a model declaration. The
// tag follows the same form as HasOne.
type HasMany struct{}

// The HABTM type denotes a has-and-belongs-to-many association in a model
// declaration. The tag has the form orm:"name:target,join:join-table". The
// join table is expected to carry foreign keys named after the singularized
// table names of both sides.
type HABTM struct{}

// A Field contains the meta information about a single attribute of a model.
type Field struct {
	Name      string
	Type      reflect.Type
	Kind      reflect.Kind
	Column    string
	Optional  bool
	Protected bool
	Readonly  bool

	index int
}

// Meta stores the extracted meta data of a model.
type Meta struct {
	Type        reflect.Type
	Name        string
	Table       string
	Fields      []Field
	Reflections []Reflection

	scopes map[string]ScopeFunc
	model  Model
}

// GetMeta returns the Meta structure for the passed Model.
//
// Note: This function panics if the passed Model has invalid fields or tags.
func GetMeta(model Model) *Meta {
	// get type
	modelType := structType(model)

	// acquire mutex
	metaMutex.Lock()
	defer metaMutex.Unlock()

	// check if meta has already been cached
	meta, ok := metaCache[modelType]
	if ok {
		return meta
	}

	// create new meta
	meta = &Meta{
		Type:   modelType,
		Name:   modelType.String(),
		scopes: map[string]ScopeFunc{},
		model:  model,
	}

	// iterate through all fields
	for i := 0; i < modelType.NumField(); i++ {
		field := modelType.Field(i)

		// get orm tag
		ormTag := field.Tag.Get("orm")

		// check if field is the base
		if field.Type == baseType {
			// check tag
			if ormTag == "" || strings.ContainsAny(ormTag, ",:") {
				panic(`orm: expected to find a tag of the form orm:"table-name" on Base`)
			}

			// set table
			meta.Table = ormTag

			continue
		}

		// handle association markers
		switch field.Type {
		case belongsToType:
			meta.Reflections = append(meta.Reflections, parseBelongsTo(field.Name, ormTag))
			continue
		case hasOneType:
			meta.Reflections = append(meta.Reflections, parseHasOneOrMany(HasOneKind, field.Name, ormTag))
			continue
		case hasManyType:
			meta.Reflections = append(meta.Reflections, parseHasOneOrMany(HasManyKind, field.Name, ormTag))
			continue
		case habtmType:
			meta.Reflections = append(meta.Reflections, parseHABTM(field.Name, ormTag, meta.Table))
			continue
		}

		// check for skipped fields
		if ormTag == "-" {
			continue
		}

		// parse individual tags
		ormTags := strings.Split(ormTag, ",")
		if len(ormTag) == 0 {
			ormTags = nil
		}

		// get field kind
		fieldKind := field.Type.Kind()
		if fieldKind == reflect.Ptr {
			fieldKind = field.Type.Elem().Kind()
		}

		// prepare field
		metaField := Field{
			Name:     field.Name,
			Type:     field.Type,
			Kind:     fieldKind,
			Column:   strings.ToLower(field.Name),
			Optional: field.Type.Kind() == reflect.Ptr,
			index:    i,
		}

		// get column name
		if len(ormTags) > 0 && ormTags[0] != "" {
			if strings.Count(ormTags[0], ":") > 0 {
				panic(`orm: expected to find a tag of the form orm:"column-name" on attribute`)
			}
			metaField.Column = ormTags[0]
			ormTags = ormTags[1:]
		}

		// parse access flags
		for _, tag := range ormTags {
			switch tag {
			case "protected":
				metaField.Protected = true
			case "readonly":
				metaField.Readonly = true
			default:
				panic(`orm: unexpected tag "` + tag + `"`)
			}
		}

		// add field
		meta.Fields = append(meta.Fields, metaField)
	}

	// check table
	if meta.Table == "" {
		panic(`orm: expected an embedded "orm.Base" as the first struct field`)
	}

	// cache meta
	metaCache[modelType] = meta

	return meta
}

func parseBelongsTo(fieldName, tag string) Reflection {
	// split modifiers
	parts := strings.Split(tag, ",")

	// check tag
	main := strings.Split(parts[0], ":")
	if len(main) != 2 || main[0] == "" || main[1] == "" {
		panic(`orm: expected to find a tag of the form orm:"name:target" on belongs-to association (` + fieldName + `)`)
	}

	// prepare reflection
	ref := Reflection{
		Name:       main[0],
		Kind:       BelongsToKind,
		Target:     main[1],
		ForeignKey: main[0] + "_id",
	}

	// parse modifiers
	for _, part := range parts[1:] {
		switch {
		case part == "polymorphic":
			ref.Polymorphic = true
		case strings.HasPrefix(part, "dependent:"):
			ref.Dependent = strings.TrimPrefix(part, "dependent:")
		default:
			panic(`orm: unexpected tag "` + part + `" on belongs-to association (` + fieldName + `)`)
		}
	}

	// polymorphic associations have no fixed target
	if ref.Polymorphic {
		ref.Target = ""
	} else if ref.Target == "*" {
		panic(`orm: wildcard target requires the "polymorphic" modifier (` + fieldName + `)`)
	}

	return ref
}

func parseHasOneOrMany(kind Kind, fieldName, tag string) Reflection {
	// split modifiers
	parts := strings.Split(tag, ",")

	// check tag
	main := strings.Split(parts[0], ":")
	if len(main) != 3 || main[0] == "" || main[1] == "" || main[2] == "" {
		panic(`orm: expected to find a tag of the form orm:"name:target:foreign-key" on ` + string(kind) + ` association (` + fieldName + `)`)
	}

	// prepare reflection
	ref := Reflection{
		Name:       main[0],
		Kind:       kind,
		Target:     main[1],
		ForeignKey: main[2],
	}

	// parse modifiers
	for _, part := range parts[1:] {
		switch {
		case strings.HasPrefix(part, "through:"):
			ref.Through = strings.TrimPrefix(part, "through:")
		case strings.HasPrefix(part, "dependent:"):
			ref.Dependent = strings.TrimPrefix(part, "dependent:")
		default:
			panic(`orm: unexpected tag "` + part + `" on ` + string(kind) + ` association (` + fieldName + `)`)
		}
	}

	return ref
}

func parseHABTM(fieldName, tag, table string) Reflection {
	// split modifiers
	parts := strings.Split(tag, ",")

	// check tag
	main := strings.Split(parts[0], ":")
	if len(main) != 2 || main[0] == "" || main[1] == "" {
		panic(`orm: expected to find a tag of the form orm:"name:target" on has-and-belongs-to-many association (` + fieldName + `)`)
	}

	// prepare reflection
	ref := Reflection{
		Name:       main[0],
		Kind:       HABTMKind,
		Target:     main[1],
		ForeignKey: singularize(table) + "_id",
		TargetKey:  singularize(main[1]) + "_id",
	}

	// parse modifiers
	var join bool
	for _, part := range parts[1:] {
		switch {
		case strings.HasPrefix(part, "join:"):
			ref.JoinTable = strings.TrimPrefix(part, "join:")
			join = true
		default:
			panic(`orm: unexpected tag "` + part + `" on has-and-belongs-to-many association (` + fieldName + `)`)
		}
	}

	// check join table
	if !join || ref.JoinTable == "" {
		panic(`orm: missing "join:join-table" modifier on has-and-belongs-to-many association (` + fieldName + `)`)
	}

	return ref
}

// singularize implements the naive plural naming convention used for tables.
func singularize(table string) string {
	return strings.TrimSuffix(table, "s")
}

// Reflect returns the reflection of the named association. It returns nil if
// no association with that name has been declared.
func (m *Meta) Reflect(name string) *Reflection {
	for i, ref := range m.Reflections {
		if ref.Name == name {
			return &m.Reflections[i]
		}
	}

	return nil
}

// FindField returns the first field that has a matching Name. FindField will
// return nil if no field has been found.
func (m *Meta) FindField(name string) *Field {
	for i, field := range m.Fields {
		if field.Name == name {
			return &m.Fields[i]
		}
	}

	return nil
}

// MustFindField returns the first field that has a matching Name.
// MustFindField will panic if no field has been found.
func (m *Meta) MustFindField(name string) *Field {
	field := m.FindField(name)
	if field == nil {
		panic(`orm: field "` + name + `" not found on "` + m.Name + `"`)
	}

	return field
}

// Make returns a pointer to a new zero initialized model e.g. *Dog.
func (m *Meta) Make() Model {
	return reflect.New(m.Type).Interface().(Model)
}

// Assign writes the provided attributes to the model through the mass
// assignment pathway. Protected attributes are skipped silently while unknown
// attributes and type mismatches yield an error.
func Assign(model Model, attrs map[string]interface{}) error {
	// get meta
	meta := GetMeta(model)

	// assign attributes
	for name, value := range attrs {
		// find field
		field := meta.FindField(name)
		if field == nil {
			return xo.F("unknown attribute %q on %q", name, meta.Name)
		}

		// skip protected attributes
		if field.Protected {
			continue
		}

		// set value
		if !accessorSet(model, name, value) {
			return xo.F("unable to assign attribute %q on %q", name, meta.Name)
		}
	}

	return nil
}

// AddScope registers a named scope with the models meta. It panics if a scope
// with the same name has already been registered.
func AddScope(model Model, name string, fn ScopeFunc) {
	// get meta
	meta := GetMeta(model)

	// acquire mutex
	metaMutex.Lock()
	defer metaMutex.Unlock()

	// check scope
	if meta.scopes[name] != nil {
		panic(`orm: scope "` + name + `" already registered on "` + meta.Name + `"`)
	}

	// add scope
	meta.scopes[name] = fn
}

// Scope returns the registered scope callable with the provided name.
func (m *Meta) Scope(name string) (ScopeFunc, bool) {
	// acquire mutex
	metaMutex.Lock()
	defer metaMutex.Unlock()

	// find scope
	fn, ok := m.scopes[name]

	return fn, ok
}
