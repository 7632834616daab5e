// Package orm defines the narrow capability surface the shoulda matchers
// evaluate against: association reflections, schema columns and indexes,
// attribute access and named scopes. A tag driven default implementation is
// provided for plain struct models, while third-party model layers may
// implement the interfaces directly.
package orm

// Kind enumerates the supported association kinds.
type Kind string

// The supported association kinds.
const (
	BelongsToKind Kind = "belongs to"
	HasOneKind    Kind = "has one"
	HasManyKind   Kind = "has many"
	HABTMKind     Kind = "has and belongs to many"
)

// A Reflection describes a declared association of a model.
type Reflection struct {
	// The association name.
	Name string

	// The association kind.
	Kind Kind

	// The table of the associated models.
	Target string

	// The foreign key column. For belongs-to associations the column is
	// expected on the own table, otherwise on the target table.
	ForeignKey string

	// The name of the association traversed by a through association.
	Through string

	// The configured dependent mode.
	Dependent string

	// Whether the association is polymorphic. Polymorphic associations
	// carry a "*_type" column next to the foreign key.
	Polymorphic bool

	// The join table of a has-and-belongs-to-many association.
	JoinTable string

	// The target side foreign key column in the join table.
	TargetKey string
}

// A Column describes a single schema column.
type Column struct {
	Name      string
	Type      string
	SQLType   string
	Limit     int
	Precision int
	Scale     int
	Default   *string
	Nullable  bool
}

// An Index describes a schema index. Columns are ordered.
type Index struct {
	Columns []string
	Unique  bool
}

// A Query captures the finder options produced by a named scope.
type Query struct {
	Filter map[string]interface{}
	Sort   []string
	Limit  int64
	Offset int64
}

// A ScopeFunc builds the query of a named scope.
type ScopeFunc func(args ...interface{}) Query

// Subject provides read access to a model's association metadata and to the
// schema backing it. Lookups return nil respectively an empty list if the
// requested item does not exist.
type Subject interface {
	// Reflect returns the reflection of the named association.
	Reflect(name string) *Reflection

	// Column returns the named column of the model's own table.
	Column(name string) *Column

	// ColumnIn returns the named column of the specified table.
	ColumnIn(table, name string) *Column

	// Indexes returns the indexes of the model's own table.
	Indexes() []Index
}

// Record provides attribute access on a model instance.
type Record interface {
	// Get returns the named attribute and whether it exists.
	Get(name string) (interface{}, bool)

	// Set writes the named attribute directly and returns whether the
	// attribute exists and the value has been set.
	Set(name string, value interface{}) bool

	// Assign writes attributes through the mass assignment pathway.
	// Protected attributes are skipped silently.
	Assign(attrs map[string]interface{}) error
}

// Persister allows persisting and reloading a record.
type Persister interface {
	Save() error
	Reload() error
}

// Scoper resolves named scopes to their callables.
type Scoper interface {
	Scope(name string) (ScopeFunc, bool)
}
