// Package sqlite provides the schema oracle and the minimal persistence used
// to evaluate matchers against a live SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/256dpi/xo"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/evansagge/shoulda/orm"
)

// MustCreateStore will open the passed database and return a new store. It
// will panic if the initial connection failed.
func MustCreateStore(path string) *Store {
	store, err := CreateStore(path)
	if err != nil {
		panic(err)
	}

	return store
}

// CreateStore will open the specified database and return a new store. The
// special path ":memory:" yields an in-memory database.
func CreateStore(path string) (*Store, error) {
	// open database
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, xo.W(err)
	}

	// verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err = db.PingContext(ctx)
	if err != nil {
		_ = db.Close()
		return nil, xo.W(err)
	}

	return &Store{db: db}, nil
}

// A Store manages the usage of a database handle.
type Store struct {
	db *sql.DB
}

// DB returns the database handle used by this store.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Exec executes the provided statement.
func (s *Store) Exec(stmt string, args ...interface{}) error {
	_, err := s.db.Exec(stmt, args...)
	if err != nil {
		return xo.W(err)
	}

	return nil
}

// Close will close the store and its database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Columns returns the columns of the specified table in declaration order.
// A missing table yields an empty list.
func (s *Store) Columns(table string) ([]orm.Column, error) {
	// query table info
	rows, err := s.db.Query(`PRAGMA table_info(` + quoteIdent(table) + `)`)
	if err != nil {
		return nil, xo.W(err)
	}
	defer rows.Close()

	// collect columns
	var list []orm.Column
	for rows.Next() {
		var cid, notNull, pk int
		var name, declType string
		var dflt sql.NullString
		err = rows.Scan(&cid, &name, &declType, &notNull, &dflt, &pk)
		if err != nil {
			return nil, xo.W(err)
		}
		list = append(list, parseColumn(name, declType, notNull == 0, dflt))
	}
	err = rows.Err()
	if err != nil {
		return nil, xo.W(err)
	}

	return list, nil
}

// Column returns the named column of the specified table or nil if the table
// or column does not exist.
func (s *Store) Column(table, name string) (*orm.Column, error) {
	// get columns
	columns, err := s.Columns(table)
	if err != nil {
		return nil, err
	}

	// find column
	for i, column := range columns {
		if column.Name == name {
			return &columns[i], nil
		}
	}

	return nil, nil
}

// Indexes returns the indexes of the specified table including the implicit
// indexes backing unique constraints.
func (s *Store) Indexes(table string) ([]orm.Index, error) {
	// query index list
	rows, err := s.db.Query(`PRAGMA index_list(` + quoteIdent(table) + `)`)
	if err != nil {
		return nil, xo.W(err)
	}

	// collect names
	type indexInfo struct {
		name   string
		unique bool
	}
	var infos []indexInfo
	for rows.Next() {
		var seq, unique, partial int
		var name, origin string
		err = rows.Scan(&seq, &name, &unique, &origin, &partial)
		if err != nil {
			_ = rows.Close()
			return nil, xo.W(err)
		}
		infos = append(infos, indexInfo{name: name, unique: unique == 1})
	}
	err = rows.Err()
	if err != nil {
		_ = rows.Close()
		return nil, xo.W(err)
	}
	_ = rows.Close()

	// resolve columns
	var list []orm.Index
	for _, info := range infos {
		columns, err := s.indexColumns(info.name)
		if err != nil {
			return nil, err
		}
		list = append(list, orm.Index{
			Columns: columns,
			Unique:  info.unique,
		})
	}

	return list, nil
}

func (s *Store) indexColumns(index string) ([]string, error) {
	// query index info
	rows, err := s.db.Query(`PRAGMA index_info(` + quoteIdent(index) + `)`)
	if err != nil {
		return nil, xo.W(err)
	}
	defer rows.Close()

	// collect columns in key order
	var columns []string
	for rows.Next() {
		var seqNo, cid int
		var name sql.NullString
		err = rows.Scan(&seqNo, &cid, &name)
		if err != nil {
			return nil, xo.W(err)
		}
		columns = append(columns, name.String)
	}
	err = rows.Err()
	if err != nil {
		return nil, xo.W(err)
	}

	return columns, nil
}

// Save will insert the provided model or update an already persisted model.
// On insert a missing id is generated and read-only attributes are written
// once; on update they are left untouched.
func (s *Store) Save(model orm.Model) error {
	// get meta and base
	meta := orm.GetMeta(model)
	base := model.GetBase()

	// insert new models
	if base.DocID == "" {
		base.DocID = uuid.NewString()

		// collect columns and values
		columns := []string{"id"}
		values := []interface{}{base.DocID}
		for _, field := range meta.Fields {
			value, _ := orm.Get(model, field.Name)
			columns = append(columns, field.Column)
			values = append(values, value)
		}

		// build statement
		marks := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
		stmt := `INSERT INTO ` + quoteIdent(meta.Table) + ` (` + joinIdents(columns) + `) VALUES (` + marks + `)`

		return s.Exec(stmt, values...)
	}

	// collect assignments, skipping read-only attributes
	var sets []string
	var values []interface{}
	for _, field := range meta.Fields {
		if field.Readonly {
			continue
		}
		value, _ := orm.Get(model, field.Name)
		sets = append(sets, quoteIdent(field.Column)+` = ?`)
		values = append(values, value)
	}
	values = append(values, base.DocID)

	// build statement
	stmt := `UPDATE ` + quoteIdent(meta.Table) + ` SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`

	return s.Exec(stmt, values...)
}

// Reload will reload the attributes of the provided persisted model.
func (s *Store) Reload(model orm.Model) error {
	// get meta and base
	meta := orm.GetMeta(model)
	base := model.GetBase()

	// check id
	if base.DocID == "" {
		return xo.F("cannot reload a model without id")
	}

	// collect columns and destinations
	columns := make([]string, 0, len(meta.Fields))
	dests := make([]interface{}, 0, len(meta.Fields))
	for _, field := range meta.Fields {
		raw, ok := orm.GetRaw(model, field.Name)
		if !ok {
			return xo.F("missing field %q on %q", field.Name, meta.Name)
		}
		columns = append(columns, field.Column)
		dests = append(dests, raw.Addr().Interface())
	}

	// query row
	stmt := `SELECT ` + joinIdents(columns) + ` FROM ` + quoteIdent(meta.Table) + ` WHERE id = ?`
	err := s.db.QueryRow(stmt, base.DocID).Scan(dests...)
	if err != nil {
		return xo.W(err)
	}

	return nil
}

// Delete will delete the provided persisted model.
func (s *Store) Delete(model orm.Model) error {
	// get meta
	meta := orm.GetMeta(model)

	return s.Exec(`DELETE FROM `+quoteIdent(meta.Table)+` WHERE id = ?`, model.ID())
}

func parseColumn(name, declType string, nullable bool, dflt sql.NullString) orm.Column {
	// prepare column
	column := orm.Column{
		Name:     name,
		SQLType:  declType,
		Nullable: nullable,
	}

	// capture default, stripping text quoting
	if dflt.Valid {
		value := strings.Trim(dflt.String, "'")
		column.Default = &value
	}

	// split base type and arguments
	upper := strings.ToUpper(declType)
	base := upper
	var args []int
	if i := strings.IndexByte(upper, '('); i >= 0 && strings.HasSuffix(upper, ")") {
		base = strings.TrimSpace(upper[:i])
		for _, part := range strings.Split(upper[i+1:len(upper)-1], ",") {
			num, err := strconv.Atoi(strings.TrimSpace(part))
			if err == nil {
				args = append(args, num)
			}
		}
	}

	// classify type
	switch {
	case base == "VARCHAR" || base == "CHARACTER" || base == "NVARCHAR" || base == "CHAR":
		column.Type = "string"
		if len(args) > 0 {
			column.Limit = args[0]
		}
	case strings.Contains(base, "INT"):
		column.Type = "integer"
	case base == "DECIMAL" || base == "NUMERIC":
		column.Type = "decimal"
		if len(args) > 0 {
			column.Precision = args[0]
		}
		if len(args) > 1 {
			column.Scale = args[1]
		}
	case base == "FLOAT" || base == "REAL" || base == "DOUBLE":
		column.Type = "float"
	case strings.Contains(base, "BOOL"):
		column.Type = "boolean"
	case base == "DATETIME" || base == "TIMESTAMP":
		column.Type = "datetime"
	case base == "DATE":
		column.Type = "date"
	case base == "TEXT" || base == "CLOB":
		column.Type = "text"
	case base == "BLOB":
		column.Type = "binary"
	default:
		column.Type = strings.ToLower(base)
	}

	return column
}

func quoteIdent(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

func joinIdents(idents []string) string {
	quoted := make([]string, 0, len(idents))
	for _, ident := range idents {
		quoted = append(quoted, quoteIdent(ident))
	}

	return strings.Join(quoted, ", ")
}
