package sqlite

import (
	"github.com/evansagge/shoulda/orm"
)

// A Tester provides facilities to test models against a store.
type Tester struct {
	// The store to use for migrations and cleaning.
	Store *Store

	// The registered models.
	Models []orm.Model
}

// NewTester returns a new tester.
func NewTester(store *Store, models ...orm.Model) *Tester {
	return &Tester{
		Store:  store,
		Models: models,
	}
}

// Migrate will execute the provided DDL statements.
func (t *Tester) Migrate(stmts ...string) {
	for _, stmt := range stmts {
		err := t.Store.Exec(stmt)
		if err != nil {
			panic(err)
		}
	}
}

// Clean will remove the rows of all tables of models that have been
// registered.
func (t *Tester) Clean() {
	for _, model := range t.Models {
		// remove all is faster than dropping the table
		err := t.Store.Exec(`DELETE FROM ` + quoteIdent(orm.GetMeta(model).Table))
		if err != nil {
			panic(err)
		}
	}
}

// Save will save the specified model.
func (t *Tester) Save(model orm.Model) orm.Model {
	err := t.Store.Save(model)
	if err != nil {
		panic(err)
	}

	return model
}

// Reload will reload the specified saved model.
func (t *Tester) Reload(model orm.Model) orm.Model {
	err := t.Store.Reload(model)
	if err != nil {
		panic(err)
	}

	return model
}

// Delete will delete the specified model.
func (t *Tester) Delete(model orm.Model) {
	err := t.Store.Delete(model)
	if err != nil {
		panic(err)
	}
}
