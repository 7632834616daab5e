package sqlite

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/evansagge/shoulda/orm"
)

func TestCreateStore(t *testing.T) {
	store, err := CreateStore(":memory:")
	assert.NoError(t, err)
	assert.NotNil(t, store)
	assert.NotNil(t, store.DB())
	assert.NoError(t, store.Close())
}

func TestStoreColumns(t *testing.T) {
	withTester(t, func(t *testing.T, tester *Tester) {
		columns, err := tester.Store.Columns("people")
		assert.NoError(t, err)
		assert.Len(t, columns, 7)

		name, err := tester.Store.Column("people", "name")
		assert.NoError(t, err)
		assert.Equal(t, "string", name.Type)
		assert.Equal(t, "VARCHAR(255)", name.SQLType)
		assert.Equal(t, 255, name.Limit)
		assert.False(t, name.Nullable)
		assert.Nil(t, name.Default)

		email, err := tester.Store.Column("people", "email")
		assert.NoError(t, err)
		assert.True(t, email.Nullable)

		age, err := tester.Store.Column("people", "age")
		assert.NoError(t, err)
		assert.Equal(t, "integer", age.Type)

		balance, err := tester.Store.Column("people", "balance")
		assert.NoError(t, err)
		assert.Equal(t, "decimal", balance.Type)
		assert.Equal(t, 10, balance.Precision)
		assert.Equal(t, 2, balance.Scale)
		assert.NotNil(t, balance.Default)
		assert.Equal(t, "0.0", *balance.Default)

		// missing column
		column, err := tester.Store.Column("people", "missing")
		assert.NoError(t, err)
		assert.Nil(t, column)

		// missing table
		columns, err = tester.Store.Columns("missing")
		assert.NoError(t, err)
		assert.Empty(t, columns)
	})
}

func TestStoreIndexes(t *testing.T) {
	withTester(t, func(t *testing.T, tester *Tester) {
		indexes, err := tester.Store.Indexes("people")
		assert.NoError(t, err)

		assert.Contains(t, indexes, orm.Index{
			Columns: []string{"email"},
			Unique:  true,
		})
		assert.Contains(t, indexes, orm.Index{
			Columns: []string{"name", "age"},
			Unique:  false,
		})
		assert.NotContains(t, indexes, orm.Index{
			Columns: []string{"age", "name"},
			Unique:  false,
		})
	})
}

func TestStoreSaveReloadDelete(t *testing.T) {
	withTester(t, func(t *testing.T, tester *Tester) {
		person := &personModel{
			Name:    "Anne",
			Email:   "anne@example.com",
			Age:     42,
			Code:    "A1",
			Balance: decimal.RequireFromString("9.99"),
		}

		// insert assigns an id
		err := tester.Store.Save(person)
		assert.NoError(t, err)
		assert.NotEmpty(t, person.ID())

		// reload restores attributes
		person.Name = "Bob"
		err = tester.Store.Reload(person)
		assert.NoError(t, err)
		assert.Equal(t, "Anne", person.Name)
		assert.True(t, person.Balance.Equal(decimal.RequireFromString("9.99")))

		// updates persist ordinary attributes
		person.Name = "Bob"
		err = tester.Store.Save(person)
		assert.NoError(t, err)
		err = tester.Store.Reload(person)
		assert.NoError(t, err)
		assert.Equal(t, "Bob", person.Name)

		// updates skip read-only attributes
		person.Code = "B2"
		err = tester.Store.Save(person)
		assert.NoError(t, err)
		err = tester.Store.Reload(person)
		assert.NoError(t, err)
		assert.Equal(t, "A1", person.Code)

		// delete removes the row
		err = tester.Store.Delete(person)
		assert.NoError(t, err)
		err = tester.Store.Reload(person)
		assert.Error(t, err)
	})
}

func TestStoreReloadWithoutID(t *testing.T) {
	withTester(t, func(t *testing.T, tester *Tester) {
		err := tester.Store.Reload(&personModel{})
		assert.Error(t, err)
	})
}

func TestTester(t *testing.T) {
	withTester(t, func(t *testing.T, tester *Tester) {
		person := tester.Save(&personModel{Name: "Anne"}).(*personModel)
		assert.NotEmpty(t, person.ID())

		person.Name = "Changed"
		tester.Reload(person)
		assert.Equal(t, "Anne", person.Name)

		tester.Clean()
		assert.Panics(t, func() {
			tester.Reload(person)
		})
	})
}
