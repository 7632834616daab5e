package sqlite

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/evansagge/shoulda/orm"
)

type personModel struct {
	orm.Base `orm:"people"`

	Name    string          `orm:"name"`
	Email   string          `orm:"email"`
	Age     int             `orm:"age,protected"`
	Code    string          `orm:"code,readonly"`
	Balance decimal.Decimal `orm:"balance"`
	Team    orm.BelongsTo   `orm:"team:teams"`
	TeamID  string          `orm:"team_id"`
}

var personDDL = []string{
	`CREATE TABLE people (
		id VARCHAR(36) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255),
		age INTEGER,
		code VARCHAR(16),
		balance DECIMAL(10,2) DEFAULT '0.0',
		team_id VARCHAR(36)
	)`,
	`CREATE UNIQUE INDEX people_email ON people (email)`,
	`CREATE INDEX people_name_age ON people (name, age)`,
}

func withTester(t *testing.T, fn func(*testing.T, *Tester)) {
	store := MustCreateStore(":memory:")
	defer store.Close()

	tester := NewTester(store, &personModel{})
	tester.Migrate(personDDL...)

	fn(t, tester)
}
