package shoulda

import (
	"testing"

	"github.com/evansagge/shoulda/orm"
	"github.com/evansagge/shoulda/sqlite"
)

type ownerModel struct {
	orm.Base `orm:"owners"`

	Name  string      `orm:"name" valid:"required"`
	Email string      `orm:"email"`
	Dogs  orm.HasMany `orm:"dogs:dogs:owner_id"`
}

type dogModel struct {
	orm.Base `orm:"dogs"`

	Name    string        `orm:"name" valid:"required"`
	Age     int           `orm:"age,protected"`
	Code    string        `orm:"code,readonly"`
	OwnerID string        `orm:"owner_id"`
	Owner   orm.BelongsTo `orm:"owner:owners"`
	Friend  orm.BelongsTo `orm:"friend:owners"`
	Toys    orm.HasMany   `orm:"toys:toys:dog_id,dependent:destroy"`
	Collar  orm.HasOne    `orm:"collar:collars:dog_id"`
	Treats  orm.HasMany   `orm:"treats:treats:dog_id,through:toys"`
	Tags    orm.HABTM     `orm:"tags:tags,join:dogs_tags"`
	Packs   orm.HABTM     `orm:"packs:packs,join:dogs_packs"`
}

type commentModel struct {
	orm.Base `orm:"comments"`

	Body            string        `orm:"body"`
	CommentableID   string        `orm:"commentable_id"`
	CommentableType string        `orm:"commentable_type"`
	Commentable     orm.BelongsTo `orm:"commentable:*,polymorphic"`
}

var testDDL = []string{
	`CREATE TABLE owners (
		id VARCHAR(36) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) DEFAULT 'none'
	)`,
	`CREATE UNIQUE INDEX owners_email ON owners (email)`,
	`CREATE TABLE dogs (
		id VARCHAR(36) PRIMARY KEY,
		name VARCHAR(255),
		age INTEGER,
		code VARCHAR(16),
		owner_id VARCHAR(36)
	)`,
	`CREATE INDEX dogs_owner_id ON dogs (owner_id)`,
	`CREATE TABLE toys (
		id VARCHAR(36) PRIMARY KEY,
		name VARCHAR(255),
		dog_id VARCHAR(36)
	)`,
	`CREATE TABLE collars (
		id VARCHAR(36) PRIMARY KEY,
		dog_id VARCHAR(36)
	)`,
	`CREATE TABLE tags (
		id VARCHAR(36) PRIMARY KEY,
		name VARCHAR(255)
	)`,
	`CREATE TABLE dogs_tags (
		dog_id VARCHAR(36),
		tag_id VARCHAR(36)
	)`,
	`CREATE TABLE comments (
		id VARCHAR(36) PRIMARY KEY,
		body TEXT,
		commentable_id VARCHAR(36),
		commentable_type VARCHAR(255)
	)`,
	`CREATE INDEX comments_commentable ON comments (commentable_type, commentable_id)`,
}

// tableSubject provides schema access for a bare table without a model.
type tableSubject struct {
	store *sqlite.Store
	table string
}

func (s tableSubject) Reflect(name string) *orm.Reflection {
	return nil
}

func (s tableSubject) Column(name string) *orm.Column {
	return s.ColumnIn(s.table, name)
}

func (s tableSubject) ColumnIn(table, name string) *orm.Column {
	column, err := s.store.Column(table, name)
	if err != nil {
		return nil
	}
	return column
}

func (s tableSubject) Indexes() []orm.Index {
	indexes, err := s.store.Indexes(s.table)
	if err != nil {
		return nil
	}
	return indexes
}

func withTester(t *testing.T, fn func(t *testing.T, tester *sqlite.Tester)) {
	store := sqlite.MustCreateStore(":memory:")
	defer store.Close()

	tester := sqlite.NewTester(store, &ownerModel{}, &dogModel{}, &commentModel{})
	tester.Migrate(testDDL...)

	fn(t, tester)
}
