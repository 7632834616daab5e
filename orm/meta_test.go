package orm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetMeta(t *testing.T) {
	meta := GetMeta(&dogModel{})
	assert.Equal(t, "orm.dogModel", meta.Name)
	assert.Equal(t, "dogs", meta.Table)

	assert.Len(t, meta.Fields, 4)
	assert.Equal(t, "name", meta.MustFindField("Name").Column)
	assert.False(t, meta.MustFindField("Name").Protected)
	assert.Equal(t, "age", meta.MustFindField("Age").Column)
	assert.True(t, meta.MustFindField("Age").Protected)
	assert.True(t, meta.MustFindField("Code").Readonly)
	assert.Equal(t, "owner_id", meta.MustFindField("OwnerID").Column)

	// meta is cached
	assert.True(t, meta == GetMeta(&dogModel{}))
}

func TestGetMetaReflections(t *testing.T) {
	meta := GetMeta(&dogModel{})
	assert.Len(t, meta.Reflections, 5)

	owner := meta.Reflect("owner")
	assert.NotNil(t, owner)
	assert.Equal(t, BelongsToKind, owner.Kind)
	assert.Equal(t, "owners", owner.Target)
	assert.Equal(t, "owner_id", owner.ForeignKey)
	assert.False(t, owner.Polymorphic)

	toys := meta.Reflect("toys")
	assert.NotNil(t, toys)
	assert.Equal(t, HasManyKind, toys.Kind)
	assert.Equal(t, "toys", toys.Target)
	assert.Equal(t, "dog_id", toys.ForeignKey)
	assert.Equal(t, "destroy", toys.Dependent)

	collar := meta.Reflect("collar")
	assert.NotNil(t, collar)
	assert.Equal(t, HasOneKind, collar.Kind)

	treats := meta.Reflect("treats")
	assert.NotNil(t, treats)
	assert.Equal(t, "toys", treats.Through)

	tags := meta.Reflect("tags")
	assert.NotNil(t, tags)
	assert.Equal(t, HABTMKind, tags.Kind)
	assert.Equal(t, "dogs_tags", tags.JoinTable)
	assert.Equal(t, "dog_id", tags.ForeignKey)
	assert.Equal(t, "tag_id", tags.TargetKey)

	assert.Nil(t, meta.Reflect("cats"))
}

func TestGetMetaPolymorphic(t *testing.T) {
	meta := GetMeta(&noteModel{})

	notable := meta.Reflect("notable")
	assert.NotNil(t, notable)
	assert.True(t, notable.Polymorphic)
	assert.Equal(t, "", notable.Target)
	assert.Equal(t, "notable_id", notable.ForeignKey)
}

func TestGetMetaPanics(t *testing.T) {
	type missingBaseTag struct {
		Base
		Name string `orm:"name"`
	}
	assert.PanicsWithValue(t, `orm: expected to find a tag of the form orm:"table-name" on Base`, func() {
		GetMeta(&missingBaseTag{})
	})

	type badAttributeTag struct {
		Base `orm:"bads"`
		Name string `orm:"name,indexed"`
	}
	assert.PanicsWithValue(t, `orm: unexpected tag "indexed"`, func() {
		GetMeta(&badAttributeTag{})
	})

	type missingJoin struct {
		Base `orm:"bads2"`
		Tags HABTM `orm:"tags:tags"`
	}
	assert.Panics(t, func() {
		GetMeta(&missingJoin{})
	})

	type wildTarget struct {
		Base  `orm:"bads3"`
		Thing BelongsTo `orm:"thing:*"`
	}
	assert.Panics(t, func() {
		GetMeta(&wildTarget{})
	})
}

func TestMetaMake(t *testing.T) {
	meta := GetMeta(&dogModel{})

	model := meta.Make()
	assert.IsType(t, &dogModel{}, model)
	assert.Equal(t, "", model.ID())
}

func TestAssign(t *testing.T) {
	dog := &dogModel{Name: "Rex", Age: 3}

	// unprotected attributes are assigned
	err := Assign(dog, map[string]interface{}{"Name": "Fido"})
	assert.NoError(t, err)
	assert.Equal(t, "Fido", dog.Name)

	// protected attributes are skipped silently
	err = Assign(dog, map[string]interface{}{"Age": 7})
	assert.NoError(t, err)
	assert.Equal(t, 3, dog.Age)

	// unknown attributes yield an error
	err = Assign(dog, map[string]interface{}{"Color": "brown"})
	assert.Error(t, err)

	// type mismatches yield an error
	err = Assign(dog, map[string]interface{}{"Name": 42})
	assert.Error(t, err)
}

func TestScopes(t *testing.T) {
	AddScope(&ownerModel{}, "by_name", func(args ...interface{}) Query {
		return Query{
			Filter: map[string]interface{}{"name": args[0]},
			Sort:   []string{"name"},
		}
	})

	fn, ok := GetMeta(&ownerModel{}).Scope("by_name")
	assert.True(t, ok)
	assert.Equal(t, Query{
		Filter: map[string]interface{}{"name": "Anne"},
		Sort:   []string{"name"},
	}, fn("Anne"))

	_, ok = GetMeta(&ownerModel{}).Scope("missing")
	assert.False(t, ok)

	assert.Panics(t, func() {
		AddScope(&ownerModel{}, "by_name", func(args ...interface{}) Query {
			return Query{}
		})
	})
}
