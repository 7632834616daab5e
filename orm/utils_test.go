package orm

type ownerModel struct {
	Base `orm:"owners"`

	Name string  `orm:"name" valid:"required"`
	Dogs HasMany `orm:"dogs:dogs:owner_id"`
}

type dogModel struct {
	Base `orm:"dogs"`

	Name    string    `orm:"name" valid:"required"`
	Age     int       `orm:"age,protected"`
	Code    string    `orm:"code,readonly"`
	OwnerID string    `orm:"owner_id"`
	Owner   BelongsTo `orm:"owner:owners"`
	Toys    HasMany   `orm:"toys:toys:dog_id,dependent:destroy"`
	Collar  HasOne    `orm:"collar:collars:dog_id"`
	Treats  HasMany   `orm:"treats:treats:dog_id,through:toys"`
	Tags    HABTM     `orm:"tags:tags,join:dogs_tags"`
}

type noteModel struct {
	Base `orm:"notes"`

	Body    string    `orm:"body"`
	Notable BelongsTo `orm:"notable:*,polymorphic"`
}
