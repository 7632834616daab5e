package orm

import (
	"github.com/asaskevich/govalidator"
)

// Validate validates the provided model using its "valid" struct tags and
// returns the collected validation errors.
func Validate(model Model) error {
	// validate model
	ok, err := govalidator.ValidateStruct(model)
	if !ok {
		return err
	}

	return nil
}
