package domain

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidAssignment = errors.New("invalid zone assignment")

// Assignment moves a waiter to a zone, or out of every zone when Zone is nil.
type Assignment struct {
	WaiterID int64 `json:"waiter_id" validate:"required,gt=0"`
	Zone     *int  `json:"zone" validate:"omitnil,gt=0"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the payload shape and that the target zone exists.
func (a Assignment) Validate() error {
	if err := validate.Struct(a); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return fmt.Errorf("%w: %s failed on %s", ErrInvalidAssignment, fieldErrs[0].Field(), fieldErrs[0].Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidAssignment, err)
	}
	if a.Zone != nil {
		if _, ok := ZoneByID(*a.Zone); !ok {
			return fmt.Errorf("%w: %d", ErrUnknownZone, *a.Zone)
		}
	}
	return nil
}
