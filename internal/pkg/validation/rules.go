package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// timeHHMM matches 24-hour clock times like "09:00" or "14:30"
var timeHHMM = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// RegisterCustomValidators installs catalog-specific validation tags on the
// binding engine used by Gin.
func RegisterCustomValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("timehhmm", validateTimeHHMM); err != nil {
		return err
	}
	return nil
}

func validateTimeHHMM(fl validator.FieldLevel) bool {
	return timeHHMM.MatchString(fl.Field().String())
}
