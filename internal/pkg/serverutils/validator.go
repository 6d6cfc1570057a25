package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"winetour-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest checks struct tags on a parsed request body and folds any
// violations into a single VALIDATION_ERROR.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var violations []string
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				violations = append(violations, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
			}
			return apperror.Validation(strings.Join(violations, "; "))
		}
		return apperror.Validation(err.Error())
	}
	return nil
}
