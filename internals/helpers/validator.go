// file: internals/helpers/validator.go
package helper

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct memvalidasi DTO dan mengembalikan map field → pesan,
// siap dilempar ke JsonValidationError.
func ValidateStruct(s any) map[string][]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrors := map[string][]string{}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			var msg string
			switch fe.Tag() {
			case "required":
				msg = fe.Field() + " wajib diisi."
			case "email":
				msg = "Format email tidak valid."
			case "min":
				msg = fe.Field() + " minimal " + fe.Param() + " karakter."
			case "max":
				msg = fe.Field() + " maksimal " + fe.Param() + " karakter."
			case "oneof":
				msg = fe.Field() + " harus salah satu dari: " + fe.Param() + "."
			case "gte":
				msg = fe.Field() + " minimal " + fe.Param() + "."
			case "lte":
				msg = fe.Field() + " maksimal " + fe.Param() + "."
			default:
				msg = fe.Field() + " tidak valid."
			}
			fieldErrors[fe.Field()] = append(fieldErrors[fe.Field()], msg)
		}
	} else {
		fieldErrors["_"] = []string{err.Error()}
	}
	return fieldErrors
}
