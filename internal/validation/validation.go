// Package validation registers the custom binding tags used by request DTOs.
package validation

import (
	"reflect"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Enum is implemented by closed string types.
type Enum interface {
	IsValid() bool
}

var once sync.Once

// Register installs the "enum" tag on gin's default validator. Safe to call
// more than once.
func Register() {
	once.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("enum", validateEnum)
		}
	})
}

func validateEnum(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() == reflect.Ptr {
		if field.IsNil() {
			return true
		}
		field = field.Elem()
	}
	if !field.CanInterface() {
		return false
	}
	if e, ok := field.Interface().(Enum); ok {
		return e.IsValid()
	}
	return false
}
