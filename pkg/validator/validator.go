package validator

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance.
// Field errors carry the JSON name of the field when it has one.
func New() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(jsonName)
	return &CustomValidator{v: v}
}

// Validate performs struct validation
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}

var (
	defaultOnce sync.Once
	defaultCV   *CustomValidator
)

// Default returns a shared validator; validator.Validate caches struct metadata
func Default() *CustomValidator {
	defaultOnce.Do(func() {
		defaultCV = New()
	})
	return defaultCV
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}
