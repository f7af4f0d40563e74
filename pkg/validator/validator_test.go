package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	Title string `validate:"required,max=5"`
	Role  string `validate:"omitempty,oneof=organizer attendee"`
}

func TestValidate(t *testing.T) {
	cv := Default()
	assert.Same(t, cv, Default())

	assert.NoError(t, cv.Validate(&sample{Title: "ok"}))
	assert.NoError(t, cv.Validate(&sample{Title: "ok", Role: "attendee"}))
	assert.Error(t, cv.Validate(&sample{}))
	assert.Error(t, cv.Validate(&sample{Title: "too long"}))
	assert.Error(t, cv.Validate(&sample{Title: "ok", Role: "host"}))
}

type named struct {
	Email string `json:"email" validate:"required"`
	Plain string `validate:"required"`
}

func TestValidate_ReportsJSONNames(t *testing.T) {
	err := New().Validate(&named{})

	var fields []string
	var verrs validator.ValidationErrors
	if assert.ErrorAs(t, err, &verrs) {
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
	}
	assert.Equal(t, []string{"email", "Plain"}, fields)
}
