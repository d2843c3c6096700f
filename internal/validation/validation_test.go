package validation

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

type color string

func (c color) IsValid() bool { return c == "red" || c == "blue" }

type paintRequest struct {
	Color  color  `binding:"required,enum"`
	Accent *color `binding:"omitempty,enum"`
}

func TestEnumTag(t *testing.T) {
	Register()
	Register()

	green := color("green")
	blue := color("blue")

	tests := []struct {
		name  string
		req   paintRequest
		valid bool
	}{
		{name: "valid", req: paintRequest{Color: "red"}, valid: true},
		{name: "valid with accent", req: paintRequest{Color: "red", Accent: &blue}, valid: true},
		{name: "unknown value", req: paintRequest{Color: "green"}, valid: false},
		{name: "unknown accent", req: paintRequest{Color: "red", Accent: &green}, valid: false},
		{name: "missing", req: paintRequest{}, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(tt.req)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
