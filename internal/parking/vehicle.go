package parking

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Vehicle is immutable once created. Color is kept lower-cased so that every
// comparison is case-insensitive.
type Vehicle struct {
	RegistrationNumber string
	Color              string
}

func NewVehicle(registrationNumber, color string) *Vehicle {
	return &Vehicle{
		RegistrationNumber: registrationNumber,
		Color:              strings.ToLower(color),
	}
}

// DisplayColor returns the color with its first character upper-cased.
func (v *Vehicle) DisplayColor() string {
	r, size := utf8.DecodeRuneInString(v.Color)
	if r == utf8.RuneError {
		return v.Color
	}
	return string(unicode.ToUpper(r)) + v.Color[size:]
}

func (v *Vehicle) IsColor(color string) bool {
	return v.Color == strings.ToLower(color)
}
