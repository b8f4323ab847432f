package calendar

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Anupkarki12/student-management-system-sub001/core"
)

// BSDateInput carries BS date components from a client.
// Month lengths are checked by the bsdate struct validation.
type BSDateInput struct {
	Year  int `json:"year" validate:"required,min=1,max=9999"`
	Month int `json:"month" validate:"required,min=1,max=12"`
	Day   int `json:"day" validate:"required,min=1,max=32"`
}

func (in BSDateInput) Validate(validate *validator.Validate) error {
	return validate.Struct(in)
}

// GregorianInput carries a Gregorian day as YYYY-MM-DD.
type GregorianInput struct {
	Date string `json:"date" validate:"required,isodate"`
}

func (in *GregorianInput) Validate(validate *validator.Validate) error {
	in.Date = core.CleanString(in.Date)
	return validate.Struct(in)
}

// Time returns the day as UTC midnight. Call after Validate.
func (in GregorianInput) Time() time.Time {
	t, _ := time.Parse(core.DateLayout, in.Date)
	return t
}

type FormatQuery struct {
	Date           string `query:"date" validate:"required"`
	Variant        string `query:"variant" validate:"omitempty,oneof=full short month-year year"`
	Locale         string `query:"locale"`
	IncludeWeekday bool   `query:"weekday"`
}

func (q *FormatQuery) Validate(validate *validator.Validate) error {
	q.Date = core.CleanString(q.Date)
	q.Variant = core.CleanString(q.Variant, true /* lower */)
	return validate.Struct(q)
}

// Options returns the format options of the query. Call after Validate.
func (q FormatQuery) Options() FormatOptions {
	v, _ := ParseVariant(q.Variant)
	return FormatOptions{Variant: v, IncludeWeekday: q.IncludeWeekday}
}

type RelativeQuery struct {
	Date   string `query:"date" validate:"required"`
	Now    string `query:"now"` // defaults to the current time
	Locale string `query:"locale"`
}

func (q *RelativeQuery) Validate(validate *validator.Validate) error {
	q.Date = core.CleanString(q.Date)
	q.Now = core.CleanString(q.Now)
	if err := validate.Struct(q); err != nil {
		return err
	}
	if q.Now != "" {
		if _, err := ParseDay(q.Now); err != nil {
			return core.NewFieldValidationError(err, "now")
		}
	}
	return nil
}

type NumeralsQuery struct {
	Value  string `query:"value" validate:"required"`
	Locale string `query:"locale"`
}

func (q *NumeralsQuery) Validate(validate *validator.Validate) error {
	return validate.Struct(q)
}

// Conversion is the answer to a conversion request, in both calendars.
type Conversion struct {
	BS          Date   `json:"bs"`
	Gregorian   string `json:"gregorian"`
	Formatted   string `json:"formatted"`
	Approximate bool   `json:"approximate"`
}
