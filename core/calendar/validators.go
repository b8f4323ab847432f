package calendar

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/Anupkarki12/student-management-system-sub001/core"
)

var (
	bsDateTag  = "bsdate"
	bsDateText = "day does not exist in this BS month"
)

// monthLengths is implemented by Table and Service.
type monthLengths interface {
	DaysInMonth(year, month int) int
}

// InitValidators registers the calendar validations. Days of a BSDateInput
// are checked against the month lengths of lengths.
func InitValidators(validate *validator.Validate, translator ut.Translator, lengths monthLengths) {
	validate.RegisterStructValidation(bsDateStructValidation(lengths), BSDateInput{})
	core.RegisterCustomTranslation(validate, translator, bsDateTag, bsDateText)
}

// bsDateStructValidation reports days past the end of their month.
// Components outside their static ranges are left to the field tags.
func bsDateStructValidation(lengths monthLengths) validator.StructLevelFunc {
	return func(sl validator.StructLevel) {
		in, ok := sl.Current().Interface().(BSDateInput)
		if !ok {
			return
		}
		if in.Year < MinYear || in.Year > MaxYear || in.Month < 1 || in.Month > MonthsPerYear || in.Day < 1 || in.Day > maxMonthDays {
			return
		}
		if in.Day > lengths.DaysInMonth(in.Year, in.Month) {
			sl.ReportError(in.Day, "day", "Day", bsDateTag, "")
		}
	}
}
