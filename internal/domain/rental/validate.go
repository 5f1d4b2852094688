package rental

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/yungbote/rentals-backend/internal/domain/errs"
)

// Money columns are decimal(10,2).
const (
	MoneyDecimalPlaces = 2
	MoneyMaxDigits     = 10
)

var moneyCeiling = decimal.New(1, MoneyMaxDigits-MoneyDecimalPlaces)

// MoneyProblem returns a validation message for an out-of-range amount, or
// "" when the amount is acceptable.
func MoneyProblem(d decimal.Decimal) string {
	switch {
	case d.IsNegative():
		return "Ensure this value is greater than or equal to 0."
	case !d.Equal(d.Round(MoneyDecimalPlaces)):
		return "Ensure that there are no more than 2 decimal places."
	case d.GreaterThanOrEqual(moneyCeiling):
		return "Ensure that there are no more than 10 digits in total."
	}
	return ""
}

func validateListingFields(l *Listing) errs.FieldErrors {
	fe := errs.FieldErrors{}
	checkText(fe, "title", l.Title, MaxTitleLength)
	checkText(fe, "location", l.Location, MaxLocationLength)
	if strings.TrimSpace(l.Description) == "" {
		fe.Add("description", "This field may not be blank.")
	}
	if msg := MoneyProblem(l.Price); msg != "" {
		fe.Add("price", msg)
	}
	if !l.PropertyType.Valid() {
		fe.Add("property_type", "\""+string(l.PropertyType)+"\" is not a valid choice.")
	}
	checkPositive(fe, "bedrooms", l.Bedrooms)
	checkPositive(fe, "bathrooms", l.Bathrooms)
	checkPositive(fe, "max_guests", l.MaxGuests)
	return fe
}

func checkText(fe errs.FieldErrors, field, value string, max int) {
	if strings.TrimSpace(value) == "" {
		fe.Add(field, "This field may not be blank.")
		return
	}
	if utf8.RuneCountInString(value) > max {
		fe.Add(field, "Ensure this field has no more than 200 characters.")
	}
}

func checkPositive(fe errs.FieldErrors, field string, v int) {
	if v < 1 {
		fe.Add(field, "Ensure this value is greater than or equal to 1.")
	}
}
