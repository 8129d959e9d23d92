package algo

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/mapmykidz/Mapmykidz/schema"
)

// DaysPerMonth is the average Gregorian month length.
const DaysPerMonth = 30.4375

// dateLayouts are tried in order when parsing user supplied dates.
var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParseDate parses an ISO calendar date or timestamp.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: '%s' is not an ISO date", schema.ErrInvalidDate, s)
}

// CalculateAge computes age from two date strings.
func CalculateAge(dateOfBirth, measurementDate string) (schema.AgeCalculation, error) {
	birth, err := ParseDate(dateOfBirth)
	if err != nil {
		return schema.AgeCalculation{}, err
	}
	measured, err := ParseDate(measurementDate)
	if err != nil {
		return schema.AgeCalculation{}, err
	}
	return CalculateAgeAt(birth, measured)
}

// CalculateAgeAt computes age between two instants. Days are whole elapsed days,
// and months are days divided by the average month length.
func CalculateAgeAt(birth, measured time.Time) (schema.AgeCalculation, error) {
	if measured.Before(birth) {
		return schema.AgeCalculation{}, fmt.Errorf("%w: %s is before %s",
			schema.ErrInvalidRange, measured.Format(time.DateOnly), birth.Format(time.DateOnly))
	}
	days := int(measured.Sub(birth).Hours() / 24)
	months := float64(days) / DaysPerMonth
	return schema.AgeCalculation{
		AgeYears:    int(math.Floor(months / 12)),
		AgeMonths:   int(math.Floor(math.Mod(months, 12))),
		AgeInMonths: months,
		AgeInDays:   days,
	}, nil
}

// SelectStandard returns WHO for the first two years and CDC afterwards.
func SelectStandard(ageInMonths float64) schema.GrowthStandard {
	if ageInMonths <= 24 {
		return schema.WHO
	}
	return schema.CDC
}
