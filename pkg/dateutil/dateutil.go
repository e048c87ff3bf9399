package dateutil

import (
	"time"
)

// Age calculates the age at a given date
func Age(birthDate, atDate time.Time) int {
	age := atDate.Year() - birthDate.Year()
	if atDate.Month() < birthDate.Month() ||
		(atDate.Month() == birthDate.Month() && atDate.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// AgeAfterYears is the age reached a whole number of years after atDate
func AgeAfterYears(birthDate, atDate time.Time, years int) int {
	return Age(birthDate, atDate.AddDate(years, 0, 0))
}

// GetRMDAge returns the age when required minimum distributions start for a birth year
func GetRMDAge(birthYear int) int {
	switch {
	case birthYear <= 1950:
		return 72
	case birthYear <= 1959:
		return 73
	default: // 1960 and later
		return 75
	}
}
