package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TestAgeCalculation tests the age calculation function with various scenarios
func TestAgeCalculation(t *testing.T) {
	tests := []struct {
		name        string
		birthDate   time.Time
		atDate      time.Time
		expectedAge int
	}{
		{"Same month and day", date(1965, 2, 25), date(2025, 2, 25), 60},
		{"Day before birthday", date(1965, 2, 25), date(2025, 2, 24), 59},
		{"Day after birthday", date(1965, 2, 25), date(2025, 2, 26), 60},
		{"Month before birthday", date(1965, 2, 25), date(2025, 1, 25), 59},
		{"Month after birthday", date(1965, 2, 25), date(2025, 3, 25), 60},
		{"Leap year birth, non-leap year check", date(1964, 2, 29), date(2025, 2, 28), 60},
		{"Leap year birth, leap year check", date(1964, 2, 29), date(2024, 2, 29), 60},
		{"Mid-career", date(1980, 7, 31), date(2026, 10, 17), 46},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedAge, Age(tt.birthDate, tt.atDate))
		})
	}
}

func TestAgeAfterYears(t *testing.T) {
	birth := date(1970, 6, 15)
	asOf := date(2026, 1, 10)
	assert.Equal(t, 55, AgeAfterYears(birth, asOf, 0))
	assert.Equal(t, 65, AgeAfterYears(birth, asOf, 10))
}

// TestGetRMDAge tests the RMD age determination
func TestGetRMDAge(t *testing.T) {
	tests := []struct {
		name        string
		birthYear   int
		expectedAge int
	}{
		{"Born 1950 or earlier", 1950, 72},
		{"Born 1951-1959", 1955, 73},
		{"Born 1959", 1959, 73},
		{"Born 1960 or later", 1965, 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedAge, GetRMDAge(tt.birthYear))
		})
	}
}
