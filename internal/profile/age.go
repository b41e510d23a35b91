package profile

import (
	"time"

	"github.com/rgehrsitz/itrgo/internal/domain"
)

// Age thresholds for the tax categories
const (
	SeniorAge      = 60
	SuperSeniorAge = 80
)

// Age counts completed years between dob and now; a dob after now yields 0
func Age(dob, now time.Time) int {
	if now.Before(dob) {
		return 0
	}
	years := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	return years
}

// CategoryFor maps an age onto the tax category
func CategoryFor(age int) domain.AgeCategory {
	switch {
	case age >= SuperSeniorAge:
		return domain.AgeCategorySuperSenior
	case age >= SeniorAge:
		return domain.AgeCategorySenior
	default:
		return domain.AgeCategoryGeneral
	}
}

// CategoryOf derives the category from a profile's date of birth.
// The bool is false when the profile has no date of birth.
func CategoryOf(p *domain.Profile, now time.Time) (int, domain.AgeCategory, bool) {
	if p == nil || p.DateOfBirth == nil {
		return 0, domain.AgeCategoryGeneral, false
	}
	age := Age(*p.DateOfBirth, now)
	return age, CategoryFor(age), true
}
