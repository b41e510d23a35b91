package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Gender values accepted on a profile
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// AgeCategory is the age bracket shown alongside a profile
type AgeCategory string

const (
	AgeCategoryGeneral     AgeCategory = "General"
	AgeCategorySenior      AgeCategory = "Senior"
	AgeCategorySuperSenior AgeCategory = "Super Senior"
)

// AgeCategories lists the categories in display order
var AgeCategories = []AgeCategory{AgeCategoryGeneral, AgeCategorySenior, AgeCategorySuperSenior}

// Profile is the single personal record kept per installation
type Profile struct {
	ID              uuid.UUID  `yaml:"id" json:"id" db:"id"`
	Name            string     `yaml:"name" json:"name" db:"name"`
	Gender          string     `yaml:"gender" json:"gender" db:"gender"`
	DateOfBirth     *time.Time `yaml:"date_of_birth,omitempty" json:"dateOfBirth,omitempty" db:"date_of_birth"`
	Salaried        bool       `yaml:"salaried" json:"salaried" db:"salaried"`
	ResidingInMetro bool       `yaml:"residing_in_metro" json:"residingInMetro" db:"residing_in_metro"`

	// Optional contact details
	Email      string `yaml:"email,omitempty" json:"email,omitempty" db:"email"`
	PAN        string `yaml:"pan,omitempty" json:"pan,omitempty" db:"pan"`
	Phone      string `yaml:"phone,omitempty" json:"phone,omitempty" db:"phone"`
	Occupation string `yaml:"occupation,omitempty" json:"occupation,omitempty" db:"occupation"`

	CreatedAt time.Time `yaml:"created_at" json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `yaml:"updated_at" json:"updatedAt" db:"updated_at"`
}

// Initials returns up to two upper-case initials for an avatar, or "NA"
func (p *Profile) Initials() string {
	if p == nil {
		return "NA"
	}
	var sb strings.Builder
	for i, word := range strings.Fields(p.Name) {
		if i == 2 {
			break
		}
		r, _ := utf8.DecodeRuneInString(word)
		sb.WriteRune(r)
	}
	if sb.Len() == 0 {
		return "NA"
	}
	return strings.ToUpper(sb.String())
}

// Snapshot is a full dump of the profile table
type Snapshot struct {
	Profiles      []Profile `json:"profiles"`
	TotalProfiles int       `json:"totalProfiles"`
}
