package domain

import (
	"fmt"
	"time"
)

// LifeStage labels a pet's age bracket.
type LifeStage string

const (
	LifeStagePuppy      LifeStage = "puppy"
	LifeStageYoungAdult LifeStage = "young_adult"
	LifeStageAdult      LifeStage = "adult"
	LifeStageSenior     LifeStage = "senior"
	LifeStageUnknown    LifeStage = "unknown"
)

// LifeStageThresholds holds the year boundaries between stages. Breeds may
// override the generic defaults.
type LifeStageThresholds struct {
	AdultAfterYears  int `json:"adult_after_years"`
	PrimeAfterYears  int `json:"prime_after_years"`
	SeniorAfterYears int `json:"senior_after_years"`
}

// DefaultLifeStageThresholds is the generic species table: adult from one
// year, prime adult from three, senior from seven.
func DefaultLifeStageThresholds() LifeStageThresholds {
	return LifeStageThresholds{AdultAfterYears: 1, PrimeAfterYears: 3, SeniorAfterYears: 7}
}

// PetAge is an immutable value object deriving ages and life stages from a
// birth date. A zero BirthDate means the age is unknown.
type PetAge struct {
	BirthDate *time.Time
	Now       time.Time
}

// AgeFrom builds a PetAge anchored at the current time.
func AgeFrom(birthDate *time.Time) PetAge {
	return PetAge{BirthDate: birthDate, Now: time.Now()}
}

// Known reports whether the birth date is set.
func (a PetAge) Known() bool {
	return a.BirthDate != nil
}

// Days returns the age in whole days.
func (a PetAge) Days() (int, bool) {
	if a.BirthDate == nil {
		return 0, false
	}
	return int(a.Now.Sub(*a.BirthDate).Hours() / 24), true
}

// Weeks returns the age in whole weeks.
func (a PetAge) Weeks() (int, bool) {
	days, ok := a.Days()
	if !ok {
		return 0, false
	}
	return days / 7, true
}

// Months returns the age in calendar months.
func (a PetAge) Months() (int, bool) {
	if a.BirthDate == nil {
		return 0, false
	}
	birth := *a.BirthDate
	months := (a.Now.Year()-birth.Year())*12 + int(a.Now.Month()) - int(birth.Month())
	if a.Now.Day() < birth.Day() {
		months--
	}
	if months < 0 {
		months = 0
	}
	return months, true
}

// Years returns the age in whole years, accounting for whether the
// birthday has passed this year.
func (a PetAge) Years() (int, bool) {
	if a.BirthDate == nil {
		return 0, false
	}
	birth := *a.BirthDate
	years := a.Now.Year() - birth.Year()
	if int(a.Now.Month())*100+a.Now.Day() < int(birth.Month())*100+birth.Day() {
		years--
	}
	if years < 0 {
		years = 0
	}
	return years, true
}

// Stage maps the age onto the given threshold table.
func (a PetAge) Stage(t LifeStageThresholds) LifeStage {
	years, ok := a.Years()
	if !ok {
		return LifeStageUnknown
	}
	switch {
	case years < t.AdultAfterYears:
		return LifeStagePuppy
	case years < t.PrimeAfterYears:
		return LifeStageYoungAdult
	case years < t.SeniorAfterYears:
		return LifeStageAdult
	default:
		return LifeStageSenior
	}
}

// IsPuppy reports whether the pet is younger than the adult threshold.
func (a PetAge) IsPuppy(t LifeStageThresholds) bool {
	years, ok := a.Years()
	return ok && years < t.AdultAfterYears
}

// IsAdult reports whether the pet has reached the adult threshold.
func (a PetAge) IsAdult(t LifeStageThresholds) bool {
	years, ok := a.Years()
	return ok && years >= t.AdultAfterYears
}

// IsSenior reports whether the pet has reached the senior threshold.
func (a PetAge) IsSenior(t LifeStageThresholds) bool {
	years, ok := a.Years()
	return ok && years >= t.SeniorAfterYears
}

// Formatted renders the age as a human-readable string.
func (a PetAge) Formatted() string {
	years, ok := a.Years()
	if !ok {
		return "unknown"
	}
	months, _ := a.Months()
	months -= years * 12
	switch {
	case years == 0 && months == 0:
		days, _ := a.Days()
		if days < 7 {
			return pluralize(days, "day")
		}
		weeks, _ := a.Weeks()
		return pluralize(weeks, "week")
	case years == 0:
		return pluralize(months, "month")
	case months == 0:
		return pluralize(years, "year")
	default:
		return pluralize(years, "year") + " and " + pluralize(months, "month")
	}
}

// NextBirthday returns the next anniversary of the birth date.
func (a PetAge) NextBirthday() (time.Time, bool) {
	if a.BirthDate == nil {
		return time.Time{}, false
	}
	birth := *a.BirthDate
	next := time.Date(a.Now.Year(), birth.Month(), birth.Day(), 0, 0, 0, 0, a.Now.Location())
	if !next.After(a.Now) {
		next = next.AddDate(1, 0, 0)
	}
	return next, true
}

// IsBirthdayToday reports whether the anniversary falls on the current day.
func (a PetAge) IsBirthdayToday() bool {
	if a.BirthDate == nil {
		return false
	}
	return a.Now.Month() == a.BirthDate.Month() && a.Now.Day() == a.BirthDate.Day()
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
