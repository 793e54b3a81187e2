package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ageAt(birth, now time.Time) PetAge {
	return PetAge{BirthDate: &birth, Now: now}
}

func TestPetAgeUnknown(t *testing.T) {
	age := PetAge{Now: time.Now()}

	assert.False(t, age.Known())
	_, ok := age.Years()
	assert.False(t, ok)
	_, ok = age.Months()
	assert.False(t, ok)
	_, ok = age.Days()
	assert.False(t, ok)
	assert.Equal(t, LifeStageUnknown, age.Stage(DefaultLifeStageThresholds()))
	assert.Equal(t, "unknown", age.Formatted())
	_, ok = age.NextBirthday()
	assert.False(t, ok)
	assert.False(t, age.IsBirthdayToday())
}

func TestPetAgeYears(t *testing.T) {
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		birth time.Time
		years int
	}{
		{"birthday passed this year", time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC), 6},
		{"birthday later this year", time.Date(2020, time.October, 1, 0, 0, 0, 0, time.UTC), 5},
		{"birthday is today", time.Date(2020, time.June, 15, 0, 0, 0, 0, time.UTC), 6},
		{"born this year", time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			years, ok := ageAt(tt.birth, now).Years()
			require.True(t, ok)
			assert.Equal(t, tt.years, years)
		})
	}
}

func TestPetAgeMonthsAndDays(t *testing.T) {
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)
	age := ageAt(time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC), now)

	months, ok := age.Months()
	require.True(t, ok)
	assert.Equal(t, 2, months)

	days, ok := age.Days()
	require.True(t, ok)
	assert.Equal(t, 87, days)

	weeks, ok := age.Weeks()
	require.True(t, ok)
	assert.Equal(t, 12, weeks)
}

func TestPetAgeStage(t *testing.T) {
	now := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)
	thresholds := DefaultLifeStageThresholds()

	tests := []struct {
		years int
		stage LifeStage
	}{
		{0, LifeStagePuppy},
		{1, LifeStageYoungAdult},
		{2, LifeStageYoungAdult},
		{3, LifeStageAdult},
		{6, LifeStageAdult},
		{7, LifeStageSenior},
		{12, LifeStageSenior},
	}

	for _, tt := range tests {
		birth := now.AddDate(-tt.years, 0, -1)
		assert.Equal(t, tt.stage, ageAt(birth, now).Stage(thresholds), "at %d years", tt.years)
	}
}

func TestPetAgeStageWithBreedThresholds(t *testing.T) {
	now := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)
	thresholds := LifeStageThresholds{AdultAfterYears: 2, PrimeAfterYears: 5, SeniorAfterYears: 10}

	age := ageAt(now.AddDate(-8, 0, -1), now)
	assert.Equal(t, LifeStageAdult, age.Stage(thresholds))
	assert.True(t, age.IsAdult(thresholds))
	assert.False(t, age.IsSenior(thresholds))
	assert.False(t, age.IsPuppy(thresholds))
}

func TestPetAgeFormatted(t *testing.T) {
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		birth time.Time
		want  string
	}{
		{"days old", now.AddDate(0, 0, -3), "3 days"},
		{"single day", now.AddDate(0, 0, -1), "1 day"},
		{"weeks old", now.AddDate(0, 0, -20), "2 weeks"},
		{"months old", now.AddDate(0, -4, -2), "4 months"},
		{"exact years", time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC), "3 years"},
		{"single year", time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), "1 year"},
		{"years and months", time.Date(2023, time.April, 1, 0, 0, 0, 0, time.UTC), "3 years and 2 months"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ageAt(tt.birth, now).Formatted())
		})
	}
}

func TestPetAgeNextBirthday(t *testing.T) {
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

	next, ok := ageAt(time.Date(2020, time.October, 3, 0, 0, 0, 0, time.UTC), now).NextBirthday()
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, time.October, 3, 0, 0, 0, 0, time.UTC), next)

	next, ok = ageAt(time.Date(2020, time.February, 3, 0, 0, 0, 0, time.UTC), now).NextBirthday()
	require.True(t, ok)
	assert.Equal(t, time.Date(2027, time.February, 3, 0, 0, 0, 0, time.UTC), next)

	// The anniversary at midnight today is not after now, so it rolls over.
	next, ok = ageAt(time.Date(2020, time.June, 15, 0, 0, 0, 0, time.UTC), now).NextBirthday()
	require.True(t, ok)
	assert.Equal(t, 2027, next.Year())
}

func TestPetAgeIsBirthdayToday(t *testing.T) {
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

	assert.True(t, ageAt(time.Date(2021, time.June, 15, 8, 0, 0, 0, time.UTC), now).IsBirthdayToday())
	assert.False(t, ageAt(time.Date(2021, time.June, 14, 8, 0, 0, 0, time.UTC), now).IsBirthdayToday())
}
