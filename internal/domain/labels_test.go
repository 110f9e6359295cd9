package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCarType(t *testing.T) {
	tests := []struct {
		label string
		want  CarType
		ok    bool
	}{
		{"SUV", CarTypeSUV, true},
		{"세단", CarTypeMidSize, true},
		{" 경차 ", CarTypeCompact, true},
		{"SPORTS_CAR", CarTypeSportsCar, true},
		{"TRUCK", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseCarType(tt.label)
		assert.Equal(t, tt.ok, ok, tt.label)
		assert.Equal(t, tt.want, got, tt.label)
	}
}

func TestParseGender(t *testing.T) {
	g, ok := ParseGender("FEMALE")
	assert.True(t, ok)
	assert.Equal(t, GenderFemale, g)

	g, ok = ParseGender("male")
	assert.True(t, ok)
	assert.Equal(t, GenderMale, g)

	for _, label := range []string{"남", "Male", "fEmAlE"} {
		_, ok = ParseGender(label)
		assert.False(t, ok, label)
	}
}

func TestParseAgeGroup(t *testing.T) {
	for label, want := range map[string]AgeGroup{
		"30대":        AgeGroupThirties,
		"30-40":      AgeGroupThirties,
		"EIGHTIES_80": AgeGroupEighties,
	} {
		got, ok := ParseAgeGroup(label)
		assert.True(t, ok, label)
		assert.Equal(t, want, got, label)
	}

	_, ok := ParseAgeGroup("90대")
	assert.False(t, ok)
}

func TestParseRegion(t *testing.T) {
	r, ok := ParseRegion("제주")
	assert.True(t, ok)
	assert.Equal(t, RegionJeju, r)

	r, ok = ParseRegion("SEOUL")
	assert.True(t, ok)
	assert.Equal(t, RegionSeoul, r)

	_, ok = ParseRegion("도쿄")
	assert.False(t, ok)
}

func TestEntityKindValid(t *testing.T) {
	assert.True(t, EntityKindCar.Valid())
	assert.True(t, EntityKindCustomer.Valid())
	assert.False(t, EntityKind("contract").Valid())
}
