package ingest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timmy/carmate/internal/domain"
)

func carFields(overrides map[string]string) RawRow {
	fields := map[string]string{
		"carNumber":         "12가1234",
		"manufacturer":      "현대",
		"model":             "쏘나타",
		"type":              "세단",
		"manufacturingYear": "2020",
		"mileage":           "35000",
		"price":             "1500",
		"accidentCount":     "0",
		"explanation":       "",
		"accidentDetails":   "",
	}
	for k, v := range overrides {
		fields[k] = v
	}
	return RawRow{Line: 3, Fields: fields}
}

func customerFields(overrides map[string]string) RawRow {
	fields := map[string]string{
		"name":        "홍길동",
		"gender":      "male",
		"phoneNumber": "010-1234-5678",
		"ageGroup":    "30대",
		"region":      "서울",
		"email":       "hong@example.com",
		"memo":        "",
	}
	for k, v := range overrides {
		fields[k] = v
	}
	return RawRow{Line: 1, Fields: fields}
}

func assertRowError(t *testing.T, err error, row int, field string, cause error) {
	t.Helper()
	require.Error(t, err)
	var ie *Error
	require.True(t, errors.As(err, &ie), "want *Error, got %T", err)
	assert.ErrorIs(t, err, ErrRowValidation)
	assert.Equal(t, row, ie.Row)
	assert.Equal(t, field, ie.Field)
	if cause != nil {
		assert.ErrorIs(t, err, cause)
	}
}

func TestValidatorCar(t *testing.T) {
	v := NewValidator()

	rec, err := v.Car(carFields(map[string]string{"carNumber": "  12가1234 ", "explanation": " 무사고 "}))
	require.NoError(t, err)
	assert.Equal(t, 3, rec.Row)
	assert.Equal(t, "12가1234", rec.CarNumber)
	assert.Equal(t, domain.CarTypeMidSize, rec.Type)
	assert.Equal(t, 2020, rec.ManufacturingYear)
	assert.Equal(t, 35000, rec.Mileage)
	assert.Equal(t, 1500, rec.Price)
	require.NotNil(t, rec.Explanation)
	assert.Equal(t, "무사고", *rec.Explanation)
	assert.Nil(t, rec.AccidentDetails)
}

func TestValidatorCarAccidentCountDefaults(t *testing.T) {
	v := NewValidator()
	row := carFields(nil)
	delete(row.Fields, "accidentCount")

	rec, err := v.Car(row)
	require.NoError(t, err)
	assert.Equal(t, 0, rec.AccidentCount)
}

func TestValidatorCarErrors(t *testing.T) {
	v := NewValidator()
	tests := []struct {
		name      string
		overrides map[string]string
		field     string
		cause     error
	}{
		{"missing car number", map[string]string{"carNumber": " "}, "carNumber", ErrRequired},
		{"missing price", map[string]string{"price": ""}, "price", ErrRequired},
		{"first required wins", map[string]string{"model": "", "price": ""}, "model", ErrRequired},
		{"unsupported type", map[string]string{"type": "TRUCK"}, "type", ErrUnsupportedValue},
		{"enum before integer", map[string]string{"type": "TRUCK", "mileage": "abc"}, "type", ErrUnsupportedValue},
		{"non numeric mileage", map[string]string{"mileage": "3만"}, "mileage", ErrNotInteger},
		{"fractional price", map[string]string{"price": "10.5"}, "price", ErrNotInteger},
		{"negative accident count", map[string]string{"accidentCount": "-1"}, "accidentCount", ErrNegative},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Car(carFields(tt.overrides))
			assertRowError(t, err, 3, tt.field, tt.cause)
		})
	}
}

func TestValidatorCarMissingColumn(t *testing.T) {
	v := NewValidator()
	row := carFields(nil)
	delete(row.Fields, "manufacturer")

	_, err := v.Car(row)
	assertRowError(t, err, 3, "manufacturer", ErrRequired)
}

func TestValidatorCustomer(t *testing.T) {
	v := NewValidator()

	rec, err := v.Customer(customerFields(map[string]string{"gender": "FEMALE", "ageGroup": "40-50"}))
	require.NoError(t, err)
	assert.Equal(t, domain.GenderFemale, rec.Gender)
	require.NotNil(t, rec.AgeGroup)
	assert.Equal(t, domain.AgeGroupForties, *rec.AgeGroup)
	require.NotNil(t, rec.Region)
	assert.Equal(t, domain.RegionSeoul, *rec.Region)
	require.NotNil(t, rec.Email)
	assert.Nil(t, rec.Memo)
}

func TestValidatorCustomerOptionalEnums(t *testing.T) {
	v := NewValidator()

	rec, err := v.Customer(customerFields(map[string]string{"ageGroup": "", "region": "", "email": ""}))
	require.NoError(t, err)
	assert.Nil(t, rec.AgeGroup)
	assert.Nil(t, rec.Region)
	assert.Nil(t, rec.Email)
}

func TestValidatorCustomerErrors(t *testing.T) {
	v := NewValidator()
	tests := []struct {
		name      string
		overrides map[string]string
		field     string
		cause     error
	}{
		{"missing phone", map[string]string{"phoneNumber": ""}, "phoneNumber", ErrRequired},
		{"bad gender", map[string]string{"gender": "남"}, "gender", ErrUnsupportedValue},
		{"mixed case gender", map[string]string{"gender": "Male"}, "gender", ErrUnsupportedValue},
		{"scrambled case gender", map[string]string{"gender": "fEmAlE"}, "gender", ErrUnsupportedValue},
		{"bad age group", map[string]string{"ageGroup": "90대"}, "ageGroup", ErrUnsupportedValue},
		{"bad region", map[string]string{"region": "도쿄"}, "region", ErrUnsupportedValue},
		{"bad email", map[string]string{"email": "not-an-email"}, "email", ErrInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Customer(customerFields(tt.overrides))
			assertRowError(t, err, 1, tt.field, tt.cause)
		})
	}
}
