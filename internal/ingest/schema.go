package ingest

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/timmy/carmate/internal/domain"
)

// CarRecord is a validated car row.
type CarRecord struct {
	Row               int
	CarNumber         string
	Manufacturer      string
	Model             string
	Type              domain.CarType
	ManufacturingYear int
	Mileage           int
	Price             int
	AccidentCount     int
	Explanation       *string
	AccidentDetails   *string

	// CarModelID is filled in by key resolution.
	CarModelID uint
}

// CustomerRecord is a validated customer row.
type CustomerRecord struct {
	Row         int
	Name        string
	Gender      domain.Gender
	PhoneNumber string
	AgeGroup    *domain.AgeGroup
	Region      *domain.Region
	Email       *string
	Memo        *string
}

// carRow and customerRow mirror the CSV columns. Field order is the order
// in which required columns are reported.
type carRow struct {
	CarNumber         string `csv:"carNumber" validate:"required"`
	Manufacturer      string `csv:"manufacturer" validate:"required"`
	Model             string `csv:"model" validate:"required"`
	Type              string `csv:"type" validate:"required"`
	ManufacturingYear string `csv:"manufacturingYear" validate:"required"`
	Mileage           string `csv:"mileage" validate:"required"`
	Price             string `csv:"price" validate:"required"`
	AccidentCount     string `csv:"accidentCount"`
	Explanation       string `csv:"explanation"`
	AccidentDetails   string `csv:"accidentDetails"`
}

type customerRow struct {
	Name        string `csv:"name" validate:"required"`
	Gender      string `csv:"gender" validate:"required"`
	PhoneNumber string `csv:"phoneNumber" validate:"required"`
	AgeGroup    string `csv:"ageGroup"`
	Region      string `csv:"region"`
	Email       string `csv:"email"`
	Memo        string `csv:"memo"`
}

// Validator checks raw rows against the per-kind schema. Checks run in a
// fixed order (trim, required, enums, integers, optional text) and the
// first failing check is reported.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator. Field names in errors are CSV column names.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("csv")
	})
	return &Validator{validate: v}
}

// Car validates a car row.
func (v *Validator) Car(raw RawRow) (CarRecord, error) {
	var row carRow
	if err := v.decode(raw, &row); err != nil {
		return CarRecord{}, err
	}

	carType, ok := domain.ParseCarType(row.Type)
	if !ok {
		return CarRecord{}, unsupported(raw.Line, "type", row.Type)
	}

	rec := CarRecord{
		Row:          raw.Line,
		CarNumber:    row.CarNumber,
		Manufacturer: row.Manufacturer,
		Model:        row.Model,
		Type:         carType,
	}

	var err error
	if rec.ManufacturingYear, err = nonNegative(raw.Line, "manufacturingYear", row.ManufacturingYear); err != nil {
		return CarRecord{}, err
	}
	if rec.Mileage, err = nonNegative(raw.Line, "mileage", row.Mileage); err != nil {
		return CarRecord{}, err
	}
	if rec.Price, err = nonNegative(raw.Line, "price", row.Price); err != nil {
		return CarRecord{}, err
	}
	if row.AccidentCount != "" {
		if rec.AccidentCount, err = nonNegative(raw.Line, "accidentCount", row.AccidentCount); err != nil {
			return CarRecord{}, err
		}
	}

	rec.Explanation = optional(row.Explanation)
	rec.AccidentDetails = optional(row.AccidentDetails)
	return rec, nil
}

// Customer validates a customer row.
func (v *Validator) Customer(raw RawRow) (CustomerRecord, error) {
	var row customerRow
	if err := v.decode(raw, &row); err != nil {
		return CustomerRecord{}, err
	}

	gender, ok := domain.ParseGender(row.Gender)
	if !ok {
		return CustomerRecord{}, unsupported(raw.Line, "gender", row.Gender)
	}
	rec := CustomerRecord{
		Row:         raw.Line,
		Name:        row.Name,
		Gender:      gender,
		PhoneNumber: row.PhoneNumber,
	}

	if row.AgeGroup != "" {
		ag, ok := domain.ParseAgeGroup(row.AgeGroup)
		if !ok {
			return CustomerRecord{}, unsupported(raw.Line, "ageGroup", row.AgeGroup)
		}
		rec.AgeGroup = &ag
	}
	if row.Region != "" {
		r, ok := domain.ParseRegion(row.Region)
		if !ok {
			return CustomerRecord{}, unsupported(raw.Line, "region", row.Region)
		}
		rec.Region = &r
	}

	if row.Email != "" {
		if err := v.validate.Var(row.Email, "email"); err != nil {
			return CustomerRecord{}, rowError(ErrRowValidation, raw.Line, "email", fmt.Errorf("%w: %q", ErrInvalidFormat, row.Email))
		}
	}
	rec.Email = optional(row.Email)
	rec.Memo = optional(row.Memo)
	return rec, nil
}

// decode trims every value, maps the row onto out by csv tag and checks
// required columns.
func (v *Validator) decode(raw RawRow, out interface{}) error {
	trimmed := make(map[string]string, len(raw.Fields))
	for k, val := range raw.Fields {
		trimmed[k] = strings.TrimSpace(val)
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "csv",
		Result:  out,
	})
	if err != nil {
		return fmt.Errorf("failed to create row decoder: %w", err)
	}
	if err := dec.Decode(trimmed); err != nil {
		return rowError(ErrRowValidation, raw.Line, "", err)
	}

	if err := v.validate.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return rowError(ErrRowValidation, raw.Line, verrs[0].Field(), ErrRequired)
		}
		return rowError(ErrRowValidation, raw.Line, "", err)
	}
	return nil
}

func unsupported(row int, field, value string) *Error {
	return rowError(ErrRowValidation, row, field, fmt.Errorf("%w: %q", ErrUnsupportedValue, value))
}

func nonNegative(row int, field, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, rowError(ErrRowValidation, row, field, fmt.Errorf("%w: %q", ErrNotInteger, value))
	}
	if n < 0 {
		return 0, rowError(ErrRowValidation, row, field, fmt.Errorf("%w: %d", ErrNegative, n))
	}
	return n, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
