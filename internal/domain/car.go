package domain

import "time"

// CarType is the body category of a car model.
type CarType string

const (
	CarTypeCompact   CarType = "COMPACT"
	CarTypeMidSize   CarType = "MID_SIZE"
	CarTypeLarge     CarType = "LARGE"
	CarTypeSportsCar CarType = "SPORTS_CAR"
	CarTypeSUV       CarType = "SUV"
)

// CarStatus is the sales state of a car in the dealership inventory.
type CarStatus string

const (
	CarStatusPossession         CarStatus = "POSSESSION"
	CarStatusContractProceeding CarStatus = "CONTRACT_PROCEEDING"
	CarStatusContractCompleted  CarStatus = "CONTRACT_COMPLETED"
)

// CarModel is a (manufacturer, model) pair scoped to a company.
// Cars reference it by ID.
type CarModel struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CompanyID    uint      `gorm:"not null;uniqueIndex:idx_car_models_natural,priority:1" json:"company_id"`
	Manufacturer string    `gorm:"type:text;not null;uniqueIndex:idx_car_models_natural,priority:2" json:"manufacturer"`
	Model        string    `gorm:"type:text;not null;uniqueIndex:idx_car_models_natural,priority:3" json:"model"`
	Type         CarType   `gorm:"type:text;not null" json:"type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the database table name for CarModel.
func (CarModel) TableName() string {
	return "car_models"
}

// Car is a single vehicle in a company's inventory, identified by its
// registration plate.
type Car struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	CompanyID         uint      `gorm:"not null;uniqueIndex:idx_cars_company_number,priority:1" json:"company_id"`
	CarModelID        uint      `gorm:"not null;index" json:"car_model_id"`
	CarNumber         string    `gorm:"type:text;not null;uniqueIndex:idx_cars_company_number,priority:2" json:"car_number"`
	ManufacturingYear int       `gorm:"not null" json:"manufacturing_year"`
	Mileage           int       `gorm:"not null" json:"mileage"`
	Price             int       `gorm:"not null" json:"price"`
	AccidentCount     int       `gorm:"not null;default:0" json:"accident_count"`
	Explanation       *string   `gorm:"type:text" json:"explanation,omitempty"`
	AccidentDetails   *string   `gorm:"type:text" json:"accident_details,omitempty"`
	Status            CarStatus `gorm:"type:text;not null;default:POSSESSION" json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName returns the database table name for Car.
func (Car) TableName() string {
	return "cars"
}
