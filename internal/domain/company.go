package domain

import "time"

// Company is a dealership tenant. Every car, car model, customer and upload
// belongs to exactly one company.
type Company struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CompanyName string    `gorm:"type:text;not null" json:"company_name"`
	CompanyCode string    `gorm:"type:text;not null;uniqueIndex" json:"company_code"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the database table name for Company.
func (Company) TableName() string {
	return "companies"
}
