package domain

import "time"

// Gender of a customer.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// AgeGroup buckets a customer's age by decade.
type AgeGroup string

const (
	AgeGroupTeen      AgeGroup = "TEEN_10"
	AgeGroupTwenties  AgeGroup = "TWENTIES_20"
	AgeGroupThirties  AgeGroup = "THIRTIES_30"
	AgeGroupForties   AgeGroup = "FORTIES_40"
	AgeGroupFifties   AgeGroup = "FIFTIES_50"
	AgeGroupSixties   AgeGroup = "SIXTIES_60"
	AgeGroupSeventies AgeGroup = "SEVENTIES_70"
	AgeGroupEighties  AgeGroup = "EIGHTIES_80"
)

// Region is a Korean province or metropolitan city.
type Region string

const (
	RegionSeoul     Region = "SEOUL"
	RegionGyeonggi  Region = "GYEONGGI"
	RegionIncheon   Region = "INCHEON"
	RegionGangwon   Region = "GANGWON"
	RegionChungbuk  Region = "CHUNGBUK"
	RegionChungnam  Region = "CHUNGNAM"
	RegionSejong    Region = "SEJONG"
	RegionDaejeon   Region = "DAEJEON"
	RegionJeonbuk   Region = "JEONBUK"
	RegionJeonnam   Region = "JEONNAM"
	RegionGwangju   Region = "GWANGJU"
	RegionGyeongbuk Region = "GYEONGBUK"
	RegionGyeongnam Region = "GYEONGNAM"
	RegionDaegu     Region = "DAEGU"
	RegionUlsan     Region = "ULSAN"
	RegionBusan     Region = "BUSAN"
	RegionJeju      Region = "JEJU"
)

// Customer is a person in a company's customer book, identified by phone number.
type Customer struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CompanyID   uint      `gorm:"not null;uniqueIndex:idx_customers_company_phone,priority:1" json:"company_id"`
	Name        string    `gorm:"type:text;not null" json:"name"`
	Gender      Gender    `gorm:"type:text;not null" json:"gender"`
	PhoneNumber string    `gorm:"type:text;not null;uniqueIndex:idx_customers_company_phone,priority:2" json:"phone_number"`
	AgeGroup    *AgeGroup `gorm:"type:text" json:"age_group,omitempty"`
	Region      *Region   `gorm:"type:text" json:"region,omitempty"`
	Email       *string   `gorm:"type:text" json:"email,omitempty"`
	Memo        *string   `gorm:"type:text" json:"memo,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the database table name for Customer.
func (Customer) TableName() string {
	return "customers"
}
