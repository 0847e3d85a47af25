package models

// Organization hiyerarşinin tepesindeki isimli varlıktır.
// Sahibi organization türünde tek bir hesaptır; bu kural serviste doğrulanır.
type Organization struct {
	BaseModel
	Name        string `gorm:"type:varchar(150);not null"`
	Description string `gorm:"type:text"`
	Website     string `gorm:"type:varchar(255)"`
	OwnerUserID uint   `gorm:"index;not null"`

	// GORM İlişkileri
	Teams []Team `gorm:"foreignKey:OrganizationID"`
}
