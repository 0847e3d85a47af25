package models

import "time"

// CardStatus kartvizitin yaşam döngüsü durumudur. Hesap durumu (UserStatus)
// ile karıştırılmamalı; archived bir kart hesabı etkilemez.
type CardStatus string

const (
	CardStatusActive   CardStatus = "active"
	CardStatusArchived CardStatus = "archived"
)

// IsValid durum değerinin tanımlı sözlükte olup olmadığını kontrol eder.
func (s CardStatus) IsValid() bool {
	return s == CardStatusActive || s == CardStatusArchived
}

// ShareKeyLength public paylaşım anahtarının uzunluğu.
const ShareKeyLength = 20

// Card dijital kartvizitin ana kaydıdır.
type Card struct {
	BaseModel
	OwnerUserID    uint   `gorm:"index;not null"`
	TeamID         *uint  `gorm:"index"` // Opsiyonel gruplama referansı
	OrganizationID *uint  `gorm:"index"` // Opsiyonel gruplama referansı
	ShareKey       string `gorm:"type:varchar(20);uniqueIndex;not null"`

	IsPublic bool       `gorm:"default:false;index"`
	Status   CardStatus `gorm:"type:varchar(20);not null;default:'active';index"`

	// Analitik sayaçları; public okuma her seferinde günceller.
	ViewCount    int64      `gorm:"default:0"`
	LastViewedAt *time.Time `gorm:"type:timestamptz"`

	// GORM İlişkileri
	Detail CardDetail `gorm:"foreignKey:CardID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// IsVisible kart public uçtan görülebilir mi kontrol eder.
// İki bayrak birbirinden bağımsız yönetilir; görünürlük ikisinin kesişimidir.
func (c *Card) IsVisible() bool {
	return c.IsPublic && c.Status == CardStatusActive
}
