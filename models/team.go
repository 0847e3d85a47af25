package models

import "time"

// TeamRole üyelik rolüdür; sistem rolünden (Role) bağımsızdır.
type TeamRole string

const (
	TeamRoleMember TeamRole = "member"
	TeamRoleAdmin  TeamRole = "team_admin"
)

// IsValid tanımlı üyelik rollerinden biri mi kontrol eder.
func (r TeamRole) IsValid() bool {
	return r == TeamRoleMember || r == TeamRoleAdmin
}

// Team tek bir hesaba ait, opsiyonel olarak bir organizasyona bağlı varlıktır.
// Sahip hiçbir zaman örtük üye değildir; üyelik her zaman açıkça eklenir.
type Team struct {
	BaseModel
	Name           string `gorm:"type:varchar(150);not null"`
	Description    string `gorm:"type:text"`
	OwnerUserID    uint   `gorm:"index;not null"`
	OrganizationID *uint  `gorm:"index"` // Opsiyonel üst organizasyon

	// GORM İlişkileri
	Members []TeamMember `gorm:"foreignKey:TeamID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// TeamMember (kullanıcı, rol, katılım zamanı) üçlüsüdür.
// Bileşik unique index aynı kullanıcının bir takımda iki kez görünmesini engeller.
type TeamMember struct {
	BaseModel
	TeamID   uint      `gorm:"not null;uniqueIndex:idx_team_member"`
	UserID   uint      `gorm:"not null;uniqueIndex:idx_team_member;index"`
	Role     TeamRole  `gorm:"type:varchar(20);not null;default:'member'"`
	JoinedAt time.Time `gorm:"type:timestamptz;not null"`
}
