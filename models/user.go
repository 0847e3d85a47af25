package models

import "time"

// AccountType hesabın hiyerarşi yetkisini belirler.
// Kayıt sırasında bir kez atanır, sonradan sadece admin değiştirebilir.
type AccountType string

const (
	AccountTypeIndividual   AccountType = "individual"
	AccountTypeTeam         AccountType = "team"
	AccountTypeOrganization AccountType = "organization"
)

// IsValid tanımlı hesap türlerinden biri mi kontrol eder.
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeIndividual, AccountTypeTeam, AccountTypeOrganization:
		return true
	}
	return false
}

// Role sistem genelindeki yetki seviyesidir; AccountType'tan bağımsızdır.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// IsValid tanımlı rollerden biri mi kontrol eder.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// UserStatus hesabın durumunu tutar. Kart görünürlüğünden (CardStatus)
// bilinçli olarak ayrı bir tiptir; ikisi farklı anlamlar taşır.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusDisabled UserStatus = "disabled"
)

// User platformdaki hesap kaydıdır.
type User struct {
	BaseModel
	Email        string      `gorm:"type:varchar(100);uniqueIndex;not null"`
	PasswordHash string      `gorm:"type:varchar(255)"` // Boş ise hesap sadece OAuth ile giriş yapar
	Name         string      `gorm:"type:varchar(150);not null"`
	AccountType  AccountType `gorm:"type:varchar(20);not null;default:'individual';index"`
	Role         Role        `gorm:"type:varchar(20);not null;default:'user';index"`
	Status       UserStatus  `gorm:"type:varchar(20);not null;default:'active';index"`

	GoogleID *string `gorm:"type:varchar(100);uniqueIndex"` // Harici OAuth kimliği, opsiyonel

	IsVerified            bool       `gorm:"default:false"`
	VerificationToken     string     `gorm:"type:varchar(64);index"`
	VerificationExpiresAt *time.Time `gorm:"type:timestamptz"`
	ResetToken            string     `gorm:"type:varchar(64);index"`
	ResetExpiresAt        *time.Time `gorm:"type:timestamptz"`

	LastLoginAt *time.Time `gorm:"type:timestamptz"`

	// Takım üyeliği / organizasyon bağı (referans, sahiplik değil)
	OrganizationID *uint `gorm:"index"`
	TeamID         *uint `gorm:"index"`
}

// IsActive hesabın kullanılabilir olup olmadığını söyler.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// HasPassword hesapta parola tanımlı mı kontrol eder (OAuth-only hesaplarda yoktur).
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// PublicUser kullanıcının dışarıya açılan görünümüdür.
// Parola hash'i ve token alanları asla bu yapıya girmez.
type PublicUser struct {
	ID             uint        `json:"id"`
	Email          string      `json:"email"`
	Name           string      `json:"name"`
	AccountType    AccountType `json:"account_type"`
	Role           Role        `json:"role"`
	Status         UserStatus  `json:"status"`
	IsVerified     bool        `json:"is_verified"`
	OrganizationID *uint       `json:"organization_id"`
	TeamID         *uint       `json:"team_id"`
	LastLoginAt    *time.Time  `json:"last_login_at"`
	CreatedAt      time.Time   `json:"created_at"`
}

// ToPublic güvenli dış görünümü üretir.
func (u *User) ToPublic() PublicUser {
	return PublicUser{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		AccountType:    u.AccountType,
		Role:           u.Role,
		Status:         u.Status,
		IsVerified:     u.IsVerified,
		OrganizationID: u.OrganizationID,
		TeamID:         u.TeamID,
		LastLoginAt:    u.LastLoginAt,
		CreatedAt:      u.CreatedAt,
	}
}
