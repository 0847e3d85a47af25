package models

// Kart temaları sabit bir sözlükten seçilir.
const (
	CardThemeClassic  = "classic"
	CardThemeModern   = "modern"
	CardThemeMinimal  = "minimal"
	CardThemeGradient = "gradient"
)

// ValidCardTheme verilen tema tanımlı mı kontrol eder. Boş tema classic sayılır.
func ValidCardTheme(theme string) bool {
	switch theme {
	case "", CardThemeClassic, CardThemeModern, CardThemeMinimal, CardThemeGradient:
		return true
	}
	return false
}

// CardDetail kartvizitin iletişim ve görünüm alanlarını içerir.
type CardDetail struct {
	BaseModel
	CardID uint `gorm:"uniqueIndex;not null"` // cards.id FK

	// Kişisel Bilgiler
	Prefix     string `gorm:"type:varchar(20)"`
	FirstName  string `gorm:"type:varchar(100);not null"`
	LastName   string `gorm:"type:varchar(100);not null"`
	Suffix     string `gorm:"type:varchar(20)"`
	Title      string `gorm:"type:varchar(100)"`
	Company    string `gorm:"type:varchar(150)"`
	Department string `gorm:"type:varchar(100)"`
	Bio        string `gorm:"type:text"`

	// İletişim Bilgileri
	Email       string `gorm:"type:varchar(100);index;not null"`
	PhoneNumber string `gorm:"type:varchar(30)"`
	Website     string `gorm:"type:varchar(255)"`
	Address     string `gorm:"type:text"`

	// Sosyal Medya Linkleri
	LinkedInURL  string `gorm:"type:varchar(255)"`
	TwitterURL   string `gorm:"type:varchar(255)"`
	GitHubURL    string `gorm:"type:varchar(255)"`
	InstagramURL string `gorm:"type:varchar(255)"`

	// Görsel Öğeler
	ProfilePictureURL string `gorm:"type:varchar(500)"`
	LogoURL           string `gorm:"type:varchar(500)"`
	Theme             string `gorm:"type:varchar(50);default:'classic'"`
	PrimaryColor      string `gorm:"type:varchar(7)"`
	SecondaryColor    string `gorm:"type:varchar(7)"`

	// Ek Ayarlar
	AllowSaveContact bool `gorm:"default:true"` // vCard indirme izni (render SPA tarafında)
}
