// Package authz yetkilendirme kararlarını transport ve veritabanından
// bağımsız, saf fonksiyonlarla verir. Handler'lar ve servisler HTTP
// detayı bilmeden bu kararları kullanır.
package authz

import "kartvizit.link/models"

// Capability korunan işlem sınıflarıdır.
type Capability string

const (
	CapManageOrganization Capability = "manage_organization"
	CapManageTeam         Capability = "manage_team"
	CapManageCard         Capability = "manage_card"
	CapAdministerUsers    Capability = "administer_users"
)

// Requester istek context'inden türetilen kimlik özetidir.
type Requester struct {
	UserID      uint
	Role        models.Role
	AccountType models.AccountType
}

// Decision izin/ret kararı ve gerekçesidir. Reason loglama içindir,
// kullanıcıya dönen mesaj handler'da seçilir.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow(reason string) Decision { return Decision{Allowed: true, Reason: reason} }
func deny(reason string) Decision  { return Decision{Allowed: false, Reason: reason} }

// IsSuperAdmin global yetkili mi kontrol eder.
func IsSuperAdmin(r Requester) bool {
	return r.Role == models.RoleSuperAdmin
}

// IsAdminOrAbove admin veya super_admin mi kontrol eder.
func IsAdminOrAbove(r Requester) bool {
	return r.Role == models.RoleAdmin || r.Role == models.RoleSuperAdmin
}

// CanManageOrganization organizasyon oluşturma/yönetme ehliyeti.
func CanManageOrganization(r Requester) bool {
	return IsSuperAdmin(r) || r.AccountType == models.AccountTypeOrganization
}

// CanManageTeam takım oluşturma/yönetme ehliyeti.
func CanManageTeam(r Requester) bool {
	return IsSuperAdmin(r) || r.AccountType == models.AccountTypeTeam ||
		r.AccountType == models.AccountTypeOrganization
}

// hasCapability tür/rol bazlı ehliyet kontrolü; sahiplikten bağımsızdır.
func hasCapability(r Requester, cap Capability) bool {
	switch cap {
	case CapManageOrganization:
		return CanManageOrganization(r)
	case CapManageTeam:
		return CanManageTeam(r)
	case CapManageCard:
		return true // Her hesap kendi kartlarını yönetebilir
	case CapAdministerUsers:
		return IsSuperAdmin(r)
	}
	return false
}

// Decide verilen işlem için izin kararı üretir.
// Super admin her zaman yetkilidir. Diğer herkes önce ehliyet (capability),
// sonra sahiplik (ownerID eşleşmesi) kontrolünden geçer.
// ownerID 0 ise sahiplik kontrolü atlanır (örn. create işlemleri).
func Decide(r Requester, ownerID uint, cap Capability) Decision {
	if IsSuperAdmin(r) {
		return allow("super_admin")
	}
	if !hasCapability(r, cap) {
		return deny("hesap türü bu işleme ehliyetli değil: " + string(r.AccountType))
	}
	if ownerID != 0 && ownerID != r.UserID {
		return deny("kaynak başka bir hesaba ait")
	}
	return allow("sahip")
}
