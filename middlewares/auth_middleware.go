package middlewares

import (
	"strings"

	"kartvizit.link/models"
	"kartvizit.link/pkg/authz"
	"kartvizit.link/services"
	"kartvizit.link/utils"

	"github.com/gofiber/fiber/v2"
)

// Locals anahtarları; handler'lar istek kimliğini bunlardan okur.
const (
	LocalUserID      = "userID"
	LocalRole        = "role"
	LocalAccountType = "accountType"
)

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": message})
}

// AuthMiddleware Authorization başlığındaki bearer token'ı doğrular,
// kullanıcıyı yükler ve kimlik bilgilerini locals'a koyar.
// Eksik/geçersiz token veya pasif hesap 401 ile reddedilir.
func AuthMiddleware(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return unauthorized(c, "Oturum token'ı eksik.")
	}
	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenStr == authHeader {
		return unauthorized(c, "Authorization başlığı 'Bearer <token>' biçiminde olmalı.")
	}

	claims, err := utils.ParseJWT(tokenStr)
	if err != nil {
		return unauthorized(c, "Oturum token'ı geçersiz veya süresi dolmuş.")
	}

	// Token geçerli olsa bile hesap silinmiş ya da devre dışı olabilir;
	// kullanıcı her istekte yeniden yüklenir.
	authService := services.NewAuthService()
	user, err := authService.GetUserByID(c.UserContext(), claims.UserID)
	if err != nil {
		return unauthorized(c, "Hesap bulunamadı.")
	}
	if !user.IsActive() {
		return unauthorized(c, "Hesap devre dışı.")
	}

	c.Locals(LocalUserID, user.ID)
	c.Locals(LocalRole, user.Role)
	c.Locals(LocalAccountType, user.AccountType)
	return c.Next()
}

// RequesterFromCtx locals'taki kimlik bilgilerini authz.Requester'a çevirir.
func RequesterFromCtx(c *fiber.Ctx) (authz.Requester, bool) {
	userID, ok := c.Locals(LocalUserID).(uint)
	if !ok || userID == 0 {
		return authz.Requester{}, false
	}
	role, _ := c.Locals(LocalRole).(models.Role)
	accountType, _ := c.Locals(LocalAccountType).(models.AccountType)
	return authz.Requester{UserID: userID, Role: role, AccountType: accountType}, true
}

// RequireSuperAdmin sadece super_admin rolüne izin verir.
// AuthMiddleware'den sonra kullanılmalıdır.
func RequireSuperAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(LocalRole).(models.Role)
		if !ok || role != models.RoleSuperAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Bu bölüm için super_admin yetkisi gerekli."})
		}
		return c.Next()
	}
}
