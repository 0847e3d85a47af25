package seeders

import (
	"errors"

	"kartvizit.link/configs"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
	"kartvizit.link/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedSystemUser super_admin rolündeki sistem kullanıcısını oluşturur
// veya parolası değişmişse günceller. E-posta ve parola ortam
// değişkenlerinden gelir (SYSTEM_USER_EMAIL / SYSTEM_USER_PASSWORD).
func SeedSystemUser(db *gorm.DB) error {
	cfg := configs.Get()

	email := utils.NormalizeEmail(cfg.SystemUserEmail)
	if email == "" {
		configslog.SLog.Warn("SYSTEM_USER_EMAIL boş, sistem kullanıcısı seed edilmeyecek.")
		return nil
	}
	if cfg.SystemUserPassword == "" {
		configslog.SLog.Warn("SYSTEM_USER_PASSWORD boş, sistem kullanıcısı seed edilmeyecek.")
		return nil
	}

	hash, err := utils.HashPassword(cfg.SystemUserPassword)
	if err != nil {
		configslog.Log.Error("Sistem kullanıcısı parolası hashlenemedi", zap.Error(err))
		return err
	}

	var existing models.User
	result := db.Where("email = ?", email).First(&existing)
	if result.Error == nil {
		// Kullanıcı mevcut; parola ortamdan farklıysa güncelle.
		if utils.CheckPassword(existing.PasswordHash, cfg.SystemUserPassword) {
			configslog.SLog.Info("Sistem kullanıcısı zaten güncel, işlem yok.")
			return nil
		}
		updates := map[string]interface{}{
			"password_hash": hash,
			"role":          models.RoleSuperAdmin,
			"status":        models.UserStatusActive,
			"is_verified":   true,
		}
		if err := db.Model(&existing).Updates(updates).Error; err != nil {
			configslog.Log.Error("Sistem kullanıcısı güncellenemedi", zap.Error(err))
			return err
		}
		configslog.SLog.Infof("Sistem kullanıcısı güncellendi (ID: %d).", existing.ID)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		configslog.Log.Error("Sistem kullanıcısı kontrol edilirken veritabanı hatası", zap.Error(result.Error))
		return result.Error
	}

	user := models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         "System",
		AccountType:  models.AccountTypeIndividual,
		Role:         models.RoleSuperAdmin,
		Status:       models.UserStatusActive,
		IsVerified:   true,
	}
	if err := db.Create(&user).Error; err != nil {
		configslog.Log.Error("Sistem kullanıcısı oluşturulamadı", zap.Error(err))
		return err
	}

	configslog.SLog.Infof("Sistem kullanıcısı oluşturuldu (ID: %d).", user.ID)
	return nil
}
