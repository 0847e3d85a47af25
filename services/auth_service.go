// services/auth_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kartvizit.link/configs"
	"kartvizit.link/configs/configsdatabase"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
	"kartvizit.link/repositories"
	"kartvizit.link/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuthServiceError özel servis hataları
type AuthServiceError string

func (e AuthServiceError) Error() string { return string(e) }

const (
	ErrAuthInvalidInput     AuthServiceError = "geçersiz girdi verisi"
	ErrEmailTaken           AuthServiceError = "bu e-posta adresi zaten kayıtlı"
	ErrPasswordTooShort     AuthServiceError = "parola en az 6 karakter olmalı"
	ErrInvalidAccountType   AuthServiceError = "geçersiz hesap türü"
	ErrInvalidCredentials   AuthServiceError = "e-posta veya parola hatalı"
	ErrAccountDisabled      AuthServiceError = "hesap devre dışı"
	ErrPasswordLoginBlocked AuthServiceError = "bu hesap parola ile giriş yapamaz"
	ErrTokenInvalid         AuthServiceError = "token geçersiz veya süresi dolmuş"
	ErrUserNotFound         AuthServiceError = "kullanıcı bulunamadı"
	ErrPasswordMismatch     AuthServiceError = "mevcut parola hatalı"
	ErrPasswordAlreadySet   AuthServiceError = "hesapta zaten parola tanımlı"
)

// Token süreleri.
const (
	verificationTokenTTL = 24 * time.Hour
	resetTokenTTL        = 1 * time.Hour
	securityTokenLength  = 48
)

// RegisterInput kayıt isteğinin servis girdisidir.
type RegisterInput struct {
	Email       string
	Password    string
	Name        string
	AccountType models.AccountType
}

// AuthResult oturum token'ı ve güvenli kullanıcı görünümünü birlikte taşır.
type AuthResult struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// ResetRequestResult generic mesaj + (sadece production dışı) token içerir.
type ResetRequestResult struct {
	Message string `json:"message"`
	// DebugResetToken e-posta entegrasyonu olmayan geliştirme ortamları için
	// bir kolaylıktır; production'da asla doldurulmaz.
	DebugResetToken string `json:"debug_reset_token,omitempty"`
}

// VerificationRequestResult generic mesaj + (sadece production dışı) token içerir.
type VerificationRequestResult struct {
	Message string `json:"message"`
	// DebugVerificationToken e-posta entegrasyonu olmayan geliştirme
	// ortamları için bir kolaylıktır; production'da asla doldurulmaz.
	DebugVerificationToken string `json:"debug_verification_token,omitempty"`
}

// IAuthService kimlik ve oturum işlemleri için arayüz.
type IAuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	GoogleExchange(ctx context.Context, googleID, email, name string) (*AuthResult, error)
	VerifyEmail(ctx context.Context, token string) error
	ResendVerification(ctx context.Context, email string) (*VerificationRequestResult, error)
	RequestPasswordReset(ctx context.Context, email string) (*ResetRequestResult, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
	ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error
	SetPassword(ctx context.Context, userID uint, newPassword string) error
	GetUserByID(ctx context.Context, userID uint) (*models.User, error)
}

// AuthService IAuthService arayüzünü uygular.
type AuthService struct {
	userRepo repositories.IUserRepository
	db       *gorm.DB
}

// NewAuthService yeni bir AuthService örneği oluşturur.
func NewAuthService() IAuthService {
	return NewAuthServiceWithDB(configsdatabase.GetDB())
}

// NewAuthServiceWithDB verilen bağlantı üzerinde çalışan servis oluşturur (testler için).
func NewAuthServiceWithDB(db *gorm.DB) IAuthService {
	return &AuthService{
		userRepo: repositories.NewUserRepositoryTx(db),
		db:       db,
	}
}

// Register yeni bir hesap oluşturur ve oturum token'ı döndürür.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := utils.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" || input.Name == "" {
		return nil, fmt.Errorf("%w: e-posta, parola ve isim zorunludur", ErrAuthInvalidInput)
	}
	if !utils.IsValidEmail(email) {
		return nil, fmt.Errorf("%w: e-posta biçimi geçersiz", ErrAuthInvalidInput)
	}
	if len(input.Password) < utils.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	accountType := input.AccountType
	if accountType == "" {
		accountType = models.AccountTypeIndividual
	}
	if !accountType.IsValid() {
		return nil, ErrInvalidAccountType
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		configslog.Log.Error("Register: parola hashlenemedi", zap.Error(err))
		return nil, err
	}
	verificationToken, err := utils.GenerateSecureRandomString(securityTokenLength)
	if err != nil {
		return nil, err
	}
	verifyExpiry := time.Now().Add(verificationTokenTTL)

	user := models.User{
		Email:                 email,
		PasswordHash:          hash,
		Name:                  input.Name,
		AccountType:           accountType,
		Role:                  models.RoleUser,
		Status:                models.UserStatusActive,
		VerificationToken:     verificationToken,
		VerificationExpiresAt: &verifyExpiry,
	}
	if err := s.userRepo.Create(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Unique index yarışında da ön kontrolle aynı cevap.
			return nil, ErrEmailTaken
		}
		configslog.Log.Error("Register: kullanıcı oluşturulamadı", zap.String("email", email), zap.Error(err))
		return nil, err
	}

	// Doğrulama e-postası gönderimi harici bir entegrasyondur; hesap
	// doğrulama beklenmeden kullanılabilir durumdadır.
	token, err := utils.GenerateJWT(&user)
	if err != nil {
		configslog.Log.Error("Register: JWT üretilemedi", zap.Uint("userID", user.ID), zap.Error(err))
		return nil, err
	}

	configslog.SLog.Infof("Yeni hesap oluşturuldu: ID %d (%s)", user.ID, user.AccountType)
	return &AuthResult{Token: token, User: user.ToPublic()}, nil
}

// Login e-posta/parola ile oturum açar.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive() {
		// Pasif hesapta LastLoginAt güncellenmez, token üretilmez.
		return nil, ErrAccountDisabled
	}
	if !user.HasPassword() {
		// OAuth-only hesap parola ile giriş deniyor.
		return nil, ErrPasswordLoginBlocked
	}
	if !utils.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Save(models.ContextWithUserID(ctx, user.ID), user); err != nil {
		configslog.Log.Warn("Login: LastLoginAt güncellenemedi", zap.Uint("userID", user.ID), zap.Error(err))
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user.ToPublic()}, nil
}

// GoogleExchange doğrulanmış Google kimliğini yerel hesaba bağlar.
// Sıra: önce GoogleID ile, sonra e-posta ile eşleştir, yoksa yeni hesap aç.
// Token doğrulamanın kendisi upstream'in işidir; buraya doğrulanmış
// subject ve e-posta gelir.
func (s *AuthService) GoogleExchange(ctx context.Context, googleID, email, name string) (*AuthResult, error) {
	if googleID == "" || email == "" {
		return nil, fmt.Errorf("%w: google kimliği ve e-posta zorunludur", ErrAuthInvalidInput)
	}
	email = utils.NormalizeEmail(email)

	user, err := s.userRepo.FindByGoogleID(ctx, googleID)
	if err != nil {
		// GoogleID ile bulunamadı; e-posta ile mevcut hesaba bağlamayı dene.
		user, err = s.userRepo.FindByEmail(ctx, email)
		if err == nil {
			user.GoogleID = &googleID
		} else {
			// Yeni OAuth-only hesap.
			user = &models.User{
				Email:       email,
				Name:        name,
				AccountType: models.AccountTypeIndividual,
				Role:        models.RoleUser,
				Status:      models.UserStatusActive,
				GoogleID:    &googleID,
			}
			if createErr := s.userRepo.Create(ctx, user); createErr != nil {
				configslog.Log.Error("GoogleExchange: kullanıcı oluşturulamadı", zap.Error(createErr))
				return nil, createErr
			}
			configslog.SLog.Infof("Google ile yeni hesap oluşturuldu: ID %d", user.ID)
		}
	}

	if !user.IsActive() {
		return nil, ErrAccountDisabled
	}

	now := time.Now()
	user.IsVerified = true // Google e-postayı zaten doğruladı
	user.LastLoginAt = &now
	if err := s.userRepo.Save(models.ContextWithUserID(ctx, user.ID), user); err != nil {
		configslog.Log.Error("GoogleExchange: kullanıcı güncellenemedi", zap.Uint("userID", user.ID), zap.Error(err))
		return nil, err
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user.ToPublic()}, nil
}

// VerifyEmail doğrulama token'ını işler.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	user, err := s.userRepo.FindByVerificationToken(ctx, token)
	if err != nil {
		return ErrTokenInvalid
	}
	if user.VerificationExpiresAt == nil || time.Now().After(*user.VerificationExpiresAt) {
		return ErrTokenInvalid
	}

	user.IsVerified = true
	user.VerificationToken = ""
	user.VerificationExpiresAt = nil
	if err := s.userRepo.Save(models.ContextWithUserID(ctx, user.ID), user); err != nil {
		configslog.Log.Error("VerifyEmail: kullanıcı güncellenemedi", zap.Uint("userID", user.ID), zap.Error(err))
		return err
	}
	return nil
}

// ResendVerification doğrulama token'ını yeniler. Hesap var mı, zaten
// doğrulanmış mı yanıttan anlaşılmaz; mesaj her durumda aynıdır.
func (s *AuthService) ResendVerification(ctx context.Context, email string) (*VerificationRequestResult, error) {
	const genericMessage = "Eğer bu e-posta kayıtlı ve doğrulanmamışsa, yeni bir doğrulama bağlantısı gönderildi."
	result := &VerificationRequestResult{Message: genericMessage}

	user, err := s.userRepo.FindByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil || user.IsVerified {
		// Hesap enumerasyonunu engellemek için aynı cevap.
		return result, nil
	}

	verificationToken, err := utils.GenerateSecureRandomString(securityTokenLength)
	if err != nil {
		return nil, err
	}
	expiry := time.Now().Add(verificationTokenTTL)
	user.VerificationToken = verificationToken
	user.VerificationExpiresAt = &expiry
	if err := s.userRepo.Save(models.ContextWithUserID(ctx, user.ID), user); err != nil {
		configslog.Log.Error("ResendVerification: token kaydedilemedi", zap.Uint("userID", user.ID), zap.Error(err))
		return nil, err
	}

	if !configs.IsProduction() {
		result.DebugVerificationToken = verificationToken
	}
	return result, nil
}

// RequestPasswordReset 1 saat geçerli bir sıfırlama token'ı üretir.
// Hesap var mı yok mu yanıttan anlaşılmaz; mesaj her durumda aynıdır.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (*ResetRequestResult, error) {
	const genericMessage = "Eğer bu e-posta kayıtlıysa, sıfırlama bağlantısı gönderildi."
	result := &ResetRequestResult{Message: genericMessage}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		// Hesap enumerasyonunu engellemek için aynı cevap.
		return result, nil
	}

	resetToken, err := utils.GenerateSecureRandomString(securityTokenLength)
	if err != nil {
		return nil, err
	}
	expiry := time.Now().Add(resetTokenTTL)
	user.ResetToken = resetToken
	user.ResetExpiresAt = &expiry
	if err := s.userRepo.Save(models.ContextWithUserID(ctx, user.ID), user); err != nil {
		configslog.Log.Error("RequestPasswordReset: token kaydedilemedi", zap.Uint("userID", user.ID), zap.Error(err))
		return nil, err
	}

	if !configs.IsProduction() {
		// Geliştirme kolaylığı: e-posta entegrasyonu olmadan akışın test
		// edilebilmesi için token yanıtta döner. Production'da asla.
		result.DebugResetToken = resetToken
	}
	return result, nil
}

// ResetPassword token ile yeni parola belirler ve token'ı geçersiz kılar.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < utils.MinPasswordLength {
		return ErrPasswordTooShort
	}
	user, err := s.userRepo.FindByResetToken(ctx, token)
	if err != nil {
		return ErrTokenInvalid
	}
	if user.ResetExpiresAt == nil || time.Now().After(*user.ResetExpiresAt) {
		return ErrTokenInvalid
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.ResetToken = ""
	user.ResetExpiresAt = nil
	if err := s.userRepo.Save(models.ContextWithUserID(ctx, user.ID), user); err != nil {
		configslog.Log.Error("ResetPassword: parola kaydedilemedi", zap.Uint("userID", user.ID), zap.Error(err))
		return err
	}
	configslog.SLog.Infof("Parola sıfırlandı: kullanıcı %d", user.ID)
	return nil
}

// ChangePassword mevcut parolayı doğrulayarak yenisini yazar.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	if len(newPassword) < utils.MinPasswordLength {
		return ErrPasswordTooShort
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return ErrUserNotFound
	}
	if !user.HasPassword() || !utils.CheckPassword(user.PasswordHash, currentPassword) {
		return ErrPasswordMismatch
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.userRepo.Save(models.ContextWithUserID(ctx, userID), user)
}

// SetPassword sadece henüz parolası olmayan (OAuth-only) hesaplar içindir.
func (s *AuthService) SetPassword(ctx context.Context, userID uint, newPassword string) error {
	if len(newPassword) < utils.MinPasswordLength {
		return ErrPasswordTooShort
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return ErrUserNotFound
	}
	if user.HasPassword() {
		return ErrPasswordAlreadySet
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.userRepo.Save(models.ContextWithUserID(ctx, userID), user)
}

// GetUserByID oturum doğrulaması için kullanıcıyı yükler.
func (s *AuthService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

var _ IAuthService = (*AuthService)(nil)
