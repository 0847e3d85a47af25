package handlers // handlers/auth paketi

import (
	"errors"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/middlewares"
	"kartvizit.link/models"
	"kartvizit.link/pkg/renderer"
	"kartvizit.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler kimlik ve oturum uçlarını yönetir.
type AuthHandler struct {
	authService services.IAuthService
	userService services.IUserService
}

// NewAuthHandler yeni bir AuthHandler örneği oluşturur.
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{
		authService: services.NewAuthService(),
		userService: services.NewUserService(),
	}
}

type signupRequest struct {
	Email       string             `json:"email"`
	Password    string             `json:"password"`
	Name        string             `json:"name"`
	AccountType models.AccountType `json:"account_type"`
}

// Signup POST /signup
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return renderer.Error(c, fiber.StatusBadRequest, "Geçersiz istek gövdesi.")
	}

	result, err := h.authService.Register(c.UserContext(), services.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		Name:        req.Name,
		AccountType: req.AccountType,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken),
			errors.Is(err, services.ErrPasswordTooShort),
			errors.Is(err, services.ErrInvalidAccountType),
			errors.Is(err, services.ErrAuthInvalidInput):
			return renderer.Error(c, fiber.StatusBadRequest, err.Error())
		}
		configslog.Log.Error("Signup error", zap.Error(err))
		return renderer.Error(c, fiber.StatusInternalServerError, "Kayıt sırasında bir hata oluştu.")
	}
	return renderer.JSON(c, fiber.StatusCreated, result)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login POST /login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return renderer.Error(c, fiber.StatusBadRequest, "Geçersiz istek gövdesi.")
	}

	result, err := h.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		// Hangi adımda başarısız olduğu dışarı sızdırılmaz.
		return renderer.Error(c, fiber.StatusUnauthorized, "Giriş başarısız.")
	}
	return renderer.JSON(c, fiber.StatusOK, result)
}

type googleRequest struct {
	GoogleID string `json:"google_id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
}

// Google POST /google, doğrulanmış Google kimliğini yerel hesaba bağlar.
func (h *AuthHandler) Google(c *fiber.Ctx) error {
	var req googleRequest
	if err := c.BodyParser(&req); err != nil {
		return renderer.Error(c, fiber.StatusBadRequest, "Geçersiz istek gövdesi.")
	}

	result, err := h.authService.GoogleExchange(c.UserContext(), req.GoogleID, req.Email, req.Name)
	if err != nil {
		if errors.Is(err, services.ErrAccountDisabled) {
			return renderer.Error(c, fiber.StatusUnauthorized, "Hesap devre dışı.")
		}
		if errors.Is(err, services.ErrAuthInvalidInput) {
			return renderer.Error(c, fiber.StatusBadRequest, err.Error())
		}
		configslog.Log.Error("Google exchange error", zap.Error(err))
		return renderer.Error(c, fiber.StatusInternalServerError, "Giriş sırasında bir hata oluştu.")
	}
	return renderer.JSON(c, fiber.StatusOK, result)
}

// VerifyEmail GET /verify-email/:token
func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	token := c.Params("token")
	if err := h.authService.VerifyEmail(c.UserContext(), token); err != nil {
		return renderer.Error(c, fiber.StatusBadRequest, "Doğrulama bağlantısı geçersiz veya süresi dolmuş.")
	}
	return renderer.Message(c, fiber.StatusOK, "E-posta doğrulandı.")
}

type emailRequest struct {
	Email string `json:"email"`
}

// ResendVerification POST /resend-verification
// Hesap var mı, zaten doğrulanmış mı yanıttan anlaşılmaz.
func (h *AuthHandler) ResendVerification(c *fiber.Ctx) error {
	var req emailRequest
	if err := c.BodyParser(&req); err != nil {
		return renderer.Error(c, fiber.StatusBadRequest, "Geçersiz istek gövdesi.")
	}

	result, err := h.authService.ResendVerification(c.UserContext(), req.Email)
	if err != nil {
		configslog.Log.Error("ResendVerification error", zap.Error(err))
		return renderer.Error(c, fiber.StatusInternalServerError, "İstek işlenirken bir hata oluştu.")
	}
	return renderer.JSON(c, fiber.StatusOK, result)
}

// ForgotPassword POST /forgot-password
// Hesap var mı yok mu yanıttan anlaşılmaz.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req emailRequest
	if err := c.BodyParser(&req); err != nil {
		return renderer.Error(c, fiber.StatusBadRequest, "Geçersiz istek gövdesi.")
	}

	result, err := h.authService.RequestPasswordReset(c.UserContext(), req.Email)
	if err != nil {
		configslog.Log.Error("ForgotPassword error", zap.Error(err))
		return renderer.Error(c, fiber.StatusInternalServerError, "İstek işlenirken bir hata oluştu.")
	}
	return renderer.JSON(c, fiber.StatusOK, result)
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// ResetPassword POST /reset-password
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return renderer.Error(c, fiber.StatusBadRequest, "Geçersiz istek gövdesi.")
	}

	if err := h.authService.ResetPassword(c.UserContext(), req.Token, req.Password); err != nil {
		if errors.Is(err, services.ErrPasswordTooShort) {
			return renderer.Error(c, fiber.StatusBadRequest, err.Error())
		}
		return renderer.Error(c, fiber.StatusBadRequest, "Sıfırlama bağlantısı geçersiz veya süresi dolmuş.")
	}
	return renderer.Message(c, fiber.StatusOK, "Parola güncellendi.")
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword PUT /change-password (kimlik doğrulamalı)
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	requester, ok := middlewares.RequesterFromCtx(c)
	if !ok {
		return renderer.Error(c, fiber.StatusUnauthorized, "Oturum bilgileri geçersiz.")
	}
	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return renderer.Error(c, fiber.StatusBadRequest, "Geçersiz istek gövdesi.")
	}

	err := h.authService.ChangePassword(c.UserContext(), requester.UserID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, services.ErrPasswordMismatch) {
			return renderer.Error(c, fiber.StatusUnauthorized, err.Error())
		}
		if errors.Is(err, services.ErrPasswordTooShort) {
			return renderer.Error(c, fiber.StatusBadRequest, err.Error())
		}
		configslog.Log.Error("ChangePassword error", zap.Uint("userID", requester.UserID), zap.Error(err))
		return renderer.Error(c, fiber.StatusInternalServerError, "Parola değiştirilemedi.")
	}
	return renderer.Message(c, fiber.StatusOK, "Parola güncellendi.")
}

type setPasswordRequest struct {
	Password string `json:"password"`
}

// SetPassword POST /set-password, sadece parolasız (OAuth-only) hesaplar için.
func (h *AuthHandler) SetPassword(c *fiber.Ctx) error {
	requester, ok := middlewares.RequesterFromCtx(c)
	if !ok {
		return renderer.Error(c, fiber.StatusUnauthorized, "Oturum bilgileri geçersiz.")
	}
	var req setPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return renderer.Error(c, fiber.StatusBadRequest, "Geçersiz istek gövdesi.")
	}

	err := h.authService.SetPassword(c.UserContext(), requester.UserID, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrPasswordAlreadySet) || errors.Is(err, services.ErrPasswordTooShort) {
			return renderer.Error(c, fiber.StatusBadRequest, err.Error())
		}
		configslog.Log.Error("SetPassword error", zap.Uint("userID", requester.UserID), zap.Error(err))
		return renderer.Error(c, fiber.StatusInternalServerError, "Parola tanımlanamadı.")
	}
	return renderer.Message(c, fiber.StatusOK, "Parola tanımlandı.")
}

// Me GET /me, oturum sahibinin güvenli görünümü.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	requester, ok := middlewares.RequesterFromCtx(c)
	if !ok {
		return renderer.Error(c, fiber.StatusUnauthorized, "Oturum bilgileri geçersiz.")
	}
	user, err := h.userService.GetProfile(c.UserContext(), requester.UserID)
	if err != nil {
		return renderer.Error(c, fiber.StatusNotFound, "Hesap bulunamadı.")
	}
	return renderer.JSON(c, fiber.StatusOK, user.ToPublic())
}

// UpdateProfile PUT /profile
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	requester, ok := middlewares.RequesterFromCtx(c)
	if !ok {
		return renderer.Error(c, fiber.StatusUnauthorized, "Oturum bilgileri geçersiz.")
	}
	var input services.ProfileUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return renderer.Error(c, fiber.StatusBadRequest, "Geçersiz istek gövdesi.")
	}

	user, err := h.userService.UpdateProfile(c.UserContext(), requester.UserID, input)
	if err != nil {
		if errors.Is(err, services.ErrUsrInvalidInput) {
			return renderer.Error(c, fiber.StatusBadRequest, err.Error())
		}
		configslog.Log.Error("UpdateProfile error", zap.Uint("userID", requester.UserID), zap.Error(err))
		return renderer.Error(c, fiber.StatusInternalServerError, "Profil güncellenemedi.")
	}
	return renderer.JSON(c, fiber.StatusOK, user.ToPublic())
}
