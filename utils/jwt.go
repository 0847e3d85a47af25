package utils

import (
	"errors"
	"time"

	"kartvizit.link/configs"
	"kartvizit.link/models"

	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims oturum token'ının içeriğidir.
type JWTClaims struct {
	UserID      uint               `json:"user_id"`
	Role        models.Role        `json:"role"`
	AccountType models.AccountType `json:"account_type"`
	jwt.RegisteredClaims
}

var ErrInvalidToken = errors.New("geçersiz veya süresi dolmuş token")

// GenerateJWT kullanıcı için imzalı oturum token'ı üretir (varsayılan 7 gün).
func GenerateJWT(user *models.User) (string, error) {
	cfg := configs.Get()
	now := time.Now()
	claims := JWTClaims{
		UserID:      user.ID,
		Role:        user.Role,
		AccountType: user.AccountType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.JWTLifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ParseJWT token'ı doğrular ve claim'leri döndürür.
func ParseJWT(tokenStr string) (*JWTClaims, error) {
	cfg := configs.Get()
	token, err := jwt.ParseWithClaims(tokenStr, &JWTClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*JWTClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
