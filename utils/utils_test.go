package utils

import (
	"strings"
	"testing"

	"kartvizit.link/models"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct{ in, want string }{
		{"  Ali@Example.COM  ", "ali@example.com"},
		{"ayse@example.com", "ayse@example.com"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeEmail(tt.in); got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, beklenen %q", tt.in, got, tt.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@b.com", "ali.veli@mail.example.org"}
	invalid := []string{"", "plain", "@example.com", "ali@", "ali@localhost"}
	for _, e := range valid {
		if !IsValidEmail(e) {
			t.Errorf("IsValidEmail(%q) geçerli olmalı", e)
		}
	}
	for _, e := range invalid {
		if IsValidEmail(e) {
			t.Errorf("IsValidEmail(%q) geçersiz olmalı", e)
		}
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("gizli123")
	if err != nil {
		t.Fatalf("HashPassword başarısız: %v", err)
	}
	if hash == "gizli123" {
		t.Fatal("parola düz metin saklanmamalı")
	}
	if !CheckPassword(hash, "gizli123") {
		t.Error("doğru parola kabul edilmeli")
	}
	if CheckPassword(hash, "yanlis") {
		t.Error("yanlış parola reddedilmeli")
	}
	if CheckPassword("", "gizli123") {
		t.Error("boş hash hiçbir parolayı kabul etmemeli")
	}
}

func TestGenerateSecureRandomString(t *testing.T) {
	s, err := GenerateSecureRandomString(20)
	if err != nil {
		t.Fatalf("üretim başarısız: %v", err)
	}
	if len(s) != 20 {
		t.Errorf("uzunluk 20 olmalı, gelen %d", len(s))
	}
	for _, r := range s {
		if !strings.ContainsRune(keyAlphabet, r) {
			t.Errorf("alfabe dışı karakter: %q", r)
		}
	}

	other, err := GenerateSecureRandomString(20)
	if err != nil {
		t.Fatalf("üretim başarısız: %v", err)
	}
	if s == other {
		t.Error("ardışık anahtarlar aynı olmamalı")
	}

	short, err := GenerateSecureRandomString(0)
	if err != nil {
		t.Fatalf("üretim başarısız: %v", err)
	}
	if len(short) != 20 {
		t.Errorf("geçersiz uzunluk varsayılana düşmeli, gelen %d", len(short))
	}
}

func TestJWTRoundTrip(t *testing.T) {
	user := &models.User{
		Email:       "jwt@example.com",
		Role:        models.RoleAdmin,
		AccountType: models.AccountTypeTeam,
	}
	user.ID = 42

	token, err := GenerateJWT(user)
	if err != nil {
		t.Fatalf("GenerateJWT başarısız: %v", err)
	}

	claims, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("ParseJWT başarısız: %v", err)
	}
	if claims.UserID != 42 || claims.Role != models.RoleAdmin || claims.AccountType != models.AccountTypeTeam {
		t.Errorf("claim'ler kullanıcıyı taşımalı: %+v", claims)
	}

	if _, err := ParseJWT("bozuk.token.degeri"); err == nil {
		t.Error("bozuk token reddedilmeli")
	}
	if _, err := ParseJWT(token + "x"); err == nil {
		t.Error("imzası oynanmış token reddedilmeli")
	}
}
