package models

import "testing"

func TestEnumValidation(t *testing.T) {
	for _, at := range []AccountType{AccountTypeIndividual, AccountTypeTeam, AccountTypeOrganization} {
		if !at.IsValid() {
			t.Errorf("hesap türü %q geçerli olmalı", at)
		}
	}
	if AccountType("banana").IsValid() {
		t.Error("tanımsız hesap türü geçersiz olmalı")
	}

	for _, r := range []Role{RoleUser, RoleAdmin, RoleSuperAdmin} {
		if !r.IsValid() {
			t.Errorf("rol %q geçerli olmalı", r)
		}
	}
	if Role("kral").IsValid() {
		t.Error("tanımsız rol geçersiz olmalı")
	}
}

func TestToPublicHidesSecrets(t *testing.T) {
	user := User{
		Email:             "gizli@example.com",
		PasswordHash:      "$2a$10$abc",
		Name:              "Gizli",
		AccountType:       AccountTypeIndividual,
		Role:              RoleUser,
		Status:            UserStatusActive,
		VerificationToken: "ver-token",
		ResetToken:        "reset-token",
	}
	user.ID = 5

	pub := user.ToPublic()
	if pub.ID != 5 || pub.Email != "gizli@example.com" {
		t.Errorf("temel alanlar taşınmalı: %+v", pub)
	}
	// PublicUser tipinde hash/token alanı hiç yoktur; burada sadece
	// görünür alanların doğru geldiğini doğruluyoruz.
	if pub.Name != "Gizli" || pub.Role != RoleUser {
		t.Errorf("görünür alanlar yanlış: %+v", pub)
	}
}

func TestUserStateHelpers(t *testing.T) {
	active := User{Status: UserStatusActive}
	disabled := User{Status: UserStatusDisabled}
	if !active.IsActive() || disabled.IsActive() {
		t.Error("IsActive durum alanını takip etmeli")
	}

	withPassword := User{PasswordHash: "x"}
	oauthOnly := User{}
	if !withPassword.HasPassword() || oauthOnly.HasPassword() {
		t.Error("HasPassword hash varlığını takip etmeli")
	}
}
