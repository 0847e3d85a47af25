package models

import "testing"

func TestCardIsVisible(t *testing.T) {
	tests := []struct {
		name string
		card Card
		want bool
	}{
		{"public ve aktif", Card{IsPublic: true, Status: CardStatusActive}, true},
		{"public ama arşivli", Card{IsPublic: true, Status: CardStatusArchived}, false},
		{"aktif ama gizli", Card{IsPublic: false, Status: CardStatusActive}, false},
		{"gizli ve arşivli", Card{IsPublic: false, Status: CardStatusArchived}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.card.IsVisible(); got != tt.want {
				t.Errorf("IsVisible() = %v, beklenen %v", got, tt.want)
			}
		})
	}
}

func TestCardStatusIsValid(t *testing.T) {
	for _, s := range []CardStatus{CardStatusActive, CardStatusArchived} {
		if !s.IsValid() {
			t.Errorf("durum %q geçerli olmalı", s)
		}
	}
	for _, s := range []CardStatus{"", "hidden", "Active"} {
		if s.IsValid() {
			t.Errorf("durum %q geçersiz olmalı", s)
		}
	}
}

func TestValidCardTheme(t *testing.T) {
	for _, theme := range []string{"", CardThemeClassic, CardThemeModern, CardThemeMinimal, CardThemeGradient} {
		if !ValidCardTheme(theme) {
			t.Errorf("tema %q geçerli olmalı", theme)
		}
	}
	if ValidCardTheme("neon") {
		t.Error("tanımsız tema geçersiz olmalı")
	}
}
