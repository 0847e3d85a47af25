package utils

import "strings"

// NormalizeEmail e-postayı karşılaştırma ve saklama için normalize eder.
// E-posta benzersizliği case-insensitive'dir; kayıtlar küçük harfle tutulur.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsValidEmail kaba bir biçim kontrolü yapar; gerçek doğrulama
// doğrulama e-postası akışının işidir.
func IsValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	return strings.Contains(email[at+1:], ".")
}
