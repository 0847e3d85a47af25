package turkishsearch

import "strings"

// Türkçe büyük/küçük harf dönüşümü SQL tarafında LOWER ile her zaman doğru
// çalışmadığı için arama değerini uygulama tarafında katlıyoruz ve
// kolon tarafında da aynı katlamayı uygulayan bir fragment üretiyoruz.

var foldReplacer = strings.NewReplacer(
	"İ", "i", "I", "ı",
	"Ş", "ş", "Ğ", "ğ",
	"Ü", "ü", "Ö", "ö", "Ç", "ç",
)

// Fold arama değerini küçük harfe katlar (Türkçe karakterler dahil).
func Fold(s string) string {
	return strings.ToLower(foldReplacer.Replace(s))
}

// SQLFilter verilen kolon için case-insensitive substring araması yapan
// bir WHERE fragment'ı ve argümanlarını döndürür.
// Örn: ("card_details.first_name", "Ali") -> "LOWER(card_details.first_name) LIKE ?", ["%ali%"]
func SQLFilter(column, value string) (string, []interface{}) {
	pattern := "%" + Fold(strings.TrimSpace(value)) + "%"
	return "LOWER(" + column + ") LIKE ?", []interface{}{pattern}
}
