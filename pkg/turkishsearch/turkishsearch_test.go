package turkishsearch

import "testing"

func TestFold(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"ISTANBUL", "ıstanbul"},
		{"İstanbul", "istanbul"},
		{"ŞİŞLİ", "şişli"},
		{"ÇAĞRI ÖZGÜR", "çağrı özgür"},
		{"plain ascii", "plain ascii"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Fold(tt.in); got != tt.want {
			t.Errorf("Fold(%q) = %q, beklenen %q", tt.in, got, tt.want)
		}
	}
}

func TestSQLFilter(t *testing.T) {
	clause, args := SQLFilter("users.name", "  Ayşe ")
	if clause != "LOWER(users.name) LIKE ?" {
		t.Errorf("beklenmeyen fragment: %q", clause)
	}
	if len(args) != 1 || args[0] != "%ayşe%" {
		t.Errorf("beklenmeyen argümanlar: %v", args)
	}
}
