package queryparams

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		in          ListParams
		wantPage    int
		wantPerPage int
		wantOrder   string
	}{
		{"sıfır değerler varsayılanlara düşer", ListParams{}, DefaultPage, DefaultPerPage, "desc"},
		{"negatif sayfa düzeltilir", ListParams{Page: -3, PerPage: 10, OrderBy: "asc"}, DefaultPage, 10, "asc"},
		{"limit tavanı uygulanır", ListParams{Page: 2, PerPage: 500}, 2, DefaultPerPage, "desc"},
		{"bozuk sıralama yönü düzeltilir", ListParams{Page: 1, PerPage: 5, OrderBy: "sideways"}, 1, 5, "desc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			p.Validate()
			if p.Page != tt.wantPage || p.PerPage != tt.wantPerPage || p.OrderBy != tt.wantOrder {
				t.Errorf("Validate() = %+v, beklenen page=%d limit=%d order=%s", p, tt.wantPage, tt.wantPerPage, tt.wantOrder)
			}
		})
	}
}

func TestCalculateOffset(t *testing.T) {
	p := ListParams{Page: 3, PerPage: 20}
	if got := p.CalculateOffset(); got != 40 {
		t.Errorf("CalculateOffset() = %d, beklenen 40", got)
	}
	zero := ListParams{}
	if got := zero.CalculateOffset(); got != 0 {
		t.Errorf("boş parametrelerde offset 0 olmalı, gelen %d", got)
	}
}

func TestCalculateTotalPages(t *testing.T) {
	tests := []struct {
		total   int64
		perPage int
		want    int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{100, 0, 0},
	}
	for _, tt := range tests {
		if got := CalculateTotalPages(tt.total, tt.perPage); got != tt.want {
			t.Errorf("CalculateTotalPages(%d, %d) = %d, beklenen %d", tt.total, tt.perPage, got, tt.want)
		}
	}
}

func TestNewPaginatedResult(t *testing.T) {
	params := ListParams{Page: 2, PerPage: 10}
	result := NewPaginatedResult([]string{"a", "b"}, params, 25)
	if result.Meta.Page != 2 || result.Meta.PerPage != 10 {
		t.Errorf("meta parametreleri taşımalı: %+v", result.Meta)
	}
	if result.Meta.Total != 25 || result.Meta.Pages != 3 {
		t.Errorf("toplamlar yanlış: %+v", result.Meta)
	}
}
