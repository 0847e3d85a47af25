package queryparams

// Sayfalama varsayılanları ve sınırları.
const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
	DefaultOrderBy = "desc"
)

// ListParams listeleme uçlarının ortak query parametreleridir.
// API sözleşmesi gereği sayfa parametresi "page", boyut "limit",
// arama ise "search" adıyla gelir.
type ListParams struct {
	Page    int    `query:"page"`
	PerPage int    `query:"limit"`
	SortBy  string `query:"sort_by"`
	OrderBy string `query:"order_by"`
	Search  string `query:"search"`
	Status  string `query:"status"`
}

// Validate sayfa ve boyut sınırlarını uygular.
func (p *ListParams) Validate() {
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.PerPage <= 0 || p.PerPage > MaxPerPage {
		p.PerPage = DefaultPerPage
	}
	if p.OrderBy != "asc" && p.OrderBy != "desc" {
		p.OrderBy = DefaultOrderBy
	}
}

// CalculateOffset SQL OFFSET değerini hesaplar.
func (p *ListParams) CalculateOffset() int {
	page := p.Page
	if page <= 0 {
		page = DefaultPage
	}
	perPage := p.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return (page - 1) * perPage
}

// DefaultListParams verilen sıralama kolonu ile varsayılan parametreleri üretir.
func DefaultListParams(sortBy string) ListParams {
	return ListParams{
		Page:    DefaultPage,
		PerPage: DefaultPerPage,
		SortBy:  sortBy,
		OrderBy: DefaultOrderBy,
	}
}

// PaginationMeta list yanıtlarındaki "pagination" bloğudur.
type PaginationMeta struct {
	Page    int   `json:"page"`
	PerPage int   `json:"limit"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
}

// PaginatedResult veri + sayfalama bilgisini birlikte taşır.
type PaginatedResult struct {
	Data interface{}    `json:"data"`
	Meta PaginationMeta `json:"pagination"`
}

// CalculateTotalPages toplam sayfa sayısını hesaplar.
func CalculateTotalPages(totalItems int64, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	pages := int(totalItems / int64(perPage))
	if totalItems%int64(perPage) != 0 {
		pages++
	}
	return pages
}

// NewPaginatedResult yaygın kullanılan kurucu.
func NewPaginatedResult(data interface{}, params ListParams, totalItems int64) *PaginatedResult {
	return &PaginatedResult{
		Data: data,
		Meta: PaginationMeta{
			Page:    params.Page,
			PerPage: params.PerPage,
			Total:   totalItems,
			Pages:   CalculateTotalPages(totalItems, params.PerPage),
		},
	}
}
