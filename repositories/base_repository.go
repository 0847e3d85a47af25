package repositories

import (
	"context"
	"errors"
	"strings"

	"kartvizit.link/pkg/queryparams"

	"gorm.io/gorm"
)

// ErrNotFound repository katmanının ortak "kayıt yok" hatasıdır.
// Servisler gorm.ErrRecordNotFound yerine bunu görür.
var ErrNotFound = errors.New("kayıt bulunamadı")

// IBaseRepository tüm varlıklar için ortak CRUD işlemlerini tanımlar.
type IBaseRepository[T any] interface {
	Create(ctx context.Context, entity *T) error
	FindByID(ctx context.Context, id uint) (*T, error)
	Update(ctx context.Context, id uint, data map[string]interface{}) error
	Save(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id uint) error
	GetCount(ctx context.Context) (int64, error)
	GetAllPaginated(ctx context.Context, params queryparams.ListParams) ([]T, int64, error)
	SetAllowedSortColumns(columns []string)
}

// BaseRepository IBaseRepository'nin GORM implementasyonudur.
// Her entity repository'si bunu gömerek ortak işlemleri devralır.
type BaseRepository[T any] struct {
	db                 *gorm.DB
	allowedSortColumns map[string]bool
}

// NewBaseRepository verilen bağlantı (veya transaction) üzerinde çalışan
// bir base repository oluşturur.
func NewBaseRepository[T any](db *gorm.DB) *BaseRepository[T] {
	return &BaseRepository[T]{
		db:                 db,
		allowedSortColumns: map[string]bool{"id": true, "created_at": true},
	}
}

// SetAllowedSortColumns sıralanabilir kolonların beyaz listesini değiştirir.
func (r *BaseRepository[T]) SetAllowedSortColumns(columns []string) {
	allowed := make(map[string]bool, len(columns))
	for _, col := range columns {
		allowed[col] = true
	}
	r.allowedSortColumns = allowed
}

func (r *BaseRepository[T]) Create(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

func (r *BaseRepository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var entity T
	err := r.db.WithContext(ctx).First(&entity, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// Update map ile kısmi güncelleme yapar.
func (r *BaseRepository[T]) Update(ctx context.Context, id uint, data map[string]interface{}) error {
	var entity T
	result := r.db.WithContext(ctx).Model(&entity).Where("id = ?", id).Updates(data)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&entity).Where("id = ?", id).Count(&count).Error; err == nil && count == 0 {
			return ErrNotFound
		}
	}
	return nil
}

// Save tüm alanları kaydeder; BaseModel hook'ları çalışır.
func (r *BaseRepository[T]) Save(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Save(entity).Error
}

// Delete soft delete uygular.
func (r *BaseRepository[T]) Delete(ctx context.Context, id uint) error {
	var entity T
	result := r.db.WithContext(ctx).Delete(&entity, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BaseRepository[T]) GetCount(ctx context.Context) (int64, error) {
	var entity T
	var count int64
	err := r.db.WithContext(ctx).Model(&entity).Count(&count).Error
	return count, err
}

// GetAllPaginated beyaz listeli sıralama ve sayfalama ile listeler.
func (r *BaseRepository[T]) GetAllPaginated(ctx context.Context, params queryparams.ListParams) ([]T, int64, error) {
	var entity T
	var results []T
	var totalCount int64

	query := r.db.WithContext(ctx).Model(&entity)
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}
	if totalCount == 0 {
		return results, 0, nil
	}

	query = query.Order(r.orderClause(params)).
		Limit(params.PerPage).Offset(params.CalculateOffset())
	err := query.Find(&results).Error
	return results, totalCount, err
}

// orderClause sıralama parametrelerini güvenli bir ORDER BY ifadesine çevirir.
func (r *BaseRepository[T]) orderClause(params queryparams.ListParams) string {
	sortBy := params.SortBy
	if !r.allowedSortColumns[sortBy] {
		sortBy = "created_at"
	}
	orderBy := strings.ToLower(params.OrderBy)
	if orderBy != "asc" && orderBy != "desc" {
		orderBy = queryparams.DefaultOrderBy
	}
	return sortBy + " " + orderBy
}
