package repositories

import (
	"context"

	"kartvizit.link/configs/configsdatabase"
	"kartvizit.link/models"
	"kartvizit.link/pkg/queryparams"
	"kartvizit.link/pkg/turkishsearch"

	"gorm.io/gorm"
)

// IOrganizationRepository organizasyon veritabanı işlemleri için arayüz.
type IOrganizationRepository interface {
	Create(ctx context.Context, org *models.Organization) error
	FindByID(ctx context.Context, id uint) (*models.Organization, error)
	FindByIDWithTeams(ctx context.Context, id uint) (*models.Organization, error)
	Save(ctx context.Context, org *models.Organization) error
	Delete(ctx context.Context, id uint) error
	GetAllPaginated(ctx context.Context, ownerUserID uint, params queryparams.ListParams) ([]models.Organization, int64, error)
	GetCount(ctx context.Context) (int64, error)
}

// OrganizationRepository IOrganizationRepository arayüzünü uygular.
type OrganizationRepository struct {
	base *BaseRepository[models.Organization]
	db   *gorm.DB
}

// NewOrganizationRepository global bağlantı üzerinde çalışan repository oluşturur.
func NewOrganizationRepository() IOrganizationRepository {
	return NewOrganizationRepositoryTx(configsdatabase.GetDB())
}

// NewOrganizationRepositoryTx verilen bağlantı/transaction üzerinde çalışır.
func NewOrganizationRepositoryTx(db *gorm.DB) IOrganizationRepository {
	base := NewBaseRepository[models.Organization](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "name"})
	return &OrganizationRepository{base: base, db: db}
}

func (r *OrganizationRepository) Create(ctx context.Context, org *models.Organization) error {
	return r.base.Create(ctx, org)
}

func (r *OrganizationRepository) FindByID(ctx context.Context, id uint) (*models.Organization, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	return r.base.FindByID(ctx, id)
}

// FindByIDWithTeams organizasyonu alt takımlarıyla birlikte getirir.
func (r *OrganizationRepository) FindByIDWithTeams(ctx context.Context, id uint) (*models.Organization, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var org models.Organization
	err := r.db.WithContext(ctx).Preload("Teams").First(&org, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *OrganizationRepository) Save(ctx context.Context, org *models.Organization) error {
	return r.base.Save(ctx, org)
}

func (r *OrganizationRepository) Delete(ctx context.Context, id uint) error {
	return r.base.Delete(ctx, id)
}

// GetAllPaginated organizasyonları listeler. ownerUserID 0 ise tüm kayıtlar
// (super admin görünümü), değilse sadece o hesabın sahip oldukları döner.
func (r *OrganizationRepository) GetAllPaginated(ctx context.Context, ownerUserID uint, params queryparams.ListParams) ([]models.Organization, int64, error) {
	var results []models.Organization
	var totalCount int64

	query := r.db.WithContext(ctx).Model(&models.Organization{})
	if ownerUserID != 0 {
		query = query.Where("owner_user_id = ?", ownerUserID)
	}
	if params.Search != "" {
		frag, args := turkishsearch.SQLFilter("organizations.name", params.Search)
		query = query.Where(frag, args[0])
	}

	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}
	if totalCount == 0 {
		return results, 0, nil
	}

	err := query.Order(r.base.orderClause(params)).
		Limit(params.PerPage).Offset(params.CalculateOffset()).
		Find(&results).Error
	return results, totalCount, err
}

func (r *OrganizationRepository) GetCount(ctx context.Context) (int64, error) {
	return r.base.GetCount(ctx)
}

// Arayüz uyumluluğu kontrolü
var _ IOrganizationRepository = (*OrganizationRepository)(nil)
