package repositories

import (
	"context"
	"errors"

	"kartvizit.link/configs/configsdatabase"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
	"kartvizit.link/pkg/queryparams"
	"kartvizit.link/pkg/turkishsearch"
	"kartvizit.link/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IUserRepository kullanıcı veritabanı işlemleri için arayüz.
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*models.User, error)
	FindByVerificationToken(ctx context.Context, token string) (*models.User, error)
	FindByResetToken(ctx context.Context, token string) (*models.User, error)
	Save(ctx context.Context, user *models.User) error
	Update(ctx context.Context, id uint, data map[string]interface{}) error
	GetAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.User, int64, error)
	CountByOrganizationID(ctx context.Context, orgID uint) (int64, error)
	GetCount(ctx context.Context) (int64, error)
}

// UserRepository IUserRepository arayüzünü uygular.
type UserRepository struct {
	base *BaseRepository[models.User]
	db   *gorm.DB
}

// NewUserRepository global bağlantı üzerinde çalışan repository oluşturur.
func NewUserRepository() IUserRepository {
	return NewUserRepositoryTx(configsdatabase.GetDB())
}

// NewUserRepositoryTx verilen bağlantı/transaction üzerinde çalışan repository oluşturur.
func NewUserRepositoryTx(db *gorm.DB) IUserRepository {
	base := NewBaseRepository[models.User](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "email", "name", "role", "account_type", "status"})
	return &UserRepository{base: base, db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.base.Create(ctx, user)
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	return r.base.FindByID(ctx, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return nil, ErrNotFound
	}
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		configslog.Log.Error("UserRepository.FindByEmail: DB error", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	if googleID == "" {
		return nil, ErrNotFound
	}
	var user models.User
	err := r.db.WithContext(ctx).Where("google_id = ?", googleID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &user, err
}

func (r *UserRepository) FindByVerificationToken(ctx context.Context, token string) (*models.User, error) {
	return r.findByTokenColumn(ctx, "verification_token", token)
}

func (r *UserRepository) FindByResetToken(ctx context.Context, token string) (*models.User, error) {
	return r.findByTokenColumn(ctx, "reset_token", token)
}

func (r *UserRepository) findByTokenColumn(ctx context.Context, column, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	var user models.User
	err := r.db.WithContext(ctx).Where(column+" = ?", token).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &user, err
}

func (r *UserRepository) Save(ctx context.Context, user *models.User) error {
	return r.base.Save(ctx, user)
}

func (r *UserRepository) Update(ctx context.Context, id uint, data map[string]interface{}) error {
	return r.base.Update(ctx, id, data)
}

// GetAllPaginated kullanıcıları arama/filtre/sayfalama ile listeler.
// Arama isim ve e-posta üzerinde case-insensitive substring eşleşmesidir.
func (r *UserRepository) GetAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.User, int64, error) {
	var results []models.User
	var totalCount int64

	query := r.db.WithContext(ctx).Model(&models.User{})

	if params.Search != "" {
		nameFrag, nameArgs := turkishsearch.SQLFilter("users.name", params.Search)
		emailFrag, emailArgs := turkishsearch.SQLFilter("users.email", params.Search)
		query = query.Where(nameFrag+" OR "+emailFrag, nameArgs[0], emailArgs[0])
	}
	if params.Status != "" {
		query = query.Where("users.status = ?", params.Status)
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

func (r *UserRepository) CountByOrganizationID(ctx context.Context, orgID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("organization_id = ?", orgID).Count(&count).Error
	return count, err
}

func (r *UserRepository) GetCount(ctx context.Context) (int64, error) {
	return r.base.GetCount(ctx)
}

// Arayüz uyumluluğu kontrolü
var _ IUserRepository = (*UserRepository)(nil)
