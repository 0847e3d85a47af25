package repositories

import (
	"context"
	"errors"
	"time"

	"kartvizit.link/configs/configsdatabase"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
	"kartvizit.link/pkg/queryparams"
	"kartvizit.link/pkg/turkishsearch"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ICardRepository kartvizit veritabanı işlemleri için arayüz.
type ICardRepository interface {
	Create(ctx context.Context, card *models.Card) error
	FindByID(ctx context.Context, id uint) (*models.Card, error)
	FindByShareKey(ctx context.Context, key string) (*models.Card, error)
	ShareKeyExists(ctx context.Context, key string) (bool, error)
	Save(ctx context.Context, card *models.Card) error
	SaveDetail(ctx context.Context, detail *models.CardDetail) error
	Delete(ctx context.Context, id uint) error
	GetAllPaginated(ctx context.Context, ownerUserID uint, params queryparams.ListParams) ([]models.Card, int64, error)
	CountActiveByOwner(ctx context.Context, ownerUserID uint) (int64, error)
	IncrementViewCount(ctx context.Context, id uint, viewedAt time.Time) error
	GetCount(ctx context.Context) (int64, error)
}

// CardRepository ICardRepository arayüzünü uygular.
type CardRepository struct {
	base *BaseRepository[models.Card]
	db   *gorm.DB
}

// NewCardRepository global bağlantı üzerinde çalışan repository oluşturur.
func NewCardRepository() ICardRepository {
	return NewCardRepositoryTx(configsdatabase.GetDB())
}

// NewCardRepositoryTx verilen bağlantı/transaction üzerinde çalışır.
func NewCardRepositoryTx(db *gorm.DB) ICardRepository {
	base := NewBaseRepository[models.Card](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "status", "is_public", "view_count"})
	return &CardRepository{base: base, db: db}
}

// Create kartı detayıyla birlikte oluşturur (Detail cascade ile yazılır).
func (r *CardRepository) Create(ctx context.Context, card *models.Card) error {
	return r.base.Create(ctx, card)
}

// FindByID kartı detayıyla birlikte getirir.
func (r *CardRepository) FindByID(ctx context.Context, id uint) (*models.Card, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var card models.Card
	err := r.db.WithContext(ctx).Preload("Detail").First(&card, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		configslog.Log.Error("CardRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &card, nil
}

// FindByShareKey public paylaşım anahtarı ile kartı getirir.
func (r *CardRepository) FindByShareKey(ctx context.Context, key string) (*models.Card, error) {
	if key == "" {
		return nil, ErrNotFound
	}
	var card models.Card
	err := r.db.WithContext(ctx).Preload("Detail").Where("share_key = ?", key).First(&card).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		configslog.Log.Error("CardRepository.FindByShareKey: DB error", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return &card, nil
}

// ShareKeyExists anahtar zaten kullanılmış mı kontrol eder.
func (r *CardRepository) ShareKeyExists(ctx context.Context, key string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Card{}).Where("share_key = ?", key).Count(&count).Error
	return count > 0, err
}

func (r *CardRepository) Save(ctx context.Context, card *models.Card) error {
	return r.base.Save(ctx, card)
}

func (r *CardRepository) SaveDetail(ctx context.Context, detail *models.CardDetail) error {
	return r.db.WithContext(ctx).Save(detail).Error
}

func (r *CardRepository) Delete(ctx context.Context, id uint) error {
	return r.base.Delete(ctx, id)
}

// GetAllPaginated kartları listeler; arama Detail tablosuna JOIN ile
// isim/şirket/e-posta üzerinde yapılır. ownerUserID 0 ise tüm kayıtlar döner.
func (r *CardRepository) GetAllPaginated(ctx context.Context, ownerUserID uint, params queryparams.ListParams) ([]models.Card, int64, error) {
	var results []models.Card
	var totalCount int64

	query := r.db.WithContext(ctx).Model(&models.Card{}).
		Joins("JOIN card_details ON card_details.card_id = cards.id")
	if ownerUserID != 0 {
		query = query.Where("cards.owner_user_id = ?", ownerUserID)
	}
	if params.Search != "" {
		firstFrag, firstArgs := turkishsearch.SQLFilter("card_details.first_name", params.Search)
		lastFrag, lastArgs := turkishsearch.SQLFilter("card_details.last_name", params.Search)
		companyFrag, companyArgs := turkishsearch.SQLFilter("card_details.company", params.Search)
		emailFrag, emailArgs := turkishsearch.SQLFilter("card_details.email", params.Search)
		query = query.Where(firstFrag+" OR "+lastFrag+" OR "+companyFrag+" OR "+emailFrag,
			firstArgs[0], lastArgs[0], companyArgs[0], emailArgs[0])
	}
	if params.Status != "" {
		query = query.Where("cards.status = ?", params.Status)
	}

	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}
	if totalCount == 0 {
		return results, 0, nil
	}

	allowedSortColumns := map[string]string{
		"id":         "cards.id",
		"created_at": "cards.created_at",
		"status":     "cards.status",
		"view_count": "cards.view_count",
		"first_name": "card_details.first_name",
		"last_name":  "card_details.last_name",
		"company":    "card_details.company",
	}
	orderColumn := "cards.created_at"
	if dbCol, ok := allowedSortColumns[params.SortBy]; ok {
		orderColumn = dbCol
	}
	orderBy := params.OrderBy
	if orderBy != "asc" && orderBy != "desc" {
		orderBy = queryparams.DefaultOrderBy
	}

	err := query.Order(orderColumn + " " + orderBy).
		Limit(params.PerPage).Offset(params.CalculateOffset()).
		Preload("Detail").
		Select("cards.*").
		Find(&results).Error
	return results, totalCount, err
}

// CountActiveByOwner hesabın aktif (arşivlenmemiş) kart sayısını alır.
// Individual hesapların kota kontrolü bu sayıyla yapılır.
func (r *CardRepository) CountActiveByOwner(ctx context.Context, ownerUserID uint) (int64, error) {
	if ownerUserID == 0 {
		return 0, errors.New("geçersiz kullanıcı ID")
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Card{}).
		Where("owner_user_id = ? AND status = ?", ownerUserID, models.CardStatusActive).
		Count(&count).Error
	return count, err
}

// IncrementViewCount sayaç güncellemesini tek UPDATE ile yapar;
// eşzamanlı okumalarda kayıp artış olmaması için read-modify-write kullanılmaz.
func (r *CardRepository) IncrementViewCount(ctx context.Context, id uint, viewedAt time.Time) error {
	return r.db.WithContext(ctx).Model(&models.Card{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"view_count":     gorm.Expr("view_count + 1"),
			"last_viewed_at": viewedAt,
		}).Error
}

func (r *CardRepository) GetCount(ctx context.Context) (int64, error) {
	return r.base.GetCount(ctx)
}

// Arayüz uyumluluğu kontrolü
var _ ICardRepository = (*CardRepository)(nil)
