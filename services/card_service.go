// services/card_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"kartvizit.link/configs/configsdatabase"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
	"kartvizit.link/pkg/authz"
	"kartvizit.link/pkg/queryparams"
	"kartvizit.link/repositories"
	"kartvizit.link/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CardServiceError özel servis hataları
type CardServiceError string

func (e CardServiceError) Error() string { return string(e) }

const (
	ErrCardNotFound      CardServiceError = "kartvizit bulunamadı"
	ErrCardForbidden     CardServiceError = "bu işlem için yetkiniz yok"
	ErrCardInvalidInput  CardServiceError = "geçersiz girdi verisi"
	ErrCardNameRequired  CardServiceError = "isim, soyisim ve e-posta zorunludur"
	ErrCardInvalidTheme  CardServiceError = "geçersiz kart teması"
	ErrCardInvalidStatus CardServiceError = "geçersiz kart durumu"
	ErrCardQuotaExceeded CardServiceError = "bireysel hesaplar aynı anda en fazla bir aktif kartvizite sahip olabilir"
	ErrCardKeyGeneration CardServiceError = "kartvizit için paylaşım anahtarı üretilemedi"
)

// CardInput oluşturma/güncelleme girdisidir. Oluşturmada TeamID/
// OrganizationID verilmezse kullanıcının kendi bağları kullanılır;
// güncellemede nil mevcut bağı korur, 0 koparır.
type CardInput struct {
	Detail         models.CardDetail `json:"detail"`
	TeamID         *uint             `json:"team_id"`
	OrganizationID *uint             `json:"organization_id"`
	IsPublic       *bool             `json:"is_public"`
	Status         models.CardStatus `json:"status"`
}

// CardAnalytics sahibe dönen salt-okunur analitik görünümdür.
type CardAnalytics struct {
	CardID       uint              `json:"card_id"`
	ViewCount    int64             `json:"view_count"`
	LastViewedAt *time.Time        `json:"last_viewed_at"`
	IsPublic     bool              `json:"is_public"`
	Status       models.CardStatus `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
}

// ICardService kartvizit işlemleri için arayüz.
type ICardService interface {
	Create(ctx context.Context, requester authz.Requester, input CardInput) (*models.Card, error)
	GetByID(ctx context.Context, requester authz.Requester, id uint) (*models.Card, error)
	GetAllPaginated(ctx context.Context, requester authz.Requester, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	Update(ctx context.Context, requester authz.Requester, id uint, input CardInput) (*models.Card, error)
	Delete(ctx context.Context, requester authz.Requester, id uint) error

	// Public uçlar: kimlik doğrulaması yok, görüntüleme sayacı artar.
	GetPublicByID(ctx context.Context, id uint) (*models.Card, error)
	GetPublicByShareKey(ctx context.Context, key string) (*models.Card, error)

	GetAnalytics(ctx context.Context, requester authz.Requester, id uint) (*CardAnalytics, error)
}

// CardService ICardService arayüzünü uygular.
type CardService struct {
	repo     repositories.ICardRepository
	userRepo repositories.IUserRepository
	db       *gorm.DB
}

// NewCardService yeni bir CardService örneği oluşturur.
func NewCardService() ICardService {
	return NewCardServiceWithDB(configsdatabase.GetDB())
}

// NewCardServiceWithDB verilen bağlantı üzerinde çalışır (testler için).
func NewCardServiceWithDB(db *gorm.DB) ICardService {
	return &CardService{
		repo:     repositories.NewCardRepositoryTx(db),
		userRepo: repositories.NewUserRepositoryTx(db),
		db:       db,
	}
}

// ValidateCardDetail temel validasyonları yapar.
func ValidateCardDetail(detail models.CardDetail) error {
	if detail.FirstName == "" || detail.LastName == "" || detail.Email == "" {
		return ErrCardNameRequired
	}
	if !models.ValidCardTheme(detail.Theme) {
		return ErrCardInvalidTheme
	}
	return nil
}

// generateShareKey benzersiz paylaşım anahtarını üretir (çakışmada yeniden dener).
func (s *CardService) generateShareKey(ctx context.Context) (string, error) {
	const maxKeyAttempts = 5
	for i := 0; i < maxKeyAttempts; i++ {
		keyAttempt, err := utils.GenerateSecureRandomString(models.ShareKeyLength)
		if err != nil {
			return "", ErrCardKeyGeneration
		}
		exists, err := s.repo.ShareKeyExists(ctx, keyAttempt)
		if err != nil {
			configslog.Log.Error("Paylaşım anahtarı benzersizlik kontrolü hatası", zap.Error(err))
			return "", ErrCardKeyGeneration
		}
		if !exists {
			return keyAttempt, nil
		}
		configslog.Log.Warn("Paylaşım anahtarı çakışması, yeniden deneniyor...", zap.String("key", keyAttempt))
	}
	return "", ErrCardKeyGeneration
}

// Create yeni kartvizit oluşturur. Bireysel hesaplarda aktif kart
// kotası (1) oluşturma ÖNCESİNDE kontrol edilir.
func (s *CardService) Create(ctx context.Context, requester authz.Requester, input CardInput) (*models.Card, error) {
	if err := ValidateCardDetail(input.Detail); err != nil {
		return nil, err
	}

	owner, err := s.userRepo.FindByID(ctx, requester.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: istek sahibi bulunamadı", ErrCardInvalidInput)
	}

	status := input.Status
	if status == "" {
		status = models.CardStatusActive
	}
	if !status.IsValid() {
		return nil, ErrCardInvalidStatus
	}

	// Kota sadece aktif kart sayısını sınırlar; arşivli oluşturma serbesttir.
	if status == models.CardStatusActive && owner.AccountType == models.AccountTypeIndividual {
		activeCount, err := s.repo.CountActiveByOwner(ctx, owner.ID)
		if err != nil {
			configslog.Log.Error("Aktif kart sayısı alınamadı", zap.Uint("userID", owner.ID), zap.Error(err))
			return nil, err
		}
		if activeCount >= 1 {
			return nil, ErrCardQuotaExceeded
		}
	}

	shareKey, err := s.generateShareKey(ctx)
	if err != nil {
		return nil, err
	}

	// Takım/organizasyon bağı belirtilmemişse kullanıcının kendi bağları kullanılır.
	teamID := input.TeamID
	if teamID == nil {
		teamID = owner.TeamID
	}
	orgID := input.OrganizationID
	if orgID == nil {
		orgID = owner.OrganizationID
	}
	isPublic := false
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	card := models.Card{
		OwnerUserID:    owner.ID,
		TeamID:         teamID,
		OrganizationID: orgID,
		ShareKey:       shareKey,
		IsPublic:       isPublic,
		Status:         status,
		Detail:         input.Detail,
	}
	ctx = models.ContextWithUserID(ctx, requester.UserID)
	if err := s.repo.Create(ctx, &card); err != nil {
		configslog.Log.Error("Kartvizit oluşturulamadı", zap.Uint("userID", owner.ID), zap.Error(err))
		return nil, err
	}

	configslog.SLog.Infof("Kartvizit oluşturuldu: ID %d, anahtar %s", card.ID, shareKey)
	return &card, nil
}

// GetByID kartı sahiplik kontrolüyle getirir.
func (s *CardService) GetByID(ctx context.Context, requester authz.Requester, id uint) (*models.Card, error) {
	card, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	if decision := authz.Decide(requester, card.OwnerUserID, authz.CapManageCard); !decision.Allowed {
		configslog.Log.Warn("Yetkisiz kartvizit erişim denemesi",
			zap.Uint("cardID", id), zap.Uint("userID", requester.UserID), zap.Uint("ownerID", card.OwnerUserID))
		return nil, ErrCardForbidden
	}
	return card, nil
}

// GetAllPaginated super admin için tüm kartları, diğerleri için sahip olunanları listeler.
func (s *CardService) GetAllPaginated(ctx context.Context, requester authz.Requester, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	ownerFilter := requester.UserID
	if authz.IsSuperAdmin(requester) {
		ownerFilter = 0
	}
	cards, totalCount, err := s.repo.GetAllPaginated(ctx, ownerFilter, params)
	if err != nil {
		configslog.Log.Error("Kartvizitler listelenemedi", zap.Error(err))
		return nil, err
	}
	return queryparams.NewPaginatedResult(cards, params, totalCount), nil
}

// Update kart ve detayını günceller. Aktifleştirme sırasında bireysel
// hesap kotası yeniden kontrol edilir.
func (s *CardService) Update(ctx context.Context, requester authz.Requester, id uint, input CardInput) (*models.Card, error) {
	if err := ValidateCardDetail(input.Detail); err != nil {
		return nil, err
	}

	card, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	if decision := authz.Decide(requester, card.OwnerUserID, authz.CapManageCard); !decision.Allowed {
		return nil, ErrCardForbidden
	}

	newStatus := input.Status
	if newStatus == "" {
		newStatus = card.Status
	}
	if !newStatus.IsValid() {
		return nil, ErrCardInvalidStatus
	}
	if newStatus == models.CardStatusActive && card.Status != models.CardStatusActive {
		owner, err := s.userRepo.FindByID(ctx, card.OwnerUserID)
		if err == nil && owner.AccountType == models.AccountTypeIndividual {
			activeCount, countErr := s.repo.CountActiveByOwner(ctx, owner.ID)
			if countErr != nil {
				return nil, countErr
			}
			if activeCount >= 1 {
				return nil, ErrCardQuotaExceeded
			}
		}
	}

	txCtx := models.ContextWithUserID(ctx, requester.UserID)
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		cardRepoTx := repositories.NewCardRepositoryTx(tx)

		detail := card.Detail
		input.Detail.BaseModel = detail.BaseModel
		input.Detail.CardID = detail.CardID
		if err := cardRepoTx.SaveDetail(txCtx, &input.Detail); err != nil {
			configslog.Log.Error("Kartvizit detayı güncellenemedi", zap.Uint("id", id), zap.Error(err))
			return err
		}

		card.Status = newStatus
		if input.IsPublic != nil {
			card.IsPublic = *input.IsPublic
		}
		if input.TeamID != nil {
			card.TeamID = input.TeamID
			if *input.TeamID == 0 {
				card.TeamID = nil
			}
		}
		if input.OrganizationID != nil {
			card.OrganizationID = input.OrganizationID
			if *input.OrganizationID == 0 {
				card.OrganizationID = nil
			}
		}
		card.Detail = input.Detail
		if err := cardRepoTx.Save(txCtx, card); err != nil {
			configslog.Log.Error("Kartvizit güncellenemedi", zap.Uint("id", id), zap.Error(err))
			return err
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return card, nil
}

// Delete kartı siler (soft delete, detay cascade ile gider).
func (s *CardService) Delete(ctx context.Context, requester authz.Requester, id uint) error {
	card, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return ErrCardNotFound
		}
		return err
	}
	if decision := authz.Decide(requester, card.OwnerUserID, authz.CapManageCard); !decision.Allowed {
		return ErrCardForbidden
	}

	ctx = models.ContextWithUserID(ctx, requester.UserID)
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == repositories.ErrNotFound {
			return ErrCardNotFound
		}
		configslog.Log.Error("Kartvizit silinemedi", zap.Uint("id", id), zap.Error(err))
		return err
	}
	configslog.SLog.Infof("Kartvizit silindi: ID %d", id)
	return nil
}

// publicView kartın public görünürlüğünü uygular ve sayaç artırır.
// "Yok", "gizli" ve "arşivlenmiş" durumlarının üçü de aynı şekilde
// ErrCardNotFound döner; dışarıdan ayırt edilemezler.
func (s *CardService) publicView(ctx context.Context, card *models.Card, lookupErr error) (*models.Card, error) {
	if lookupErr != nil {
		if lookupErr == repositories.ErrNotFound {
			return nil, ErrCardNotFound
		}
		return nil, lookupErr
	}
	if !card.IsVisible() {
		return nil, ErrCardNotFound
	}

	// Her başarılı public okuma sayacı artırır; tekilleştirme yapılmaz.
	now := time.Now()
	if err := s.repo.IncrementViewCount(ctx, card.ID, now); err != nil {
		// Sayaç hatası görüntülemeyi engellemez.
		configslog.Log.Warn("Görüntülenme sayacı artırılamadı", zap.Uint("cardID", card.ID), zap.Error(err))
	} else {
		card.ViewCount++
		card.LastViewedAt = &now
	}
	return card, nil
}

// GetPublicByID public kart görünümünü ID ile getirir.
func (s *CardService) GetPublicByID(ctx context.Context, id uint) (*models.Card, error) {
	card, err := s.repo.FindByID(ctx, id)
	return s.publicView(ctx, card, err)
}

// GetPublicByShareKey public kart görünümünü paylaşım anahtarı ile getirir.
func (s *CardService) GetPublicByShareKey(ctx context.Context, key string) (*models.Card, error) {
	if len(key) != models.ShareKeyLength {
		return nil, ErrCardNotFound
	}
	card, err := s.repo.FindByShareKey(ctx, key)
	return s.publicView(ctx, card, err)
}

// GetAnalytics sahibine (veya super admin'e) kartın sayaçlarını döndürür.
// Salt okunurdur; sayaç artırmaz.
func (s *CardService) GetAnalytics(ctx context.Context, requester authz.Requester, id uint) (*CardAnalytics, error) {
	card, err := s.GetByID(ctx, requester, id)
	if err != nil {
		return nil, err
	}
	return &CardAnalytics{
		CardID:       card.ID,
		ViewCount:    card.ViewCount,
		LastViewedAt: card.LastViewedAt,
		IsPublic:     card.IsPublic,
		Status:       card.Status,
		CreatedAt:    card.CreatedAt,
	}, nil
}

var _ ICardService = (*CardService)(nil)
