// services/organization_service.go
package services

import (
	"context"
	"fmt"

	"kartvizit.link/configs/configsdatabase"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
	"kartvizit.link/pkg/authz"
	"kartvizit.link/pkg/cascade"
	"kartvizit.link/pkg/queryparams"
	"kartvizit.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OrganizationServiceError özel servis hataları
type OrganizationServiceError string

func (e OrganizationServiceError) Error() string { return string(e) }

const (
	ErrOrgNotFound     OrganizationServiceError = "organizasyon bulunamadı"
	ErrOrgForbidden    OrganizationServiceError = "bu işlem için yetkiniz yok"
	ErrOrgNameRequired OrganizationServiceError = "organizasyon adı zorunludur"
	ErrOrgInvalidInput OrganizationServiceError = "geçersiz girdi verisi"
)

// OrganizationInput oluşturma/güncelleme girdisidir.
type OrganizationInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Website     string `json:"website"`
}

// OrganizationView tek kayıt okumada dönen zengin görünümdür:
// organizasyon + alt takımlar + organizasyona bağlı kullanıcı sayısı.
type OrganizationView struct {
	Organization *models.Organization `json:"organization"`
	Teams        []models.Team        `json:"teams"`
	MemberCount  int64                `json:"member_count"`
}

// IOrganizationService organizasyon işlemleri için arayüz.
type IOrganizationService interface {
	Create(ctx context.Context, requester authz.Requester, input OrganizationInput) (*models.Organization, error)
	GetByID(ctx context.Context, requester authz.Requester, id uint) (*OrganizationView, error)
	GetAllPaginated(ctx context.Context, requester authz.Requester, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	Update(ctx context.Context, requester authz.Requester, id uint, input OrganizationInput) (*models.Organization, error)
	Delete(ctx context.Context, requester authz.Requester, id uint) error
}

// OrganizationService IOrganizationService arayüzünü uygular.
type OrganizationService struct {
	repo     repositories.IOrganizationRepository
	teamRepo repositories.ITeamRepository
	userRepo repositories.IUserRepository
	db       *gorm.DB
}

// NewOrganizationService yeni bir OrganizationService örneği oluşturur.
func NewOrganizationService() IOrganizationService {
	return NewOrganizationServiceWithDB(configsdatabase.GetDB())
}

// NewOrganizationServiceWithDB verilen bağlantı üzerinde çalışır (testler için).
func NewOrganizationServiceWithDB(db *gorm.DB) IOrganizationService {
	return &OrganizationService{
		repo:     repositories.NewOrganizationRepositoryTx(db),
		teamRepo: repositories.NewTeamRepositoryTx(db),
		userRepo: repositories.NewUserRepositoryTx(db),
		db:       db,
	}
}

// Create yeni organizasyon oluşturur; sahip her zaman istek sahibidir.
func (s *OrganizationService) Create(ctx context.Context, requester authz.Requester, input OrganizationInput) (*models.Organization, error) {
	if decision := authz.Decide(requester, 0, authz.CapManageOrganization); !decision.Allowed {
		configslog.Log.Warn("Organizasyon oluşturma reddedildi",
			zap.Uint("userID", requester.UserID), zap.String("reason", decision.Reason))
		return nil, ErrOrgForbidden
	}
	if input.Name == "" {
		return nil, ErrOrgNameRequired
	}

	org := models.Organization{
		Name:        input.Name,
		Description: input.Description,
		Website:     input.Website,
		OwnerUserID: requester.UserID,
	}
	ctx = models.ContextWithUserID(ctx, requester.UserID)
	if err := s.repo.Create(ctx, &org); err != nil {
		configslog.Log.Error("Organizasyon oluşturulamadı", zap.Error(err))
		return nil, err
	}
	configslog.SLog.Infof("Organizasyon oluşturuldu: ID %d (%s)", org.ID, org.Name)
	return &org, nil
}

// GetByID organizasyonu alt takımları ve üye sayısıyla getirir.
func (s *OrganizationService) GetByID(ctx context.Context, requester authz.Requester, id uint) (*OrganizationView, error) {
	org, err := s.repo.FindByIDWithTeams(ctx, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrOrgNotFound
		}
		return nil, err
	}
	if decision := authz.Decide(requester, org.OwnerUserID, authz.CapManageOrganization); !decision.Allowed {
		return nil, ErrOrgForbidden
	}

	memberCount, err := s.userRepo.CountByOrganizationID(ctx, org.ID)
	if err != nil {
		configslog.Log.Warn("Organizasyon üye sayısı alınamadı", zap.Uint("orgID", org.ID), zap.Error(err))
	}
	return &OrganizationView{Organization: org, Teams: org.Teams, MemberCount: memberCount}, nil
}

// GetAllPaginated super admin için tüm kayıtları, diğerleri için
// sadece sahip olunanları listeler.
func (s *OrganizationService) GetAllPaginated(ctx context.Context, requester authz.Requester, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	ownerFilter := requester.UserID
	if authz.IsSuperAdmin(requester) {
		ownerFilter = 0
	}
	orgs, totalCount, err := s.repo.GetAllPaginated(ctx, ownerFilter, params)
	if err != nil {
		configslog.Log.Error("Organizasyonlar listelenemedi", zap.Error(err))
		return nil, err
	}
	return queryparams.NewPaginatedResult(orgs, params, totalCount), nil
}

// Update organizasyon bilgilerini günceller.
func (s *OrganizationService) Update(ctx context.Context, requester authz.Requester, id uint, input OrganizationInput) (*models.Organization, error) {
	org, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrOrgNotFound
		}
		return nil, err
	}
	if decision := authz.Decide(requester, org.OwnerUserID, authz.CapManageOrganization); !decision.Allowed {
		return nil, ErrOrgForbidden
	}
	if input.Name == "" {
		return nil, ErrOrgNameRequired
	}

	org.Name = input.Name
	org.Description = input.Description
	org.Website = input.Website
	ctx = models.ContextWithUserID(ctx, requester.UserID)
	if err := s.repo.Save(ctx, org); err != nil {
		configslog.Log.Error("Organizasyon güncellenemedi", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return org, nil
}

// Delete organizasyonu ve bağımlı referansları sıralı cascade adımlarıyla
// tek transaction içinde temizler:
//  1. alt takımların üyelerindeki team_id referansları temizlenir
//  2. alt takımların üyelik kayıtları silinir
//  3. alt takımlar silinir
//  4. kullanıcılardaki organization_id referansı temizlenir
//  5. kartlardaki organization_id referansı temizlenir
//  6. organizasyon kaydı silinir
//
// Kartların kendisi silinmez, sadece organizasyon bağları boşaltılır.
func (s *OrganizationService) Delete(ctx context.Context, requester authz.Requester, id uint) error {
	org, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return ErrOrgNotFound
		}
		return err
	}
	if decision := authz.Decide(requester, org.OwnerUserID, authz.CapManageOrganization); !decision.Allowed {
		configslog.Log.Warn("Organizasyon silme reddedildi",
			zap.Uint("orgID", id), zap.Uint("userID", requester.UserID), zap.String("reason", decision.Reason))
		return ErrOrgForbidden
	}

	txCtx := models.ContextWithUserID(ctx, requester.UserID)
	return s.db.Transaction(func(tx *gorm.DB) error {
		steps := []cascade.Step{
			{
				Name: "alt takım üyeliklerindeki team_id referanslarını temizle",
				Run: func(tx *gorm.DB) error {
					return tx.WithContext(txCtx).Model(&models.User{}).
						Where("team_id IN (?)",
							tx.Model(&models.Team{}).Select("id").Where("organization_id = ?", id)).
						Update("team_id", nil).Error
				},
			},
			{
				Name: "alt takımların üyelik kayıtlarını sil",
				Run: func(tx *gorm.DB) error {
					return tx.WithContext(txCtx).Unscoped().
						Where("team_id IN (?)",
							tx.Model(&models.Team{}).Select("id").Where("organization_id = ?", id)).
						Delete(&models.TeamMember{}).Error
				},
			},
			{
				Name: "alt takımları sil",
				Run: func(tx *gorm.DB) error {
					return tx.WithContext(txCtx).
						Where("organization_id = ?", id).
						Delete(&models.Team{}).Error
				},
			},
			{
				Name: "kullanıcılardaki organization_id referansını temizle",
				Run: func(tx *gorm.DB) error {
					return tx.WithContext(txCtx).Model(&models.User{}).
						Where("organization_id = ?", id).
						Update("organization_id", nil).Error
				},
			},
			{
				Name: "kartlardaki organization_id referansını temizle",
				Run: func(tx *gorm.DB) error {
					return tx.WithContext(txCtx).Model(&models.Card{}).
						Where("organization_id = ?", id).
						Update("organization_id", nil).Error
				},
			},
			{
				Name: "organizasyon kaydını sil",
				Run: func(tx *gorm.DB) error {
					return repositories.NewOrganizationRepositoryTx(tx).Delete(txCtx, id)
				},
			},
		}
		if err := cascade.Run(tx, "organization", id, steps); err != nil {
			return fmt.Errorf("organizasyon silinemedi: %w", err)
		}
		return nil
	})
}

var _ IOrganizationService = (*OrganizationService)(nil)
