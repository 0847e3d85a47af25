// services/user_service.go
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

// UserServiceError özel servis hataları
type UserServiceError string

func (e UserServiceError) Error() string { return string(e) }

const (
	ErrUsrNotFound        UserServiceError = "kullanıcı bulunamadı"
	ErrUsrForbidden       UserServiceError = "bu işlem için yetkiniz yok"
	ErrUsrInvalidInput    UserServiceError = "geçersiz girdi verisi"
	ErrUsrSelfDemotion    UserServiceError = "kendi super_admin rolünüzü bu yoldan kaldıramazsınız"
	ErrUsrSelfTarget      UserServiceError = "kendi hesabınızı silemezsiniz"
	ErrUsrSuperAdminGuard UserServiceError = "başka bir super_admin hesabı hedef alınamaz"
)

// ProfileUpdateInput kullanıcının kendi profil güncellemesidir.
type ProfileUpdateInput struct {
	Name string `json:"name"`
}

// AdminUserUpdateInput super admin'in kullanıcı üzerindeki güncellemesidir.
type AdminUserUpdateInput struct {
	Name        *string             `json:"name"`
	Role        *models.Role        `json:"role"`
	AccountType *models.AccountType `json:"account_type"`
	Status      *models.UserStatus  `json:"status"`
	IsVerified  *bool               `json:"is_verified"`
}

// PlatformStats admin panosundaki sayaç özetidir.
type PlatformStats struct {
	Users         int64 `json:"users"`
	Organizations int64 `json:"organizations"`
	Teams         int64 `json:"teams"`
	Cards         int64 `json:"cards"`
}

// ActivityEntry son hareket listesinin tek satırıdır.
type ActivityEntry struct {
	Entity    string `json:"entity"`
	ID        uint   `json:"id"`
	Label     string `json:"label"`
	UpdatedAt string `json:"updated_at"`
}

// IUserService profil ve kullanıcı yönetimi işlemleri için arayüz.
type IUserService interface {
	GetProfile(ctx context.Context, userID uint) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uint, input ProfileUpdateInput) (*models.User, error)

	// Super admin işlemleri
	GetAllPaginated(ctx context.Context, requester authz.Requester, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	AdminGetByID(ctx context.Context, requester authz.Requester, id uint) (*models.User, error)
	AdminUpdate(ctx context.Context, requester authz.Requester, id uint, input AdminUserUpdateInput) (*models.User, error)
	SoftDelete(ctx context.Context, requester authz.Requester, id uint) error
	HardDelete(ctx context.Context, requester authz.Requester, id uint) error
	GetStats(ctx context.Context, requester authz.Requester) (*PlatformStats, error)
	GetRecentActivity(ctx context.Context, requester authz.Requester, limit int) ([]ActivityEntry, error)
}

// UserService IUserService arayüzünü uygular.
type UserService struct {
	repo     repositories.IUserRepository
	orgRepo  repositories.IOrganizationRepository
	teamRepo repositories.ITeamRepository
	cardRepo repositories.ICardRepository
	db       *gorm.DB
}

// NewUserService yeni bir UserService örneği oluşturur.
func NewUserService() IUserService {
	return NewUserServiceWithDB(configsdatabase.GetDB())
}

// NewUserServiceWithDB verilen bağlantı üzerinde çalışır (testler için).
func NewUserServiceWithDB(db *gorm.DB) IUserService {
	return &UserService{
		repo:     repositories.NewUserRepositoryTx(db),
		orgRepo:  repositories.NewOrganizationRepositoryTx(db),
		teamRepo: repositories.NewTeamRepositoryTx(db),
		cardRepo: repositories.NewCardRepositoryTx(db),
		db:       db,
	}
}

// GetProfile kullanıcının kendi kaydını getirir.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrUsrNotFound
	}
	return user, nil
}

// UpdateProfile kullanıcının kendi profil alanlarını günceller.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, input ProfileUpdateInput) (*models.User, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: isim boş olamaz", ErrUsrInvalidInput)
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrUsrNotFound
	}
	user.Name = input.Name
	if err := s.repo.Save(models.ContextWithUserID(ctx, userID), user); err != nil {
		configslog.Log.Error("Profil güncellenemedi", zap.Uint("userID", userID), zap.Error(err))
		return nil, err
	}
	return user, nil
}

// requireSuperAdmin admin uçlarının ortak kapısıdır.
func requireSuperAdmin(requester authz.Requester) error {
	if decision := authz.Decide(requester, 0, authz.CapAdministerUsers); !decision.Allowed {
		return ErrUsrForbidden
	}
	return nil
}

// GetAllPaginated tüm kullanıcıları arama/filtre/sayfalama ile listeler.
func (s *UserService) GetAllPaginated(ctx context.Context, requester authz.Requester, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	if err := requireSuperAdmin(requester); err != nil {
		return nil, err
	}
	params.Validate()

	users, totalCount, err := s.repo.GetAllPaginated(ctx, params)
	if err != nil {
		configslog.Log.Error("Kullanıcılar listelenemedi", zap.Error(err))
		return nil, err
	}
	publicUsers := make([]models.PublicUser, len(users))
	for i := range users {
		publicUsers[i] = users[i].ToPublic()
	}
	return queryparams.NewPaginatedResult(publicUsers, params, totalCount), nil
}

// AdminGetByID kullanıcıyı admin görünümü için getirir.
func (s *UserService) AdminGetByID(ctx context.Context, requester authz.Requester, id uint) (*models.User, error) {
	if err := requireSuperAdmin(requester); err != nil {
		return nil, err
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrUsrNotFound
	}
	return user, nil
}

// AdminUpdate super admin'in kullanıcı kaydını güncellemesidir.
// Self-demotion koruması: super admin bu yoldan kendi rolünü düşüremez.
func (s *UserService) AdminUpdate(ctx context.Context, requester authz.Requester, id uint, input AdminUserUpdateInput) (*models.User, error) {
	if err := requireSuperAdmin(requester); err != nil {
		return nil, err
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrUsrNotFound
	}

	if input.Role != nil {
		if !input.Role.IsValid() {
			return nil, fmt.Errorf("%w: geçersiz rol", ErrUsrInvalidInput)
		}
		if id == requester.UserID && user.Role == models.RoleSuperAdmin && *input.Role != models.RoleSuperAdmin {
			return nil, ErrUsrSelfDemotion
		}
		user.Role = *input.Role
	}
	if input.AccountType != nil {
		if !input.AccountType.IsValid() {
			return nil, fmt.Errorf("%w: geçersiz hesap türü", ErrUsrInvalidInput)
		}
		user.AccountType = *input.AccountType
	}
	if input.Name != nil && *input.Name != "" {
		user.Name = *input.Name
	}
	if input.Status != nil {
		user.Status = *input.Status
	}
	if input.IsVerified != nil {
		user.IsVerified = *input.IsVerified
	}

	if err := s.repo.Save(models.ContextWithUserID(ctx, requester.UserID), user); err != nil {
		configslog.Log.Error("Kullanıcı güncellenemedi (admin)", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return user, nil
}

// guardAdminTarget self-target ve super_admin hedefleme korumalarını uygular.
func (s *UserService) guardAdminTarget(ctx context.Context, requester authz.Requester, id uint) (*models.User, error) {
	if err := requireSuperAdmin(requester); err != nil {
		return nil, err
	}
	if id == requester.UserID {
		return nil, ErrUsrSelfTarget
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrUsrNotFound
	}
	if user.Role == models.RoleSuperAdmin {
		return nil, ErrUsrSuperAdminGuard
	}
	return user, nil
}

// SoftDelete hesabı devre dışı bırakır; veri silinmez.
func (s *UserService) SoftDelete(ctx context.Context, requester authz.Requester, id uint) error {
	user, err := s.guardAdminTarget(ctx, requester, id)
	if err != nil {
		return err
	}
	user.Status = models.UserStatusDisabled
	if err := s.repo.Save(models.ContextWithUserID(ctx, requester.UserID), user); err != nil {
		configslog.Log.Error("Kullanıcı devre dışı bırakılamadı", zap.Uint("id", id), zap.Error(err))
		return err
	}
	configslog.SLog.Infof("Kullanıcı devre dışı bırakıldı: ID %d", id)
	return nil
}

// HardDelete hesabı ve ona bağlı her şeyi sıralı cascade adımlarıyla
// tek transaction içinde kaldırır:
//  1. sahip olunan kartlar silinir
//  2. sahip olunan organizasyonlar (alt takımlarıyla birlikte) silinir
//  3. sahip olunan takımlar silinir
//  4. üye olarak göründüğü her takımdan çıkarılır
//  5. kullanıcı kaydı silinir
func (s *UserService) HardDelete(ctx context.Context, requester authz.Requester, id uint) error {
	if _, err := s.guardAdminTarget(ctx, requester, id); err != nil {
		return err
	}

	txCtx := models.ContextWithUserID(ctx, requester.UserID)
	return s.db.Transaction(func(tx *gorm.DB) error {
		steps := []cascade.Step{
			{
				Name: "sahip olunan kart detaylarını sil",
				Run: func(tx *gorm.DB) error {
					return tx.WithContext(txCtx).
						Where("card_id IN (?)",
							tx.Model(&models.Card{}).Select("id").Where("owner_user_id = ?", id)).
						Delete(&models.CardDetail{}).Error
				},
			},
			{
				Name: "sahip olunan kartları sil",
				Run: func(tx *gorm.DB) error {
					return tx.WithContext(txCtx).
						Where("owner_user_id = ?", id).
						Delete(&models.Card{}).Error
				},
			},
			{
				Name: "sahip olunan organizasyonların takımlarını ve referanslarını temizle",
				Run: func(tx *gorm.DB) error {
					orgIDs := tx.Model(&models.Organization{}).Select("id").Where("owner_user_id = ?", id)
					orgTeamIDs := tx.Model(&models.Team{}).Select("id").Where("organization_id IN (?)", orgIDs)
					if err := tx.WithContext(txCtx).Model(&models.User{}).
						Where("organization_id IN (?)", orgIDs).
						Update("organization_id", nil).Error; err != nil {
						return err
					}
					// Takımlar silinmeden önce üyelerin team_id referansı boşaltılır;
					// silindikten sonra subquery soft-delete kapsamına takılır.
					if err := tx.WithContext(txCtx).Model(&models.User{}).
						Where("team_id IN (?)", orgTeamIDs).
						Update("team_id", nil).Error; err != nil {
						return err
					}
					if err := tx.WithContext(txCtx).Unscoped().
						Where("team_id IN (?)", orgTeamIDs).
						Delete(&models.TeamMember{}).Error; err != nil {
						return err
					}
					return tx.WithContext(txCtx).
						Where("organization_id IN (?)", orgIDs).
						Delete(&models.Team{}).Error
				},
			},
			{
				Name: "sahip olunan organizasyonları sil",
				Run: func(tx *gorm.DB) error {
					return tx.WithContext(txCtx).
						Where("owner_user_id = ?", id).
						Delete(&models.Organization{}).Error
				},
			},
			{
				Name: "sahip olunan takımların üyelik referanslarını temizle",
				Run: func(tx *gorm.DB) error {
					teamIDs := tx.Model(&models.Team{}).Select("id").Where("owner_user_id = ?", id)
					if err := tx.WithContext(txCtx).Model(&models.User{}).
						Where("team_id IN (?)", teamIDs).
						Update("team_id", nil).Error; err != nil {
						return err
					}
					return tx.WithContext(txCtx).Unscoped().
						Where("team_id IN (?)", teamIDs).
						Delete(&models.TeamMember{}).Error
				},
			},
			{
				Name: "sahip olunan takımları sil",
				Run: func(tx *gorm.DB) error {
					return tx.WithContext(txCtx).
						Where("owner_user_id = ?", id).
						Delete(&models.Team{}).Error
				},
			},
			{
				Name: "üye olarak göründüğü takımlardan çıkar",
				Run: func(tx *gorm.DB) error {
					return tx.WithContext(txCtx).Unscoped().
						Where("user_id = ?", id).
						Delete(&models.TeamMember{}).Error
				},
			},
			{
				Name: "kullanıcı kaydını sil",
				Run: func(tx *gorm.DB) error {
					return tx.WithContext(txCtx).Unscoped().
						Delete(&models.User{}, id).Error
				},
			},
		}
		if err := cascade.Run(tx, "user", id, steps); err != nil {
			return fmt.Errorf("kullanıcı silinemedi: %w", err)
		}
		return nil
	})
}

// GetStats platform geneli sayaçları döndürür.
func (s *UserService) GetStats(ctx context.Context, requester authz.Requester) (*PlatformStats, error) {
	if err := requireSuperAdmin(requester); err != nil {
		return nil, err
	}
	stats := &PlatformStats{}
	var err error
	if stats.Users, err = s.repo.GetCount(ctx); err != nil {
		return nil, err
	}
	if stats.Organizations, err = s.orgRepo.GetCount(ctx); err != nil {
		return nil, err
	}
	if stats.Teams, err = s.teamRepo.GetCount(ctx); err != nil {
		return nil, err
	}
	if stats.Cards, err = s.cardRepo.GetCount(ctx); err != nil {
		return nil, err
	}
	return stats, nil
}

// GetRecentActivity en son güncellenen kayıtları tek listede döndürür.
func (s *UserService) GetRecentActivity(ctx context.Context, requester authz.Requester, limit int) ([]ActivityEntry, error) {
	if err := requireSuperAdmin(requester); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > queryparams.MaxPerPage {
		limit = queryparams.DefaultPerPage
	}

	entries := make([]ActivityEntry, 0, limit*2)

	var users []models.User
	if err := s.db.WithContext(ctx).Order("updated_at desc").Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		entries = append(entries, ActivityEntry{
			Entity: "user", ID: u.ID, Label: u.Email,
			UpdatedAt: u.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	var cards []models.Card
	if err := s.db.WithContext(ctx).Preload("Detail").Order("updated_at desc").Limit(limit).Find(&cards).Error; err != nil {
		return nil, err
	}
	for _, c := range cards {
		entries = append(entries, ActivityEntry{
			Entity: "card", ID: c.ID, Label: c.Detail.FirstName + " " + c.Detail.LastName,
			UpdatedAt: c.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	var teams []models.Team
	if err := s.db.WithContext(ctx).Order("updated_at desc").Limit(limit).Find(&teams).Error; err != nil {
		return nil, err
	}
	for _, t := range teams {
		entries = append(entries, ActivityEntry{
			Entity: "team", ID: t.ID, Label: t.Name,
			UpdatedAt: t.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	var orgs []models.Organization
	if err := s.db.WithContext(ctx).Order("updated_at desc").Limit(limit).Find(&orgs).Error; err != nil {
		return nil, err
	}
	for _, o := range orgs {
		entries = append(entries, ActivityEntry{
			Entity: "organization", ID: o.ID, Label: o.Name,
			UpdatedAt: o.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	return entries, nil
}

var _ IUserService = (*UserService)(nil)
