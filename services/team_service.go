// services/team_service.go
package services

import (
	"context"
	"fmt"
	"time"

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

// TeamServiceError özel servis hataları
type TeamServiceError string

func (e TeamServiceError) Error() string { return string(e) }

const (
	ErrTeamNotFound        TeamServiceError = "takım bulunamadı"
	ErrTeamForbidden       TeamServiceError = "bu işlem için yetkiniz yok"
	ErrTeamNameRequired    TeamServiceError = "takım adı zorunludur"
	ErrTeamOrgNotFound     TeamServiceError = "bağlanmak istenen organizasyon bulunamadı"
	ErrMemberNotFound      TeamServiceError = "kullanıcı bu takımın üyesi değil"
	ErrMemberExists        TeamServiceError = "kullanıcı zaten bu takımın üyesi"
	ErrMemberUserNotFound  TeamServiceError = "eklenmek istenen kullanıcı bulunamadı"
	ErrInvalidMemberRole   TeamServiceError = "geçersiz üyelik rolü"
)

// TeamInput oluşturma/güncelleme girdisidir. Güncellemede OrganizationID
// nil ise mevcut organizasyon bağı korunur; 0 bağı koparır.
type TeamInput struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	OrganizationID *uint  `json:"organization_id"`
}

// ITeamService takım ve üyelik işlemleri için arayüz.
type ITeamService interface {
	Create(ctx context.Context, requester authz.Requester, input TeamInput) (*models.Team, error)
	GetByID(ctx context.Context, requester authz.Requester, id uint) (*models.Team, error)
	GetAllPaginated(ctx context.Context, requester authz.Requester, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	Update(ctx context.Context, requester authz.Requester, id uint, input TeamInput) (*models.Team, error)
	Delete(ctx context.Context, requester authz.Requester, id uint) error

	AddMember(ctx context.Context, requester authz.Requester, teamID, memberUserID uint, role models.TeamRole) (*models.TeamMember, error)
	RemoveMember(ctx context.Context, requester authz.Requester, teamID, memberUserID uint) error
	UpdateMemberRole(ctx context.Context, requester authz.Requester, teamID, memberUserID uint, role models.TeamRole) error
}

// TeamService ITeamService arayüzünü uygular.
//
// Bilinen sınırlama: üyelik düzenlemeleri için iyimser/kötümser kilit
// kullanılmıyor; aynı üyelik kaydına eşzamanlı rol değişikliklerinde
// son yazan kazanır. Çift ekleme ise (team_id, user_id) unique index'i
// sayesinde eşzamanlılıkta bile reddedilir.
type TeamService struct {
	repo     repositories.ITeamRepository
	orgRepo  repositories.IOrganizationRepository
	userRepo repositories.IUserRepository
	db       *gorm.DB
}

// NewTeamService yeni bir TeamService örneği oluşturur.
func NewTeamService() ITeamService {
	return NewTeamServiceWithDB(configsdatabase.GetDB())
}

// NewTeamServiceWithDB verilen bağlantı üzerinde çalışır (testler için).
func NewTeamServiceWithDB(db *gorm.DB) ITeamService {
	return &TeamService{
		repo:     repositories.NewTeamRepositoryTx(db),
		orgRepo:  repositories.NewOrganizationRepositoryTx(db),
		userRepo: repositories.NewUserRepositoryTx(db),
		db:       db,
	}
}

// Create yeni takım oluşturur. Organizasyona bağlanmak isteniyorsa
// istek sahibi o organizasyonun sahibi olmalı (veya super admin).
func (s *TeamService) Create(ctx context.Context, requester authz.Requester, input TeamInput) (*models.Team, error) {
	if decision := authz.Decide(requester, 0, authz.CapManageTeam); !decision.Allowed {
		configslog.Log.Warn("Takım oluşturma reddedildi",
			zap.Uint("userID", requester.UserID), zap.String("reason", decision.Reason))
		return nil, ErrTeamForbidden
	}
	if input.Name == "" {
		return nil, ErrTeamNameRequired
	}

	if input.OrganizationID != nil {
		org, err := s.orgRepo.FindByID(ctx, *input.OrganizationID)
		if err != nil {
			return nil, ErrTeamOrgNotFound
		}
		// Başka tenant'ın organizasyonuna takım bağlanamaz.
		if !authz.IsSuperAdmin(requester) && org.OwnerUserID != requester.UserID {
			configslog.Log.Warn("Yabancı organizasyona takım bağlama denemesi",
				zap.Uint("orgID", org.ID), zap.Uint("userID", requester.UserID))
			return nil, ErrTeamForbidden
		}
	}

	team := models.Team{
		Name:           input.Name,
		Description:    input.Description,
		OwnerUserID:    requester.UserID,
		OrganizationID: input.OrganizationID,
	}
	ctx = models.ContextWithUserID(ctx, requester.UserID)
	if err := s.repo.Create(ctx, &team); err != nil {
		configslog.Log.Error("Takım oluşturulamadı", zap.Error(err))
		return nil, err
	}
	configslog.SLog.Infof("Takım oluşturuldu: ID %d (%s)", team.ID, team.Name)
	return &team, nil
}

// GetByID takımı üyeleriyle getirir; sahiplik kontrolü yapar.
func (s *TeamService) GetByID(ctx context.Context, requester authz.Requester, id uint) (*models.Team, error) {
	team, err := s.repo.FindByIDWithMembers(ctx, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	if decision := authz.Decide(requester, team.OwnerUserID, authz.CapManageTeam); !decision.Allowed {
		return nil, ErrTeamForbidden
	}
	return team, nil
}

// GetAllPaginated super admin için tüm takımları, diğerleri için sahip olunanları listeler.
func (s *TeamService) GetAllPaginated(ctx context.Context, requester authz.Requester, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	ownerFilter := requester.UserID
	if authz.IsSuperAdmin(requester) {
		ownerFilter = 0
	}
	teams, totalCount, err := s.repo.GetAllPaginated(ctx, ownerFilter, params)
	if err != nil {
		configslog.Log.Error("Takımlar listelenemedi", zap.Error(err))
		return nil, err
	}
	return queryparams.NewPaginatedResult(teams, params, totalCount), nil
}

// Update takım bilgilerini günceller; organizasyon bağı değişiyorsa
// Create ile aynı sahiplik kuralı uygulanır.
func (s *TeamService) Update(ctx context.Context, requester authz.Requester, id uint, input TeamInput) (*models.Team, error) {
	team, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	if decision := authz.Decide(requester, team.OwnerUserID, authz.CapManageTeam); !decision.Allowed {
		return nil, ErrTeamForbidden
	}
	if input.Name == "" {
		return nil, ErrTeamNameRequired
	}

	// nil mevcut bağı korur, 0 koparır, başka bir değer Create ile aynı
	// sahiplik kuralından geçer.
	if input.OrganizationID != nil {
		if *input.OrganizationID == 0 {
			team.OrganizationID = nil
		} else {
			if team.OrganizationID == nil || *team.OrganizationID != *input.OrganizationID {
				org, err := s.orgRepo.FindByID(ctx, *input.OrganizationID)
				if err != nil {
					return nil, ErrTeamOrgNotFound
				}
				if !authz.IsSuperAdmin(requester) && org.OwnerUserID != requester.UserID {
					return nil, ErrTeamForbidden
				}
			}
			team.OrganizationID = input.OrganizationID
		}
	}

	team.Name = input.Name
	team.Description = input.Description
	ctx = models.ContextWithUserID(ctx, requester.UserID)
	if err := s.repo.Save(ctx, team); err != nil {
		configslog.Log.Error("Takım güncellenemedi", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return team, nil
}

// Delete takımı siler. Üyelerin team_id referansı ve kartlardaki takım
// bağı temizlenir; kartların kendisi silinmez, çalışmaya devam eder.
func (s *TeamService) Delete(ctx context.Context, requester authz.Requester, id uint) error {
	team, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return ErrTeamNotFound
		}
		return err
	}
	if decision := authz.Decide(requester, team.OwnerUserID, authz.CapManageTeam); !decision.Allowed {
		return ErrTeamForbidden
	}

	txCtx := models.ContextWithUserID(ctx, requester.UserID)
	return s.db.Transaction(func(tx *gorm.DB) error {
		steps := []cascade.Step{
			{
				Name: "üyelerdeki team_id referansını temizle",
				Run: func(tx *gorm.DB) error {
					return tx.WithContext(txCtx).Model(&models.User{}).
						Where("team_id = ?", id).
						Update("team_id", nil).Error
				},
			},
			{
				Name: "üyelik kayıtlarını sil",
				Run: func(tx *gorm.DB) error {
					return tx.WithContext(txCtx).Unscoped().
						Where("team_id = ?", id).
						Delete(&models.TeamMember{}).Error
				},
			},
			{
				Name: "kartlardaki team_id referansını temizle",
				Run: func(tx *gorm.DB) error {
					return tx.WithContext(txCtx).Model(&models.Card{}).
						Where("team_id = ?", id).
						Update("team_id", nil).Error
				},
			},
			{
				Name: "takım kaydını sil",
				Run: func(tx *gorm.DB) error {
					return repositories.NewTeamRepositoryTx(tx).Delete(txCtx, id)
				},
			},
		}
		if err := cascade.Run(tx, "team", id, steps); err != nil {
			return fmt.Errorf("takım silinemedi: %w", err)
		}
		return nil
	})
}

// canManageMembers üyelik işlemleri için ortak yetki kontrolü: takım
// sahibi veya super admin.
func (s *TeamService) canManageMembers(requester authz.Requester, team *models.Team) bool {
	return authz.Decide(requester, team.OwnerUserID, authz.CapManageTeam).Allowed
}

// AddMember takıma üye ekler. Üyelik eklemenin kullanıcı kaydına yan
// etkisi vardır: üyenin team_id'si (ve takım bir organizasyona bağlıysa
// organization_id'si) damgalanır.
func (s *TeamService) AddMember(ctx context.Context, requester authz.Requester, teamID, memberUserID uint, role models.TeamRole) (*models.TeamMember, error) {
	if role == "" {
		role = models.TeamRoleMember
	}
	if !role.IsValid() {
		return nil, ErrInvalidMemberRole
	}

	team, err := s.repo.FindByID(ctx, teamID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	if !s.canManageMembers(requester, team) {
		return nil, ErrTeamForbidden
	}

	member, err := s.userRepo.FindByID(ctx, memberUserID)
	if err != nil {
		return nil, ErrMemberUserNotFound
	}
	if _, err := s.repo.FindMember(ctx, teamID, memberUserID); err == nil {
		return nil, ErrMemberExists
	}

	txCtx := models.ContextWithUserID(ctx, requester.UserID)
	var created models.TeamMember
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		teamRepoTx := repositories.NewTeamRepositoryTx(tx)
		userRepoTx := repositories.NewUserRepositoryTx(tx)

		created = models.TeamMember{
			TeamID:   teamID,
			UserID:   memberUserID,
			Role:     role,
			JoinedAt: time.Now(),
		}
		if err := teamRepoTx.AddMember(txCtx, &created); err != nil {
			// Eşzamanlı ekleme yarışında unique index devreye girer.
			configslog.Log.Warn("Üyelik eklenemedi", zap.Uint("teamID", teamID), zap.Uint("userID", memberUserID), zap.Error(err))
			return ErrMemberExists
		}

		member.TeamID = &teamID
		if team.OrganizationID != nil {
			member.OrganizationID = team.OrganizationID
		}
		if err := userRepoTx.Save(txCtx, member); err != nil {
			return err
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	configslog.SLog.Infof("Takıma üye eklendi: takım %d, kullanıcı %d (%s)", teamID, memberUserID, role)
	return &created, nil
}

// RemoveMember üyeliği kaldırır ve üyenin team_id referansını temizler.
func (s *TeamService) RemoveMember(ctx context.Context, requester authz.Requester, teamID, memberUserID uint) error {
	team, err := s.repo.FindByID(ctx, teamID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return ErrTeamNotFound
		}
		return err
	}
	if !s.canManageMembers(requester, team) {
		return ErrTeamForbidden
	}
	if _, err := s.repo.FindMember(ctx, teamID, memberUserID); err != nil {
		return ErrMemberNotFound
	}

	txCtx := models.ContextWithUserID(ctx, requester.UserID)
	return s.db.Transaction(func(tx *gorm.DB) error {
		teamRepoTx := repositories.NewTeamRepositoryTx(tx)
		if err := teamRepoTx.RemoveMember(txCtx, teamID, memberUserID); err != nil {
			if err == repositories.ErrNotFound {
				return ErrMemberNotFound
			}
			return err
		}
		return tx.WithContext(txCtx).Model(&models.User{}).
			Where("id = ? AND team_id = ?", memberUserID, teamID).
			Update("team_id", nil).Error
	})
}

// UpdateMemberRole üyelik rolünü değiştirir.
func (s *TeamService) UpdateMemberRole(ctx context.Context, requester authz.Requester, teamID, memberUserID uint, role models.TeamRole) error {
	if !role.IsValid() {
		return ErrInvalidMemberRole
	}
	team, err := s.repo.FindByID(ctx, teamID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return ErrTeamNotFound
		}
		return err
	}
	if !s.canManageMembers(requester, team) {
		return ErrTeamForbidden
	}

	member, err := s.repo.FindMember(ctx, teamID, memberUserID)
	if err != nil {
		return ErrMemberNotFound
	}
	member.Role = role
	txCtx := models.ContextWithUserID(ctx, requester.UserID)
	return s.repo.SaveMember(txCtx, member)
}

var _ ITeamService = (*TeamService)(nil)
