package repositories

import (
	"context"
	"errors"

	"kartvizit.link/configs/configsdatabase"
	"kartvizit.link/models"
	"kartvizit.link/pkg/queryparams"
	"kartvizit.link/pkg/turkishsearch"

	"gorm.io/gorm"
)

// ITeamRepository takım ve üyelik veritabanı işlemleri için arayüz.
type ITeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	FindByID(ctx context.Context, id uint) (*models.Team, error)
	FindByIDWithMembers(ctx context.Context, id uint) (*models.Team, error)
	FindByOrganizationID(ctx context.Context, orgID uint) ([]models.Team, error)
	Save(ctx context.Context, team *models.Team) error
	Delete(ctx context.Context, id uint) error
	GetAllPaginated(ctx context.Context, ownerUserID uint, params queryparams.ListParams) ([]models.Team, int64, error)
	GetCount(ctx context.Context) (int64, error)

	// Üyelik işlemleri
	FindMember(ctx context.Context, teamID, userID uint) (*models.TeamMember, error)
	AddMember(ctx context.Context, member *models.TeamMember) error
	RemoveMember(ctx context.Context, teamID, userID uint) error
	SaveMember(ctx context.Context, member *models.TeamMember) error
}

// TeamRepository ITeamRepository arayüzünü uygular.
type TeamRepository struct {
	base *BaseRepository[models.Team]
	db   *gorm.DB
}

// NewTeamRepository global bağlantı üzerinde çalışan repository oluşturur.
func NewTeamRepository() ITeamRepository {
	return NewTeamRepositoryTx(configsdatabase.GetDB())
}

// NewTeamRepositoryTx verilen bağlantı/transaction üzerinde çalışır.
func NewTeamRepositoryTx(db *gorm.DB) ITeamRepository {
	base := NewBaseRepository[models.Team](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "name"})
	return &TeamRepository{base: base, db: db}
}

func (r *TeamRepository) Create(ctx context.Context, team *models.Team) error {
	return r.base.Create(ctx, team)
}

func (r *TeamRepository) FindByID(ctx context.Context, id uint) (*models.Team, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	return r.base.FindByID(ctx, id)
}

// FindByIDWithMembers takımı üyelik listesiyle birlikte getirir.
func (r *TeamRepository) FindByIDWithMembers(ctx context.Context, id uint) (*models.Team, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var team models.Team
	err := r.db.WithContext(ctx).Preload("Members").First(&team, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *TeamRepository) FindByOrganizationID(ctx context.Context, orgID uint) ([]models.Team, error) {
	var teams []models.Team
	err := r.db.WithContext(ctx).Where("organization_id = ?", orgID).Find(&teams).Error
	return teams, err
}

func (r *TeamRepository) Save(ctx context.Context, team *models.Team) error {
	return r.base.Save(ctx, team)
}

func (r *TeamRepository) Delete(ctx context.Context, id uint) error {
	return r.base.Delete(ctx, id)
}

// GetAllPaginated takımları listeler. ownerUserID 0 ise tüm kayıtlar döner.
func (r *TeamRepository) GetAllPaginated(ctx context.Context, ownerUserID uint, params queryparams.ListParams) ([]models.Team, int64, error) {
	var results []models.Team
	var totalCount int64

	query := r.db.WithContext(ctx).Model(&models.Team{})
	if ownerUserID != 0 {
		query = query.Where("owner_user_id = ?", ownerUserID)
	}
	if params.Search != "" {
		frag, args := turkishsearch.SQLFilter("teams.name", params.Search)
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
		Preload("Members").
		Find(&results).Error
	return results, totalCount, err
}

func (r *TeamRepository) GetCount(ctx context.Context) (int64, error) {
	return r.base.GetCount(ctx)
}

// FindMember takım+kullanıcı ikilisine ait üyelik kaydını bulur.
func (r *TeamRepository) FindMember(ctx context.Context, teamID, userID uint) (*models.TeamMember, error) {
	var member models.TeamMember
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *TeamRepository) AddMember(ctx context.Context, member *models.TeamMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// RemoveMember üyelik kaydını kalıcı olarak siler.
// Üyelik satırları denetim gerektirmeyen bağ kayıtlarıdır, soft delete tutulmaz.
func (r *TeamRepository) RemoveMember(ctx context.Context, teamID, userID uint) error {
	result := r.db.WithContext(ctx).Unscoped().
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Delete(&models.TeamMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TeamRepository) SaveMember(ctx context.Context, member *models.TeamMember) error {
	return r.db.WithContext(ctx).Save(member).Error
}

// Arayüz uyumluluğu kontrolü
var _ ITeamRepository = (*TeamRepository)(nil)
