package migrations

import (
	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateTeamsTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating teams & team_members tables...")
	err := db.AutoMigrate(&models.Team{}, &models.TeamMember{})
	if err != nil {
		configslog.Log.Error("Failed to migrate teams & team_members tables", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Teams & team_members tables migrated successfully")
	return nil
}
