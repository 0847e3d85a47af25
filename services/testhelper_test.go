package services

import (
	"context"
	"fmt"
	"testing"

	"kartvizit.link/models"
	"kartvizit.link/pkg/authz"
	"kartvizit.link/pkg/queryparams"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int

// newTestDB her test için izole bir in-memory veritabanı açar.
// Bağlantı havuzu aynı veritabanını görsün diye isimli shared-cache kullanılır.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	testDBSeq++
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("test veritabanı açılamadı: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.Team{},
		&models.TeamMember{},
		&models.Card{},
		&models.CardDetail{},
	)
	if err != nil {
		t.Fatalf("test migrasyonu başarısız: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

var testUserSeq int

// createTestUser veritabanına kullanıcı yazar ve döndürür.
func createTestUser(t *testing.T, db *gorm.DB, accountType models.AccountType, role models.Role) *models.User {
	t.Helper()
	testUserSeq++
	user := &models.User{
		Email:       fmt.Sprintf("user%d@example.com", testUserSeq),
		Name:        fmt.Sprintf("Test User %d", testUserSeq),
		AccountType: accountType,
		Role:        role,
		Status:      models.UserStatusActive,
		IsVerified:  true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("test kullanıcısı oluşturulamadı: %v", err)
	}
	return user
}

func requesterFor(user *models.User) authz.Requester {
	return authz.Requester{UserID: user.ID, Role: user.Role, AccountType: user.AccountType}
}

func testCtx() context.Context {
	return context.Background()
}

func defaultTestParams() queryparams.ListParams {
	return queryparams.DefaultListParams("created_at")
}
