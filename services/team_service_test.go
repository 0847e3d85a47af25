package services

import (
	"errors"
	"testing"

	"kartvizit.link/models"
)

func TestTeamCreateAndOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewTeamServiceWithDB(db)
	owner := createTestUser(t, db, models.AccountTypeTeam, models.RoleUser)
	other := createTestUser(t, db, models.AccountTypeTeam, models.RoleUser)

	if _, err := svc.Create(testCtx(), requesterFor(owner), TeamInput{}); !errors.Is(err, ErrTeamNameRequired) {
		t.Errorf("boş isim reddedilmeli, gelen %v", err)
	}

	team, err := svc.Create(testCtx(), requesterFor(owner), TeamInput{Name: "Satış"})
	if err != nil {
		t.Fatalf("Create başarısız: %v", err)
	}
	if team.OwnerUserID != owner.ID {
		t.Errorf("sahip istek sahibi olmalı, gelen %d", team.OwnerUserID)
	}

	if _, err := svc.GetByID(testCtx(), requesterFor(other), team.ID); !errors.Is(err, ErrTeamForbidden) {
		t.Errorf("başka kullanıcı takımı okuyamamalı, gelen %v", err)
	}
}

func TestTeamCreateWithForeignOrganization(t *testing.T) {
	db := newTestDB(t)
	teamSvc := NewTeamServiceWithDB(db)
	orgSvc := NewOrganizationServiceWithDB(db)

	orgOwner := createTestUser(t, db, models.AccountTypeOrganization, models.RoleUser)
	outsider := createTestUser(t, db, models.AccountTypeTeam, models.RoleUser)

	org, err := orgSvc.Create(testCtx(), requesterFor(orgOwner), OrganizationInput{Name: "Acme"})
	if err != nil {
		t.Fatalf("organizasyon oluşturulamadı: %v", err)
	}

	// Başka tenant'ın organizasyonuna takım bağlanamaz.
	if _, err := teamSvc.Create(testCtx(), requesterFor(outsider), TeamInput{
		Name:           "Sızma",
		OrganizationID: &org.ID,
	}); !errors.Is(err, ErrTeamForbidden) {
		t.Errorf("yabancı organizasyona bağlama reddedilmeli, gelen %v", err)
	}

	// Organizasyon sahibi bağlayabilir.
	team, err := teamSvc.Create(testCtx(), requesterFor(orgOwner), TeamInput{
		Name:           "Ar-Ge",
		OrganizationID: &org.ID,
	})
	if err != nil {
		t.Fatalf("organizasyona bağlı takım oluşturulamadı: %v", err)
	}
	if team.OrganizationID == nil || *team.OrganizationID != org.ID {
		t.Error("takım organizasyona bağlanmalı")
	}

	// Olmayan organizasyon ayrı hatayla reddedilir.
	missing := uint(99999)
	if _, err := teamSvc.Create(testCtx(), requesterFor(orgOwner), TeamInput{
		Name:           "Hayalet",
		OrganizationID: &missing,
	}); !errors.Is(err, ErrTeamOrgNotFound) {
		t.Errorf("beklenen ErrTeamOrgNotFound, gelen %v", err)
	}
}

func TestTeamUpdateKeepsOrganizationLink(t *testing.T) {
	db := newTestDB(t)
	teamSvc := NewTeamServiceWithDB(db)
	orgSvc := NewOrganizationServiceWithDB(db)
	owner := createTestUser(t, db, models.AccountTypeOrganization, models.RoleUser)

	org, err := orgSvc.Create(testCtx(), requesterFor(owner), OrganizationInput{Name: "Acme"})
	if err != nil {
		t.Fatalf("organizasyon oluşturulamadı: %v", err)
	}
	team, err := teamSvc.Create(testCtx(), requesterFor(owner), TeamInput{
		Name:           "Ar-Ge",
		OrganizationID: &org.ID,
	})
	if err != nil {
		t.Fatalf("takım oluşturulamadı: %v", err)
	}

	// Sadece isim güncellenirse organizasyon bağı yerinde kalır.
	updated, err := teamSvc.Update(testCtx(), requesterFor(owner), team.ID, TeamInput{Name: "Ür-Ge"})
	if err != nil {
		t.Fatalf("Update başarısız: %v", err)
	}
	if updated.Name != "Ür-Ge" {
		t.Errorf("isim güncellenmeli, gelen %q", updated.Name)
	}
	if updated.OrganizationID == nil || *updated.OrganizationID != org.ID {
		t.Error("organizasyon bağı sessizce kopmamalı")
	}

	// Bağı koparmak açık bir 0 ister.
	detach := uint(0)
	updated, err = teamSvc.Update(testCtx(), requesterFor(owner), team.ID, TeamInput{
		Name:           "Ür-Ge",
		OrganizationID: &detach,
	})
	if err != nil {
		t.Fatalf("Update başarısız: %v", err)
	}
	if updated.OrganizationID != nil {
		t.Error("0 ile organizasyon bağı koparılmalı")
	}
}

func TestTeamMembershipLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewTeamServiceWithDB(db)
	owner := createTestUser(t, db, models.AccountTypeTeam, models.RoleUser)
	member := createTestUser(t, db, models.AccountTypeIndividual, models.RoleUser)

	team, err := svc.Create(testCtx(), requesterFor(owner), TeamInput{Name: "Destek"})
	if err != nil {
		t.Fatalf("Create başarısız: %v", err)
	}

	created, err := svc.AddMember(testCtx(), requesterFor(owner), team.ID, member.ID, "")
	if err != nil {
		t.Fatalf("AddMember başarısız: %v", err)
	}
	if created.Role != models.TeamRoleMember {
		t.Errorf("boş rol member'a düşmeli, gelen %q", created.Role)
	}

	// Üyelik kullanıcı kaydına damgalanır.
	var stored models.User
	db.First(&stored, member.ID)
	if stored.TeamID == nil || *stored.TeamID != team.ID {
		t.Error("üyenin team_id'si dolmalı")
	}

	// Aynı kullanıcı ikinci kez eklenemez.
	if _, err := svc.AddMember(testCtx(), requesterFor(owner), team.ID, member.ID, models.TeamRoleMember); !errors.Is(err, ErrMemberExists) {
		t.Errorf("çift ekleme reddedilmeli, gelen %v", err)
	}

	// Rol güncelleme.
	if err := svc.UpdateMemberRole(testCtx(), requesterFor(owner), team.ID, member.ID, models.TeamRoleAdmin); err != nil {
		t.Fatalf("UpdateMemberRole başarısız: %v", err)
	}
	if err := svc.UpdateMemberRole(testCtx(), requesterFor(owner), team.ID, member.ID, "patron"); !errors.Is(err, ErrInvalidMemberRole) {
		t.Errorf("geçersiz rol reddedilmeli, gelen %v", err)
	}

	// Çıkarma team_id referansını temizler.
	if err := svc.RemoveMember(testCtx(), requesterFor(owner), team.ID, member.ID); err != nil {
		t.Fatalf("RemoveMember başarısız: %v", err)
	}
	db.First(&stored, member.ID)
	if stored.TeamID != nil {
		t.Error("çıkarılan üyenin team_id'si temizlenmeli")
	}
	if err := svc.RemoveMember(testCtx(), requesterFor(owner), team.ID, member.ID); !errors.Is(err, ErrMemberNotFound) {
		t.Errorf("olmayan üyelik ErrMemberNotFound dönmeli, gelen %v", err)
	}

	// Çıkarılan üye yeniden eklenebilir.
	if _, err := svc.AddMember(testCtx(), requesterFor(owner), team.ID, member.ID, models.TeamRoleMember); err != nil {
		t.Errorf("yeniden ekleme başarısız: %v", err)
	}
}

func TestAddMemberValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewTeamServiceWithDB(db)
	owner := createTestUser(t, db, models.AccountTypeTeam, models.RoleUser)
	stranger := createTestUser(t, db, models.AccountTypeIndividual, models.RoleUser)

	team, err := svc.Create(testCtx(), requesterFor(owner), TeamInput{Name: "Ops"})
	if err != nil {
		t.Fatalf("Create başarısız: %v", err)
	}

	if _, err := svc.AddMember(testCtx(), requesterFor(owner), team.ID, 99999, models.TeamRoleMember); !errors.Is(err, ErrMemberUserNotFound) {
		t.Errorf("olmayan kullanıcı eklenememeli, gelen %v", err)
	}
	if _, err := svc.AddMember(testCtx(), requesterFor(stranger), team.ID, stranger.ID, models.TeamRoleMember); !errors.Is(err, ErrTeamForbidden) {
		t.Errorf("takım sahibi olmayan üye ekleyememeli, gelen %v", err)
	}
	if _, err := svc.AddMember(testCtx(), requesterFor(owner), 99999, stranger.ID, models.TeamRoleMember); !errors.Is(err, ErrTeamNotFound) {
		t.Errorf("olmayan takım ErrTeamNotFound dönmeli, gelen %v", err)
	}
}

func TestTeamDeleteCascade(t *testing.T) {
	db := newTestDB(t)
	svc := NewTeamServiceWithDB(db)
	cardSvc := NewCardServiceWithDB(db)
	owner := createTestUser(t, db, models.AccountTypeTeam, models.RoleUser)
	member := createTestUser(t, db, models.AccountTypeIndividual, models.RoleUser)

	team, err := svc.Create(testCtx(), requesterFor(owner), TeamInput{Name: "Silinecek"})
	if err != nil {
		t.Fatalf("Create başarısız: %v", err)
	}
	if _, err := svc.AddMember(testCtx(), requesterFor(owner), team.ID, member.ID, models.TeamRoleMember); err != nil {
		t.Fatalf("AddMember başarısız: %v", err)
	}
	card, err := cardSvc.Create(testCtx(), requesterFor(owner), CardInput{
		Detail: validDetail(),
		TeamID: &team.ID,
	})
	if err != nil {
		t.Fatalf("kart oluşturulamadı: %v", err)
	}

	if err := svc.Delete(testCtx(), requesterFor(owner), team.ID); err != nil {
		t.Fatalf("Delete başarısız: %v", err)
	}

	// Takım gitti.
	if _, err := svc.GetByID(testCtx(), requesterFor(owner), team.ID); !errors.Is(err, ErrTeamNotFound) {
		t.Errorf("silinen takım bulunamamalı, gelen %v", err)
	}
	// Üyenin team_id'si temizlendi, kullanıcı silinmedi.
	var storedMember models.User
	if err := db.First(&storedMember, member.ID).Error; err != nil {
		t.Fatalf("üye kullanıcı silinmemeli: %v", err)
	}
	if storedMember.TeamID != nil {
		t.Error("üyenin team_id'si temizlenmeli")
	}
	// Üyelik kayıtları kalmadı.
	var membershipCount int64
	db.Model(&models.TeamMember{}).Where("team_id = ?", team.ID).Count(&membershipCount)
	if membershipCount != 0 {
		t.Errorf("üyelik kaydı kalmamalı, kalan %d", membershipCount)
	}
	// Kart silinmedi, takım bağı boşaldı.
	var storedCard models.Card
	if err := db.First(&storedCard, card.ID).Error; err != nil {
		t.Fatalf("kart silinmemeli: %v", err)
	}
	if storedCard.TeamID != nil {
		t.Error("kartın team_id'si temizlenmeli")
	}
}
