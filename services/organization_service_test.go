package services

import (
	"errors"
	"testing"

	"kartvizit.link/models"
)

func TestOrganizationCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrganizationServiceWithDB(db)
	owner := createTestUser(t, db, models.AccountTypeOrganization, models.RoleUser)

	if _, err := svc.Create(testCtx(), requesterFor(owner), OrganizationInput{}); !errors.Is(err, ErrOrgNameRequired) {
		t.Errorf("boş isim reddedilmeli, gelen %v", err)
	}

	org, err := svc.Create(testCtx(), requesterFor(owner), OrganizationInput{
		Name:    "Acme",
		Website: "https://acme.example.com",
	})
	if err != nil {
		t.Fatalf("Create başarısız: %v", err)
	}
	if org.OwnerUserID != owner.ID {
		t.Errorf("sahip istek sahibi olmalı, gelen %d", org.OwnerUserID)
	}

	view, err := svc.GetByID(testCtx(), requesterFor(owner), org.ID)
	if err != nil {
		t.Fatalf("GetByID başarısız: %v", err)
	}
	if view.Organization.Name != "Acme" {
		t.Errorf("isim Acme olmalı, gelen %q", view.Organization.Name)
	}
	if len(view.Teams) != 0 {
		t.Errorf("yeni organizasyonda takım olmamalı, gelen %d", len(view.Teams))
	}
}

func TestOrganizationOwnershipIsolation(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrganizationServiceWithDB(db)
	ownerA := createTestUser(t, db, models.AccountTypeOrganization, models.RoleUser)
	ownerB := createTestUser(t, db, models.AccountTypeOrganization, models.RoleUser)
	admin := createTestUser(t, db, models.AccountTypeIndividual, models.RoleSuperAdmin)

	orgA, err := svc.Create(testCtx(), requesterFor(ownerA), OrganizationInput{Name: "A Corp"})
	if err != nil {
		t.Fatalf("Create başarısız: %v", err)
	}
	if _, err := svc.Create(testCtx(), requesterFor(ownerB), OrganizationInput{Name: "B Corp"}); err != nil {
		t.Fatalf("Create başarısız: %v", err)
	}

	// B, A'nın organizasyonunu göremez ve değiştiremez.
	if _, err := svc.GetByID(testCtx(), requesterFor(ownerB), orgA.ID); !errors.Is(err, ErrOrgForbidden) {
		t.Errorf("yabancı organizasyon okunamamalı, gelen %v", err)
	}
	if _, err := svc.Update(testCtx(), requesterFor(ownerB), orgA.ID, OrganizationInput{Name: "Ele Geçirildi"}); !errors.Is(err, ErrOrgForbidden) {
		t.Errorf("yabancı organizasyon güncellenememeli, gelen %v", err)
	}
	if err := svc.Delete(testCtx(), requesterFor(ownerB), orgA.ID); !errors.Is(err, ErrOrgForbidden) {
		t.Errorf("yabancı organizasyon silinememeli, gelen %v", err)
	}

	// Listelerde herkes sadece kendi kayıtlarını görür; super admin hepsini.
	listA, err := svc.GetAllPaginated(testCtx(), requesterFor(ownerA), defaultTestParams())
	if err != nil {
		t.Fatalf("liste başarısız: %v", err)
	}
	if listA.Meta.Total != 1 {
		t.Errorf("A sadece kendi kaydını görmeli, gelen %d", listA.Meta.Total)
	}
	listAdmin, err := svc.GetAllPaginated(testCtx(), requesterFor(admin), defaultTestParams())
	if err != nil {
		t.Fatalf("admin listesi başarısız: %v", err)
	}
	if listAdmin.Meta.Total != 2 {
		t.Errorf("super admin tüm kayıtları görmeli, gelen %d", listAdmin.Meta.Total)
	}
}

func TestOrganizationDeleteCascade(t *testing.T) {
	db := newTestDB(t)
	orgSvc := NewOrganizationServiceWithDB(db)
	teamSvc := NewTeamServiceWithDB(db)
	cardSvc := NewCardServiceWithDB(db)

	owner := createTestUser(t, db, models.AccountTypeOrganization, models.RoleUser)
	member := createTestUser(t, db, models.AccountTypeIndividual, models.RoleUser)

	org, err := orgSvc.Create(testCtx(), requesterFor(owner), OrganizationInput{Name: "Dağılan"})
	if err != nil {
		t.Fatalf("Create başarısız: %v", err)
	}
	team, err := teamSvc.Create(testCtx(), requesterFor(owner), TeamInput{
		Name:           "Alt Takım",
		OrganizationID: &org.ID,
	})
	if err != nil {
		t.Fatalf("takım oluşturulamadı: %v", err)
	}
	if _, err := teamSvc.AddMember(testCtx(), requesterFor(owner), team.ID, member.ID, models.TeamRoleMember); err != nil {
		t.Fatalf("üye eklenemedi: %v", err)
	}
	card, err := cardSvc.Create(testCtx(), requesterFor(owner), CardInput{
		Detail:         validDetail(),
		OrganizationID: &org.ID,
	})
	if err != nil {
		t.Fatalf("kart oluşturulamadı: %v", err)
	}

	if err := orgSvc.Delete(testCtx(), requesterFor(owner), org.ID); err != nil {
		t.Fatalf("Delete başarısız: %v", err)
	}

	// Organizasyon ve alt takım gitti.
	if _, err := orgSvc.GetByID(testCtx(), requesterFor(owner), org.ID); !errors.Is(err, ErrOrgNotFound) {
		t.Errorf("silinen organizasyon bulunamamalı, gelen %v", err)
	}
	if _, err := teamSvc.GetByID(testCtx(), requesterFor(owner), team.ID); !errors.Is(err, ErrTeamNotFound) {
		t.Errorf("alt takım da silinmeli, gelen %v", err)
	}

	// Üye kullanıcı durdu, referansları temizlendi.
	var storedMember models.User
	if err := db.First(&storedMember, member.ID).Error; err != nil {
		t.Fatalf("üye kullanıcı silinmemeli: %v", err)
	}
	if storedMember.TeamID != nil {
		t.Error("üyenin team_id'si temizlenmeli")
	}
	if storedMember.OrganizationID != nil {
		t.Error("üyenin organization_id'si temizlenmeli")
	}

	// Kart durdu, organizasyon bağı boşaldı.
	var storedCard models.Card
	if err := db.First(&storedCard, card.ID).Error; err != nil {
		t.Fatalf("kart silinmemeli: %v", err)
	}
	if storedCard.OrganizationID != nil {
		t.Error("kartın organization_id'si temizlenmeli")
	}
}
