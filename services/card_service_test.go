package services

import (
	"errors"
	"testing"

	"kartvizit.link/models"
)

func validDetail() models.CardDetail {
	return models.CardDetail{
		FirstName: "Ali",
		LastName:  "Veli",
		Email:     "ali@example.com",
		Theme:     models.CardThemeClassic,
	}
}

func boolPtr(b bool) *bool { return &b }

func TestCardCreateValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewCardServiceWithDB(db)
	owner := createTestUser(t, db, models.AccountTypeIndividual, models.RoleUser)

	tests := []struct {
		name    string
		detail  models.CardDetail
		wantErr error
	}{
		{"eksik isim", models.CardDetail{LastName: "Veli", Email: "a@b.com", Theme: models.CardThemeClassic}, ErrCardNameRequired},
		{"eksik e-posta", models.CardDetail{FirstName: "Ali", LastName: "Veli", Theme: models.CardThemeClassic}, ErrCardNameRequired},
		{"geçersiz tema", models.CardDetail{FirstName: "Ali", LastName: "Veli", Email: "a@b.com", Theme: "neon"}, ErrCardInvalidTheme},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(testCtx(), requesterFor(owner), CardInput{Detail: tt.detail})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("beklenen %v, gelen %v", tt.wantErr, err)
			}
		})
	}
}

func TestCardCreateAssignsShareKey(t *testing.T) {
	db := newTestDB(t)
	svc := NewCardServiceWithDB(db)
	owner := createTestUser(t, db, models.AccountTypeTeam, models.RoleUser)

	card, err := svc.Create(testCtx(), requesterFor(owner), CardInput{Detail: validDetail()})
	if err != nil {
		t.Fatalf("Create başarısız: %v", err)
	}
	if len(card.ShareKey) != models.ShareKeyLength {
		t.Errorf("paylaşım anahtarı %d karakter olmalı, gelen %d", models.ShareKeyLength, len(card.ShareKey))
	}
	if card.Status != models.CardStatusActive {
		t.Errorf("varsayılan durum active olmalı, gelen %q", card.Status)
	}
	if card.IsPublic {
		t.Error("varsayılan görünürlük private olmalı")
	}
}

func TestIndividualCardQuota(t *testing.T) {
	db := newTestDB(t)
	svc := NewCardServiceWithDB(db)
	owner := createTestUser(t, db, models.AccountTypeIndividual, models.RoleUser)

	first, err := svc.Create(testCtx(), requesterFor(owner), CardInput{Detail: validDetail()})
	if err != nil {
		t.Fatalf("ilk kart oluşturulamadı: %v", err)
	}

	// İkinci aktif kart bireysel hesapta reddedilir.
	if _, err := svc.Create(testCtx(), requesterFor(owner), CardInput{Detail: validDetail()}); !errors.Is(err, ErrCardQuotaExceeded) {
		t.Fatalf("beklenen ErrCardQuotaExceeded, gelen %v", err)
	}

	// İlk kart arşivlenince yeni aktif kart açılabilir.
	if _, err := svc.Update(testCtx(), requesterFor(owner), first.ID, CardInput{
		Detail: validDetail(),
		Status: models.CardStatusArchived,
	}); err != nil {
		t.Fatalf("arşivleme başarısız: %v", err)
	}
	second, err := svc.Create(testCtx(), requesterFor(owner), CardInput{Detail: validDetail()})
	if err != nil {
		t.Fatalf("arşiv sonrası kart oluşturulamadı: %v", err)
	}

	// Arşivdeki kartın geri aktifleştirilmesi kotayı yeniden kontrol eder.
	if _, err := svc.Update(testCtx(), requesterFor(owner), first.ID, CardInput{
		Detail: validDetail(),
		Status: models.CardStatusActive,
	}); !errors.Is(err, ErrCardQuotaExceeded) {
		t.Errorf("geri aktifleştirme kotayı aşmalıydı, gelen %v", err)
	}
	_ = second
}

func TestCardStatusVocabularyEnforced(t *testing.T) {
	db := newTestDB(t)
	svc := NewCardServiceWithDB(db)
	owner := createTestUser(t, db, models.AccountTypeIndividual, models.RoleUser)

	first, err := svc.Create(testCtx(), requesterFor(owner), CardInput{Detail: validDetail()})
	if err != nil {
		t.Fatalf("ilk kart oluşturulamadı: %v", err)
	}

	// Sözlük dışı durum ne oluşturmada ne güncellemede kabul edilir.
	if _, err := svc.Create(testCtx(), requesterFor(owner), CardInput{
		Detail: validDetail(),
		Status: models.CardStatus("hidden"),
	}); !errors.Is(err, ErrCardInvalidStatus) {
		t.Fatalf("sözlük dışı durumla oluşturma reddedilmeli, gelen %v", err)
	}
	if _, err := svc.Update(testCtx(), requesterFor(owner), first.ID, CardInput{
		Detail: validDetail(),
		Status: models.CardStatus("hidden"),
	}); !errors.Is(err, ErrCardInvalidStatus) {
		t.Fatalf("sözlük dışı durumla güncelleme reddedilmeli, gelen %v", err)
	}

	// Uydurma bir durum üzerinden kota aşılamaz: ilk kart aktif kaldığı
	// için ikinci aktif kart hâlâ reddedilir.
	if _, err := svc.Create(testCtx(), requesterFor(owner), CardInput{Detail: validDetail()}); !errors.Is(err, ErrCardQuotaExceeded) {
		t.Errorf("beklenen ErrCardQuotaExceeded, gelen %v", err)
	}

	reloaded, err := svc.GetByID(testCtx(), requesterFor(owner), first.ID)
	if err != nil {
		t.Fatalf("GetByID başarısız: %v", err)
	}
	if reloaded.Status != models.CardStatusActive {
		t.Errorf("kart durumu bozulmamalı, gelen %q", reloaded.Status)
	}
}

func TestArchivedCardCreateSkipsQuota(t *testing.T) {
	db := newTestDB(t)
	svc := NewCardServiceWithDB(db)
	owner := createTestUser(t, db, models.AccountTypeIndividual, models.RoleUser)

	if _, err := svc.Create(testCtx(), requesterFor(owner), CardInput{Detail: validDetail()}); err != nil {
		t.Fatalf("aktif kart oluşturulamadı: %v", err)
	}

	// Kota aktif kart sayısını sınırlar; arşivli kart oluşturma serbesttir.
	archived, err := svc.Create(testCtx(), requesterFor(owner), CardInput{
		Detail: validDetail(),
		Status: models.CardStatusArchived,
	})
	if err != nil {
		t.Fatalf("arşivli kart oluşturulamalı: %v", err)
	}

	// Ama aktifleştirilmesi kotaya takılır.
	if _, err := svc.Update(testCtx(), requesterFor(owner), archived.ID, CardInput{
		Detail: validDetail(),
		Status: models.CardStatusActive,
	}); !errors.Is(err, ErrCardQuotaExceeded) {
		t.Errorf("aktifleştirme kotayı aşmalıydı, gelen %v", err)
	}
}

func TestTeamAccountHasNoCardQuota(t *testing.T) {
	db := newTestDB(t)
	svc := NewCardServiceWithDB(db)
	owner := createTestUser(t, db, models.AccountTypeTeam, models.RoleUser)

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(testCtx(), requesterFor(owner), CardInput{Detail: validDetail()}); err != nil {
			t.Fatalf("takım hesabı %d. kartta takıldı: %v", i+1, err)
		}
	}
}

func TestCardOwnershipEnforced(t *testing.T) {
	db := newTestDB(t)
	svc := NewCardServiceWithDB(db)
	owner := createTestUser(t, db, models.AccountTypeIndividual, models.RoleUser)
	other := createTestUser(t, db, models.AccountTypeIndividual, models.RoleUser)
	admin := createTestUser(t, db, models.AccountTypeIndividual, models.RoleSuperAdmin)

	card, err := svc.Create(testCtx(), requesterFor(owner), CardInput{Detail: validDetail()})
	if err != nil {
		t.Fatalf("Create başarısız: %v", err)
	}

	if _, err := svc.GetByID(testCtx(), requesterFor(other), card.ID); !errors.Is(err, ErrCardForbidden) {
		t.Errorf("başka kullanıcı erişememeli, gelen %v", err)
	}
	if err := svc.Delete(testCtx(), requesterFor(other), card.ID); !errors.Is(err, ErrCardForbidden) {
		t.Errorf("başka kullanıcı silememeli, gelen %v", err)
	}
	// super_admin her kayda erişir.
	if _, err := svc.GetByID(testCtx(), requesterFor(admin), card.ID); err != nil {
		t.Errorf("super_admin erişebilmeli, gelen %v", err)
	}
}

func TestPublicCardVisibilityMasking(t *testing.T) {
	db := newTestDB(t)
	svc := NewCardServiceWithDB(db)
	owner := createTestUser(t, db, models.AccountTypeTeam, models.RoleUser)

	private, err := svc.Create(testCtx(), requesterFor(owner), CardInput{Detail: validDetail()})
	if err != nil {
		t.Fatalf("Create başarısız: %v", err)
	}
	archived, err := svc.Create(testCtx(), requesterFor(owner), CardInput{
		Detail:   validDetail(),
		IsPublic: boolPtr(true),
		Status:   models.CardStatusArchived,
	})
	if err != nil {
		t.Fatalf("Create başarısız: %v", err)
	}

	// Yok, gizli ve arşivli: üçü de aynı hatayı verir.
	cases := map[string]uint{
		"olmayan kart":  99999,
		"gizli kart":    private.ID,
		"arşivli kart":  archived.ID,
	}
	for name, id := range cases {
		if _, err := svc.GetPublicByID(testCtx(), id); !errors.Is(err, ErrCardNotFound) {
			t.Errorf("%s: beklenen ErrCardNotFound, gelen %v", name, err)
		}
	}

	// Maskelenen okuma sayaçları da oynatmaz.
	for name, id := range map[string]uint{"gizli kart": private.ID, "arşivli kart": archived.ID} {
		var stored models.Card
		if err := db.First(&stored, id).Error; err != nil {
			t.Fatalf("%s yeniden okunamadı: %v", name, err)
		}
		if stored.ViewCount != 0 {
			t.Errorf("%s: sayaç artmamalı, gelen %d", name, stored.ViewCount)
		}
		if stored.LastViewedAt != nil {
			t.Errorf("%s: LastViewedAt dolmamalı", name)
		}
	}
}

func TestPublicCardViewCount(t *testing.T) {
	db := newTestDB(t)
	svc := NewCardServiceWithDB(db)
	owner := createTestUser(t, db, models.AccountTypeTeam, models.RoleUser)

	card, err := svc.Create(testCtx(), requesterFor(owner), CardInput{
		Detail:   validDetail(),
		IsPublic: boolPtr(true),
	})
	if err != nil {
		t.Fatalf("Create başarısız: %v", err)
	}

	// Her public okuma sayacı bir artırır.
	for i := 0; i < 3; i++ {
		if _, err := svc.GetPublicByID(testCtx(), card.ID); err != nil {
			t.Fatalf("public okuma %d başarısız: %v", i+1, err)
		}
	}
	got, err := svc.GetPublicByShareKey(testCtx(), card.ShareKey)
	if err != nil {
		t.Fatalf("anahtar ile okuma başarısız: %v", err)
	}
	if got.ViewCount != 4 {
		t.Errorf("4 görüntülenme beklendi, gelen %d", got.ViewCount)
	}
	if got.LastViewedAt == nil {
		t.Error("LastViewedAt dolmalı")
	}

	// Sahibin analitik okuması sayacı ARTIRMAZ.
	analytics, err := svc.GetAnalytics(testCtx(), requesterFor(owner), card.ID)
	if err != nil {
		t.Fatalf("GetAnalytics başarısız: %v", err)
	}
	if analytics.ViewCount != 4 {
		t.Errorf("analitik 4 görüntülenme göstermeli, gelen %d", analytics.ViewCount)
	}
	again, _ := svc.GetAnalytics(testCtx(), requesterFor(owner), card.ID)
	if again.ViewCount != 4 {
		t.Errorf("analitik okuması sayacı artırmamalı, gelen %d", again.ViewCount)
	}
}

func TestPublicShareKeyLengthCheck(t *testing.T) {
	db := newTestDB(t)
	svc := NewCardServiceWithDB(db)

	if _, err := svc.GetPublicByShareKey(testCtx(), "kisa"); !errors.Is(err, ErrCardNotFound) {
		t.Errorf("hatalı uzunluktaki anahtar ErrCardNotFound dönmeli, gelen %v", err)
	}
}

func TestCardUpdatePersistsDetail(t *testing.T) {
	db := newTestDB(t)
	svc := NewCardServiceWithDB(db)
	owner := createTestUser(t, db, models.AccountTypeTeam, models.RoleUser)

	card, err := svc.Create(testCtx(), requesterFor(owner), CardInput{Detail: validDetail()})
	if err != nil {
		t.Fatalf("Create başarısız: %v", err)
	}

	newDetail := validDetail()
	newDetail.FirstName = "Mehmet"
	newDetail.Theme = models.CardThemeModern
	updated, err := svc.Update(testCtx(), requesterFor(owner), card.ID, CardInput{
		Detail:   newDetail,
		IsPublic: boolPtr(true),
	})
	if err != nil {
		t.Fatalf("Update başarısız: %v", err)
	}
	if updated.Detail.FirstName != "Mehmet" || updated.Detail.Theme != models.CardThemeModern {
		t.Error("detay güncellemesi kalıcı olmalı")
	}
	if !updated.IsPublic {
		t.Error("görünürlük güncellenmeli")
	}

	reloaded, err := svc.GetByID(testCtx(), requesterFor(owner), card.ID)
	if err != nil {
		t.Fatalf("GetByID başarısız: %v", err)
	}
	if reloaded.Detail.FirstName != "Mehmet" {
		t.Errorf("veritabanındaki detay güncellenmeli, gelen %q", reloaded.Detail.FirstName)
	}
}

func TestCardDelete(t *testing.T) {
	db := newTestDB(t)
	svc := NewCardServiceWithDB(db)
	owner := createTestUser(t, db, models.AccountTypeIndividual, models.RoleUser)

	card, err := svc.Create(testCtx(), requesterFor(owner), CardInput{Detail: validDetail()})
	if err != nil {
		t.Fatalf("Create başarısız: %v", err)
	}
	if err := svc.Delete(testCtx(), requesterFor(owner), card.ID); err != nil {
		t.Fatalf("Delete başarısız: %v", err)
	}
	if _, err := svc.GetByID(testCtx(), requesterFor(owner), card.ID); !errors.Is(err, ErrCardNotFound) {
		t.Errorf("silinen kart bulunamamalı, gelen %v", err)
	}
	// Silinen kartın kotası boşalır.
	if _, err := svc.Create(testCtx(), requesterFor(owner), CardInput{Detail: validDetail()}); err != nil {
		t.Errorf("silme sonrası yeni kart açılabilmeli: %v", err)
	}
}
