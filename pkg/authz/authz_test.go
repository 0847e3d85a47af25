package authz

import (
	"testing"

	"kartvizit.link/models"
)

func TestDecide(t *testing.T) {
	superAdmin := Requester{UserID: 1, Role: models.RoleSuperAdmin, AccountType: models.AccountTypeIndividual}
	orgOwner := Requester{UserID: 2, Role: models.RoleUser, AccountType: models.AccountTypeOrganization}
	teamOwner := Requester{UserID: 3, Role: models.RoleUser, AccountType: models.AccountTypeTeam}
	individual := Requester{UserID: 4, Role: models.RoleUser, AccountType: models.AccountTypeIndividual}

	tests := []struct {
		name    string
		r       Requester
		ownerID uint
		cap     Capability
		want    bool
	}{
		{"super admin her kaynağa erişir", superAdmin, 99, CapManageOrganization, true},
		{"super admin kullanıcı yönetir", superAdmin, 0, CapAdministerUsers, true},

		{"org hesabı kendi organizasyonunu yönetir", orgOwner, 2, CapManageOrganization, true},
		{"org hesabı başkasının organizasyonunu yönetemez", orgOwner, 7, CapManageOrganization, false},
		{"org hesabı organizasyon oluşturabilir", orgOwner, 0, CapManageOrganization, true},
		{"org hesabı takım da yönetebilir", orgOwner, 2, CapManageTeam, true},

		{"takım hesabı takım oluşturabilir", teamOwner, 0, CapManageTeam, true},
		{"takım hesabı organizasyon oluşturamaz", teamOwner, 0, CapManageOrganization, false},

		{"bireysel hesap takım oluşturamaz", individual, 0, CapManageTeam, false},
		{"bireysel hesap kendi kartını yönetir", individual, 4, CapManageCard, true},
		{"bireysel hesap başkasının kartını yönetemez", individual, 2, CapManageCard, false},
		{"bireysel hesap kullanıcı yönetemez", individual, 0, CapAdministerUsers, false},

		{"admin rolü tek başına yetmez", Requester{UserID: 5, Role: models.RoleAdmin, AccountType: models.AccountTypeIndividual}, 0, CapAdministerUsers, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.r, tt.ownerID, tt.cap)
			if got.Allowed != tt.want {
				t.Errorf("Decide(%+v, %d, %s) = %v (%s), beklenen %v",
					tt.r, tt.ownerID, tt.cap, got.Allowed, got.Reason, tt.want)
			}
			if got.Reason == "" {
				t.Error("karar gerekçesiz olmamalı")
			}
		})
	}
}

func TestRoleHelpers(t *testing.T) {
	if !IsSuperAdmin(Requester{Role: models.RoleSuperAdmin}) {
		t.Error("super_admin tanınmalı")
	}
	if IsSuperAdmin(Requester{Role: models.RoleAdmin}) {
		t.Error("admin super_admin sayılmamalı")
	}
	if !IsAdminOrAbove(Requester{Role: models.RoleAdmin}) {
		t.Error("admin IsAdminOrAbove olmalı")
	}
	if IsAdminOrAbove(Requester{Role: models.RoleUser}) {
		t.Error("user IsAdminOrAbove olmamalı")
	}
}
