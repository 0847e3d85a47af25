package handlers // handlers/panel paketi

import (
	"errors"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/middlewares"
	"kartvizit.link/models"
	"kartvizit.link/pkg/queryparams"
	"kartvizit.link/pkg/renderer"
	"kartvizit.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PanelTeamHandler takım ve üyelik uçlarını yönetir.
type PanelTeamHandler struct {
	service services.ITeamService
}

// NewPanelTeamHandler yeni bir PanelTeamHandler örneği oluşturur.
func NewPanelTeamHandler() *PanelTeamHandler {
	return &PanelTeamHandler{service: services.NewTeamService()}
}

func teamErrorStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, services.ErrTeamNotFound), errors.Is(err, services.ErrMemberNotFound):
		return fiber.StatusNotFound, true
	case errors.Is(err, services.ErrTeamForbidden):
		return fiber.StatusForbidden, true
	case errors.Is(err, services.ErrTeamNameRequired),
		errors.Is(err, services.ErrTeamOrgNotFound),
		errors.Is(err, services.ErrMemberExists),
		errors.Is(err, services.ErrMemberUserNotFound),
		errors.Is(err, services.ErrInvalidMemberRole):
		return fiber.StatusBadRequest, true
	}
	return 0, false
}

// ListTeams GET /teams
func (h *PanelTeamHandler) ListTeams(c *fiber.Ctx) error {
	requester, ok := middlewares.RequesterFromCtx(c)
	if !ok {
		return renderer.Error(c, fiber.StatusUnauthorized, "Oturum bilgileri geçersiz.")
	}

	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()

	result, err := h.service.GetAllPaginated(c.UserContext(), requester, params)
	if err != nil {
		configslog.Log.Error("ListTeams error", zap.Uint("userID", requester.UserID), zap.Error(err))
		return renderer.Error(c, fiber.StatusInternalServerError, "Takımlar listelenemedi.")
	}
	return renderer.JSON(c, fiber.StatusOK, result)
}

// CreateTeam POST /teams
func (h *PanelTeamHandler) CreateTeam(c *fiber.Ctx) error {
	requester, ok := middlewares.RequesterFromCtx(c)
	if !ok {
		return renderer.Error(c, fiber.StatusUnauthorized, "Oturum bilgileri geçersiz.")
	}

	var input services.TeamInput
	if err := c.BodyParser(&input); err != nil {
		return renderer.Error(c, fiber.StatusBadRequest, "Geçersiz istek gövdesi.")
	}

	team, err := h.service.Create(c.UserContext(), requester, input)
	if err != nil {
		if status, known := teamErrorStatus(err); known {
			return renderer.Error(c, status, err.Error())
		}
		configslog.Log.Error("CreateTeam error", zap.Uint("userID", requester.UserID), zap.Error(err))
		return renderer.Error(c, fiber.StatusInternalServerError, "Takım oluşturulamadı.")
	}
	return renderer.JSON(c, fiber.StatusCreated, team)
}

// GetTeam GET /teams/:id, üyeleriyle birlikte döner.
func (h *PanelTeamHandler) GetTeam(c *fiber.Ctx) error {
	requester, ok := middlewares.RequesterFromCtx(c)
	if !ok {
		return renderer.Error(c, fiber.StatusUnauthorized, "Oturum bilgileri geçersiz.")
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return renderer.Error(c, fiber.StatusBadRequest, "Geçersiz ID.")
	}

	team, err := h.service.GetByID(c.UserContext(), requester, uint(id))
	if err != nil {
		if status, known := teamErrorStatus(err); known {
			return renderer.Error(c, status, err.Error())
		}
		configslog.Log.Error("GetTeam error", zap.Int("id", id), zap.Error(err))
		return renderer.Error(c, fiber.StatusInternalServerError, "Takım alınamadı.")
	}
	return renderer.JSON(c, fiber.StatusOK, team)
}

// UpdateTeam PUT /teams/:id
func (h *PanelTeamHandler) UpdateTeam(c *fiber.Ctx) error {
	requester, ok := middlewares.RequesterFromCtx(c)
	if !ok {
		return renderer.Error(c, fiber.StatusUnauthorized, "Oturum bilgileri geçersiz.")
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return renderer.Error(c, fiber.StatusBadRequest, "Geçersiz ID.")
	}

	var input services.TeamInput
	if err := c.BodyParser(&input); err != nil {
		return renderer.Error(c, fiber.StatusBadRequest, "Geçersiz istek gövdesi.")
	}

	team, err := h.service.Update(c.UserContext(), requester, uint(id), input)
	if err != nil {
		if status, known := teamErrorStatus(err); known {
			return renderer.Error(c, status, err.Error())
		}
		configslog.Log.Error("UpdateTeam error", zap.Int("id", id), zap.Error(err))
		return renderer.Error(c, fiber.StatusInternalServerError, "Takım güncellenemedi.")
	}
	return renderer.JSON(c, fiber.StatusOK, team)
}

// DeleteTeam DELETE /teams/:id. Üyelikler silinir, kullanıcılar serbest kalır.
func (h *PanelTeamHandler) DeleteTeam(c *fiber.Ctx) error {
	requester, ok := middlewares.RequesterFromCtx(c)
	if !ok {
		return renderer.Error(c, fiber.StatusUnauthorized, "Oturum bilgileri geçersiz.")
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return renderer.Error(c, fiber.StatusBadRequest, "Geçersiz ID.")
	}

	if err := h.service.Delete(c.UserContext(), requester, uint(id)); err != nil {
		if status, known := teamErrorStatus(err); known {
			return renderer.Error(c, status, err.Error())
		}
		configslog.Log.Error("DeleteTeam error", zap.Int("id", id), zap.Error(err))
		return renderer.Error(c, fiber.StatusInternalServerError, "Takım silinemedi.")
	}
	return renderer.Message(c, fiber.StatusOK, "Takım silindi.")
}

type addMemberRequest struct {
	UserID uint            `json:"user_id"`
	Role   models.TeamRole `json:"role"`
}

// AddMember POST /teams/:id/members
func (h *PanelTeamHandler) AddMember(c *fiber.Ctx) error {
	requester, ok := middlewares.RequesterFromCtx(c)
	if !ok {
		return renderer.Error(c, fiber.StatusUnauthorized, "Oturum bilgileri geçersiz.")
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return renderer.Error(c, fiber.StatusBadRequest, "Geçersiz ID.")
	}

	var req addMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return renderer.Error(c, fiber.StatusBadRequest, "Geçersiz istek gövdesi.")
	}
	if req.UserID == 0 {
		return renderer.Error(c, fiber.StatusBadRequest, "user_id zorunludur.")
	}

	member, err := h.service.AddMember(c.UserContext(), requester, uint(id), req.UserID, req.Role)
	if err != nil {
		if status, known := teamErrorStatus(err); known {
			return renderer.Error(c, status, err.Error())
		}
		configslog.Log.Error("AddMember error", zap.Int("teamID", id), zap.Uint("userID", req.UserID), zap.Error(err))
		return renderer.Error(c, fiber.StatusInternalServerError, "Üye eklenemedi.")
	}
	return renderer.JSON(c, fiber.StatusCreated, member)
}

// RemoveMember DELETE /teams/:id/members/:memberId
func (h *PanelTeamHandler) RemoveMember(c *fiber.Ctx) error {
	requester, ok := middlewares.RequesterFromCtx(c)
	if !ok {
		return renderer.Error(c, fiber.StatusUnauthorized, "Oturum bilgileri geçersiz.")
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return renderer.Error(c, fiber.StatusBadRequest, "Geçersiz ID.")
	}
	memberID, err := c.ParamsInt("memberId")
	if err != nil || memberID <= 0 {
		return renderer.Error(c, fiber.StatusBadRequest, "Geçersiz üye ID.")
	}

	if err := h.service.RemoveMember(c.UserContext(), requester, uint(id), uint(memberID)); err != nil {
		if status, known := teamErrorStatus(err); known {
			return renderer.Error(c, status, err.Error())
		}
		configslog.Log.Error("RemoveMember error", zap.Int("teamID", id), zap.Int("memberID", memberID), zap.Error(err))
		return renderer.Error(c, fiber.StatusInternalServerError, "Üye çıkarılamadı.")
	}
	return renderer.Message(c, fiber.StatusOK, "Üye takımdan çıkarıldı.")
}

type updateMemberRoleRequest struct {
	Role models.TeamRole `json:"role"`
}

// UpdateMemberRole PUT /teams/:id/members/:memberId
func (h *PanelTeamHandler) UpdateMemberRole(c *fiber.Ctx) error {
	requester, ok := middlewares.RequesterFromCtx(c)
	if !ok {
		return renderer.Error(c, fiber.StatusUnauthorized, "Oturum bilgileri geçersiz.")
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return renderer.Error(c, fiber.StatusBadRequest, "Geçersiz ID.")
	}
	memberID, err := c.ParamsInt("memberId")
	if err != nil || memberID <= 0 {
		return renderer.Error(c, fiber.StatusBadRequest, "Geçersiz üye ID.")
	}

	var req updateMemberRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return renderer.Error(c, fiber.StatusBadRequest, "Geçersiz istek gövdesi.")
	}

	if err := h.service.UpdateMemberRole(c.UserContext(), requester, uint(id), uint(memberID), req.Role); err != nil {
		if status, known := teamErrorStatus(err); known {
			return renderer.Error(c, status, err.Error())
		}
		configslog.Log.Error("UpdateMemberRole error", zap.Int("teamID", id), zap.Int("memberID", memberID), zap.Error(err))
		return renderer.Error(c, fiber.StatusInternalServerError, "Üye rolü güncellenemedi.")
	}
	return renderer.Message(c, fiber.StatusOK, "Üye rolü güncellendi.")
}
