package handlers // handlers/dashboard paketi

import (
	"errors"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/middlewares"
	"kartvizit.link/pkg/queryparams"
	"kartvizit.link/pkg/renderer"
	"kartvizit.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DashboardUserHandler super admin'in kullanıcı yönetimi uçlarıdır.
type DashboardUserHandler struct {
	service services.IUserService
}

// NewDashboardUserHandler yeni bir DashboardUserHandler örneği oluşturur.
func NewDashboardUserHandler() *DashboardUserHandler {
	return &DashboardUserHandler{service: services.NewUserService()}
}

func userErrorStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, services.ErrUsrNotFound):
		return fiber.StatusNotFound, true
	case errors.Is(err, services.ErrUsrForbidden),
		errors.Is(err, services.ErrUsrSelfDemotion),
		errors.Is(err, services.ErrUsrSelfTarget),
		errors.Is(err, services.ErrUsrSuperAdminGuard):
		return fiber.StatusForbidden, true
	case errors.Is(err, services.ErrUsrInvalidInput):
		return fiber.StatusBadRequest, true
	}
	return 0, false
}

// ListUsers GET /admin/users
func (h *DashboardUserHandler) ListUsers(c *fiber.Ctx) error {
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
		if status, known := userErrorStatus(err); known {
			return renderer.Error(c, status, err.Error())
		}
		configslog.Log.Error("ListUsers error", zap.Error(err))
		return renderer.Error(c, fiber.StatusInternalServerError, "Kullanıcılar listelenemedi.")
	}
	return renderer.JSON(c, fiber.StatusOK, result)
}

// GetUser GET /admin/users/:id
func (h *DashboardUserHandler) GetUser(c *fiber.Ctx) error {
	requester, ok := middlewares.RequesterFromCtx(c)
	if !ok {
		return renderer.Error(c, fiber.StatusUnauthorized, "Oturum bilgileri geçersiz.")
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return renderer.Error(c, fiber.StatusBadRequest, "Geçersiz ID.")
	}

	user, err := h.service.AdminGetByID(c.UserContext(), requester, uint(id))
	if err != nil {
		if status, known := userErrorStatus(err); known {
			return renderer.Error(c, status, err.Error())
		}
		configslog.Log.Error("GetUser error", zap.Int("id", id), zap.Error(err))
		return renderer.Error(c, fiber.StatusInternalServerError, "Kullanıcı alınamadı.")
	}
	return renderer.JSON(c, fiber.StatusOK, user.ToPublic())
}

// UpdateUser PUT /admin/users/:id
func (h *DashboardUserHandler) UpdateUser(c *fiber.Ctx) error {
	requester, ok := middlewares.RequesterFromCtx(c)
	if !ok {
		return renderer.Error(c, fiber.StatusUnauthorized, "Oturum bilgileri geçersiz.")
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return renderer.Error(c, fiber.StatusBadRequest, "Geçersiz ID.")
	}

	var input services.AdminUserUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return renderer.Error(c, fiber.StatusBadRequest, "Geçersiz istek gövdesi.")
	}

	user, err := h.service.AdminUpdate(c.UserContext(), requester, uint(id), input)
	if err != nil {
		if status, known := userErrorStatus(err); known {
			return renderer.Error(c, status, err.Error())
		}
		configslog.Log.Error("UpdateUser error", zap.Int("id", id), zap.Error(err))
		return renderer.Error(c, fiber.StatusInternalServerError, "Kullanıcı güncellenemedi.")
	}
	return renderer.JSON(c, fiber.StatusOK, user.ToPublic())
}

// DeleteUser DELETE /admin/users/:id
// Varsayılan davranış hesabı devre dışı bırakmaktır (soft delete).
// ?hard=true ile kullanıcı ve sahip olduğu tüm kayıtlar kalıcı silinir.
func (h *DashboardUserHandler) DeleteUser(c *fiber.Ctx) error {
	requester, ok := middlewares.RequesterFromCtx(c)
	if !ok {
		return renderer.Error(c, fiber.StatusUnauthorized, "Oturum bilgileri geçersiz.")
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return renderer.Error(c, fiber.StatusBadRequest, "Geçersiz ID.")
	}

	hard := c.QueryBool("hard", false)
	if hard {
		err = h.service.HardDelete(c.UserContext(), requester, uint(id))
	} else {
		err = h.service.SoftDelete(c.UserContext(), requester, uint(id))
	}
	if err != nil {
		if status, known := userErrorStatus(err); known {
			return renderer.Error(c, status, err.Error())
		}
		configslog.Log.Error("DeleteUser error", zap.Int("id", id), zap.Bool("hard", hard), zap.Error(err))
		return renderer.Error(c, fiber.StatusInternalServerError, "Kullanıcı silinemedi.")
	}
	if hard {
		return renderer.Message(c, fiber.StatusOK, "Kullanıcı ve bağlı kayıtları kalıcı olarak silindi.")
	}
	return renderer.Message(c, fiber.StatusOK, "Kullanıcı devre dışı bırakıldı.")
}

// GetStats GET /admin/stats
func (h *DashboardUserHandler) GetStats(c *fiber.Ctx) error {
	requester, ok := middlewares.RequesterFromCtx(c)
	if !ok {
		return renderer.Error(c, fiber.StatusUnauthorized, "Oturum bilgileri geçersiz.")
	}

	stats, err := h.service.GetStats(c.UserContext(), requester)
	if err != nil {
		if status, known := userErrorStatus(err); known {
			return renderer.Error(c, status, err.Error())
		}
		configslog.Log.Error("GetStats error", zap.Error(err))
		return renderer.Error(c, fiber.StatusInternalServerError, "İstatistikler alınamadı.")
	}
	return renderer.JSON(c, fiber.StatusOK, stats)
}

// GetActivity GET /admin/activity
func (h *DashboardUserHandler) GetActivity(c *fiber.Ctx) error {
	requester, ok := middlewares.RequesterFromCtx(c)
	if !ok {
		return renderer.Error(c, fiber.StatusUnauthorized, "Oturum bilgileri geçersiz.")
	}

	limit := c.QueryInt("limit", 20)
	entries, err := h.service.GetRecentActivity(c.UserContext(), requester, limit)
	if err != nil {
		if status, known := userErrorStatus(err); known {
			return renderer.Error(c, status, err.Error())
		}
		configslog.Log.Error("GetActivity error", zap.Error(err))
		return renderer.Error(c, fiber.StatusInternalServerError, "Hareket listesi alınamadı.")
	}
	return renderer.JSON(c, fiber.StatusOK, entries)
}
