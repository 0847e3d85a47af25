package handlers // handlers/panel paketi

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

// PanelOrganizationHandler organizasyon uçlarını yönetir.
type PanelOrganizationHandler struct {
	service services.IOrganizationService
}

// NewPanelOrganizationHandler yeni bir PanelOrganizationHandler örneği oluşturur.
func NewPanelOrganizationHandler() *PanelOrganizationHandler {
	return &PanelOrganizationHandler{service: services.NewOrganizationService()}
}

func orgErrorStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, services.ErrOrgNotFound):
		return fiber.StatusNotFound, true
	case errors.Is(err, services.ErrOrgForbidden):
		return fiber.StatusForbidden, true
	case errors.Is(err, services.ErrOrgNameRequired), errors.Is(err, services.ErrOrgInvalidInput):
		return fiber.StatusBadRequest, true
	}
	return 0, false
}

// ListOrganizations GET /organizations
func (h *PanelOrganizationHandler) ListOrganizations(c *fiber.Ctx) error {
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
		configslog.Log.Error("ListOrganizations error", zap.Uint("userID", requester.UserID), zap.Error(err))
		return renderer.Error(c, fiber.StatusInternalServerError, "Organizasyonlar listelenemedi.")
	}
	return renderer.JSON(c, fiber.StatusOK, result)
}

// CreateOrganization POST /organizations
func (h *PanelOrganizationHandler) CreateOrganization(c *fiber.Ctx) error {
	requester, ok := middlewares.RequesterFromCtx(c)
	if !ok {
		return renderer.Error(c, fiber.StatusUnauthorized, "Oturum bilgileri geçersiz.")
	}

	var input services.OrganizationInput
	if err := c.BodyParser(&input); err != nil {
		return renderer.Error(c, fiber.StatusBadRequest, "Geçersiz istek gövdesi.")
	}

	org, err := h.service.Create(c.UserContext(), requester, input)
	if err != nil {
		if status, known := orgErrorStatus(err); known {
			return renderer.Error(c, status, err.Error())
		}
		configslog.Log.Error("CreateOrganization error", zap.Uint("userID", requester.UserID), zap.Error(err))
		return renderer.Error(c, fiber.StatusInternalServerError, "Organizasyon oluşturulamadı.")
	}
	return renderer.JSON(c, fiber.StatusCreated, org)
}

// GetOrganization GET /organizations/:id
func (h *PanelOrganizationHandler) GetOrganization(c *fiber.Ctx) error {
	requester, ok := middlewares.RequesterFromCtx(c)
	if !ok {
		return renderer.Error(c, fiber.StatusUnauthorized, "Oturum bilgileri geçersiz.")
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return renderer.Error(c, fiber.StatusBadRequest, "Geçersiz ID.")
	}

	view, err := h.service.GetByID(c.UserContext(), requester, uint(id))
	if err != nil {
		if status, known := orgErrorStatus(err); known {
			return renderer.Error(c, status, err.Error())
		}
		configslog.Log.Error("GetOrganization error", zap.Int("id", id), zap.Error(err))
		return renderer.Error(c, fiber.StatusInternalServerError, "Organizasyon alınamadı.")
	}
	return renderer.JSON(c, fiber.StatusOK, view)
}

// UpdateOrganization PUT /organizations/:id
func (h *PanelOrganizationHandler) UpdateOrganization(c *fiber.Ctx) error {
	requester, ok := middlewares.RequesterFromCtx(c)
	if !ok {
		return renderer.Error(c, fiber.StatusUnauthorized, "Oturum bilgileri geçersiz.")
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return renderer.Error(c, fiber.StatusBadRequest, "Geçersiz ID.")
	}

	var input services.OrganizationInput
	if err := c.BodyParser(&input); err != nil {
		return renderer.Error(c, fiber.StatusBadRequest, "Geçersiz istek gövdesi.")
	}

	org, err := h.service.Update(c.UserContext(), requester, uint(id), input)
	if err != nil {
		if status, known := orgErrorStatus(err); known {
			return renderer.Error(c, status, err.Error())
		}
		configslog.Log.Error("UpdateOrganization error", zap.Int("id", id), zap.Error(err))
		return renderer.Error(c, fiber.StatusInternalServerError, "Organizasyon güncellenemedi.")
	}
	return renderer.JSON(c, fiber.StatusOK, org)
}

// DeleteOrganization DELETE /organizations/:id
// Alt takımlar da silinir, üyeler serbest bırakılır.
func (h *PanelOrganizationHandler) DeleteOrganization(c *fiber.Ctx) error {
	requester, ok := middlewares.RequesterFromCtx(c)
	if !ok {
		return renderer.Error(c, fiber.StatusUnauthorized, "Oturum bilgileri geçersiz.")
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return renderer.Error(c, fiber.StatusBadRequest, "Geçersiz ID.")
	}

	if err := h.service.Delete(c.UserContext(), requester, uint(id)); err != nil {
		if status, known := orgErrorStatus(err); known {
			return renderer.Error(c, status, err.Error())
		}
		configslog.Log.Error("DeleteOrganization error", zap.Int("id", id), zap.Error(err))
		return renderer.Error(c, fiber.StatusInternalServerError, "Organizasyon silinemedi.")
	}
	return renderer.Message(c, fiber.StatusOK, "Organizasyon ve bağlı takımları silindi.")
}
