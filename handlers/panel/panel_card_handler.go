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

// PanelCardHandler kullanıcının kendi kartvizitleri için handler.
type PanelCardHandler struct {
	service services.ICardService
}

// NewPanelCardHandler yeni bir PanelCardHandler örneği oluşturur.
func NewPanelCardHandler() *PanelCardHandler {
	return &PanelCardHandler{service: services.NewCardService()}
}

// cardErrorStatus servis hatasını HTTP koduna çevirir.
func cardErrorStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, services.ErrCardNotFound):
		return fiber.StatusNotFound, true
	case errors.Is(err, services.ErrCardForbidden):
		return fiber.StatusForbidden, true
	case errors.Is(err, services.ErrCardQuotaExceeded),
		errors.Is(err, services.ErrCardNameRequired),
		errors.Is(err, services.ErrCardInvalidTheme),
		errors.Is(err, services.ErrCardInvalidStatus),
		errors.Is(err, services.ErrCardInvalidInput):
		return fiber.StatusBadRequest, true
	}
	return 0, false
}

// ListCards GET /business-cards
func (h *PanelCardHandler) ListCards(c *fiber.Ctx) error {
	requester, ok := middlewares.RequesterFromCtx(c)
	if !ok {
		return renderer.Error(c, fiber.StatusUnauthorized, "Oturum bilgileri geçersiz.")
	}

	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		configslog.Log.Warn("ListCards: query parse error", zap.Error(err))
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()

	result, err := h.service.GetAllPaginated(c.UserContext(), requester, params)
	if err != nil {
		configslog.Log.Error("ListCards error", zap.Uint("userID", requester.UserID), zap.Error(err))
		return renderer.Error(c, fiber.StatusInternalServerError, "Kartvizitler listelenemedi.")
	}
	return renderer.JSON(c, fiber.StatusOK, result)
}

// CreateCard POST /business-cards
func (h *PanelCardHandler) CreateCard(c *fiber.Ctx) error {
	requester, ok := middlewares.RequesterFromCtx(c)
	if !ok {
		return renderer.Error(c, fiber.StatusUnauthorized, "Oturum bilgileri geçersiz.")
	}

	var input services.CardInput
	if err := c.BodyParser(&input); err != nil {
		return renderer.Error(c, fiber.StatusBadRequest, "Geçersiz istek gövdesi.")
	}

	card, err := h.service.Create(c.UserContext(), requester, input)
	if err != nil {
		if status, known := cardErrorStatus(err); known {
			return renderer.Error(c, status, err.Error())
		}
		configslog.Log.Error("CreateCard error", zap.Uint("userID", requester.UserID), zap.Error(err))
		return renderer.Error(c, fiber.StatusInternalServerError, "Kartvizit oluşturulamadı.")
	}
	return renderer.JSON(c, fiber.StatusCreated, card)
}

// GetCard GET /business-cards/:id
func (h *PanelCardHandler) GetCard(c *fiber.Ctx) error {
	requester, ok := middlewares.RequesterFromCtx(c)
	if !ok {
		return renderer.Error(c, fiber.StatusUnauthorized, "Oturum bilgileri geçersiz.")
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return renderer.Error(c, fiber.StatusBadRequest, "Geçersiz ID.")
	}

	card, err := h.service.GetByID(c.UserContext(), requester, uint(id))
	if err != nil {
		if status, known := cardErrorStatus(err); known {
			return renderer.Error(c, status, err.Error())
		}
		configslog.Log.Error("GetCard error", zap.Int("id", id), zap.Error(err))
		return renderer.Error(c, fiber.StatusInternalServerError, "Kartvizit alınamadı.")
	}
	return renderer.JSON(c, fiber.StatusOK, card)
}

// UpdateCard PUT /business-cards/:id
func (h *PanelCardHandler) UpdateCard(c *fiber.Ctx) error {
	requester, ok := middlewares.RequesterFromCtx(c)
	if !ok {
		return renderer.Error(c, fiber.StatusUnauthorized, "Oturum bilgileri geçersiz.")
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return renderer.Error(c, fiber.StatusBadRequest, "Geçersiz ID.")
	}

	var input services.CardInput
	if err := c.BodyParser(&input); err != nil {
		return renderer.Error(c, fiber.StatusBadRequest, "Geçersiz istek gövdesi.")
	}

	card, err := h.service.Update(c.UserContext(), requester, uint(id), input)
	if err != nil {
		if status, known := cardErrorStatus(err); known {
			return renderer.Error(c, status, err.Error())
		}
		configslog.Log.Error("UpdateCard error", zap.Int("id", id), zap.Error(err))
		return renderer.Error(c, fiber.StatusInternalServerError, "Kartvizit güncellenemedi.")
	}
	return renderer.JSON(c, fiber.StatusOK, card)
}

// DeleteCard DELETE /business-cards/:id
func (h *PanelCardHandler) DeleteCard(c *fiber.Ctx) error {
	requester, ok := middlewares.RequesterFromCtx(c)
	if !ok {
		return renderer.Error(c, fiber.StatusUnauthorized, "Oturum bilgileri geçersiz.")
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return renderer.Error(c, fiber.StatusBadRequest, "Geçersiz ID.")
	}

	if err := h.service.Delete(c.UserContext(), requester, uint(id)); err != nil {
		if status, known := cardErrorStatus(err); known {
			return renderer.Error(c, status, err.Error())
		}
		configslog.Log.Error("DeleteCard error", zap.Int("id", id), zap.Error(err))
		return renderer.Error(c, fiber.StatusInternalServerError, "Kartvizit silinemedi.")
	}
	return renderer.Message(c, fiber.StatusOK, "Kartvizit silindi.")
}

// GetCardAnalytics GET /business-cards/:id/analytics
func (h *PanelCardHandler) GetCardAnalytics(c *fiber.Ctx) error {
	requester, ok := middlewares.RequesterFromCtx(c)
	if !ok {
		return renderer.Error(c, fiber.StatusUnauthorized, "Oturum bilgileri geçersiz.")
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return renderer.Error(c, fiber.StatusBadRequest, "Geçersiz ID.")
	}

	analytics, err := h.service.GetAnalytics(c.UserContext(), requester, uint(id))
	if err != nil {
		if status, known := cardErrorStatus(err); known {
			return renderer.Error(c, status, err.Error())
		}
		configslog.Log.Error("GetCardAnalytics error", zap.Int("id", id), zap.Error(err))
		return renderer.Error(c, fiber.StatusInternalServerError, "Analitik verisi alınamadı.")
	}
	return renderer.JSON(c, fiber.StatusOK, analytics)
}
