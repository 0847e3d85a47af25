package handlers // handlers/link paketi

import (
	"errors"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/pkg/renderer"
	"kartvizit.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PublicCardHandler kimlik doğrulaması gerektirmeyen kartvizit görünümüdür.
// Kayıt yoksa da gizliyse de arşivliyse de aynı 404 döner; dışarıdan
// hangi durumda olduğu ayırt edilemez.
type PublicCardHandler struct {
	service services.ICardService
}

// NewPublicCardHandler yeni bir PublicCardHandler örneği oluşturur.
func NewPublicCardHandler() *PublicCardHandler {
	return &PublicCardHandler{service: services.NewCardService()}
}

func (h *PublicCardHandler) notFound(c *fiber.Ctx) error {
	return renderer.Error(c, fiber.StatusNotFound, "Kartvizit bulunamadı.")
}

// GetByID GET /business-cards/public/:id
func (h *PublicCardHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return h.notFound(c)
	}

	card, err := h.service.GetPublicByID(c.UserContext(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrCardNotFound) {
			return h.notFound(c)
		}
		configslog.Log.Error("Public GetByID error", zap.Int("id", id), zap.Error(err))
		return renderer.Error(c, fiber.StatusInternalServerError, "Kartvizit alınamadı.")
	}
	return renderer.JSON(c, fiber.StatusOK, card)
}

// GetByShareKey GET /c/:key
func (h *PublicCardHandler) GetByShareKey(c *fiber.Ctx) error {
	key := c.Params("key")
	card, err := h.service.GetPublicByShareKey(c.UserContext(), key)
	if err != nil {
		if errors.Is(err, services.ErrCardNotFound) {
			return h.notFound(c)
		}
		configslog.Log.Error("Public GetByShareKey error", zap.Error(err))
		return renderer.Error(c, fiber.StatusInternalServerError, "Kartvizit alınamadı.")
	}
	return renderer.JSON(c, fiber.StatusOK, card)
}
