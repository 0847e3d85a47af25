package handlers // handlers/dashboard paketi

import (
	"kartvizit.link/configs/configslog"
	"kartvizit.link/middlewares"
	"kartvizit.link/pkg/queryparams"
	"kartvizit.link/pkg/renderer"
	"kartvizit.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DashboardResourceHandler super admin'in platform genelindeki
// organizasyon, takım ve kartvizit listeleridir. Super admin için
// liste servisleri sahiplik filtresi uygulamaz.
type DashboardResourceHandler struct {
	orgService  services.IOrganizationService
	teamService services.ITeamService
	cardService services.ICardService
}

// NewDashboardResourceHandler yeni bir DashboardResourceHandler örneği oluşturur.
func NewDashboardResourceHandler() *DashboardResourceHandler {
	return &DashboardResourceHandler{
		orgService:  services.NewOrganizationService(),
		teamService: services.NewTeamService(),
		cardService: services.NewCardService(),
	}
}

func parseListParams(c *fiber.Ctx) queryparams.ListParams {
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()
	return params
}

// ListOrganizations GET /admin/organizations
func (h *DashboardResourceHandler) ListOrganizations(c *fiber.Ctx) error {
	requester, ok := middlewares.RequesterFromCtx(c)
	if !ok {
		return renderer.Error(c, fiber.StatusUnauthorized, "Oturum bilgileri geçersiz.")
	}

	result, err := h.orgService.GetAllPaginated(c.UserContext(), requester, parseListParams(c))
	if err != nil {
		configslog.Log.Error("Admin ListOrganizations error", zap.Error(err))
		return renderer.Error(c, fiber.StatusInternalServerError, "Organizasyonlar listelenemedi.")
	}
	return renderer.JSON(c, fiber.StatusOK, result)
}

// ListTeams GET /admin/teams
func (h *DashboardResourceHandler) ListTeams(c *fiber.Ctx) error {
	requester, ok := middlewares.RequesterFromCtx(c)
	if !ok {
		return renderer.Error(c, fiber.StatusUnauthorized, "Oturum bilgileri geçersiz.")
	}

	result, err := h.teamService.GetAllPaginated(c.UserContext(), requester, parseListParams(c))
	if err != nil {
		configslog.Log.Error("Admin ListTeams error", zap.Error(err))
		return renderer.Error(c, fiber.StatusInternalServerError, "Takımlar listelenemedi.")
	}
	return renderer.JSON(c, fiber.StatusOK, result)
}

// ListCards GET /admin/business-cards
func (h *DashboardResourceHandler) ListCards(c *fiber.Ctx) error {
	requester, ok := middlewares.RequesterFromCtx(c)
	if !ok {
		return renderer.Error(c, fiber.StatusUnauthorized, "Oturum bilgileri geçersiz.")
	}

	result, err := h.cardService.GetAllPaginated(c.UserContext(), requester, parseListParams(c))
	if err != nil {
		configslog.Log.Error("Admin ListCards error", zap.Error(err))
		return renderer.Error(c, fiber.StatusInternalServerError, "Kartvizitler listelenemedi.")
	}
	return renderer.JSON(c, fiber.StatusOK, result)
}
