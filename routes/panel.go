package routes

import (
	panel_handlers "kartvizit.link/handlers/panel"
	"kartvizit.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerPanelRoutes oturumlu kullanıcının kendi kaynaklarını tanımlar.
// Tüm uçlar AuthMiddleware arkasındadır; sahiplik kontrolü servis katmanında yapılır.
func registerPanelRoutes(app *fiber.App) {
	cardHandler := panel_handlers.NewPanelCardHandler()
	orgHandler := panel_handlers.NewPanelOrganizationHandler()
	teamHandler := panel_handlers.NewPanelTeamHandler()

	// --- Kartvizitler ---
	cards := app.Group("/business-cards", middlewares.AuthMiddleware)
	cards.Get("/", cardHandler.ListCards)                    // GET /business-cards
	cards.Post("/", cardHandler.CreateCard)                  // POST /business-cards
	cards.Get("/:id", cardHandler.GetCard)                   // GET /business-cards/{id}
	cards.Put("/:id", cardHandler.UpdateCard)                // PUT /business-cards/{id}
	cards.Delete("/:id", cardHandler.DeleteCard)             // DELETE /business-cards/{id}
	cards.Get("/:id/analytics", cardHandler.GetCardAnalytics) // GET /business-cards/{id}/analytics

	// --- Organizasyonlar ---
	orgs := app.Group("/organizations", middlewares.AuthMiddleware)
	orgs.Get("/", orgHandler.ListOrganizations)      // GET /organizations
	orgs.Post("/", orgHandler.CreateOrganization)    // POST /organizations
	orgs.Get("/:id", orgHandler.GetOrganization)     // GET /organizations/{id}
	orgs.Put("/:id", orgHandler.UpdateOrganization)  // PUT /organizations/{id}
	orgs.Delete("/:id", orgHandler.DeleteOrganization) // DELETE /organizations/{id}

	// --- Takımlar ve üyelikler ---
	teams := app.Group("/teams", middlewares.AuthMiddleware)
	teams.Get("/", teamHandler.ListTeams)       // GET /teams
	teams.Post("/", teamHandler.CreateTeam)     // POST /teams
	teams.Get("/:id", teamHandler.GetTeam)      // GET /teams/{id}
	teams.Put("/:id", teamHandler.UpdateTeam)   // PUT /teams/{id}
	teams.Delete("/:id", teamHandler.DeleteTeam) // DELETE /teams/{id}

	teams.Post("/:id/members", teamHandler.AddMember)                 // POST /teams/{id}/members
	teams.Put("/:id/members/:memberId", teamHandler.UpdateMemberRole) // PUT /teams/{id}/members/{memberId}
	teams.Delete("/:id/members/:memberId", teamHandler.RemoveMember)  // DELETE /teams/{id}/members/{memberId}
}
