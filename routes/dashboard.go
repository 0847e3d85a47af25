package routes

import (
	dashboard_handlers "kartvizit.link/handlers/dashboard"
	"kartvizit.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerDashboardRoutes /admin altındaki rotaları tanımlar.
// Sadece super_admin rolünün erişimine izin verilir.
func registerDashboardRoutes(app *fiber.App) {
	userHandler := dashboard_handlers.NewDashboardUserHandler()
	resourceHandler := dashboard_handlers.NewDashboardResourceHandler()

	admin := app.Group("/admin")
	admin.Use(
		middlewares.AuthMiddleware,      // 1. Oturum geçerli mi?
		middlewares.RequireSuperAdmin(), // 2. super_admin mi?
	)

	// --- Platform özeti ---
	admin.Get("/stats", userHandler.GetStats)       // GET /admin/stats
	admin.Get("/activity", userHandler.GetActivity) // GET /admin/activity

	// --- Kullanıcı yönetimi ---
	admin.Get("/users", userHandler.ListUsers)          // GET /admin/users
	admin.Get("/users/:id", userHandler.GetUser)        // GET /admin/users/{id}
	admin.Put("/users/:id", userHandler.UpdateUser)     // PUT /admin/users/{id}
	admin.Delete("/users/:id", userHandler.DeleteUser)  // DELETE /admin/users/{id} (?hard=true kalıcı siler)

	// --- Platform geneli listeler ---
	admin.Get("/organizations", resourceHandler.ListOrganizations) // GET /admin/organizations
	admin.Get("/teams", resourceHandler.ListTeams)                 // GET /admin/teams
	admin.Get("/business-cards", resourceHandler.ListCards)        // GET /admin/business-cards
}
