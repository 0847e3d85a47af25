package routes

import (
	link_handlers "kartvizit.link/handlers/link"

	"github.com/gofiber/fiber/v2"
)

// registerPublicRoutes kimlik doğrulaması istemeyen kartvizit görünümlerini tanımlar.
func registerPublicRoutes(app *fiber.App) {
	publicHandler := link_handlers.NewPublicCardHandler()

	// /business-cards/:id rotasıyla çakışmaması için panel rotalarından önce kaydedilir.
	app.Get("/business-cards/public/:id", publicHandler.GetByID) // GET /business-cards/public/{id}

	// Kısa paylaşım linki.
	app.Get("/c/:key", publicHandler.GetByShareKey) // GET /c/{key}
}
