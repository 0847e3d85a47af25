package routes

import (
	auth_handlers "kartvizit.link/handlers/auth"
	"kartvizit.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerAuthRoutes kimlik ve oturum rotalarını tanımlar.
func registerAuthRoutes(app *fiber.App) {
	authHandler := auth_handlers.NewAuthHandler()

	// --- Açık uçlar ---
	app.Post("/signup", authHandler.Signup)                               // POST /signup
	app.Post("/login", authHandler.Login)                                 // POST /login
	app.Post("/google", authHandler.Google)                               // POST /google
	app.Get("/verify-email/:token", authHandler.VerifyEmail)              // GET /verify-email/{token}
	app.Post("/resend-verification", authHandler.ResendVerification)      // POST /resend-verification
	app.Post("/forgot-password", authHandler.ForgotPassword)              // POST /forgot-password
	app.Post("/reset-password", authHandler.ResetPassword)                // POST /reset-password

	// --- Oturum gerektiren uçlar ---
	app.Get("/me", middlewares.AuthMiddleware, authHandler.Me)                           // GET /me
	app.Put("/profile", middlewares.AuthMiddleware, authHandler.UpdateProfile)           // PUT /profile
	app.Put("/change-password", middlewares.AuthMiddleware, authHandler.ChangePassword)  // PUT /change-password
	app.Post("/set-password", middlewares.AuthMiddleware, authHandler.SetPassword)       // POST /set-password
}
