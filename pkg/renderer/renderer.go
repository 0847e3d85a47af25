// Package renderer JSON yanıtlarının ortak biçimini tek yerde tutar.
// Tüm hata yanıtları {"error": "..."} şeklindedir; stack trace veya iç
// kimlikler asla yanıta yazılmaz, onlar log'a gider.
package renderer

import "github.com/gofiber/fiber/v2"

// Error standart hata gövdesiyle yanıt verir.
func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// JSON başarı yanıtı döndürür.
func JSON(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(data)
}

// Message kısa bilgi mesajı döndürür.
func Message(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"message": message})
}
