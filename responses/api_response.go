package responses

import "github.com/gofiber/fiber/v2"

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func Error(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ErrorResponse{Error: msg})
}

func Message(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(MessageResponse{Message: msg})
}
