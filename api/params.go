package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type validator interface {
	Validate() error
}

func paramID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, unprocessable("invalid " + name)
	}
	return id, nil
}

// bind parses the request body into payload and validates it
func bind(c *fiber.Ctx, payload validator) error {
	if err := c.BodyParser(payload); err != nil {
		return unprocessable("invalid request body")
	}
	return payload.Validate()
}
