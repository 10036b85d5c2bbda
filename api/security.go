package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-eventdesk/middleware/jwtware"
)

// Token exchanges credentials for an access token. Credentials are read
// from the login and pwd query parameters, a form body or a JSON body.
func (s *Server) Token(c *fiber.Ctx) error {
	payload := LoginPayload{
		Login:    c.Query("login"),
		Password: c.Query("pwd"),
	}

	if payload.Login == "" && payload.Password == "" && len(c.Body()) > 0 {
		if err := c.BodyParser(&payload); err != nil {
			return unprocessable("invalid request body")
		}
	}

	payload.Login = strings.TrimSpace(payload.Login)
	if err := payload.Validate(); err != nil {
		return err
	}

	token, err := s.auther.Login(c.UserContext(), payload.Login, payload.Password)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.JSON(token)
}

// Me returns the authenticated user
func (s *Server) Me(c *fiber.Ctx) error {
	user, ok := jwtware.CurrentUser(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	return c.JSON(user)
}
