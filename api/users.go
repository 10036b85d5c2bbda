package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-eventdesk/auth"
	"github.com/goliatone/go-eventdesk/repository"
	gorepo "github.com/goliatone/go-repository-bun"
)

func (s *Server) UserCreate(c *fiber.Ctx) error {
	payload := UserCreatePayload{}
	if err := bind(c, &payload); err != nil {
		return err
	}

	user, err := s.register.Execute(c.UserContext(), payload.Message())
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func (s *Server) UserRead(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	user, err := s.repos.Users().GetByID(c.UserContext(), id.String())
	if err != nil {
		return notFoundAs(err, "user not found in database")
	}
	return c.JSON(user)
}

func (s *Server) UserFind(c *fiber.Ctx) error {
	user, err := s.repos.Users().FindByUsername(c.UserContext(), c.Params("username"))
	if err != nil {
		return notFoundAs(err, "user not found in database")
	}
	return c.JSON(user)
}

func (s *Server) UserDelete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := s.repos.Users().Delete(c.UserContext(), &auth.User{ID: id}); err != nil {
		return notFoundAs(err, "user not found in database")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UserList answers 404 when there are no users
func (s *Server) UserList(c *fiber.Ctx) error {
	users, _, err := s.repos.Users().List(c.UserContext(),
		auth.UsersByCreated(),
		gorepo.Paginate(c.QueryInt("limit", 0), c.QueryInt("offset", 0)),
	)
	if err != nil {
		return err
	}

	if len(users) == 0 {
		return repository.NewRecordNotFound("No users found in database")
	}
	return c.JSON(users)
}

func notFoundAs(err error, message string) error {
	if repository.IsRecordNotFound(err) {
		return repository.NewRecordNotFound(message)
	}
	return err
}
