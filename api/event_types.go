package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-eventdesk/repository"
	gorepo "github.com/goliatone/go-repository-bun"
)

func (s *Server) EventTypeCreate(c *fiber.Ctx) error {
	payload := EventTypePayload{}
	if err := bind(c, &payload); err != nil {
		return err
	}

	record := &repository.EventType{}
	payload.Apply(record)

	record, err := s.repos.EventTypes().Create(c.UserContext(), record)
	if err != nil {
		return err
	}
	return c.JSON(record)
}

func (s *Server) EventTypeRead(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	record, err := s.repos.EventTypes().GetByID(c.UserContext(), id.String())
	if err != nil {
		return err
	}
	return c.JSON(record)
}

func (s *Server) EventTypeUpdate(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	payload := EventTypePayload{}
	if err := bind(c, &payload); err != nil {
		return err
	}

	record, err := s.repos.EventTypes().GetByID(c.UserContext(), id.String())
	if err != nil {
		return err
	}
	payload.Apply(record)

	record, err = s.repos.EventTypes().Update(c.UserContext(), record)
	if err != nil {
		return err
	}
	return c.JSON(record)
}

// EventTypeDelete answers 409 while events reference the type
func (s *Server) EventTypeDelete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := s.repos.EventTypes().Delete(c.UserContext(), &repository.EventType{ID: id}); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) EventTypeList(c *fiber.Ctx) error {
	records, _, err := s.repos.EventTypes().List(c.UserContext(),
		repository.OrderByCreated(),
		gorepo.Paginate(c.QueryInt("limit", 0), c.QueryInt("offset", 0)),
	)
	if err != nil {
		return err
	}
	return c.JSON(records)
}
