package api

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-eventdesk/repository"
	gorepo "github.com/goliatone/go-repository-bun"
)

func (s *Server) ParticipantCreate(c *fiber.Ctx) error {
	payload := ParticipantPayload{}
	if err := bind(c, &payload); err != nil {
		return err
	}

	if err := (validation.Errors{
		"event_id": validation.Validate(payload.EventID, validation.Required),
	}).Filter(); err != nil {
		return err
	}

	record, err := s.repos.Participants().Create(c.UserContext(), payload.Record())
	if err != nil {
		return err
	}
	return c.JSON(record)
}

func (s *Server) ParticipantListByEvent(c *fiber.Ctx) error {
	eventID, err := paramID(c, "event_id")
	if err != nil {
		return err
	}

	records, err := s.repos.Participants().ListByEvent(c.UserContext(), eventID)
	if err != nil {
		return err
	}
	return c.JSON(records)
}

func (s *Server) ParticipantRead(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	record, err := s.repos.Participants().GetByID(c.UserContext(), id.String())
	if err != nil {
		return err
	}
	return c.JSON(record)
}

func (s *Server) ParticipantDelete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := s.repos.Participants().Delete(c.UserContext(), &repository.Participant{ID: id}); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) ParticipantList(c *fiber.Ctx) error {
	records, _, err := s.repos.Participants().List(c.UserContext(),
		repository.OrderByCreated(),
		gorepo.Paginate(c.QueryInt("limit", 0), c.QueryInt("offset", 0)),
	)
	if err != nil {
		return err
	}
	return c.JSON(records)
}
