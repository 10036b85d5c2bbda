package api

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-eventdesk/repository"
	gorepo "github.com/goliatone/go-repository-bun"
)

func (s *Server) EventCreate(c *fiber.Ctx) error {
	payload := EventPayload{}
	if err := bind(c, &payload); err != nil {
		return err
	}

	record := &repository.Event{}
	payload.Apply(record)

	record, err := s.repos.Events().Create(c.UserContext(), record)
	if err != nil {
		return err
	}
	return c.JSON(record)
}

func (s *Server) EventList(c *fiber.Ctx) error {
	records, _, err := s.repos.Events().List(c.UserContext(),
		repository.OrderByCreated(),
		gorepo.Paginate(c.QueryInt("limit", 0), c.QueryInt("offset", 0)),
	)
	if err != nil {
		return err
	}
	return c.JSON(records)
}

// EventRead includes the event participants
func (s *Server) EventRead(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	record, err := s.repos.Events().GetWithParticipants(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(record)
}

// EventListByDate lists events dated between start_date and end_date,
// both inclusive.
func (s *Server) EventListByDate(c *fiber.Ctx) error {
	start, end := c.Params("start_date"), c.Params("end_date")

	err := validation.Errors{
		"start_date": validation.Validate(start, validation.Required, validation.Date(repository.DateLayout)),
		"end_date":   validation.Validate(end, validation.Required, validation.Date(repository.DateLayout)),
	}.Filter()
	if err != nil {
		return err
	}

	records := []*repository.Event{}
	if !mustDate(start).After(mustDate(end)) {
		records, err = s.repos.Events().ListByDateRange(c.UserContext(), start, end)
		if err != nil {
			return err
		}
	}
	return c.JSON(records)
}

func (s *Server) EventUpdate(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	payload := EventPayload{}
	if err := bind(c, &payload); err != nil {
		return err
	}

	record, err := s.repos.Events().GetByID(c.UserContext(), id.String())
	if err != nil {
		return err
	}
	payload.Apply(record)

	record, err = s.repos.Events().Update(c.UserContext(), record)
	if err != nil {
		return err
	}
	return c.JSON(record)
}

// EventDelete removes the event and its participants
func (s *Server) EventDelete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := s.repos.Events().Delete(c.UserContext(), &repository.Event{ID: id}); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// EventAddParticipant creates a participant for the event and returns the
// event with all participants.
func (s *Server) EventAddParticipant(c *fiber.Ctx) error {
	eventID, err := paramID(c, "event_id")
	if err != nil {
		return err
	}

	payload := ParticipantPayload{}
	if err := bind(c, &payload); err != nil {
		return err
	}

	record, err := s.repos.Events().AddParticipant(c.UserContext(), eventID, payload.Record())
	if err != nil {
		return err
	}
	return c.JSON(record)
}

func mustDate(s string) time.Time {
	t, _ := time.Parse(repository.DateLayout, s)
	return t
}
