package api

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-eventdesk/auth"
	"github.com/goliatone/go-eventdesk/repository"
	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
)

// DefaultPhoneRegion is used for numbers without a country prefix
const DefaultPhoneRegion = "US"

// LoginPayload carries the login identifier and password, as JSON
// (login, pwd) or form fields (username, password).
type LoginPayload struct {
	Login    string `json:"login" form:"username"`
	Password string `json:"pwd" form:"password"`
}

func (p LoginPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Login, validation.Required),
		validation.Field(&p.Password, validation.Required),
	)
}

// UserCreatePayload is the public registration payload. The role is
// always MEMBER.
type UserCreatePayload struct {
	Username  string `json:"username" form:"username"`
	Password  string `json:"password" form:"password"`
	FirstName string `json:"first_name" form:"first_name"`
	LastName  string `json:"last_name" form:"last_name"`
	Email     string `json:"email" form:"email"`
}

func (p UserCreatePayload) Message() auth.RegisterUserMessage {
	return auth.RegisterUserMessage{
		Username:  strings.TrimSpace(p.Username),
		Password:  p.Password,
		FirstName: strings.TrimSpace(p.FirstName),
		LastName:  strings.TrimSpace(p.LastName),
		Email:     strings.TrimSpace(p.Email),
		Role:      auth.RoleMember,
	}
}

func (p UserCreatePayload) Validate() error {
	return p.Message().Validate()
}

type EventTypePayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (p EventTypePayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 100)),
	)
}

func (p EventTypePayload) Apply(record *repository.EventType) {
	record.Name = strings.TrimSpace(p.Name)
	record.Description = p.Description
}

type EventPayload struct {
	Name        string `json:"name"`
	EventDate   string `json:"event_date"`
	Description string `json:"description"`
	Location    string `json:"location"`
	EventTypeID string `json:"event_type_id"`
}

func (p EventPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 50)),
		validation.Field(&p.EventDate, validation.Required, validation.Date(repository.DateLayout)),
		validation.Field(&p.Location, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.EventTypeID, validation.Required, is.UUID),
	)
}

// Apply copies the payload onto record. Call after Validate.
func (p EventPayload) Apply(record *repository.Event) {
	record.Name = strings.TrimSpace(p.Name)
	record.EventDate = p.EventDate
	record.Description = p.Description
	record.Location = strings.TrimSpace(p.Location)
	record.EventTypeID = uuid.MustParse(p.EventTypeID)
}

type ParticipantPayload struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
	EventID   string `json:"event_id"`
}

// Validate checks every field except EventID, which depends on the route
func (p ParticipantPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.FirstName, validation.Required, validation.Length(1, 50)),
		validation.Field(&p.LastName, validation.Required, validation.Length(1, 50)),
		validation.Field(&p.Email, validation.Required, validation.Length(3, 50), auth.EmailFormat),
		validation.Field(&p.Phone, validation.Required, validation.By(validPhone)),
		validation.Field(&p.Address, validation.Required, validation.Length(1, 100)),
		validation.Field(&p.City, validation.Required, validation.Length(1, 30)),
		validation.Field(&p.State, validation.Required, validation.Length(2, 2)),
		validation.Field(&p.ZipCode, validation.Required, validation.Length(1, 10)),
		validation.Field(&p.EventID, is.UUID),
	)
}

// Record builds the participant. Call after Validate.
func (p ParticipantPayload) Record() *repository.Participant {
	record := &repository.Participant{
		FirstName: strings.TrimSpace(p.FirstName),
		LastName:  strings.TrimSpace(p.LastName),
		Email:     strings.TrimSpace(p.Email),
		Phone:     NormalizePhone(p.Phone),
		Address:   strings.TrimSpace(p.Address),
		City:      strings.TrimSpace(p.City),
		State:     strings.ToUpper(strings.TrimSpace(p.State)),
		ZipCode:   strings.TrimSpace(p.ZipCode),
	}
	if id, err := uuid.Parse(p.EventID); err == nil {
		record.EventID = id
	}
	return record
}

func validPhone(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	num, err := phonenumbers.Parse(s, DefaultPhoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return errors.New("must be a valid phone number")
	}
	return nil
}

// NormalizePhone returns the E.164 form of a valid number, or s unchanged
func NormalizePhone(s string) string {
	num, err := phonenumbers.Parse(s, DefaultPhoneRegion)
	if err != nil {
		return s
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}
