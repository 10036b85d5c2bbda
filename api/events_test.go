package api_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (h *harness) createType(name string) string {
	h.t.Helper()
	out := h.json(http.MethodPost, "/type/create", map[string]string{"name": name}, http.StatusOK)
	return out["id"].(string)
}

func (h *harness) createEvent(typeID, name, date string) string {
	h.t.Helper()
	out := h.json(http.MethodPost, "/event/create", map[string]string{
		"name":          name,
		"event_date":    date,
		"location":      "Main hall",
		"event_type_id": typeID,
	}, http.StatusOK)
	return out["id"].(string)
}

func participantPayload(eventID string) map[string]string {
	return map[string]string{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"email":      "ada@example.com",
		"phone":      "(650) 253-0000",
		"address":    "1 Analytical Way",
		"city":       "London",
		"state":      "ca",
		"zip_code":   "94105",
		"event_id":   eventID,
	}
}

func TestEventTypes(t *testing.T) {
	h := newHarness(t).login()

	id := h.createType("Conference")

	out := h.json(http.MethodGet, "/type/read/"+id, nil, http.StatusOK)
	assert.Equal(t, "Conference", out["name"])

	out = h.json(http.MethodPut, "/type/update/"+id, map[string]string{
		"name":        "Summit",
		"description": "Big one",
	}, http.StatusOK)
	assert.Equal(t, "Summit", out["name"])
	assert.Equal(t, "Big one", out["description"])

	assert.Len(t, h.list("/type/list"), 1)

	h.json(http.MethodPost, "/type/create", map[string]string{"name": ""}, http.StatusUnprocessableEntity)

	eventID := h.createEvent(id, "Keynote", "2024-09-01")
	h.json(http.MethodDelete, "/type/delete/"+id, nil, http.StatusConflict)

	h.json(http.MethodDelete, "/event/delete/"+eventID, nil, http.StatusNoContent)
	h.json(http.MethodDelete, "/type/delete/"+id, nil, http.StatusNoContent)
	h.json(http.MethodGet, "/type/read/"+id, nil, http.StatusNotFound)
}

func TestEvents(t *testing.T) {
	h := newHarness(t).login()
	typeID := h.createType("Meetup")

	id := h.createEvent(typeID, "Go night", "2024-05-02")
	h.createEvent(typeID, "Rust night", "2024-05-20")
	h.createEvent(typeID, "Zig night", "2024-07-01")

	assert.Len(t, h.list("/event/list"), 3)

	inRange := h.list("/event/list/2024-05-02/2024-05-20")
	require.Len(t, inRange, 2)
	assert.Equal(t, "Go night", inRange[0]["name"])
	assert.Equal(t, "Rust night", inRange[1]["name"])

	assert.Empty(t, h.list("/event/list/2024-06-01/2024-05-01"))
	h.json(http.MethodGet, "/event/list/yesterday/today", nil, http.StatusUnprocessableEntity)

	out := h.json(http.MethodPut, "/event/update/"+id, map[string]string{
		"name":          "Go meetup",
		"event_date":    "2024-05-03",
		"location":      "Room 2",
		"event_type_id": typeID,
	}, http.StatusOK)
	assert.Equal(t, "Go meetup", out["name"])
	assert.Equal(t, "2024-05-03", out["event_date"])

	h.json(http.MethodGet, "/event/read/"+id, nil, http.StatusOK)
	h.json(http.MethodGet, "/event/read/6f1c3a52-3f7e-4c39-9d35-0c1f2f8f0a11", nil, http.StatusNotFound)
}

func TestEvents_Validation(t *testing.T) {
	h := newHarness(t).login()
	typeID := h.createType("Meetup")

	tests := []struct {
		name    string
		payload map[string]string
		status  int
	}{
		{
			name:    "bad date",
			payload: map[string]string{"name": "x", "event_date": "01/02/2024", "location": "y", "event_type_id": typeID},
			status:  http.StatusUnprocessableEntity,
		},
		{
			name:    "name too long",
			payload: map[string]string{"name": strings.Repeat("n", 51), "event_date": "2024-01-02", "location": "y", "event_type_id": typeID},
			status:  http.StatusUnprocessableEntity,
		},
		{
			name:    "invalid type id",
			payload: map[string]string{"name": "x", "event_date": "2024-01-02", "location": "y", "event_type_id": "7"},
			status:  http.StatusUnprocessableEntity,
		},
		{
			name:    "unknown type",
			payload: map[string]string{"name": "x", "event_date": "2024-01-02", "location": "y", "event_type_id": "6f1c3a52-3f7e-4c39-9d35-0c1f2f8f0a11"},
			status:  http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h.json(http.MethodPost, "/event/create", tt.payload, tt.status)
		})
	}
}

func TestParticipants(t *testing.T) {
	h := newHarness(t).login()
	typeID := h.createType("Workshop")
	eventID := h.createEvent(typeID, "Bun 101", "2024-06-10")

	p := h.json(http.MethodPost, "/participant/create", participantPayload(eventID), http.StatusOK)
	assert.Equal(t, "+16502530000", p["phone"])
	assert.Equal(t, "CA", p["state"])

	ev := h.json(http.MethodPost, "/event/participant/add/"+eventID, participantPayload(""), http.StatusOK)
	participants, ok := ev["participants"].([]any)
	require.True(t, ok)
	assert.Len(t, participants, 2)

	assert.Len(t, h.list("/participant/list/"+eventID), 2)
	assert.Len(t, h.list("/participant/list"), 2)

	id := p["id"].(string)
	h.json(http.MethodGet, "/participant/read/"+id, nil, http.StatusOK)
	h.json(http.MethodDelete, "/participant/delete/"+id, nil, http.StatusNoContent)
	h.json(http.MethodGet, "/participant/read/"+id, nil, http.StatusNotFound)

	h.json(http.MethodDelete, "/event/delete/"+eventID, nil, http.StatusNoContent)
	assert.Empty(t, h.list("/participant/list"))
}

func TestParticipants_Validation(t *testing.T) {
	h := newHarness(t).login()
	typeID := h.createType("Workshop")
	eventID := h.createEvent(typeID, "Bun 101", "2024-06-10")

	mutations := map[string]func(p map[string]string){
		"bad phone":       func(p map[string]string) { p["phone"] = "12" },
		"bad email":       func(p map[string]string) { p["email"] = "ada" },
		"long state":      func(p map[string]string) { p["state"] = "CAL" },
		"long city":       func(p map[string]string) { p["city"] = "A city name that is far too long" },
		"missing event":   func(p map[string]string) { p["event_id"] = "" },
		"invalid event":   func(p map[string]string) { p["event_id"] = "42" },
		"missing surname": func(p map[string]string) { p["last_name"] = "" },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			payload := participantPayload(eventID)
			mutate(payload)
			h.json(http.MethodPost, "/participant/create", payload, http.StatusUnprocessableEntity)
		})
	}

	h.json(http.MethodPost, "/participant/create", participantPayload("6f1c3a52-3f7e-4c39-9d35-0c1f2f8f0a11"), http.StatusNotFound)
	h.json(http.MethodPost, "/event/participant/add/6f1c3a52-3f7e-4c39-9d35-0c1f2f8f0a11", participantPayload(""), http.StatusNotFound)
}
