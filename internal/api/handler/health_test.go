package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Zigvert/go-shareit/internal/domain/booking"
)

func TestHealthHandler_Check(t *testing.T) {
	// Setup
	e := NewTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewHealthHandler()

	// Act
	err := h.Check(c)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.Contains(t, rec.Body.String(), `"timestamp"`)
}

func TestNewHealthHandler(t *testing.T) {
	h := NewHealthHandler()
	assert.NotNil(t, h)
}

func TestToBookingResponse(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	b := &booking.Booking{
		ID:        "booking-123",
		ItemID:    "item-456",
		BookerID:  "user-789",
		Start:     now.Add(1 * time.Hour),
		End:       now.Add(2 * time.Hour),
		Status:    booking.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	resp := toBookingResponse(b)

	assert.Equal(t, b.ID, resp.ID)
	assert.Equal(t, b.ItemID, resp.ItemID)
	assert.Equal(t, b.BookerID, resp.BookerID)
	assert.Equal(t, b.Start, resp.Start)
	assert.Equal(t, b.End, resp.End)
	assert.Equal(t, string(b.Status), resp.Status)
	assert.Equal(t, b.CreatedAt, resp.CreatedAt)
}

func TestToBookingShort(t *testing.T) {
	t.Run("nilはnilのまま", func(t *testing.T) {
		assert.Nil(t, toBookingShort(nil))
	})

	t.Run("短縮表現に写す", func(t *testing.T) {
		now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		b := &booking.Booking{
			ID:       "booking-123",
			BookerID: "user-789",
			Start:    now,
			End:      now.Add(time.Hour),
		}

		short := toBookingShort(b)

		assert.Equal(t, b.ID, short.ID)
		assert.Equal(t, b.BookerID, short.BookerID)
		assert.Equal(t, b.Start, short.Start)
		assert.Equal(t, b.End, short.End)
	})
}
