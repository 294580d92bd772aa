package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("直近終了と次回予約を導出する", func(t *testing.T) {
		bookings := []*Booking{
			{ID: "b-old", Start: now.Add(-10 * time.Hour), End: now.Add(-8 * time.Hour), Status: StatusApproved},
			{ID: "b-last", Start: now.Add(-4 * time.Hour), End: now.Add(-2 * time.Hour), Status: StatusApproved},
			{ID: "b-next", Start: now.Add(2 * time.Hour), End: now.Add(4 * time.Hour), Status: StatusApproved},
			{ID: "b-far", Start: now.Add(10 * time.Hour), End: now.Add(12 * time.Hour), Status: StatusApproved},
		}

		last, next := Project(bookings, now)

		require.NotNil(t, last)
		require.NotNil(t, next)
		assert.Equal(t, "b-last", last.ID)
		assert.Equal(t, "b-next", next.ID)
	})

	t.Run("pending と rejected は射影に含めない", func(t *testing.T) {
		bookings := []*Booking{
			{ID: "b-pending", Start: now.Add(-4 * time.Hour), End: now.Add(-2 * time.Hour), Status: StatusPending},
			{ID: "b-rejected", Start: now.Add(2 * time.Hour), End: now.Add(4 * time.Hour), Status: StatusRejected},
		}

		last, next := Project(bookings, now)

		assert.Nil(t, last)
		assert.Nil(t, next)
	})

	t.Run("終了時刻が now ちょうどの予約は last になる", func(t *testing.T) {
		bookings := []*Booking{
			{ID: "b-1", Start: now.Add(-2 * time.Hour), End: now, Status: StatusApproved},
		}

		last, next := Project(bookings, now)

		require.NotNil(t, last)
		assert.Equal(t, "b-1", last.ID)
		assert.Nil(t, next)
	})

	t.Run("開始時刻が now ちょうどの予約は next にならない", func(t *testing.T) {
		bookings := []*Booking{
			{ID: "b-1", Start: now, End: now.Add(2 * time.Hour), Status: StatusApproved},
		}

		last, next := Project(bookings, now)

		assert.Nil(t, last)
		assert.Nil(t, next)
	})

	t.Run("予約がなければ両方 nil", func(t *testing.T) {
		last, next := Project(nil, now)
		assert.Nil(t, last)
		assert.Nil(t, next)
	})

	t.Run("終了時刻が同値なら last はID降順で決定", func(t *testing.T) {
		bookings := []*Booking{
			{ID: "b-a", Start: now.Add(-4 * time.Hour), End: now.Add(-2 * time.Hour), Status: StatusApproved},
			{ID: "b-b", Start: now.Add(-3 * time.Hour), End: now.Add(-2 * time.Hour), Status: StatusApproved},
		}

		last, _ := Project(bookings, now)

		require.NotNil(t, last)
		assert.Equal(t, "b-b", last.ID)
	})

	t.Run("開始時刻が同値なら next はID昇順で決定", func(t *testing.T) {
		bookings := []*Booking{
			{ID: "b-b", Start: now.Add(2 * time.Hour), End: now.Add(4 * time.Hour), Status: StatusApproved},
			{ID: "b-a", Start: now.Add(2 * time.Hour), End: now.Add(3 * time.Hour), Status: StatusApproved},
		}

		_, next := Project(bookings, now)

		require.NotNil(t, next)
		assert.Equal(t, "b-a", next.ID)
	})

	t.Run("進行中の予約は last にも next にも含めない", func(t *testing.T) {
		bookings := []*Booking{
			{ID: "b-1", Start: now.Add(-1 * time.Hour), End: now.Add(1 * time.Hour), Status: StatusApproved},
		}

		last, next := Project(bookings, now)

		assert.Nil(t, last)
		assert.Nil(t, next)
	})
}
