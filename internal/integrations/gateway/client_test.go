package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultationService/pkg/logger"
	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/api/v1/", 2*time.Second, logger.NewNop())
}

func TestClient_GetSettings(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/settings", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(`{"enabled":true,"duration_minutes":30,"max_advance_days":30}`))
	})

	settings, err := client.GetSettings(context.Background())
	require.NoError(t, err)
	assert.True(t, settings.Enabled)
	assert.Equal(t, 30, settings.DurationMinutes)
	assert.Equal(t, 30, settings.MaxAdvanceDays)
}

func TestClient_GetSettings_ServerDown(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.GetSettings(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRejected)
}

func TestClient_GetMonthAvailability(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/availability", r.URL.Path)
		assert.Equal(t, "2025-03", r.URL.Query().Get("month"))
		_, _ = w.Write([]byte(`[
			{"date":"2025-03-10","available":true},
			{"date":"2025-03-11","available":false},
			{"date":"2025-04-01","available":true}
		]`))
	})

	days, err := client.GetMonthAvailability(context.Background(), types.YearMonth{Year: 2025, Month: time.March})
	require.NoError(t, err)
	assert.Len(t, days, 2)
	assert.True(t, days[types.CalendarDate{Year: 2025, Month: time.March, Day: 10}])
	assert.False(t, days[types.CalendarDate{Year: 2025, Month: time.March, Day: 11}])
}

func TestClient_GetMonthAvailability_MalformedDate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"date":"10/03/2025","available":true}]`))
	})

	_, err := client.GetMonthAvailability(context.Background(), types.YearMonth{Year: 2025, Month: time.March})
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_GetDaySlots_PreservesOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2025-03-10", r.URL.Query().Get("date"))
		_, _ = w.Write([]byte(`[
			{"time":"14:00","available":true},
			{"time":"09:00","available":true},
			{"time":"09:30","available":false}
		]`))
	})

	slots, err := client.GetDaySlots(context.Background(), types.CalendarDate{Year: 2025, Month: time.March, Day: 10})
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.Equal(t, "14:00", slots[0].Time.String())
	assert.Equal(t, "09:00", slots[1].Time.String())
	assert.False(t, slots[2].Available)
}

func TestClient_CreateBooking(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/booking", r.URL.Path)

		var req BookingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Marie", req.FirstName)
		assert.Equal(t, "2025-03-10", req.Date)
		assert.Equal(t, "09:00", req.Time)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"booking":{"date":"2025-03-10","time":"09:00","duration":30,"meeting_link":"https://meet.example/abc"}}`))
	})

	booking, err := client.CreateBooking(context.Background(), &BookingRequest{
		FirstName: "Marie",
		LastName:  "CURIE",
		Email:     "marie@example.com",
		Phone:     "0612345678",
		Date:      "2025-03-10",
		Time:      "09:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", booking.Date.String())
	assert.Equal(t, "09:00", booking.Time.String())
	assert.Equal(t, 30, booking.DurationMinutes)
	assert.Equal(t, "https://meet.example/abc", booking.MeetingLink)
}

func TestClient_CreateBooking_ServerMessageVerbatim(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{name: "json message", status: http.StatusConflict, body: `{"code":409,"message":"Ce créneau vient d'être réservé"}`, message: "Ce créneau vient d'être réservé"},
		{name: "plain text", status: http.StatusTooManyRequests, body: "rate limit exceeded\n", message: "rate limit exceeded"},
		{name: "empty body", status: http.StatusInternalServerError, body: "", message: "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.CreateBooking(context.Background(), &BookingRequest{Date: "2025-03-10", Time: "09:00"})
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.message, apiErr.Message)
		})
	}
}

func TestClient_CreateBooking_TransportError(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 200*time.Millisecond, logger.NewNop())

	_, err := client.CreateBooking(context.Background(), &BookingRequest{Date: "2025-03-10", Time: "09:00"})
	assert.ErrorIs(t, err, ErrInternal)
}
