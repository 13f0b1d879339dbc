package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{name: "HH:MM", input: "09:30", want: TimeOfDay{Hour: 9, Minute: 30}},
		{name: "postgres TIME", input: "14:00:00", want: TimeOfDay{Hour: 14}},
		{name: "garbage", input: "9h30", wantErr: true},
		{name: "out of range", input: "25:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeOfDay_AddMinutes(t *testing.T) {
	start := TimeOfDay{Hour: 11, Minute: 45}

	end, err := start.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, "12:15", end.String())

	midnight, err := TimeOfDay{Hour: 23, Minute: 30}.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, 24*60, midnight.Minutes())

	_, err = TimeOfDay{Hour: 23, Minute: 45}.AddMinutes(30)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestCalendarDate_Arithmetic(t *testing.T) {
	d := CalendarDate{Year: 2024, Month: time.February, Day: 28}

	assert.Equal(t, "2024-02-29", d.AddDays(1).String())
	assert.Equal(t, "2024-03-01", d.AddDays(2).String())
	assert.True(t, d.Before(d.AddDays(1)))
	assert.True(t, d.AddDays(1).After(d))
	assert.Equal(t, 0, d.Compare(NewCalendarDate(2024, time.February, 28)))
	assert.Equal(t, time.Wednesday, d.Weekday())
}

func TestCalendarDate_JSON(t *testing.T) {
	var payload struct {
		Date CalendarDate `json:"date"`
		Time TimeOfDay    `json:"time"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2025-03-10","time":"14:30"}`), &payload))
	assert.Equal(t, CalendarDate{Year: 2025, Month: time.March, Day: 10}, payload.Date)
	assert.Equal(t, TimeOfDay{Hour: 14, Minute: 30}, payload.Time)

	err := json.Unmarshal([]byte(`{"date":"10/03/2025"}`), &payload)
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}

func TestCalendarDate_Scan(t *testing.T) {
	var d CalendarDate
	require.NoError(t, d.Scan(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-03-10", d.String())

	require.NoError(t, d.Scan([]byte("2025-04-01T00:00:00Z")))
	assert.Equal(t, "2025-04-01", d.String())
}

func TestYearMonth(t *testing.T) {
	m, err := ParseYearMonth("2024-12")
	require.NoError(t, err)

	assert.Equal(t, 31, m.DaysIn())
	assert.Equal(t, "2025-01", m.Next().String())
	assert.Equal(t, "2024-11", m.Prev().String())
	assert.Equal(t, 29, YearMonth{Year: 2024, Month: time.February}.DaysIn())
	assert.Equal(t, 28, YearMonth{Year: 2100, Month: time.February}.DaysIn())
	assert.Equal(t, -1, m.Compare(m.Next()))
	assert.True(t, m.Contains(CalendarDate{Year: 2024, Month: time.December, Day: 5}))
}
