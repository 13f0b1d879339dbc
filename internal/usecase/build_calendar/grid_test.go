package build_calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

func date(y int, m time.Month, d int) types.CalendarDate {
	return types.CalendarDate{Year: y, Month: m, Day: d}
}

func TestBuild_Layout(t *testing.T) {
	tests := []struct {
		name        string
		month       types.YearMonth
		wantOffset  int
		wantDaysLen int
	}{
		// 1 марта 2025 - суббота
		{name: "starts on saturday", month: types.YearMonth{Year: 2025, Month: time.March}, wantOffset: 5, wantDaysLen: 31},
		// 1 сентября 2025 - понедельник
		{name: "starts on monday", month: types.YearMonth{Year: 2025, Month: time.September}, wantOffset: 0, wantDaysLen: 30},
		// 1 июня 2025 - воскресенье
		{name: "starts on sunday", month: types.YearMonth{Year: 2025, Month: time.June}, wantOffset: 6, wantDaysLen: 30},
		{name: "leap february", month: types.YearMonth{Year: 2024, Month: time.February}, wantOffset: 3, wantDaysLen: 29},
	}

	horizon := domain.Horizon{Today: date(2024, time.January, 1), MaxAdvanceDays: 1000}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid := Build(tt.month, horizon, nil)

			assert.Len(t, grid.Cells, CellCount)
			for i := 0; i < tt.wantOffset; i++ {
				assert.True(t, grid.Cells[i].IsPlaceholder(), "cell %d", i)
			}
			require.NotNil(t, grid.Cells[tt.wantOffset].Day)
			assert.Equal(t, 1, grid.Cells[tt.wantOffset].Day.Date.Day)

			days := grid.Days()
			assert.Len(t, days, tt.wantDaysLen)
			for i, d := range days {
				assert.Equal(t, i+1, d.Date.Day)
			}
		})
	}
}

func TestBuild_HorizonClamp(t *testing.T) {
	today := date(2025, time.March, 10)
	horizon := domain.Horizon{Today: today, MaxAdvanceDays: 5}

	availability := map[types.CalendarDate]bool{
		date(2025, time.March, 9):  true, // прошлое
		date(2025, time.March, 10): true,
		date(2025, time.March, 12): false,
		date(2025, time.March, 15): true, // последний день горизонта
		date(2025, time.March, 16): true, // за горизонтом
	}

	grid := Build(types.YearMonth{Year: 2025, Month: time.March}, horizon, availability)

	check := func(d types.CalendarDate, want bool) {
		day, ok := grid.Day(d)
		require.True(t, ok)
		assert.Equal(t, want, day.Available, d.String())
	}
	check(date(2025, time.March, 9), false)
	check(date(2025, time.March, 10), true)
	check(date(2025, time.March, 11), false) // нет записи
	check(date(2025, time.March, 12), false)
	check(date(2025, time.March, 15), true)
	check(date(2025, time.March, 16), false)

	assert.True(t, grid.HasAvailable())
}

func TestGrid_Day_OutsideMonth(t *testing.T) {
	grid := Build(types.YearMonth{Year: 2025, Month: time.March}, domain.Horizon{}, nil)

	_, ok := grid.Day(date(2025, time.April, 1))
	assert.False(t, ok)
	assert.False(t, grid.HasAvailable())
}

func TestGrid_Rows(t *testing.T) {
	grid := Build(types.YearMonth{Year: 2025, Month: time.March}, domain.Horizon{}, nil)
	rows := grid.Rows()

	require.NotNil(t, rows[0][5].Day)
	assert.Equal(t, 1, rows[0][5].Day.Date.Day)
	// 31 марта 2025 - понедельник шестой недели
	require.NotNil(t, rows[5][0].Day)
	assert.Equal(t, 31, rows[5][0].Day.Date.Day)
	assert.Nil(t, rows[5][1].Day)
}
