package build_calendar

import (
	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

// Build строит сетку месяца.
// availability - флаги доступности только этого месяца; отсутствующие дни считаются недоступными.
// Дни вне горизонта [today, today+maxAdvanceDays] всегда недоступны, даже если сервис считает иначе.
func Build(month types.YearMonth, horizon domain.Horizon, availability map[types.CalendarDate]bool) Grid {
	grid := Grid{Month: month}

	offset := mondayOffset(month.FirstDay())
	for day := 1; day <= month.DaysIn(); day++ {
		date := types.CalendarDate{Year: month.Year, Month: month.Month, Day: day}
		grid.Cells[offset+day-1] = Cell{Day: &domain.CalendarDay{
			Date:      date,
			Available: availability[date] && horizon.Contains(date),
		}}
	}

	return grid
}

// mondayOffset количество пустых ячеек перед первым числом: понедельник = 0, воскресенье = 6
func mondayOffset(d types.CalendarDate) int {
	return (int(d.Weekday()) + 6) % 7
}

// Days возвращает дни месяца по порядку
func (g Grid) Days() []domain.CalendarDay {
	days := make([]domain.CalendarDay, 0, g.Month.DaysIn())
	for _, cell := range g.Cells {
		if cell.Day != nil {
			days = append(days, *cell.Day)
		}
	}
	return days
}

// Day ищет день в сетке
func (g Grid) Day(date types.CalendarDate) (domain.CalendarDay, bool) {
	if !g.Month.Contains(date) {
		return domain.CalendarDay{}, false
	}
	cell := g.Cells[mondayOffset(g.Month.FirstDay())+date.Day-1]
	if cell.Day == nil {
		return domain.CalendarDay{}, false
	}
	return *cell.Day, true
}

// Rows возвращает сетку построчно (6 недель по 7 дней)
func (g Grid) Rows() [Rows][Columns]Cell {
	var rows [Rows][Columns]Cell
	for i, cell := range g.Cells {
		rows[i/Columns][i%Columns] = cell
	}
	return rows
}

// HasAvailable возвращает true, если в месяце есть хотя бы один доступный день
func (g Grid) HasAvailable() bool {
	for _, cell := range g.Cells {
		if cell.Day != nil && cell.Day.Available {
			return true
		}
	}
	return false
}
