package build_calendar

import (
	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

const (
	// Columns дней в неделе, неделя начинается с понедельника
	Columns = 7
	// Rows строк в сетке месяца
	Rows = 6
	// CellCount общее количество ячеек сетки
	CellCount = Rows * Columns
)

// Cell ячейка сетки. Day == nil - пустая ячейка вне месяца.
type Cell struct {
	Day *domain.CalendarDay
}

// IsPlaceholder возвращает true для ячеек вне месяца
func (c Cell) IsPlaceholder() bool {
	return c.Day == nil
}

// Grid сетка месяца 6x7, начиная с понедельника
type Grid struct {
	Month types.YearMonth
	Cells [CellCount]Cell
}

// MonthRange диапазон месяцев, доступных для навигации (включительно)
type MonthRange struct {
	Min types.YearMonth
	Max types.YearMonth
}
