package build_calendar

import (
	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

// Bounds возвращает диапазон навигации: от текущего месяца до месяца, содержащего today+maxAdvanceDays
func Bounds(horizon domain.Horizon) MonthRange {
	return MonthRange{
		Min: horizon.Today.YearMonth(),
		Max: horizon.Last().YearMonth(),
	}
}

// Contains возвращает true, если месяц в пределах диапазона
func (r MonthRange) Contains(m types.YearMonth) bool {
	return m.Compare(r.Min) >= 0 && m.Compare(r.Max) <= 0
}

// Clamp приводит месяц к ближайшей границе диапазона
func (r MonthRange) Clamp(m types.YearMonth) types.YearMonth {
	switch {
	case m.Compare(r.Min) < 0:
		return r.Min
	case m.Compare(r.Max) > 0:
		return r.Max
	default:
		return m
	}
}

// Navigate сдвигает текущий месяц на delta.
// Если результат вне диапазона, возвращает current и false: переход не выполняется, без зацикливания.
func (r MonthRange) Navigate(current types.YearMonth, delta int) (types.YearMonth, bool) {
	target := current.AddMonths(delta)
	if !r.Contains(target) {
		return current, false
	}
	return target, true
}

// CanGoPrev / CanGoNext для отрисовки кнопок навигации
func (r MonthRange) CanGoPrev(current types.YearMonth) bool {
	return current.Compare(r.Min) > 0
}

func (r MonthRange) CanGoNext(current types.YearMonth) bool {
	return current.Compare(r.Max) < 0
}
