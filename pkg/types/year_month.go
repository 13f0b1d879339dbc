package types

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidMonthFormat возвращается, когда строка не соответствует формату YYYY-MM
var ErrInvalidMonthFormat = errors.New("invalid month string format")

const monthLayout = "2006-01"

// YearMonth календарный месяц
type YearMonth struct {
	Year  int
	Month time.Month
}

// ParseYearMonth парсит строку формата YYYY-MM
func ParseYearMonth(s string) (YearMonth, error) {
	parsed, err := time.Parse(monthLayout, strings.TrimSpace(s))
	if err != nil {
		return YearMonth{}, fmt.Errorf("%w: %q", ErrInvalidMonthFormat, s)
	}
	return YearMonth{Year: parsed.Year(), Month: parsed.Month()}, nil
}

// String возвращает месяц в формате YYYY-MM
func (m YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// FirstDay возвращает первое число месяца
func (m YearMonth) FirstDay() CalendarDate {
	return CalendarDate{Year: m.Year, Month: m.Month, Day: 1}
}

// LastDay возвращает последнее число месяца
func (m YearMonth) LastDay() CalendarDate {
	return CalendarDate{Year: m.Year, Month: m.Month, Day: m.DaysIn()}
}

// DaysIn возвращает количество дней в месяце
func (m YearMonth) DaysIn() int {
	// нулевой день следующего месяца - последний день текущего
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonths сдвигает месяц на n без переполнения дней
func (m YearMonth) AddMonths(n int) YearMonth {
	t := time.Date(m.Year, m.Month+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// Next возвращает следующий месяц
func (m YearMonth) Next() YearMonth {
	return m.AddMonths(1)
}

// Prev возвращает предыдущий месяц
func (m YearMonth) Prev() YearMonth {
	return m.AddMonths(-1)
}

// Compare возвращает -1, 0 или 1
func (m YearMonth) Compare(other YearMonth) int {
	if m.Year != other.Year {
		return sign(m.Year - other.Year)
	}
	return sign(int(m.Month) - int(other.Month))
}

// Contains возвращает true, если дата принадлежит месяцу
func (m YearMonth) Contains(d CalendarDate) bool {
	return d.Year == m.Year && d.Month == m.Month
}
