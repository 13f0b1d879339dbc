package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat возвращается, когда строка не соответствует формату YYYY-MM-DD
var ErrInvalidDateFormat = errors.New("invalid date string format")

const dateLayout = "2006-01-02"

// CalendarDate календарный день без времени и часового пояса
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// NewCalendarDate создает нормализованную дату (32 января превращается в 1 февраля)
func NewCalendarDate(year int, month time.Month, day int) CalendarDate {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf извлекает календарный день из time.Time в его собственной локации
func DateOf(t time.Time) CalendarDate {
	y, m, d := t.Date()
	return CalendarDate{Year: y, Month: m, Day: d}
}

// ParseDate парсит строку формата YYYY-MM-DD
func ParseDate(s string) (CalendarDate, error) {
	parsed, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return CalendarDate{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	return DateOf(parsed), nil
}

// IsZero возвращает true для нулевого значения
func (d CalendarDate) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// String возвращает дату в формате YYYY-MM-DD
func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Compact возвращает дату в формате YYYYMMDD
func (d CalendarDate) Compact() string {
	return fmt.Sprintf("%04d%02d%02d", d.Year, int(d.Month), d.Day)
}

// Time возвращает полночь этого дня в UTC
func (d CalendarDate) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays сдвигает дату на n дней
func (d CalendarDate) AddDays(n int) CalendarDate {
	return NewCalendarDate(d.Year, d.Month, d.Day+n)
}

// Compare возвращает -1, 0 или 1
func (d CalendarDate) Compare(other CalendarDate) int {
	switch {
	case d.Year != other.Year:
		return sign(d.Year - other.Year)
	case d.Month != other.Month:
		return sign(int(d.Month) - int(other.Month))
	default:
		return sign(d.Day - other.Day)
	}
}

// Before возвращает true, если d строго раньше other
func (d CalendarDate) Before(other CalendarDate) bool {
	return d.Compare(other) < 0
}

// After возвращает true, если d строго позже other
func (d CalendarDate) After(other CalendarDate) bool {
	return d.Compare(other) > 0
}

// Weekday возвращает день недели
func (d CalendarDate) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// YearMonth возвращает месяц, которому принадлежит дата
func (d CalendarDate) YearMonth() YearMonth {
	return YearMonth{Year: d.Year, Month: d.Month}
}

// MarshalJSON сериализует дату как "YYYY-MM-DD"
func (d CalendarDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON парсит "YYYY-MM-DD"
func (d *CalendarDate) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value реализует driver.Valuer для колонок типа DATE
func (d CalendarDate) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan реализует sql.Scanner
func (d *CalendarDate) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		if len(v) > len(dateLayout) {
			v = v[:len(dateLayout)]
		}
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		return d.Scan(string(v))
	default:
		return fmt.Errorf("%w: cannot scan %T into CalendarDate", ErrInvalidDateFormat, src)
	}
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
