package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidTimeFormat возвращается, когда строка не соответствует формату HH:MM
	ErrInvalidTimeFormat = errors.New("invalid time string format")

	// ErrTimeOverflow возвращается, когда результат арифметики выходит за пределы суток
	ErrTimeOverflow = errors.New("time of day overflows the day")
)

const timeLayout = "15:04"

// TimeOfDay время суток без даты и часового пояса (например, "10:30")
type TimeOfDay struct {
	Hour   int
	Minute int
}

// NewTimeOfDay создает TimeOfDay из часа и минуты с проверкой диапазона
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	t := TimeOfDay{Hour: hour, Minute: minute}
	if err := t.Validate(); err != nil {
		return TimeOfDay{}, err
	}
	return t, nil
}

// TimeOfDayFromTime извлекает время суток из time.Time
func TimeOfDayFromTime(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
}

// ParseTimeOfDay парсит строку формата HH:MM (секунды HH:MM:SS допускаются и отбрасываются)
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	if len(s) == len("15:04:05") {
		s = s[:len(timeLayout)]
	}
	parsed, err := time.Parse(timeLayout, s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	return TimeOfDayFromTime(parsed), nil
}

// Validate проверяет, что час и минута в допустимых пределах
func (t TimeOfDay) Validate() error {
	if t.Hour < 0 || t.Hour > 23 || t.Minute < 0 || t.Minute > 59 {
		return fmt.Errorf("%w: %02d:%02d", ErrInvalidTimeFormat, t.Hour, t.Minute)
	}
	return nil
}

// String возвращает время в формате HH:MM
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Minutes возвращает количество минут от начала суток
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeOfDay) IsBefore(other TimeOfDay) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter возвращает true, если t строго позже other
func (t TimeOfDay) IsAfter(other TimeOfDay) bool {
	return t.Minutes() > other.Minutes()
}

// AddMinutes прибавляет минуты. Результат должен оставаться в пределах суток,
// 24:00 допускается только как граница интервала.
func (t TimeOfDay) AddMinutes(minutes int) (TimeOfDay, error) {
	total := t.Minutes() + minutes
	if total < 0 || total > 24*60 {
		return TimeOfDay{}, fmt.Errorf("%w: %s + %d min", ErrTimeOverflow, t, minutes)
	}
	return TimeOfDay{Hour: total / 60, Minute: total % 60}, nil
}

// IsMorning возвращает true для времени до полудня
func (t TimeOfDay) IsMorning() bool {
	return t.Hour < 12
}

// On возвращает момент времени на указанную дату в указанной локации
func (t TimeOfDay) On(d CalendarDate, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, t.Hour, t.Minute, 0, 0, loc)
}

// MarshalJSON сериализует время как "HH:MM"
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON парсит "HH:MM"
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value реализует driver.Valuer для колонок типа TIME
func (t TimeOfDay) Value() (driver.Value, error) {
	return t.String() + ":00", nil
}

// Scan реализует sql.Scanner
func (t *TimeOfDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*t = TimeOfDayFromTime(v)
		return nil
	case string:
		parsed, err := ParseTimeOfDay(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case []byte:
		return t.Scan(string(v))
	default:
		return fmt.Errorf("%w: cannot scan %T into TimeOfDay", ErrInvalidTimeFormat, src)
	}
}
