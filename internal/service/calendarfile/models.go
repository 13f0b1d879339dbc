package calendarfile

import "time"

const (
	// ContentType MIME тип артефакта
	ContentType = "text/calendar"

	DefaultTZID     = "Europe/Paris"
	DefaultProdID   = "-//SMC//Consultation Booking//FR"
	DefaultSummary  = "Consultation"
	fallbackIdent   = "consultation"
	maxLineOctets   = 75
	localDateLayout = "20060102T150405"
	utcStampLayout  = "20060102T150405Z"
)

// Options параметры кодирования. Нулевые значения заменяются значениями по умолчанию.
type Options struct {
	// TZID название часового пояса, только аннотация: время не конвертируется
	TZID    string
	ProdID  string
	Summary string
	// Stamp значение DTSTAMP; нулевое значение - time.Now()
	Stamp time.Time
	// ReminderMinutes напоминание за N минут до начала; 0 - без VALARM
	ReminderMinutes int
}

func (o Options) withDefaults() Options {
	if o.TZID == "" {
		o.TZID = DefaultTZID
	}
	if o.ProdID == "" {
		o.ProdID = DefaultProdID
	}
	if o.Summary == "" {
		o.Summary = DefaultSummary
	}
	if o.Stamp.IsZero() {
		o.Stamp = time.Now()
	}
	return o
}

// Artifact готовый к скачиванию файл
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}
