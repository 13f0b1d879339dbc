package calendarfile

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

// uidNamespace пространство имен для UID событий
var uidNamespace = uuid.MustParse("6f1d7c3e-2a4b-5c8d-9e0f-a1b2c3d4e5f6")

// Encode формирует документ VCALENDAR с одним VEVENT.
// DTEND считается переносом минут в часы без перехода через полночь:
// 23:45 + 30 минут дает T241500.
func Encode(booking domain.ConfirmedBooking, opts Options) []byte {
	opts = opts.withDefaults()

	var b strings.Builder
	w := func(name, value string) {
		writeLine(&b, name+":"+value)
	}

	w("BEGIN", "VCALENDAR")
	w("VERSION", "2.0")
	w("PRODID", opts.ProdID)
	w("CALSCALE", "GREGORIAN")
	w("METHOD", "PUBLISH")

	w("BEGIN", "VEVENT")
	w("UID", eventUID(booking))
	w("DTSTAMP", opts.Stamp.UTC().Format(utcStampLayout))
	w("DTSTART;TZID="+opts.TZID, startStamp(booking))
	w("DTEND;TZID="+opts.TZID, endStamp(booking))
	w("SUMMARY", escapeText(opts.Summary))
	w("DESCRIPTION", escapeText(description(booking)))
	if booking.MeetingLink != "" {
		w("LOCATION", escapeText(booking.MeetingLink))
		w("URL", booking.MeetingLink)
	}
	w("STATUS", "CONFIRMED")
	w("TRANSP", "OPAQUE")

	if opts.ReminderMinutes > 0 {
		w("BEGIN", "VALARM")
		w("ACTION", "DISPLAY")
		w("TRIGGER", fmt.Sprintf("-PT%dM", opts.ReminderMinutes))
		w("DESCRIPTION", escapeText(opts.Summary))
		w("END", "VALARM")
	}

	w("END", "VEVENT")
	w("END", "VCALENDAR")

	return []byte(b.String())
}

// NewArtifact кодирует бронирование и формирует имя файла rdv-<identifier>-<date>.ics
func NewArtifact(booking domain.ConfirmedBooking, opts Options) Artifact {
	return Artifact{
		Filename:    Filename(booking),
		ContentType: ContentType,
		Data:        Encode(booking, opts),
	}
}

// Filename имя файла для бронирования
func Filename(booking domain.ConfirmedBooking) string {
	return fmt.Sprintf("rdv-%s-%s.ics", Identifier(booking.MeetingLink), booking.Date)
}

// Identifier последний сегмент пути ссылки на встречу, только [A-Za-z0-9_-].
// Если ничего не осталось - "consultation".
func Identifier(meetingLink string) string {
	path := meetingLink
	if u, err := url.Parse(meetingLink); err == nil {
		path = u.Path
	} else if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}

	path = strings.TrimRight(path, "/")
	if i := strings.LastIndex(path, "/"); i >= 0 {
		path = path[i+1:]
	}

	ident := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return -1
		}
	}, path)

	if ident == "" {
		return fallbackIdent
	}
	return ident
}

func startStamp(booking domain.ConfirmedBooking) string {
	return fmt.Sprintf("%sT%02d%02d00", booking.Date.Compact(), booking.Time.Hour, booking.Time.Minute)
}

func endStamp(booking domain.ConfirmedBooking) string {
	endMinutes := booking.Time.Minute + booking.DurationMinutes
	endHour := booking.Time.Hour + endMinutes/60
	endMinute := endMinutes % 60
	return fmt.Sprintf("%sT%02d%02d00", booking.Date.Compact(), endHour, endMinute)
}

func eventUID(booking domain.ConfirmedBooking) string {
	seed := fmt.Sprintf("%s|%s|%s", booking.Date, booking.Time, booking.MeetingLink)
	return uuid.NewSHA1(uidNamespace, []byte(seed)).String() + "@consultation"
}

func description(booking domain.ConfirmedBooking) string {
	text := fmt.Sprintf("Consultation de %d minutes le %s à %s.", booking.DurationMinutes, booking.Date, booking.Time)
	if booking.MeetingLink != "" {
		text += "\nLien de la visioconférence : " + booking.MeetingLink
	}
	return text
}

// escapeText экранирует TEXT значения: обратный слеш, ";", "," и переводы строк
func escapeText(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			b.WriteString(`\\`)
		case ';':
			b.WriteString(`\;`)
		case ',':
			b.WriteString(`\,`)
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
			b.WriteString(`\n`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// writeLine пишет строку с CRLF, перенося ее по 75 октетов без разрыва UTF-8 символов
func writeLine(b *strings.Builder, line string) {
	limit := maxLineOctets
	for len(line) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		b.WriteString(line[:cut])
		b.WriteString("\r\n ")
		line = line[cut:]
		// строка продолжения начинается с пробела
		limit = maxLineOctets - 1
	}
	b.WriteString(line)
	b.WriteString("\r\n")
}
