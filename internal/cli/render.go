package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/internal/service/session"
	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

var (
	monthNames = [...]string{
		"janvier", "février", "mars", "avril", "mai", "juin",
		"juillet", "août", "septembre", "octobre", "novembre", "décembre",
	}
	weekdayNames = [...]string{
		"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi",
	}
	titleCaser = cases.Title(language.French)
)

const gridHeader = "lu  ma  me  je  ve  sa  di"

// MonthTitle "Mars 2025"
func MonthTitle(m types.YearMonth) string {
	return titleCaser.String(fmt.Sprintf("%s %d", monthName(m.Month), m.Year))
}

// LongDate "mardi 11 mars 2025"
func LongDate(d types.CalendarDate) string {
	return fmt.Sprintf("%s %d %s %d", weekdayNames[d.Weekday()], d.Day, monthName(d.Month), d.Year)
}

// capitalize переводит в заглавную только первое слово
func capitalize(s string) string {
	first, rest, _ := strings.Cut(s, " ")
	if rest == "" {
		return titleCaser.String(first)
	}
	return titleCaser.String(first) + " " + rest
}

func monthName(m time.Month) string {
	return monthNames[m-time.January]
}

// RenderMonth печатает сетку месяца. "*" - день со свободными слотами, "+" - ранее выбранная дата.
func RenderMonth(w io.Writer, st session.DateSelection) {
	fmt.Fprintf(w, "\n%s\n%s\n", MonthTitle(st.Month), gridHeader)

	if st.Load != session.LoadReady {
		if st.Load == session.LoadFailed {
			fmt.Fprintln(w, "Impossible de charger les disponibilités. Tapez r pour réessayer.")
		}
		return
	}

	for _, row := range st.Grid.Rows() {
		var line strings.Builder
		blank := true
		for _, cell := range row {
			if cell.IsPlaceholder() {
				line.WriteString("    ")
				continue
			}
			blank = false
			marker := " "
			switch {
			case st.Previous != nil && *st.Previous == cell.Day.Date:
				marker = "+"
			case cell.Day.Available:
				marker = "*"
			}
			fmt.Fprintf(&line, "%2d%s ", cell.Day.Date.Day, marker)
		}
		if !blank {
			fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
		}
	}

	if !st.Grid.HasAvailable() {
		fmt.Fprintln(w, "Aucune disponibilité ce mois-ci.")
	}

	var nav []string
	if st.Bounds.CanGoPrev(st.Month) {
		nav = append(nav, "< mois précédent")
	}
	if st.Bounds.CanGoNext(st.Month) {
		nav = append(nav, "> mois suivant")
	}
	if len(nav) > 0 {
		fmt.Fprintln(w, strings.Join(nav, "   "))
	}
}

// RenderSlots печатает слоты дня по группам. Занятые слоты в скобках.
func RenderSlots(w io.Writer, st session.TimeSelection) {
	fmt.Fprintf(w, "\n%s\n", capitalize(LongDate(st.Date)))

	switch st.Load {
	case session.LoadPending:
		return
	case session.LoadFailed:
		fmt.Fprintln(w, "Impossible de charger les créneaux. Tapez r pour réessayer.")
		return
	}

	if st.Slots.Empty() {
		fmt.Fprintln(w, "Aucun créneau disponible ce jour-là.")
		return
	}

	renderGroup(w, "Matin", st.Slots.Morning)
	renderGroup(w, "Après-midi", st.Slots.Afternoon)
}

func renderGroup(w io.Writer, title string, slots []domain.TimeSlot) {
	if len(slots) == 0 {
		return
	}
	cells := make([]string, 0, len(slots))
	for _, slot := range slots {
		if slot.Available {
			cells = append(cells, slot.Time.String())
		} else {
			cells = append(cells, "("+slot.Time.String()+")")
		}
	}
	fmt.Fprintf(w, "%s :\n  %s\n", title, strings.Join(cells, "  "))
}

// RenderSummary печатает выбранный слот перед подтверждением
func RenderSummary(w io.Writer, st session.ContactForm) {
	fmt.Fprintf(w, "\nRendez-vous du %s à %s (%d min)\n", LongDate(st.Date), st.Time, st.Settings.DurationMinutes)
}

// RenderConfirmation печатает подтвержденное бронирование
func RenderConfirmation(w io.Writer, st session.Confirmed) {
	b := st.Booking
	fmt.Fprintln(w, "\nRendez-vous confirmé !")
	fmt.Fprintf(w, "  Date : %s à %s (%d min)\n", LongDate(b.Date), b.Time, b.DurationMinutes)
	fmt.Fprintf(w, "  Nom : %s\n", st.Details.FullName())
	if st.Details.Company != "" {
		fmt.Fprintf(w, "  Société : %s\n", st.Details.Company)
	}
	fmt.Fprintf(w, "  Lien de la réunion : %s\n", b.MeetingLink)
}

// RenderSettings печатает настройки сервиса
func RenderSettings(w io.Writer, s domain.BookingSettings) {
	status := "désactivée"
	if s.Enabled {
		status = "activée"
	}
	fmt.Fprintf(w, "Réservation : %s\n", status)
	fmt.Fprintf(w, "Durée d'un rendez-vous : %d min\n", s.DurationMinutes)
	fmt.Fprintf(w, "Réservation possible jusqu'à %d jours à l'avance\n", s.MaxAdvanceDays)
}
