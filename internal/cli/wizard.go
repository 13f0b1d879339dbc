package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/internal/service/session"
	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

const (
	cmdQuit  = "q"
	cmdBack  = "b"
	cmdRetry = "r"
	cmdPrev  = "<"
	cmdNext  = ">"
	cmdYes   = "o"
)

// Wizard проводит посетителя по шагам сессии в терминале
type Wizard struct {
	session  BookingSession
	prompter Prompter
	out      io.Writer
	outDir   string
	logger   Logger
}

// NewWizard создает мастер. outDir - каталог для .ics файла.
func NewWizard(s BookingSession, prompter Prompter, out io.Writer, outDir string, logger Logger) *Wizard {
	return &Wizard{
		session:  s,
		prompter: prompter,
		out:      out,
		outDir:   outDir,
		logger:   logger,
	}
}

// Run запускает сессию и обрабатывает шаги до подтверждения или выхода.
// Возвращает ErrAborted, если пользователь вышел, и ErrUnavailable, если настройки не загрузились.
func (w *Wizard) Run(ctx context.Context) error {
	if err := w.session.Start(ctx); err != nil {
		w.logger.Warn("Wizard: start: %v", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var err error
		switch st := w.session.State().(type) {
		case session.Unavailable:
			return w.unavailable(st)
		case session.DateSelection:
			err = w.dateStep(ctx, st)
		case session.TimeSelection:
			err = w.timeStep(ctx, st)
		case session.ContactForm:
			err = w.contactStep(ctx, st)
		case session.Confirmed:
			return w.finish(st)
		default:
			return fmt.Errorf("unexpected session stage %s", st.Stage())
		}
		if err != nil {
			return err
		}
	}
}

func (w *Wizard) unavailable(st session.Unavailable) error {
	if st.Reason == session.ReasonDisabled {
		fmt.Fprintln(w.out, "La prise de rendez-vous est momentanément indisponible.")
		return nil
	}
	fmt.Fprintln(w.out, "Le service de réservation ne répond pas. Veuillez réessayer plus tard.")
	return fmt.Errorf("%w: %v", ErrUnavailable, st.Err)
}

func (w *Wizard) dateStep(ctx context.Context, st session.DateSelection) error {
	RenderMonth(w.out, st)

	input, err := w.prompt("Jour (numéro ou AAAA-MM-JJ, < >, r, q) : ")
	if err != nil {
		return err
	}

	switch input {
	case cmdQuit:
		return ErrAborted
	case cmdRetry:
		return w.report(w.session.Retry(ctx))
	case cmdPrev, cmdNext:
		move := w.session.NextMonth
		if input == cmdPrev {
			move = w.session.PrevMonth
		}
		moved, err := move(ctx)
		if err == nil && !moved {
			fmt.Fprintln(w.out, "Ce mois n'est pas réservable.")
		}
		return w.report(err)
	}

	date, ok := parseDay(input, st.Month)
	if !ok {
		fmt.Fprintln(w.out, "Saisie non reconnue.")
		return nil
	}
	err = w.session.SelectDate(ctx, date)
	if errors.Is(err, session.ErrInvalidTransition) {
		fmt.Fprintln(w.out, "Ce jour n'est pas disponible.")
		return nil
	}
	return w.report(err)
}

func (w *Wizard) timeStep(ctx context.Context, st session.TimeSelection) error {
	RenderSlots(w.out, st)

	input, err := w.prompt("Heure (HH:MM, b = changer de date, r, q) : ")
	if err != nil {
		return err
	}

	switch input {
	case cmdQuit:
		return ErrAborted
	case cmdBack:
		return w.report(w.session.ChangeDate(ctx))
	case cmdRetry:
		return w.report(w.session.Retry(ctx))
	}

	t, err := types.ParseTimeOfDay(input)
	if err != nil {
		fmt.Fprintln(w.out, "Saisie non reconnue.")
		return nil
	}
	if err := w.session.SelectTime(t); err != nil {
		fmt.Fprintln(w.out, "Ce créneau n'est pas disponible.")
	}
	return nil
}

func (w *Wizard) contactStep(ctx context.Context, st session.ContactForm) error {
	RenderSummary(w.out, st)
	if st.Message != "" {
		fmt.Fprintf(w.out, "! %s\n", st.Message)
	}

	details, err := w.askDetails(st.Details)
	if err != nil {
		return err
	}

	input, err := w.prompt("Confirmer ? (o = confirmer, b = changer d'horaire, q) : ")
	if err != nil {
		return err
	}

	switch input {
	case cmdQuit:
		return ErrAborted
	case cmdYes:
		// сообщение об ошибке остается в ContactForm и печатается на следующем шаге
		if err := w.session.Submit(ctx, details); err != nil {
			w.logger.Warn("Wizard: submit: %v", err)
		}
		return nil
	case cmdBack:
		if err := w.session.SaveDraft(details); err != nil {
			return err
		}
		return w.report(w.session.ChangeTime(ctx))
	default:
		return w.session.SaveDraft(details)
	}
}

// askDetails запрашивает поля формы; пустой ввод оставляет прежнее значение
func (w *Wizard) askDetails(draft domain.ContactDetails) (domain.ContactDetails, error) {
	fields := []struct {
		label string
		value *string
	}{
		{"Prénom", &draft.FirstName},
		{"Nom", &draft.LastName},
		{"E-mail", &draft.Email},
		{"Téléphone", &draft.Phone},
		{"Société (facultatif)", &draft.Company},
	}

	for _, f := range fields {
		label := f.label + " : "
		if *f.value != "" {
			label = fmt.Sprintf("%s [%s] : ", f.label, *f.value)
		}
		input, err := w.prompt(label)
		if err != nil {
			return domain.ContactDetails{}, err
		}
		if input != "" {
			*f.value = input
		}
	}
	return draft, nil
}

func (w *Wizard) finish(st session.Confirmed) error {
	RenderConfirmation(w.out, st)

	artifact, err := w.session.CalendarFile()
	if err != nil {
		return fmt.Errorf("calendar file: %w", err)
	}

	path := filepath.Join(w.outDir, artifact.Filename)
	if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	w.logger.Info("Wizard: calendar file written to %s", path)
	fmt.Fprintf(w.out, "Invitation enregistrée : %s\n", path)
	return nil
}

// report ошибки загрузки уже отражены в состоянии сессии, остальные возвращаются
func (w *Wizard) report(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, session.ErrLoadFailed), errors.Is(err, session.ErrStale):
		w.logger.Warn("Wizard: %v", err)
		return nil
	case errors.Is(err, session.ErrInvalidTransition):
		fmt.Fprintln(w.out, "Action impossible pour le moment.")
		return nil
	default:
		return err
	}
}

func (w *Wizard) prompt(label string) (string, error) {
	line, err := w.prompter.Prompt(label)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// parseDay принимает номер дня показанного месяца или полную дату
func parseDay(input string, month types.YearMonth) (types.CalendarDate, bool) {
	if day, err := strconv.Atoi(input); err == nil {
		if day < 1 || day > month.DaysIn() {
			return types.CalendarDate{}, false
		}
		return types.CalendarDate{Year: month.Year, Month: month.Month, Day: day}, true
	}
	date, err := types.ParseDate(input)
	if err != nil {
		return types.CalendarDate{}, false
	}
	return date, true
}
