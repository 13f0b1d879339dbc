package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrInvalidContact возвращается, когда контактные данные не прошли валидацию
var ErrInvalidContact = errors.New("invalid contact details")

// ContactError перечень нарушений по полям, читаемый пользователем
type ContactError struct {
	Messages []string
}

func (e *ContactError) Error() string {
	return ErrInvalidContact.Error() + ": " + e.Message()
}

// Message сообщения через "; "
func (e *ContactError) Message() string {
	return strings.Join(e.Messages, "; ")
}

func (e *ContactError) Unwrap() error {
	return ErrInvalidContact
}

// ContactDetails contact information submitted with the booking form.
// Phone is mandatory here, unlike the general contact form.
type ContactDetails struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email,max=254"`
	Phone     string `json:"phone" validate:"required,phone,max=30"`
	Company   string `json:"company,omitempty" validate:"omitempty,max=200"`
}

var (
	firstNameCaser = cases.Title(language.French)
	lastNameCaser  = cases.Upper(language.French)
	validate       = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("phone", isPhone)
	return v
}

// isPhone допускает цифры, пробелы, точки, дефисы, скобки и ведущий "+"; минимум 6 цифр
func isPhone(fl validator.FieldLevel) bool {
	digits := 0
	for i, r := range fl.Field().String() {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '.' || r == '-' || r == '(' || r == ')':
		default:
			return false
		}
	}
	return digits >= 6
}

// Normalize returns a copy with names cased the way the booking form stores them:
// first name capitalized per word (hyphenated parts included), last name upper-cased.
func (c ContactDetails) Normalize() ContactDetails {
	return ContactDetails{
		FirstName: firstNameCaser.String(collapseSpaces(c.FirstName)),
		LastName:  lastNameCaser.String(collapseSpaces(c.LastName)),
		Email:     strings.ToLower(strings.TrimSpace(c.Email)),
		Phone:     collapseSpaces(c.Phone),
		Company:   collapseSpaces(c.Company),
	}
}

// Validate checks required fields and formats.
// Field violations are reported as *ContactError, which wraps ErrInvalidContact.
func (c ContactDetails) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidContact, err)
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, describeFieldError(fe))
	}
	return &ContactError{Messages: messages}
}

// FullName returns "First LAST"
func (c ContactDetails) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

func describeFieldError(fe validator.FieldError) string {
	field := fieldLabel(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " : champ obligatoire"
	case "email":
		return field + " : adresse invalide"
	case "phone":
		return field + " : numéro invalide"
	case "max":
		return fmt.Sprintf("%s : %s caractères maximum", field, fe.Param())
	default:
		return field + " : valeur invalide"
	}
}

func fieldLabel(field string) string {
	switch field {
	case "FirstName":
		return "Prénom"
	case "LastName":
		return "Nom"
	case "Email":
		return "E-mail"
	case "Phone":
		return "Téléphone"
	case "Company":
		return "Société"
	default:
		return field
	}
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
