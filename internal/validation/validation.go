// Package validation holds the entry-form rules applied before anything reaches
// the settlement engine. The engine itself trusts its input.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/money"
)

// MaxDescriptionLength matches the description field limit of the expense form.
const MaxDescriptionLength = 120

// SplitTolerance is how far custom splits may drift from the expense amount.
const SplitTolerance money.Cents = 1

var nonSpace = regexp.MustCompile(`\S`)

var validate *validator.Validate

func init() {
	validate = validator.New()

	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return nonSpace.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("splitmode", func(fl validator.FieldLevel) bool {
		return models.SplitMode(fl.Field().String()).Valid()
	})
	_ = validate.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || models.Category(s).Valid()
	})
}

// Error lists every rule an input broke, keyed by field name.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s", k, e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *Error) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = msg
	}
}

func (e *Error) errOrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// IsValidationError reports whether err is (or wraps) a validation *Error.
func IsValidationError(err error) bool {
	var verr *Error
	return errors.As(err, &verr)
}

// ExpenseInput is what the expense form submits.
type ExpenseInput struct {
	Description    string                 `validate:"notblank,max=120"`
	Amount         money.Cents            `validate:"gt=0"`
	Category       models.Category        `validate:"category"`
	PayerID        models.ParticipantID   `validate:"required"`
	ParticipantIDs []models.ParticipantID `validate:"min=1,unique,dive,required"`
	SplitMode      models.SplitMode       `validate:"splitmode"`
	Splits         []models.ExpenseSplit
}

var expenseMessages = map[string]string{
	"Description":    "Description is required",
	"Amount":         "Amount must be greater than 0",
	"Category":       "Unknown category",
	"PayerID":        "Payer is required",
	"ParticipantIDs": "Select at least one participant",
	"SplitMode":      "Split mode must be equal or custom",
}

// ValidateExpense checks an expense against the form rules and the session's contacts.
func ValidateExpense(in ExpenseInput, session *models.Session) error {
	verr := &Error{}

	if err := validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("failed to validate expense: %w", err)
		}
		for _, fe := range fieldErrs {
			field := fe.StructField()
			if field == "Description" && fe.Tag() == "max" {
				verr.add("Description", fmt.Sprintf("Description must be at most %d characters", MaxDescriptionLength))
				continue
			}
			if field == "ParticipantIDs" && fe.Tag() == "unique" {
				verr.add("ParticipantIDs", "Participants must not repeat")
				continue
			}
			msg, ok := expenseMessages[field]
			if !ok {
				field, msg = "ParticipantIDs", expenseMessages["ParticipantIDs"]
			}
			verr.add(field, msg)
		}
	}

	if session != nil {
		if in.PayerID != "" && !session.HasContact(in.PayerID) {
			verr.add("PayerID", fmt.Sprintf("Payer %q is not in this session", in.PayerID))
		}
		for _, id := range in.ParticipantIDs {
			if id != "" && !session.HasContact(id) {
				verr.add("ParticipantIDs", fmt.Sprintf("Participant %q is not in this session", id))
				break
			}
		}
	}

	if in.SplitMode == models.SplitCustom {
		validateCustomSplits(in, verr)
	}

	return verr.errOrNil()
}

func validateCustomSplits(in ExpenseInput, verr *Error) {
	selected := make(map[models.ParticipantID]bool, len(in.ParticipantIDs))
	for _, id := range in.ParticipantIDs {
		selected[id] = true
	}

	seen := make(map[models.ParticipantID]bool, len(in.Splits))
	var total money.Cents
	for _, s := range in.Splits {
		if seen[s.ParticipantID] {
			verr.add("Splits", fmt.Sprintf("Participant %q has more than one split", s.ParticipantID))
			return
		}
		seen[s.ParticipantID] = true
		if s.Amount < 0 {
			verr.add("Splits", "Split amounts cannot be negative")
			return
		}
		if selected[s.ParticipantID] {
			total += s.Amount
		}
	}

	if (total - in.Amount).Abs() > SplitTolerance {
		verr.add("Splits", "Custom splits must equal the total amount")
	}
}

// SessionInput is what the new-session form submits.
type SessionInput struct {
	Name         string   `validate:"notblank"`
	Participants []string `validate:"dive,notblank"`
}

// ValidateSession checks a new session's name and participant names.
// Names are compared trimmed and case-insensitively, and none may match meName.
func ValidateSession(in SessionInput, meName string) error {
	verr := &Error{}

	if err := validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("failed to validate session: %w", err)
		}
		for _, fe := range fieldErrs {
			if fe.StructField() == "Name" {
				verr.add("Name", "Session name is required")
			} else {
				verr.add("Participants", "Participant names cannot be blank")
			}
		}
	}

	for i, name := range in.Participants {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if models.SameName(name, meName) {
			verr.add("Participants", fmt.Sprintf("%q is you, already included", strings.TrimSpace(name)))
			continue
		}
		for _, earlier := range in.Participants[:i] {
			if models.SameName(name, earlier) {
				verr.add("Participants", fmt.Sprintf("%q is already added", strings.TrimSpace(name)))
				break
			}
		}
	}

	return verr.errOrNil()
}

// SettingsInput is what the settings form submits.
type SettingsInput struct {
	MeName   string `validate:"notblank,max=40"`
	Currency string `validate:"notblank,max=5"`
}

// ValidateSettings checks the user's display name and currency symbol.
func ValidateSettings(in SettingsInput) error {
	verr := &Error{}

	if err := validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("failed to validate settings: %w", err)
		}
		for _, fe := range fieldErrs {
			switch fe.StructField() {
			case "MeName":
				verr.add("MeName", "Your name is required (at most 40 characters)")
			default:
				verr.add("Currency", "Currency symbol is required (at most 5 characters)")
			}
		}
	}

	return verr.errOrNil()
}
