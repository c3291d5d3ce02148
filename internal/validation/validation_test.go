package validation

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/money"
)

func testSession() *models.Session {
	return &models.Session{
		ID:     "s1",
		Name:   "Trip",
		Status: models.SessionActive,
		Contacts: []models.SessionContact{
			{ContactID: models.MeID, Name: "Me"},
			{ContactID: "bob", Name: "Bob"},
			{ContactID: "cat", Name: "Cat"},
		},
	}
}

func validExpense() ExpenseInput {
	return ExpenseInput{
		Description:    "Dinner",
		Amount:         money.MustParse("90"),
		Category:       models.CategoryFood,
		PayerID:        models.MeID,
		ParticipantIDs: []models.ParticipantID{models.MeID, "bob", "cat"},
		SplitMode:      models.SplitEqual,
	}
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	require.Error(t, err)
	var verr *Error
	require.True(t, errors.As(err, &verr), "expected *Error, got %T", err)
	return verr.Fields
}

func TestValidateExpense_Valid(t *testing.T) {
	assert.NoError(t, ValidateExpense(validExpense(), testSession()))

	in := validExpense()
	in.Category = ""
	assert.NoError(t, ValidateExpense(in, testSession()), "empty category defaults to other")
}

func TestValidateExpense_FieldErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *ExpenseInput)
		field  string
	}{
		{"blank description", func(in *ExpenseInput) { in.Description = "   " }, "Description"},
		{"long description", func(in *ExpenseInput) { in.Description = strings.Repeat("x", 121) }, "Description"},
		{"zero amount", func(in *ExpenseInput) { in.Amount = 0 }, "Amount"},
		{"negative amount", func(in *ExpenseInput) { in.Amount = -100 }, "Amount"},
		{"unknown category", func(in *ExpenseInput) { in.Category = "souvenirs" }, "Category"},
		{"missing payer", func(in *ExpenseInput) { in.PayerID = "" }, "PayerID"},
		{"payer outside session", func(in *ExpenseInput) { in.PayerID = "zed" }, "PayerID"},
		{"no participants", func(in *ExpenseInput) { in.ParticipantIDs = nil }, "ParticipantIDs"},
		{"blank participant", func(in *ExpenseInput) { in.ParticipantIDs = []models.ParticipantID{""} }, "ParticipantIDs"},
		{"duplicate participant", func(in *ExpenseInput) { in.ParticipantIDs = []models.ParticipantID{"bob", "bob"} }, "ParticipantIDs"},
		{"participant outside session", func(in *ExpenseInput) { in.ParticipantIDs = []models.ParticipantID{"bob", "zed"} }, "ParticipantIDs"},
		{"bad split mode", func(in *ExpenseInput) { in.SplitMode = "weighted" }, "SplitMode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validExpense()
			tt.mutate(&in)
			fields := fieldsOf(t, ValidateExpense(in, testSession()))
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestValidateExpense_CustomSplits(t *testing.T) {
	custom := func(splits ...models.ExpenseSplit) ExpenseInput {
		in := validExpense()
		in.Amount = money.MustParse("100")
		in.SplitMode = models.SplitCustom
		in.Splits = splits
		return in
	}
	s := func(id models.ParticipantID, amount string) models.ExpenseSplit {
		return models.ExpenseSplit{ParticipantID: id, Amount: money.MustParse(amount)}
	}

	t.Run("exact sum", func(t *testing.T) {
		assert.NoError(t, ValidateExpense(custom(s("me", "50"), s("bob", "30"), s("cat", "20")), testSession()))
	})

	t.Run("one cent short is tolerated", func(t *testing.T) {
		assert.NoError(t, ValidateExpense(custom(s("me", "50"), s("bob", "49.99")), testSession()))
	})

	t.Run("two cents short", func(t *testing.T) {
		fields := fieldsOf(t, ValidateExpense(custom(s("me", "50"), s("bob", "49.98")), testSession()))
		assert.Equal(t, "Custom splits must equal the total amount", fields["Splits"])
	})

	t.Run("unselected participants do not count", func(t *testing.T) {
		in := custom(s("me", "50"), s("bob", "50"), s("cat", "10"))
		in.ParticipantIDs = []models.ParticipantID{"me", "bob"}
		assert.NoError(t, ValidateExpense(in, testSession()))
	})

	t.Run("duplicate split", func(t *testing.T) {
		fields := fieldsOf(t, ValidateExpense(custom(s("me", "50"), s("me", "50")), testSession()))
		assert.Contains(t, fields["Splits"], "more than one split")
	})

	t.Run("negative split", func(t *testing.T) {
		fields := fieldsOf(t, ValidateExpense(custom(s("me", "110"), s("bob", "-10")), testSession()))
		assert.Contains(t, fields["Splits"], "negative")
	})
}

func TestValidateSession(t *testing.T) {
	assert.NoError(t, ValidateSession(SessionInput{Name: "Ski trip", Participants: []string{"Bob", "Cat"}}, "Me"))
	assert.NoError(t, ValidateSession(SessionInput{Name: "Solo"}, "Me"))

	tests := []struct {
		name  string
		in    SessionInput
		field string
	}{
		{"blank name", SessionInput{Name: " "}, "Name"},
		{"blank participant", SessionInput{Name: "x", Participants: []string{"Bob", "  "}}, "Participants"},
		{"duplicate participant", SessionInput{Name: "x", Participants: []string{"Bob", " bob "}}, "Participants"},
		{"participant is me", SessionInput{Name: "x", Participants: []string{"ME"}}, "Participants"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := fieldsOf(t, ValidateSession(tt.in, "Me"))
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestError(t *testing.T) {
	err := &Error{Fields: map[string]string{"B": "second", "A": "first"}}
	assert.Equal(t, "validation failed: A: first; B: second", err.Error())

	wrapped := fmt.Errorf("add expense: %w", err)
	assert.True(t, IsValidationError(wrapped))
	assert.False(t, IsValidationError(errors.New("boom")))
}

func TestValidateSettings(t *testing.T) {
	assert.NoError(t, ValidateSettings(SettingsInput{MeName: "Sam", Currency: "€"}))

	fields := fieldsOf(t, ValidateSettings(SettingsInput{MeName: "  ", Currency: ""}))
	assert.Contains(t, fields, "MeName")
	assert.Contains(t, fields, "Currency")

	fields = fieldsOf(t, ValidateSettings(SettingsInput{MeName: strings.Repeat("a", 41), Currency: "$"}))
	assert.Contains(t, fields, "MeName")
	assert.NotContains(t, fields, "Currency")
}
