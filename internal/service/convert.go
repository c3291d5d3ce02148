package service

import (
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/pkg/api"
)

func toAPISettings(s *models.Settings) api.Settings {
	return api.Settings{
		MeName:          s.MeName,
		Currency:        s.Currency,
		ActiveSessionID: s.ActiveSessionID,
	}
}

func toAPISession(s *models.Session) api.Session {
	contacts := make([]api.Contact, len(s.Contacts))
	for i, c := range s.Contacts {
		contacts[i] = api.Contact{ContactID: c.ContactID, Name: c.Name}
	}

	expenses := make([]api.Expense, len(s.Expenses))
	for i := range s.Expenses {
		expenses[i] = toAPIExpense(&s.Expenses[i])
	}

	return api.Session{
		ID:         s.ID,
		Name:       s.Name,
		Status:     string(s.Status),
		Contacts:   contacts,
		Expenses:   expenses,
		CreatedAt:  s.CreatedAt,
		ArchivedAt: s.ArchivedAt,
	}
}

func toAPIExpense(e *models.Expense) api.Expense {
	return api.Expense{
		ID:             e.ID,
		SessionID:      e.SessionID,
		Description:    e.Description,
		Amount:         e.Amount,
		Category:       string(models.NormalizeCategory(e.Category)),
		PayerID:        e.PayerID,
		ParticipantIDs: append([]string{}, e.ParticipantIDs...),
		SplitMode:      string(e.SplitMode),
		Splits:         toAPISplits(e.Splits),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func toAPISplits(splits []models.ExpenseSplit) []api.Split {
	out := make([]api.Split, len(splits))
	for i, s := range splits {
		out[i] = api.Split{ParticipantID: s.ParticipantID, Amount: s.Amount}
	}
	return out
}

func fromAPISplits(splits []api.Split) []models.ExpenseSplit {
	out := make([]models.ExpenseSplit, len(splits))
	for i, s := range splits {
		out[i] = models.ExpenseSplit{ParticipantID: s.ParticipantID, Amount: s.Amount}
	}
	return out
}
