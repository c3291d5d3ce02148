package models

import "github.com/mmynk/settleup/internal/money"

// NetBalance is a participant's aggregate position across a session.
type NetBalance struct {
	ParticipantID ParticipantID

	// Net is positive when the group owes the participant money,
	// negative when the participant owes the group.
	Net money.Cents
}

// Transaction is a single payment that moves a debtor toward zero.
type Transaction struct {
	// FromID is the debtor who pays.
	FromID ParticipantID

	// ToID is the creditor who receives.
	ToID ParticipantID

	// Amount is always positive.
	Amount money.Cents
}

// Settlement is the derived view of a session: who stands where, and who pays whom.
// Both parts are computed from the same expense snapshot.
type Settlement struct {
	// Balances lists every participant mentioned by an expense, in first-mention order.
	Balances     []NetBalance
	Transactions []Transaction
}
