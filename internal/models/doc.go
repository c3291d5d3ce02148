// Package models defines the core domain records for settleup.
//
// # Records
//
//   - Session: a bounded group of participants and the expenses split among them
//   - SessionContact: a participant snapshot taken when the session was created
//   - Expense / ExpenseSplit: one recorded payment and its materialized per-person shares
//   - NetBalance / Transaction / Settlement: derived output of the settlement engine
//   - Settings: the local user's display name, currency symbol and active session
//
// # Design Principles
//
// 1. **Fixed-point money**: every amount is money.Cents, never a float
// 2. **Materialized splits**: Expense.Splits is always filled in, whatever the split mode
// 3. **Derived, not stored**: balances and transactions are recomputed from expenses on demand
// 4. **IDs, not pointers**: relationships use ID strings to avoid aliasing
//
// Participants are identified by ParticipantID. The reserved MeID stands for the
// person running the app; every session contains it.
package models
