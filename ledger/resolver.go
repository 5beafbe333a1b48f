/*
resolver.go - Debt status reconciliation

PURPOSE:
  Promotes pending debts to overdue once their due date is strictly in the
  past. In the original system this ran as a side effect of every render
  cycle; here it is an explicit pass invoked at load time and on each
  scheduler tick.

RULES:
  - paid is terminal: never re-evaluated, never reverted
  - pending -> overdue when dueDate's calendar day is before today's
    calendar day (due today is NOT overdue)
  - overdue stays overdue; it never reverts to pending

IDEMPOTENCE:
  Running the pass twice on the same state produces no further change the
  second time. The engine only flushes when the pass reports a change.

SEE ALSO:
  - engine.go: ReconcileDebts wraps this with locking and flushing
  - api/scheduler.go: Ticker that drives the pass
*/
package ledger

import "time"

// ResolveDebtStatuses returns the debt slice with overdue promotions applied
// and the number of debts whose status changed. Pure: the input slice is not
// modified.
func ResolveDebtStatuses(debts []Debt, now time.Time) ([]Debt, int) {
	out := append([]Debt(nil), debts...)
	today := dateOf(now)

	changed := 0
	for i := range out {
		if out[i].Status == DebtPaid || out[i].Status == DebtOverdue {
			continue
		}
		if dateOf(out[i].DueDate).Before(today) {
			out[i].Status = DebtOverdue
			changed++
		}
	}
	return out, changed
}
