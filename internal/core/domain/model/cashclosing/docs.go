// Package cashclosing models the drawer count taken at morning handover and
// at final close, its reconciliation against the order ledger, and the
// submit/verify review that locks it.
//
// Every mutation returns the AuditEntry to append alongside it.
package cashclosing
