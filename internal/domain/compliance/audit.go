package compliance

import "time"

// AppendAudit adds one entry to the record's audit trail. Entries are only
// ever appended; nothing mutates or removes an existing entry, including
// soft delete.
func (r *Record) AppendAudit(action AuditAction, performedBy string, at time.Time, notes string, changes map[string]string) {
	r.AuditTrail = append(r.AuditTrail, AuditEntry{
		Action:      action,
		PerformedBy: performedBy,
		Timestamp:   at,
		Notes:       notes,
		Changes:     changes,
	})
}
