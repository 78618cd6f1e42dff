package cashclosing

import (
	"fmt"
	"strings"

	"luggage/internal/pkg/errs"
)

// ClosingType distinguishes the two counts taken per business date.
type ClosingType int

const (
	UnknownClosingType ClosingType = iota
	MorningHandover
	FinalClose
)

func getClosingTypeStrings() map[ClosingType]string {
	return map[ClosingType]string{
		MorningHandover: "MORNING_HANDOVER",
		FinalClose:      "FINAL_CLOSE",
	}
}

func ParseClosingType(s string) (ClosingType, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for t, name := range getClosingTypeStrings() {
		if name == normalized {
			return t, nil
		}
	}
	return UnknownClosingType, errs.NewValueIsInvalidErrorWithCause(
		"closingType", fmt.Errorf("%q is not a cash closing type", s),
	)
}

func (t ClosingType) Validate() error {
	if _, ok := getClosingTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("closingType", fmt.Errorf("%d is not a cash closing type", t))
	}
	return nil
}

func (t ClosingType) String() string {
	if s, ok := getClosingTypeStrings()[t]; ok {
		return s
	}
	return "UNKNOWN"
}

// WorkflowStatus is the review state of a closing.
//
//	DRAFT ──submit──> SUBMITTED ──verify──> LOCKED
//	  ▲                   │                   │
//	  └──────update───────┴───admin update────┘
type WorkflowStatus int

const (
	UnknownStatus WorkflowStatus = iota
	Draft
	Submitted
	Locked
)

func getWorkflowStatusStrings() map[WorkflowStatus]string {
	return map[WorkflowStatus]string{
		Draft:     "DRAFT",
		Submitted: "SUBMITTED",
		Locked:    "LOCKED",
	}
}

func ParseWorkflowStatus(s string) (WorkflowStatus, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for st, name := range getWorkflowStatusStrings() {
		if name == normalized {
			return st, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause(
		"workflowStatus", fmt.Errorf("%q is not a workflow status", s),
	)
}

func (s WorkflowStatus) Validate() error {
	if _, ok := getWorkflowStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("workflowStatus", fmt.Errorf("%d is not a workflow status", s))
	}
	return nil
}

func (s WorkflowStatus) String() string {
	if str, ok := getWorkflowStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// AuditAction names the mutation recorded by an audit entry.
type AuditAction int

const (
	UnknownAction AuditAction = iota
	ActionCreate
	ActionUpdate
	ActionAdminUnlockUpdate
	ActionSubmit
	ActionVerifyLock
)

func getAuditActionStrings() map[AuditAction]string {
	return map[AuditAction]string{
		ActionCreate:            "CREATE",
		ActionUpdate:            "UPDATE",
		ActionAdminUnlockUpdate: "ADMIN_UNLOCK_UPDATE",
		ActionSubmit:            "SUBMIT",
		ActionVerifyLock:        "VERIFY_LOCK",
	}
}

func ParseAuditAction(s string) (AuditAction, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for a, name := range getAuditActionStrings() {
		if name == normalized {
			return a, nil
		}
	}
	return UnknownAction, errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not an audit action", s))
}

func (a AuditAction) String() string {
	if s, ok := getAuditActionStrings()[a]; ok {
		return s
	}
	return "UNKNOWN"
}
