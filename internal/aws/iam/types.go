package iam

import "tasnim.dev/org-bootstrap/internal/policy"

// RoleSpec declares a role and its single inline permission policy.
type RoleSpec struct {
	Name             string
	Description      string
	TrustPolicy      policy.Document
	PolicyName       string
	PermissionPolicy policy.Document
}

type UpsertState int

const (
	Created UpsertState = iota + 1
	AlreadyPresent
)

func (s UpsertState) String() string {
	switch s {
	case Created:
		return "created"
	case AlreadyPresent:
		return "already-present"
	default:
		return "unknown"
	}
}

// Upsert is the result of EnsureRole. Failures are returned as *fault.Error.
type Upsert struct {
	ARN   string
	State UpsertState
}
