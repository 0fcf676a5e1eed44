package bootstrap

import (
	"encoding/json"
	"fmt"

	awsevents "tasnim.dev/org-bootstrap/internal/aws/events"
	awsiam "tasnim.dev/org-bootstrap/internal/aws/iam"
)

type Status string

const (
	StatusSuccess Status = "Success"
	StatusFailed  Status = "Failed"
)

// Stage names a step of the workflow, in execution order.
type Stage string

const (
	StageValidate    Stage = "validate"
	StageCredentials Stage = "credentials"
	StageRelayRole   Stage = "relay-role"
	StageRelayRule   Stage = "relay-rule"
	StageRelayTarget Stage = "relay-target"
	StageTaggingRole Stage = "tagging-role"
)

var stageMessages = map[Stage]string{
	StageCredentials: "Failed to assume role in child account",
	StageRelayRole:   "Failed to create IAM role for EventBridge target",
	StageRelayRule:   "Failed to create EventBridge rule",
	StageRelayTarget: "Failed to add EventBridge target",
	StageTaggingRole: "Failed to create tagging role",
}

// Outcome is the flat result of one run. Only Status, AccountID (on
// success) and Error (on failure) go on the wire.
type Outcome struct {
	Status    Status
	AccountID string
	Error     string

	Stage       Stage
	Cause       error
	Relay       awsevents.RelayState
	RelayRole   awsiam.Upsert
	TaggingRole awsiam.Upsert
	RuleARN     string
}

func (o Outcome) Succeeded() bool {
	return o.Status == StatusSuccess
}

type successJSON struct {
	Status    Status `json:"status"`
	AccountID string `json:"accountId"`
}

type failureJSON struct {
	Status Status `json:"status"`
	Error  string `json:"error"`
}

func (o Outcome) MarshalJSON() ([]byte, error) {
	if o.Succeeded() {
		return json.Marshal(successJSON{Status: o.Status, AccountID: o.AccountID})
	}
	return json.Marshal(failureJSON{Status: StatusFailed, Error: o.Error})
}

func failureMessage(stage Stage, cause error) string {
	prefix, ok := stageMessages[stage]
	if !ok {
		return cause.Error()
	}
	return fmt.Sprintf("%s: %v", prefix, cause)
}
