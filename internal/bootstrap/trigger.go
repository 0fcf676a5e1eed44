package bootstrap

import (
	"encoding/json"
	"fmt"

	lambdaevents "github.com/aws/aws-lambda-go/events"

	"tasnim.dev/org-bootstrap/internal/fault"
	"tasnim.dev/org-bootstrap/internal/utils"
)

// Request is one provisioning run for one member account.
type Request struct {
	AccountID string
	Payload   json.RawMessage
}

type accountDetail struct {
	UserIdentity struct {
		AccountID string `json:"accountId"`
	} `json:"userIdentity"`
}

// ParseTrigger extracts detail.userIdentity.accountId from an account
// creation event.
func ParseTrigger(payload []byte) (Request, error) {
	var event lambdaevents.CloudWatchEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return Request{}, fault.New(fault.KindValidation, "", fmt.Sprintf("Invalid trigger payload: %v", err))
	}

	var detail accountDetail
	if len(event.Detail) > 0 {
		// A detail of the wrong shape carries no usable account ID.
		_ = json.Unmarshal(event.Detail, &detail)
	}

	if err := ValidateAccountID(detail.UserIdentity.AccountID); err != nil {
		return Request{}, err
	}

	return Request{AccountID: detail.UserIdentity.AccountID, Payload: json.RawMessage(payload)}, nil
}

// ValidateAccountID rejects IDs that are not 12 digits.
func ValidateAccountID(accountID string) error {
	if accountID == "" {
		return fault.New(fault.KindValidation, "", "No account ID found")
	}
	if !utils.ValidAccountID(accountID) {
		return fault.New(fault.KindValidation, "", fmt.Sprintf("Invalid account ID %q", accountID))
	}
	return nil
}
