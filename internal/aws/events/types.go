package events

import (
	"encoding/json"
	"fmt"
)

// Pattern matches CloudTrail-delivered API calls by source service and
// operation name.
type Pattern struct {
	Sources      []string
	DetailTypes  []string
	EventSources []string
	EventNames   []string
}

type patternDetail struct {
	EventName   []string `json:"eventName"`
	EventSource []string `json:"eventSource"`
}

type patternJSON struct {
	Detail     patternDetail `json:"detail"`
	DetailType []string      `json:"detail-type"`
	Source     []string      `json:"source"`
}

// JSON renders the pattern in EventBridge event pattern syntax.
func (p Pattern) JSON() (string, error) {
	if len(p.Sources) == 0 || len(p.DetailTypes) == 0 || len(p.EventSources) == 0 || len(p.EventNames) == 0 {
		return "", fmt.Errorf("event pattern needs sources, detail types, event sources and event names")
	}
	b, err := json.Marshal(patternJSON{
		Detail: patternDetail{
			EventName:   p.EventNames,
			EventSource: p.EventSources,
		},
		DetailType: p.DetailTypes,
		Source:     p.Sources,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling event pattern: %w", err)
	}
	return string(b), nil
}

type RuleSpec struct {
	Name        string
	Description string
	Pattern     Pattern
}

// TargetBinding links a rule to a destination in another account. RoleARN is
// the identity EventBridge uses to deliver cross-account.
type TargetBinding struct {
	RuleName       string
	TargetID       string
	DestinationARN string
	RoleARN        string
}

// RelayState tracks how far relay provisioning got in one invocation.
type RelayState int

const (
	NoRule RelayState = iota
	RuleCreated
	TargetAttached
)

func (s RelayState) String() string {
	switch s {
	case RuleCreated:
		return "rule-created"
	case TargetAttached:
		return "target-attached"
	default:
		return "no-rule"
	}
}
