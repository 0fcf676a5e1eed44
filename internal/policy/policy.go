// Package policy builds IAM policy documents.
package policy

import (
	"encoding/json"
	"fmt"
)

const Version = "2012-10-17"

type Document struct {
	Version   string      `json:"Version"`
	Statement []Statement `json:"Statement"`
}

type Statement struct {
	Sid       string         `json:"Sid,omitempty"`
	Effect    string         `json:"Effect"`
	Principal *Principal     `json:"Principal,omitempty"`
	Action    Actions        `json:"Action"`
	Resource  string         `json:"Resource,omitempty"`
	Condition map[string]any `json:"Condition,omitempty"`
}

type Principal struct {
	Service string `json:"Service,omitempty"`
	AWS     string `json:"AWS,omitempty"`
}

// Actions marshals as a bare string when it holds a single action.
type Actions []string

func (a Actions) MarshalJSON() ([]byte, error) {
	if len(a) == 1 {
		return json.Marshal(a[0])
	}
	return json.Marshal([]string(a))
}

func (a *Actions) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*a = Actions{single}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("policy action: %w", err)
	}
	*a = list
	return nil
}

// TrustService allows an AWS service principal to assume the role.
func TrustService(service string) Document {
	return Document{
		Version: Version,
		Statement: []Statement{{
			Effect:    "Allow",
			Principal: &Principal{Service: service},
			Action:    Actions{"sts:AssumeRole"},
		}},
	}
}

// TrustAccount allows an account principal (e.g. arn:aws:iam::123456789012:root)
// to assume the role.
func TrustAccount(principalARN string) Document {
	return Document{
		Version: Version,
		Statement: []Statement{{
			Effect:    "Allow",
			Principal: &Principal{AWS: principalARN},
			Action:    Actions{"sts:AssumeRole"},
		}},
	}
}

// Allow grants actions on resource.
func Allow(sid, resource string, actions ...string) Document {
	return Document{
		Version: Version,
		Statement: []Statement{{
			Sid:      sid,
			Effect:   "Allow",
			Action:   Actions(actions),
			Resource: resource,
		}},
	}
}

// JSON renders the document as the compact string IAM expects.
func (d Document) JSON() (string, error) {
	if len(d.Statement) == 0 {
		return "", fmt.Errorf("policy document has no statements")
	}
	b, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("marshaling policy document: %w", err)
	}
	return string(b), nil
}
