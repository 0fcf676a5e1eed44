package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var accountIDPattern = regexp.MustCompile(`^\d{12}$`)

// ValidAccountID reports whether id is a 12-digit AWS account ID.
func ValidAccountID(id string) bool {
	return accountIDPattern.MatchString(id)
}

// RoleARN builds the ARN of a role in the given account.
func RoleARN(partition, accountID, roleName string) string {
	return fmt.Sprintf("arn:%s:iam::%s:role/%s", partition, accountID, roleName)
}

// RootARN builds the account root principal ARN.
func RootARN(partition, accountID string) string {
	return fmt.Sprintf("arn:%s:iam::%s:root", partition, accountID)
}

// EventBusARN builds the ARN of a named event bus.
func EventBusARN(partition, region, accountID, busName string) string {
	return fmt.Sprintf("arn:%s:events:%s:%s:event-bus/%s", partition, region, accountID, busName)
}

// AccountFromARN returns the account field of an ARN, or "" if arn is malformed.
func AccountFromARN(arn string) string {
	parts := strings.SplitN(arn, ":", 6)
	if len(parts) < 6 || parts[0] != "arn" {
		return ""
	}
	return parts[4]
}
