// Package events provisions the EventBridge rule that relays API activity to
// the central account.
package events

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	ebtypes "github.com/aws/aws-sdk-go-v2/service/eventbridge/types"

	"tasnim.dev/org-bootstrap/internal/fault"
)

type EventsAPI interface {
	PutRule(ctx context.Context, params *eventbridge.PutRuleInput, optFns ...func(*eventbridge.Options)) (*eventbridge.PutRuleOutput, error)
	PutTargets(ctx context.Context, params *eventbridge.PutTargetsInput, optFns ...func(*eventbridge.Options)) (*eventbridge.PutTargetsOutput, error)
}

type Client struct {
	api EventsAPI
}

func NewClient(api EventsAPI) *Client {
	return &Client{api: api}
}

// EnsureRule puts the rule, enabled. PutRule is an upsert, so an existing
// rule is updated in place.
func (c *Client) EnsureRule(ctx context.Context, spec RuleSpec) (string, error) {
	op := fmt.Sprintf("PutRule(%s)", spec.Name)

	pattern, err := spec.Pattern.JSON()
	if err != nil {
		return "", &fault.Error{Kind: fault.KindValidation, Op: op, Err: err}
	}

	out, err := c.api.PutRule(ctx, &eventbridge.PutRuleInput{
		Name:         aws.String(spec.Name),
		EventPattern: aws.String(pattern),
		State:        ebtypes.RuleStateEnabled,
		Description:  aws.String(spec.Description),
	})
	if err != nil {
		return "", fault.Wrap(op, err)
	}
	return aws.ToString(out.RuleArn), nil
}

// EnsureTarget registers the single cross-account target on the rule.
func (c *Client) EnsureTarget(ctx context.Context, b TargetBinding) (TargetBinding, error) {
	op := fmt.Sprintf("PutTargets(%s)", b.RuleName)

	if b.RoleARN == "" {
		return TargetBinding{}, fault.New(fault.KindValidation, op, "cross-account target requires a role ARN")
	}

	out, err := c.api.PutTargets(ctx, &eventbridge.PutTargetsInput{
		Rule: aws.String(b.RuleName),
		Targets: []ebtypes.Target{{
			Id:      aws.String(b.TargetID),
			Arn:     aws.String(b.DestinationARN),
			RoleArn: aws.String(b.RoleARN),
		}},
	})
	if err != nil {
		return TargetBinding{}, fault.Wrap(op, err)
	}

	if out.FailedEntryCount > 0 {
		code, msg := "", "target rejected"
		if len(out.FailedEntries) > 0 {
			code = aws.ToString(out.FailedEntries[0].ErrorCode)
			msg = aws.ToString(out.FailedEntries[0].ErrorMessage)
		}
		kind, _ := fault.CodeKind(code)
		return TargetBinding{}, &fault.Error{
			Kind: kind,
			Op:   op,
			Code: code,
			Err:  fmt.Errorf("%s: %s", code, msg),
		}
	}

	return b, nil
}
