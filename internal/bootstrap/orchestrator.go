// Package bootstrap drives the provisioning of governance resources into a
// newly created member account.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	awsevents "tasnim.dev/org-bootstrap/internal/aws/events"
	awsiam "tasnim.dev/org-bootstrap/internal/aws/iam"
	awssts "tasnim.dev/org-bootstrap/internal/aws/sts"
	"tasnim.dev/org-bootstrap/internal/fault"
	"tasnim.dev/org-bootstrap/internal/log"
)

type CredentialBroker interface {
	Assume(ctx context.Context, accountID, roleName string) (awssts.Credentials, error)
}

type RoleProvisioner interface {
	EnsureRole(ctx context.Context, spec awsiam.RoleSpec) (awsiam.Upsert, error)
}

type RelayProvisioner interface {
	EnsureRule(ctx context.Context, spec awsevents.RuleSpec) (string, error)
	EnsureTarget(ctx context.Context, binding awsevents.TargetBinding) (awsevents.TargetBinding, error)
}

// Session holds the provisioners bound to one account's credentials.
type Session struct {
	Roles RoleProvisioner
	Relay RelayProvisioner
}

// SessionOpener binds provisioners to freshly assumed credentials.
type SessionOpener func(creds awssts.Credentials) Session

// Recorder observes every outcome. Recording errors never change it.
type Recorder interface {
	Record(ctx context.Context, o Outcome) error
}

// Settings are the fixed names and documents of the workflow.
type Settings struct {
	AdminRoleName  string
	CallTimeout    time.Duration
	RelayRole      awsiam.RoleSpec
	TaggingRole    awsiam.RoleSpec
	Rule           awsevents.RuleSpec
	TargetID       string
	DestinationARN string
}

type Orchestrator struct {
	settings Settings
	broker   CredentialBroker
	open     SessionOpener
	recorder Recorder
}

type Option func(*Orchestrator)

func WithRecorder(r Recorder) Option {
	return func(o *Orchestrator) { o.recorder = r }
}

func New(settings Settings, broker CredentialBroker, open SessionOpener, opts ...Option) *Orchestrator {
	o := &Orchestrator{settings: settings, broker: broker, open: open}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Handle provisions the account named by an account creation event. It
// always returns an Outcome; failures are reported in it.
func (o *Orchestrator) Handle(ctx context.Context, payload []byte) Outcome {
	req, err := ParseTrigger(payload)
	if err != nil {
		log.Warn("rejecting trigger", "error", err)
		return o.finish(ctx, failed("", StageValidate, err, awsevents.NoRule))
	}
	return o.Reconcile(ctx, req.AccountID)
}

// Reconcile runs the full workflow for a known account. Every step tolerates
// resources left by an earlier run, so it can resume a partial bootstrap.
func (o *Orchestrator) Reconcile(ctx context.Context, accountID string) Outcome {
	if err := ValidateAccountID(accountID); err != nil {
		return o.finish(ctx, failed(accountID, StageValidate, err, awsevents.NoRule))
	}
	return o.finish(ctx, o.run(ctx, accountID))
}

func (o *Orchestrator) run(ctx context.Context, accountID string) (out Outcome) {
	logger := log.With("account", accountID)
	out = Outcome{AccountID: accountID, Relay: awsevents.NoRule}
	stage := StageCredentials

	defer func() {
		if r := recover(); r != nil {
			out = failed(accountID, stage, fault.New(fault.KindProvider, string(stage), fmt.Sprint(r)), out.Relay)
		}
	}()

	var creds awssts.Credentials
	err := o.step(ctx, func(ctx context.Context) (err error) {
		creds, err = o.broker.Assume(ctx, accountID, o.settings.AdminRoleName)
		return err
	})
	if err != nil {
		return failed(accountID, stage, err, out.Relay)
	}
	logger.Info("assumed role in member account", "role", o.settings.AdminRoleName, "expires", creds.Expires)

	sess := o.open(creds)

	stage = StageRelayRole
	err = o.step(ctx, func(ctx context.Context) (err error) {
		out.RelayRole, err = sess.Roles.EnsureRole(ctx, o.settings.RelayRole)
		return err
	})
	if err != nil {
		return failed(accountID, stage, err, out.Relay)
	}
	logger.Info("relay role ensured", "role", o.settings.RelayRole.Name, "arn", out.RelayRole.ARN, "state", out.RelayRole.State)

	stage = StageRelayRule
	err = o.step(ctx, func(ctx context.Context) (err error) {
		out.RuleARN, err = sess.Relay.EnsureRule(ctx, o.settings.Rule)
		return err
	})
	if err != nil {
		return failed(accountID, stage, err, out.Relay)
	}
	out.Relay = awsevents.RuleCreated
	logger.Info("relay rule put", "rule", o.settings.Rule.Name, "arn", out.RuleARN)

	stage = StageRelayTarget
	err = o.step(ctx, func(ctx context.Context) error {
		_, err := sess.Relay.EnsureTarget(ctx, awsevents.TargetBinding{
			RuleName:       o.settings.Rule.Name,
			TargetID:       o.settings.TargetID,
			DestinationARN: o.settings.DestinationARN,
			RoleARN:        out.RelayRole.ARN,
		})
		return err
	})
	if err != nil {
		return failed(accountID, stage, err, out.Relay)
	}
	out.Relay = awsevents.TargetAttached
	logger.Info("relay target attached", "rule", o.settings.Rule.Name, "destination", o.settings.DestinationARN)

	stage = StageTaggingRole
	err = o.step(ctx, func(ctx context.Context) (err error) {
		out.TaggingRole, err = sess.Roles.EnsureRole(ctx, o.settings.TaggingRole)
		return err
	})
	if err != nil {
		return failed(accountID, stage, err, out.Relay)
	}
	logger.Info("tagging role ensured", "role", o.settings.TaggingRole.Name, "arn", out.TaggingRole.ARN, "state", out.TaggingRole.State)

	out.Status = StatusSuccess
	return out
}

// step bounds one cross-account exchange by the call timeout.
func (o *Orchestrator) step(ctx context.Context, fn func(ctx context.Context) error) error {
	if o.settings.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.settings.CallTimeout)
		defer cancel()
	}
	return fn(ctx)
}

func (o *Orchestrator) finish(ctx context.Context, out Outcome) Outcome {
	if out.Succeeded() {
		log.Info("bootstrap succeeded", "account", out.AccountID)
	} else {
		log.Error("bootstrap failed", "account", out.AccountID, "stage", out.Stage,
			"kind", fault.KindOf(out.Cause), "relay", out.Relay, "error", out.Cause)
	}

	if o.recorder != nil {
		if err := o.recorder.Record(ctx, out); err != nil {
			log.Warn("recording outcome", "account", out.AccountID, "error", err)
		}
	}
	return out
}

func failed(accountID string, stage Stage, cause error, relay awsevents.RelayState) Outcome {
	return Outcome{
		Status:    StatusFailed,
		AccountID: accountID,
		Error:     failureMessage(stage, cause),
		Stage:     stage,
		Cause:     cause,
		Relay:     relay,
	}
}
