package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	awsiamsdk "github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	awsevents "tasnim.dev/org-bootstrap/internal/aws/events"
	awsiam "tasnim.dev/org-bootstrap/internal/aws/iam"
	awssts "tasnim.dev/org-bootstrap/internal/aws/sts"
)

type Options struct {
	Profile         string
	Region          string
	Partition       string
	SessionName     string
	SessionDuration time.Duration
	MaxAttempts     int
}

// ManagementClient holds the caller's own config and the broker used to
// reach member accounts.
type ManagementClient struct {
	Config aws.Config
	Broker *awssts.Broker
}

func NewManagementClient(ctx context.Context, opts Options) (*ManagementClient, error) {
	cfg, err := LoadConfig(ctx, opts.Profile, opts.Region, opts.MaxAttempts)
	if err != nil {
		return nil, fmt.Errorf("initializing management client: %w", err)
	}

	return &ManagementClient{
		Config: cfg,
		Broker: awssts.NewBroker(sts.NewFromConfig(cfg), opts.Partition, opts.SessionName, opts.SessionDuration),
	}, nil
}

// AccountClient is bound to one member account's scoped credentials.
type AccountClient struct {
	IAM    *awsiam.Client
	Events *awsevents.Client
}

// ForAccount builds clients that act inside the account creds belong to.
func (m *ManagementClient) ForAccount(creds awssts.Credentials) *AccountClient {
	cfg := m.Config.Copy()
	cfg.Credentials = aws.NewCredentialsCache(creds.Provider())

	return &AccountClient{
		IAM:    awsiam.NewClient(awsiamsdk.NewFromConfig(cfg)),
		Events: awsevents.NewClient(eventbridge.NewFromConfig(cfg)),
	}
}
