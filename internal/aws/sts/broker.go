// Package sts exchanges an account ID for temporary credentials in that
// account.
package sts

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awssts "github.com/aws/aws-sdk-go-v2/service/sts"

	"tasnim.dev/org-bootstrap/internal/fault"
	"tasnim.dev/org-bootstrap/internal/utils"
)

type STSAPI interface {
	AssumeRole(ctx context.Context, params *awssts.AssumeRoleInput, optFns ...func(*awssts.Options)) (*awssts.AssumeRoleOutput, error)
}

// Credentials are scoped to one account for one invocation. They are never
// cached or persisted.
type Credentials struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	Expires         time.Time
}

// Provider returns a static provider for building per-account SDK clients.
func (c Credentials) Provider() aws.CredentialsProvider {
	return credentials.NewStaticCredentialsProvider(c.AccessKeyID, c.SecretAccessKey, c.SessionToken)
}

type Broker struct {
	api         STSAPI
	partition   string
	sessionName string
	duration    time.Duration
}

func NewBroker(api STSAPI, partition, sessionName string, duration time.Duration) *Broker {
	if partition == "" {
		partition = "aws"
	}
	return &Broker{api: api, partition: partition, sessionName: sessionName, duration: duration}
}

// Assume requests credentials for roleName in accountID.
func (b *Broker) Assume(ctx context.Context, accountID, roleName string) (Credentials, error) {
	roleARN := utils.RoleARN(b.partition, accountID, roleName)

	in := &awssts.AssumeRoleInput{
		RoleArn:         aws.String(roleARN),
		RoleSessionName: aws.String(b.sessionName),
	}
	if b.duration > 0 {
		in.DurationSeconds = aws.Int32(int32(b.duration / time.Second))
	}

	out, err := b.api.AssumeRole(ctx, in)
	if err != nil {
		return Credentials{}, fault.Wrap(fmt.Sprintf("AssumeRole(%s)", roleARN), err)
	}
	if out.Credentials == nil {
		return Credentials{}, fault.New(fault.KindProvider, fmt.Sprintf("AssumeRole(%s)", roleARN), "response carried no credentials")
	}
	if out.AssumedRoleUser != nil {
		if got := utils.AccountFromARN(aws.ToString(out.AssumedRoleUser.Arn)); got != "" && got != accountID {
			return Credentials{}, fault.New(fault.KindAuthorization, fmt.Sprintf("AssumeRole(%s)", roleARN),
				fmt.Sprintf("credentials belong to account %s", got))
		}
	}

	return Credentials{
		AccountID:       accountID,
		AccessKeyID:     aws.ToString(out.Credentials.AccessKeyId),
		SecretAccessKey: aws.ToString(out.Credentials.SecretAccessKey),
		SessionToken:    aws.ToString(out.Credentials.SessionToken),
		Expires:         aws.ToTime(out.Credentials.Expiration),
	}, nil
}
