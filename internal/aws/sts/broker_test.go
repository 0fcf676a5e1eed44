package sts

import (
	"context"
	"testing"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	awssts "github.com/aws/aws-sdk-go-v2/service/sts"
	ststypes "github.com/aws/aws-sdk-go-v2/service/sts/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasnim.dev/org-bootstrap/internal/fault"
)

type mockSTSAPI struct {
	calls          int
	assumeRoleFunc func(ctx context.Context, params *awssts.AssumeRoleInput, optFns ...func(*awssts.Options)) (*awssts.AssumeRoleOutput, error)
}

func (m *mockSTSAPI) AssumeRole(ctx context.Context, params *awssts.AssumeRoleInput, optFns ...func(*awssts.Options)) (*awssts.AssumeRoleOutput, error) {
	m.calls++
	return m.assumeRoleFunc(ctx, params, optFns...)
}

func TestAssume(t *testing.T) {
	expires := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	mock := &mockSTSAPI{
		assumeRoleFunc: func(ctx context.Context, params *awssts.AssumeRoleInput, optFns ...func(*awssts.Options)) (*awssts.AssumeRoleOutput, error) {
			assert.Equal(t, "arn:aws:iam::111122223333:role/OrganizationAccountAccessRole", awssdk.ToString(params.RoleArn))
			assert.Equal(t, "AssumedRoleSession", awssdk.ToString(params.RoleSessionName))
			assert.Equal(t, int32(900), awssdk.ToInt32(params.DurationSeconds))
			return &awssts.AssumeRoleOutput{
				Credentials: &ststypes.Credentials{
					AccessKeyId:     awssdk.String("ASIAEXAMPLE"),
					SecretAccessKey: awssdk.String("secret"),
					SessionToken:    awssdk.String("token"),
					Expiration:      &expires,
				},
				AssumedRoleUser: &ststypes.AssumedRoleUser{
					Arn: awssdk.String("arn:aws:sts::111122223333:assumed-role/OrganizationAccountAccessRole/AssumedRoleSession"),
				},
			}, nil
		},
	}

	broker := NewBroker(mock, "", "AssumedRoleSession", 15*time.Minute)
	creds, err := broker.Assume(context.Background(), "111122223333", "OrganizationAccountAccessRole")
	require.NoError(t, err)
	assert.Equal(t, "111122223333", creds.AccountID)
	assert.Equal(t, "ASIAEXAMPLE", creds.AccessKeyID)
	assert.Equal(t, "secret", creds.SecretAccessKey)
	assert.Equal(t, "token", creds.SessionToken)
	assert.True(t, creds.Expires.Equal(expires))
	assert.Equal(t, 1, mock.calls)

	v, err := creds.Provider().Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ASIAEXAMPLE", v.AccessKeyID)
}

func TestAssume_Denied(t *testing.T) {
	mock := &mockSTSAPI{
		assumeRoleFunc: func(ctx context.Context, params *awssts.AssumeRoleInput, optFns ...func(*awssts.Options)) (*awssts.AssumeRoleOutput, error) {
			return nil, &smithy.GenericAPIError{Code: "AccessDenied", Message: "not authorized to perform sts:AssumeRole"}
		},
	}

	broker := NewBroker(mock, "aws", "AssumedRoleSession", 0)
	_, err := broker.Assume(context.Background(), "111122223333", "OrganizationAccountAccessRole")
	require.Error(t, err)
	assert.True(t, fault.Is(err, fault.KindAuthorization))
	assert.Equal(t, 1, mock.calls, "broker must not retry")
}

func TestAssume_Throttled(t *testing.T) {
	mock := &mockSTSAPI{
		assumeRoleFunc: func(ctx context.Context, params *awssts.AssumeRoleInput, optFns ...func(*awssts.Options)) (*awssts.AssumeRoleOutput, error) {
			assert.Nil(t, params.DurationSeconds)
			return nil, &smithy.GenericAPIError{Code: "Throttling"}
		},
	}

	_, err := NewBroker(mock, "aws", "s", 0).Assume(context.Background(), "111122223333", "r")
	assert.True(t, fault.Is(err, fault.KindTransport))
}

func TestAssume_NoCredentials(t *testing.T) {
	mock := &mockSTSAPI{
		assumeRoleFunc: func(ctx context.Context, params *awssts.AssumeRoleInput, optFns ...func(*awssts.Options)) (*awssts.AssumeRoleOutput, error) {
			return &awssts.AssumeRoleOutput{}, nil
		},
	}

	_, err := NewBroker(mock, "aws", "s", 0).Assume(context.Background(), "111122223333", "r")
	assert.True(t, fault.Is(err, fault.KindProvider))
}

func TestAssume_WrongAccount(t *testing.T) {
	mock := &mockSTSAPI{
		assumeRoleFunc: func(ctx context.Context, params *awssts.AssumeRoleInput, optFns ...func(*awssts.Options)) (*awssts.AssumeRoleOutput, error) {
			return &awssts.AssumeRoleOutput{
				Credentials: &ststypes.Credentials{AccessKeyId: awssdk.String("A")},
				AssumedRoleUser: &ststypes.AssumedRoleUser{
					Arn: awssdk.String("arn:aws:sts::999999999999:assumed-role/r/s"),
				},
			}, nil
		},
	}

	_, err := NewBroker(mock, "aws", "s", 0).Assume(context.Background(), "111122223333", "r")
	assert.True(t, fault.Is(err, fault.KindAuthorization))
}
