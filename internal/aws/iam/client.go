package iam

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsiam "github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"

	"tasnim.dev/org-bootstrap/internal/fault"
)

type IAMAPI interface {
	CreateRole(ctx context.Context, params *awsiam.CreateRoleInput, optFns ...func(*awsiam.Options)) (*awsiam.CreateRoleOutput, error)
	GetRole(ctx context.Context, params *awsiam.GetRoleInput, optFns ...func(*awsiam.Options)) (*awsiam.GetRoleOutput, error)
	PutRolePolicy(ctx context.Context, params *awsiam.PutRolePolicyInput, optFns ...func(*awsiam.Options)) (*awsiam.PutRolePolicyOutput, error)
}

type Client struct {
	api IAMAPI
}

func NewClient(api IAMAPI) *Client {
	return &Client{api: api}
}

// EnsureRole creates the role, or resolves the existing one when IAM reports
// it already exists, then puts the inline permission policy.
func (c *Client) EnsureRole(ctx context.Context, spec RoleSpec) (Upsert, error) {
	trust, err := spec.TrustPolicy.JSON()
	if err != nil {
		return Upsert{}, &fault.Error{Kind: fault.KindValidation, Op: fmt.Sprintf("EnsureRole(%s): trust policy", spec.Name), Err: err}
	}
	permissions, err := spec.PermissionPolicy.JSON()
	if err != nil {
		return Upsert{}, &fault.Error{Kind: fault.KindValidation, Op: fmt.Sprintf("EnsureRole(%s): permission policy", spec.Name), Err: err}
	}

	result, err := c.createRole(ctx, spec, trust)
	if err != nil {
		return Upsert{}, err
	}

	_, err = c.api.PutRolePolicy(ctx, &awsiam.PutRolePolicyInput{
		RoleName:       aws.String(spec.Name),
		PolicyName:     aws.String(spec.PolicyName),
		PolicyDocument: aws.String(permissions),
	})
	if err != nil {
		return Upsert{}, fault.Wrap(fmt.Sprintf("PutRolePolicy(%s, %s)", spec.Name, spec.PolicyName), err)
	}

	return result, nil
}

func (c *Client) createRole(ctx context.Context, spec RoleSpec, trust string) (Upsert, error) {
	out, err := c.api.CreateRole(ctx, &awsiam.CreateRoleInput{
		RoleName:                 aws.String(spec.Name),
		AssumeRolePolicyDocument: aws.String(trust),
		Description:              aws.String(spec.Description),
	})
	if err == nil {
		if out.Role == nil {
			return Upsert{}, fault.New(fault.KindProvider, fmt.Sprintf("CreateRole(%s)", spec.Name), "response carried no role")
		}
		return Upsert{ARN: aws.ToString(out.Role.Arn), State: Created}, nil
	}

	var exists *iamtypes.EntityAlreadyExistsException
	if !errors.As(err, &exists) {
		return Upsert{}, fault.Wrap(fmt.Sprintf("CreateRole(%s)", spec.Name), err)
	}

	arn, err := c.RoleARN(ctx, spec.Name)
	if err != nil {
		return Upsert{}, err
	}
	return Upsert{ARN: arn, State: AlreadyPresent}, nil
}

// RoleARN resolves the ARN of an existing role.
func (c *Client) RoleARN(ctx context.Context, roleName string) (string, error) {
	out, err := c.api.GetRole(ctx, &awsiam.GetRoleInput{
		RoleName: aws.String(roleName),
	})
	if err != nil {
		return "", fault.Wrap(fmt.Sprintf("GetRole(%s)", roleName), err)
	}
	if out.Role == nil || aws.ToString(out.Role.Arn) == "" {
		return "", fault.New(fault.KindProvider, fmt.Sprintf("GetRole(%s)", roleName), "response carried no role ARN")
	}
	return aws.ToString(out.Role.Arn), nil
}
