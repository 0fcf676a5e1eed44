package constants

import "time"

// Defaults for the member-account bootstrap. All of them can be overridden
// through config.
const (
	AdminRoleName   = "OrganizationAccountAccessRole"
	SessionName     = "AssumedRoleSession"
	SessionDuration = 15 * time.Minute
	CallTimeout     = 10 * time.Second

	Partition     = "aws"
	CentralRegion = "us-east-1"
	EventBusName  = "default"

	RuleName        = "MyEventRule"
	RuleDescription = "EventBridge rule for AWS API calls via CloudTrail"
	TargetID        = "RootAccountDefaultBusTarget"

	RelayRoleName        = "EventBridgeTargetRole"
	RelayRoleDescription = "Role for EventBridge to send events to the root account's default event bus"
	RelayPolicyName      = "EventBridgeTargetPolicy"
	EventsPrincipal      = "events.amazonaws.com"

	TaggingRoleName        = "Dev-tag-role"
	TaggingRoleDescription = "Dev-tag-role for managing AWS resource tags"
	TaggingPolicyName      = "DevTagRolePolicy"
	TaggingPolicySid       = "TaggingPermissions"
)

// DetailTypes restricts the relay to CloudTrail API call events.
var DetailTypes = []string{"AWS API Call via CloudTrail"}

var EventSources = []string{
	"ec2.amazonaws.com", "elasticloadbalancing.amazonaws.com", "s3.amazonaws.com", "rds.amazonaws.com",
	"lambda.amazonaws.com", "dynamodb.amazonaws.com", "elasticfilesystem.amazonaws.com", "fsx.amazonaws.com",
	"elasticache.amazonaws.com", "kms.amazonaws.com", "route53.amazonaws.com",
}

var Sources = []string{
	"aws.ec2", "aws.elasticloadbalancing", "aws.rds", "aws.lambda", "aws.s3", "aws.dynamodb",
	"aws.elasticfilesystem", "aws.fsx", "aws.elasticache", "aws.kms", "aws.route53",
}

// EventNames are the resource-creating operations worth relaying.
var EventNames = []string{
	"RunInstances", "CreateVpc", "CreateSecurityGroup", "CreateSubnet", "CreateFunction20150331", "CreateBucket",
	"CreateDBInstance", "CreateTable", "CreateVolume", "CreateLoadBalancer", "CreateInternetGateway", "CreateNatGateway",
	"AllocateAddress", "CreateVpcEndpoint", "CreateMountTarget", "CreateQueue", "CreateTopic", "CreateKey",
}

// TaggingActions are granted to the tagging role on all resources.
var TaggingActions = []string{
	"ec2:CreateTags",
	"ec2:DescribeInstances",
	"ec2:DescribeVpcs",
	"ec2:DescribeSubnets",
	"ec2:DescribeSecurityGroups",
	"ec2:DescribeNatGateways",
	"ec2:DescribeVpcEndpoints",
	"ec2:DescribeVolumes",
	"s3:PutBucketTagging",
	"s3:GetBucketTagging",
	"lambda:TagResource",
	"lambda:GetFunction",
	"elasticfilesystem:CreateTags",
	"elasticfilesystem:DescribeFileSystems",
	"fsx:TagResource",
	"fsx:DescribeFileSystems",
	"elasticloadbalancing:AddTags",
	"elasticloadbalancing:DescribeLoadBalancers",
	"route53:ChangeTagsForResource",
	"route53:ListTagsForResource",
	"rds:AddTagsToResource",
	"rds:DescribeDBInstances",
	"dynamodb:TagResource",
	"dynamodb:DescribeTable",
	"elasticache:AddTagsToResource",
	"elasticache:DescribeCacheClusters",
	"kms:TagResource",
	"kms:ListResourceTags",
}
