package policy

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrustService(t *testing.T) {
	doc, err := TrustService("events.amazonaws.com").JSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"Version": "2012-10-17",
		"Statement": [{
			"Effect": "Allow",
			"Principal": {"Service": "events.amazonaws.com"},
			"Action": "sts:AssumeRole"
		}]
	}`, doc)
}

func TestTrustAccount(t *testing.T) {
	doc, err := TrustAccount("arn:aws:iam::024848478165:root").JSON()
	require.NoError(t, err)
	assert.Contains(t, doc, `"AWS":"arn:aws:iam::024848478165:root"`)
}

func TestAllow_MultipleActions(t *testing.T) {
	doc, err := Allow("TaggingPermissions", "*", "ec2:CreateTags", "s3:PutBucketTagging").JSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"Version": "2012-10-17",
		"Statement": [{
			"Sid": "TaggingPermissions",
			"Effect": "Allow",
			"Action": ["ec2:CreateTags", "s3:PutBucketTagging"],
			"Resource": "*"
		}]
	}`, doc)
}

func TestJSON_Empty(t *testing.T) {
	_, err := Document{Version: Version}.JSON()
	assert.Error(t, err)
}

func TestActions_Unmarshal(t *testing.T) {
	var a Actions
	require.NoError(t, json.Unmarshal([]byte(`"events:PutEvents"`), &a))
	assert.Equal(t, Actions{"events:PutEvents"}, a)

	require.NoError(t, json.Unmarshal([]byte(`["a","b"]`), &a))
	assert.Equal(t, Actions{"a", "b"}, a)

	assert.Error(t, json.Unmarshal([]byte(`42`), &a))
}
