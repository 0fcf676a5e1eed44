package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	awsevents "tasnim.dev/org-bootstrap/internal/aws/events"
	awsiam "tasnim.dev/org-bootstrap/internal/aws/iam"
	"tasnim.dev/org-bootstrap/internal/bootstrap"
	"tasnim.dev/org-bootstrap/internal/constants"
	"tasnim.dev/org-bootstrap/internal/policy"
	"tasnim.dev/org-bootstrap/internal/utils"
)

type RoleConfig struct {
	Name        string `yaml:"name" env:"NAME"`
	Description string `yaml:"description" env:"DESCRIPTION"`
	PolicyName  string `yaml:"policy_name" env:"POLICY_NAME"`
}

// Config holds settings loaded from ~/.config/org-bootstrap/config.yaml and
// ORG_BOOTSTRAP_* environment variables.
type Config struct {
	DefaultProfile string `yaml:"default_profile" env:"PROFILE"`
	DefaultRegion  string `yaml:"default_region" env:"REGION"`
	Partition      string `yaml:"partition" env:"PARTITION"`

	CentralAccountID string `yaml:"central_account_id" env:"CENTRAL_ACCOUNT_ID"`
	CentralRegion    string `yaml:"central_region" env:"CENTRAL_REGION"`
	EventBusName     string `yaml:"event_bus_name" env:"EVENT_BUS_NAME"`

	AdminRoleName   string        `yaml:"admin_role_name" env:"ADMIN_ROLE_NAME"`
	SessionName     string        `yaml:"session_name" env:"SESSION_NAME"`
	SessionDuration time.Duration `yaml:"session_duration" env:"SESSION_DURATION"`
	CallTimeout     time.Duration `yaml:"call_timeout" env:"CALL_TIMEOUT"`
	MaxAttempts     int           `yaml:"max_attempts" env:"MAX_ATTEMPTS"`

	RuleName        string `yaml:"rule_name" env:"RULE_NAME"`
	RuleDescription string `yaml:"rule_description" env:"RULE_DESCRIPTION"`
	TargetID        string `yaml:"target_id" env:"TARGET_ID"`

	RelayRole   RoleConfig `yaml:"relay_role" envPrefix:"RELAY_ROLE_"`
	TaggingRole RoleConfig `yaml:"tagging_role" envPrefix:"TAGGING_ROLE_"`

	LedgerPath string `yaml:"ledger_path" env:"LEDGER_PATH"`
}

const envPrefix = "ORG_BOOTSTRAP_"

// DefaultPath returns ~/.config/org-bootstrap/config.yaml, or "" when the
// home directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "org-bootstrap", "config.yaml")
}

// Load reads the config file at path (DefaultPath when empty), applies
// environment overrides and fills defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing %s: %w", path, err)
			}
		case !errors.Is(err, os.ErrNotExist):
			return nil, err
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	setDefault(&c.Partition, constants.Partition)
	setDefault(&c.CentralRegion, constants.CentralRegion)
	setDefault(&c.EventBusName, constants.EventBusName)
	setDefault(&c.AdminRoleName, constants.AdminRoleName)
	setDefault(&c.SessionName, constants.SessionName)
	setDefault(&c.RuleName, constants.RuleName)
	setDefault(&c.RuleDescription, constants.RuleDescription)
	setDefault(&c.TargetID, constants.TargetID)

	setDefault(&c.RelayRole.Name, constants.RelayRoleName)
	setDefault(&c.RelayRole.Description, constants.RelayRoleDescription)
	setDefault(&c.RelayRole.PolicyName, constants.RelayPolicyName)
	setDefault(&c.TaggingRole.Name, constants.TaggingRoleName)
	setDefault(&c.TaggingRole.Description, constants.TaggingRoleDescription)
	setDefault(&c.TaggingRole.PolicyName, constants.TaggingPolicyName)

	if c.SessionDuration == 0 {
		c.SessionDuration = constants.SessionDuration
	}
	if c.CallTimeout == 0 {
		c.CallTimeout = constants.CallTimeout
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = 1
	}
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}

// Merge applies CLI flag overrides. Flags take precedence over config defaults.
func (c *Config) Merge(profile, region string) (string, string) {
	p := c.DefaultProfile
	if profile != "" {
		p = profile
	}
	r := c.DefaultRegion
	if region != "" {
		r = region
	}
	return p, r
}

// Validate reports settings that would make every run fail.
func (c *Config) Validate() error {
	if !utils.ValidAccountID(c.CentralAccountID) {
		return fmt.Errorf("central_account_id must be a 12-digit account ID, got %q", c.CentralAccountID)
	}
	if c.CallTimeout <= 0 {
		return fmt.Errorf("call_timeout must be positive, got %s", c.CallTimeout)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be at least 1, got %d", c.MaxAttempts)
	}
	// STS rejects sessions shorter than 15 minutes.
	if c.SessionDuration < 15*time.Minute {
		return fmt.Errorf("session_duration must be at least 15m, got %s", c.SessionDuration)
	}
	return nil
}

// DestinationARN is the central account's event bus.
func (c *Config) DestinationARN() string {
	return utils.EventBusARN(c.Partition, c.CentralRegion, c.CentralAccountID, c.EventBusName)
}

// Settings builds the immutable workflow settings.
func (c *Config) Settings() bootstrap.Settings {
	destination := c.DestinationARN()

	return bootstrap.Settings{
		AdminRoleName: c.AdminRoleName,
		CallTimeout:   c.CallTimeout,
		RelayRole: awsiam.RoleSpec{
			Name:             c.RelayRole.Name,
			Description:      c.RelayRole.Description,
			TrustPolicy:      policy.TrustService(constants.EventsPrincipal),
			PolicyName:       c.RelayRole.PolicyName,
			PermissionPolicy: policy.Allow("", destination, "events:PutEvents"),
		},
		TaggingRole: awsiam.RoleSpec{
			Name:             c.TaggingRole.Name,
			Description:      c.TaggingRole.Description,
			TrustPolicy:      policy.TrustAccount(utils.RootARN(c.Partition, c.CentralAccountID)),
			PolicyName:       c.TaggingRole.PolicyName,
			PermissionPolicy: policy.Allow(constants.TaggingPolicySid, "*", slices.Clone(constants.TaggingActions)...),
		},
		Rule: awsevents.RuleSpec{
			Name:        c.RuleName,
			Description: c.RuleDescription,
			Pattern: awsevents.Pattern{
				Sources:      slices.Clone(constants.Sources),
				DetailTypes:  slices.Clone(constants.DetailTypes),
				EventSources: slices.Clone(constants.EventSources),
				EventNames:   slices.Clone(constants.EventNames),
			},
		},
		TargetID:       c.TargetID,
		DestinationARN: destination,
	}
}
