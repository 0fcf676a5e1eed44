package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	awsclient "tasnim.dev/org-bootstrap/internal/aws"
	awssts "tasnim.dev/org-bootstrap/internal/aws/sts"
	"tasnim.dev/org-bootstrap/internal/bootstrap"
	"tasnim.dev/org-bootstrap/internal/config"
	"tasnim.dev/org-bootstrap/internal/ledger"
	"tasnim.dev/org-bootstrap/internal/log"
)

// commonFlags are shared by every subcommand.
type commonFlags struct {
	configPath string
	profile    string
	region     string
	ledgerPath string
	verbose    bool
	jsonLogs   bool
}

func (f *commonFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configPath, "config", "", "Config file (default ~/.config/org-bootstrap/config.yaml)")
	cmd.Flags().StringVarP(&f.profile, "profile", "p", "", "AWS profile of the management account")
	cmd.Flags().StringVarP(&f.region, "region", "r", "", "AWS region to provision in")
	cmd.Flags().StringVar(&f.ledgerPath, "ledger", "", "SQLite ledger of outcomes (overrides ledger_path)")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.Flags().BoolVar(&f.jsonLogs, "json-logs", false, "Write logs as JSON")
}

func (f *commonFlags) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if f.ledgerPath != "" {
		cfg.LedgerPath = f.ledgerPath
	}
	return cfg, nil
}

// runtime is everything one command needs to provision accounts.
type runtime struct {
	cfg   *config.Config
	orch  *bootstrap.Orchestrator
	store *ledger.Store
}

func (f *commonFlags) setup(ctx context.Context, forceJSON bool) (*runtime, error) {
	log.Init(log.Options{Verbose: f.verbose, JSONFormat: f.jsonLogs || forceJSON})

	cfg, err := f.loadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	profile, region := cfg.Merge(f.profile, f.region)

	mgmt, err := awsclient.NewManagementClient(ctx, awsclient.Options{
		Profile:         profile,
		Region:          region,
		Partition:       cfg.Partition,
		SessionName:     cfg.SessionName,
		SessionDuration: cfg.SessionDuration,
		MaxAttempts:     cfg.MaxAttempts,
	})
	if err != nil {
		return nil, err
	}
	if f.verbose {
		log.Debug("management identity", "account", awsclient.GetAccountID(ctx, mgmt.Config), "region", mgmt.Config.Region)
	}

	rt := &runtime{cfg: cfg}
	var opts []bootstrap.Option
	if cfg.LedgerPath != "" {
		rt.store, err = ledger.Open(cfg.LedgerPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, bootstrap.WithRecorder(ledgerRecorder{store: rt.store}))
	}

	open := func(creds awssts.Credentials) bootstrap.Session {
		account := mgmt.ForAccount(creds)
		return bootstrap.Session{Roles: account.IAM, Relay: account.Events}
	}
	rt.orch = bootstrap.New(cfg.Settings(), mgmt.Broker, open, opts...)
	return rt, nil
}

func (r *runtime) Close() {
	if r.store != nil {
		r.store.Close()
	}
}

// ledgerRecorder stores orchestrator outcomes in the SQLite ledger.
type ledgerRecorder struct {
	store *ledger.Store
}

func (l ledgerRecorder) Record(ctx context.Context, o bootstrap.Outcome) error {
	return l.store.Record(ctx, entryFor(o))
}

func entryFor(o bootstrap.Outcome) ledger.Entry {
	return ledger.Entry{
		AccountID: o.AccountID,
		Status:    string(o.Status),
		Stage:     string(o.Stage),
		Error:     o.Error,
		Relay:     o.Relay.String(),
	}
}
