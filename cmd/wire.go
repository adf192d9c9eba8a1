package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bnema/dna-analyser-cli/internal/adapters/dnaapi"
	"github.com/bnema/dna-analyser-cli/internal/adapters/fasta"
	"github.com/bnema/dna-analyser-cli/internal/adapters/ncbi"
	recordsadapter "github.com/bnema/dna-analyser-cli/internal/adapters/render/records"
	tomlrepo "github.com/bnema/dna-analyser-cli/internal/adapters/repo/toml"
	chainstore "github.com/bnema/dna-analyser-cli/internal/adapters/secrets/chain"
	"github.com/bnema/dna-analyser-cli/internal/application"
	"github.com/bnema/dna-analyser-cli/internal/config"
	"github.com/bnema/dna-analyser-cli/internal/domain"
	"github.com/bnema/dna-analyser-cli/internal/logging"
	"github.com/bnema/dna-analyser-cli/internal/ports"
	"github.com/spf13/viper"
)

type app struct {
	v           *viper.Viper
	cfg         config.Config
	auth        *application.AuthService
	secretStore ports.SecretStore
	renderer    func(string, domain.Table, recordsadapter.RenderOptions) (string, error)
	httpClient  *http.Client
	jsonOutput  bool
}

// init runs once flags are parsed, so bound flags take part in config
// resolution.
func (a *app) init() error {
	cfg, err := config.Load(a.v)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	if err := logging.Init(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat}); err != nil {
		return err
	}

	repo, err := tomlrepo.NewRepository(a.v)
	if err != nil {
		return fmt.Errorf("wire session repository: %w", err)
	}

	secretStore, err := chainstore.NewPasswordStore(cfg.SecretsDir)
	if err != nil {
		return fmt.Errorf("wire secret store chain: %w", err)
	}

	a.httpClient = &http.Client{}
	a.secretStore = secretStore
	a.renderer = recordsadapter.Render
	a.auth = application.NewAuthService(
		dnaapi.Authenticator{HTTPClient: a.httpClient, RequestTimeout: cfg.HTTPTimeout},
		repo,
		ports.SystemClock{},
	)
	return nil
}

// workspace restores the stored session and builds the adapters on it.
func (a *app) workspace(ctx context.Context, progress ports.ProgressReporter) (*application.Workspace, error) {
	session, err := a.auth.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w (run `dnaa login`)", err)
	}

	client := &dnaapi.Client{
		Session:        session,
		HTTPClient:     a.httpClient,
		RequestTimeout: a.cfg.HTTPTimeout,
		Retry:          a.cfg.Retry,
	}

	return application.NewWorkspace(application.WorkspaceDeps{
		Session:   session,
		Sequences: dnaapi.NewSequenceAdapter(client),
		G4Hunter:  dnaapi.NewG4HunterAdapter(client),
		RLoopr:    dnaapi.NewRLooprAdapter(client),
		ZDna:      dnaapi.NewZDnaAdapter(client),
		CpG:       dnaapi.NewCpGAdapter(client),
		G4Killer:  dnaapi.NewG4KillerAdapter(client),
		P53:       dnaapi.NewP53Adapter(client),
		Poller:    application.NewPoller(dnaapi.NewBatchAdapter(client), progress, ports.SystemClock{}, a.cfg.PollInterval),
		Parser:    fasta.Parser{},
		Parallel:  a.cfg.Parallel,
	})
}

// annotations needs no session: NCBI downloads are anonymous.
func (a *app) annotations() (*application.AnnotationService, error) {
	return application.NewAnnotationService(
		ncbi.Client{
			BaseURL:        a.cfg.NCBI.URL,
			HTTPClient:     a.httpClient,
			RequestTimeout: a.cfg.HTTPTimeout,
			Attempts:       a.cfg.NCBI.Attempts,
			Delay:          a.cfg.NCBI.Delay,
		},
		ncbi.FeatureTableParser{},
	)
}
