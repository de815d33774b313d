// Package cli implements the farum command line.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/PabloGalante/farum-calm/internal/adapters/llm"
	"github.com/PabloGalante/farum-calm/internal/adapters/storage"
	"github.com/PabloGalante/farum-calm/internal/app/chat"
	"github.com/PabloGalante/farum-calm/internal/app/records"
	"github.com/PabloGalante/farum-calm/internal/catalog"
	"github.com/PabloGalante/farum-calm/internal/config"
	"github.com/PabloGalante/farum-calm/internal/domain"
	"github.com/PabloGalante/farum-calm/internal/observability"
)

// app is shared by every command. Storage and the chat client are opened
// only by the commands that need them.
type app struct {
	configFile string
	logLevel   string

	cfg     *config.Config
	catalog *catalog.Catalog

	backend    domain.RecordBackend
	closeStore func() error
	client     domain.ChatClient

	in  io.Reader
	out io.Writer
}

// New builds the root command.
func New() *cobra.Command {
	return newRoot(&app{in: os.Stdin, out: os.Stdout})
}

func newRoot(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "farum",
		Short:         "A calm corner in your terminal: breathing practices, mood check-ins and an evening journal.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default ~/.farum/config.yaml)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level written to stderr")

	addGreeting(cmd, a)
	addPractices(cmd, a)
	addPractice(cmd, a)
	addSOS(cmd, a)
	addMood(cmd, a)
	addJournal(cmd, a)
	addChat(cmd, a)
	return cmd
}

func (a *app) setup() error {
	if a.cfg == nil {
		cfg, err := config.Load(a.configFile)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	if a.catalog == nil {
		a.catalog = catalog.Default()
	}

	// log_level from the config is for the API server; the CLI stays quiet
	// unless asked.
	return observability.Setup(os.Stderr, a.logLevel, "text")
}

func (a *app) teardown() error {
	if a.closeStore == nil {
		return nil
	}
	err := a.closeStore()
	a.closeStore = nil
	return err
}

func (a *app) records(ctx context.Context) (*records.Store, error) {
	if a.backend == nil {
		backend, closeFn, err := storage.Open(ctx, a.cfg)
		if err != nil {
			return nil, err
		}
		a.backend, a.closeStore = backend, closeFn
	}
	return records.NewStore(a.backend), nil
}

func (a *app) chatService(ctx context.Context) (*chat.Service, error) {
	if a.client == nil {
		client, err := llm.NewClient(ctx, a.cfg)
		if err != nil {
			return nil, err
		}
		a.client = client
	}
	return chat.NewService(a.client), nil
}
