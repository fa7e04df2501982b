// Package cmd wires the CareSync CLI: one cobra command tree on top of the
// session store, the API client, and the auth facade.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/caresync/caresync/internal/api"
	"github.com/caresync/caresync/internal/auth"
	"github.com/caresync/caresync/internal/config"
	"github.com/caresync/caresync/internal/log"
	"github.com/caresync/caresync/internal/session"
	"github.com/caresync/caresync/internal/ux"
	"github.com/caresync/caresync/internal/version"
)

// Persistent flags, bound in init.
var (
	cfgFile      string
	outputFormat string
	logLevelFlag string
	apiURLFlag   string
)

// app holds the dependencies every command needs. It is built once in the
// root command's PersistentPreRunE, so RunE bodies never construct clients
// or stores themselves.
type app struct {
	cfg     *config.Config
	logger  *log.Logger
	store   *session.Store
	client  *api.Client
	session *auth.Manager
	styles  ux.Styles
}

var current *app

var rootCmd = &cobra.Command{
	Use:   "caresync",
	Short: "CareSync healthcare scheduling and community client",
	Long: `caresync talks to a CareSync backend: book and manage doctor
appointments, browse doctor profiles, and take part in the community
medicine-availability board.

The backend origin is resolved once at startup, from CARESYNC_API_URL,
the config file, or the runtime target table, in that order.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initApp(cmd.Context())
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// ExecuteContext runs the root command with the given context.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.caresync/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "output format: text, json, or yaml")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn, or error")
	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "", "backend origin, overrides config and environment")
}

func initApp(ctx context.Context) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if apiURLFlag != "" {
		cfg.APIURL = strings.TrimRight(apiURLFlag, "/")
	}
	if logLevelFlag != "" {
		cfg.LogLevel = logLevelFlag
	}

	logger := log.New(log.Config{
		Level:  log.ParseLevel(cfg.LogLevel),
		Format: log.ParseFormat(cfg.LogFormat),
		Output: os.Stderr,
	})
	log.SetDefaultLogger(logger)

	store := session.NewStore(cfg.StateDir, logger)

	client := api.NewClient(cfg,
		api.WithLogger(logger),
		api.WithUserAgent("caresync/"+version.GetInfo().Short()),
		api.WithTokenSource(api.TokenSourceFunc(func() (string, bool) {
			return store.Get(session.KeyAuthToken)
		})),
	)

	mgr := auth.NewManager(store, client, logger)
	mgr.Load(ctx)

	current = &app{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		client:  client,
		session: mgr,
		styles:  ux.DefaultStyles(),
	}
	return nil
}

func getApp() *app {
	return current
}

// render writes data in the selected output format. The text argument is
// only used for the default human-readable format; json and yaml emit the
// data value itself.
func (a *app) render(data any, text string) error {
	switch outputFormat {
	case "json", "yaml":
		f, err := ux.NewFormatter(outputFormat, &ux.FormatterOptions{Writer: os.Stdout})
		if err != nil {
			return err
		}
		return f.Format(data)
	default:
		fmt.Print(text)
		return nil
	}
}
