// Package cmd implements the mp3-tagger command line: the desktop app by
// default, plus headless subcommands driving the same tagging session.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/ytget/mp3-tagger/internal/api"
	"github.com/ytget/mp3-tagger/internal/config"
	"github.com/ytget/mp3-tagger/internal/logger"
	"github.com/ytget/mp3-tagger/internal/tagger"
)

// Flag names shared by all commands
const (
	flagServer   = "server"
	flagTimeout  = "timeout"
	flagLogLevel = "log-level"
	flagLogFile  = "log-file"
)

// options holds the resolved global configuration. Flags win over the
// environment, which wins over built-in defaults.
type options struct {
	serverURL string
	timeout   time.Duration
	logLevel  string
	logFile   string

	// serverFromFlag is set when --server was given explicitly
	serverFromFlag bool
}

// bind registers the global flags on cmd
func (o *options) bind(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&o.serverURL, flagServer, config.DefaultServerURL, "tagging server base URL (env "+config.EnvServerURL+")")
	flags.DurationVar(&o.timeout, flagTimeout, config.DefaultTimeout, "per-request timeout (env "+config.EnvTimeout+", seconds)")
	flags.StringVar(&o.logLevel, flagLogLevel, config.DefaultLogLevel, "log level: debug, info, warn, error (env "+config.EnvLogLevel+")")
	flags.StringVar(&o.logFile, flagLogFile, "", "rotated log file path (env "+config.EnvLogFile+")")
}

// load fills every flag that was not set explicitly from the environment and
// initialises the global logger.
func (o *options) load(cmd *cobra.Command) {
	env := config.LoadEnv()
	flags := cmd.Flags()

	o.serverFromFlag = flags.Changed(flagServer)
	if !o.serverFromFlag {
		o.serverURL = env.ServerURL
	}
	if !flags.Changed(flagTimeout) {
		o.timeout = env.Timeout
	}
	if !flags.Changed(flagLogLevel) {
		o.logLevel = env.LogLevel
	}
	if !flags.Changed(flagLogFile) {
		o.logFile = env.LogFile
	}

	logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(o.logLevel),
		OutputPath: o.logFile,
	})
	logger.Debug("Configuration loaded",
		logger.String("server_url", o.serverURL),
		logger.Duration("timeout", o.timeout),
		logger.Bool("dotenv", env.DotEnvLoaded))
}

func (o *options) newClient() *api.Client {
	return api.NewClient(o.serverURL, o.timeout)
}

// newController starts a headless session whose cleanups share the request timeout
func (o *options) newController(onError func(string)) *tagger.Controller {
	controller := tagger.NewController(o.newClient(), onError)
	controller.SetCleanupTimeout(o.timeout)
	return controller
}

// NewRootCmd builds the command tree
func NewRootCmd(version string) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "mp3-tagger",
		Short:         "Edit MP3 tags through a tagging server",
		Long:          "mp3-tagger uploads an MP3 to a tagging server, edits its title, artist, album, year, genre and cover art, and downloads the tagged result.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(opts, version)
		},
	}

	opts.bind(rootCmd)
	rootCmd.AddCommand(
		newGUICmd(opts, version),
		newInspectCmd(opts),
		newTagCmd(opts),
		newCleanupCmd(opts),
	)
	return rootCmd
}

// Execute executes the root command.
func Execute(version string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := NewRootCmd(version).ExecuteContext(ctx)
	logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// waitCleanups gives pending cleanup requests a bounded time to finish before exit
func waitCleanups(controller *tagger.Controller) {
	ctx, cancel := context.WithTimeout(context.Background(), tagger.DefaultCleanupTimeout)
	defer cancel()

	if err := controller.WaitCleanups(ctx); err != nil {
		logger.Warn("Exiting with cleanup requests still pending", logger.ErrorField(err))
	}
}
