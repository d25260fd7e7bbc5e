package cmd

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"github.com/ytget/mp3-tagger/internal/api"
	"github.com/ytget/mp3-tagger/internal/config"
	"github.com/ytget/mp3-tagger/internal/logger"
	"github.com/ytget/mp3-tagger/internal/platform"
	"github.com/ytget/mp3-tagger/internal/ui"
)

const (
	AppID   = "com.ytget.mp3-tagger"
	AppName = "MP3 Tagger"
)

func newGUICmd(opts *options, version string) *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Start the desktop app (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(opts, version)
		},
	}
}

func runGUI(opts *options, version string) error {
	logger.Info("Starting desktop app", logger.String("version", version))

	myApp := app.NewWithID(AppID)

	// Stored preference wins over the environment, an explicit flag wins over both
	settings := config.NewSettings(myApp, opts.serverURL)
	serverURL := settings.GetServerURL()
	if opts.serverFromFlag {
		serverURL = opts.serverURL
	}
	client := api.NewClient(serverURL, opts.timeout)

	downloadsDir := settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(downloadsDir); err != nil {
		logger.Warn("Failed to ensure download directory", logger.String("dir", downloadsDir), logger.ErrorField(err))
	}

	window := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	window.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	root := ui.NewRootUI(window, myApp, settings, client)
	root.Controller().SetCleanupTimeout(opts.timeout)
	window.ShowAndRun()

	root.Close()
	waitCleanups(root.Controller())
	logger.Info("Desktop app stopped")
	return nil
}
