package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ytget/mp3-tagger/internal/model"
	"github.com/ytget/mp3-tagger/internal/tagger"
)

func newInspectCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE",
		Short: "Print the tags the server reads from an MP3",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			controller := opts.newController(reportTo(cmd))
			defer func() {
				controller.Close()
				waitCleanups(controller)
			}()

			if err := uploadFile(cmd, controller, args[0]); err != nil {
				return err
			}

			resp := model.UploadResponse{FileID: controller.FileID(), Tags: controller.Form().Tags()}
			if resp.Tags.IsEmpty() {
				fmt.Fprintln(cmd.ErrOrStderr(), "no tags found")
			}
			data, err := json.MarshalIndent(resp, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode tags: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

// uploadFile opens path and starts an editing session for it
func uploadFile(cmd *cobra.Command, controller *tagger.Controller, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if err := controller.Upload(cmd.Context(), filepath.Base(path), f); err != nil {
		return fmt.Errorf("upload %s: %w", path, err)
	}
	return nil
}

// reportTo prints session messages to the command's error stream
func reportTo(cmd *cobra.Command) func(string) {
	return func(message string) {
		fmt.Fprintln(cmd.ErrOrStderr(), message)
	}
}
