package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/ytget/mp3-tagger/internal/api"
)

func newCleanupCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup FILE_ID",
		Short: "Ask the server to delete the files of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := opts.newClient().Cleanup(cmd.Context(), args[0])
			if api.IsStatus(err, http.StatusNotFound) {
				return fmt.Errorf("cleanup %s: no such session on the server: %w", args[0], err)
			}
			if err != nil {
				return fmt.Errorf("cleanup %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cleaned up %s\n", args[0])
			return nil
		},
	}
}
