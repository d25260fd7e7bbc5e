package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytget/mp3-tagger/internal/logger"
	"github.com/ytget/mp3-tagger/internal/model"
	"github.com/ytget/mp3-tagger/internal/tagger"
)

func newTagCmd(opts *options) *cobra.Command {
	var (
		coverPath string
		outDir    string
		values    = make(map[model.TagField]*string)
	)

	cmd := &cobra.Command{
		Use:   "tag FILE",
		Short: "Upload an MP3, apply tag changes and download the tagged copy",
		Long: "tag runs a whole session without the desktop app: the file is uploaded, " +
			"the given fields replace the ones read by the server, the tags are saved " +
			"and the tagged copy is written to --out. Fields that are not given keep their current value.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			controller := opts.newController(reportTo(cmd))
			defer func() {
				controller.Close()
				waitCleanups(controller)
			}()

			if err := uploadFile(cmd, controller, args[0]); err != nil {
				return err
			}
			form := controller.Form()

			for _, field := range model.TagFields {
				if cmd.Flags().Changed(string(field)) {
					form.SetField(field, *values[field])
				}
			}

			if coverPath != "" {
				cover, err := tagger.LoadCover(coverPath)
				if err != nil {
					return err
				}
				form.SetCover(cover)
			}

			if err := form.Submit(cmd.Context()); err != nil {
				return err
			}

			path, err := form.Download(cmd.Context(), outDir)
			if err != nil {
				return err
			}
			logger.Info("Tagged file written", logger.String("path", path), logger.Any("tags", form.Tags()))
			fmt.Fprintln(cmd.OutOrStdout(), path)

			form.Reset()
			return nil
		},
	}

	for _, field := range model.TagFields {
		values[field] = cmd.Flags().String(string(field), "", field.Label()+" to save")
	}
	cmd.Flags().StringVar(&coverPath, "cover", "", "cover art image to embed")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "directory for the tagged file")

	return cmd
}
