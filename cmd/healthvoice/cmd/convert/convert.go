package convert

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"healthvoice/internal/app"
	"healthvoice/internal/app/converter"
	"healthvoice/internal/config"
)

var (
	configPath   string
	inputDir     string
	convertCount int
	showProgress bool
)

func init() {
	Cmd.Flags().StringVarP(&configPath, "config", "c", "healthvoice.yaml",
		"path to the YAML configuration file")
	Cmd.Flags().StringVarP(&inputDir, "inputDir", "i", "",
		"directory containing the audio files to import")
	Cmd.Flags().IntVarP(&convertCount, "count", "n", 500,
		"maximum number of files to import in one run")
	Cmd.Flags().BoolVar(&showProgress, "progress", false,
		"force the progress bar even without a TTY")

	Cmd.MarkFlagRequired("inputDir")
}

// Cmd represents the convert command
var Cmd = &cobra.Command{
	Use:   "convert",
	Short: "Batch-import and transcribe the audio files in a directory",
	Long: `Batch-import and transcribe the audio files in a directory.

- Registers every audio file as a transcript, oldest first
- Skips files whose names are already registered
- Transcribes the queue synchronously before exiting`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		conv, cleanup, err := app.InitializeConverter(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		processed, err := conv.Do(context.Background(), inputDir, convertCount, converter.ProgressConfig{
			Enabled: converter.ShouldShowProgress(showProgress),
		})
		if err != nil {
			return err
		}

		fmt.Printf("transcribed %d files\n", processed)
		return nil
	},
}
