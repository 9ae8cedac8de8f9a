package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"healthvoice/cmd/healthvoice/cmd/convert"
	"healthvoice/cmd/healthvoice/cmd/serve"
	"healthvoice/cmd/healthvoice/cmd/version"
)

var Verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "healthvoice",
	Short: "Clinical audio transcription and transcript question answering",
	Long: `HealthVoice transcribes clinical audio interviews and answers
questions about the resulting transcripts.

- serve starts the HTTP API with the background transcription worker
- convert batch-imports a directory of audio files from the command line`,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(convert.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "V", false, "verbose output")
}
