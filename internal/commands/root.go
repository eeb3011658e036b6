package commands

import (
	"os"

	"github.com/Basfar/aws-healthlake-experiments/internal/logging"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	verbose bool
	version string
	commit  string
	date    string
)

var rootCmd = &cobra.Command{
	Use:   "hiosctl",
	Short: "hiosctl - FHIR bundle store and HealthLake ingest tool",
	Long: `hiosctl uploads a directory of FHIR bundles to an S3 bucket, submits
HealthLake import jobs for the stored objects, and verifies that the
environment, bucket and datastore are usable.

Credentials are read from AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and
AWS_REGION.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			color.NoColor = true
		}
	},
}

// Execute runs the root command with injected build info.
func Execute(v, c, d string) error {
	version = v
	commit = c
	date = d
	return rootCmd.Execute()
}

// GetVersion returns the current version.
func GetVersion() string {
	return version
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	rootCmd.AddCommand(syncStoreCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(fhirCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(versionCmd)
}
