package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/Basfar/aws-healthlake-experiments/internal/athena"
	"github.com/Basfar/aws-healthlake-experiments/internal/config"
	"github.com/spf13/cobra"
)

var queryFlags struct {
	sql            string
	database       string
	outputLocation string
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run an Athena query over exported datastore tables",
	Long: `Submits a SQL query to Athena, waits for it to finish and prints the
result rows. Query results are written to the given S3 output location.`,
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringVar(&queryFlags.sql, "sql", "", "SQL query to run")
	queryCmd.Flags().StringVar(&queryFlags.database, "database", "", "Athena database")
	queryCmd.Flags().StringVar(&queryFlags.outputLocation, "output-location", "", "S3 URI for query results (s3://...)")
	_ = queryCmd.MarkFlagRequired("sql")
	_ = queryCmd.MarkFlagRequired("database")
	_ = queryCmd.MarkFlagRequired("output-location")
}

func runQuery(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	creds, err := config.FromEnv()
	if err != nil {
		return err
	}
	awsCfg, err := creds.AWSConfig(ctx)
	if err != nil {
		return enhanceError("AWS client initialization", err)
	}

	client := athena.NewClient(awsCfg)
	executionID, err := client.Submit(ctx, queryFlags.sql, queryFlags.database, queryFlags.outputLocation)
	if err != nil {
		return enhanceError("query submission", err)
	}
	printStatus("Query submitted: %s", executionID)

	if err := client.Wait(ctx, executionID); err != nil {
		return enhanceError("query execution", err)
	}

	rows, err := client.Results(ctx, executionID)
	if err != nil {
		return enhanceError("query results", err)
	}
	for _, row := range rows {
		fmt.Println(strings.Join(row, "\t"))
	}
	return nil
}
