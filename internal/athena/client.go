// Package athena runs ad-hoc SQL queries over ingested data and fetches
// their results.
package athena

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/athena"
	"github.com/aws/aws-sdk-go-v2/service/athena/types"
)

const defaultPollInterval = 2 * time.Second

// Client wraps the AWS Athena client.
type Client struct {
	athenaClient *athena.Client
	pollInterval time.Duration
}

// NewClient creates a new Athena client from a resolved AWS config.
func NewClient(cfg aws.Config) *Client {
	return &Client{
		athenaClient: athena.NewFromConfig(cfg),
		pollInterval: defaultPollInterval,
	}
}

// Submit starts a query execution and returns its ID. Results are
// written to outputLocation (an s3:// URI).
func (c *Client) Submit(ctx context.Context, query, database, outputLocation string) (string, error) {
	out, err := c.athenaClient.StartQueryExecution(ctx, &athena.StartQueryExecutionInput{
		QueryString: aws.String(query),
		QueryExecutionContext: &types.QueryExecutionContext{
			Database: aws.String(database),
		},
		ResultConfiguration: &types.ResultConfiguration{
			OutputLocation: aws.String(outputLocation),
		},
	})
	if err != nil {
		return "", fmt.Errorf("start query execution: %w", err)
	}
	return aws.ToString(out.QueryExecutionId), nil
}

// Wait polls the query execution until it succeeds, fails or is
// cancelled. Failure and cancellation are errors carrying the state
// change reason.
func (c *Client) Wait(ctx context.Context, queryExecutionID string) error {
	for {
		out, err := c.athenaClient.GetQueryExecution(ctx, &athena.GetQueryExecutionInput{
			QueryExecutionId: aws.String(queryExecutionID),
		})
		if err != nil {
			return fmt.Errorf("get query execution %s: %w", queryExecutionID, err)
		}

		status := out.QueryExecution.Status
		switch status.State {
		case types.QueryExecutionStateSucceeded:
			return nil
		case types.QueryExecutionStateFailed:
			return fmt.Errorf("query %s failed: %s", queryExecutionID, aws.ToString(status.StateChangeReason))
		case types.QueryExecutionStateCancelled:
			return fmt.Errorf("query %s was cancelled", queryExecutionID)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}
}

// Results returns every result row as a string slice, following
// pagination. The first row is Athena's header row.
func (c *Client) Results(ctx context.Context, queryExecutionID string) ([][]string, error) {
	var rows [][]string
	paginator := athena.NewGetQueryResultsPaginator(c.athenaClient, &athena.GetQueryResultsInput{
		QueryExecutionId: aws.String(queryExecutionID),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("get query results %s: %w", queryExecutionID, err)
		}
		for _, row := range page.ResultSet.Rows {
			cells := make([]string, 0, len(row.Data))
			for _, datum := range row.Data {
				cells = append(cells, aws.ToString(datum.VarCharValue))
			}
			rows = append(rows, cells)
		}
	}
	return rows, nil
}
