package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Basfar/aws-healthlake-experiments/internal/config"
	"github.com/Basfar/aws-healthlake-experiments/internal/fhir"
	"github.com/spf13/cobra"
)

var fhirFlags struct {
	datastoreID  string
	endpoint     string
	method       string
	resourceType string
	resourceID   string
	payloadFile  string
}

var fhirCmd = &cobra.Command{
	Use:   "fhir",
	Short: "Issue a signed FHIR REST request against the datastore",
	Long: `Sends one SigV4-signed request to the datastore's FHIR R4 endpoint,
e.g. reading a Patient by ID or creating a resource from a JSON file.
The response body is printed to stdout.`,
	RunE: runFhir,
}

func init() {
	fhirCmd.Flags().StringVar(&fhirFlags.datastoreID, "datastore-id", "", "HealthLake datastore ID")
	fhirCmd.Flags().StringVar(&fhirFlags.endpoint, "endpoint", "", "Override the datastore endpoint URL")
	fhirCmd.Flags().StringVarP(&fhirFlags.method, "method", "X", "GET", "HTTP method: GET, POST, PUT or DELETE")
	fhirCmd.Flags().StringVar(&fhirFlags.resourceType, "resource-type", "", "FHIR resource type (e.g. Patient)")
	fhirCmd.Flags().StringVar(&fhirFlags.resourceID, "resource-id", "", "FHIR resource ID (optional)")
	fhirCmd.Flags().StringVar(&fhirFlags.payloadFile, "payload", "", "JSON file with the request body (for POST/PUT)")
	_ = fhirCmd.MarkFlagRequired("datastore-id")
	_ = fhirCmd.MarkFlagRequired("resource-type")
}

func runFhir(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	method := strings.ToUpper(fhirFlags.method)
	switch method {
	case "GET", "POST", "PUT", "DELETE":
	default:
		return fmt.Errorf("unsupported method: %s (supported: GET, POST, PUT, DELETE)", fhirFlags.method)
	}

	var payload []byte
	if fhirFlags.payloadFile != "" {
		data, err := os.ReadFile(fhirFlags.payloadFile)
		if err != nil {
			return fmt.Errorf("read payload file: %w", err)
		}
		payload = data
	}

	creds, err := config.FromEnv()
	if err != nil {
		return err
	}
	awsCfg, err := creds.AWSConfig(ctx)
	if err != nil {
		return enhanceError("AWS client initialization", err)
	}

	client := fhir.NewClient(awsCfg, fhirFlags.datastoreID, fhirFlags.endpoint)
	body, err := client.Send(ctx, method, fhirFlags.resourceType, fhirFlags.resourceID, payload)
	if err != nil {
		return enhanceError("FHIR request", err)
	}

	fmt.Println(string(body))
	return nil
}
