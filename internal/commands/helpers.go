package commands

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Basfar/aws-healthlake-experiments/internal/report"
)

func printStatus(format string, args ...interface{}) {
	slog.Info(fmt.Sprintf(format, args...))
}

// enhanceError enhances an error with additional context and helpful suggestions
func enhanceError(operation string, err error) error {
	if err == nil {
		return nil
	}

	errMsg := err.Error()

	// Provide helpful suggestions for common errors
	if strings.Contains(errMsg, "missing required environment variables") ||
		strings.Contains(errMsg, "NoCredentialProviders") {
		return fmt.Errorf("%s failed: AWS credentials are not configured.\n"+
			"Solutions:\n"+
			"  - Export AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and AWS_REGION\n"+
			"  - Run 'hiosctl doctor' to see exactly what is missing\n"+
			"Original error: %w", operation, err)
	}

	if strings.Contains(errMsg, "AccessDenied") || strings.Contains(errMsg, "Access Denied") {
		return fmt.Errorf("%s failed: Access Denied.\n"+
			"Solutions:\n"+
			"  - Check IAM permissions for S3 (s3:HeadObject, s3:PutObject, s3:ListBucket)\n"+
			"  - Check IAM permissions for HealthLake (healthlake:StartFHIRImportJob, healthlake:DescribeFHIRDatastore)\n"+
			"  - Verify the data access role ARN is assumable by HealthLake\n"+
			"Original error: %w", operation, err)
	}

	if strings.Contains(errMsg, "RequestLimitExceeded") || strings.Contains(errMsg, "SlowDown") ||
		strings.Contains(errMsg, "ThrottlingException") {
		return fmt.Errorf("%s failed: AWS rate limit exceeded.\n"+
			"Solutions:\n"+
			"  - Wait a few seconds and try again\n"+
			"Original error: %w", operation, err)
	}

	if strings.Contains(errMsg, "no such file or directory") {
		return fmt.Errorf("%s failed: Local path not found.\n"+
			"Solutions:\n"+
			"  - Check the --path value is correct\n"+
			"  - Ensure the directory exists and is readable\n"+
			"Original error: %w", operation, err)
	}

	// Default error with context
	return fmt.Errorf("%s failed: %w", operation, err)
}

func selectReporter(format string, writer io.Writer) (report.Reporter, error) {
	switch format {
	case "json":
		return report.NewJSONReporter(writer), nil
	case "text":
		return report.NewTextReporter(writer), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (supported: text, json)", format)
	}
}
