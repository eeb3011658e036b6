// Package config resolves AWS credentials from the process environment.
//
// Credentials are read exactly once per invocation and passed explicitly
// into each client constructor; nothing below the command layer touches
// environment variables.
package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// Environment variables the tool authenticates with.
const (
	EnvAccessKeyID     = "AWS_ACCESS_KEY_ID"
	EnvSecretAccessKey = "AWS_SECRET_ACCESS_KEY"
	EnvRegion          = "AWS_REGION"
)

// RequiredEnvVars lists every variable that must be set, in report order.
var RequiredEnvVars = []string{EnvAccessKeyID, EnvSecretAccessKey, EnvRegion}

// Credentials is the immutable credential set for one invocation.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
}

// MissingEnvVars returns the names of required variables that are unset
// or empty, in report order.
func MissingEnvVars() []string {
	var missing []string
	for _, name := range RequiredEnvVars {
		if os.Getenv(name) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// FromEnv reads the credential set from the environment. A missing
// variable is a configuration error, reported before any network call.
func FromEnv() (Credentials, error) {
	if missing := MissingEnvVars(); len(missing) > 0 {
		return Credentials{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return Credentials{
		AccessKeyID:     os.Getenv(EnvAccessKeyID),
		SecretAccessKey: os.Getenv(EnvSecretAccessKey),
		Region:          os.Getenv(EnvRegion),
	}, nil
}

// AWSConfig builds an SDK config carrying the resolved credentials as a
// static provider, so clients never re-read the environment.
func (c Credentials) AWSConfig(ctx context.Context) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(c.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKeyID, c.SecretAccessKey, ""),
		),
	)
}
