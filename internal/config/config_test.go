package config

import (
	"context"
	"strings"
	"testing"
)

func setAllEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvAccessKeyID, "AKID")
	t.Setenv(EnvSecretAccessKey, "SECRET")
	t.Setenv(EnvRegion, "us-east-1")
}

func TestMissingEnvVars_AllSet(t *testing.T) {
	setAllEnv(t)
	if missing := MissingEnvVars(); len(missing) != 0 {
		t.Fatalf("expected no missing vars, got %v", missing)
	}
}

func TestMissingEnvVars_ReportsExactNames(t *testing.T) {
	setAllEnv(t)
	t.Setenv(EnvSecretAccessKey, "")
	t.Setenv(EnvRegion, "")

	missing := MissingEnvVars()
	if len(missing) != 2 {
		t.Fatalf("expected 2 missing vars, got %v", missing)
	}
	if missing[0] != EnvSecretAccessKey || missing[1] != EnvRegion {
		t.Fatalf("expected [%s %s], got %v", EnvSecretAccessKey, EnvRegion, missing)
	}
}

func TestFromEnv(t *testing.T) {
	setAllEnv(t)

	creds, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if creds.AccessKeyID != "AKID" {
		t.Fatalf("expected access key AKID, got %q", creds.AccessKeyID)
	}
	if creds.SecretAccessKey != "SECRET" {
		t.Fatalf("expected secret SECRET, got %q", creds.SecretAccessKey)
	}
	if creds.Region != "us-east-1" {
		t.Fatalf("expected region us-east-1, got %q", creds.Region)
	}
}

func TestFromEnv_Missing(t *testing.T) {
	setAllEnv(t)
	t.Setenv(EnvAccessKeyID, "")

	_, err := FromEnv()
	if err == nil {
		t.Fatalf("expected error for missing access key")
	}
	if !strings.Contains(err.Error(), EnvAccessKeyID) {
		t.Fatalf("expected error to name %s, got %q", EnvAccessKeyID, err.Error())
	}
}

func TestAWSConfig_CarriesStaticCredentials(t *testing.T) {
	setAllEnv(t)
	t.Setenv("AWS_EC2_METADATA_DISABLED", "true")

	creds := Credentials{AccessKeyID: "AKID", SecretAccessKey: "SECRET", Region: "eu-west-1"}
	cfg, err := creds.AWSConfig(context.Background())
	if err != nil {
		t.Fatalf("AWSConfig failed: %v", err)
	}
	if cfg.Region != "eu-west-1" {
		t.Fatalf("expected region eu-west-1, got %q", cfg.Region)
	}

	resolved, err := cfg.Credentials.Retrieve(context.Background())
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if resolved.AccessKeyID != "AKID" || resolved.SecretAccessKey != "SECRET" {
		t.Fatalf("expected static credentials to be carried, got %q/%q", resolved.AccessKeyID, resolved.SecretAccessKey)
	}
}
