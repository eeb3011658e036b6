// Package faults classifies errors from the AWS services this tool calls
// so that per-item outcomes can carry a stable reason kind.
package faults

import (
	"errors"
	"strings"

	"github.com/aws/smithy-go"
)

// Kind is the coarse failure category attached to an outcome.
type Kind string

const (
	// KindNone means no failure.
	KindNone Kind = ""
	// KindAuth covers missing or rejected credentials.
	KindAuth Kind = "auth"
	// KindNotFound covers absent local files and absent remote resources.
	KindNotFound Kind = "not-found"
	// KindRejected covers service-side validation failures; the service's
	// own message is passed through verbatim.
	KindRejected Kind = "rejected"
	// KindTransient covers throttling and other transport faults.
	KindTransient Kind = "transient"
)

var authCodes = map[string]bool{
	"AccessDenied":                true,
	"AccessDeniedException":       true,
	"InvalidAccessKeyId":          true,
	"SignatureDoesNotMatch":       true,
	"ExpiredToken":                true,
	"UnrecognizedClientException": true,
}

var notFoundCodes = map[string]bool{
	"NoSuchBucket":              true,
	"NoSuchKey":                 true,
	"NotFound":                  true,
	"ResourceNotFoundException": true,
}

var rejectedCodes = map[string]bool{
	"ValidationException":       true,
	"InvalidRequestException":   true,
	"ConflictException":         true,
	"MalformedPolicyDocument":   true,
	"InvalidParameterException": true,
}

// Classify maps an error from a remote call to a Kind. Unrecognized
// errors are treated as transient, matching how the underlying services
// report throttling and internal faults.
func Classify(err error) Kind {
	if err == nil {
		return KindNone
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		switch {
		case authCodes[code]:
			return KindAuth
		case notFoundCodes[code]:
			return KindNotFound
		case rejectedCodes[code]:
			return KindRejected
		}
	}

	msg := err.Error()
	switch {
	case containsAny(msg, "NoCredentialProviders", "no valid credentials", "AccessDenied", "Access Denied", "InvalidAccessKeyId"):
		return KindAuth
	case containsAny(msg, "NotFound", "no such file or directory", "404"):
		return KindNotFound
	case containsAny(msg, "ValidationException", "InvalidRequest"):
		return KindRejected
	}
	return KindTransient
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
