package storage

import (
	"context"
	"io"
	"net/http"
	"reflect"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestClient(rt http.RoundTripper) *Client {
	cfg := aws.Config{
		Region:      "us-east-1",
		Credentials: aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider("AKID", "SECRET", "")),
		HTTPClient:  &http.Client{Transport: rt},
	}
	return NewClient(cfg)
}

func response(status int, contentType, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{contentType}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestExists_Present(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if req.Method != http.MethodHead {
			t.Fatalf("expected HEAD request, got %s", req.Method)
		}
		return response(http.StatusOK, "application/json", ""), nil
	})

	exists, err := newTestClient(rt).Exists(context.Background(), "bucket", "a.json")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Fatalf("expected object to exist")
	}
}

func TestExists_Absent(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return response(http.StatusNotFound, "application/xml", ""), nil
	})

	exists, err := newTestClient(rt).Exists(context.Background(), "bucket", "a.json")
	if err != nil {
		t.Fatalf("expected 404 to not be an error, got %v", err)
	}
	if exists {
		t.Fatalf("expected object to be absent")
	}
}

func TestPut_SendsBodyAndContentType(t *testing.T) {
	var gotBody string
	var gotContentType string
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if req.Method != http.MethodPut {
			t.Fatalf("expected PUT request, got %s", req.Method)
		}
		data, err := io.ReadAll(req.Body)
		if err != nil {
			t.Fatalf("read request body: %v", err)
		}
		gotBody = string(data)
		gotContentType = req.Header.Get("Content-Type")
		return response(http.StatusOK, "application/xml", ""), nil
	})

	err := newTestClient(rt).Put(context.Background(), "bucket", "a.json", []byte(`{"x":1}`), "application/json")
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if gotBody != `{"x":1}` {
		t.Fatalf("expected body to be uploaded, got %q", gotBody)
	}
	if gotContentType != "application/json" {
		t.Fatalf("expected content type application/json, got %q", gotContentType)
	}
}

func TestHeadBucket(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return response(http.StatusOK, "application/xml", ""), nil
	})
	if err := newTestClient(rt).HeadBucket(context.Background(), "bucket"); err != nil {
		t.Fatalf("HeadBucket failed: %v", err)
	}

	rt = roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return response(http.StatusForbidden, "application/xml", ""), nil
	})
	if err := newTestClient(rt).HeadBucket(context.Background(), "bucket"); err == nil {
		t.Fatalf("expected error for inaccessible bucket")
	}
}

func TestList_FollowsPagination(t *testing.T) {
	pageOne := `<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">
  <Name>bucket</Name>
  <KeyCount>2</KeyCount>
  <IsTruncated>true</IsTruncated>
  <NextContinuationToken>token-1</NextContinuationToken>
  <Contents><Key>a.json</Key></Contents>
  <Contents><Key>b.json</Key></Contents>
</ListBucketResult>`
	pageTwo := `<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">
  <Name>bucket</Name>
  <KeyCount>1</KeyCount>
  <IsTruncated>false</IsTruncated>
  <Contents><Key>nested/c.json</Key></Contents>
</ListBucketResult>`

	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Query().Get("continuation-token") == "token-1" {
			return response(http.StatusOK, "application/xml", pageTwo), nil
		}
		return response(http.StatusOK, "application/xml", pageOne), nil
	})

	keys, err := newTestClient(rt).List(context.Background(), "bucket")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := []string{"a.json", "b.json", "nested/c.json"}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("expected keys %v, got %v", want, keys)
	}
}

func TestList_FailureIsFatal(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return response(http.StatusForbidden, "application/xml",
			`<?xml version="1.0"?><Error><Code>AccessDenied</Code><Message>denied</Message></Error>`), nil
	})

	if _, err := newTestClient(rt).List(context.Background(), "bucket"); err == nil {
		t.Fatalf("expected listing failure to surface as error")
	}
}
