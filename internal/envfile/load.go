// Copyright (c) 2026 The envctl authors.
// SPDX-License-Identifier: Apache-2.0

package envfile

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/envctl/envctl/internal/awsutil"
	"github.com/envctl/envctl/internal/log"
)

// SessionSchemes is the allow-list of URL schemes an environment file may be
// fetched from. Anything else must be a local path.
var SessionSchemes = []string{"file", "http", "https", "s3"}

// Load locates an environment file (local path or allow-listed URL), fetches
// it, and parses it. Location and parse failures both surface as
// ErrSpecNotFound.
func Load(ctx context.Context, fileArg string) (*Environment, error) {
	data, err := fetch(ctx, fileArg)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func fetch(ctx context.Context, fileArg string) ([]byte, error) {
	s := scheme(fileArg)
	log.Debugf("fetching environment file: file=%s scheme=%q", fileArg, s)

	switch s {
	case "":
		return readLocal(fileArg)
	case "file":
		_, rest, _ := strings.Cut(fileArg, "://")
		return readLocal(rest)
	case "http", "https":
		return readHTTP(ctx, fileArg)
	case "s3":
		return readS3(ctx, fileArg)
	default:
		return nil, fmt.Errorf("%w: unsupported URL scheme %q", ErrSpecNotFound, s)
	}
}

// readLocal resolves a local path the way a shell would: env vars expanded,
// ~ expanded, then made absolute against the working directory.
func readLocal(path string) ([]byte, error) {
	path = os.ExpandEnv(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSpecNotFound, path)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSpecNotFound, abs)
	}
	return data, nil
}

func readHTTP(ctx context.Context, fileURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSpecNotFound, fileURL)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSpecNotFound, fileURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s: %s", ErrSpecNotFound, fileURL, resp.Status)
	}

	return io.ReadAll(resp.Body)
}

func readS3(ctx context.Context, fileURL string) ([]byte, error) {
	u, err := url.Parse(fileURL)
	if err != nil || u.Host == "" || u.Path == "" {
		return nil, fmt.Errorf("%w: %s", ErrSpecNotFound, fileURL)
	}
	bucket := u.Host
	key := strings.TrimPrefix(u.Path, "/")

	cfg, err := awsutil.LoadAWSConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSpecNotFound, fileURL, err)
	}

	out, err := awsutil.NewS3(cfg).GetObject(ctx, &s3v2.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSpecNotFound, fileURL, err)
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}
