// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/go-arcade/phrasetrie/pkg/log"
	"github.com/go-arcade/phrasetrie/pkg/retry"
	"github.com/google/wire"
)

// ProviderSet provides the configured Reader.
var ProviderSet = wire.NewSet(ProvideReader)

// provider names
const (
	StorageLocal = "local"
	StorageHTTP  = "http"
	StorageMinio = "minio"
	StorageS3    = "s3"
	StorageOSS   = "oss"
	StorageGCS   = "gcs"
	StorageCOS   = "cos"
)

// Storage selects and configures the provider inputs are read from.
type Storage struct {
	Provider  string        `mapstructure:"provider"`
	AccessKey string        `mapstructure:"accessKey"`
	SecretKey string        `mapstructure:"secretKey"`
	Endpoint  string        `mapstructure:"endpoint"`
	Bucket    string        `mapstructure:"bucket"`
	Region    string        `mapstructure:"region"`
	UseTLS    bool          `mapstructure:"useTLS"`
	BasePath  string        `mapstructure:"basePath"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Retries   int           `mapstructure:"retries"`
}

// SetDefaults fills unset fields.
func (s *Storage) SetDefaults() {
	if s.Provider == "" {
		s.Provider = StorageLocal
	}
	if s.Timeout <= 0 {
		s.Timeout = 30 * time.Second
	}
	if s.Retries <= 0 {
		s.Retries = 3
	}
}

// ProvideReader builds the Reader for s. Remote providers come wrapped with
// retries; the local filesystem is read once.
func ProvideReader(s *Storage) (Reader, error) {
	r, err := NewStorage(s)
	if err != nil {
		return nil, err
	}
	if s.Provider == StorageLocal {
		return r, nil
	}
	return WithRetry(r, s.Retries), nil
}

// NewStorage creates the provider named by s.Provider.
func NewStorage(s *Storage) (Reader, error) {
	s.SetDefaults()
	switch s.Provider {
	case StorageLocal:
		return NewLocal(s), nil
	case StorageHTTP:
		return newHTTP(s)
	case StorageMinio:
		return newMinio(s)
	case StorageS3:
		return newS3(s)
	case StorageOSS:
		return newOSS(s)
	case StorageGCS:
		return newGCS(s)
	case StorageCOS:
		return newCOS(s)
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", s.Provider)
	}
}

type retryReader struct {
	Reader
	attempts int
}

// WithRetry retries failed fetches of r with exponential backoff. Missing
// objects and context errors are returned at once.
func WithRetry(r Reader, attempts int) Reader {
	return &retryReader{Reader: r, attempts: attempts}
}

func (r *retryReader) GetObject(ctx context.Context, objectName string) ([]byte, error) {
	var data []byte
	err := retry.Do(ctx, func(ctx context.Context) error {
		var err error
		data, err = r.Reader.GetObject(ctx, objectName)
		return err
	},
		retry.WithMaxAttempts(r.attempts),
		retry.WithBackoff(retry.Exponential(200*time.Millisecond, 5*time.Second)),
		retry.WithJitter(retry.FullJitter),
		retry.WithRetryIf(func(err error) bool {
			return !errors.Is(err, ErrNotFound) && retry.IsRetryableError(err)
		}),
		retry.WithOnRetry(func(attempt int, err error, wait time.Duration) {
			log.Warnw("fetch failed, retrying",
				"object", objectName,
				"attempt", attempt,
				"wait", wait,
				"error", err,
			)
		}),
	)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// getFullPath joins basePath and objectName into an object key.
func getFullPath(basePath, objectName string) string {
	objectName = strings.TrimPrefix(objectName, "/")
	basePath = strings.Trim(basePath, "/")
	if basePath == "" {
		return objectName
	}
	return path.Join(basePath, objectName)
}

func notFound(objectName string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrNotFound, objectName, err)
}
