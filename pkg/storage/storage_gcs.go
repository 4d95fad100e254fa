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
	"io"

	"cloud.google.com/go/storage"
	pkgerrors "github.com/pkg/errors"
	"google.golang.org/api/option"
)

type GCSStorage struct {
	Client *storage.Client
	Bucket *storage.BucketHandle
	s      *Storage
}

func newGCS(s *Storage) (*GCSStorage, error) {
	var opts []option.ClientOption
	// AccessKey names a credentials JSON file
	if s.AccessKey != "" {
		opts = append(opts, option.WithCredentialsFile(s.AccessKey))
	}
	if s.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(s.Endpoint))
	}
	client, err := storage.NewClient(context.Background(), opts...)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "create gcs client")
	}
	return &GCSStorage{
		Client: client,
		Bucket: client.Bucket(s.Bucket),
		s:      s,
	}, nil
}

func (g *GCSStorage) GetObject(ctx context.Context, objectName string) ([]byte, error) {
	fullPath := getFullPath(g.s.BasePath, objectName)
	reader, err := g.Bucket.Object(fullPath).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, notFound(fullPath, err)
	}
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "gcs get %s/%s", g.s.Bucket, fullPath)
	}
	defer reader.Close()
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "gcs read %s/%s", g.s.Bucket, fullPath)
	}
	return data, nil
}
