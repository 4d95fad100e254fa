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

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	pkgerrors "github.com/pkg/errors"
)

type OSSStorage struct {
	Client *oss.Client
	Bucket *oss.Bucket
	s      *Storage
}

func newOSS(s *Storage) (*OSSStorage, error) {
	client, err := oss.New(s.Endpoint, s.AccessKey, s.SecretKey)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "create oss client")
	}
	bucket, err := client.Bucket(s.Bucket)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "open oss bucket %s", s.Bucket)
	}
	return &OSSStorage{Client: client, Bucket: bucket, s: s}, nil
}

func (o *OSSStorage) GetObject(ctx context.Context, objectName string) ([]byte, error) {
	fullPath := getFullPath(o.s.BasePath, objectName)
	body, err := o.Bucket.GetObject(fullPath, oss.WithContext(ctx))
	if err != nil {
		var serviceErr oss.ServiceError
		if errors.As(err, &serviceErr) && serviceErr.Code == "NoSuchKey" {
			return nil, notFound(fullPath, err)
		}
		return nil, pkgerrors.Wrapf(err, "oss get %s/%s", o.s.Bucket, fullPath)
	}
	defer body.Close()
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "oss read %s/%s", o.s.Bucket, fullPath)
	}
	return data, nil
}
