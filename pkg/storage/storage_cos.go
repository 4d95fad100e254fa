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
	"io"
	"net/http"
	"net/url"

	pkgerrors "github.com/pkg/errors"
	"github.com/tencentyun/cos-go-sdk-v5"
)

type COSStorage struct {
	Client *cos.Client
	s      *Storage
}

func newCOS(s *Storage) (*COSStorage, error) {
	u, err := url.Parse(s.Endpoint)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "parse cos endpoint")
	}
	// COS addresses buckets by host: <bucket>.<endpoint host>
	if s.Bucket != "" && u.Host != "" {
		u = &url.URL{Scheme: "https", Host: s.Bucket + "." + u.Host}
	}
	client := cos.NewClient(&cos.BaseURL{BucketURL: u}, &http.Client{
		Timeout: s.Timeout,
		Transport: &cos.AuthorizationTransport{
			SecretID:  s.AccessKey,
			SecretKey: s.SecretKey,
		},
	})
	return &COSStorage{Client: client, s: s}, nil
}

func (c *COSStorage) GetObject(ctx context.Context, objectName string) ([]byte, error) {
	fullPath := getFullPath(c.s.BasePath, objectName)
	resp, err := c.Client.Object.Get(ctx, fullPath, nil)
	if err != nil {
		if cos.IsNotFoundError(err) {
			return nil, notFound(fullPath, err)
		}
		return nil, pkgerrors.Wrapf(err, "cos get %s", fullPath)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "cos read %s", fullPath)
	}
	return data, nil
}
