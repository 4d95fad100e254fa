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
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	pkgerrors "github.com/pkg/errors"
)

// HTTPStorage fetches objects with GET requests below Endpoint.
type HTTPStorage struct {
	Client *resty.Client
	s      *Storage
}

func newHTTP(s *Storage) (*HTTPStorage, error) {
	if s.Endpoint == "" {
		return nil, fmt.Errorf("http storage requires an endpoint")
	}
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(s.Endpoint, "/")).
		SetTimeout(s.Timeout).
		SetHeader("Accept", "text/plain, */*")
	if s.AccessKey != "" {
		client.SetBasicAuth(s.AccessKey, s.SecretKey)
	}
	return &HTTPStorage{Client: client, s: s}, nil
}

func (h *HTTPStorage) GetObject(ctx context.Context, objectName string) ([]byte, error) {
	fullPath := "/" + getFullPath(h.s.BasePath, objectName)
	resp, err := h.Client.R().SetContext(ctx).Get(fullPath)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "get %s", fullPath)
	}
	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return nil, notFound(fullPath, fmt.Errorf("status %s", resp.Status()))
	case resp.IsError():
		return nil, fmt.Errorf("get %s: status %s", fullPath, resp.Status())
	}
	return resp.Body(), nil
}
