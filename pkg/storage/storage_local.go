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
	"io/fs"
	"os"
	"path/filepath"

	pkgerrors "github.com/pkg/errors"
)

// LocalStorage reads files from disk. Relative names resolve against BasePath.
type LocalStorage struct {
	s *Storage
}

func NewLocal(s *Storage) *LocalStorage {
	return &LocalStorage{s: s}
}

// Path returns the filesystem path objectName resolves to.
func (l *LocalStorage) Path(objectName string) string {
	if filepath.IsAbs(objectName) || l.s.BasePath == "" {
		return objectName
	}
	return filepath.Join(l.s.BasePath, objectName)
}

func (l *LocalStorage) GetObject(ctx context.Context, objectName string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p := l.Path(objectName)
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, notFound(p, err)
	}
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "read %s", p)
	}
	return data, nil
}
