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
)

// ErrNotFound is wrapped by every provider when the requested object does
// not exist. It is never retried.
var ErrNotFound = errors.New("object not found")

// Reader fetches the full contents of a named object.
type Reader interface {
	GetObject(ctx context.Context, objectName string) ([]byte, error)
}
