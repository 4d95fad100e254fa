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

package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-arcade/phrasetrie/pkg/log"
)

// debounce coalesces the burst of events a single save produces.
const debounce = 100 * time.Millisecond

// Watch runs once, then again after every write to one of paths, until ctx
// is done. paths are the local files backing names. Directories are watched
// rather than the files so editors that replace files on save keep working.
// Failed rebuilds are logged and the previous output stands.
func (s *Ingester) Watch(ctx context.Context, names, paths []string, w io.Writer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	targets := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", p, err)
		}
		targets[abs] = struct{}{}
		dir := filepath.Dir(abs)
		if _, ok := dirs[dir]; ok {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		dirs[dir] = struct{}{}
	}

	if _, err := s.Run(ctx, names, w); err != nil {
		return err
	}
	log.Infow("watching inputs", "files", len(targets), "dirs", len(dirs))

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if _, ok := targets[filepath.Clean(ev.Name)]; !ok {
				continue
			}
			log.Debugw("input changed", "file", ev.Name, "op", ev.Op.String())
			if pending == nil {
				pending = time.After(debounce)
			}
		case <-pending:
			pending = nil
			if _, err := s.Run(ctx, names, w); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				log.Errorw("rebuild failed", "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warnw("watcher error", "error", err)
		}
	}
}
