// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package processor

import (
	"context"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔍 ResolveInputs expands the given file paths and glob patterns
// (`**` supported) into a sorted, deduplicated list of files. A
// pattern matching nothing is logged as a warning; only the aggregate
// empty result is the caller's no-files-matched condition.
func ResolveInputs(ctx context.Context, patterns []string) ([]string, error) {
	logger := zerolog.Ctx(ctx)
	seen := map[string]struct{}{}

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("expanding pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			logger.Warn().Str("pattern", pattern).Msg("no files matched the pattern")
			continue
		}
		for _, m := range matches {
			seen[m] = struct{}{}
		}
	}

	files := make([]string, 0, len(seen))
	for f := range seen {
		files = append(files, f)
	}
	sort.Strings(files)
	return files, nil
}
