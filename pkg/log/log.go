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

// Package log wires zerolog for the run and provides the user-facing
// console feedback channel. Diagnostic logs go to stderr or a log
// file; stdout stays reserved for document and diff output.
package log

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options controls where diagnostics go.
type Options struct {
	LogFile string // Log to this file (JSON) instead of stderr
	Quiet   bool   // Disable all logging
	Debug   bool   // Enable debug level
}

// 🏭 Setup builds the run logger. The returned closer is non-nil when
// a log file was opened and must be closed at the end of the run.
func Setup(opts Options) (zerolog.Logger, io.Closer, error) {
	if opts.Quiet {
		return zerolog.Nop(), nil, nil
	}

	level := zerolog.InfoLevel
	if opts.Debug {
		level = zerolog.DebugLevel
	}

	if opts.LogFile != "" {
		f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return zerolog.Nop(), nil, errors.Errorf("opening log file: %w", err)
		}
		logger := zerolog.New(f).Level(level).With().Timestamp().Logger()
		return logger, f, nil
	}

	console := zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})
	logger := zerolog.New(console).Level(level).With().Timestamp().Logger()
	return logger, nil, nil
}
