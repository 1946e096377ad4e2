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

package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/cfnhint/pkg/config"
	"github.com/walteh/cfnhint/pkg/log"
	"github.com/walteh/cfnhint/pkg/processor"
	"github.com/walteh/cfnhint/pkg/status"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile string
	inputs     []string
	stdin      bool
	outputDir  string
	showDiff   bool
	logFile    string
	quiet      bool
	debug      bool
)

// newRootCmd builds the cfnhint command. The resolved exit code is
// written through code so main can pass it to os.Exit after cobra
// unwinds.
func newRootCmd(code *status.ExitCode) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cfnhint",
		Short: "Rewrite config files driven by inline cfn-hint comments",
		Long: `cfnhint processes CloudFormation templates and similar config files,
applying regex substitutions declared by inline hint comments:

    # cfn-hint: replace: <pattern> with: <replacement>

Each hint rewrites exactly the line that follows it.`,
		Version:       FormatVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := runRoot(cmd)
			*code = c
			return err
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "optional config file (.yaml/.yml/.hcl)")
	cmd.Flags().StringSliceVar(&inputs, "input", nil, "input files or glob patterns (e.g. 'templates/*.yml')")
	cmd.Flags().BoolVar(&stdin, "stdin", false, "read a single document from stdin")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "directory to save modified files (default: print to stdout)")
	cmd.Flags().BoolVar(&showDiff, "diff", false, "show a unified diff of changes instead of full output")
	cmd.Flags().StringVar(&logFile, "log", "", "log to this file instead of stderr")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "suppress all output except documents, exit code only")
	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	cmd.MarkFlagsMutuallyExclusive("input", "stdin")

	return cmd
}

// runRoot wires logging, config, and the runner, and maps the run to
// an exit code.
func runRoot(cmd *cobra.Command) (status.ExitCode, error) {
	// Config is loaded under a bootstrap logger; the real logger needs
	// the merged quiet/log values.
	bootstrap := zerolog.New(os.Stderr).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	if quiet {
		bootstrap = zerolog.Nop()
	}
	cfg, err := loadConfig(bootstrap.WithContext(cmd.Context()))
	if err != nil {
		return status.ExitGeneralFailure, err
	}
	if !cfg.Stdin && len(cfg.Inputs) == 0 {
		return status.ExitGeneralFailure, errors.New("either --input or --stdin is required")
	}

	logger, closer, err := log.Setup(log.Options{LogFile: cfg.LogFile, Quiet: cfg.Quiet, Debug: debug})
	if err != nil {
		return status.ExitGeneralFailure, errors.Errorf("setting up logging: %w", err)
	}
	if closer != nil {
		defer closer.Close()
	}
	ctx := logger.WithContext(cmd.Context())

	runner := processor.NewRunner(processor.Options{
		Config: cfg,
		Stdin:  cmd.InOrStdin(),
		Stdout: cmd.OutOrStdout(),
		UI:     log.NewUserLogger(logger, cmd.ErrOrStderr(), cfg.Quiet),
	})

	return runner.Run(ctx).Code(), nil
}

// loadConfig loads the optional config file and overlays flag values.
func loadConfig(ctx context.Context) (*config.Config, error) {
	cfg := &config.Config{}
	if configFile != "" {
		loaded, err := config.Load(ctx, configFile)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	if len(inputs) > 0 {
		cfg.Inputs = inputs
	}
	if stdin {
		cfg.Stdin = true
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if showDiff {
		cfg.Diff = true
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}
	if quiet {
		cfg.Quiet = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// run executes the command line and resolves the final exit code.
func run(args []string) status.ExitCode {
	var code status.ExitCode
	cmd := newRootCmd(&code)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		cmd.PrintErrln("Error:", err)
		if code == status.ExitSuccess {
			code = status.ExitGeneralFailure
		}
	}
	return code
}
