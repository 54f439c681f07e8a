// Package cli holds the flag plumbing shared by the rpmeta subcommands.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"github.com/stfwi/redstonepen-meta/internal/logger"
	"github.com/stfwi/redstonepen-meta/internal/perf"
	"go.opentelemetry.io/otel/attribute"
)

const (
	QuietFlag = "quiet"
	DebugFlag = "debug"
	PerfFlag  = "perf"
)

// Logger builds a logger from the command's output streams and the
// persistent --quiet/--debug flags. Missing flags count as false.
func Logger(cmd *cobra.Command) *logger.Logger {
	return logger.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), boolFlag(cmd, QuietFlag), boolFlag(cmd, DebugFlag))
}

func boolFlag(cmd *cobra.Command, name string) bool {
	value, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return value
}

// StartRegion opens a perf span named after the command under the command's context.
func StartRegion(cmd *cobra.Command, attrs ...attribute.KeyValue) (context.Context, *perf.Region) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return perf.StartRegion(ctx, "cmd."+cmd.Name(), attrs...)
}

// ReportedError wraps an error whose message a command has already shown.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string {
	return e.Err.Error()
}

func (e *ReportedError) Unwrap() error {
	return e.Err
}

// Reported marks err as shown to the user so the caller does not print it again.
func Reported(err error) error {
	if err == nil {
		return nil
	}
	return &ReportedError{Err: err}
}

func AlreadyReported(err error) bool {
	var reported *ReportedError
	return errors.As(err, &reported)
}
