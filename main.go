package main

import (
	"context"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	_ "github.com/joho/godotenv/autoload"
	"github.com/stfwi/redstonepen-meta/cmd/rpmeta"
	"github.com/stfwi/redstonepen-meta/internal/buildmeta"
	"github.com/stfwi/redstonepen-meta/internal/cli"
	"github.com/stfwi/redstonepen-meta/internal/lifecycle"
	"github.com/stfwi/redstonepen-meta/internal/logger"
	"github.com/stfwi/redstonepen-meta/internal/perf"
)

const (
	perfLifecycleStartup  = "app.lifecycle.startup"
	perfLifecycleExecute  = "app.lifecycle.execute"
	perfLifecycleShutdown = "app.lifecycle.shutdown"
)

type shutdownTrigger string

const (
	shutdownTriggerExit   shutdownTrigger = "exit"
	shutdownTriggerSignal shutdownTrigger = "signal"
)

type runDeps struct {
	execute    func(context.Context) error
	register   func(lifecycle.Handler) lifecycle.HandlerID
	unregister func(lifecycle.HandlerID)
	args       []string
	stdout     io.Writer
	stderr     io.Writer
}

func main() {
	os.Exit(runWithDeps(defaultDeps()))
}

func defaultDeps() runDeps {
	args := os.Args[1:]
	return runDeps{
		execute: func(ctx context.Context) error {
			return rpmeta.Execute(ctx, buildmeta.Get(), args)
		},
		register:   lifecycle.Register,
		unregister: lifecycle.Unregister,
		args:       args,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
	}
}

func runWithDeps(deps runDeps) int {
	log := logger.New(deps.stdout, deps.stderr, false, perfEnabledFromArgs(deps.args))

	ctx, lifecycleRegion := perf.StartRegion(context.Background(), perf.LifecycleSpanName)
	_, startupRegion := perf.StartRegion(ctx, perfLifecycleStartup)

	var shutdownOnce sync.Once
	shutdown := func(trigger shutdownTrigger, sig os.Signal) {
		shutdownOnce.Do(func() {
			attrs := map[string]string{"trigger": string(trigger)}
			if sig != nil {
				attrs["signal"] = sig.String()
			}
			_, region := perf.StartRegion(ctx, perfLifecycleShutdown)
			region.EndWithAttributes(attrs)
			lifecycleRegion.End()
			reportPerf(log)
		})
	}

	handlerID := deps.register(func(sig os.Signal) {
		shutdown(shutdownTriggerSignal, sig)
	})
	startupRegion.End()

	execCtx, executeRegion := perf.StartRegion(ctx, perfLifecycleExecute)
	err := deps.execute(execCtx)
	executeRegion.End()

	shutdown(shutdownTriggerExit, nil)
	deps.unregister(handlerID)

	if err != nil {
		if !cli.AlreadyReported(err) {
			log.Error(err.Error())
		}
		return 1
	}
	return 0
}

func reportPerf(log *logger.Logger) {
	if !log.Debugging() {
		return
	}
	spans, err := perf.GetSpans()
	if err != nil {
		log.Errorf("perf: %v\n", err)
		return
	}
	summary, err := perf.Summary(spans)
	if err != nil {
		log.Errorf("perf: %v\n", err)
		return
	}
	log.Diagnostic(summary)
}

// perfEnabledFromArgs looks for --perf before cobra parses the command line,
// so the report also covers a run that fails during flag parsing.
func perfEnabledFromArgs(args []string) bool {
	for _, arg := range args {
		if arg == "--" {
			return false
		}
		if arg == "--perf" {
			return true
		}
		if value, ok := strings.CutPrefix(arg, "--perf="); ok {
			enabled, err := strconv.ParseBool(value)
			return err == nil && enabled
		}
	}
	return false
}
