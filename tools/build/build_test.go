package main

import (
	"bytes"
	"errors"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

type recordingRunner struct {
	commands []*exec.Cmd
	runError error
}

func (runner *recordingRunner) Run(command *exec.Cmd) error {
	runner.commands = append(runner.commands, command)
	return runner.runError
}

func newTestTool(t *testing.T, baseEnv []string, envFile map[string]string, runner *recordingRunner) *buildTool {
	t.Helper()
	return &buildTool{
		repoRoot:      t.TempDir(),
		baseEnv:       baseEnv,
		goBinary:      "go",
		commandRunner: runner,
		envFileReader: func(string) (map[string]string, error) {
			return envFile, nil
		},
		logger: log.New(&bytes.Buffer{}, "build: ", 0),
	}
}

func TestNewBuildToolGetwdFailure(t *testing.T) {
	originalGetWorkingDirectory := getWorkingDirectory
	t.Cleanup(func() {
		getWorkingDirectory = originalGetWorkingDirectory
	})

	getWorkingDirectory = func() (string, error) {
		return "", errors.New("boom")
	}

	tool, err := newBuildTool()
	if err == nil {
		t.Fatalf("expected error, got nil and tool %v", tool)
	}
}

func TestRunMainGetwdFailure(t *testing.T) {
	originalNewBuildToolFunc := newBuildToolFunc
	t.Cleanup(func() {
		newBuildToolFunc = originalNewBuildToolFunc
	})

	newBuildToolFunc = func() (*buildTool, error) {
		return nil, errors.New("boom")
	}

	if exitCode := runMain(); exitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", exitCode)
	}
}

func TestMainSuccessUsesExit(t *testing.T) {
	originalNewBuildToolFunc := newBuildToolFunc
	originalExit := exit
	t.Cleanup(func() {
		newBuildToolFunc = originalNewBuildToolFunc
		exit = originalExit
	})

	runner := &recordingRunner{}
	newBuildToolFunc = func() (*buildTool, error) {
		return newTestTool(t, []string{versionEnvVar + "=1.0.0"}, map[string]string{}, runner), nil
	}

	exitCode := 99
	exit = func(code int) {
		exitCode = code
	}

	main()

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	if len(runner.commands) != len(buildTargets) {
		t.Fatalf("expected %d builds, got %d", len(buildTargets), len(runner.commands))
	}
}

func TestRunFailsWithoutVersion(t *testing.T) {
	runner := &recordingRunner{}
	tool := newTestTool(t, nil, map[string]string{}, runner)

	err := tool.run()
	if err == nil || !strings.Contains(err.Error(), versionEnvVar) {
		t.Fatalf("expected missing version error, got %v", err)
	}
	if len(runner.commands) != 0 {
		t.Fatalf("expected no builds, got %d", len(runner.commands))
	}
}

func TestRunUsesVersionFromEnvFile(t *testing.T) {
	runner := &recordingRunner{}
	tool := newTestTool(t, []string{"PATH=/usr/bin"}, map[string]string{versionEnvVar: "2.0.0"}, runner)

	if err := tool.run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := runner.commands[0]
	expectedArgs := []string{
		"go", "build", "-trimpath",
		"-ldflags", "-s -w -X " + versionLdflag + "=2.0.0",
		"-o", filepath.Join(tool.repoRoot, "build", "darwin", "amd64", "rpmeta"),
		".",
	}
	if !reflect.DeepEqual(expectedArgs, first.Args) {
		t.Fatalf("unexpected args:\n%v\n%v", expectedArgs, first.Args)
	}
	if first.Dir != tool.repoRoot {
		t.Fatalf("expected build in %s, got %s", tool.repoRoot, first.Dir)
	}

	last := runner.commands[len(runner.commands)-1]
	if !strings.HasSuffix(last.Args[len(last.Args)-2], "rpmeta.exe") {
		t.Fatalf("expected windows executable, got %v", last.Args)
	}
	for _, expected := range []string{"GOOS=windows", "GOARCH=arm64", "CGO_ENABLED=0", "PATH=/usr/bin"} {
		if !contains(last.Env, expected) {
			t.Fatalf("expected %s in %v", expected, last.Env)
		}
	}
}

func TestRunStopsOnBuildError(t *testing.T) {
	runner := &recordingRunner{runError: errors.New("compile failed")}
	tool := newTestTool(t, []string{versionEnvVar + "=1.0.0"}, map[string]string{}, runner)

	err := tool.run()
	if err == nil || !strings.Contains(err.Error(), "build darwin/amd64") {
		t.Fatalf("expected build error, got %v", err)
	}
	if len(runner.commands) != 1 {
		t.Fatalf("expected one attempt, got %d", len(runner.commands))
	}
}

func TestRunEnvFileError(t *testing.T) {
	tool := newTestTool(t, nil, nil, &recordingRunner{})
	tool.envFileReader = func(string) (map[string]string, error) {
		return nil, errors.New("unreadable")
	}

	if err := tool.run(); err == nil {
		t.Fatal("expected error")
	}
}

func TestBuildEnvMapPrefersProcessEnvironment(t *testing.T) {
	envMap := buildEnvMap(
		[]string{versionEnvVar + "=from-env", "malformed"},
		map[string]string{versionEnvVar: "from-file", helpURLEnvVar: "https://example.invalid/help", "OTHER": "ignored"},
	)

	expected := map[string]string{
		versionEnvVar: "from-env",
		helpURLEnvVar: "https://example.invalid/help",
	}
	if !reflect.DeepEqual(expected, envMap) {
		t.Fatalf("unexpected env map %v", envMap)
	}
}

func TestLdflagsIncludeHelpURLWhenSet(t *testing.T) {
	flags := ldflagsFromEnv(map[string]string{versionEnvVar: "1.0.0", helpURLEnvVar: "https://example.invalid"})
	expected := "-s -w -X " + versionLdflag + "=1.0.0 -X " + helpURLLdflag + "=https://example.invalid"
	if flags != expected {
		t.Fatalf("expected %q, got %q", expected, flags)
	}
}

func TestEnvMapToSliceIsSorted(t *testing.T) {
	entries := envMapToSlice(map[string]string{"B": "2", "A": "1"})
	if !reflect.DeepEqual([]string{"A=1", "B=2"}, entries) {
		t.Fatalf("unexpected entries %v", entries)
	}
}

func TestReadEnvFile(t *testing.T) {
	dir := t.TempDir()

	missing, err := readEnvFile(filepath.Join(dir, ".env"))
	if err != nil || len(missing) != 0 {
		t.Fatalf("expected empty map for missing file, got %v %v", missing, err)
	}

	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte(versionEnvVar+"=3.1.4\n"), 0o644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	values, err := readEnvFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if values[versionEnvVar] != "3.1.4" {
		t.Fatalf("unexpected values %v", values)
	}
}

func TestFindRepoRoot(t *testing.T) {
	repoRoot := t.TempDir()
	nested := filepath.Join(repoRoot, "tools", "build")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("failed to create nested dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(repoRoot, "go.mod"), []byte("module example.com/test"), 0o644); err != nil {
		t.Fatalf("failed to write go.mod: %v", err)
	}

	found, err := findRepoRoot(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found != repoRoot {
		t.Fatalf("expected %s, got %s", repoRoot, found)
	}
}

func contains(values []string, expected string) bool {
	for _, value := range values {
		if value == expected {
			return true
		}
	}
	return false
}
