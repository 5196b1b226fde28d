package packctl

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"packtest/internal/config"
	"packtest/internal/dataset"
	"packtest/internal/logger"
	"packtest/internal/runner"
)

const testProjectName = "clp-package-test"

// newStubControl installs shell-script stand-ins for the package control
// scripts that record their argv and project environment, and returns a
// Control wired to them.
func newStubControl(t *testing.T) (*Control, string) {
	t.Helper()

	pkgDir := t.TempDir()
	argvLog := filepath.Join(pkgDir, "argv.log")
	sbin := filepath.Join(pkgDir, "sbin")
	if err := os.MkdirAll(sbin, 0o755); err != nil {
		t.Fatalf("failed to create sbin: %v", err)
	}

	script := "#!/bin/sh\necho \"$0 $@ project=$COMPOSE_PROJECT_NAME\" >> " + argvLog + "\n"
	for _, name := range []string{"start-clp.sh", "stop-clp.sh", "compress.sh", "decompress.sh", "search.sh"} {
		if err := os.WriteFile(filepath.Join(sbin, name), []byte(script), 0o755); err != nil {
			t.Fatalf("failed to write stub script: %v", err)
		}
	}

	cfg := &config.Config{
		PackageDir:        pkgDir,
		PackageConfigFile: "/tmp/pkg-config.yml",
	}

	sink, err := logger.OpenSink(filepath.Join(pkgDir, "commands.log"))
	if err != nil {
		t.Fatalf("failed to open sink: %v", err)
	}
	t.Cleanup(func() { sink.Close() })

	log := logger.New()
	return New(cfg, runner.New(sink, log, 0), testProjectName, log), argvLog
}

func recordedArgv(t *testing.T, argvLog string) string {
	t.Helper()
	data, err := os.ReadFile(argvLog)
	if err != nil {
		t.Fatalf("failed to read argv log: %v", err)
	}
	return string(data)
}

func TestStartAndStop(t *testing.T) {
	ctl, argvLog := newStubControl(t)
	ctx := context.Background()

	if err := ctl.Start(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ctl.Stop(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	argv := recordedArgv(t, argvLog)
	if !strings.Contains(argv, "start-clp.sh --config /tmp/pkg-config.yml") {
		t.Errorf("start script argv wrong: %q", argv)
	}
	if !strings.Contains(argv, "stop-clp.sh --config /tmp/pkg-config.yml") {
		t.Errorf("stop script argv wrong: %q", argv)
	}
}

func TestControl_ExportsProjectNameToScripts(t *testing.T) {
	ctl, argvLog := newStubControl(t)
	ctx := context.Background()

	if err := ctl.Start(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ctl.Compress(ctx, CompressionJob{DatasetName: "text_multifile", DatasetPath: "/data/text"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Every script must see the instance's project name, otherwise the
	// services it starts are not the ones the validator inspects.
	for _, line := range strings.Split(strings.TrimSpace(recordedArgv(t, argvLog)), "\n") {
		if !strings.Contains(line, "project="+testProjectName) {
			t.Errorf("script invocation missing project name: %q", line)
		}
	}
}

func TestNew_EmptyProjectNameExportsNothing(t *testing.T) {
	ctl, argvLog := newStubControl(t)
	ctl.env = New(ctl.cfg, ctl.r, "", logger.New()).env

	if err := ctl.Start(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(recordedArgv(t, argvLog), "project=\n") {
		t.Errorf("expected empty project environment, got: %q", recordedArgv(t, argvLog))
	}
}

func TestCompress_AppendsOptionsAndPath(t *testing.T) {
	ctl, argvLog := newStubControl(t)

	job := CompressionJob{
		DatasetName: "json_multifile",
		Metadata:    dataset.Metadata{TimestampKey: "timestamp"},
		Options:     []string{"--timestamp-key", "timestamp", "--dataset", "json_multifile"},
		DatasetPath: "/data/json_multifile/logs",
	}
	if err := ctl.Compress(context.Background(), job); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	argv := recordedArgv(t, argvLog)
	want := "compress.sh --config /tmp/pkg-config.yml --timestamp-key timestamp --dataset json_multifile /data/json_multifile/logs"
	if !strings.Contains(argv, want) {
		t.Errorf("compress argv wrong:\ngot:  %q\nwant substring: %q", argv, want)
	}
}

func TestDecompress_ExtractsIntoDir(t *testing.T) {
	ctl, argvLog := newStubControl(t)

	if err := ctl.Decompress(context.Background(), "/scratch/extract"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	argv := recordedArgv(t, argvLog)
	want := "decompress.sh --config /tmp/pkg-config.yml x --extraction-dir /scratch/extract"
	if !strings.Contains(argv, want) {
		t.Errorf("decompress argv wrong:\ngot:  %q\nwant substring: %q", argv, want)
	}
}

func TestSearch_ReturnsStdout(t *testing.T) {
	ctl, _ := newStubControl(t)

	// Replace the search stub with one that emits a known result.
	searchScript := filepath.Join(ctl.cfg.PackageDir, "sbin", "search.sh")
	if err := os.WriteFile(searchScript, []byte("#!/bin/sh\necho 'a matching line'\n"), 0o755); err != nil {
		t.Fatalf("failed to write search stub: %v", err)
	}

	cj := &CompressionJob{DatasetName: "text_multifile", DatasetPath: "/data/text"}
	out, err := ctl.Search(context.Background(), SearchJob{
		Name:        "basic",
		Compression: cj,
		Options:     []string{"--raw"},
		Query:       "Saturn",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "a matching line\n" {
		t.Errorf("unexpected search output: %q", out)
	}
}

func TestStart_FailurePropagates(t *testing.T) {
	ctl, _ := newStubControl(t)

	startScript := filepath.Join(ctl.cfg.PackageDir, "sbin", "start-clp.sh")
	if err := os.WriteFile(startScript, []byte("#!/bin/sh\nexit 1\n"), 0o755); err != nil {
		t.Fatalf("failed to write failing stub: %v", err)
	}

	if err := ctl.Start(context.Background()); err == nil {
		t.Fatal("expected error from failing start script")
	}
}
