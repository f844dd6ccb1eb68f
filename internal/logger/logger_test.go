package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func fileOptions(path, level string) Options {
	opts := DefaultOptions()
	opts.Level = level
	opts.File = path
	opts.Console = false
	opts.Compress = false
	return opts
}

func TestLogRotation(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "propgen.log")

	opts := fileOptions(logFile, "debug")
	opts.MaxSizeMB = 1 // smallest lumberjack allows
	opts.MaxBackups = 2
	Init(opts)
	defer Sync()

	long := strings.Repeat("x", 200)
	for i := 0; i < 15000; i++ {
		Sugar.Infof("packed face %d: %s", i, long)
	}
	Sync()

	files, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read temp dir: %v", err)
	}

	rotated := 0
	for _, f := range files {
		if f.Name() == "propgen.log" {
			continue
		}
		if strings.HasPrefix(f.Name(), "propgen-20") && strings.HasSuffix(f.Name(), ".log") {
			rotated++
		}
	}
	if rotated == 0 {
		t.Errorf("no rotated files in %v", files)
	}
}

func TestLogLevels(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{"error", []string{"ERROR"}, []string{"WARN", "INFO", "DEBUG"}},
		{"warn", []string{"ERROR", "WARN"}, []string{"INFO", "DEBUG"}},
		{"info", []string{"ERROR", "WARN", "INFO"}, []string{"DEBUG"}},
		{"debug", []string{"ERROR", "WARN", "INFO", "DEBUG"}, nil},
		{"bogus", []string{"ERROR", "WARN", "INFO"}, []string{"DEBUG"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logFile := filepath.Join(dir, tt.level+".log")
			Init(fileOptions(logFile, tt.level))

			Debug("debug message")
			Info("info message")
			Warn("warn message")
			Error("error message")
			Sync()

			content, err := os.ReadFile(logFile)
			if err != nil {
				t.Fatalf("failed to read log file: %v", err)
			}
			for _, exp := range tt.expected {
				if !strings.Contains(string(content), `"`+exp+`"`) {
					t.Errorf("expected %s in log output", exp)
				}
			}
			for _, exc := range tt.excluded {
				if strings.Contains(string(content), `"`+exc+`"`) {
					t.Errorf("unexpected %s in log output for level %s", exc, tt.level)
				}
			}
		})
	}
}

func TestSetLevelAndNamed(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Level = "warn"
	opts.Stderr = &buf
	Init(opts)

	Named("asset.mug").Info("hidden")
	SetLevel("debug")
	Named("asset.mug").Debug("shown")
	Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info entry logged at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "asset.mug") {
		t.Errorf("named debug entry missing: %q", out)
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.Level != "info" || opts.File != "" || !opts.Console {
		t.Errorf("DefaultOptions() = %+v", opts)
	}
	if opts.MaxSizeMB != 20 || opts.MaxBackups != 3 || opts.MaxAgeDays != 14 || !opts.Compress {
		t.Errorf("DefaultOptions() rotation = %+v", opts)
	}
}
