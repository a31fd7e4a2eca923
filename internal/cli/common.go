package cli

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"runtime"
	"time"

	semver "github.com/Masterminds/semver/v3"

	"github.com/klang-lang/klang/internal/vfs"
)

// Build information shared by all tools
const (
	BuildDate = "2025-10-16"
)

// CommitSHA is set during build with -ldflags.
var CommitSHA = "unknown"

// VersionInfo contains version and build information
type VersionInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
	CommitSHA string `json:"commit_sha"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
	Arch      string `json:"arch"`
}

// GetVersionInfo returns structured version information. version must be
// a valid semantic version.
func GetVersionInfo(version string) (*VersionInfo, error) {
	v, err := semver.StrictNewVersion(version)
	if err != nil {
		return nil, fmt.Errorf("invalid tool version %q: %w", version, err)
	}
	return &VersionInfo{
		Version:   v.String(),
		BuildDate: BuildDate,
		CommitSHA: CommitSHA,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS,
		Arch:      runtime.GOARCH,
	}, nil
}

// PrintVersion prints version information in a consistent format
func PrintVersion(w io.Writer, toolName, version string, jsonOutput bool) error {
	info, err := GetVersionInfo(version)
	if err != nil {
		return err
	}

	if jsonOutput {
		data, err := json.MarshalIndent(map[string]interface{}{
			"tool":         toolName,
			"version_info": info,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal version info to JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	fmt.Fprintf(w, "%s version %s\n", toolName, info.Version)
	fmt.Fprintf(w, "Build Date: %s\n", info.BuildDate)
	if info.CommitSHA != "unknown" && info.CommitSHA != "" {
		fmt.Fprintf(w, "Commit: %s\n", info.CommitSHA)
	}
	fmt.Fprintf(w, "Go Version: %s\n", info.GoVersion)
	fmt.Fprintf(w, "Platform: %s/%s\n", info.Platform, info.Arch)
	return nil
}

// Logger provides structured logging for CLI tools
type Logger struct {
	Verbose   bool
	DebugMode bool
	Out       io.Writer
}

// NewLogger creates a new logger instance writing to stdout
func NewLogger(verbose, debug bool) *Logger {
	return &Logger{
		Verbose:   verbose,
		DebugMode: debug,
		Out:       os.Stdout,
	}
}

func (l *Logger) printf(level, format string, args ...interface{}) {
	fmt.Fprintf(l.Out, "[%s] %s: %s\n", level, time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	if l.Verbose {
		l.printf("INFO", format, args...)
	}
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.DebugMode {
		l.printf("DEBUG", format, args...)
	}
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.printf("WARN", format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.printf("ERROR", format, args...)
}

// Config represents the JSON configuration shared by klang and c2k
type Config struct {
	Verbose        bool   `json:"verbose"`
	Debug          bool   `json:"debug"`
	Dictionary     string `json:"dictionary"`
	OutputDir      string `json:"output_dir"`
	MaxOutputBytes int    `json:"max_output_bytes"`
	Jobs           int    `json:"jobs"`
	WatchInterval  string `json:"watch_interval"`
}

// PollInterval parses WatchInterval; empty means 0 (use OS notifications).
func (c *Config) PollInterval() (time.Duration, error) {
	if c.WatchInterval == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.WatchInterval)
	if err != nil {
		return 0, fmt.Errorf("invalid watch_interval: %w", err)
	}
	return d, nil
}

// LoadConfig loads configuration from file
func LoadConfig(fsys vfs.FileSystem, configPath string) (*Config, error) {
	config := &Config{}

	if configPath == "" {
		return config, nil
	}

	data, err := fsys.ReadFile(configPath)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return config, nil // Default config if file doesn't exist
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if config.MaxOutputBytes < 0 || config.Jobs < 0 {
		return nil, fmt.Errorf("failed to parse config file: negative limit")
	}
	if _, err := config.PollInterval(); err != nil {
		return nil, err
	}

	return config, nil
}
