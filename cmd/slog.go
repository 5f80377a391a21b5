package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/lmittmann/tint"
)

var once sync.Once

// configureLogging installs the default logger: colored tint output with source
// locations at debug level, JSON otherwise.
func configureLogging(level slog.Level) {
	once.Do(func() {
		if level == slog.LevelDebug {
			modulePrefix := getModulePrefix()
			replacer := func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == slog.SourceKey {
					if source, ok := a.Value.Any().(*slog.Source); ok {
						source.File = cleanSourcePath(source.File, modulePrefix)
					}
				}
				if err, ok := a.Value.Any().(error); ok {
					aErr := tint.Err(err)
					aErr.Key = a.Key
					return aErr
				}
				return a
			}

			slog.SetDefault(slog.New(tint.NewHandler(os.Stdout, &tint.Options{
				Level:       slog.LevelDebug,
				TimeFormat:  time.TimeOnly,
				ReplaceAttr: replacer,
				AddSource:   true,
			})))
			slog.Debug("debug logging enabled")
			return
		}

		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	})
}

// getModulePrefix returns "/<last module path element>/", used to trim source paths.
func getModulePrefix() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Path == "" {
		if wd, err := os.Getwd(); err == nil {
			return "/" + filepath.Base(wd) + "/"
		}
		return "/laserwood/"
	}

	parts := strings.Split(info.Main.Path, "/")
	return "/" + parts[len(parts)-1] + "/"
}

func cleanSourcePath(filePath, modulePrefix string) string {
	if _, rel, ok := strings.Cut(filePath, modulePrefix); ok {
		return rel
	}
	if idx := strings.LastIndex(filePath, "/src/"); idx != -1 {
		return filePath[idx+5:]
	}
	return filePath
}
