package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. Init configures it from the environment;
// until then it logs text at info level to stdout.
var Log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}

// Init applies LOG_LEVEL (default "info") and LOG_FORMAT ("json" or text).
// Call once from main after the environment is loaded.
func Init() {
	level, err := logrus.ParseLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}
}

// SetOutput redirects all log output (tests use io.Discard).
func SetOutput(w io.Writer) {
	Log.SetOutput(w)
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func entry(tag string) *logrus.Entry {
	return Log.WithField("component", tag)
}

// Debug logs low-level simulation detail (generation summaries, combat results).
func Debug(tag, msg string) {
	entry(tag).Debug(msg)
}

// Info logs a progress message for the given component tag.
func Info(tag, msg string) {
	entry(tag).Info(msg)
}

// Success logs a completed step.
func Success(tag, msg string) {
	entry(tag).WithField("status", "ok").Info(msg)
}

// Warn logs a recoverable problem.
func Warn(tag, msg string) {
	entry(tag).Warn(msg)
}

// Error logs a failure.
func Error(tag, msg string) {
	entry(tag).Error(msg)
}

// Section starts a titled block of Stats lines.
func Section(title string) {
	Log.Info("── " + title + " ──")
}

// Stats logs one labelled value inside a Section.
func Stats(label string, value any) {
	Log.WithField("stat", label).Info(fmt.Sprint(value))
}

// Banner logs the startup line.
func Banner(version string) {
	Log.WithField("version", version).Info("sector-sim starting")
}
