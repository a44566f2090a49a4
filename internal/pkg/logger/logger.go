package logger

import (
	"os"

	charmlog "github.com/charmbracelet/log"
)

// CharmLogger routes structured logs to stderr via charmbracelet/log.
type CharmLogger struct {
	l *charmlog.Logger
}

// New creates a CharmLogger. Verbose enables debug output; otherwise only
// warnings and errors are shown so CLI output stays clean.
func New(verbose bool) *CharmLogger {
	l := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: verbose,
	})
	if verbose {
		l.SetLevel(charmlog.DebugLevel)
	} else {
		l.SetLevel(charmlog.WarnLevel)
	}
	return &CharmLogger{l: l}
}

func (c *CharmLogger) Debug(msg string, fields map[string]interface{}) {
	c.l.Debug(msg, flatten(fields)...)
}

func (c *CharmLogger) Info(msg string, fields map[string]interface{}) {
	c.l.Info(msg, flatten(fields)...)
}

func (c *CharmLogger) Warn(msg string, fields map[string]interface{}) {
	c.l.Warn(msg, flatten(fields)...)
}

func (c *CharmLogger) Error(msg string, err error, fields map[string]interface{}) {
	keyvals := flatten(fields)
	if err != nil {
		keyvals = append(keyvals, "error", err)
	}
	c.l.Error(msg, keyvals...)
}

func flatten(fields map[string]interface{}) []interface{} {
	keyvals := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		keyvals = append(keyvals, k, v)
	}
	return keyvals
}
