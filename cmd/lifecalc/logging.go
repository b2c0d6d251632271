package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/polumm/lifecalc/internal/calculation"
)

// newLogger builds the process logger, honoring the --verbose flag.
func newLogger(cmd *cobra.Command) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(cmd.ErrOrStderr())
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// engineLogger adapts a logrus logger to the engine's Logger interface.
type engineLogger struct {
	l *logrus.Logger
}

func (e engineLogger) Debugf(format string, args ...any) { e.l.Debugf(format, args...) }
func (e engineLogger) Infof(format string, args ...any)  { e.l.Infof(format, args...) }
func (e engineLogger) Warnf(format string, args ...any)  { e.l.Warnf(format, args...) }
func (e engineLogger) Errorf(format string, args ...any) { e.l.Errorf(format, args...) }

var _ calculation.Logger = engineLogger{}
