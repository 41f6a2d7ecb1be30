// Package logging configures the process-wide logrus logger.
package logging

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

func Setup(level, format string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "bad log level %q", level)
	}
	formatter, err := newFormatter(format)
	if err != nil {
		return err
	}
	log.SetLevel(lvl)
	log.SetFormatter(formatter)
	log.SetOutput(os.Stderr)
	return nil
}

func newFormatter(format string) (log.Formatter, error) {
	switch strings.ToLower(format) {
	case "", FormatText:
		return &log.TextFormatter{FullTimestamp: true}, nil
	case FormatJSON:
		return &log.JSONFormatter{}, nil
	}
	return nil, errors.Errorf("unknown log format %q, want %s or %s", format, FormatText, FormatJSON)
}
