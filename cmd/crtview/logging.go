// DESCRIPTION
//   logging.go wires up crtview's file-rotated logger, the same way
//   cmd/rv constructs its logging.Logger around a lumberjack-backed
//   io.Writer.
//
// AUTHOR
//   crtcore contributors

package main

import (
	"github.com/ausocean/utils/logging"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

const (
	logPath      = "crtview.log"
	logMaxSize   = 50 // MB
	logMaxBackup = 3
	logMaxAge    = 14 // days
)

func newLogger(verbosity int8, suppress bool) logging.Logger {
	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	return logging.New(verbosity, fileLog, suppress)
}
