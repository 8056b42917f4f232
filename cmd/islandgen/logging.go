package main

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logDir      = "logs"
	logFileName = "islandgen.log"
	maxLogSize  = 10 // megabytes
)

// setupLogging discards log output unless debug; with debug it writes to a
// size rotated file and never to stdout/stderr, which the preview owns
func setupLogging(debug bool, path string) io.Closer {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}
	if path == "" {
		path = filepath.Join(logDir, logFileName)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxLogSize,
		MaxBackups: 3,
		LocalTime:  true,
	}
	log.SetOutput(lj)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Printf("islandgen: logging to %s", path)
	return lj
}
