// Copyright 2024 The Erigon Authors
// This file is part of Erigon.
//
// Erigon is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Erigon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Erigon. If not, see <http://www.gnu.org/licenses/>.

// Package obslog reproduces the teacher's levelled, key-value logging call
// convention (log.Warn("[prefix] msg", "key", val)) on top of zap, since the
// teacher's own internal log package is not importable outside its module.
package obslog

import (
	"os"
	"sync"

	"go.uber.org/zap"
)

var (
	mu     sync.Mutex
	logger = newDefault()
)

func newDefault() *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		// Logging must never be the reason the engine can't start.
		return zap.NewNop().Sugar()
	}
	return l.Sugar()
}

// SetVerbose raises or lowers the global log level, mirroring Pars.fVerbose /
// Pars.fVeryVerbose.
func SetVerbose(veryVerbose bool) {
	mu.Lock()
	defer mu.Unlock()
	cfg := zap.NewDevelopmentConfig()
	if veryVerbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	cfg.OutputPaths = []string{"stderr"}
	if l, err := cfg.Build(zap.AddCallerSkip(1)); err == nil {
		logger = l.Sugar()
	}
}

func Debug(msg string, kv ...any) { get().Debugw(msg, kv...) }
func Info(msg string, kv ...any)  { get().Infow(msg, kv...) }
func Warn(msg string, kv ...any)  { get().Warnw(msg, kv...) }
func Error(msg string, kv ...any) { get().Errorw(msg, kv...) }

func get() *zap.SugaredLogger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

func init() {
	if os.Getenv("GIAPDR_QUIET") != "" {
		logger = zap.NewNop().Sugar()
	}
}
