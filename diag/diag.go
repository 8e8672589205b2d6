/*
	Copyright 2023 Google Inc.
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

// Package diag provides the diagnostic sink shared by the axes of an
// application.  The application owns a single Once and hands it to every
// component that may need to warn.
package diag

import (
	"fmt"
	"log"
	"sync"
)

// Warner is implemented by types that accept degraded-condition reports.
type Warner interface {
	// Warnf logs the message only the first time key is reported, returning
	// true if it was logged.
	Warnf(key, format string, args ...any) bool
	// Logf logs the message unconditionally.
	Logf(format string, args ...any)
}

// Once is a Warner that remembers which keys have already been reported.  It
// is safe for concurrent use.
type Once struct {
	logger *log.Logger

	mu     sync.Mutex
	warned map[string]int
}

// NewOnce returns a new Once logging to logger, or to the standard logger if
// logger is nil.
func NewOnce(logger *log.Logger) *Once {
	if logger == nil {
		logger = log.Default()
	}
	return &Once{
		logger: logger,
		warned: map[string]int{},
	}
}

// Warnf implements Warner.
func (o *Once) Warnf(key, format string, args ...any) bool {
	o.mu.Lock()
	o.warned[key]++
	first := o.warned[key] == 1
	o.mu.Unlock()
	if first {
		o.logger.Printf("warning: "+format, args...)
	}
	return first
}

// Logf implements Warner.
func (o *Once) Logf(format string, args ...any) {
	o.logger.Printf(format, args...)
}

// Occurrences returns how many times key has been reported, logged or not.
func (o *Once) Occurrences(key string) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.warned[key]
}

// String summarizes the reported keys.
func (o *Once) String() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return fmt.Sprintf("%d distinct warnings", len(o.warned))
}
