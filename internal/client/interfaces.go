// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

// Daemon defines the minimal lifecycle contract for runnable daemon
// applications.
type Daemon interface {
	// Run starts the daemon and blocks until exit.
	Run() error
}
