// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the sink daemon runtime.
//
// It wires the relay client, delivery providers, batch sender, diagnostic
// HTTP server, and background workers into a single process lifecycle.
package client
