// Package config provides configuration loading, merging, and validation
// facilities for the sink daemon.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources win; later sources only fill fields still unset):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The main entry point is [GetSinkConfig], which merges all sources into a
// [StructuredConfig] and maps it onto the validated [SinkConfig] view the
// daemon runs with.
package config
