// Package config provides configuration loading, merging, and validation
// facilities for the settings server and its command-line client.
//
// Configuration is assembled from multiple sources. The first source that
// sets a field wins:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults
//
// The main entry points are [GetStructuredConfig] for the server and
// [GetClientConfig] for the client.
package config
