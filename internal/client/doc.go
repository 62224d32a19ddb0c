// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client of the settings server.
//
// Commands:
//
//	get KEY...            print the resolved value of each key as JSON
//	set KEY VALUE         store VALUE (JSON, or a plain string) under KEY
//	forget KEY...         remove the override of each key
//	flush                 clear every writable handler
//	handlers              list the server's handler chain
//	version               print the server version
//	watch KEY...          print every change of the keys until interrupted
//
// All key commands operate in the configured context, or in the global
// scope when none is set.
package client
