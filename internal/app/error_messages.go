// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// settings server handlers and the command-line client.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the API.
package app

const (
	// MsgInvalidDataProvided is logged when a request body cannot be decoded.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgErrorResolvingSetting hides server-side details of a failed read.
	MsgErrorResolvingSetting = "error resolving setting"

	// MsgErrorStoringSetting hides server-side details of a failed write.
	MsgErrorStoringSetting = "error storing setting"

	// MsgErrorForgettingSetting hides server-side details of a failed forget.
	MsgErrorForgettingSetting = "error forgetting setting"

	// MsgErrorFlushingSettings hides server-side details of a failed flush.
	MsgErrorFlushingSettings = "error flushing settings"

	// MsgErrorWritingResponse is logged when the response body cannot be
	// written.
	MsgErrorWritingResponse = "error writing response"

	// MsgSettingNotSet is printed by the client for a key without value.
	MsgSettingNotSet = "setting is not set"
)
