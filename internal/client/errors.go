// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"errors"

	"github.com/MKhiriev/go-settings/internal/app"
)

var (
	ErrUsage         = errors.New("usage error")
	ErrSettingNotSet = errors.New(app.MsgSettingNotSet)
)
