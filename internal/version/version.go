// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package version carries the build version, set at link time with
// -ldflags "-X github.com/staranto/f1ctlgo/internal/version.Version=...".
package version

var Version = "dev"
