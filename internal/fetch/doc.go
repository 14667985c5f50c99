// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package fetch performs HTTP GETs against the schedule API through the
// on-disk cache.
package fetch
