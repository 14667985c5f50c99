// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package cacheutil keeps raw API responses on disk, one file per key, beneath
// a per-user cache directory.
package cacheutil
