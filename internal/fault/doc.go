// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package fault defines the error taxonomy shared by the cache, fetch, parse
// and resolve layers.
package fault
