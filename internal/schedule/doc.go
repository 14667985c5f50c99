// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package schedule resolves race weekends out of a parsed season. Nothing in
// here performs I/O.
package schedule
