// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package tui is the interactive season browser behind f1ctl ui.
package tui
