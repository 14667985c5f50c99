// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package ergast decodes the Ergast-format season and circuit documents. The
// JSON key names (MRData, RaceTable, Races, CircuitTable, Circuits, ...) are a
// fixed external contract.
package ergast
