// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChopSuffix_Empty(t *testing.T) {
	assert.Empty(t, chopSuffix(nil))
}

func TestChopSuffix_NoCommonWords(t *testing.T) {
	in := []string{"Bahrain", "Monaco", "Japan"}
	assert.Equal(t, in, chopSuffix(in))
}

func TestChopSuffix_OneCommonWordOnly(t *testing.T) {
	in := []string{"Emilia Romagna", "Monaco Grand", "Spanish Grand"}
	// Only one common word; must be at least 2 to chop.
	assert.Equal(t, in, chopSuffix(in))
}

func TestChopSuffix_GrandPrix(t *testing.T) {
	in := []string{"Bahrain Grand Prix", "Saudi Arabian Grand Prix", "Azerbaijan Grand Prix"}
	assert.Equal(t, []string{"Bahrain", "Saudi Arabian", "Azerbaijan"}, chopSuffix(in))
	assert.Equal(t, "Bahrain Grand Prix", in[0], "input is not modified")
}

func TestChopSuffix_Threshold(t *testing.T) {
	in := []string{
		"Bahrain Grand Prix",
		"Monaco Grand Prix",
		"Indianapolis 500",
		"Sprint Race",
	}
	// 2 of 4 (>=50%) share the suffix so those are chopped.
	assert.Equal(t, []string{"Bahrain", "Monaco", "Indianapolis 500", "Sprint Race"}, chopSuffix(in))
}

func TestChopSuffix_BelowThreshold(t *testing.T) {
	in := []string{
		"Bahrain Grand Prix",
		"Indianapolis 500",
		"Sprint Race",
	}
	assert.Equal(t, in, chopSuffix(in))
}

func TestChopSuffix_SuffixOnlyValueKept(t *testing.T) {
	in := []string{"Grand Prix", "Monaco Grand Prix", "Italian Grand Prix"}
	assert.Equal(t, []string{"Grand Prix", "Monaco", "Italian"}, chopSuffix(in))
}
