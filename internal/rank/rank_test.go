// Copyright (c) 2026 BlogTruyenTranhAI. All rights reserved.
// Author: ledong198910@gmail.com

package rank_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ledong198910/blogtruyentranhai/internal/rank"
)

/*
TestTitle_None asserts that the NONE system never displays a rank,
regardless of experience.
*/
func TestTitle_None(t *testing.T) {
	for _, exp := range []int64{-50, 0, 99, 4500, 1 << 40} {
		assert.Empty(t, rank.Title(exp, rank.SystemNone))
	}
}

/*
TestTitle_Thresholds walks the boundary values of the experience curve.
*/
func TestTitle_Thresholds(t *testing.T) {
	tests := []struct {
		name string
		exp  int64
		want string
	}{
		{"negative_treated_as_zero", -10, "Luyện Khí"},
		{"zero", 0, "Luyện Khí"},
		{"below_second_step", 99, "Luyện Khí"},
		{"exactly_second_step", 100, "Trúc Cơ"},
		{"mid_curve", 1500, "Luyện Hư"},
		{"just_below_top", 4499, "Độ Kiếp"},
		{"top_step", 4500, "Tiên Nhân"},
		{"beyond_top", 999999, "Tiên Nhân"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rank.Title(tt.exp, rank.SystemTuTien))
		})
	}
}

/*
TestTitle_UnknownSystem asserts the synthetic "Level {i+1}" fallback when a
system has no title table.
*/
func TestTitle_UnknownSystem(t *testing.T) {
	assert.Equal(t, "Level 1", rank.Title(0, rank.System("bo-dao")))
	assert.Equal(t, "Level 2", rank.Title(100, rank.System("bo-dao")))
	assert.Equal(t, "Level 10", rank.Title(4500, rank.System("bo-dao")))
}

/*
TestTitle_Monotonic asserts the resolved step never decreases as exp grows.
*/
func TestTitle_Monotonic(t *testing.T) {
	previous := -1
	for exp := int64(0); exp <= 5000; exp += 25 {
		level := rank.Level(exp)
		assert.GreaterOrEqual(t, level, previous, "level regressed at exp=%d", exp)
		previous = level
	}
}

/*
TestLevel_Boundaries asserts the step index at the curve boundaries, matching
the titles the same experience resolves to.
*/
func TestLevel_Boundaries(t *testing.T) {
	tests := []struct {
		exp  int64
		want int
	}{
		{-10, 0},
		{0, 0},
		{99, 0},
		{100, 1},
		{4499, 8},
		{4500, 9},
		{999999, 9},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, rank.Level(tt.exp), "exp=%d", tt.exp)
	}
}

/*
TestSystem_IsValid covers the recognised system values.
*/
func TestSystem_IsValid(t *testing.T) {
	assert.True(t, rank.SystemNone.IsValid())
	assert.True(t, rank.SystemTuTien.IsValid())
	assert.True(t, rank.SystemVoHiep.IsValid())
	assert.False(t, rank.System("midgard").IsValid())
}
