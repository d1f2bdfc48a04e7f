// Copyright (c) 2026 BlogTruyenTranhAI. All rights reserved.
// Author: ledong198910@gmail.com

/*
Package rank maps accumulated reading experience to a display title.

A reader earns a fixed experience reward per chapter read; their profile
selects one of the named progression systems, and the engine resolves the
highest threshold the accumulated experience clears.

Core Responsibility:

  - Progression: A single fixed 10-step experience curve shared by all systems.
  - Presentation: Per-system title tables (cultivation, martial arts).
  - Totality: The resolver is pure and never fails for any input.
*/
package rank

import "fmt"

// # Rank Systems

// System names a progression table mapping experience thresholds to titles.
type System string

const (
	// SystemNone disables rank display entirely.
	SystemNone System = "none"

	// SystemTuTien is the cultivation progression (Luyện Khí → Tiên Nhân).
	SystemTuTien System = "tu-tien"

	// SystemVoHiep is the martial-arts progression (Nhập Môn → Truyền Thuyết).
	SystemVoHiep System = "vo-hiep"
)

// IsValid reports whether s is a recognised [System] value.
func (s System) IsValid() bool {
	switch s {
	case SystemNone, SystemTuTien, SystemVoHiep:
		return true
	}
	return false
}

// # Experience Curve

// Thresholds is the ascending experience curve shared by every rank system.
// Index i is unlocked once exp >= Thresholds[i].
var Thresholds = [...]int64{0, 100, 300, 600, 1000, 1500, 2100, 2800, 3600, 4500}

// titles holds the per-system display titles, one per threshold step.
var titles = map[System][]string{
	SystemTuTien: {
		"Luyện Khí",
		"Trúc Cơ",
		"Kim Đan",
		"Nguyên Anh",
		"Hóa Thần",
		"Luyện Hư",
		"Hợp Thể",
		"Đại Thừa",
		"Độ Kiếp",
		"Tiên Nhân",
	},
	SystemVoHiep: {
		"Nhập Môn",
		"Tam Lưu",
		"Nhị Lưu",
		"Nhất Lưu",
		"Cao Thủ",
		"Tuyệt Đỉnh Cao Thủ",
		"Tông Sư",
		"Đại Tông Sư",
		"Võ Lâm Minh Chủ",
		"Truyền Thuyết",
	},
}

// # Resolution

// Title resolves the display title for the given experience under a system.
//
// # Contract
//
//   - system == SystemNone → empty title (no rank displayed).
//   - Negative exp is treated as 0.
//   - The highest index i with exp >= Thresholds[i] wins.
//   - If the system has no title for the resolved index (unknown system or a
//     short table), a synthetic "Level {i+1}" label is returned instead.
//
// Title is pure and total: it never fails.
func Title(exp int64, system System) string {
	if system == SystemNone {
		return ""
	}

	level := Level(exp)

	table := titles[system]
	if level >= len(table) {
		return fmt.Sprintf("Level %d", level+1)
	}

	return table[level]
}

// Level resolves the zero-based step index for the given experience.
// It is shared by Title and by progress displays in the shell.
func Level(exp int64) int {
	if exp < 0 {
		exp = 0
	}

	level := 0
	for i, threshold := range Thresholds {
		if exp >= threshold {
			level = i
		}
	}
	return level
}
