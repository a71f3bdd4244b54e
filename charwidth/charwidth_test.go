package charwidth

import "testing"

func TestASCIIAlphabet(t *testing.T) {
	for r := 'a'; r <= 'z'; r++ {
		if got := Width(r); got != 1 {
			t.Fatalf("Width(%q) = %d, want 1", r, got)
		}
		if got := Width(r - 'a' + 'A'); got != 1 {
			t.Fatalf("Width(%q) = %d, want 1", r-'a'+'A', got)
		}
	}
}

func TestChineseAlphabet(t *testing.T) {
	for _, r := range "你好世界，。" {
		if got := Width(r); got != 2 {
			t.Fatalf("Width(%q) = %d, want 2", r, got)
		}
	}
}

func TestReservedControlCodes(t *testing.T) {
	if Width(0x0E) != 0 || Width(0x0F) != 0 {
		t.Fatalf("0x0E/0x0F 应为零宽")
	}
	if got := Width(0x0D); got != 1 {
		t.Fatalf("Width(0x0D) = %d, want 1", got)
	}
}

// TestTableBoundaries 逐项检查区间边界：上界本身取本项宽度，上界+1 取下一项宽度。
func TestTableBoundaries(t *testing.T) {
	for i, entry := range table {
		if i > 0 && entry.upper <= table[i-1].upper {
			t.Fatalf("表格上界未严格递增: %d <= %d", entry.upper, table[i-1].upper)
		}
		if entry.upper == 0x0E || entry.upper == 0x0F {
			continue
		}
		if got := Width(entry.upper); got != entry.width {
			t.Fatalf("Width(%d) = %d, want %d", entry.upper, got, entry.width)
		}
		if i+1 < len(table) {
			if got := Width(entry.upper + 1); got != table[i+1].width {
				t.Fatalf("Width(%d) = %d, want %d", entry.upper+1, got, table[i+1].width)
			}
		}
	}
	if last := table[len(table)-1].upper; last < 0x10FFFD {
		t.Fatalf("表格未覆盖完整码位范围: %d", last)
	}
}

func TestOutOfTableDefaultsToOne(t *testing.T) {
	if got := Width(0x10FFFE); got != 1 {
		t.Fatalf("Width(0x10FFFE) = %d, want 1", got)
	}
	if got := Width(0x10FFFF); got != 1 {
		t.Fatalf("Width(0x10FFFF) = %d, want 1", got)
	}
}

// TestBinarySearchMatchesLinearScan 对比二分查找与逐项扫描的结果。
func TestBinarySearchMatchesLinearScan(t *testing.T) {
	linear := func(r rune) int {
		if r == 0x0E || r == 0x0F {
			return 0
		}
		for _, entry := range table {
			if r <= entry.upper {
				return entry.width
			}
		}
		return 1
	}
	for r := rune(0); r <= 0x10FFFF; r += 7 {
		if got, want := Width(r), linear(r); got != want {
			t.Fatalf("Width(%#x) = %d, linear = %d", r, got, want)
		}
	}
}

func TestStringWidth(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"abc你好", 7},
		{"你好世界", 8},
		{"a\x0eb", 2},
	}
	for _, c := range cases {
		if got := StringWidth(c.in); got != c.want {
			t.Fatalf("StringWidth(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestEastAsian(t *testing.T) {
	if got := StringWidthFunc("abc你好", EastAsian); got != 7 {
		t.Fatalf("EastAsian 宽度 = %d, want 7", got)
	}
	// U+0301 组合重音符为零宽
	if got := EastAsian('\u0301'); got != 0 {
		t.Fatalf("EastAsian(U+0301) = %d, want 0", got)
	}
	if got := StringWidthFunc("ab", nil); got != 2 {
		t.Fatalf("nil 宽度函数应退回 Width，got %d", got)
	}
}
