package allergy

import (
	"strings"
	"testing"
)

func TestListText(t *testing.T) {
	text := ListText()
	lines := strings.Split(text, "\n")
	if len(lines) != 19 {
		t.Fatalf("lines = %d, want 19", len(lines))
	}
	if lines[0] != "1. 난류(계란)" {
		t.Errorf("first line = %q", lines[0])
	}
	if lines[18] != "19. 잣" {
		t.Errorf("last line = %q", lines[18])
	}
}

func TestNames(t *testing.T) {
	got := Names([]int{1, 5, 99, 10})
	want := []string{"난류(계란)", "대두", "돼지고기"}
	if len(got) != len(want) {
		t.Fatalf("Names = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
