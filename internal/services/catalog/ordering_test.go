package catalog

import (
	"testing"
)

// applyShift mirrors what the store does inside the reposition transaction:
// siblings inside the window move by Delta, then the moved entry takes its
// target position.
func applyShift(positions map[string]int, movedID string, newPos int, shift Shift) {
	for id, pos := range positions {
		if id == movedID {
			continue
		}
		if pos >= shift.Low && pos <= shift.High {
			positions[id] = pos + shift.Delta
		}
	}
	positions[movedID] = newPos
}

func TestNextPosition_Contiguous(t *testing.T) {
	// Appends into a scope with no deletions yield exactly {0..n-1}
	positions := map[string]int{}
	for i := 0; i < 5; i++ {
		pos := NextPosition(len(positions))
		positions[string(rune('a'+i))] = pos
	}

	seen := map[int]bool{}
	for id, pos := range positions {
		if pos < 0 || pos >= len(positions) {
			t.Errorf("entry %s has out-of-range position %d", id, pos)
		}
		if seen[pos] {
			t.Errorf("position %d assigned twice", pos)
		}
		seen[pos] = true
	}
}

func TestShiftFor(t *testing.T) {
	tests := []struct {
		name      string
		oldPos    int
		newPos    int
		wantOK    bool
		wantShift Shift
	}{
		{
			name:      "move down",
			oldPos:    0,
			newPos:    3,
			wantOK:    true,
			wantShift: Shift{Low: 1, High: 3, Delta: -1},
		},
		{
			name:      "move up",
			oldPos:    3,
			newPos:    1,
			wantOK:    true,
			wantShift: Shift{Low: 1, High: 2, Delta: 1},
		},
		{
			name:      "adjacent swap",
			oldPos:    0,
			newPos:    1,
			wantOK:    true,
			wantShift: Shift{Low: 1, High: 1, Delta: -1},
		},
		{
			name:   "no-op",
			oldPos: 2,
			newPos: 2,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shift, ok := ShiftFor(tt.oldPos, tt.newPos)
			if ok != tt.wantOK {
				t.Fatalf("ShiftFor(%d, %d) ok = %v, want %v", tt.oldPos, tt.newPos, ok, tt.wantOK)
			}
			if ok && shift != tt.wantShift {
				t.Errorf("ShiftFor(%d, %d) = %+v, want %+v", tt.oldPos, tt.newPos, shift, tt.wantShift)
			}
		})
	}
}

func TestShiftFor_PreservesUniqueness(t *testing.T) {
	positions := map[string]int{"a": 0, "b": 1, "c": 2, "d": 3, "e": 4}

	shift, ok := ShiftFor(1, 3)
	if !ok {
		t.Fatal("expected a shift for 1 -> 3")
	}
	applyShift(positions, "b", 3, shift)

	want := map[string]int{"a": 0, "c": 1, "d": 2, "b": 3, "e": 4}
	for id, pos := range want {
		if positions[id] != pos {
			t.Errorf("entry %s at %d, want %d", id, positions[id], pos)
		}
	}
}

func TestShiftFor_RoundTrip(t *testing.T) {
	// Moving an entry and moving it back restores every sibling
	original := map[string]int{"a": 0, "b": 1, "c": 2, "d": 3, "e": 4}

	for _, move := range []struct{ from, to int }{
		{0, 4}, {4, 0}, {1, 3}, {3, 1}, {2, 0},
	} {
		positions := map[string]int{}
		var movedID string
		for id, pos := range original {
			positions[id] = pos
			if pos == move.from {
				movedID = id
			}
		}

		shift, ok := ShiftFor(move.from, move.to)
		if !ok {
			t.Fatalf("expected a shift for %d -> %d", move.from, move.to)
		}
		applyShift(positions, movedID, move.to, shift)

		back, ok := ShiftFor(move.to, move.from)
		if !ok {
			t.Fatalf("expected a shift for %d -> %d", move.to, move.from)
		}
		applyShift(positions, movedID, move.from, back)

		for id, pos := range original {
			if positions[id] != pos {
				t.Errorf("after %d->%d->%d, entry %s at %d, want %d",
					move.from, move.to, move.from, id, positions[id], pos)
			}
		}
	}
}

func TestInBounds(t *testing.T) {
	tests := []struct {
		pos, size int
		want      bool
	}{
		{0, 1, true},
		{2, 3, true},
		{3, 3, false},
		{-1, 3, false},
		{0, 0, false},
	}

	for _, tt := range tests {
		if got := InBounds(tt.pos, tt.size); got != tt.want {
			t.Errorf("InBounds(%d, %d) = %v, want %v", tt.pos, tt.size, got, tt.want)
		}
	}
}
