package core

import "testing"

func TestInputFrameSteerDirection(t *testing.T) {
	tests := []struct {
		name     string
		actions  []Action
		expected Direction
		ok       bool
	}{
		{"empty", nil, DirUp, false},
		{"pause only", []Action{ActionPause}, DirUp, false},
		{"single right", []Action{ActionRight}, DirRight, true},
		{"left beats down", []Action{ActionDown, ActionLeft}, DirLeft, true},
		{"up beats all", []Action{ActionRight, ActionUp, ActionDown}, DirUp, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := NewInputFrame()
			for _, a := range tc.actions {
				f.Set(a)
			}
			d, ok := f.SteerDirection()
			if ok != tc.ok || (ok && d != tc.expected) {
				t.Errorf("SteerDirection() = %s, %v; expected %s, %v", d, ok, tc.expected, tc.ok)
			}
		})
	}
}

func TestInputFrameCloneAndClear(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionPause)
	c := f.Clone()
	f.Clear()

	if f.Has(ActionPause) {
		t.Error("Clear should remove actions")
	}
	if !c.Has(ActionPause) {
		t.Error("Clone should be independent of the original")
	}

	var zero InputFrame
	if zero.Has(ActionUp) {
		t.Error("zero frame should have no actions")
	}
	zero.Set(ActionUp)
	if !zero.Has(ActionUp) {
		t.Error("Set on zero frame should allocate")
	}
}
