package app

import (
	"testing"

	"github.com/decker502/tinyspace/pkg/catalog"
	"github.com/decker502/tinyspace/pkg/config"
	"github.com/decker502/tinyspace/pkg/game"
	"github.com/decker502/tinyspace/pkg/types"
)

func TestLayoutBook(t *testing.T) {
	cat := catalog.Default()
	entries := layoutBook(cat, cat.Buildable())

	if len(entries) != len(cat.Buildable()) {
		t.Fatalf("got %d entries, want %d", len(entries), len(cat.Buildable()))
	}

	for i, e := range entries {
		if e.X < config.SidebarX() || e.X+e.Width > config.ScreenWidth {
			t.Errorf("%v is outside the sidebar horizontally: x=%.1f w=%.1f", e.Kind, e.X, e.Width)
		}
		if e.Y < bookTop || e.Y+e.Height > config.ScreenHeight {
			t.Errorf("%v is outside the screen vertically: y=%.1f h=%.1f", e.Kind, e.Y, e.Height)
		}
		for _, other := range entries[i+1:] {
			overlapX := e.X < other.X+other.Width && other.X < e.X+e.Width
			overlapY := e.Y < other.Y+other.Height && other.Y < e.Y+e.Height
			if overlapX && overlapY {
				t.Errorf("%v overlaps %v", e.Kind, other.Kind)
			}
		}
	}
}

func TestLayoutBookSkipsUnbuildable(t *testing.T) {
	cat := catalog.Default()
	entries := layoutBook(cat, []types.ThingKind{types.Base, types.Iron, types.Sit})
	if len(entries) != 1 || entries[0].Kind != types.Sit {
		t.Fatalf("entries = %+v", entries)
	}
	if entries[0].Name != "Sit" {
		t.Errorf("Name = %q", entries[0].Name)
	}
}

func TestBookHitTest(t *testing.T) {
	cat := catalog.Default()
	entries := layoutBook(cat, cat.Buildable())

	for _, e := range entries {
		kind, ok := bookHitTest(entries, e.X+1, e.Y+1)
		if !ok || kind != e.Kind {
			t.Errorf("click inside %v returned %v, %v", e.Kind, kind, ok)
		}
	}
	if _, ok := bookHitTest(entries, 10, 10); ok {
		t.Error("click on the world view must not hit the book")
	}
}

func TestQueueSlideOffset(t *testing.T) {
	tests := []struct {
		name string
		snap game.Snapshot
		want float64
	}{
		{"还没有取过资源", game.Snapshot{Ticks: 3}, 0},
		{"刚取走", game.Snapshot{HasLastTaken: true, Ticks: 10, LastResourceTick: 10}, config.QueueSpacing},
		{"动画结束", game.Snapshot{HasLastTaken: true, Ticks: 10 + config.QueueAnimationTicks, LastResourceTick: 10}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := queueSlideOffset(tt.snap); got != tt.want {
				t.Errorf("queueSlideOffset() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPalette(t *testing.T) {
	for _, kind := range types.AllThingKinds() {
		if kindColor(kind) == colorEmptyCell {
			t.Errorf("%v has no colour", kind)
		}
	}
	if kindColor(types.Nothing) != colorEmptyCell {
		t.Error("Nothing should use the empty cell colour")
	}
	if _, ok := previewColor(game.PreviewInactive); ok {
		t.Error("inactive preview should not be drawn")
	}
	for _, st := range []game.PreviewStatus{game.PreviewFits, game.PreviewMatches, game.PreviewNoFit, game.PreviewMismatch} {
		if _, ok := previewColor(st); !ok {
			t.Errorf("%v should be drawn", st)
		}
	}
}
