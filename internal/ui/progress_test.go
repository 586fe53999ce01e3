package ui

import (
	"fmt"
	"strings"
	"testing"

	"reform/internal/driver"
)

func TestApplyEventTracksFiles(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("reform", []string{"a.c", "b.c"}, events).(*progressModel)

	m.applyEvent(driver.Event{File: "a.c", Phase: driver.PhaseLayout, Status: driver.StatusWorking})
	if got := m.items[0].status; got != "laying out" {
		t.Fatalf("a.c status = %q, want laying out", got)
	}
	m.applyEvent(driver.Event{File: "a.c", Phase: driver.PhaseWrite, Status: driver.StatusDone, Changed: true})
	m.applyEvent(driver.Event{File: "b.c", Phase: driver.PhaseWrite, Status: driver.StatusDone})
	if got := m.items[0].status; got != "formatted" {
		t.Fatalf("a.c status = %q, want formatted", got)
	}
	if got := m.items[1].status; got != "unchanged" {
		t.Fatalf("b.c status = %q, want unchanged", got)
	}

	// неизвестный файл игнорируется
	m.applyEvent(driver.Event{File: "zzz.c", Status: driver.StatusError})

	view := m.View()
	for _, want := range []string{"a.c", "b.c", "formatted", "unchanged"} {
		if !strings.Contains(view, want) {
			t.Errorf("view misses %q:\n%s", want, view)
		}
	}
}

func TestProgressFromPhaseIsMonotonic(t *testing.T) {
	phases := []driver.Phase{driver.PhaseLex, driver.PhaseStructure, driver.PhaseLayout, driver.PhaseAlign, driver.PhaseWrite}
	prev := 0.0
	for _, p := range phases {
		got := progressFromPhase(p)
		if got <= prev || got >= 1 {
			t.Fatalf("progress(%s) = %v after %v", p, got, prev)
		}
		prev = got
	}
}

func TestWindowFollowsWork(t *testing.T) {
	files := make([]string, 40)
	for i := range files {
		files[i] = fmt.Sprintf("f%02d.c", i)
	}
	m := NewProgressModel("reform", files, nil).(*progressModel)
	m.height = 18
	for _, f := range files[:30] {
		m.applyEvent(driver.Event{File: f, Phase: driver.PhaseWrite, Status: driver.StatusDone})
	}
	first, last := m.window()
	if first > 30 || last <= 30 || last-first != 10 {
		t.Fatalf("window [%d,%d) does not show file 30", first, last)
	}
	if got := m.summary(); !strings.Contains(got, "30 unchanged") {
		t.Fatalf("summary = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("got %q", got)
	}
	if got := truncate("a/very/long/path.c", 10); got != "a/very/..." {
		t.Fatalf("got %q", got)
	}
}
