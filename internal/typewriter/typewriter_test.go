package typewriter

import (
	"testing"
	"time"
)

// runToEnd feeds ticks for the current generation until the reveal stops.
func runToEnd(t *testing.T, m Model) Model {
	t.Helper()
	for i := 0; m.Active(); i++ {
		if i > 10000 {
			t.Fatal("reveal did not terminate")
		}
		m, _ = m.Update(TickMsg{Gen: m.Gen()})
	}
	return m
}

func TestStartResetsAndSchedules(t *testing.T) {
	m := New(time.Millisecond)

	m, cmd := m.Start("Resumen X")
	if cmd == nil {
		t.Fatal("Start should schedule a tick")
	}
	if m.View() != "" {
		t.Errorf("reveal should start empty, got %q", m.View())
	}
	if !m.Active() || m.Done() {
		t.Error("reveal should be active and not done")
	}
}

func TestRevealsOneRunePerTick(t *testing.T) {
	m := New(time.Millisecond)
	m, _ = m.Start("abc")

	m, c := m.Update(TickMsg{Gen: m.Gen()})
	if m.View() != "a" {
		t.Errorf("expected %q, got %q", "a", m.View())
	}
	if c == nil {
		t.Error("should reschedule while text remains")
	}

	m, _ = m.Update(TickMsg{Gen: m.Gen()})
	if m.View() != "ab" {
		t.Errorf("expected %q, got %q", "ab", m.View())
	}

	m, c = m.Update(TickMsg{Gen: m.Gen()})
	if m.View() != "abc" {
		t.Errorf("expected %q, got %q", "abc", m.View())
	}
	if c != nil {
		t.Error("should stop scheduling once complete")
	}
	if !m.Done() {
		t.Error("should be done")
	}
}

func TestEventuallyShowsFullText(t *testing.T) {
	m := New(time.Millisecond)
	m, _ = m.Start("Resumen X")
	m = runToEnd(t, m)

	if m.View() != "Resumen X" {
		t.Errorf("expected full text, got %q", m.View())
	}
	if m.Progress() != 1 {
		t.Errorf("expected progress 1, got %v", m.Progress())
	}
}

func TestMultibyteRevealIsRuneWise(t *testing.T) {
	m := New(time.Millisecond)
	m, _ = m.Start("¡Ñú!")

	m, _ = m.Update(TickMsg{Gen: m.Gen()})
	if m.View() != "¡" {
		t.Errorf("expected first rune, got %q", m.View())
	}
	m = runToEnd(t, m)
	if m.View() != "¡Ñú!" {
		t.Errorf("expected full text, got %q", m.View())
	}
}

func TestStaleTickIgnored(t *testing.T) {
	m := New(time.Millisecond)
	m, _ = m.Start("first")
	oldGen := m.Gen()

	m, _ = m.Start("second")
	m, cmd := m.Update(TickMsg{Gen: oldGen})
	if cmd != nil {
		t.Error("stale tick should not reschedule")
	}
	if m.View() != "" {
		t.Errorf("stale tick should not reveal, got %q", m.View())
	}

	m = runToEnd(t, m)
	if m.View() != "second" {
		t.Errorf("expected newer text, got %q", m.View())
	}
}

func TestStopInvalidatesPendingTicks(t *testing.T) {
	m := New(time.Millisecond)
	m, _ = m.Start("hola")
	gen := m.Gen()

	m = m.Stop()
	m, cmd := m.Update(TickMsg{Gen: gen})
	if cmd != nil || m.View() != "" {
		t.Errorf("stopped reveal should ignore ticks, view=%q", m.View())
	}
	if m.Active() {
		t.Error("stopped reveal should be inactive")
	}
}

func TestStartEmptyText(t *testing.T) {
	m := New(0)
	if m.Interval() != DefaultInterval {
		t.Errorf("expected default interval, got %v", m.Interval())
	}
	m, cmd := m.Start("")
	if cmd != nil {
		t.Error("empty text needs no ticks")
	}
	if !m.Done() {
		t.Error("empty text is immediately done")
	}
}

func TestIgnoresOtherMessages(t *testing.T) {
	m := New(time.Millisecond)
	m, _ = m.Start("x")
	m, cmd := m.Update("not a tick")
	if cmd != nil || m.View() != "" {
		t.Error("non-tick messages should be ignored")
	}
}

func TestTickCmdCarriesGeneration(t *testing.T) {
	m := New(time.Millisecond)
	m, cmd := m.Start("x")
	msg := cmd()
	tick, ok := msg.(TickMsg)
	if !ok {
		t.Fatalf("expected TickMsg, got %T", msg)
	}
	if tick.Gen != m.Gen() {
		t.Errorf("tick gen %d, want %d", tick.Gen, m.Gen())
	}
}
