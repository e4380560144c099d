package model

import (
	"testing"
	"time"

	"github.com/soocke/cropframe/domain/selection"
)

func TestFlagModel_Set(t *testing.T) {
	var f FlagModel
	if f.On() {
		t.Fatalf("zero value should be off")
	}
	if !f.Set(true) || !f.On() {
		t.Fatalf("expected change to on")
	}
	if f.Set(true) {
		t.Fatalf("setting same value should report no change")
	}
	var nilFlag *FlagModel
	if nilFlag.On() || nilFlag.Set(true) {
		t.Fatalf("nil flag should be inert")
	}
}

func TestSelectionModel_Lifecycle(t *testing.T) {
	m := NewSelectionModel()
	if m.Dragging() {
		t.Fatalf("new model should be idle")
	}
	if _, ok := m.Last(); ok {
		t.Fatalf("new model should have no result")
	}
	m.SetDrag(selection.Drag{}.Down(1, 2))
	if !m.Dragging() {
		t.Fatalf("expected dragging after Down")
	}
	res := selection.Result{Mode: selection.ModeUltra, Label: "x"}
	m.SetLast(res)
	got, ok := m.Last()
	if !ok || got.Label != "x" {
		t.Fatalf("unexpected last result %+v ok=%v", got, ok)
	}
	m.Reset()
	if m.Dragging() {
		t.Fatalf("reset should leave idle")
	}
	if _, ok := m.Last(); ok {
		t.Fatalf("reset should clear result")
	}

	var nilModel *SelectionModel
	nilModel.SetDrag(selection.Drag{}.Down(0, 0))
	if nilModel.Dragging() {
		t.Fatalf("nil model should be idle")
	}
}

func TestStatsModel_CountsAndDuration(t *testing.T) {
	m := NewStatsModel()
	base := time.Unix(0, 0)

	m.BeginDrag(base)
	m.EndDrag(base.Add(2*time.Second), &selection.Result{Mode: selection.ModePro})
	m.BeginDrag(base.Add(5 * time.Second))
	m.EndDrag(base.Add(6*time.Second), &selection.Result{Mode: selection.ModeUltra})
	// aborted gesture adds time but no count
	m.BeginDrag(base.Add(10 * time.Second))
	m.EndDrag(base.Add(11*time.Second), nil)

	pro, ultra, d := m.Values()
	if pro != 1 || ultra != 1 {
		t.Fatalf("expected 1 PRO and 1 Ultra, got %d %d", pro, ultra)
	}
	if d != 4*time.Second {
		t.Fatalf("expected 4s dragging, got %v", d)
	}
	if got := m.Summary(); got != "2 selections (1 PRO, 1 Ultra)" {
		t.Fatalf("unexpected summary %q", got)
	}
}
