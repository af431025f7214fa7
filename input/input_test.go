package input

import (
	"context"
	"testing"
	"time"

	"periph.io/x/conn/v3/gpio"

	"seedhammer.com/recovery/recovery"
)

// fakePin replays levels, one per edge. A nil level times out.
type fakePin struct {
	levels chan *gpio.Level
	level  gpio.Level
}

func (p *fakePin) WaitForEdge(timeout time.Duration) bool {
	l := <-p.levels
	if l == nil {
		return false
	}
	p.level = *l
	return true
}

func (p *fakePin) Read() gpio.Level {
	return p.level
}

func TestDebounce(t *testing.T) {
	low, high := gpio.Low, gpio.High
	p := &fakePin{levels: make(chan *gpio.Level)}
	ch := make(chan Event, 10)
	go watch(Key5, p, ch)
	// Bounce, settle low, then release.
	for _, l := range []*gpio.Level{&low, &high, &low, nil, &high, nil} {
		p.levels <- l
	}
	// Wait for the watcher to consume the last timeout.
	p.levels <- &high
	want := []Event{{Key5, true}, {Key5, false}}
	for _, w := range want {
		if got := <-ch; got != w {
			t.Errorf("event %+v, want %+v", got, w)
		}
	}
	select {
	case e := <-ch:
		t.Errorf("unexpected event %+v", e)
	default:
	}
}

func TestRecovery(t *testing.T) {
	tests := []struct {
		e    Event
		want recovery.Event
		ok   bool
	}{
		{Event{Key1, true}, recovery.Event{Kind: recovery.DigitEvent, Digit: 1}, true},
		{Event{Key9, true}, recovery.Event{Kind: recovery.DigitEvent, Digit: 9}, true},
		{Event{Key9, false}, recovery.Event{}, false},
		{Event{Backspace, true}, recovery.Event{Kind: recovery.BackspaceEvent}, true},
		{Event{Cancel, true}, recovery.Event{Kind: recovery.CancelEvent}, true},
	}
	for _, test := range tests {
		got, ok := test.e.Recovery()
		if ok != test.ok || got.Kind != test.want.Kind || got.Digit != test.want.Digit {
			t.Errorf("%+v.Recovery() = %+v, %v", test.e, got, ok)
		}
	}
}

func TestKeys(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	in := make(chan Event)
	out := Keys(ctx, in)
	in <- Event{Key3, false}
	in <- Event{Key3, true}
	if ev := <-out; ev.Kind != recovery.DigitEvent || ev.Digit != 3 {
		t.Errorf("event %+v", ev)
	}
	cancel()
	if _, ok := <-out; ok {
		t.Error("channel open after cancel")
	}

	in = make(chan Event)
	out = Keys(context.Background(), in)
	close(in)
	if ev, ok := <-out; ok {
		t.Errorf("event %+v after closing the buttons", ev)
	}
}
