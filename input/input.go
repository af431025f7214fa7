// package input implements an input driver for a 3x3 keypad with
// backspace and cancel buttons wired to the GPIO pins of a Raspberry Pi.
package input

import (
	"context"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/host/v3"
	"periph.io/x/host/v3/bcm283x"

	"seedhammer.com/recovery/recovery"
)

type Event struct {
	Button  Button
	Pressed bool
}

type Button int

// Key1 is the bottom left key and Key9 the top right key, as on a
// numeric keypad.
const (
	Key1 Button = iota
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	Backspace
	Cancel
)

const debounceTimeout = 10 * time.Millisecond

// pin is the part of gpio.PinIn used for reading buttons.
type pin interface {
	WaitForEdge(timeout time.Duration) bool
	Read() gpio.Level
}

func Open(ch chan<- Event) error {
	if _, err := host.Init(); err != nil {
		return err
	}
	buttons := []struct {
		Button Button
		Pin    gpio.PinIn
	}{
		{Key1, bcm283x.GPIO5},
		{Key2, bcm283x.GPIO6},
		{Key3, bcm283x.GPIO13},
		{Key4, bcm283x.GPIO19},
		{Key5, bcm283x.GPIO26},
		{Key6, bcm283x.GPIO21},
		{Key7, bcm283x.GPIO20},
		{Key8, bcm283x.GPIO16},
		{Key9, bcm283x.GPIO12},
		{Backspace, bcm283x.GPIO25},
		{Cancel, bcm283x.GPIO24},
	}
	for _, btn := range buttons {
		if err := btn.Pin.In(gpio.PullUp, gpio.BothEdges); err != nil {
			return fmt.Errorf("input: setup %v: %w", btn.Pin, err)
		}
		go watch(btn.Button, btn.Pin, ch)
	}
	return nil
}

// watch sends debounced changes of p to ch. Buttons pull their pin low
// when pressed.
func watch(b Button, p pin, ch chan<- Event) {
	pressed := false
	newPressed := false
	for {
		// Wait forever for event, except if we're waiting for
		// the debounce timeout.
		timeout := debounceTimeout
		if newPressed == pressed {
			timeout = -1
		}
		if p.WaitForEdge(timeout) {
			newPressed = p.Read() == gpio.Low
		} else if newPressed != pressed {
			// Debounce timeout; ok to send event.
			pressed = newPressed
			ch <- Event{Button: b, Pressed: pressed}
		}
	}
}

// Recovery converts a button press to a recovery event. Releases are
// ignored.
func (e Event) Recovery() (recovery.Event, bool) {
	if !e.Pressed {
		return recovery.Event{}, false
	}
	switch {
	case e.Button >= Key1 && e.Button <= Key9:
		return recovery.Event{Kind: recovery.DigitEvent, Digit: int(e.Button-Key1) + 1}, true
	case e.Button == Backspace:
		return recovery.Event{Kind: recovery.BackspaceEvent}, true
	case e.Button == Cancel:
		return recovery.Event{Kind: recovery.CancelEvent}, true
	}
	return recovery.Event{}, false
}

// Keys forwards the recovery events of button presses from in until ctx
// is done or in is closed. The returned channel is closed when Keys stops.
func Keys(ctx context.Context, in <-chan Event) <-chan recovery.Event {
	out := make(chan recovery.Event)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case e, open := <-in:
				if !open {
					return
				}
				ev, ok := e.Recovery()
				if !ok {
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}
