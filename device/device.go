// Package device runs the device side of the host protocol: it starts
// recovery sessions on request and feeds them words from the host and
// key presses from the keypad.
package device

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"seedhammer.com/recovery/matrix"
	"seedhammer.com/recovery/recovery"
	"seedhammer.com/recovery/store"
	"seedhammer.com/recovery/wire"
)

// Store is the device secret storage.
type Store interface {
	recovery.Store
	Status() (store.Status, error)
}

type Device struct {
	Display recovery.Display
	Store   Store
	Rand    matrix.Rand
	Log     *zap.Logger
	// Keys delivers local key presses, or nil. Serve stops reading it
	// once it is closed.
	Keys <-chan recovery.Event

	session *recovery.Session
}

type received struct {
	msg wire.Message
	err error
}

// Serve handles messages from conn until the connection fails or ctx is
// done. A recovery in progress is aborted on return. When ctx is done,
// conn is closed to release the pending receive.
func (d *Device) Serve(ctx context.Context, conn wire.Conn) error {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	defer d.abort(recovery.ErrCancelled)
	msgs := make(chan received)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			m, err := conn.Receive()
			select {
			case msgs <- received{m, err}:
			case <-done:
				return
			}
			if err != nil {
				return
			}
		}
	}()
	for {
		select {
		case <-ctx.Done():
			conn.Close()
			return ctx.Err()
		case r := <-msgs:
			if r.err != nil {
				if errors.Is(r.err, io.EOF) {
					return nil
				}
				return r.err
			}
			if err := d.handle(conn, r.msg); err != nil {
				return err
			}
		case ev, ok := <-d.Keys:
			if !ok {
				// The keypad is gone; a nil channel never receives.
				d.Keys = nil
				continue
			}
			if d.session == nil {
				continue
			}
			st, err := d.session.Handle(ev)
			if err := d.report(conn, st, err); err != nil {
				return err
			}
		}
	}
}

func (d *Device) handle(conn wire.Conn, m wire.Message) error {
	switch m := m.(type) {
	case *wire.Initialize:
		d.abort(recovery.ErrReinitialized)
		return d.features(conn)
	case *wire.Cancel:
		d.abort(recovery.ErrCancelled)
		return conn.Send(&wire.Failure{Code: wire.FailureActionCancelled, Message: "Cancelled"})
	case *wire.RecoveryDevice:
		return d.start(conn, m)
	case *wire.WordAck:
		defer clear(m.Word)
		if d.session == nil {
			return conn.Send(&wire.Failure{Code: wire.FailureUnexpectedMessage, Message: "Not in Recovery mode"})
		}
		st, err := d.session.Word(m.Word)
		return d.report(conn, st, err)
	default:
		return conn.Send(&wire.Failure{Code: wire.FailureUnexpectedMessage, Message: "Unexpected message"})
	}
}

func (d *Device) features(conn wire.Conn) error {
	st, err := d.Store.Status()
	if err != nil {
		return err
	}
	return conn.Send(&wire.Features{
		Initialized: st.Initialized,
		Imported:    st.Imported,
		Fingerprint: st.Fingerprint,
		Recovering:  d.session != nil,
	})
}

func (d *Device) start(conn wire.Conn, m *wire.RecoveryDevice) error {
	d.abort(recovery.ErrReinitialized)
	switch m.WordCount {
	case 12, 18, 24:
	default:
		return conn.Send(&wire.Failure{Code: wire.FailureDataError, Message: "Invalid word count (has to be 12, 18 or 24)"})
	}
	st, err := d.Store.Status()
	if err != nil {
		return err
	}
	switch {
	case m.DryRun && !st.Initialized:
		return conn.Send(&wire.Failure{Code: wire.FailureNotInitialized, Message: "Device not initialized"})
	case !m.DryRun && st.Initialized:
		return conn.Send(&wire.Failure{Code: wire.FailureUnexpectedMessage, Message: "Device is already initialized. Use Wipe first."})
	}
	cfg := recovery.Config{
		Words:           int(m.WordCount),
		Mode:            recovery.Scrambled,
		EnforceWordlist: m.EnforceWordlist,
		DryRun:          m.DryRun,
	}
	if m.Type == wire.RecoveryMatrix {
		cfg.Mode = recovery.Matrix
	}
	s, err := recovery.Start(cfg, recovery.Deps{
		Display: d.Display,
		Store:   d.Store,
		Rand:    d.Rand,
		Log:     d.Log,
	})
	if err != nil {
		return conn.Send(&wire.Failure{Code: wire.FailureDataError, Message: err.Error()})
	}
	d.session = s
	return d.request(conn)
}

func (d *Device) request(conn wire.Conn) error {
	t := wire.WordRequestPlain
	switch d.session.Request() {
	case recovery.RequestMatrix9:
		t = wire.WordRequestMatrix9
	case recovery.RequestMatrix6:
		t = wire.WordRequestMatrix6
	}
	return conn.Send(&wire.WordRequest{Type: t})
}

// report sends the outcome of a session transition to the host.
func (d *Device) report(conn wire.Conn, st recovery.Status, err error) error {
	if st == recovery.Pending {
		if err != nil {
			d.Log.Debug("input ignored", zap.Error(err))
		}
		return d.request(conn)
	}
	d.session = nil
	return conn.Send(Outcome(st, err))
}

// Outcome returns the message reporting a finished session.
func Outcome(st recovery.Status, err error) wire.Message {
	switch st {
	case recovery.Recovered:
		return &wire.Success{Message: "Device recovered"}
	case recovery.Match:
		return &wire.Success{Message: "The seed is valid and matches the one in the device"}
	case recovery.NoMatch:
		return &wire.Failure{Code: wire.FailureDataError, Message: "The seed is valid but does not match the one in the device"}
	}
	return failure(err)
}

// failure maps a session error to the message shown on the host.
func failure(err error) *wire.Failure {
	switch {
	case errors.Is(err, recovery.ErrWordNotFound):
		return &wire.Failure{Code: wire.FailureDataError, Message: "Word not found in a wordlist"}
	case errors.Is(err, recovery.ErrInvalidMnemonic):
		return &wire.Failure{Code: wire.FailureDataError, Message: "Invalid seed, are words in correct order?"}
	case errors.Is(err, recovery.ErrStore):
		return &wire.Failure{Code: wire.FailureProcessError, Message: "Failed to store mnemonic"}
	case errors.Is(err, recovery.ErrCancelled), errors.Is(err, recovery.ErrReinitialized):
		return &wire.Failure{Code: wire.FailureActionCancelled, Message: "Cancelled"}
	case errors.Is(err, recovery.ErrNotInRecovery):
		return &wire.Failure{Code: wire.FailureUnexpectedMessage, Message: "Not in Recovery mode"}
	}
	return &wire.Failure{Code: wire.FailureProcessError, Message: fmt.Sprint(err)}
}

func (d *Device) abort(reason error) {
	if d.session != nil {
		d.session.Abort(reason)
		d.session = nil
	}
}
