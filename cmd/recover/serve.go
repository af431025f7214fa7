package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"seedhammer.com/recovery/device"
	"seedhammer.com/recovery/display"
	"seedhammer.com/recovery/input"
	"seedhammer.com/recovery/panel"
	"seedhammer.com/recovery/rng"
	"seedhammer.com/recovery/wire"
)

func serveCmd(o *options) *cobra.Command {
	var (
		serialDev string
		baud      int
		listen    string
		keypad    bool
		usePanel  bool
		dump      string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the device, taking recovery requests from a host",
		Long: `Serve recovery requests from a host connected over a serial line or,
with --listen, over websocket. Words entered on the keypad or sent by
the host are stored in the configured store.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			if f.Changed("serial") {
				o.cfg.Serial.Device = serialDev
			}
			if f.Changed("baud") {
				o.cfg.Serial.Baud = baud
			}
			if f.Changed("listen") {
				o.cfg.Websocket.Listen = listen
			}
			if f.Changed("dump") {
				o.cfg.Display.DumpDir = dump
			}
			log, err := o.openLog(os.Stderr)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			st, err := o.openStore(false, log)
			if err != nil {
				return err
			}
			defer st.Close()
			oled := display.New()
			oled.Log = log
			var flushes []func(*image.Gray) error
			if dir := o.cfg.Display.DumpDir; dir != "" {
				flushes = append(flushes, newDumper(dir, log).dump)
			}
			if usePanel {
				p, err := panel.Open()
				if err != nil {
					return err
				}
				defer p.Close()
				flushes = append(flushes, p.Draw)
			}
			oled.Flush = func(img *image.Gray) error {
				var errs []error
				for _, f := range flushes {
					errs = append(errs, f(img))
				}
				return errors.Join(errs...)
			}
			d := &device.Device{
				Display: oled,
				Store:   st,
				Rand:    rng.Device{},
				Log:     log,
			}
			if keypad {
				ch := make(chan input.Event)
				if err := input.Open(ch); err != nil {
					return fmt.Errorf("keypad: %w", err)
				}
				d.Keys = input.Keys(ctx, ch)
			}
			if addr := o.cfg.Websocket.Listen; addr != "" {
				return serveWebsocket(ctx, addr, d, log)
			}
			conn, err := wire.OpenSerial(o.cfg.Serial.Device, o.cfg.Serial.Baud)
			if err != nil {
				return err
			}
			defer conn.Close()
			log.Info("serving serial", zap.String("device", o.cfg.Serial.Device))
			return d.Serve(ctx, conn)
		},
	}
	f := cmd.Flags()
	f.StringVar(&serialDev, "serial", "", "serial device, empty to probe the usual devices")
	f.IntVar(&baud, "baud", 115200, "serial baud rate")
	f.StringVar(&listen, "listen", "", "serve websocket connections on this address instead of serial")
	f.BoolVar(&keypad, "keypad", false, "read key presses from the GPIO keypad")
	f.BoolVar(&usePanel, "panel", false, "show the screens on the SPI OLED panel")
	f.StringVar(&dump, "dump", "", "directory receiving a PNG of every display frame")
	return cmd
}

// serveWebsocket serves one host connection at a time until ctx is
// done.
func serveWebsocket(ctx context.Context, addr string, d *device.Device, log *zap.Logger) error {
	var mu sync.Mutex
	handler := wire.Handler(func(c wire.Conn) {
		mu.Lock()
		defer mu.Unlock()
		if err := d.Serve(ctx, c); err != nil && !errors.Is(err, context.Canceled) {
			log.Warn("host connection", zap.Error(err))
		}
	}, log)
	mux := http.NewServeMux()
	mux.Handle("/", handler)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	errs := make(chan error, 1)
	go func() {
		log.Info("serving websocket", zap.String("addr", addr))
		errs <- srv.ListenAndServe()
	}()
	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil {
		return err
	}
	return nil
}
