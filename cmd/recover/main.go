// Command recover runs matrix mnemonic recovery, either emulated in the
// terminal or as a device serving a host.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"seedhammer.com/recovery/config"
	"seedhammer.com/recovery/internal/logger"
	"seedhammer.com/recovery/store"
)

// Version is set by the Go linker with -ldflags='-X main.Version=...'.
var Version string

type options struct {
	configFile string
	logLevel   string
	cfg        *config.Config
	closeLog   func() error
}

func main() {
	if err := newRoot().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "recover: %v\n", err)
		os.Exit(2)
	}
}

func newRoot() *cobra.Command {
	o := new(options)
	root := &cobra.Command{
		Use:           "recover",
		Short:         "Matrix mnemonic recovery",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(o.configFile)
			if err != nil {
				return err
			}
			if o.logLevel != "" {
				cfg.Log.Level = o.logLevel
			}
			o.cfg = cfg
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if o.closeLog != nil {
				return o.closeLog()
			}
			return nil
		},
	}
	f := root.PersistentFlags()
	f.StringVarP(&o.configFile, "config", "c", "", "configuration file (.toml, .yaml)")
	f.StringVar(&o.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.AddCommand(
		emulateCmd(o),
		serveCmd(o),
		tableCmd(),
		pathCmd(),
		statusCmd(o),
	)
	return root
}

// openLog builds the logger. Console output goes to console, which may
// be nil.
func (o *options) openLog(console io.Writer) (*zap.Logger, error) {
	log, closeLog, err := logger.New(o.cfg.Log, console)
	if err != nil {
		return nil, err
	}
	o.closeLog = closeLog
	return log.Named("recover"), nil
}

// openStore opens the configured store, or a memory store if memory is
// set.
func (o *options) openStore(memory bool, log *zap.Logger) (*store.Store, error) {
	if memory {
		return store.OpenMemory(log)
	}
	if err := os.MkdirAll(o.cfg.Store.Path, 0o700); err != nil {
		return nil, err
	}
	return store.Open(o.cfg.Store.Path, log)
}
