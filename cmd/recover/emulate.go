package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"seedhammer.com/recovery/device"
	"seedhammer.com/recovery/display"
	"seedhammer.com/recovery/matrix"
	"seedhammer.com/recovery/recovery"
	"seedhammer.com/recovery/rng"
	"seedhammer.com/recovery/wire"
)

func emulateCmd(o *options) *cobra.Command {
	var (
		words   int
		mode    string
		enforce bool
		dryRun  bool
		memory  bool
		seed    string
		dump    string
	)
	cmd := &cobra.Command{
		Use:   "emulate",
		Short: "Recover a mnemonic on an emulated device",
		Long: `Emulate the device screen in the terminal. In matrix mode the keys 1-9
select the cell at the same position on a numeric keypad and backspace
undoes the last choice. In scrambled mode type the requested words.

Without a terminal, input is read line by line from standard input.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			rc := &o.cfg.Recovery
			if f.Changed("words") {
				rc.Words = words
			}
			if f.Changed("mode") {
				rc.Mode = mode
			}
			if f.Changed("enforce") {
				rc.EnforceWordlist = enforce
			}
			if f.Changed("dry-run") {
				rc.DryRun = dryRun
			}
			if f.Changed("dump") {
				o.cfg.Display.DumpDir = dump
			}
			cfg, err := o.cfg.RecoveryConfig()
			if err != nil {
				return err
			}
			tty := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
			var console io.Writer = os.Stderr
			if tty {
				console = nil
			}
			log, err := o.openLog(console)
			if err != nil {
				return err
			}
			st, err := o.openStore(memory, log)
			if err != nil {
				return err
			}
			defer st.Close()
			var r matrix.Rand = rng.Device{}
			if seed != "" {
				r = rng.NewSeeded(seed)
			}
			oled := display.New()
			oled.Log = log
			if dir := o.cfg.Display.DumpDir; dir != "" {
				oled.Flush = newDumper(dir, log).dump
			}
			deps := recovery.Deps{Store: st, Rand: r, Log: log}
			if tty {
				return runTUI(cmd.OutOrStdout(), cfg, deps, oled)
			}
			deps.Display = multiDisplay{&textDisplay{w: cmd.OutOrStdout()}, oled}
			return runLines(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cfg, deps)
		},
	}
	f := cmd.Flags()
	f.IntVar(&words, "words", 24, "number of words (12, 18 or 24)")
	f.StringVar(&mode, "mode", "matrix", "entry mode (matrix or scrambled)")
	f.BoolVar(&enforce, "enforce", true, "reject words outside the word list and invalid checksums")
	f.BoolVar(&dryRun, "dry-run", false, "compare with the stored mnemonic instead of storing it")
	f.BoolVar(&memory, "memory", false, "use a store that is discarded on exit")
	f.StringVar(&seed, "seed", "", "seed for reproducible scrambling")
	f.StringVar(&dump, "dump", "", "directory receiving a PNG of every display frame")
	return cmd
}

// runLines runs a session reading one event per line from in.
func runLines(ctx context.Context, in io.Reader, out io.Writer, cfg recovery.Config, deps recovery.Deps) error {
	s, err := recovery.Start(cfg, deps)
	if err != nil {
		return err
	}
	src := &lineSource{
		scanner: bufio.NewScanner(in),
		matrix:  cfg.Mode == recovery.Matrix,
	}
	st, err := recovery.Run(ctx, s, src)
	return report(out, st, err)
}

// report prints the outcome of a finished session.
func report(w io.Writer, st recovery.Status, err error) error {
	switch m := device.Outcome(st, err).(type) {
	case *wire.Success:
		fmt.Fprintln(w, m.Message)
		return nil
	case *wire.Failure:
		return m
	}
	return err
}

// lineSource reads events from lines of text. In matrix mode a line is
// a key digit, "0" or "back" for backspace. "cancel" cancels.
type lineSource struct {
	scanner *bufio.Scanner
	matrix  bool
}

func (l *lineSource) Next(ctx context.Context) (recovery.Event, error) {
	for {
		if err := ctx.Err(); err != nil {
			return recovery.Event{}, err
		}
		if !l.scanner.Scan() {
			if err := l.scanner.Err(); err != nil {
				return recovery.Event{}, err
			}
			return recovery.Event{}, io.ErrUnexpectedEOF
		}
		line := strings.TrimSpace(l.scanner.Text())
		switch {
		case line == "":
			continue
		case line == "cancel":
			return recovery.Event{Kind: recovery.CancelEvent}, nil
		case !l.matrix:
			return recovery.Event{Kind: recovery.WordEvent, Word: []byte(line)}, nil
		case line == "0" || line == "back":
			return recovery.Event{Kind: recovery.BackspaceEvent}, nil
		case len(line) == 1 && line[0] >= '1' && line[0] <= '9':
			return recovery.Event{Kind: recovery.DigitEvent, Digit: int(line[0] - '0')}, nil
		}
		return recovery.Event{Kind: recovery.WordEvent, Word: []byte(line)}, nil
	}
}

func runTUI(out io.Writer, cfg recovery.Config, deps recovery.Deps, oled *display.OLED) error {
	screen := new(screenDisplay)
	deps.Display = multiDisplay{screen, oled}
	s, err := recovery.Start(cfg, deps)
	if err != nil {
		return err
	}
	m := newEmulator(s, screen, deps.Log)
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		s.Abort(err)
		return err
	}
	e := final.(*emulator)
	return report(out, e.status, e.err)
}

// emulator is the terminal user interface of a session.
type emulator struct {
	session *recovery.Session
	screen  *screenDisplay
	input   textinput.Model
	log     *zap.Logger
	status  recovery.Status
	err     error
}

func newEmulator(s *recovery.Session, screen *screenDisplay, log *zap.Logger) *emulator {
	in := textinput.New()
	in.Placeholder = "word"
	in.CharLimit = 16
	in.Width = 16
	in.Prompt = "> "
	in.Focus()
	if log == nil {
		log = zap.NewNop()
	}
	return &emulator{session: s, screen: screen, input: in, log: log}
}

func (m *emulator) matrix() bool {
	return m.session.Config().Mode == recovery.Matrix
}

func (m *emulator) Init() tea.Cmd {
	if m.matrix() {
		return nil
	}
	return textinput.Blink
}

func (m *emulator) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateInput(msg)
	}
	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m.apply(recovery.Event{Kind: recovery.CancelEvent})
	}
	if m.matrix() {
		if key.Type == tea.KeyBackspace {
			return m.apply(recovery.Event{Kind: recovery.BackspaceEvent})
		}
		if s := key.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			return m.apply(recovery.Event{Kind: recovery.DigitEvent, Digit: int(s[0] - '0')})
		}
		return m, nil
	}
	if key.Type == tea.KeyEnter {
		w := []byte(strings.TrimSpace(m.input.Value()))
		m.input.Reset()
		defer clear(w)
		return m.apply(recovery.Event{Kind: recovery.WordEvent, Word: w})
	}
	return m.updateInput(msg)
}

func (m *emulator) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.matrix() {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *emulator) apply(ev recovery.Event) (tea.Model, tea.Cmd) {
	st, err := m.session.Handle(ev)
	m.status, m.err = st, err
	if st != recovery.Pending {
		return m, tea.Quit
	}
	if err != nil {
		m.log.Debug("input ignored", zap.Error(err))
	}
	return m, nil
}

func (m *emulator) View() string {
	cfg := m.session.Config()
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Recovery of %d words", cfg.Words)))
	b.WriteString("\n\n")
	if p := m.screen.prompt; p != nil {
		b.WriteString(p.String())
		b.WriteString("\n\n")
		b.WriteString(m.input.View())
	} else if sc := m.screen.screen; sc != nil {
		b.WriteString(header(sc))
		b.WriteString("\n")
		b.WriteString(renderMatrix(sc, m.screen.highlight))
	}
	b.WriteString("\n")
	if m.status == recovery.Pending && m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	help := "enter: next word • esc: cancel"
	if m.matrix() {
		help = "1-9: select • backspace: undo • esc: cancel"
	}
	b.WriteString(helpStyle.Render(help))
	return b.String()
}
