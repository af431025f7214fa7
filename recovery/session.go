// Package recovery reconstructs a mnemonic entered on the device, either
// as typed words asked for in random order or through matrix entry on
// the keypad, and stores or verifies it.
package recovery

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"seedhammer.com/recovery/bip39"
	"seedhammer.com/recovery/matrix"
	"seedhammer.com/recovery/secmem"
)

type Mode int

const (
	// Scrambled asks for typed words in random order, mixed with fake
	// words.
	Scrambled Mode = iota
	// Matrix selects words with scrambled choices on the keypad.
	Matrix
)

func (m Mode) String() string {
	switch m {
	case Scrambled:
		return "scrambled"
	case Matrix:
		return "matrix"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "scrambled", "plain":
		return Scrambled, nil
	case "matrix":
		return Matrix, nil
	}
	return 0, fmt.Errorf("recovery: unknown mode %q", s)
}

type Config struct {
	Words int
	Mode  Mode
	// EnforceWordlist rejects unknown words and invalid checksums.
	EnforceWordlist bool
	// DryRun compares the mnemonic with the stored one instead of
	// storing it.
	DryRun bool
}

// Store holds the device secret.
type Store interface {
	// Persist replaces the stored mnemonic. enforced reports whether the
	// mnemonic was checked against the word list.
	Persist(sentence []byte, enforced bool) error
	// Matches reports whether sentence is the stored mnemonic.
	Matches(sentence []byte) (bool, error)
}

type Deps struct {
	Display Display
	Store   Store
	Rand    matrix.Rand
	// Log is optional.
	Log *zap.Logger
}

type Status int

const (
	// Pending means more input is needed.
	Pending Status = iota
	// Recovered means the mnemonic was stored.
	Recovered
	// Match means a dry run found the stored mnemonic.
	Match
	// NoMatch means a dry run found a different or no stored mnemonic.
	NoMatch
	// Aborted means the session ended with an error.
	Aborted
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Recovered:
		return "recovered"
	case Match:
		return "match"
	case NoMatch:
		return "no match"
	case Aborted:
		return "aborted"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Request is the kind of input a session waits for.
type Request int

const (
	RequestPlain Request = iota
	RequestMatrix9
	RequestMatrix6
)

// scrambledSlots is the number of words asked for in scrambled mode,
// regardless of the mnemonic length.
const scrambledSlots = 24

// Session is a recovery in progress. A Session is not safe for
// concurrent use.
type Session struct {
	cfg     Config
	deps    Deps
	log     *zap.Logger
	active  bool
	words   *secmem.Words
	machine *matrix.Machine

	// Scrambled mode state. order[index] is the position asked for.
	order [scrambledSlots]int
	index int
	fake  string
}

// Start begins a recovery and shows the first screen.
func Start(cfg Config, deps Deps) (*Session, error) {
	switch cfg.Words {
	case 12, 18, 24:
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidWordCount, cfg.Words)
	}
	if cfg.Mode != Scrambled && cfg.Mode != Matrix {
		return nil, fmt.Errorf("recovery: invalid mode %v", cfg.Mode)
	}
	s := &Session{
		cfg:    cfg,
		deps:   deps,
		log:    deps.Log,
		active: true,
		words:  secmem.NewWords(),
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	s.log.Info("recovery started",
		zap.Int("words", cfg.Words),
		zap.Stringer("mode", cfg.Mode),
		zap.Bool("enforceWordlist", cfg.EnforceWordlist),
		zap.Bool("dryRun", cfg.DryRun),
		zap.Bool("locked", s.words.Locked()),
	)
	switch cfg.Mode {
	case Matrix:
		s.machine = matrix.NewMachine(cfg.Words, deps.Rand)
		s.deps.Display.Matrix(s.machine.Screen())
	case Scrambled:
		for i := range s.order {
			if i < cfg.Words {
				s.order[i] = i + 1
			}
		}
		for i := len(s.order) - 1; i >= 1; i-- {
			j := deps.Rand.Intn(i + 1)
			s.order[i], s.order[j] = s.order[j], s.order[i]
		}
		s.nextWord()
	}
	return s, nil
}

// Active reports whether the session accepts input.
func (s *Session) Active() bool {
	return s.active
}

func (s *Session) Config() Config {
	return s.cfg
}

// Request returns the kind of input the session waits for.
func (s *Session) Request() Request {
	switch {
	case s.cfg.Mode == Scrambled:
		return RequestPlain
	case s.machine.State().Level() == matrix.Levels-1:
		return RequestMatrix6
	default:
		return RequestMatrix9
	}
}

// Progress returns the number of words asked for so far.
func (s *Session) Progress() int {
	if s.cfg.Mode == Matrix {
		return s.machine.State().Word()
	}
	return s.index
}

// Digit applies a matrix key press. Digits 1 through 9 are keys, with 1
// in the bottom left corner; 0 undoes the last choice. Other digits are
// ignored.
func (s *Session) Digit(d int) (st Status, err error) {
	if !s.active {
		return Aborted, ErrNotInRecovery
	}
	if s.cfg.Mode != Matrix {
		return Pending, ErrWrongMode
	}
	defer s.guard()
	switch {
	case d == 0:
		s.machine.Back()
		s.deps.Display.Matrix(s.machine.Screen())
		return Pending, nil
	case d < 1 || d > matrix.Keys:
		return Pending, nil
	}
	key := d - 1
	if s.machine.State().Level() == matrix.Levels-1 {
		s.deps.Display.Highlight(s.machine.Screen(), key)
	}
	sel := s.machine.Press(key)
	if sel.Rank >= 0 {
		s.words.Set(sel.Slot, []byte(bip39.Wordlist[sel.Rank]))
		s.log.Debug("word entered", zap.Int("word", sel.Slot+1))
		if sel.Done {
			return s.finish()
		}
	}
	s.deps.Display.Matrix(s.machine.Screen())
	return Pending, nil
}

// Word applies an entered word. In matrix mode the first character is a
// digit key or backspace ('\b').
func (s *Session) Word(w []byte) (Status, error) {
	if !s.active {
		return Aborted, ErrNotInRecovery
	}
	if s.cfg.Mode == Matrix {
		if len(w) == 0 {
			return Pending, nil
		}
		switch c := w[0]; {
		case c == '\b':
			return s.Digit(0)
		case c >= '1' && c <= '9':
			return s.Digit(int(c - '0'))
		}
		return Pending, nil
	}
	defer s.guard()
	if s.cfg.EnforceWordlist {
		if _, ok := bip39.Lookup(w); !ok {
			s.Abort(ErrWordNotFound)
			return Aborted, ErrWordNotFound
		}
	}
	if pos := s.order[s.index]; pos != 0 {
		s.words.Set(pos-1, w)
	}
	s.log.Debug("word entered", zap.Int("index", s.index+1))
	if s.index+1 == scrambledSlots {
		return s.finish()
	}
	s.index++
	s.nextWord()
	return Pending, nil
}

func (s *Session) nextWord() {
	p := WordPrompt{Position: s.order[s.index]}
	s.fake = ""
	if p.Position == 0 {
		s.fake = bip39.Wordlist[s.deps.Rand.Intn(int(bip39.NumWords))]
		p.Fake = s.fake
	}
	s.deps.Display.Word(p)
}

// Abort ends the session and wipes the entered words.
func (s *Session) Abort(reason error) {
	if !s.active {
		return
	}
	s.close()
	s.log.Info("recovery aborted", zap.Error(reason))
}

func (s *Session) close() {
	s.active = false
	if err := s.words.Close(); err != nil {
		s.log.Warn("unlocking words", zap.Error(err))
	}
	if s.machine != nil {
		s.machine.Reset()
	}
	s.order = [scrambledSlots]int{}
	s.index = 0
	s.fake = ""
}

// guard wipes the session if a transition panics.
func (s *Session) guard() {
	if r := recover(); r != nil {
		s.close()
		panic(r)
	}
}

// finish checks the mnemonic and stores or compares it. The session is
// closed on return.
func (s *Session) finish() (Status, error) {
	var sentence secmem.Sentence
	defer sentence.Wipe()
	defer s.close()
	s.words.Join(&sentence, s.cfg.Words)
	if s.cfg.EnforceWordlist && !bip39.ValidSentence(sentence.Bytes()) {
		s.log.Info("recovery failed", zap.Error(ErrInvalidMnemonic))
		return Aborted, ErrInvalidMnemonic
	}
	if s.cfg.DryRun {
		match, err := s.deps.Store.Matches(sentence.Bytes())
		if err != nil {
			return Aborted, fmt.Errorf("%w: %w", ErrStore, err)
		}
		st := NoMatch
		if match {
			st = Match
		}
		s.log.Info("dry run finished", zap.Stringer("status", st))
		return st, nil
	}
	if err := s.deps.Store.Persist(sentence.Bytes(), s.cfg.EnforceWordlist); err != nil {
		s.log.Error("storing mnemonic", zap.Error(err))
		return Aborted, fmt.Errorf("%w: %w", ErrStore, err)
	}
	s.log.Info("device recovered", zap.Bool("imported", !s.cfg.EnforceWordlist))
	return Recovered, nil
}
