package recovery

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidWordCount = errors.New("recovery: word count must be 12, 18 or 24")
	ErrInvalidMnemonic  = errors.New("recovery: invalid seed, are words in correct order?")
	ErrWordNotFound     = fmt.Errorf("%w: word not found in a wordlist", ErrInvalidMnemonic)
	ErrCancelled        = errors.New("recovery: cancelled")
	ErrReinitialized    = errors.New("recovery: reinitialized")
	ErrNotInRecovery    = errors.New("recovery: not in recovery mode")
	ErrWrongMode        = errors.New("recovery: input doesn't match the recovery mode")
	ErrStore            = errors.New("recovery: failed to store mnemonic")
)
