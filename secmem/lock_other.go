//go:build !linux

package secmem

import "errors"

var errUnsupported = errors.New("secmem: memory locking not supported")

func lock(b []byte) error {
	return errUnsupported
}

func unlock(b []byte) error {
	return nil
}
