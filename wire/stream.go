package wire

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/fxamacker/cbor/v2"
	"github.com/tarm/serial"
)

// Stream sends messages back to back over a byte stream.
type Stream struct {
	rw  io.ReadWriteCloser
	dec *cbor.Decoder
	mu  sync.Mutex
}

func NewStream(rw io.ReadWriteCloser) *Stream {
	return &Stream{
		rw:  rw,
		dec: decMode.NewDecoder(rw),
	}
}

func (s *Stream) Send(m Message) error {
	data, err := Encode(m)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.rw.Write(data)
	return err
}

func (s *Stream) Receive() (Message, error) {
	var env envelope
	if err := s.dec.Decode(&env); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("wire: decode: %w", err)
	}
	return decodeEnvelope(env)
}

func (s *Stream) Close() error {
	return s.rw.Close()
}

// OpenSerial opens a stream on a serial device. An empty dev tries the
// usual USB serial devices of the platform.
func OpenSerial(dev string, baud int) (*Stream, error) {
	var devices []string
	if dev != "" {
		devices = append(devices, dev)
	} else {
		switch runtime.GOOS {
		case "windows":
			devices = append(devices, "COM3")
		case "linux":
			devices = append(devices, "/dev/ttyACM0", "/dev/ttyUSB0", "/dev/ttyUSB1")
		case "darwin":
			devices = append(devices, "/dev/tty.usbmodem1")
		}
	}
	if len(devices) == 0 {
		return nil, errors.New("wire: no serial device specified")
	}
	if baud == 0 {
		baud = 115200
	}
	var firstErr error
	for _, dev := range devices {
		p, err := serial.OpenPort(&serial.Config{Name: dev, Baud: baud})
		if err == nil {
			return NewStream(p), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, fmt.Errorf("wire: %w", firstErr)
}
