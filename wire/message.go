// Package wire implements the host protocol of the device: CBOR encoded
// messages exchanged over a serial line or a websocket.
package wire

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Type identifies a message.
type Type uint16

const (
	TypeInitialize     Type = 0
	TypeSuccess        Type = 2
	TypeFailure        Type = 3
	TypeFeatures       Type = 17
	TypeCancel         Type = 20
	TypeRecoveryDevice Type = 45
	TypeWordRequest    Type = 46
	TypeWordAck        Type = 47
)

type Message interface {
	MessageType() Type
}

type RecoveryType uint8

const (
	RecoveryScrambled RecoveryType = 0
	RecoveryMatrix    RecoveryType = 1
)

type WordRequestType uint8

const (
	WordRequestPlain   WordRequestType = 0
	WordRequestMatrix9 WordRequestType = 1
	WordRequestMatrix6 WordRequestType = 2
)

type FailureType uint8

const (
	FailureUnexpectedMessage FailureType = 1
	FailureDataError         FailureType = 3
	FailureActionCancelled   FailureType = 4
	FailureProcessError      FailureType = 9
	FailureNotInitialized    FailureType = 11
)

// Initialize resets the device state and asks for Features.
type Initialize struct{}

type Cancel struct{}

type Success struct {
	Message string `cbor:"1,keyasint,omitempty"`
}

type Failure struct {
	Code    FailureType `cbor:"1,keyasint"`
	Message string      `cbor:"2,keyasint,omitempty"`
}

type Features struct {
	Initialized bool   `cbor:"1,keyasint"`
	Imported    bool   `cbor:"2,keyasint,omitempty"`
	Fingerprint uint32 `cbor:"3,keyasint,omitempty"`
	Recovering  bool   `cbor:"4,keyasint,omitempty"`
}

// RecoveryDevice starts a recovery.
type RecoveryDevice struct {
	WordCount       uint32       `cbor:"1,keyasint"`
	EnforceWordlist bool         `cbor:"2,keyasint,omitempty"`
	DryRun          bool         `cbor:"3,keyasint,omitempty"`
	Type            RecoveryType `cbor:"4,keyasint,omitempty"`
}

// WordRequest asks the host for the next word or matrix digit.
type WordRequest struct {
	Type WordRequestType `cbor:"1,keyasint"`
}

// WordAck carries a word, or a matrix digit as its first character.
type WordAck struct {
	Word []byte `cbor:"1,keyasint"`
}

func (Initialize) MessageType() Type     { return TypeInitialize }
func (Cancel) MessageType() Type         { return TypeCancel }
func (Success) MessageType() Type        { return TypeSuccess }
func (Failure) MessageType() Type        { return TypeFailure }
func (Features) MessageType() Type       { return TypeFeatures }
func (RecoveryDevice) MessageType() Type { return TypeRecoveryDevice }
func (WordRequest) MessageType() Type    { return TypeWordRequest }
func (WordAck) MessageType() Type        { return TypeWordAck }

func (f Failure) Error() string {
	return fmt.Sprintf("wire: failure %d: %s", f.Code, f.Message)
}

var ErrUnknownType = errors.New("wire: unknown message type")

func newMessage(t Type) (Message, error) {
	switch t {
	case TypeInitialize:
		return new(Initialize), nil
	case TypeCancel:
		return new(Cancel), nil
	case TypeSuccess:
		return new(Success), nil
	case TypeFailure:
		return new(Failure), nil
	case TypeFeatures:
		return new(Features), nil
	case TypeRecoveryDevice:
		return new(RecoveryDevice), nil
	case TypeWordRequest:
		return new(WordRequest), nil
	case TypeWordAck:
		return new(WordAck), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownType, t)
}

type envelope struct {
	_       struct{} `cbor:",toarray"`
	Type    Type
	Payload cbor.RawMessage
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	dm, err := cbor.DecOptions{
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	}.DecMode()
	if err != nil {
		panic(err)
	}
	encMode, decMode = em, dm
}

// Encode returns the encoding of m.
func Encode(m Message) ([]byte, error) {
	payload, err := encMode.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("wire: encode: %w", err)
	}
	return encMode.Marshal(envelope{Type: m.MessageType(), Payload: payload})
}

// Decode parses an encoded message. The result is a pointer to one of
// the message types.
func Decode(data []byte) (Message, error) {
	var env envelope
	if err := decMode.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("wire: decode: %w", err)
	}
	return decodeEnvelope(env)
}

func decodeEnvelope(env envelope) (Message, error) {
	m, err := newMessage(env.Type)
	if err != nil {
		return nil, err
	}
	if err := decMode.Unmarshal(env.Payload, m); err != nil {
		return nil, fmt.Errorf("wire: decode %d: %w", env.Type, err)
	}
	return m, nil
}

// Conn is a message transport.
type Conn interface {
	Send(m Message) error
	// Receive blocks until a message arrives.
	Receive() (Message, error)
	Close() error
}
