// Package store keeps the device mnemonic in a LevelDB database.
package store

import (
	"crypto/subtle"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/fxamacker/cbor/v2"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"go.uber.org/zap"

	"seedhammer.com/recovery/bip39"
)

const recordVersion = 1

var secretKey = []byte("secret/mnemonic")

var ErrCorrupt = errors.New("store: corrupt record")

type record struct {
	_           struct{} `cbor:",toarray"`
	Version     int
	Mnemonic    []byte
	Imported    bool
	Fingerprint uint32
}

// Status describes the stored secret without revealing it.
type Status struct {
	Initialized bool
	// Imported is set when the mnemonic wasn't checked against the word
	// list.
	Imported bool
	// Fingerprint is the bip32 master key fingerprint.
	Fingerprint uint32
}

type Store struct {
	db  *leveldb.DB
	log *zap.Logger
	enc cbor.EncMode
	dec cbor.DecMode
}

// Open opens or creates the database at path.
func Open(path string, log *zap.Logger) (*Store, error) {
	db, err := leveldb.OpenFile(path, &opt.Options{})
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	return newStore(db, log)
}

// OpenMemory returns a store that isn't persisted.
func OpenMemory(log *zap.Logger) (*Store, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	return newStore(db, log)
}

func newStore(db *leveldb.DB, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return nil, err
	}
	dec, err := cbor.DecOptions{
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	}.DecMode()
	if err != nil {
		return nil, err
	}
	return &Store{db: db, log: log, enc: enc, dec: dec}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Persist replaces the stored mnemonic with sentence. The secret is
// marked imported unless enforced.
func (s *Store) Persist(sentence []byte, enforced bool) error {
	mfp, err := MasterFingerprint(sentence)
	if err != nil {
		return err
	}
	r := record{
		Version:     recordVersion,
		Mnemonic:    sentence,
		Imported:    !enforced,
		Fingerprint: mfp,
	}
	data, err := s.enc.Marshal(&r)
	if err != nil {
		return fmt.Errorf("store: encode: %w", err)
	}
	defer clear(data)
	if err := s.db.Put(secretKey, data, &opt.WriteOptions{Sync: true}); err != nil {
		return fmt.Errorf("store: save mnemonic: %w", err)
	}
	s.log.Info("mnemonic stored", zap.Bool("imported", r.Imported), zap.String("fingerprint", fmt.Sprintf("%.8x", mfp)))
	return nil
}

// Matches reports whether sentence equals the stored mnemonic. An empty
// store matches nothing.
func (s *Store) Matches(sentence []byte) (bool, error) {
	r, ok, err := s.load()
	if err != nil || !ok {
		return false, err
	}
	defer clear(r.Mnemonic)
	return subtle.ConstantTimeCompare(r.Mnemonic, sentence) == 1, nil
}

func (s *Store) Status() (Status, error) {
	r, ok, err := s.load()
	if err != nil || !ok {
		return Status{}, err
	}
	clear(r.Mnemonic)
	return Status{
		Initialized: true,
		Imported:    r.Imported,
		Fingerprint: r.Fingerprint,
	}, nil
}

func (s *Store) load() (record, bool, error) {
	var r record
	data, err := s.db.Get(secretKey, nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return r, false, nil
		}
		return r, false, fmt.Errorf("store: load mnemonic: %w", err)
	}
	defer clear(data)
	if err := s.dec.Unmarshal(data, &r); err != nil {
		return r, false, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if r.Version != recordVersion {
		clear(r.Mnemonic)
		return record{}, false, fmt.Errorf("%w: version %d", ErrCorrupt, r.Version)
	}
	return r, true, nil
}

// MasterFingerprint returns the bip32 fingerprint of the master key
// derived from sentence without a passphrase.
func MasterFingerprint(sentence []byte) (uint32, error) {
	seed := bip39.SentenceSeed(sentence, "")
	defer clear(seed)
	mk, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return 0, fmt.Errorf("store: master key: %w", err)
	}
	pub, err := mk.ECPubKey()
	if err != nil {
		return 0, fmt.Errorf("store: master key: %w", err)
	}
	return fingerprint(pub), nil
}

func fingerprint(pub *secp256k1.PublicKey) uint32 {
	return binary.BigEndian.Uint32(btcutil.Hash160(pub.SerializeCompressed())[:4])
}
