package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/syndtr/goleveldb/leveldb/opt"
	gobip39 "github.com/tyler-smith/go-bip39"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestPersistMatches(t *testing.T) {
	s, err := OpenMemory(nil)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if ok, err := s.Matches([]byte(testMnemonic)); ok || err != nil {
		t.Fatalf("empty store: Matches = %v, %v", ok, err)
	}
	if st, err := s.Status(); st.Initialized || err != nil {
		t.Fatalf("empty store: Status = %+v, %v", st, err)
	}
	if err := s.Persist([]byte(testMnemonic), true); err != nil {
		t.Fatal(err)
	}
	if ok, err := s.Matches([]byte(testMnemonic)); !ok || err != nil {
		t.Errorf("Matches = %v, %v", ok, err)
	}
	if ok, _ := s.Matches([]byte(testMnemonic + " ")); ok {
		t.Error("matched a different sentence")
	}
	st, err := s.Status()
	if err != nil {
		t.Fatal(err)
	}
	// Master fingerprint of the all-zero 12 word mnemonic.
	if want := (Status{Initialized: true, Fingerprint: 0x73c5da0a}); st != want {
		t.Errorf("Status = %+v, want %+v", st, want)
	}
	if err := s.Persist([]byte("not a mnemonic"), false); err != nil {
		t.Fatal(err)
	}
	if st, _ := s.Status(); !st.Imported {
		t.Error("unenforced mnemonic not marked imported")
	}
}

func TestFingerprintMatchesDerivation(t *testing.T) {
	for i := 0; i < 10; i++ {
		ent := make([]byte, 16)
		ent[0] = byte(i)
		m, err := gobip39.NewMnemonic(ent)
		if err != nil {
			t.Fatal(err)
		}
		mfp, err := MasterFingerprint([]byte(m))
		if err != nil {
			t.Fatal(err)
		}
		mk, err := hdkeychain.NewMaster(gobip39.NewSeed(m, ""), &chaincfg.MainNetParams)
		if err != nil {
			t.Fatal(err)
		}
		child, err := mk.Derive(hdkeychain.HardenedKeyStart + 0)
		if err != nil {
			t.Fatal(err)
		}
		if want := child.ParentFingerprint(); mfp != want {
			t.Errorf("fingerprint %.8x, want %.8x", mfp, want)
		}
	}
}

func TestReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db")
	s, err := Open(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Persist([]byte(testMnemonic), true); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	s, err = Open(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if ok, err := s.Matches([]byte(testMnemonic)); !ok || err != nil {
		t.Errorf("after reopen: Matches = %v, %v", ok, err)
	}
}

func TestCorrupt(t *testing.T) {
	s, err := OpenMemory(nil)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if err := s.db.Put(secretKey, []byte{0xff, 0x00}, &opt.WriteOptions{}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Matches([]byte(testMnemonic)); !errors.Is(err, ErrCorrupt) {
		t.Errorf("corrupt record: %v", err)
	}
}
