// Package leveldb persists World state as a handful of gob-encoded blobs in
// a single LevelDB database, mirroring the teacher's own world provider: one
// database opened for the process lifetime, errors returned rather than
// panicked, nothing retried internally.
package leveldb

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/df-mc/goleveldb/leveldb"
	"github.com/df-mc/goleveldb/leveldb/opt"

	"github.com/tile-ward/gridworld/worldsim"
)

var (
	keyWorld  = []byte("world")
	keyMap    = []byte("map")
	keyClaims = []byte("claims")
)

// WorldStore persists a worldsim.WorldSave across three LevelDB keys, one
// per logical blob, so a partial write never corrupts the others.
type WorldStore struct {
	db *leveldb.DB
}

// Open opens (creating if absent) the LevelDB database at dir.
func Open(dir string) (*WorldStore, error) {
	db, err := leveldb.OpenFile(dir, &opt.Options{})
	if err != nil {
		return nil, fmt.Errorf("leveldb: open %s: %w", dir, err)
	}
	return &WorldStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *WorldStore) Close() error {
	return s.db.Close()
}

// Save writes save across the "world", "map" and "claims" keys in a single
// batch, so a process crash mid-save never leaves the blobs inconsistent.
func (s *WorldStore) Save(save worldsim.WorldSave) error {
	nowBuf, err := encode(save.Now)
	if err != nil {
		return fmt.Errorf("leveldb: encode now: %w", err)
	}
	mapBuf, err := encode(save.GroundChanges)
	if err != nil {
		return fmt.Errorf("leveldb: encode map: %w", err)
	}
	claimsBuf, err := encode(save.Claims)
	if err != nil {
		return fmt.Errorf("leveldb: encode claims: %w", err)
	}

	batch := new(leveldb.Batch)
	batch.Put(keyWorld, nowBuf)
	batch.Put(keyMap, mapBuf)
	batch.Put(keyClaims, claimsBuf)
	if err := s.db.Write(batch, nil); err != nil {
		return fmt.Errorf("leveldb: write batch: %w", err)
	}
	return nil
}

// Load reconstructs a WorldSave from the three blobs. A missing database
// (fresh world) is reported via leveldb.ErrNotFound on the first read and
// returns a zero-value save with no error, so callers can treat it as a
// fresh world.
func (s *WorldStore) Load() (worldsim.WorldSave, error) {
	var save worldsim.WorldSave

	nowBuf, err := s.db.Get(keyWorld, nil)
	if err == leveldb.ErrNotFound {
		return save, nil
	}
	if err != nil {
		return save, fmt.Errorf("leveldb: get world: %w", err)
	}
	if err := decode(nowBuf, &save.Now); err != nil {
		return save, fmt.Errorf("leveldb: decode now: %w", err)
	}

	mapBuf, err := s.db.Get(keyMap, nil)
	if err != nil && err != leveldb.ErrNotFound {
		return save, fmt.Errorf("leveldb: get map: %w", err)
	}
	if err == nil {
		if err := decode(mapBuf, &save.GroundChanges); err != nil {
			return save, fmt.Errorf("leveldb: decode map: %w", err)
		}
	}

	claimsBuf, err := s.db.Get(keyClaims, nil)
	if err != nil && err != leveldb.ErrNotFound {
		return save, fmt.Errorf("leveldb: get claims: %w", err)
	}
	if err == nil {
		if err := decode(claimsBuf, &save.Claims); err != nil {
			return save, fmt.Errorf("leveldb: decode claims: %w", err)
		}
	}
	return save, nil
}

func encode(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(b []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(b)).Decode(v)
}
