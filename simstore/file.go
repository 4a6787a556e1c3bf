package simstore

import (
	"context"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"sync"

	"github.com/dimchansky/utfbom"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// File keeps one JSON document per key under dir. File names are hashes of
// the key so report codes and player names never need escaping.
type File struct {
	dir string

	savingLock sync.RWMutex
	saving     map[fileKey]struct{}
	lock       sync.RWMutex
}

type fileKey struct {
	h64  uint64
	h64a uint64
}

type fileEnvelope struct {
	Key   string              `json:"key"`
	Value jsoniter.RawMessage `json:"value"`
}

func NewFile(dir string) (*File, error) {
	err := os.MkdirAll(dir, 0700)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &File{
		dir:    dir,
		saving: make(map[fileKey]struct{}, 8),
	}, nil
}

func hashKey(key string) fileKey {
	h := fnv.New64a()
	fmt.Fprint(h, key)

	ha := fnv.New64()
	fmt.Fprint(ha, key)

	return fileKey{
		h64:  h.Sum64(),
		h64a: ha.Sum64(),
	}
}

func (f *File) path(h fileKey) string {
	return filepath.Join(f.dir, fmt.Sprintf("%016x-%016x.json", h.h64, h.h64a))
}

func (f *File) Get(ctx context.Context, key string) ([]byte, bool, error) {
	h := hashKey(key)

	f.lock.RLock()
	defer f.lock.RUnlock()

	fs, err := os.Open(f.path(h))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, errors.WithStack(err)
	}
	defer fs.Close()

	var env fileEnvelope
	err = jsoniter.NewDecoder(utfbom.SkipOnly(fs)).Decode(&env)
	if err != nil {
		// hand-edited or truncated file, treat as unset
		return nil, false, nil
	}
	if env.Key != key {
		return nil, false, nil
	}
	return []byte(env.Value), true, nil
}

func (f *File) Set(ctx context.Context, key string, value []byte) error {
	h := hashKey(key)

	f.savingLock.Lock()
	if _, ok := f.saving[h]; ok {
		f.savingLock.Unlock()
		return errors.Errorf("%s is already being saved", key)
	}
	f.saving[h] = struct{}{}
	f.savingLock.Unlock()

	defer func() {
		f.savingLock.Lock()
		delete(f.saving, h)
		f.savingLock.Unlock()
	}()

	fsPath := f.path(h)
	tmpPath := fsPath + ".tmp"

	fs, err := os.Create(tmpPath)
	if err != nil {
		return errors.WithStack(err)
	}

	err = jsoniter.NewEncoder(fs).Encode(fileEnvelope{Key: key, Value: value})
	if err != nil {
		fs.Close()
		os.Remove(tmpPath)
		return errors.WithStack(err)
	}
	err = fs.Close()
	if err != nil {
		os.Remove(tmpPath)
		return errors.WithStack(err)
	}

	f.lock.Lock()
	defer f.lock.Unlock()

	return errors.WithStack(os.Rename(tmpPath, fsPath))
}

func (f *File) Close() error {
	return nil
}
