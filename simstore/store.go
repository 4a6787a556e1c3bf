package simstore

import (
	"context"
	"math"
	"strconv"
	"strings"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

const (
	// GlobalKey holds the player page's per-boss values, keyed by FightKey.
	GlobalKey = "playerSimDps"

	reportKeyPrefix = "simDps_"
)

var (
	json = jsoniter.ConfigCompatibleWithStandardLibrary

	ErrNotNumber = errors.New("sim value is not a number")
)

// ReportKey holds one report's values, keyed by player name.
func ReportKey(code string) string {
	return reportKeyPrefix + code
}

func FightKey(code string, fightID int) string {
	return code + "-" + strconv.Itoa(fightID)
}

// KV is the persistence behind a Store. Values are opaque JSON documents.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Values is one stored map of entry to user-entered sim dps.
type Values map[string]float64

// ParseValues reads a stored map. Anything unreadable is an empty map.
func ParseValues(raw []byte) Values {
	v := make(Values)
	if len(raw) == 0 {
		return v
	}

	var m map[string]interface{}
	if json.Unmarshal(raw, &m) != nil {
		return v
	}
	for key, value := range m {
		switch e := value.(type) {
		case float64:
			v[key] = e
		case string:
			if f, err := strconv.ParseFloat(e, 64); err == nil {
				v[key] = f
			}
		}
	}
	return v
}

func (v Values) Marshal() ([]byte, error) {
	if v == nil {
		v = Values{}
	}
	b, err := json.Marshal(v)
	return b, errors.WithStack(err)
}

// Lookup returns the value for entry, or false when it is unset.
func (v Values) Lookup(entry string) (*float64, bool) {
	f, ok := v[entry]
	if !ok {
		return nil, false
	}
	return &f, true
}

// ParseInput reads a user-entered value. Empty input clears the entry.
func ParseInput(input string) (value float64, clear bool, err error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, true, nil
	}

	f, err := strconv.ParseFloat(input, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false, errors.Wrapf(ErrNotNumber, "%q", input)
	}
	return f, false, nil
}

// Store reads and writes Values maps over a KV. Updates are serialized.
type Store struct {
	kv   KV
	lock sync.Mutex
}

func New(kv KV) *Store {
	return &Store{kv: kv}
}

func (s *Store) Values(ctx context.Context, key string) (Values, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.load(ctx, key)
}

func (s *Store) load(ctx context.Context, key string) (Values, error) {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", key)
	}
	if !ok {
		return make(Values), nil
	}
	return ParseValues(raw), nil
}

// Set stores user input for entry under key. Empty input removes the entry,
// and input that is not a number leaves the store untouched.
func (s *Store) Set(ctx context.Context, key, entry, input string) (Values, error) {
	value, clear, err := ParseInput(input)
	if err != nil {
		return nil, err
	}

	return s.Update(ctx, key, func(v Values) {
		if clear {
			delete(v, entry)
		} else {
			v[entry] = value
		}
	})
}

func (s *Store) Update(ctx context.Context, key string, fn func(Values)) (Values, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	v, err := s.load(ctx, key)
	if err != nil {
		return nil, err
	}

	fn(v)

	raw, err := v.Marshal()
	if err != nil {
		return nil, err
	}
	err = s.kv.Set(ctx, key, raw)
	if err != nil {
		return nil, errors.Wrapf(err, "save %s", key)
	}
	return v, nil
}

func (s *Store) Close() error {
	return s.kv.Close()
}

// Open returns the store backend named by kind: memory, file or sqlite.
func Open(kind, path string) (KV, error) {
	switch kind {
	case "memory":
		return NewMemory(), nil
	case "", "file":
		return NewFile(path)
	case "sqlite":
		return NewSQLite(path)
	}
	return nil, errors.Errorf("unknown sim store %q", kind)
}
