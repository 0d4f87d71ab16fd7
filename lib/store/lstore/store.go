package lstore

import (
	"fmt"
	"github.com/ValentinKolb/nKV/lib/store"
	"github.com/lni/dragonboat/v4/logger"
	"math"
	"sync"
)

var Logger = logger.GetLogger("store")

type storeImpl struct {
	mu    sync.Mutex
	data  map[string]store.Value
	stats store.StatsTable
}

// NewLocalStore creates a new, empty local store instance.
func NewLocalStore() store.IStore {
	return &storeImpl{
		data: make(map[string]store.Value),
	}
}

// record counts a processed command and logs its outcome.
//
// Thread-safety: must be called with s.mu held.
func (s *storeImpl) record(kind store.Kind, key string, err error) {
	s.stats.Record(kind, err == nil)
	if err != nil {
		Logger.Debugf("%s key=%q failed: %v", kind, key, err)
	} else {
		Logger.Debugf("%s key=%q ok", kind, key)
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *storeImpl) Put(key string, value store.Value) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload, err := s.put(store.KindPut, key, value)
	s.record(store.KindPut, key, err)
	return payload, err
}

func (s *storeImpl) PutList(key string, value store.Value) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload, err := s.put(store.KindPutList, key, value)
	s.record(store.KindPutList, key, err)
	return payload, err
}

func (s *storeImpl) Get(key string) (store.Value, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	val, err := s.lookup(store.KindGet, key)
	s.record(store.KindGet, key, err)
	if err != nil {
		return nil, err
	}
	return store.Clone(val), nil
}

func (s *storeImpl) GetList(key string) (store.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.lookupList(store.KindGetList, key)
	s.record(store.KindGetList, key, err)
	if err != nil {
		return nil, err
	}
	return store.Clone(list).(store.List), nil
}

func (s *storeImpl) Increment(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload, err := s.increment(key)
	s.record(store.KindIncrement, key, err)
	return payload, err
}

func (s *storeImpl) Append(key string, value store.Value) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload, err := s.append(key, value)
	s.record(store.KindAppend, key, err)
	return payload, err
}

func (s *storeImpl) Delete(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload, err := s.delete(key)
	s.record(store.KindDelete, key, err)
	return payload, err
}

func (s *storeImpl) Stats() store.StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.stats.Snapshot()
	s.record(store.KindStats, "", nil)
	return snap
}

// --------------------------------------------------------------------------
// Command Implementations (called with s.mu held)
// --------------------------------------------------------------------------

func (s *storeImpl) put(kind store.Kind, key string, value store.Value) (string, error) {
	if err := checkKey(kind, key); err != nil {
		return "", err
	}
	if value == nil {
		return "", store.Errorf(store.RetCMissingValue, "ERROR: Command [%s] requires a value", kind)
	}
	s.data[key] = store.Clone(value)
	return fmt.Sprintf("Key [%s] set to [%s]", key, value), nil
}

func (s *storeImpl) lookup(kind store.Kind, key string) (store.Value, error) {
	if err := checkKey(kind, key); err != nil {
		return nil, err
	}
	val, ok := s.data[key]
	if !ok {
		return nil, store.Errorf(store.RetCKeyNotFound, "ERROR: Key [%s] not found", key)
	}
	return val, nil
}

func (s *storeImpl) lookupList(kind store.Kind, key string) (store.List, error) {
	val, err := s.lookup(kind, key)
	if err != nil {
		return nil, err
	}
	switch v := val.(type) {
	case store.List:
		return v, nil
	case store.Int, store.Text:
		return nil, store.Errorf(store.RetCTypeMismatch, "ERROR: Key [%s] contains non-list value ([%s])", key, v)
	}
	return nil, store.Errorf(store.RetCInternalError, "ERROR: Key [%s] has an invalid value", key)
}

func (s *storeImpl) increment(key string) (string, error) {
	val, err := s.lookup(store.KindIncrement, key)
	if err != nil {
		return "", err
	}
	switch v := val.(type) {
	case store.Int:
		if v == math.MaxInt64 {
			return "", store.Errorf(store.RetCOverflow, "ERROR: Key [%s] contains value ([%s]) that can not be incremented", key, v)
		}
		s.data[key] = v + 1
		return fmt.Sprintf("Key [%s] incremented", key), nil
	case store.Text, store.List:
		return "", store.Errorf(store.RetCTypeMismatch, "ERROR: Key [%s] contains non-int value ([%s])", key, v)
	}
	return "", store.Errorf(store.RetCInternalError, "ERROR: Key [%s] has an invalid value", key)
}

func (s *storeImpl) append(key string, value store.Value) (string, error) {
	list, err := s.lookupList(store.KindAppend, key)
	if err != nil {
		return "", err
	}
	if value == nil {
		return "", store.Errorf(store.RetCMissingValue, "ERROR: Command [%s] requires a value", store.KindAppend)
	}
	s.data[key] = append(list, store.Elements(value)...)
	return fmt.Sprintf("Key [%s] had value [%s] appended", key, value), nil
}

func (s *storeImpl) delete(key string) (string, error) {
	if err := checkKey(store.KindDelete, key); err != nil {
		return "", err
	}
	if _, ok := s.data[key]; !ok {
		return "", store.Errorf(store.RetCKeyNotFound, "ERROR: Key [%s] not found and could not be deleted", key)
	}
	delete(s.data, key)
	return fmt.Sprintf("Key [%s] deleted", key), nil
}

func checkKey(kind store.Kind, key string) error {
	if key == "" {
		return store.Errorf(store.RetCInvalidKey, "ERROR: Command [%s] requires a key", kind)
	}
	return nil
}
