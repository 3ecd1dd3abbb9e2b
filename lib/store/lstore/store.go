package lstore

import (
	"fmt"
	"io"
	"iter"

	"github.com/ValentinKolb/hmap/lib/db"
	"github.com/ValentinKolb/hmap/lib/store"
	"github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"
)

var log = logger.GetLogger("store")

type storeImpl struct {
	db      db.HashTable
	metrics *metrics.Set
}

// NewLocalStore creates a new local store instance on top of the table created by factory.
// The store is not safe for concurrent use, just like the table it wraps.
func NewLocalStore(factory store.DBFactory) (store.IStore, error) {
	table, err := factory()
	if err != nil {
		return nil, store.NewError(store.RetCInvalidOperation, fmt.Sprintf("could not create table: %v", err))
	}

	return &storeImpl{
		db:      table,
		metrics: metrics.NewSet(),
	}, nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// count increments the operation counter for op
func (s *storeImpl) count(op string) {
	s.metrics.GetOrCreateCounter(fmt.Sprintf(`hmap_ops_total{op=%q}`, op)).Inc()
}

// countMiss increments the miss counter for op
func (s *storeImpl) countMiss(op string) {
	s.metrics.GetOrCreateCounter(fmt.Sprintf(`hmap_misses_total{op=%q}`, op)).Inc()
}

// checkKey rejects keys the command layer must never hand to the table
func checkKey(key string) error {
	if key == "" {
		return store.NewError(store.RetCInvalidOperation, "key must not be empty")
	}
	return nil
}

// checkFeature returns an error if the table does not support feature
func (s *storeImpl) checkFeature(feature db.Feature) error {
	if !s.db.SupportsFeature(feature) {
		return store.NewError(store.RetCUnsupportedOperation, fmt.Sprintf("%s operation is not supported", feature))
	}
	return nil
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *storeImpl) Create(key, value string) (db.Entry, error) {
	if err := s.checkFeature(db.FeatureCreate); err != nil {
		return db.Entry{}, err
	}
	if err := checkKey(key); err != nil {
		return db.Entry{}, err
	}
	s.count("create")

	entry, inserted, err := s.db.Create(key, value)
	if err != nil {
		return db.Entry{}, store.NewError(store.RetCInternalError, err.Error())
	}
	if !inserted {
		log.Debugf("create: key %q already exists in bucket %d, keeping value", key, entry.Bucket)
	}
	return entry, nil
}

func (s *storeImpl) Read(key string) (db.Entry, error) {
	if err := s.checkFeature(db.FeatureRead); err != nil {
		return db.Entry{}, err
	}
	if err := checkKey(key); err != nil {
		return db.Entry{}, err
	}
	s.count("read")

	entry, found := s.db.Read(key)
	if !found {
		s.countMiss("read")
		return db.Entry{}, store.NewError(store.RetCNotFound, fmt.Sprintf("key %q not found", key))
	}
	return entry, nil
}

func (s *storeImpl) Update(key, value string) (db.Entry, error) {
	if err := s.checkFeature(db.FeatureUpdate); err != nil {
		return db.Entry{}, err
	}
	if err := checkKey(key); err != nil {
		return db.Entry{}, err
	}
	s.count("update")

	entry, found := s.db.Update(key, value)
	if !found {
		s.countMiss("update")
		return db.Entry{}, store.NewError(store.RetCNotFound, fmt.Sprintf("key %q not found", key))
	}
	return entry, nil
}

func (s *storeImpl) Delete(key string) error {
	if err := s.checkFeature(db.FeatureDelete); err != nil {
		return err
	}
	if err := checkKey(key); err != nil {
		return err
	}
	s.count("delete")

	if !s.db.Delete(key) {
		s.countMiss("delete")
		log.Debugf("delete: key %q not found, nothing to do", key)
	}
	return nil
}

func (s *storeImpl) List() (iter.Seq[db.Entry], error) {
	if err := s.checkFeature(db.FeatureEnumerate); err != nil {
		return nil, err
	}
	s.count("list")

	return s.db.All(), nil
}

func (s *storeImpl) GetDBInfo() (db.DatabaseInfo, error) {
	if err := s.checkFeature(db.FeatureInfo); err != nil {
		return db.DatabaseInfo{}, err
	}
	return s.db.GetInfo(), nil
}

func (s *storeImpl) WriteMetrics(w io.Writer) error {
	s.metrics.WritePrometheus(w)
	return nil
}

func (s *storeImpl) Close() error {
	if err := s.db.Close(); err != nil {
		return store.NewError(store.RetCInternalError, err.Error())
	}
	return nil
}
