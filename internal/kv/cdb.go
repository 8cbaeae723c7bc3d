package kv

import (
	"github.com/colinmarc/cdb"
)

// cdbStore adapts a github.com/colinmarc/cdb reader to Store.
type cdbStore struct {
	db *cdb.CDB
}

// OpenCDB opens the constant database at path read-only. The file is
// expected to be immutable for the life of the process; multiple
// sessions may share one opened Store.
func OpenCDB(path string) (Store, error) {
	db, err := cdb.Open(path)
	if err != nil {
		return nil, err
	}
	return &cdbStore{db: db}, nil
}

func (s *cdbStore) Get(key string) ([]byte, bool, error) {
	v, err := s.db.Get([]byte(key))
	if err != nil {
		return nil, false, err
	}
	if v == nil {
		return nil, false, nil
	}
	return v, true, nil
}

func (s *cdbStore) Close() error {
	return s.db.Close()
}

// cdbWriter adapts cdb's writer to Writer.
type cdbWriter struct {
	w *cdb.Writer
}

// CreateCDB creates a new constant database at path, truncating any
// existing file. Keys must be written in full before Close; cdb does
// not support incremental reads of a database still being written.
func CreateCDB(path string) (Writer, error) {
	w, err := cdb.Create(path)
	if err != nil {
		return nil, err
	}
	return &cdbWriter{w: w}, nil
}

func (w *cdbWriter) Put(key string, value []byte) error {
	return w.w.Put([]byte(key), value)
}

func (w *cdbWriter) Close() error {
	return w.w.Close()
}
