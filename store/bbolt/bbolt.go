// Package bbolt implements store.Store on top of go.etcd.io/bbolt,
// adapted from the teacher's store/bbolt package.
package bbolt

import (
	"bytes"
	"errors"

	bolt "go.etcd.io/bbolt"

	"github.com/babylonchain/avaproof/store"
)

// BboltStore implements store.Store.
type BboltStore struct {
	db         *bolt.DB
	bucketName string
}

// Options are the options for the bbolt store.
type Options struct {
	// BucketName is the bucket key/value pairs are stored under.
	// Optional ("proofs" by default).
	BucketName string
	// Path of the DB file. Optional ("avaproof.db" by default).
	Path string
}

// DefaultOptions is an Options object with default values.
var DefaultOptions = Options{
	BucketName: "proofs",
	Path:       "avaproof.db",
}

// New opens (creating if absent) a bbolt-backed proof registry.
//
// bbolt takes an exclusive write lock on the database file, so it
// cannot be shared by multiple processes; the caller must call Close
// when done.
func New(options Options) (*BboltStore, error) {
	if options.BucketName == "" {
		options.BucketName = DefaultOptions.BucketName
	}
	if options.Path == "" {
		options.Path = DefaultOptions.Path
	}

	db, err := bolt.Open(options.Path, 0600, nil)
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(options.BucketName))
		return err
	})
	if err != nil {
		return nil, err
	}

	return &BboltStore{db: db, bucketName: options.BucketName}, nil
}

func (s *BboltStore) Put(k, v []byte) error {
	if err := checkKeyAndValue(k, v); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(s.bucketName)).Put(k, v)
	})
}

func (s *BboltStore) Get(k []byte) ([]byte, error) {
	if err := checkKey(k); err != nil {
		return nil, err
	}

	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(s.bucketName)).Get(k)
		if v == nil {
			return errors.New("key not found")
		}
		data = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *BboltStore) Exists(k []byte) (bool, error) {
	if err := checkKey(k); err != nil {
		return false, err
	}

	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		found = tx.Bucket([]byte(s.bucketName)).Get(k) != nil
		return nil
	})
	return found, err
}

func (s *BboltStore) List(keyPrefix []byte) ([]*store.KVPair, error) {
	var kvList []*store.KVPair

	err := s.db.View(func(tx *bolt.Tx) error {
		cursor := tx.Bucket([]byte(s.bucketName)).Cursor()

		var key, v []byte
		if len(keyPrefix) == 0 {
			key, v = cursor.First()
		} else {
			key, v = cursor.Seek(keyPrefix)
		}

		for ; key != nil && bytes.HasPrefix(key, keyPrefix); key, v = cursor.Next() {
			kvList = append(kvList, &store.KVPair{
				Key:   append([]byte(nil), key...),
				Value: append([]byte(nil), v...),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return kvList, nil
}

func (s *BboltStore) Delete(k []byte) error {
	if err := checkKey(k); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(s.bucketName)).Delete(k)
	})
}

func (s *BboltStore) Close() error {
	return s.db.Close()
}

func checkKey(k []byte) error {
	if len(k) == 0 {
		return errors.New("the key should not be empty")
	}
	return nil
}

func checkKeyAndValue(k, v []byte) error {
	if err := checkKey(k); err != nil {
		return err
	}
	if v == nil {
		return errors.New("the value should not be nil")
	}
	return nil
}
