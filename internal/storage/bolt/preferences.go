package bolt

import "go.etcd.io/bbolt"

// GetPreference reads a client preference. A missing key is not an error.
func (s *Store) GetPreference(key string) (string, bool, error) {
	var (
		val string
		ok  bool
	)
	err := s.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket([]byte(preferencesBucket)).Get([]byte(key)); v != nil {
			val, ok = string(v), true
		}
		return nil
	})
	return val, ok, err
}

func (s *Store) PutPreference(key, value string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(preferencesBucket)).Put([]byte(key), []byte(value))
	})
}
