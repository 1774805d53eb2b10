package bolt

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"github.com/brk3/habitdash/internal/storage"
	"github.com/brk3/habitdash/pkg/habit"
	"go.etcd.io/bbolt"
)

const (
	habitsBucket      = "habits"
	logsBucket        = "logs"
	settingsBucket    = "settings"
	preferencesBucket = "preferences"

	goalsKey = "goals"

	// Fixed width so keys sort chronologically.
	logTimeLayout = "2006-01-02T15:04:05.000000000Z"
)

type Store struct {
	db *bbolt.DB
}

func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}

	if err := db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{habitsBucket, logsBucket, settingsBucket, preferencesBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func itob(v int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}

func logKey(l habit.HabitLog) []byte {
	return fmt.Appendf(nil, "%s/%s", itob(l.HabitID), l.CompletedAt.UTC().Format(logTimeLayout))
}

func (s *Store) CreateHabit(h habit.Habit) (habit.Habit, error) {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(habitsBucket))
		id, err := bucket.NextSequence()
		if err != nil {
			return err
		}
		h.ID = int64(id)
		val, err := json.Marshal(h)
		if err != nil {
			return err
		}
		return bucket.Put(itob(h.ID), val)
	})
	return h, err
}

func (s *Store) GetHabit(id int64) (habit.Habit, error) {
	var h habit.Habit
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket([]byte(habitsBucket)).Get(itob(id))
		if v == nil {
			return storage.ErrNotFound
		}
		return json.Unmarshal(v, &h)
	})
	return h, err
}

func (s *Store) ListHabits() ([]habit.Habit, error) {
	out := []habit.Habit{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(habitsBucket)).ForEach(func(_, v []byte) error {
			var h habit.Habit
			if err := json.Unmarshal(v, &h); err != nil {
				return err
			}
			out = append(out, h)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) UpdateHabit(h habit.Habit) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(habitsBucket))
		if bucket.Get(itob(h.ID)) == nil {
			return storage.ErrNotFound
		}
		val, err := json.Marshal(h)
		if err != nil {
			return err
		}
		return bucket.Put(itob(h.ID), val)
	})
}

func (s *Store) PutLog(l habit.HabitLog) (habit.HabitLog, error) {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return putLog(tx.Bucket([]byte(logsBucket)), &l)
	})
	return l, err
}

func (s *Store) PutDailyLog(l habit.HabitLog) (habit.HabitLog, error) {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(logsBucket))

		day := l.CompletedAt.UTC().Truncate(24 * time.Hour)
		from := logKey(habit.HabitLog{HabitID: l.HabitID, CompletedAt: habit.NewTimestamp(day)})
		to := logKey(habit.HabitLog{HabitID: l.HabitID, CompletedAt: habit.NewTimestamp(day.Add(24 * time.Hour))})
		if k, _ := bucket.Cursor().Seek(from); k != nil && bytes.Compare(k, to) < 0 {
			return storage.ErrAlreadyLogged
		}
		return putLog(bucket, &l)
	})
	if err != nil {
		return habit.HabitLog{}, err
	}
	return l, nil
}

func putLog(bucket *bbolt.Bucket, l *habit.HabitLog) error {
	id, err := bucket.NextSequence()
	if err != nil {
		return err
	}
	l.ID = int64(id)
	val, err := json.Marshal(l)
	if err != nil {
		return err
	}
	return bucket.Put(logKey(*l), val)
}

// ListLogs returns the habit's logs oldest first.
func (s *Store) ListLogs(habitID int64) ([]habit.HabitLog, error) {
	var out []habit.HabitLog
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket([]byte(logsBucket)).Cursor()
		prefix := append(itob(habitID), '/')
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			var l habit.HabitLog
			if err := json.Unmarshal(v, &l); err != nil {
				return err
			}
			out = append(out, l)
		}
		return nil
	})
	return out, err
}

func (s *Store) ListLogsSince(since time.Time) ([]habit.HabitLog, error) {
	var out []habit.HabitLog
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(logsBucket)).ForEach(func(_, v []byte) error {
			var l habit.HabitLog
			if err := json.Unmarshal(v, &l); err != nil {
				return err
			}
			if !l.CompletedAt.Before(since) {
				out = append(out, l)
			}
			return nil
		})
	})
	return out, err
}

func (s *Store) GetGoals() (string, error) {
	var goals string
	err := s.db.View(func(tx *bbolt.Tx) error {
		goals = string(tx.Bucket([]byte(settingsBucket)).Get([]byte(goalsKey)))
		return nil
	})
	return goals, err
}

func (s *Store) SetGoals(goals string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(settingsBucket)).Put([]byte(goalsKey), []byte(goals))
	})
}

var _ storage.Store = (*Store)(nil)
