package store

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/FACorreiaa/statement-converter/pkg/table"
)

// Bucket layout: journal/columns holds the header, journal/rows/<seq> one row each
var (
	bucketJournal = []byte("journal")
	bucketRows    = []byte("rows")
	keyColumns    = []byte("columns")
)

type boltCodec struct{}

func (boltCodec) Read(path string) (*table.Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{ReadOnly: true, Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	var t *table.Table
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketJournal)
		if b == nil {
			return fmt.Errorf("bucket %s not found", bucketJournal)
		}

		var columns []string
		if err := json.Unmarshal(b.Get(keyColumns), &columns); err != nil {
			return fmt.Errorf("failed to decode columns: %w", err)
		}
		t = table.New(columns...)

		rows := b.Bucket(bucketRows)
		if rows == nil {
			return nil
		}
		return rows.ForEach(func(_, v []byte) error {
			var row []string
			if err := json.Unmarshal(v, &row); err != nil {
				return err
			}
			t.Append(row...)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (boltCodec) Write(path string, t *table.Table) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucket(bucketJournal)
		if err != nil {
			return err
		}

		columns, err := json.Marshal(t.Columns)
		if err != nil {
			return err
		}
		if err := b.Put(keyColumns, columns); err != nil {
			return err
		}

		rows, err := b.CreateBucket(bucketRows)
		if err != nil {
			return err
		}
		for _, row := range t.Rows {
			seq, err := rows.NextSequence()
			if err != nil {
				return err
			}
			data, err := json.Marshal(padded(row, len(t.Columns)))
			if err != nil {
				return err
			}
			if err := rows.Put(itob(seq), data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return db.Close()
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
