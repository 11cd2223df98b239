// Package db provides a SQLite backed metadata store.  Rows of every provider table are kept in a single
// entries table, keyed by collection and row id.
package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/birkland/realpath"
	"github.com/birkland/realpath/metadata"
	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// entry is a single row of a provider table
type entry struct {
	ID          uint   `gorm:"primaryKey"`
	Collection  string `gorm:"not null;uniqueIndex:idx_collection_row"`
	RowID       string `gorm:"column:row_id;not null;uniqueIndex:idx_collection_row"`
	Data        string `gorm:"column:data"`
	DisplayName string `gorm:"column:display_name"`
	MimeType    string `gorm:"column:mime_type"`
}

func (entry) TableName() string {
	return "entries"
}

// provider column -> entries column
var columns = map[string]string{
	realpath.ColumnID:          "row_id",
	realpath.ColumnData:        "data",
	realpath.ColumnDisplayName: "display_name",
	realpath.ColumnMimeType:    "mime_type",
}

// Store is a realpath.Querier backed by a SQLite database
type Store struct {
	db *gorm.DB
}

var _ realpath.Querier = (*Store)(nil)

// Open opens (creating if necessary) the SQLite database at dsn, e.g. a file
// path
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "could not open database %s", dsn)
	}

	if err := db.AutoMigrate(&entry{}); err != nil {
		return nil, errors.Wrapf(err, "could not migrate database %s", dsn)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(err, "could not get database handle")
	}
	return sqlDB.Close()
}

// Import adds every row of the fixture to the store, in a single transaction.
// Only the _id, _data, _display_name and mime_type columns are kept.
func (s *Store) Import(ctx context.Context, fx *metadata.Fixture) error {
	var entries []entry
	for _, t := range fx.Tables {
		for _, row := range t.Rows {
			entries = append(entries, entry{
				Collection:  t.URI,
				RowID:       row.ID(),
				Data:        row[realpath.ColumnData],
				DisplayName: row[realpath.ColumnDisplayName],
				MimeType:    row[realpath.ColumnMimeType],
			})
		}
	}

	if len(entries) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(entries, 100).Error
	})
	return errors.Wrap(err, "could not import fixture")
}

// Query looks up a single column value of the first row matching q.  Rows are
// addressed the same way as in metadata.Fixture.Lookup.
func (s *Store) Query(ctx context.Context, q realpath.Query) (string, error) {
	col, ok := columns[q.Column]
	if !ok {
		return "", fmt.Errorf("unsupported column %s", q.Column)
	}

	sel, err := metadata.ParseSelection(q.Selection)
	if err != nil {
		return "", err
	}
	if len(sel) != len(q.Args) {
		return "", fmt.Errorf("selection has %d placeholders, but %d arguments were given", len(sel), len(q.Args))
	}

	collection, id, err := s.address(ctx, q.Target.String())
	if err != nil {
		return "", err
	}

	tx := s.db.WithContext(ctx).Model(&entry{}).Select(col).Where("collection = ?", collection)
	if id != "" {
		tx = tx.Where("row_id = ?", id)
	}
	for i, c := range sel {
		dbcol, ok := columns[c]
		if !ok {
			return "", fmt.Errorf("unsupported selection column %s", c)
		}
		tx = tx.Where(dbcol+" = ?", q.Args[i])
	}

	rows, err := tx.Order("id").Limit(1).Rows()
	if err != nil {
		return "", errors.Wrapf(err, "could not query %s", q.Target)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return "", errors.Wrapf(err, "could not read result of %s", q.Target)
		}
		return "", errors.Wrapf(realpath.ErrNotFound, "no matching row in %s", q.Target)
	}

	var v sql.NullString
	if err := rows.Scan(&v); err != nil {
		return "", errors.Wrapf(err, "could not read %s of %s", q.Column, q.Target)
	}
	if !v.Valid || v.String == "" {
		return "", errors.Wrapf(realpath.ErrNotFound, "no %s for %s", q.Column, q.Target)
	}

	return v.String, nil
}

// address finds the collection and row id addressed by target: the target
// itself if it is a known collection, otherwise its parent and trailing id.
func (s *Store) address(ctx context.Context, target string) (collection, id string, err error) {
	var n int64
	err = s.db.WithContext(ctx).Model(&entry{}).Where("collection = ?", target).Limit(1).Count(&n).Error
	if err != nil {
		return "", "", errors.Wrapf(err, "could not look up collection %s", target)
	}
	if n > 0 {
		return target, "", nil
	}

	parent, id, ok := metadata.SplitID(target)
	if !ok {
		return "", "", errors.Wrapf(realpath.ErrNotFound, "no table for %s", target)
	}
	return parent, id, nil
}
