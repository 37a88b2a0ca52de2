package output

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/lectern-project/lectern/pkg/listing"
)

const sectionsSchema = `
CREATE TABLE IF NOT EXISTS sections (
	id                 BIGSERIAL PRIMARY KEY,
	source             TEXT NOT NULL,
	term               TEXT NOT NULL,
	scraped_at         TIMESTAMPTZ NOT NULL,
	subject            TEXT NOT NULL,
	number             TEXT NOT NULL,
	section            TEXT NOT NULL,
	call_number        TEXT NOT NULL,
	title              TEXT NOT NULL,
	instructor         TEXT,
	days               TEXT NOT NULL,
	start_time         TEXT,
	end_time           TEXT,
	component          TEXT,
	credit_min         DOUBLE PRECISION,
	credit_max         DOUBLE PRECISION,
	building           TEXT,
	room               TEXT,
	is_subordinate     BOOLEAN NOT NULL,
	parent_course_code TEXT,
	detail_url         TEXT
)`

const insertSection = `
INSERT INTO sections (
	source, term, scraped_at,
	subject, number, section, call_number, title, instructor,
	days, start_time, end_time, component,
	credit_min, credit_max, building, room,
	is_subordinate, parent_course_code, detail_url
) VALUES (
	$1, $2, $3,
	$4, $5, $6, $7, $8, $9,
	$10, $11, $12, $13,
	$14, $15, $16, $17,
	$18, $19, $20
)`

// Store persists batches to Postgres. A batch replaces any earlier rows for
// the same source and term, so re-running a scrape never duplicates rows.
type Store struct {
	db *sqlx.DB
}

// OpenStore connects to Postgres and ensures the sections table exists.
func OpenStore(ctx context.Context, dsn string) (*Store, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, sectionsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensuring sections table: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Replace writes one batch inside a transaction, deleting the prior rows for
// its source and term first.
func (s *Store) Replace(ctx context.Context, batch *Batch) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM sections WHERE source = $1 AND term = $2`,
		batch.Source, batch.Term); err != nil {
		return fmt.Errorf("clearing prior rows: %w", err)
	}

	stmt, err := tx.PreparexContext(ctx, insertSection)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, sec := range batch.Sections {
		if _, err := stmt.ExecContext(ctx, sectionArgs(batch, sec)...); err != nil {
			return fmt.Errorf("inserting %s %s sec %s: %w", sec.Subject, sec.Number, sec.SectionCode, err)
		}
	}
	return tx.Commit()
}

// sectionArgs flattens one section into insert arguments. Nil pointers pass
// through as SQL NULL.
func sectionArgs(batch *Batch, sec *listing.Section) []interface{} {
	return []interface{}{
		batch.Source, batch.Term, batch.ScrapedAt,
		sec.Subject, sec.Number, sec.SectionCode, sec.CallNumber, sec.Title, sec.Instructor,
		strings.Join(sec.Days, ";"), sec.StartTime, sec.EndTime, sec.Component,
		sec.CreditMin, sec.CreditMax, sec.Building, sec.Room,
		sec.Subordinate, sec.ParentCourseCode, sec.DetailURL,
	}
}
