package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"lecturenotes/internal/domain"
	"lecturenotes/internal/session"
)

var _ session.Store = (*Database)(nil)

func (d *Database) Get(ctx context.Context, id string) (*domain.Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, session.ErrNotFound
	}

	query := `select id, transcript_name, transcript, transcript_hash, summary, pdf_name, updated_at
	from sessions
	where id = ?`

	var sess domain.Session
	var updatedAt int64

	err := d.db.QueryRowContext(ctx, query, id).Scan(
		&sess.ID,
		&sess.TranscriptName,
		&sess.Transcript,
		&sess.TranscriptHash,
		&sess.Summary,
		&sess.PDFName,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan row: %w", err)
	}

	sess.UpdatedAt = time.Unix(0, updatedAt).UTC()

	return &sess, nil
}

func (d *Database) Save(ctx context.Context, sess *domain.Session) error {
	if sess == nil || strings.TrimSpace(sess.ID) == "" {
		return errors.New("session ID is empty")
	}

	updatedAt := d.now().UTC()

	query := `insert into sessions
	(id, transcript_name, transcript, transcript_hash, summary, pdf_name, updated_at)
	values (?, ?, ?, ?, ?, ?, ?)
	on conflict (id) do update
	set transcript_name = excluded.transcript_name,
		transcript = excluded.transcript,
		transcript_hash = excluded.transcript_hash,
		summary = excluded.summary,
		pdf_name = excluded.pdf_name,
		updated_at = excluded.updated_at`

	_, err := d.db.ExecContext(ctx, query,
		sess.ID,
		sess.TranscriptName,
		sess.Transcript,
		sess.TranscriptHash,
		sess.Summary,
		sess.PDFName,
		updatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("execute query: %w", err)
	}

	sess.UpdatedAt = updatedAt

	return nil
}

func (d *Database) Delete(ctx context.Context, id string) error {
	query := "delete from sessions where id = ?"

	if _, err := d.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("execute query: %w", err)
	}

	return nil
}

func (d *Database) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	query := "delete from sessions where updated_at < ?"

	res, err := d.db.ExecContext(ctx, query, before.UTC().UnixNano())
	if err != nil {
		return 0, fmt.Errorf("execute query: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get affected rows: %w", err)
	}

	if deleted > 0 {
		d.log.DebugContext(ctx, "Expired sessions are deleted",
			"deleted", deleted,
			"before", before)
	}

	return deleted, nil
}
