package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/roach88/skew/internal/wire"
)

// Append adds one encoded entry to the end of the log. Entries are opaque:
// the log never inspects or validates the bytes it is given.
func (l *Log) Append(ctx context.Context, body []byte) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO entries (id, body) VALUES (?, ?)`,
		uuid.NewString(), string(body),
	)
	if err != nil {
		return fmt.Errorf("append entry: %w", err)
	}
	return nil
}

// Entries returns every entry body in insertion order.
func (l *Log) Entries(ctx context.Context) ([][]byte, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT body FROM entries ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	// Empty slice rather than nil for an empty log.
	entries := [][]byte{}
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, []byte(body))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

// Len returns the number of entries in the log.
func (l *Log) Len(ctx context.Context) (int, error) {
	var n int
	if err := l.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return n, nil
}

// Insert encodes value and appends it to the log. Encoding cannot fail
// for supported record shapes, so the only error source is the database
// itself.
func Insert[T any](ctx context.Context, l *Log, value T) error {
	return l.Append(ctx, wire.Encode(value))
}

// ReadAll decodes every entry as schema T in insertion order. It fails on
// the first entry that does not decode as T, returning that entry's
// decode error wrapped with its position; entries past the failure point
// are not examined.
func ReadAll[T any](ctx context.Context, l *Log) ([]T, error) {
	entries, err := l.Entries(ctx)
	if err != nil {
		return nil, err
	}

	values := make([]T, 0, len(entries))
	for i, body := range entries {
		v, err := wire.Decode[T](body)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		values = append(values, v)
	}
	return values, nil
}
