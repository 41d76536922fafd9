package repo

import (
	"context"
	"database/sql"

	"github.com/aq2208/oms-api/internal/usecase"
)

type MySQLOutboxRepo struct{ db *sql.DB }

func NewMySQLOutboxRepo(db *sql.DB) *MySQLOutboxRepo { return &MySQLOutboxRepo{db: db} }

// insertOutbox stages an event inside the caller's transaction so the event
// exists iff the order write commits.
func insertOutbox(ctx context.Context, tx *sql.Tx, msg usecase.OutboxMessage) error {
	_, err := tx.ExecContext(ctx, `
INSERT INTO outbox (routing_key, payload, status, created_at)
VALUES (?, ?, 'PENDING', NOW())`, msg.RoutingKey, msg.Payload)
	return err
}

func (r *MySQLOutboxRepo) FetchPending(ctx context.Context, limit int) ([]usecase.OutboxRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, routing_key, payload FROM outbox
WHERE status='PENDING' ORDER BY id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []usecase.OutboxRecord
	for rows.Next() {
		var rec usecase.OutboxRecord
		if err := rows.Scan(&rec.ID, &rec.RoutingKey, &rec.Payload); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *MySQLOutboxRepo) MarkSent(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	_, err := r.db.ExecContext(ctx, `
UPDATE outbox SET status='SENT', sent_at=NOW()
WHERE id IN (`+placeholders(len(ids))+`)`, args...)
	return err
}

var _ usecase.OutboxRepo = (*MySQLOutboxRepo)(nil)
