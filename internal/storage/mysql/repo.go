package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"ella_estate/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func valTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC()
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// EnsureSchema creates the tables if they are missing. Requires a DSN with
// multiStatements=true.
func (r *Repo) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, Schema)
	return err
}

func (r *Repo) InsertMessage(ctx context.Context, m domain.ContactMessage) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertMessageSQL,
		m.Name,
		valStr(m.Email),
		valStr(m.Phone),
		m.Message,
		m.Lang,
		valTime(m.CreatedAt),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) ListMessages(ctx context.Context, limit int) ([]domain.ContactMessage, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, listMessagesSQL, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ContactMessage
	for rows.Next() {
		var m domain.ContactMessage
		var email, phone sql.NullString
		if err := rows.Scan(&m.ID, &m.Name, &email, &phone, &m.Message, &m.Lang, &m.CreatedAt); err != nil {
			return nil, err
		}
		if email.Valid {
			e := email.String
			m.Email = &e
		}
		if phone.Valid {
			p := phone.String
			m.Phone = &p
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *Repo) ArchiveSnapshot(ctx context.Context, placeID string, s domain.ReviewsSnapshot) error {
	reviews, err := json.Marshal(s.Reviews)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, archiveSnapshotSQL,
		placeID,
		s.AverageRating,
		s.TotalCount,
		s.FetchedAt.UTC(),
		string(reviews),
	)
	return err
}
