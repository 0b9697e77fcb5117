package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/courtprep/backend/internal/model"
	"github.com/courtprep/backend/internal/store"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs a native Postgres store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Profiles() store.Profiles { return &profiles{db: s.db} }
func (s *pgStore) Cases() store.Cases       { return &cases{db: s.db} }
func (s *pgStore) Events() store.Events     { return &events{db: s.db} }

// HealthPing implements health.Pinger for the Postgres-backed store.
func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// --- Profiles ---
type profiles struct{ db *sql.DB }

func (p *profiles) Get(ctx context.Context, userID string) (*model.Profile, error) {
	var out model.Profile
	row := p.db.QueryRowContext(ctx, `
        SELECT user_id, is_private_beta, creation_time
        FROM profiles WHERE user_id=$1
    `, userID)
	if err := row.Scan(&out.UserID, &out.IsPrivateBeta, &out.CreationTime); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("profile %s: %w", userID, model.ErrNotFound)
		}
		return nil, err
	}
	return &out, nil
}

func (p *profiles) SetPrivateBeta(ctx context.Context, userID string, enabled bool) error {
	_, err := p.db.ExecContext(ctx, `
        INSERT INTO profiles (user_id, is_private_beta)
        VALUES ($1,$2)
        ON CONFLICT (user_id) DO UPDATE SET is_private_beta=EXCLUDED.is_private_beta
    `, userID, enabled)
	return err
}

// --- Cases ---
type cases struct{ db *sql.DB }

func (c *cases) Create(ctx context.Context, mc *model.Case) (*model.Case, error) {
	id := mc.CaseID
	if id == "" {
		id = uuid.New().String()
	}
	var created time.Time
	row := c.db.QueryRowContext(ctx, `
        INSERT INTO cases (case_id, owner_id, title)
        VALUES ($1,$2,$3)
        RETURNING creation_time
    `, id, mc.OwnerID, mc.Title)
	if err := row.Scan(&created); err != nil {
		return nil, err
	}
	return &model.Case{CaseID: id, OwnerID: mc.OwnerID, Title: mc.Title, CreationTime: created}, nil
}

func (c *cases) Get(ctx context.Context, ownerID, caseID string) (*model.Case, error) {
	row := c.db.QueryRowContext(ctx, `
        SELECT case_id, owner_id, title,
               court_name, court_slug, case_number, applicant_name, respondent_name,
               hearing_title, hearing_time, children_note, proceedings_heading, proceedings_lines,
               creation_time
        FROM cases WHERE owner_id=$1 AND case_id=$2
    `, ownerID, caseID)
	out, err := scanCase(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("case %s: %w", caseID, model.ErrNotFound)
		}
		return nil, err
	}
	return out, nil
}

func (c *cases) List(ctx context.Context, ownerID string) ([]*model.Case, error) {
	rows, err := c.db.QueryContext(ctx, `
        SELECT case_id, title, creation_time
        FROM cases WHERE owner_id=$1 ORDER BY creation_time DESC
    `, ownerID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []*model.Case
	for rows.Next() {
		var mc model.Case
		mc.OwnerID = ownerID
		if err := rows.Scan(&mc.CaseID, &mc.Title, &mc.CreationTime); err != nil {
			return nil, err
		}
		res = append(res, &mc)
	}
	return res, rows.Err()
}

func (c *cases) UpdateHeading(ctx context.Context, ownerID, caseID string, h model.CaseHeading) error {
	linesJSON, err := marshalLines(h.ProceedingsLines)
	if err != nil {
		return err
	}
	res, err := c.db.ExecContext(ctx, `
        UPDATE cases SET
            court_name=$1, court_slug=$2, case_number=$3,
            applicant_name=$4, respondent_name=$5,
            hearing_title=$6, hearing_time=$7, children_note=$8,
            proceedings_heading=$9, proceedings_lines=$10
        WHERE owner_id=$11 AND case_id=$12
    `, h.CourtName, h.CourtSlug, h.CaseNumber,
		h.ApplicantName, h.RespondentName,
		h.HearingTitle, h.HearingTime, h.ChildrenNote,
		h.ProceedingsHeading, linesJSON,
		ownerID, caseID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("case %s: %w", caseID, model.ErrNotFound)
	}
	return nil
}

func (c *cases) Delete(ctx context.Context, ownerID, caseID string) error {
	// Events cascade via the case_events foreign key.
	_, err := c.db.ExecContext(ctx, `DELETE FROM cases WHERE owner_id=$1 AND case_id=$2`, ownerID, caseID)
	return err
}

// --- Events ---
type events struct{ db *sql.DB }

func (e *events) Create(ctx context.Context, me *model.CaseEvent) (*model.CaseEvent, error) {
	id := me.EventID
	if id == "" {
		id = uuid.New().String()
	}
	var created time.Time
	row := e.db.QueryRowContext(ctx, `
        INSERT INTO case_events (event_id, case_id, event_date, date_unknown, summary, evidence)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING creation_time
    `, id, me.CaseID, eventDateArg(me.EventDate), me.DateUnknown, me.Summary, me.Evidence)
	if err := row.Scan(&created); err != nil {
		return nil, err
	}
	out := *me
	out.EventID = id
	out.CreationTime = created
	return &out, nil
}

func (e *events) Get(ctx context.Context, caseID, eventID string) (*model.CaseEvent, error) {
	row := e.db.QueryRowContext(ctx, `
        SELECT event_id, case_id, event_date, date_unknown, summary, evidence, creation_time
        FROM case_events WHERE case_id=$1 AND event_id=$2
    `, caseID, eventID)
	out, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("event %s: %w", eventID, model.ErrNotFound)
		}
		return nil, err
	}
	return out, nil
}

func (e *events) ListByCase(ctx context.Context, caseID string) ([]*model.CaseEvent, error) {
	rows, err := e.db.QueryContext(ctx, `
        SELECT event_id, case_id, event_date, date_unknown, summary, evidence, creation_time
        FROM case_events WHERE case_id=$1 ORDER BY creation_time
    `, caseID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []*model.CaseEvent
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, ev)
	}
	return res, rows.Err()
}

func (e *events) Update(ctx context.Context, me *model.CaseEvent) error {
	res, err := e.db.ExecContext(ctx, `
        UPDATE case_events SET event_date=$1, date_unknown=$2, summary=$3, evidence=$4
        WHERE event_id=$5 AND case_id=$6
    `, eventDateArg(me.EventDate), me.DateUnknown, me.Summary, me.Evidence, me.EventID, me.CaseID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("event %s: %w", me.EventID, model.ErrNotFound)
	}
	return nil
}

func (e *events) Delete(ctx context.Context, eventID string) error {
	_, err := e.db.ExecContext(ctx, `DELETE FROM case_events WHERE event_id=$1`, eventID)
	return err
}

// helpers

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCase(row rowScanner) (*model.Case, error) {
	var out model.Case
	var hearing sql.NullTime
	var lines sql.NullString
	if err := row.Scan(&out.CaseID, &out.OwnerID, &out.Title,
		&out.Heading.CourtName, &out.Heading.CourtSlug, &out.Heading.CaseNumber,
		&out.Heading.ApplicantName, &out.Heading.RespondentName,
		&out.Heading.HearingTitle, &hearing, &out.Heading.ChildrenNote,
		&out.Heading.ProceedingsHeading, &lines,
		&out.CreationTime); err != nil {
		return nil, err
	}
	if hearing.Valid {
		t := hearing.Time
		out.Heading.HearingTime = &t
	}
	if lines.Valid && lines.String != "" {
		_ = json.Unmarshal([]byte(lines.String), &out.Heading.ProceedingsLines)
	}
	return &out, nil
}

func scanEvent(row rowScanner) (*model.CaseEvent, error) {
	var out model.CaseEvent
	var date sql.NullTime
	if err := row.Scan(&out.EventID, &out.CaseID, &date, &out.DateUnknown,
		&out.Summary, &out.Evidence, &out.CreationTime); err != nil {
		return nil, err
	}
	if date.Valid {
		d := date.Time.Format("2006-01-02")
		out.EventDate = &d
	}
	return &out, nil
}

// eventDateArg converts the model's calendar-date string into a driver value.
func eventDateArg(d *string) interface{} {
	if d == nil || *d == "" {
		return nil
	}
	return *d
}

func marshalLines(lines []string) (interface{}, error) {
	if len(lines) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(lines)
	if err != nil {
		return nil, err
	}
	return b, nil
}
