package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/courtprep/backend/internal/model"
	"github.com/courtprep/backend/internal/store"
)

// Open opens (or creates) a SQLite database at the given path and enables
// WAL journal mode plus foreign-key enforcement (event cascade relies on it).
func Open(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS profiles (
    user_id          TEXT PRIMARY KEY,
    is_private_beta  INTEGER NOT NULL DEFAULT 0,
    creation_time    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS cases (
    case_id             TEXT PRIMARY KEY,
    owner_id            TEXT NOT NULL,
    title               TEXT NOT NULL,
    court_name          TEXT,
    court_slug          TEXT,
    case_number         TEXT,
    applicant_name      TEXT,
    respondent_name     TEXT,
    hearing_title       TEXT,
    hearing_time        TEXT,
    children_note       TEXT,
    proceedings_heading TEXT,
    proceedings_lines   TEXT,
    creation_time       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS cases_owner_idx ON cases (owner_id, creation_time);

CREATE TABLE IF NOT EXISTS case_events (
    event_id      TEXT PRIMARY KEY,
    case_id       TEXT NOT NULL REFERENCES cases (case_id) ON DELETE CASCADE,
    event_date    TEXT,
    date_unknown  INTEGER NOT NULL DEFAULT 0,
    summary       TEXT NOT NULL,
    evidence      TEXT,
    creation_time TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS case_events_case_idx ON case_events (case_id, creation_time);
`

// EnsureSchema creates the tables when missing. SQLite is the local/dev
// driver, so the process bootstraps its own schema instead of migrations.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}

// NewWithDB constructs a SQLite store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &sqStore{db: db} }

type sqStore struct{ db *sql.DB }

func (s *sqStore) Profiles() store.Profiles { return &profiles{db: s.db} }
func (s *sqStore) Cases() store.Cases       { return &cases{db: s.db} }
func (s *sqStore) Events() store.Events     { return &events{db: s.db} }

// HealthPing implements health.Pinger for the SQLite-backed store.
func (s *sqStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Timestamps are stored as RFC3339Nano text so lexicographic order matches
// chronological order.
func now() string { return time.Now().UTC().Format(time.RFC3339Nano) }

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

// --- Profiles ---
type profiles struct{ db *sql.DB }

func (p *profiles) Get(ctx context.Context, userID string) (*model.Profile, error) {
	var out model.Profile
	var created string
	row := p.db.QueryRowContext(ctx, `
        SELECT user_id, is_private_beta, creation_time FROM profiles WHERE user_id=?
    `, userID)
	if err := row.Scan(&out.UserID, &out.IsPrivateBeta, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("profile %s: %w", userID, model.ErrNotFound)
		}
		return nil, err
	}
	out.CreationTime = parseTime(created)
	return &out, nil
}

func (p *profiles) SetPrivateBeta(ctx context.Context, userID string, enabled bool) error {
	_, err := p.db.ExecContext(ctx, `
        INSERT INTO profiles (user_id, is_private_beta, creation_time)
        VALUES (?,?,?)
        ON CONFLICT (user_id) DO UPDATE SET is_private_beta=excluded.is_private_beta
    `, userID, enabled, now())
	return err
}

// --- Cases ---
type cases struct{ db *sql.DB }

func (c *cases) Create(ctx context.Context, mc *model.Case) (*model.Case, error) {
	id := mc.CaseID
	if id == "" {
		id = uuid.New().String()
	}
	created := now()
	if _, err := c.db.ExecContext(ctx, `
        INSERT INTO cases (case_id, owner_id, title, creation_time) VALUES (?,?,?,?)
    `, id, mc.OwnerID, mc.Title, created); err != nil {
		return nil, err
	}
	return &model.Case{CaseID: id, OwnerID: mc.OwnerID, Title: mc.Title, CreationTime: parseTime(created)}, nil
}

func (c *cases) Get(ctx context.Context, ownerID, caseID string) (*model.Case, error) {
	var out model.Case
	var hearing, lines sql.NullString
	var created string
	row := c.db.QueryRowContext(ctx, `
        SELECT case_id, owner_id, title,
               court_name, court_slug, case_number, applicant_name, respondent_name,
               hearing_title, hearing_time, children_note, proceedings_heading, proceedings_lines,
               creation_time
        FROM cases WHERE owner_id=? AND case_id=?
    `, ownerID, caseID)
	if err := row.Scan(&out.CaseID, &out.OwnerID, &out.Title,
		&out.Heading.CourtName, &out.Heading.CourtSlug, &out.Heading.CaseNumber,
		&out.Heading.ApplicantName, &out.Heading.RespondentName,
		&out.Heading.HearingTitle, &hearing, &out.Heading.ChildrenNote,
		&out.Heading.ProceedingsHeading, &lines,
		&created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("case %s: %w", caseID, model.ErrNotFound)
		}
		return nil, err
	}
	if hearing.Valid && hearing.String != "" {
		t := parseTime(hearing.String)
		out.Heading.HearingTime = &t
	}
	if lines.Valid && lines.String != "" {
		_ = json.Unmarshal([]byte(lines.String), &out.Heading.ProceedingsLines)
	}
	out.CreationTime = parseTime(created)
	return &out, nil
}

func (c *cases) List(ctx context.Context, ownerID string) ([]*model.Case, error) {
	rows, err := c.db.QueryContext(ctx, `
        SELECT case_id, title, creation_time
        FROM cases WHERE owner_id=? ORDER BY creation_time DESC
    `, ownerID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []*model.Case
	for rows.Next() {
		var mc model.Case
		var created string
		mc.OwnerID = ownerID
		if err := rows.Scan(&mc.CaseID, &mc.Title, &created); err != nil {
			return nil, err
		}
		mc.CreationTime = parseTime(created)
		res = append(res, &mc)
	}
	return res, rows.Err()
}

func (c *cases) UpdateHeading(ctx context.Context, ownerID, caseID string, h model.CaseHeading) error {
	var hearing interface{}
	if h.HearingTime != nil {
		hearing = h.HearingTime.UTC().Format(time.RFC3339Nano)
	}
	var lines interface{}
	if len(h.ProceedingsLines) > 0 {
		b, err := json.Marshal(h.ProceedingsLines)
		if err != nil {
			return err
		}
		lines = string(b)
	}
	res, err := c.db.ExecContext(ctx, `
        UPDATE cases SET
            court_name=?, court_slug=?, case_number=?,
            applicant_name=?, respondent_name=?,
            hearing_title=?, hearing_time=?, children_note=?,
            proceedings_heading=?, proceedings_lines=?
        WHERE owner_id=? AND case_id=?
    `, h.CourtName, h.CourtSlug, h.CaseNumber,
		h.ApplicantName, h.RespondentName,
		h.HearingTitle, hearing, h.ChildrenNote,
		h.ProceedingsHeading, lines,
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
	_, err := c.db.ExecContext(ctx, `DELETE FROM cases WHERE owner_id=? AND case_id=?`, ownerID, caseID)
	return err
}

// --- Events ---
type events struct{ db *sql.DB }

func (e *events) Create(ctx context.Context, me *model.CaseEvent) (*model.CaseEvent, error) {
	id := me.EventID
	if id == "" {
		id = uuid.New().String()
	}
	created := now()
	if _, err := e.db.ExecContext(ctx, `
        INSERT INTO case_events (event_id, case_id, event_date, date_unknown, summary, evidence, creation_time)
        VALUES (?,?,?,?,?,?,?)
    `, id, me.CaseID, me.EventDate, me.DateUnknown, me.Summary, me.Evidence, created); err != nil {
		return nil, err
	}
	out := *me
	out.EventID = id
	out.CreationTime = parseTime(created)
	return &out, nil
}

func (e *events) Get(ctx context.Context, caseID, eventID string) (*model.CaseEvent, error) {
	out, err := scanEvent(e.db.QueryRowContext(ctx, `
        SELECT event_id, case_id, event_date, date_unknown, summary, evidence, creation_time
        FROM case_events WHERE case_id=? AND event_id=?
    `, caseID, eventID))
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
        FROM case_events WHERE case_id=? ORDER BY creation_time
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
        UPDATE case_events SET event_date=?, date_unknown=?, summary=?, evidence=?
        WHERE event_id=? AND case_id=?
    `, me.EventDate, me.DateUnknown, me.Summary, me.Evidence, me.EventID, me.CaseID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("event %s: %w", me.EventID, model.ErrNotFound)
	}
	return nil
}

func (e *events) Delete(ctx context.Context, eventID string) error {
	_, err := e.db.ExecContext(ctx, `DELETE FROM case_events WHERE event_id=?`, eventID)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row rowScanner) (*model.CaseEvent, error) {
	var out model.CaseEvent
	var date sql.NullString
	var created string
	if err := row.Scan(&out.EventID, &out.CaseID, &date, &out.DateUnknown,
		&out.Summary, &out.Evidence, &created); err != nil {
		return nil, err
	}
	if date.Valid && date.String != "" {
		d := date.String
		out.EventDate = &d
	}
	out.CreationTime = parseTime(created)
	return &out, nil
}
