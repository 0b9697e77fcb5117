package store

// Postgres schema, applied by migrations outside the process. Kept here as
// the authoritative reference for the persisted-state layout.
const PostgresDDL = `
CREATE TABLE IF NOT EXISTS profiles (
    user_id          TEXT PRIMARY KEY,
    is_private_beta  BOOLEAN NOT NULL DEFAULT FALSE,
    creation_time    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS cases (
    case_id             UUID PRIMARY KEY,
    owner_id            TEXT NOT NULL,
    title               TEXT NOT NULL,
    court_name          TEXT,
    court_slug          TEXT,
    case_number         TEXT,
    applicant_name      TEXT,
    respondent_name     TEXT,
    hearing_title       TEXT,
    hearing_time        TIMESTAMPTZ,
    children_note       TEXT,
    proceedings_heading TEXT,
    proceedings_lines   JSONB,
    creation_time       TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS cases_owner_idx ON cases (owner_id, creation_time DESC);

CREATE TABLE IF NOT EXISTS case_events (
    event_id      UUID PRIMARY KEY,
    case_id       UUID NOT NULL REFERENCES cases (case_id) ON DELETE CASCADE,
    event_date    DATE,
    date_unknown  BOOLEAN NOT NULL DEFAULT FALSE,
    summary       TEXT NOT NULL,
    evidence      TEXT,
    creation_time TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS case_events_case_idx ON case_events (case_id, creation_time);
`
