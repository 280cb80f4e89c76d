package sqlite

// schemaSQL creates the four logical tables. All statements are idempotent
// so reopening an existing database preserves its contents.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS events (
    id                   TEXT PRIMARY KEY,
    title                TEXT NOT NULL,
    description          TEXT NOT NULL DEFAULT '',
    sport_type           TEXT NOT NULL DEFAULT '',
    skill_level          TEXT NOT NULL DEFAULT '',
    date_time            TEXT NOT NULL,
    duration             INTEGER NOT NULL DEFAULT 0,
    max_participants     INTEGER NOT NULL DEFAULT 0,
    current_participants INTEGER NOT NULL DEFAULT 0,
    price_per_person     REAL NOT NULL DEFAULT 0,
    venue_address        TEXT NOT NULL DEFAULT '',
    organizer_id         TEXT NOT NULL DEFAULT '',
    status               TEXT NOT NULL DEFAULT 'open',
    latitude             REAL,
    longitude            REAL,
    is_geocoded          INTEGER NOT NULL DEFAULT 0,
    created_at           TEXT NOT NULL,
    updated_at           TEXT NOT NULL,
    offline              INTEGER NOT NULL DEFAULT 0,
    action               TEXT NOT NULL DEFAULT '',
    local_timestamp      INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_events_organizer ON events(organizer_id);
CREATE INDEX IF NOT EXISTS idx_events_date_time ON events(date_time);

CREATE TABLE IF NOT EXISTS participations (
    id              TEXT PRIMARY KEY,
    event_id        TEXT NOT NULL,
    participant_id  TEXT NOT NULL,
    created_at      TEXT NOT NULL,
    offline         INTEGER NOT NULL DEFAULT 0,
    action          TEXT NOT NULL DEFAULT '',
    local_timestamp INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_participations_event ON participations(event_id);
CREATE INDEX IF NOT EXISTS idx_participations_participant ON participations(participant_id);

CREATE TABLE IF NOT EXISTS profiles (
    id                TEXT PRIMARY KEY,
    user_id           TEXT NOT NULL,
    username          TEXT NOT NULL DEFAULT '',
    full_name         TEXT NOT NULL DEFAULT '',
    bio               TEXT NOT NULL DEFAULT '',
    avatar_url        TEXT NOT NULL DEFAULT '',
    phone             TEXT NOT NULL DEFAULT '',
    favorite_sports   TEXT NOT NULL DEFAULT '[]',
    skill_level       TEXT NOT NULL DEFAULT '',
    availability_days TEXT NOT NULL DEFAULT '[]',
    location          TEXT NOT NULL DEFAULT '',
    created_at        TEXT NOT NULL,
    updated_at        TEXT NOT NULL DEFAULT '',
    offline           INTEGER NOT NULL DEFAULT 0,
    action            TEXT NOT NULL DEFAULT '',
    local_timestamp   INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_profiles_user ON profiles(user_id);

CREATE TABLE IF NOT EXISTS sync_queue (
    id         TEXT PRIMARY KEY,
    table_name TEXT NOT NULL,
    action     TEXT NOT NULL,
    data       TEXT NOT NULL,
    timestamp  INTEGER NOT NULL,
    attempts   INTEGER NOT NULL DEFAULT 0,
    position   INTEGER NOT NULL
);
`
