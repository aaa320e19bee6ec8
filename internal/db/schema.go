package db

import (
	"database/sql"
	"fmt"
)

// schema is the base database schema.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY,
    username      TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL DEFAULT 'member' CHECK (role IN ('admin', 'moderator', 'member')),
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    deleted_at    DATETIME
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username_active
    ON users(username) WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS reports (
    seq          INTEGER PRIMARY KEY,
    id           TEXT NOT NULL UNIQUE,
    type         TEXT NOT NULL CHECK (type IN ('lost', 'found')),
    name         TEXT,
    species      TEXT NOT NULL,
    breed        TEXT,
    color        TEXT NOT NULL,
    location     TEXT NOT NULL,
    date         TEXT NOT NULL,
    description  TEXT NOT NULL,
    contact_info TEXT NOT NULL,
    reward       TEXT,
    status       TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'reunited', 'closed')),
    reporter_id  INTEGER NOT NULL REFERENCES users(id),
    created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    CHECK (type = 'lost' OR (name IS NULL AND reward IS NULL)),
    CHECK (type = 'found' OR name IS NOT NULL)
);

CREATE TABLE IF NOT EXISTS report_images (
    report_id TEXT NOT NULL REFERENCES reports(id),
    position  INTEGER NOT NULL,
    ref       TEXT NOT NULL,
    PRIMARY KEY (report_id, position)
);

CREATE TABLE IF NOT EXISTS images (
    id          TEXT PRIMARY KEY,
    data        BLOB NOT NULL,
    mime        TEXT NOT NULL,
    width       INTEGER NOT NULL,
    height      INTEGER NOT NULL,
    uploaded_by TEXT NOT NULL,
    created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS chats (
    id          TEXT PRIMARY KEY,
    report_id   TEXT NOT NULL REFERENCES reports(id),
    inquirer_id INTEGER NOT NULL REFERENCES users(id),
    created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (report_id, inquirer_id)
);

CREATE TABLE IF NOT EXISTS chat_messages (
    chat_id    TEXT NOT NULL REFERENCES chats(id),
    id         INTEGER NOT NULL,
    sender_id  INTEGER NOT NULL REFERENCES users(id),
    text       TEXT NOT NULL,
    created_at DATETIME NOT NULL,
    PRIMARY KEY (chat_id, id)
);
`

// EnsureSchema creates all tables and indexes if they don't already exist,
// then brings the database up to the latest migration.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return Migrate(db)
}
