package store

const schema = `
CREATE TABLE IF NOT EXISTS priority_overrides (
    wordpress_id INTEGER PRIMARY KEY,
    priority     INTEGER NOT NULL DEFAULT 0 CHECK (priority BETWEEN 0 AND 10),
    created_at   DATETIME NOT NULL,
    updated_at   DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_overrides_priority ON priority_overrides(priority);
`
