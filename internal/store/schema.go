package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS records (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    recorded_on   TEXT NOT NULL,
    item          TEXT NOT NULL,
    category      TEXT NOT NULL DEFAULT '',
    status        TEXT NOT NULL,
    quantity      REAL NOT NULL,
    unit          TEXT NOT NULL DEFAULT '',
    unit_price    REAL NOT NULL DEFAULT 0,
    total_cost    REAL NOT NULL DEFAULT 0,
    notes         TEXT NOT NULL DEFAULT '',
    created_at    TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_records_item ON records(item);
CREATE INDEX IF NOT EXISTS idx_records_date ON records(recorded_on);
`
