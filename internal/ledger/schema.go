package ledger

const schema = `
-- One row per embedding run
CREATE TABLE IF NOT EXISTS sessions (
    id TEXT PRIMARY KEY,
    stego_path TEXT NOT NULL,
    key TEXT NOT NULL,
    bits_per_char INTEGER NOT NULL,
    message_len INTEGER NOT NULL,
    samples_per_bit INTEGER NOT NULL,
    ecc TEXT NOT NULL,
    ecc_seed INTEGER NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sessions_stego_path ON sessions(stego_path, created_at);
`
