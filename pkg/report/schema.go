package report

// SchemaVersion tracks the report database layout. Bump on any change to
// the statements below.
const SchemaVersion = 1

// Schema creates the report tables. Statements are idempotent so opening
// an existing database is safe.
const Schema = `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS runs (
	id           TEXT PRIMARY KEY,
	started_at   TIMESTAMP NOT NULL,
	completed_at TIMESTAMP NOT NULL,
	files        INTEGER NOT NULL,
	errors       INTEGER NOT NULL,
	warnings     INTEGER NOT NULL,
	infos        INTEGER NOT NULL,
	hints        INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS findings (
	run_id    TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	uri       TEXT NOT NULL,
	rule      TEXT NOT NULL,
	severity  TEXT NOT NULL,
	message   TEXT NOT NULL,
	line      INTEGER NOT NULL,
	character INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_findings_run ON findings(run_id);
CREATE INDEX IF NOT EXISTS idx_findings_rule ON findings(rule);
CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
`

const insertSchemaVersion = `INSERT OR IGNORE INTO schema_version (version) VALUES (?)`

const getSchemaVersion = `SELECT version FROM schema_version ORDER BY version DESC LIMIT 1`
