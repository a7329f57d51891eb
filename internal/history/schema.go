package history

const createTableSQL = `
CREATE TABLE IF NOT EXISTS invocations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	invocation_id TEXT NOT NULL,
	at_ms INTEGER NOT NULL,
	command TEXT NOT NULL,
	raw TEXT NOT NULL,
	source TEXT NOT NULL,
	args TEXT NOT NULL,
	count INTEGER NOT NULL,
	success INTEGER NOT NULL,
	message TEXT NOT NULL,
	error TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_invocations_command ON invocations(command);
`

const insertSQL = `
INSERT INTO invocations (invocation_id, at_ms, command, raw, source, args, count, success, message, error)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`

// pruneSQL keeps the newest ? rows.
const pruneSQL = `
DELETE FROM invocations
WHERE id <= (SELECT id FROM invocations ORDER BY id DESC LIMIT 1 OFFSET ?);
`

const recentSQL = `
SELECT invocation_id, at_ms, command, raw, source, args, count, success, message, error
FROM invocations
ORDER BY id DESC
LIMIT ?;
`

const byCommandSQL = `
SELECT
	command,
	COUNT(*) as runs,
	SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END) as failures,
	MAX(at_ms) as last_ms
FROM invocations
GROUP BY command
ORDER BY runs DESC, command ASC
LIMIT ?;
`

const countSQL = `SELECT COUNT(*) FROM invocations;`
