package sqlite

// Schema version recorded in schema_meta.
const schemaVersion = 1

// Amounts are stored as TEXT so decimals round-trip exactly; dates as
// YYYY-MM-DD; tags semicolon-joined.
const schema = `
CREATE TABLE IF NOT EXISTS schema_meta (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS accounts (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	name       TEXT NOT NULL,
	type       TEXT NOT NULL,
	balance    TEXT NOT NULL DEFAULT '0',
	currency   TEXT NOT NULL DEFAULT 'USD',
	is_active  INTEGER NOT NULL DEFAULT 1,
	UNIQUE(user_id, name)
);

CREATE TABLE IF NOT EXISTS categories (
	id          TEXT PRIMARY KEY,
	user_id     TEXT NOT NULL,
	name        TEXT NOT NULL,
	type        TEXT NOT NULL DEFAULT 'SPEND',
	is_default  INTEGER NOT NULL DEFAULT 0,
	UNIQUE(user_id, name)
);

CREATE TABLE IF NOT EXISTS rules (
	id           TEXT PRIMARY KEY,
	user_id      TEXT NOT NULL,
	match_type   TEXT NOT NULL,
	pattern      TEXT NOT NULL,
	priority     INTEGER NOT NULL DEFAULT 0,
	is_active    INTEGER NOT NULL DEFAULT 1,
	category_id  TEXT NOT NULL REFERENCES categories(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS transactions (
	id           TEXT PRIMARY KEY,
	user_id      TEXT NOT NULL,
	account_id   TEXT NOT NULL REFERENCES accounts(id),
	date         TEXT NOT NULL,
	description  TEXT NOT NULL,
	merchant     TEXT NOT NULL DEFAULT '',
	amount       TEXT NOT NULL,
	currency     TEXT NOT NULL DEFAULT 'USD',
	category_id  TEXT REFERENCES categories(id) ON DELETE SET NULL,
	tags         TEXT NOT NULL DEFAULT '',
	external_id  TEXT NOT NULL DEFAULT '',
	is_transfer  INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_transactions_user_date ON transactions(user_id, date);
CREATE INDEX IF NOT EXISTS idx_transactions_external ON transactions(user_id, external_id);
CREATE INDEX IF NOT EXISTS idx_rules_user_priority ON rules(user_id, priority DESC);
`

// seedCategory is one default category created for a new user. The list
// covers every category name the baseline dictionaries can suggest, so
// categorization works out of the box.
type seedCategory struct {
	name  string
	ctype string
	deflt bool
}

var seedCategories = []seedCategory{
	{"income", "SAVE", false},
	{"groceries", "SPEND", false},
	{"dining", "SPEND", false},
	{"coffee", "SPEND", false},
	{"fast-food", "SPEND", false},
	{"transportation", "SPEND", false},
	{"shopping", "SPEND", false},
	{"entertainment", "SPEND", false},
	{"health", "SPEND", false},
	{"home-improvement", "SPEND", false},
	{"insurance", "SPEND", false},
	{"housing", "SPEND", false},
	{"utilities", "SPEND", false},
	{"travel", "SPEND", false},
	{"education", "SPEND", false},
	{"investments", "SAVE", false},
	{"savings", "SAVE", false},
	{"transfer", "SPEND", false},
	{"uncategorized", "SPEND", true},
}
