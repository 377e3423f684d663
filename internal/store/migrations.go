package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
//
// Association rows reference projects without ON DELETE CASCADE: a project
// can only be removed once its links are gone (see DeleteProject).
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS projects (
	id               TEXT PRIMARY KEY,
	name             TEXT NOT NULL CHECK(length(trim(name)) > 0),
	start_date       DATETIME NOT NULL,
	end_date         DATETIME,
	is_ongoing       INTEGER NOT NULL DEFAULT 0 CHECK(is_ongoing IN (0, 1)),
	industry         TEXT NOT NULL DEFAULT '',
	role             TEXT NOT NULL DEFAULT '',
	team_size        TEXT NOT NULL DEFAULT '',
	overview         TEXT NOT NULL DEFAULT '',
	responsibilities TEXT NOT NULL DEFAULT '',
	achievements     TEXT NOT NULL DEFAULT '',
	created_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_projects_start_date ON projects(start_date);

CREATE TABLE IF NOT EXISTS technologies (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	category   TEXT NOT NULL DEFAULT 'other',
	is_custom  INTEGER NOT NULL DEFAULT 0 CHECK(is_custom IN (0, 1)),
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS processes (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	sort_order INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS project_technologies (
	id            TEXT PRIMARY KEY,
	project_id    TEXT NOT NULL REFERENCES projects(id),
	technology_id TEXT NOT NULL REFERENCES technologies(id) ON DELETE CASCADE,
	created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(project_id, technology_id)
);

CREATE INDEX IF NOT EXISTS idx_project_technologies_project_id
	ON project_technologies(project_id);
CREATE INDEX IF NOT EXISTS idx_project_technologies_technology_id
	ON project_technologies(technology_id);

CREATE TABLE IF NOT EXISTS project_processes (
	id         TEXT PRIMARY KEY,
	project_id TEXT NOT NULL REFERENCES projects(id),
	process_id TEXT NOT NULL REFERENCES processes(id) ON DELETE CASCADE,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(project_id, process_id)
);

CREATE INDEX IF NOT EXISTS idx_project_processes_project_id
	ON project_processes(project_id);
CREATE INDEX IF NOT EXISTS idx_project_processes_process_id
	ON project_processes(process_id);

CREATE TABLE IF NOT EXISTS certifications (
	id                   TEXT PRIMARY KEY,
	name                 TEXT NOT NULL CHECK(length(trim(name)) > 0),
	obtained_date        DATETIME NOT NULL,
	expiration_date      DATETIME,
	certification_number TEXT NOT NULL DEFAULT '',
	memo                 TEXT NOT NULL DEFAULT '',
	created_at           DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at           DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_certifications_obtained_date
	ON certifications(obtained_date);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
