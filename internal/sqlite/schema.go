// Package sqlite implements the SQLite persistence backend for daybook.
// This file holds the schema DDL.
package sqlite

// Schema DDL. Every entity kind shares one documents table; the JSON body
// is the entity exactly as the stores hold it.
const (
	createDocuments = `CREATE TABLE IF NOT EXISTS documents (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    kind TEXT NOT NULL,
    id TEXT NOT NULL,
    data TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    UNIQUE (kind, id)
);`
)

// Index DDL for common queries.
const (
	idxDocumentsKind = `CREATE INDEX IF NOT EXISTS idx_documents_kind ON documents(kind, seq);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createDocuments,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxDocumentsKind,
}

// Statements shared by the table accessors and the loader.
const (
	upsertDocument = `INSERT INTO documents (kind, id, data, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (kind, id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`

	insertDocument = `INSERT INTO documents (kind, id, data, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`

	selectDocuments = `SELECT data FROM documents WHERE kind = ? ORDER BY seq`
	selectDocument  = `SELECT data FROM documents WHERE kind = ? AND id = ?`
	deleteDocument  = `DELETE FROM documents WHERE kind = ? AND id = ?`
)
