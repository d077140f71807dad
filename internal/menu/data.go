package menu

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"
)

// SnapshotRetention is how many menu documents are kept for inspection, only the newest is served
const SnapshotRetention = 7

type Repository struct {
	db *sql.DB
}

// NewRepository creates a new menu repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Save stores doc as the new current document and prunes old snapshots.
// The insert and the prune share one transaction, so readers see either the old or the new document.
func (r *Repository) Save(ctx context.Context, doc Document) error {
	if doc == nil {
		doc = Document{}
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "encode menu document")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin menu save")
	}
	// Defer a rollback in case anything fails.
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO menu_documents (document, hall_count) VALUES (?, ?)",
		string(payload), len(doc),
	); err != nil {
		return errors.Wrap(err, "insert menu document")
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM menu_documents
		WHERE id NOT IN (SELECT id FROM menu_documents ORDER BY id DESC LIMIT ?)`,
		SnapshotRetention,
	); err != nil {
		return errors.Wrap(err, "prune menu documents")
	}

	return tx.Commit()
}

// Latest returns the current document, or nil when no refresh has ever succeeded
func (r *Repository) Latest(ctx context.Context) (Document, error) {
	var payload string
	err := r.db.QueryRowContext(ctx,
		"SELECT document FROM menu_documents ORDER BY id DESC LIMIT 1",
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "load menu document")
	}

	doc := Document{}
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, errors.Wrap(err, "decode stored menu document")
	}
	return doc, nil
}

// Count returns how many snapshots are stored
func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM menu_documents").Scan(&count)
	return count, err
}

//   This project is the dining hall menu and ratings backend. Menus are compiled from the university dining services and served alongside student ratings for every meal period.
//   API Copyright (C) 2025 OpenSourceDUTH
//       This program is free software: you can redistribute it and/or modify
//       it under the terms of the GNU General Public License as published by
//       the Free Software Foundation, either version 3 of the License, or
//       (at your option) any later version.

//       This program is distributed in the hope that it will be useful,
//       but WITHOUT ANY WARRANTY; without even the implied warranty of
//       MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//       GNU General Public License for more details.

//       You should have received a copy of the GNU General Public License
//       along with this program.  If not, see <https://www.gnu.org/licenses/>.
