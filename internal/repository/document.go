package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/teamfolio/teamfolio-go/internal/model"
)

// DocumentRepository handles document persistence operations.
type DocumentRepository struct {
	db *sql.DB
}

// NewDocumentRepository creates a new DocumentRepository.
func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create inserts a document and sets its generated ID and creation time.
func (r *DocumentRepository) Create(ctx context.Context, doc *model.Document) error {
	query := `INSERT INTO documents (user_id, title, theme, overview, results, objects, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	createdAt := time.Now().UTC().Truncate(time.Second)
	result, err := r.db.ExecContext(ctx, query,
		doc.UserID,
		doc.Title,
		doc.Theme,
		doc.Overview,
		doc.Results,
		doc.Objects,
		createdAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	doc.ID = id
	doc.CreatedAt = createdAt
	return nil
}

// ListByUser retrieves every document owned by userID in creation order.
func (r *DocumentRepository) ListByUser(ctx context.Context, userID int64) ([]model.Document, error) {
	query := `SELECT id, user_id, title, theme, overview, results, objects, created_at
		FROM documents WHERE user_id = ? ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []model.Document
	for rows.Next() {
		var (
			d       model.Document
			objects sql.NullString
		)
		if err := rows.Scan(
			&d.ID, &d.UserID, &d.Title, &d.Theme, &d.Overview, &d.Results, &objects, &d.CreatedAt,
		); err != nil {
			return nil, err
		}
		d.Objects = stringPtr(objects)
		docs = append(docs, d)
	}

	return docs, rows.Err()
}
