package services

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/korwin-dev/citelinks-be/internal/models"
)

// UnconstrainedDoc is the sentinel document ID meaning "no filter on this
// endpoint of the edge".
const UnconstrainedDoc int64 = -1

// LinkServiceProvider defines the interface for citation-edge queries.
type LinkServiceProvider interface {
	Search(docIDFrom, docIDTo int64) ([]models.Link, error)
	Import(links []models.Link) (int, error)
}

// LinkService provides lookups over the citation-edge table.
type LinkService struct {
	db *sql.DB
}

// NewLinkService creates a new LinkService.
func NewLinkService(db *sql.DB) *LinkService {
	return &LinkService{db: db}
}

const linkColumns = "id, doc_id_from, doc_id_to, to_doc_title, citations_number, contexts_list, positions_list"

// Search filters links by source and/or target document. Either argument
// may be UnconstrainedDoc; with both unconstrained nothing matches. An
// empty result set is ErrNoResults, never an empty success.
func (s *LinkService) Search(docIDFrom, docIDTo int64) ([]models.Link, error) {
	var (
		rows *sql.Rows
		err  error
	)
	switch {
	case docIDFrom != UnconstrainedDoc && docIDTo != UnconstrainedDoc:
		rows, err = s.db.Query("SELECT "+linkColumns+" FROM links WHERE doc_id_from = ? AND doc_id_to = ?", docIDFrom, docIDTo)
	case docIDFrom != UnconstrainedDoc:
		rows, err = s.db.Query("SELECT "+linkColumns+" FROM links WHERE doc_id_from = ?", docIDFrom)
	case docIDTo != UnconstrainedDoc:
		rows, err = s.db.Query("SELECT "+linkColumns+" FROM links WHERE doc_id_to = ?", docIDTo)
	default:
		return nil, ErrNoResults
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []models.Link
	for rows.Next() {
		var link models.Link
		if err := rows.Scan(&link.ID, &link.DocIDFrom, &link.DocIDTo, &link.ToDocTitle,
			&link.CitationsNumber, &link.ContextsList, &link.PositionsList); err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return nil, ErrNoResults
	}
	return links, nil
}

// Import inserts a batch of citation edges in one transaction and returns
// the inserted count. Links are immutable, so there is no update path.
func (s *LinkService) Import(links []models.Link) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT INTO links(" + linkColumns + ") VALUES(?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for i := range links {
		link := &links[i]
		if link.ID == "" {
			link.ID = uuid.New().String()
		}
		if _, err := stmt.Exec(link.ID, link.DocIDFrom, link.DocIDTo, link.ToDocTitle,
			link.CitationsNumber, link.ContextsList, link.PositionsList); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(links), nil
}
