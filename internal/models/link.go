package models

// Link is a directed citation edge between two documents. Links are
// immutable once imported; the doc identifiers are opaque foreign keys with
// no referential integrity enforced at this layer.
type Link struct {
	ID              string `json:"id"`
	DocIDFrom       int64  `json:"doc_id_from"`
	DocIDTo         int64  `json:"doc_id_to"`
	ToDocTitle      string `json:"to_doc_title"`
	CitationsNumber int    `json:"citations_number"`
	ContextsList    string `json:"contexts_list"`
	PositionsList   string `json:"positions_list"`
}
