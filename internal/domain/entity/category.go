package entity

// Category is a node of the category tree. The backend returns a flat
// list with parent references; the client assembles the tree and walks it
// recursively, whatever its depth.
type Category struct {
	ID       int         `json:"id"`
	Name     string      `json:"nombre"`
	ParentID int         `json:"padre_id,omitempty"`
	Children []*Category `json:"subcategorias,omitempty"`
}
