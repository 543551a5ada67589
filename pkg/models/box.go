package models

// BoxUser is the subset of the Box user record the integration needs.
type BoxUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BoxFile is the subset of the Box file record the integration needs.
type BoxFile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BoxItem is a single entry of a Box folder listing.
type BoxItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"` // "file" or "folder"
}

// BoxItemList is the paged entries envelope returned by the Box folder API.
type BoxItemList struct {
	TotalCount int       `json:"total_count"`
	Entries    []BoxItem `json:"entries"`
}

// TreeNode is the jstree-shaped node the UI consumes.
type TreeNode struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Type     string `json:"type"`
	Children bool   `json:"children"`
}
