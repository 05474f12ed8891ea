package models

// SearchFilter captures the parameters of a paginated resource search.
// Branch and Semester are opaque identifiers, not display codes.
type SearchFilter struct {
	Type     ResourceType
	Branch   string
	Semester string
	Query    string
	Page     int
	Limit    int
}

// SearchPage is one server-returned batch of search results.
type SearchPage struct {
	Data    []Resource `json:"data"`
	Total   int        `json:"total"`
	HasMore bool       `json:"hasMore"`
}
