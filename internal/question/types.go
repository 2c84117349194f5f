package question

// Question is the payload delivered to clients.
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// CategoryLabels maps category id to its display label.
type CategoryLabels map[int]string

// Page is one slice of an ordered result set plus the size of the full set.
type Page struct {
	Questions []Question
	Total     int
}

// ListResult answers ListAll.
type ListResult struct {
	Page
	Categories CategoryLabels
}

// CategoryResult answers ListByCategory.
type CategoryResult struct {
	Page
	CurrentCategory string
}

// CreateResult carries the inserted question and a refreshed listing.
type CreateResult struct {
	Page
	Question Question
}

// DeleteResult carries the removed id and a refreshed listing.
type DeleteResult struct {
	Page
	DeletedID int
}
