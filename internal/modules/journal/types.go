package journal

type createJournalDTO struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Date    string `json:"date"` // YYYY-MM-DD, defaults to today
}

type updateJournalDTO struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Date    *string `json:"date"`
}
