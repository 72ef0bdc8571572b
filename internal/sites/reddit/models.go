package reddit

// listing mirrors the data-carrying part of the public JSON endpoint's
// response (GET /r/<source>/hot.json).
type listing struct {
	Data struct {
		Children []struct {
			Data apiPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type apiPost struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Selftext   string  `json:"selftext"`
	Author     string  `json:"author"`
	Score      int     `json:"score"`
	CreatedUTC float64 `json:"created_utc"`
	Stickied   bool    `json:"stickied"`
	IsVideo    bool    `json:"is_video"`
}
