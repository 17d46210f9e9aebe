package model

// Post is a short text note owned by exactly one Fellow.
type Post struct {
	ID          int64  `json:"id" db:"id"`
	PostContent string `json:"post_content" db:"post_content"`
	FellowID    int64  `json:"fellow_id" db:"fellow_id"`
}

// PostSummary is the projection returned when listing a fellow's posts.
type PostSummary struct {
	ID          int64  `json:"id" db:"id"`
	PostContent string `json:"post_content" db:"post_content"`
}
