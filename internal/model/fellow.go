package model

// Fellow is a tracked person.
type Fellow struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
