package domain

import "gorm.io/gorm"

// Column identifies one of the fixed board columns a card can live in.
type Column string

const (
	ColumnTodo       Column = "todo"
	ColumnInProgress Column = "in-progress"
	ColumnDone       Column = "done"
)

// Columns lists every valid column in board order.
var Columns = []Column{ColumnTodo, ColumnInProgress, ColumnDone}

// ParseColumn converts a raw string (e.g. a column_id from a request body)
// into a Column, reporting whether it names a known column.
func ParseColumn(s string) (Column, bool) {
	for _, c := range Columns {
		if s == string(c) {
			return c, true
		}
	}
	return "", false
}

type Card struct {
	gorm.Model
	Title string `gorm:"size:255;not null"`
	// "column" is an SQL keyword, so the field is stored as board_column.
	Column   Column `gorm:"column:board_column;size:32;not null;index"`
	Position int    `gorm:"not null"`
	UserID   uint   `gorm:"index"`
}
