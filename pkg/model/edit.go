// pkg/model/edit.go
package model

import (
	"time"
)

// EditRecord represents a single manual field edit made during review
type EditRecord struct {
	RowIndex      int       // Original index of the edited row
	Field         Field     // Field that was changed
	OriginalValue string    // Value before the edit
	NewValue      string    // Value after the edit
	EditedAt      time.Time // When the edit was made
}
