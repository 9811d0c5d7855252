package models

import "time"

type Activity struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Start       Date      `json:"start"`
	End         Date      `json:"end"`
	CreatedAt   time.Time `json:"created_at"`
}

// OpenAt reports whether registration is still accepted at now. The end date
// is inclusive in loc.
func (a *Activity) OpenAt(now time.Time, loc *time.Location) bool {
	today := DateOf(now.In(loc))
	return !today.After(a.End)
}
