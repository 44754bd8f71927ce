package models

import (
	"fmt"
	"time"
)

// Tip is an awareness tip. The id is kept from the first fetch so edits
// and deletes never need to look it up again.
type Tip struct {
	ID      int64
	Content string
}

// TipList is the GET /educative-tips payload: two parallel arrays.
type TipList struct {
	Tips []string `json:"tips"`
	IDs  []int64  `json:"ids"`
}

// Zip pairs contents with ids.
func (l TipList) Zip() ([]Tip, error) {
	if len(l.Tips) != len(l.IDs) {
		return nil, fmt.Errorf("tips/ids length mismatch: %d != %d", len(l.Tips), len(l.IDs))
	}
	out := make([]Tip, len(l.Tips))
	for i := range l.Tips {
		out[i] = Tip{ID: l.IDs[i], Content: l.Tips[i]}
	}
	return out, nil
}

// User is an account as listed by GET /admin/users.
type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Approved bool   `json:"is_approved"`
}

// Export is one completed CSV export kept in the local history.
type Export struct {
	ID        string
	Location  string
	Records   int
	CreatedAt time.Time
}
