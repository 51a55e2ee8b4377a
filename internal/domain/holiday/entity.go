package holiday

import "time"

type Scope string

const (
	ScopeNational Scope = "national"
	ScopeRegional Scope = "regional"
)

type Holiday struct {
	ID        string
	Date      time.Time
	Name      string
	Scope     Scope
	Region    *string
	CreatedAt time.Time
}
