package league

import (
	"fmt"
	"time"
)

// League is one fantasy league managed by the platform.
type League struct {
	ID        string
	Name      string
	CreatedBy string
	CreatedAt time.Time
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if l.CreatedBy == "" {
		return fmt.Errorf("league creator is required")
	}

	return nil
}
