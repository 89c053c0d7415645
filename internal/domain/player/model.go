package player

import (
	"fmt"
	"strings"
)

const (
	RoleGoalkeeper = "GK"
	RoleDefender   = "DEF"
	RoleMidfielder = "MID"
	RoleForward    = "FWD"
)

// Player is one pickable real-world footballer.
type Player struct {
	ID         string
	Name       string
	Role       string
	RealTeamID string
	Active     bool
}

func NormalizeRole(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

func IsValidRole(role string) bool {
	switch NormalizeRole(role) {
	case RoleGoalkeeper, RoleDefender, RoleMidfielder, RoleForward:
		return true
	default:
		return false
	}
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if !IsValidRole(p.Role) {
		return fmt.Errorf("invalid player role %q", p.Role)
	}
	if p.RealTeamID == "" {
		return fmt.Errorf("player real team id is required")
	}

	return nil
}

// RoleSortIndex fixes the GK-DEF-MID-FWD display order used by the
// admin rating screen.
func RoleSortIndex(role string) int {
	switch NormalizeRole(role) {
	case RoleGoalkeeper:
		return 0
	case RoleDefender:
		return 1
	case RoleMidfielder:
		return 2
	case RoleForward:
		return 3
	default:
		return 4
	}
}
