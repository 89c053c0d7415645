package memory

import (
	"github.com/fantachat/fantachat-api/internal/domain/player"
	"github.com/fantachat/fantachat-api/internal/domain/realteam"
)

// Dev and test fixtures: a small Serie A slice, four pickable players
// per role spread across clubs.

func SeedRealTeams() []realteam.RealTeam {
	return []realteam.RealTeam{
		{ID: "club-int", Name: "Inter"},
		{ID: "club-juv", Name: "Juventus"},
		{ID: "club-mil", Name: "Milan"},
		{ID: "club-nap", Name: "Napoli"},
		{ID: "club-rom", Name: "Roma"},
		{ID: "club-laz", Name: "Lazio"},
		{ID: "club-ata", Name: "Atalanta"},
		{ID: "club-fio", Name: "Fiorentina"},
		{ID: "club-bol", Name: "Bologna"},
		{ID: "club-tor", Name: "Torino"},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "pl-gk-01", Name: "Sommer", Role: player.RoleGoalkeeper, RealTeamID: "club-int", Active: true},
		{ID: "pl-gk-02", Name: "Di Gregorio", Role: player.RoleGoalkeeper, RealTeamID: "club-juv", Active: true},
		{ID: "pl-gk-03", Name: "Maignan", Role: player.RoleGoalkeeper, RealTeamID: "club-mil", Active: true},
		{ID: "pl-gk-04", Name: "Meret", Role: player.RoleGoalkeeper, RealTeamID: "club-nap", Active: true},
		{ID: "pl-def-01", Name: "Bastoni", Role: player.RoleDefender, RealTeamID: "club-int", Active: true},
		{ID: "pl-def-02", Name: "Bremer", Role: player.RoleDefender, RealTeamID: "club-juv", Active: true},
		{ID: "pl-def-03", Name: "Tomori", Role: player.RoleDefender, RealTeamID: "club-mil", Active: true},
		{ID: "pl-def-04", Name: "Di Lorenzo", Role: player.RoleDefender, RealTeamID: "club-nap", Active: true},
		{ID: "pl-mid-01", Name: "Barella", Role: player.RoleMidfielder, RealTeamID: "club-int", Active: true},
		{ID: "pl-mid-02", Name: "Pellegrini", Role: player.RoleMidfielder, RealTeamID: "club-rom", Active: true},
		{ID: "pl-mid-03", Name: "Zaccagni", Role: player.RoleMidfielder, RealTeamID: "club-laz", Active: true},
		{ID: "pl-mid-04", Name: "Ederson", Role: player.RoleMidfielder, RealTeamID: "club-ata", Active: true},
		{ID: "pl-fwd-01", Name: "Lautaro", Role: player.RoleForward, RealTeamID: "club-int", Active: true},
		{ID: "pl-fwd-02", Name: "Kean", Role: player.RoleForward, RealTeamID: "club-fio", Active: true},
		{ID: "pl-fwd-03", Name: "Orsolini", Role: player.RoleForward, RealTeamID: "club-bol", Active: true},
		{ID: "pl-fwd-04", Name: "Zapata", Role: player.RoleForward, RealTeamID: "club-tor", Active: false},
	}
}
