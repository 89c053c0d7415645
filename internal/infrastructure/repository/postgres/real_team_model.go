package postgres

import "github.com/fantachat/fantachat-api/internal/domain/realteam"

type realTeamTableModel struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}

type top6TableModel struct {
	MatchdayID string `db:"matchday_id"`
	Rank       int    `db:"rank"`
	RealTeamID string `db:"real_team_id"`
}

func realTeamFromRow(row realTeamTableModel) realteam.RealTeam {
	return realteam.RealTeam{
		ID:   row.ID,
		Name: row.Name,
	}
}

func top6EntryFromRow(row top6TableModel) realteam.Top6Entry {
	return realteam.Top6Entry{
		MatchdayID: row.MatchdayID,
		Rank:       row.Rank,
		RealTeamID: row.RealTeamID,
	}
}
