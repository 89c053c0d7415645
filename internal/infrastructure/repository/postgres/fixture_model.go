package postgres

import "github.com/fantachat/fantachat-api/internal/domain/fixture"

type fixtureTableModel struct {
	MatchdayID string `db:"matchday_id"`
	Position   int    `db:"position"`
	HomeClubID string `db:"home_club_id"`
	AwayClubID string `db:"away_club_id"`
}

func fixtureFromRow(row fixtureTableModel) fixture.Fixture {
	return fixture.Fixture{
		MatchdayID: row.MatchdayID,
		Position:   row.Position,
		HomeClubID: row.HomeClubID,
		AwayClubID: row.AwayClubID,
	}
}
