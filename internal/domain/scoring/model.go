package scoring

// TeamScore is one team's total for one matchday, either a live value
// or a snapshot written when the admin closes the matchday.
type TeamScore struct {
	LeagueID       string
	MatchdayID     string
	MatchdayNumber int
	TeamID         string
	TeamName       string
	TotalScore     float64
	IsFinal        bool
}

// TableRow is one league-table line: cumulative total over finalized
// matchdays, ordered descending by the caller.
type TableRow struct {
	TeamID     string
	TeamName   string
	Played     int
	TotalScore float64
}

// SeriesPoint feeds the cumulative chart: one team's running total
// after a given finalized matchday.
type SeriesPoint struct {
	TeamID         string
	TeamName       string
	MatchdayNumber int
	Cumulative     float64
}
