// Package ranking computes deterministic leaderboards from a roster and its
// submitted entries. All functions are pure: identical input yields
// identical output, independent of input ordering.
package ranking

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"clubhub/internal/models"
)

// PublicTopTimes is how many rows the public time-attack leaderboard shows.
const PublicTopTimes = 10

// ScoreRow is one line of a score leaderboard. Every roster member gets a
// row; members without a submission score zero.
type ScoreRow struct {
	Rank     int    `json:"rank"`
	Username string `json:"username"`
	Score    int64  `json:"score"`
}

// TimeRow is one line of a time-attack leaderboard. TimeMillis is nil for
// members without a submission; such rows carry Rank 0 and sort last.
type TimeRow struct {
	Rank       int    `json:"rank,omitempty"`
	Username   string `json:"username"`
	TimeMillis *int64 `json:"time_millis"`
	ImageURL   string `json:"image_url,omitempty"`
}

var usernameCollator = collate.New(language.Und)

// RankScores left-joins the roster with score entries by username and
// returns the full leaderboard: score descending, ties broken by collated
// username ascending, ranks 1-based. Output has exactly one row per roster
// member.
func RankScores(roster []models.Member, entries []models.ScoreEntry) []ScoreRow {
	scores := make(map[string]int64, len(entries))
	for _, e := range entries {
		scores[e.Username] = e.Score
	}

	rows := make([]ScoreRow, 0, len(roster))
	for _, m := range roster {
		rows = append(rows, ScoreRow{
			Username: m.Username,
			Score:    scores[m.Username],
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Score != rows[j].Score {
			return rows[i].Score > rows[j].Score
		}
		return usernameCollator.CompareString(rows[i].Username, rows[j].Username) < 0
	})

	for i := range rows {
		rows[i].Rank = i + 1
	}

	return rows
}

// RankTimes left-joins the roster with time-attack entries: members with a
// time sort ascending and take ranks 1..n; members without one follow in
// roster order, unranked.
func RankTimes(roster []models.Member, entries []models.TimeAttackEntry) []TimeRow {
	byUser := make(map[string]models.TimeAttackEntry, len(entries))
	for _, e := range entries {
		byUser[e.Username] = e
	}

	var timed, untimed []TimeRow
	for _, m := range roster {
		if e, ok := byUser[m.Username]; ok {
			t := e.TimeMillis
			timed = append(timed, TimeRow{
				Username:   m.Username,
				TimeMillis: &t,
				ImageURL:   e.ImageURL,
			})
		} else {
			untimed = append(untimed, TimeRow{Username: m.Username})
		}
	}

	sort.SliceStable(timed, func(i, j int) bool {
		return *timed[i].TimeMillis < *timed[j].TimeMillis
	})

	for i := range timed {
		timed[i].Rank = i + 1
	}

	return append(timed, untimed...)
}

// TopTimes caps a merged time leaderboard to its k fastest recorded rows,
// dropping unranked members. This is the public view.
func TopTimes(rows []TimeRow, k int) []TimeRow {
	top := make([]TimeRow, 0, k)
	for _, r := range rows {
		if r.TimeMillis == nil {
			break
		}
		top = append(top, r)
		if len(top) == k {
			break
		}
	}
	return top
}
