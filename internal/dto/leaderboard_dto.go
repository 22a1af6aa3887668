package dto

// LeaderboardEntry is one intern's position on the rating board.
type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	Name   string `json:"name"`
	Rating int    `json:"rating"`
}

// LeaderboardResponse lists the top-rated interns.
type LeaderboardResponse struct {
	Entries  []LeaderboardEntry `json:"entries"`
	CacheHit bool               `json:"cache_hit"`
}
