// Copyright (c) 2026 BlogTruyenTranhAI. All rights reserved.
// Author: ledong198910@gmail.com

package comic

// Rating is a single reader's score for a comic. A comic holds at most one
// rating per user; re-rating replaces the previous entry.
type Rating struct {
	UserID    string `json:"user_id"`
	Score     int    `json:"score"` // 1..5
	CreatedAt int64  `json:"created_at"`
}

// Rate returns a new comic with the user's rating upserted.
//
// The ratings list keeps first-rating order; replacing a score does not move
// the entry.
func Rate(c Comic, userID string, score int, at int64) Comic {
	out := c
	out.Ratings = make([]Rating, len(c.Ratings))
	copy(out.Ratings, c.Ratings)

	for i := range out.Ratings {
		if out.Ratings[i].UserID == userID {
			out.Ratings[i].Score = score
			out.Ratings[i].CreatedAt = at
			return out
		}
	}

	out.Ratings = append(out.Ratings, Rating{UserID: userID, Score: score, CreatedAt: at})
	return out
}

// AverageRating returns the mean score, or 0 for an unrated comic.
func AverageRating(c Comic) float64 {
	if len(c.Ratings) == 0 {
		return 0
	}

	sum := 0
	for _, r := range c.Ratings {
		sum += r.Score
	}
	return float64(sum) / float64(len(c.Ratings))
}
