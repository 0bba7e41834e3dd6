package domain

import (
	"sort"
	"time"
)

// Tweet is a stored record of a source account with its engagement.
type Tweet struct {
	ID           string
	Username     string
	Text         string
	Likes        int
	RetweetCount int
	IsRetweet    bool
	Timestamp    time.Time
}

// Engagement is likes plus retweets.
func (t Tweet) Engagement() int {
	return t.Likes + t.RetweetCount
}

// RankTweets filters and orders one account's tweets according to opts and
// returns at most opts.TweetsPerAccount of them. The input is not modified.
// Ties are broken by newer timestamp, then by ID.
func RankTweets(tweets []Tweet, opts MergeOptions) []Tweet {
	ranked := make([]Tweet, 0, len(tweets))
	for _, t := range tweets {
		if opts.FilterRetweets && t.IsRetweet {
			continue
		}
		ranked = append(ranked, t)
	}

	score := func(t Tweet) int64 {
		switch opts.SortBy {
		case SortByLikes:
			return int64(t.Likes)
		case SortByRetweets:
			return int64(t.RetweetCount)
		case SortByDate:
			return t.Timestamp.UnixMilli()
		default:
			return int64(t.Engagement())
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if sa, sb := score(a), score(b); sa != sb {
			return sa > sb
		}
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.After(b.Timestamp)
		}
		return a.ID < b.ID
	})

	if opts.TweetsPerAccount >= 0 && len(ranked) > opts.TweetsPerAccount {
		ranked = ranked[:opts.TweetsPerAccount]
	}
	return ranked
}

// TweetsBy returns the tweets authored by account, preserving order.
func TweetsBy(tweets []Tweet, account string) []Tweet {
	var out []Tweet
	for _, t := range tweets {
		if t.Username == account {
			out = append(out, t)
		}
	}
	return out
}
