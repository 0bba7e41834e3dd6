package corpus

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/corpusforge/internal/core/domain"
	"github.com/custodia-labs/corpusforge/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.TweetReader = (*Reader)(nil)

// Reader parses tweet exports. A file is either one JSON array of tweets
// or one tweet object per line.
type Reader struct{}

// NewReader creates a new tweet export reader.
func NewReader() *Reader {
	return &Reader{}
}

// exportedTweet is a tweet as written by the scraper export.
type exportedTweet struct {
	ID           json.RawMessage `json:"id"`
	Text         string          `json:"text"`
	Username     string          `json:"username"`
	Likes        int             `json:"likes"`
	RetweetCount int             `json:"retweetCount"`
	IsRetweet    bool            `json:"isRetweet"`
	Timestamp    json.RawMessage `json:"timestamp"`
}

// ReadTweets returns the tweets in path. Records without text are skipped;
// records without a username are attributed to account.
func (r *Reader) ReadTweets(path, account string) ([]domain.Tweet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	raw, err := decodeExport(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	tweets := make([]domain.Tweet, 0, len(raw))
	for i, et := range raw {
		text := strings.TrimSpace(et.Text)
		if text == "" {
			continue
		}
		ts, err := parseTimestamp(et.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: record %d: %w", path, i+1, err)
		}

		t := domain.Tweet{
			ID:           rawString(et.ID),
			Username:     strings.TrimPrefix(et.Username, "@"),
			Text:         text,
			Likes:        et.Likes,
			RetweetCount: et.RetweetCount,
			IsRetweet:    et.IsRetweet,
			Timestamp:    ts,
		}
		if t.Username == "" {
			t.Username = account
		}
		if t.ID == "" {
			t.ID = syntheticID(account, t)
		}
		tweets = append(tweets, t)
	}
	return tweets, nil
}

func decodeExport(data []byte) ([]exportedTweet, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var all []exportedTweet
		if err := json.Unmarshal(trimmed, &all); err != nil {
			return nil, err
		}
		return all, nil
	}

	var all []exportedTweet
	scanner := bufio.NewScanner(bytes.NewReader(trimmed))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		var et exportedTweet
		if err := json.Unmarshal(text, &et); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		all = append(all, et)
	}
	return all, scanner.Err()
}

// rawString accepts an ID written as a JSON string or number.
func rawString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// parseTimestamp accepts epoch milliseconds, a numeric string or RFC 3339.
func parseTimestamp(raw json.RawMessage) (time.Time, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return time.Time{}, nil
	}

	var ms float64
	if err := json.Unmarshal(raw, &ms); err == nil {
		return time.UnixMilli(int64(ms)).UTC(), nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}, fmt.Errorf("timestamp %s: %w", raw, domain.ErrInvalidInput)
	}
	if s == "" {
		return time.Time{}, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(n).UTC(), nil
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("timestamp %q: %w", s, domain.ErrInvalidInput)
	}
	return ts.UTC(), nil
}

// syntheticID derives a stable ID so re-importing the same export updates
// rather than duplicates.
func syntheticID(account string, t domain.Tweet) string {
	key := account + "\x00" + t.Text + strconv.FormatInt(t.Timestamp.UnixMilli(), 10)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)).String()
}
