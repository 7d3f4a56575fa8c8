package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// TodayTasks fetches up to limit due words (new + review, server-ranked) for
// the dictionary.
func (c *Client) TodayTasks(ctx context.Context, dictionaryID int64, limit int) (*TodayTasks, error) {
	params := url.Values{}
	params.Set("dictId", strconv.FormatInt(dictionaryID, 10))
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	var out TodayTasks
	if err := c.gw.Do(ctx, http.MethodGet, "/learning/today-tasks?"+params.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitOutcome forwards one graded review to the backend scheduler.
func (c *Client) SubmitOutcome(ctx context.Context, sub Submission) error {
	return c.gw.Do(ctx, http.MethodPost, "/learning/submit", sub, nil)
}

// LearningStats fetches the learner's aggregate progress.
func (c *Client) LearningStats(ctx context.Context) (*LearningStats, error) {
	var out LearningStats
	if err := c.gw.Do(ctx, http.MethodGet, "/learning/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
