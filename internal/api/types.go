package api

import "recall/internal/session"

// AuthResult is the credential pair and identity returned by the auth endpoints.
type AuthResult struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         session.User `json:"user"`
}

// Dictionary is one uploaded word list with learning progress counters.
type Dictionary struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	TotalWords   int     `json:"totalWords"`
	LearnedWords int     `json:"learnedWords"`
	Progress     float64 `json:"progress"`
	CreatedAt    string  `json:"createdAt"`
}

// TaskStatus is the lifecycle of a server-side import job.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskProcessing TaskStatus = "processing"
	TaskCompleted  TaskStatus = "completed"
	TaskFailed     TaskStatus = "failed"
)

// Terminal reports whether no further status transitions can occur.
func (s TaskStatus) Terminal() bool {
	return s == TaskCompleted || s == TaskFailed
}

// FailedWord records one word the import pipeline could not process.
type FailedWord struct {
	Word   string `json:"word"`
	Stage  string `json:"stage"`
	Reason string `json:"reason"`
	At     string `json:"at"`
}

// ImportStatus is the snapshot the backend reports for an import task.
type ImportStatus struct {
	TaskID        string       `json:"taskId"`
	Status        TaskStatus   `json:"status"`
	Progress      int          `json:"progress"`
	Total         int          `json:"total"`
	Processed     int          `json:"processed"`
	FailedWords   []string     `json:"failedWords"`
	FailedDetails []FailedWord `json:"failedDetails"`
}

// Definition is a single part-of-speech gloss for a word.
type Definition struct {
	PartOfSpeech string `json:"pos"`
	Text         string `json:"text"`
}

// Meaning groups a word's definitions.
type Meaning struct {
	Definitions []Definition `json:"definitions"`
}

// Word is one vocabulary item served for review.
type Word struct {
	ID       int64   `json:"id"`
	Text     string  `json:"word"`
	Phonetic string  `json:"phonetic,omitempty"`
	Meaning  Meaning `json:"meaning"`
	Example  string  `json:"example,omitempty"`
}

// TodayTasks is the server-ranked due set for one sitting.
type TodayTasks struct {
	Words       []Word `json:"words"`
	ReviewCount int    `json:"reviewCount"`
	NewCount    int    `json:"newCount"`
}

// Submission is one graded review outcome. Quality is opaque to the client;
// the backend scheduler interprets the 0..5 scale.
type Submission struct {
	WordID       int64 `json:"wordId"`
	Quality      int   `json:"quality"`
	DictionaryID int64 `json:"dictId"`
}

// LearningStats is the aggregate progress the backend tracks per learner.
type LearningStats struct {
	TotalLearned int `json:"totalLearned"`
	StreakDays   int `json:"streakDays"`
}
