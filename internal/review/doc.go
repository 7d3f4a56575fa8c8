// Package review drives one flashcard sitting: a bounded queue of due words,
// a two-phase reveal/grade interaction per word, and completion tracking
// independent of the server-side schedule.
package review
