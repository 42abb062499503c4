package fleet

import "time"

// Cart is the current state of one cart: one status from the closed set and
// a bounded free-text comment.
type Cart struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
}

// ChangeType tags which field(s) a history entry records.
type ChangeType string

const (
	ChangeStatus  ChangeType = "status"
	ChangeComment ChangeType = "comment"
	ChangeBoth    ChangeType = "both"
)

// CommentAction classifies a comment transition within an update.
type CommentAction string

const (
	CommentAdded   CommentAction = "Added"
	CommentDeleted CommentAction = "Deleted"
	CommentEdited  CommentAction = "Edited"
	CommentNone    CommentAction = "None"
)

// UnknownActor is recorded when no authenticated user is in context.
const UnknownActor = "Unknown"

// HistoryEntry is an immutable record of one cart update that changed
// something. Entries are append-only: never mutated or deleted once written
// (retention pruning is a filter applied at append time).
//
// OldValue/NewValue carry the status transition; for a comment-only change
// they are equal. Comment carries the applied comment and CommentAction
// classifies its transition.
type HistoryEntry struct {
	TS            int64         `json:"ts"`
	Date          string        `json:"date"`
	Time          string        `json:"time"`
	Change        ChangeType    `json:"change_type"`
	OldValue      string        `json:"old_value"`
	NewValue      string        `json:"new_value"`
	Comment       string        `json:"comment"`
	CommentAction CommentAction `json:"comment_action"`
	User          string        `json:"user"`
}

// NewHistoryEntry builds the combined entry for an update that changed the
// status, the comment, or both. The caller guarantees at least one field
// actually changed; values are already normalized and truncated.
func NewHistoryEntry(now time.Time, old, applied Cart, actor string) HistoryEntry {
	if actor == "" {
		actor = UnknownActor
	}

	change := ChangeBoth
	statusChanged := old.Status != applied.Status
	commentChanged := old.Comment != applied.Comment
	switch {
	case statusChanged && !commentChanged:
		change = ChangeStatus
	case commentChanged && !statusChanged:
		change = ChangeComment
	}

	return HistoryEntry{
		TS:            now.Unix(),
		Date:          now.Format("2006-01-02"),
		Time:          now.Format("15:04:05"),
		Change:        change,
		OldValue:      old.Status,
		NewValue:      applied.Status,
		Comment:       applied.Comment,
		CommentAction: classifyComment(old.Comment, applied.Comment),
		User:          actor,
	}
}

// classifyComment derives the comment action for a transition.
func classifyComment(old, new string) CommentAction {
	switch {
	case old == new:
		return CommentNone
	case old == "":
		return CommentAdded
	case new == "":
		return CommentDeleted
	default:
		return CommentEdited
	}
}

// TruncateComment caps a comment at max characters (runes, not bytes).
// Truncation happens before diffing and before storage, so an over-long
// submission that truncates to the stored value is not a change.
func TruncateComment(comment string, max int) string {
	if max <= 0 {
		return comment
	}
	runes := []rune(comment)
	if len(runes) <= max {
		return comment
	}
	return string(runes[:max])
}
