package fleet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestNewHistoryEntry_ChangeTags tests the combined-entry change tag for
// each kind of update.
func TestNewHistoryEntry_ChangeTags(t *testing.T) {
	now := time.Date(2024, 6, 1, 14, 30, 5, 0, time.Local)

	tests := []struct {
		name       string
		old, new   Cart
		wantChange ChangeType
		wantAction CommentAction
	}{
		{
			name:       "status only",
			old:        Cart{Status: "Unassigned"},
			new:        Cart{Status: "Charging"},
			wantChange: ChangeStatus,
			wantAction: CommentNone,
		},
		{
			name:       "comment added",
			old:        Cart{Status: "Charging"},
			new:        Cart{Status: "Charging", Comment: "battery ok"},
			wantChange: ChangeComment,
			wantAction: CommentAdded,
		},
		{
			name:       "comment deleted",
			old:        Cart{Status: "Charging", Comment: "battery ok"},
			new:        Cart{Status: "Charging"},
			wantChange: ChangeComment,
			wantAction: CommentDeleted,
		},
		{
			name:       "both, comment edited",
			old:        Cart{Status: "Charging", Comment: "old note"},
			new:        Cart{Status: "Out of Service", Comment: "new note"},
			wantChange: ChangeBoth,
			wantAction: CommentEdited,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewHistoryEntry(now, tt.old, tt.new, "alice")
			assert.Equal(t, tt.wantChange, e.Change)
			assert.Equal(t, tt.wantAction, e.CommentAction)
			assert.Equal(t, tt.old.Status, e.OldValue)
			assert.Equal(t, tt.new.Status, e.NewValue)
			assert.Equal(t, tt.new.Comment, e.Comment)
			assert.Equal(t, "alice", e.User)
			assert.Equal(t, "2024-06-01", e.Date)
			assert.Equal(t, "14:30:05", e.Time)
			assert.Equal(t, now.Unix(), e.TS)
		})
	}
}

// TestNewHistoryEntry_UnknownActor verifies the placeholder identity.
func TestNewHistoryEntry_UnknownActor(t *testing.T) {
	e := NewHistoryEntry(time.Now(), Cart{Status: "a"}, Cart{Status: "b"}, "")
	assert.Equal(t, UnknownActor, e.User)
}
