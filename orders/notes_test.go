package orders

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotesAuthorOnlyMutation(t *testing.T) {
	l, notifier, _ := newTestLifecycle(t)
	ctx := context.Background()

	order, err := l.CreateOrder(ctx, testUser(), testCart(), "", "")
	require.NoError(t, err)
	created := len(notifier.sent)

	note, err := l.AddNote(ctx, order.ID, "admin-1", "Sam", "customer asked for a callback")
	require.NoError(t, err)

	// Another admin cannot edit or delete it.
	_, err = l.UpdateNote(ctx, note.ID, "admin-2", "edited")
	assert.ErrorIs(t, err, ErrNotNoteAuthor)
	assert.ErrorIs(t, l.DeleteNote(ctx, note.ID, "admin-2"), ErrNotNoteAuthor)

	// The author can.
	updated, err := l.UpdateNote(ctx, note.ID, "admin-1", "callback done")
	require.NoError(t, err)
	assert.Equal(t, "callback done", updated.Content)
	require.NoError(t, l.DeleteNote(ctx, note.ID, "admin-1"))

	notes, err := l.Notes(ctx, order.ID)
	require.NoError(t, err)
	assert.Empty(t, notes)

	// Note operations never touch the state machine or notifications.
	assert.Len(t, notifier.sent, created)
}

func TestAddNoteUnknownOrder(t *testing.T) {
	l, _, _ := newTestLifecycle(t)
	_, err := l.AddNote(context.Background(), 999, "admin-1", "Sam", "hello")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestUpdateUnknownNote(t *testing.T) {
	l, _, _ := newTestLifecycle(t)
	_, err := l.UpdateNote(context.Background(), 999, "admin-1", "hello")
	assert.ErrorIs(t, err, ErrNoteNotFound)
}
