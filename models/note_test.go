package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNoteState(t *testing.T) {
	now := time.Now().UTC()

	closed := Note{}
	assert.Equal(t, NoteClosed, closed.State())

	open := Note{OpenedAt: &now}
	assert.Equal(t, NoteOpen, open.State())

	pinned := Note{OpenedAt: &now, PinnedAt: &now}
	assert.Equal(t, NotePinned, pinned.State())

	// A pin timestamp without an open timestamp still reads as closed; the
	// services never produce this combination.
	stray := Note{PinnedAt: &now}
	assert.Equal(t, NoteClosed, stray.State())
}
