package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJournalEntryTypeFromString(t *testing.T) {
	for _, valid := range []string{"task", "note", "highlight", "routine", "reflection"} {
		got, err := JournalEntryTypeFromString(valid)
		assert.NoError(t, err)
		assert.Equal(t, JournalEntryType(valid), got)
	}

	_, err := JournalEntryTypeFromString("meeting")
	assert.Error(t, err)
	_, err = JournalEntryTypeFromString("")
	assert.Error(t, err)
}
