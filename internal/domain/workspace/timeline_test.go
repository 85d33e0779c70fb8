package workspace

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/jan-translator/internal/domain/conversation"
)

func request(text string) conversation.TranslateRequest {
	return conversation.TranslateRequest{TextToTranslate: text, TargetLanguage: "English"}
}

func TestTimelineSettlesOutOfOrder(t *testing.T) {
	tl := NewTimeline()
	tl.Reset([]conversation.Message{{ID: 1, OriginalText: "existing"}})

	now := time.Now()
	first := tl.AddPending(7, request("one"), now)
	second := tl.AddPending(7, request("two"), now)
	third := tl.AddPending(7, request("three"), now)
	require.Len(t, tl.Pending(), 3)
	assert.NotEqual(t, first.LocalID, second.LocalID)

	_, ok := tl.Settle(third.LocalID, conversation.Message{ID: 12, OriginalText: "three"})
	require.True(t, ok)
	_, ok = tl.Fail(second.LocalID)
	require.True(t, ok)
	_, ok = tl.Settle(first.LocalID, conversation.Message{ID: 10, OriginalText: "one"})
	require.True(t, ok)

	entries := tl.Entries()
	require.Len(t, entries, 4)
	assert.Empty(t, tl.Pending())

	assert.Equal(t, int64(1), entries[0].ID)
	assert.Equal(t, conversation.MessageStatusComplete, entries[0].Status)

	assert.Equal(t, int64(10), entries[1].ID)
	assert.Equal(t, first.LocalID, entries[1].LocalID)
	assert.Equal(t, conversation.MessageStatusComplete, entries[1].Status)

	assert.Equal(t, "two", entries[2].OriginalText)
	assert.Equal(t, conversation.MessageStatusError, entries[2].Status)
	assert.Equal(t, FailedTranslation, entries[2].TranslatedText)

	assert.Equal(t, int64(12), entries[3].ID)
}

func TestTimelineSettleIsOneShot(t *testing.T) {
	tl := NewTimeline()
	entry := tl.AddPending(7, request("hello"), time.Now())

	_, ok := tl.Settle(entry.LocalID, conversation.Message{ID: 5})
	require.True(t, ok)
	_, ok = tl.Settle(entry.LocalID, conversation.Message{ID: 5})
	assert.False(t, ok)
	_, ok = tl.Fail(entry.LocalID)
	assert.False(t, ok)
	assert.Equal(t, 1, tl.Len())
}

func TestTimelineResetDropsPending(t *testing.T) {
	tl := NewTimeline()
	entry := tl.AddPending(7, request("hello"), time.Now())
	tl.Reset(nil)

	_, ok := tl.Settle(entry.LocalID, conversation.Message{ID: 5})
	assert.False(t, ok)
	assert.Zero(t, tl.Len())
}

func TestTimelineReplaceAndRemoveIgnoreUnsettledRows(t *testing.T) {
	tl := NewTimeline()
	tl.Reset([]conversation.Message{{ID: 3, OriginalText: "a"}})
	tl.AddPending(7, request("b"), time.Now())

	assert.False(t, tl.Remove(0))
	assert.True(t, tl.Replace(conversation.Message{ID: 3, OriginalText: "c"}))
	entry, ok := tl.Find(3)
	require.True(t, ok)
	assert.Equal(t, "c", entry.OriginalText)

	assert.True(t, tl.Remove(3))
	assert.False(t, tl.Remove(3))
	assert.Equal(t, 1, tl.Len())
}

func TestTimelineSearch(t *testing.T) {
	tl := NewTimeline()
	tl.Reset([]conversation.Message{
		{ID: 1, OriginalText: "Good morning", TranslatedText: "Bonjour"},
		{ID: 2, OriginalText: "Thanks", TranslatedText: "Merci"},
	})

	assert.Len(t, tl.Search(""), 2)
	found := tl.Search("bonJOUR")
	require.Len(t, found, 1)
	assert.Equal(t, int64(1), found[0].ID)
	assert.Empty(t, tl.Search("hola"))
}
