package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTitle(t *testing.T) {
	title, err := NormalizeTitle("  Top 5 AI Tools  ")
	require.NoError(t, err)
	assert.Equal(t, "Top 5 AI Tools", title)

	_, err = NormalizeTitle("")
	assert.Error(t, err)

	_, err = NormalizeTitle("   \t  ")
	assert.Error(t, err)

	_, err = NormalizeTitle(strings.Repeat("x", MaxTitleLen+1))
	assert.Error(t, err)

	title, err = NormalizeTitle(strings.Repeat("x", MaxTitleLen))
	require.NoError(t, err)
	assert.Len(t, title, MaxTitleLen)
}

func TestValidateNotes(t *testing.T) {
	assert.NoError(t, ValidateNotes(nil))

	ok := strings.Repeat("n", MaxNotesLen)
	assert.NoError(t, ValidateNotes(&ok))

	tooLong := strings.Repeat("n", MaxNotesLen+1)
	assert.Error(t, ValidateNotes(&tooLong))
}

func TestStageAndPriorityValid(t *testing.T) {
	for _, s := range []Stage{StageIdea, StageOutline, StageDraft, StagePublished} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, Stage("review").Valid())
	assert.False(t, Stage("").Valid())

	for _, p := range []Priority{PriorityHigh, PriorityMedium, PriorityLow} {
		assert.True(t, p.Valid(), string(p))
	}
	assert.False(t, Priority("urgent").Valid())
}

func TestTagsRoundTrip(t *testing.T) {
	tags := []string{"blog", "ai"}
	stored := TagsToString(tags)
	assert.Equal(t, "blog,ai", stored)

	// Insertion order is preserved for display.
	assert.Equal(t, tags, TagsFromString(stored))
}

func TestTagsNormalization(t *testing.T) {
	assert.Equal(t, "blog,ai", TagsToString([]string{" blog ", "", "ai"}))
	assert.Equal(t, []string{}, TagsFromString(""))
	assert.Equal(t, []string{"solo"}, TagsFromString("solo"))
}

func TestUpdateRequestValidate(t *testing.T) {
	var ok UpdateIdeaRequest
	require.NoError(t, json.Unmarshal([]byte(`{"stage":"draft","notes":null,"tags":null}`), &ok))
	assert.NoError(t, ok.Validate())

	bad := []string{
		`{"title":null}`,
		`{"title":"   "}`,
		`{"stage":null}`,
		`{"stage":"review"}`,
		`{"priority":null}`,
		`{"priority":"urgent"}`,
	}
	for _, body := range bad {
		var patch UpdateIdeaRequest
		require.NoError(t, json.Unmarshal([]byte(body), &patch), body)
		assert.Error(t, patch.Validate(), body)
	}
}

func TestUpdateRequestPresence(t *testing.T) {
	var patch UpdateIdeaRequest
	require.NoError(t, json.Unmarshal([]byte(`{"priority":"high","notes":null}`), &patch))

	assert.True(t, patch.Has("priority"))
	require.NotNil(t, patch.Priority)
	assert.Equal(t, PriorityHigh, *patch.Priority)

	// Explicit null is present but nil; absent keys are neither.
	assert.True(t, patch.Has("notes"))
	assert.Nil(t, patch.Notes)
	assert.False(t, patch.Has("title"))
	assert.False(t, patch.Has("due_date"))
}
