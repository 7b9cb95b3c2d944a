package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewContentRef(t *testing.T) {
	ref, err := NewContentRef(KindEvent, "event-1")
	assert.NoError(t, err)
	assert.Equal(t, KindEvent, ref.Kind)
	assert.Equal(t, "event-1", ref.ID)

	_, err = NewContentRef(ContentKind("profile"), "user-1")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown content kind")
}

func TestNews_IsPublished(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	published := News{Status: NewsPublished, PublishedAt: &past}
	assert.True(t, published.IsPublished(now))

	scheduled := News{Status: NewsPublished, PublishedAt: &future}
	assert.False(t, scheduled.IsPublished(now))

	draft := News{Status: NewsDraft, PublishedAt: &past}
	assert.False(t, draft.IsPublished(now))

	noTimestamp := News{Status: NewsPublished}
	assert.False(t, noTimestamp.IsPublished(now))
}
