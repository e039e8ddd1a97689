package postgres

import (
	"testing"
	"time"

	"aevum/internal/domain/entity"
	"aevum/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournalEntryMapper_RoundTripsEntryDate(t *testing.T) {
	entry := &entity.JournalEntry{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Title:     "Morning run",
		Content:   "5k before work.",
		Mood:      8,
		Energy:    7,
		Tags:      []string{"exercise"},
		EntryDate: "2026-08-24",
	}

	entryM, err := fromJournalEntryDomain(entry)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), entryM.EntryDate)

	got := toJournalEntryDomain(entryM)
	assert.Equal(t, "2026-08-24", got.EntryDate)
}

func TestJournalEntryMapper_FormatsDriverTimestampAsDay(t *testing.T) {
	// A Postgres date column scans back as a midnight time.Time, never as
	// the submitted string. The domain side must still see the plain day.
	entryM := &model.JournalEntryModel{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Content:   "entry",
		Mood:      5,
		Energy:    5,
		EntryDate: time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
	}

	got := toJournalEntryDomain(entryM)

	assert.Equal(t, "2026-08-24", got.EntryDate)
}

func TestJournalEntryMapper_RejectsMalformedDate(t *testing.T) {
	_, err := fromJournalEntryDomain(&entity.JournalEntry{
		UserID:    uuid.New(),
		Content:   "entry",
		Mood:      5,
		Energy:    5,
		EntryDate: "2026-08-24T00:00:00Z",
	})

	require.Error(t, err)
}
