package event_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/alumni-portal/backend/internal/donation"
	"github.com/alumni-portal/backend/internal/event"
	"github.com/alumni-portal/backend/internal/seed"
	"github.com/alumni-portal/backend/internal/testdb"
)

const gurpreet = 112201026

func seeded(t *testing.T) (*gorm.DB, event.Repository) {
	t.Helper()
	db := testdb.New(t)
	require.NoError(t, seed.Run(context.Background(), db, time.UTC))
	return db, event.NewRepository(db)
}

func TestRepository_ListWithOrganizer(t *testing.T) {
	_, repo := seeded(t)
	rows, err := repo.ListWithOrganizer(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Baisakhi Celebration", rows[0].Name)
	assert.Equal(t, "Punjabi Cultural Club", rows[0].OrganizerName)
	assert.Less(t, rows[0].ID, rows[1].ID)

	_, err = repo.GetWithOrganizer(context.Background(), 9999)
	assert.ErrorIs(t, err, event.ErrNotFound)
}

func TestRepository_DeleteDetachesDonationsAndDropsParticipants(t *testing.T) {
	db, repo := seeded(t)
	ctx := context.Background()

	rows, err := repo.ListWithOrganizer(ctx)
	require.NoError(t, err)
	eventID := rows[0].ID

	require.NoError(t, repo.AddParticipant(ctx, &event.Participation{EventID: eventID, AlumniID: gurpreet, Role: event.RoleSpeaker}))
	err = repo.AddParticipant(ctx, &event.Participation{EventID: eventID, AlumniID: gurpreet, Role: event.RoleGuest})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	d := donation.Donation{
		AlumniID:      gurpreet,
		EventID:       &eventID,
		Amount:        decimal.RequireFromString("500.00"),
		Currency:      "INR",
		TransactionID: "txn-baisakhi-1",
		DonationDate:  time.Date(2024, 4, 13, 19, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Omit("Alumni", "Event").Create(&d).Error)

	deleted, err := repo.Delete(ctx, eventID)
	require.NoError(t, err)
	assert.True(t, deleted)

	var reloaded donation.Donation
	require.NoError(t, db.First(&reloaded, d.ID).Error)
	assert.Nil(t, reloaded.EventID)

	participants, err := repo.ListParticipants(ctx, eventID)
	require.NoError(t, err)
	assert.Empty(t, participants)

	deleted, err = repo.Delete(ctx, eventID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestRepository_UnknownOrganizerIsForeignKeyViolation(t *testing.T) {
	_, repo := seeded(t)
	err := repo.Create(context.Background(), &event.Event{
		Name:        "Orphan",
		Type:        event.TypeWebinar,
		StartTime:   time.Now(),
		OrganizerID: 4242,
	})
	assert.ErrorIs(t, err, gorm.ErrForeignKeyViolated)
}
