package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Vibush01/EasyFitTrack/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newScheduleFixture(t *testing.T) (ScheduleService, *fakeScheduleRepo) {
	t.Helper()
	repo := newFakeScheduleRepo()
	return NewScheduleService(repo), repo
}

func postTestSlot(t *testing.T, svc ScheduleService, trainerID primitive.ObjectID) *domain.ScheduleSlot {
	t.Helper()
	start := time.Date(2025, time.July, 1, 7, 0, 0, 0, time.UTC)
	slot, err := svc.PostSlot(context.Background(), trainerID, start, start.Add(time.Hour))
	require.NoError(t, err)
	return slot
}

func TestPostSlot_Validation(t *testing.T) {
	svc, _ := newScheduleFixture(t)
	trainerID := primitive.NewObjectID()
	start := time.Date(2025, time.July, 1, 7, 0, 0, 0, time.UTC)

	_, err := svc.PostSlot(context.Background(), trainerID, start, start)
	assert.True(t, domain.IsKind(err, domain.ErrKindValidation))

	_, err = svc.PostSlot(context.Background(), trainerID, start.Add(time.Hour), start)
	assert.True(t, domain.IsKind(err, domain.ErrKindValidation))

	_, err = svc.PostSlot(context.Background(), trainerID, time.Time{}, start)
	assert.True(t, domain.IsKind(err, domain.ErrKindValidation))
}

func TestPostSlot_OverlapPermitted(t *testing.T) {
	svc, _ := newScheduleFixture(t)
	trainerID := primitive.NewObjectID()
	start := time.Date(2025, time.July, 1, 7, 0, 0, 0, time.UTC)

	_, err := svc.PostSlot(context.Background(), trainerID, start, start.Add(time.Hour))
	require.NoError(t, err)
	// Identical window again: slots are independent bookables, not a calendar.
	_, err = svc.PostSlot(context.Background(), trainerID, start, start.Add(time.Hour))
	assert.NoError(t, err)

	slots, err := svc.ListTrainerSlots(context.Background(), trainerID)
	require.NoError(t, err)
	assert.Len(t, slots, 2)
}

func TestBookSlot_MovesSlotToBooked(t *testing.T) {
	svc, _ := newScheduleFixture(t)
	trainerID := primitive.NewObjectID()
	memberID := primitive.NewObjectID()
	slot := postTestSlot(t, svc, trainerID)

	booked, err := svc.BookSlot(context.Background(), slot.ID, memberID)
	require.NoError(t, err)
	assert.Equal(t, domain.SlotBooked, booked.Status)
	require.NotNil(t, booked.BookedBy)
	assert.Equal(t, memberID, *booked.BookedBy)

	// The slot leaves the availability view and shows up in the member's
	// bookings.
	available, err := svc.ListAvailableSlots(context.Background(), trainerID)
	require.NoError(t, err)
	assert.Empty(t, available)

	bookings, err := svc.ListMemberBookings(context.Background(), memberID)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, slot.ID, bookings[0].ID)
}

func TestBookSlot_NotFound(t *testing.T) {
	svc, _ := newScheduleFixture(t)
	_, err := svc.BookSlot(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	assert.True(t, domain.IsKind(err, domain.ErrKindNotFound))
}

func TestBookSlot_AlreadyBooked(t *testing.T) {
	svc, _ := newScheduleFixture(t)
	slot := postTestSlot(t, svc, primitive.NewObjectID())

	_, err := svc.BookSlot(context.Background(), slot.ID, primitive.NewObjectID())
	require.NoError(t, err)

	_, err = svc.BookSlot(context.Background(), slot.ID, primitive.NewObjectID())
	assert.True(t, domain.IsKind(err, domain.ErrKindInvalidState))
}

func TestBookSlot_ConcurrentSingleWinner(t *testing.T) {
	svc, repo := newScheduleFixture(t)
	slot := postTestSlot(t, svc, primitive.NewObjectID())

	const contenders = 32
	var wg sync.WaitGroup
	results := make(chan error, contenders)
	winners := make(chan primitive.ObjectID, contenders)

	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			memberID := primitive.NewObjectID()
			if _, err := svc.BookSlot(context.Background(), slot.ID, memberID); err != nil {
				results <- err
				return
			}
			winners <- memberID
		}()
	}
	wg.Wait()
	close(results)
	close(winners)

	var winnerIDs []primitive.ObjectID
	for id := range winners {
		winnerIDs = append(winnerIDs, id)
	}
	require.Len(t, winnerIDs, 1, "exactly one booking attempt must win")

	for err := range results {
		assert.True(t, domain.IsKind(err, domain.ErrKindInvalidState), "losers must observe invalid state, got %v", err)
	}

	// The stored slot belongs to the winner.
	stored, err := repo.GetByID(context.Background(), slot.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SlotBooked, stored.Status)
	require.NotNil(t, stored.BookedBy)
	assert.Equal(t, winnerIDs[0], *stored.BookedBy)
}

func TestDeleteSlot_OwnerOnly(t *testing.T) {
	svc, _ := newScheduleFixture(t)
	trainerID := primitive.NewObjectID()
	slot := postTestSlot(t, svc, trainerID)

	err := svc.DeleteSlot(context.Background(), slot.ID, primitive.NewObjectID())
	assert.True(t, domain.IsKind(err, domain.ErrKindAuthorization))

	err = svc.DeleteSlot(context.Background(), slot.ID, trainerID)
	assert.NoError(t, err)

	err = svc.DeleteSlot(context.Background(), slot.ID, trainerID)
	assert.True(t, domain.IsKind(err, domain.ErrKindNotFound))
}

func TestDeleteSlot_BookedSlotSurvives(t *testing.T) {
	svc, repo := newScheduleFixture(t)
	trainerID := primitive.NewObjectID()
	slot := postTestSlot(t, svc, trainerID)

	_, err := svc.BookSlot(context.Background(), slot.ID, primitive.NewObjectID())
	require.NoError(t, err)

	err = svc.DeleteSlot(context.Background(), slot.ID, trainerID)
	assert.True(t, domain.IsKind(err, domain.ErrKindInvalidState))

	stored, err := repo.GetByID(context.Background(), slot.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SlotBooked, stored.Status)
}
