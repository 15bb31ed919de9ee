package service

import (
	"context"
	"testing"
	"time"

	"github.com/Vibush01/EasyFitTrack/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type gymFixture struct {
	svc              GymService
	userRepo         *fakeUserRepo
	requestRepo      *fakeMembershipRequestRepo
	announcementRepo *fakeAnnouncementRepo
}

func newGymFixture(t *testing.T) *gymFixture {
	t.Helper()
	f := &gymFixture{
		userRepo:         newFakeUserRepo(),
		requestRepo:      newFakeMembershipRequestRepo(),
		announcementRepo: newFakeAnnouncementRepo(),
	}
	f.svc = NewGymService(f.userRepo, f.requestRepo, f.announcementRepo)
	return f
}

func TestListGyms_OnlyGyms(t *testing.T) {
	f := newGymFixture(t)
	newTestGym(f.userRepo, "iron-temple")
	newTestGym(f.userRepo, "steel-city")
	newTestMember(f.userRepo, "asha")

	gyms, err := f.svc.ListGyms(context.Background())
	require.NoError(t, err)
	assert.Len(t, gyms, 2)
	for _, g := range gyms {
		assert.Equal(t, domain.RoleGym, g.Role)
		assert.Empty(t, g.PasswordHash)
	}
}

func TestGetGym_NonGymIsNotFound(t *testing.T) {
	f := newGymFixture(t)
	member := newTestMember(f.userRepo, "asha")

	_, err := f.svc.GetGym(context.Background(), member.ID)
	assert.True(t, domain.IsKind(err, domain.ErrKindNotFound))

	_, err = f.svc.GetGym(context.Background(), primitive.NewObjectID())
	assert.True(t, domain.IsKind(err, domain.ErrKindNotFound))
}

func TestJoinAsTrainer(t *testing.T) {
	f := newGymFixture(t)
	gym := newTestGym(f.userRepo, "iron-temple")
	trainer := newTestTrainer(f.userRepo, "kiran", nil)

	require.NoError(t, f.svc.JoinAsTrainer(context.Background(), gym.ID, trainer.ID))

	updatedGym, err := f.userRepo.GetByID(context.Background(), gym.ID)
	require.NoError(t, err)
	assert.Contains(t, updatedGym.TrainerIDs, trainer.ID)

	updatedTrainer, err := f.userRepo.GetByID(context.Background(), trainer.ID)
	require.NoError(t, err)
	require.NotNil(t, updatedTrainer.GymID)
	assert.Equal(t, gym.ID, *updatedTrainer.GymID)

	// Rejoining the same gym is a no-op, but a second gym conflicts.
	assert.NoError(t, f.svc.JoinAsTrainer(context.Background(), gym.ID, trainer.ID))
	otherGym := newTestGym(f.userRepo, "steel-city")
	err = f.svc.JoinAsTrainer(context.Background(), otherGym.ID, trainer.ID)
	assert.True(t, domain.IsKind(err, domain.ErrKindConflict))
}

func TestRemoveMember(t *testing.T) {
	f := newGymFixture(t)
	gym := newTestGym(f.userRepo, "iron-temple")
	member := newTestMember(f.userRepo, "asha")
	gymID := gym.ID
	member.GymID = &gymID
	member.Membership = &domain.Membership{
		Duration:  domain.DurationOneMonth,
		StartDate: time.Now().UTC(),
		EndDate:   time.Now().UTC().AddDate(0, 1, 0),
	}
	f.userRepo.put(member)
	require.NoError(t, f.userRepo.AddMemberToGym(context.Background(), gym.ID, member.ID))

	// Only the gym itself may remove.
	err := f.svc.RemoveMember(context.Background(), gym.ID, member.ID, primitive.NewObjectID())
	assert.True(t, domain.IsKind(err, domain.ErrKindAuthorization))

	require.NoError(t, f.svc.RemoveMember(context.Background(), gym.ID, member.ID, gym.ID))

	updatedGym, err := f.userRepo.GetByID(context.Background(), gym.ID)
	require.NoError(t, err)
	assert.NotContains(t, updatedGym.MemberIDs, member.ID)

	updatedMember, err := f.userRepo.GetByID(context.Background(), member.ID)
	require.NoError(t, err)
	assert.Nil(t, updatedMember.GymID)
	assert.Nil(t, updatedMember.Membership)

	// Removing again: the member no longer belongs to this gym.
	err = f.svc.RemoveMember(context.Background(), gym.ID, member.ID, gym.ID)
	assert.True(t, domain.IsKind(err, domain.ErrKindInvalidState))
}

func TestDeleteGym_AdminOnlyCascade(t *testing.T) {
	f := newGymFixture(t)
	admin := &domain.User{Name: "root", Email: "root@example.com", Role: domain.RoleAdmin}
	f.userRepo.put(admin)
	gym := newTestGym(f.userRepo, "iron-temple")
	gymID := gym.ID
	trainer := newTestTrainer(f.userRepo, "kiran", &gymID)
	member := newTestMember(f.userRepo, "asha")
	member.GymID = &gymID
	f.userRepo.put(member)

	// Seed dependent records: a pending request, a resolved one, and an
	// announcement.
	pendingID, err := f.requestRepo.Create(context.Background(), &domain.MembershipRequest{
		MemberID: member.ID, GymID: gym.ID, RequestedDuration: domain.DurationOneMonth, Status: domain.RequestPending,
	})
	require.NoError(t, err)
	resolvedID, err := f.requestRepo.Create(context.Background(), &domain.MembershipRequest{
		MemberID: primitive.NewObjectID(), GymID: gym.ID, RequestedDuration: domain.DurationOneWeek, Status: domain.RequestDenied,
	})
	require.NoError(t, err)
	annID, err := f.announcementRepo.Create(context.Background(), &domain.Announcement{GymID: gym.ID, Message: "hi"})
	require.NoError(t, err)

	// Non-admin actors are refused.
	err = f.svc.DeleteGym(context.Background(), gym.ID, gym.ID)
	assert.True(t, domain.IsKind(err, domain.ErrKindAuthorization))

	require.NoError(t, f.svc.DeleteGym(context.Background(), gym.ID, admin.ID))

	_, err = f.userRepo.GetByID(context.Background(), gym.ID)
	assert.Error(t, err)

	// Members and trainers are orphaned, not deleted.
	updatedTrainer, err := f.userRepo.GetByID(context.Background(), trainer.ID)
	require.NoError(t, err)
	assert.Nil(t, updatedTrainer.GymID)
	updatedMember, err := f.userRepo.GetByID(context.Background(), member.ID)
	require.NoError(t, err)
	assert.Nil(t, updatedMember.GymID)

	// Pending requests and announcements are gone; resolved history stays.
	_, err = f.requestRepo.GetByID(context.Background(), pendingID)
	assert.Error(t, err)
	_, err = f.requestRepo.GetByID(context.Background(), resolvedID)
	assert.NoError(t, err)
	_, err = f.announcementRepo.GetByID(context.Background(), annID)
	assert.Error(t, err)
}
