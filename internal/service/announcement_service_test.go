package service

import (
	"context"
	"testing"

	"github.com/Vibush01/EasyFitTrack/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newAnnouncementFixture(t *testing.T) (AnnouncementService, *fakeAnnouncementRepo, *recordingPublisher) {
	t.Helper()
	repo := newFakeAnnouncementRepo()
	pub := &recordingPublisher{}
	return NewAnnouncementService(repo, pub), repo, pub
}

func TestPostAnnouncement_RejectsEmptyMessage(t *testing.T) {
	svc, _, pub := newAnnouncementFixture(t)

	_, err := svc.Post(context.Background(), primitive.NewObjectID(), "")
	assert.True(t, domain.IsKind(err, domain.ErrKindValidation))
	assert.Empty(t, pub.all(), "nothing may be broadcast on a rejected post")
}

func TestPostAnnouncement_PersistsThenBroadcasts(t *testing.T) {
	svc, repo, pub := newAnnouncementFixture(t)
	gymID := primitive.NewObjectID()

	created, err := svc.Post(context.Background(), gymID, "Closed on Friday")
	require.NoError(t, err)
	assert.NotEqual(t, primitive.NilObjectID, created.ID)

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Closed on Friday", stored.Message)

	events := pub.all()
	require.Len(t, events, 1)
	assert.Equal(t, gymID.Hex(), events[0].gymID)
	assert.Equal(t, EventAnnouncementNew, events[0].event)
}

func TestUpdateAnnouncement_AuthoringGymOnly(t *testing.T) {
	svc, _, pub := newAnnouncementFixture(t)
	gymID := primitive.NewObjectID()

	created, err := svc.Post(context.Background(), gymID, "Closed on Friday")
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, primitive.NewObjectID(), "Hijacked")
	assert.True(t, domain.IsKind(err, domain.ErrKindAuthorization))

	updated, err := svc.Update(context.Background(), created.ID, gymID, "Open again Saturday")
	require.NoError(t, err)
	assert.Equal(t, "Open again Saturday", updated.Message)

	events := pub.all()
	require.Len(t, events, 2)
	assert.Equal(t, EventAnnouncementUpdated, events[1].event)
}

func TestDeleteAnnouncement(t *testing.T) {
	svc, repo, pub := newAnnouncementFixture(t)
	gymID := primitive.NewObjectID()

	created, err := svc.Post(context.Background(), gymID, "Closed on Friday")
	require.NoError(t, err)

	err = svc.Delete(context.Background(), created.ID, primitive.NewObjectID())
	assert.True(t, domain.IsKind(err, domain.ErrKindAuthorization))

	require.NoError(t, svc.Delete(context.Background(), created.ID, gymID))
	_, err = repo.GetByID(context.Background(), created.ID)
	assert.Error(t, err)

	events := pub.all()
	require.Len(t, events, 2)
	assert.Equal(t, EventAnnouncementDeleted, events[1].event)

	err = svc.Delete(context.Background(), created.ID, gymID)
	assert.True(t, domain.IsKind(err, domain.ErrKindNotFound))
}

func TestAnnouncementService_NilPublisherIsSafe(t *testing.T) {
	repo := newFakeAnnouncementRepo()
	svc := NewAnnouncementService(repo, nil)

	_, err := svc.Post(context.Background(), primitive.NewObjectID(), "hello")
	assert.NoError(t, err)
}
