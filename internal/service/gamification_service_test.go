package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePointsStore struct {
	points  map[uuid.UUID]int
	failAll bool
}

func newFakePointsStore() *fakePointsStore {
	return &fakePointsStore{points: make(map[uuid.UUID]int)}
}

func (f *fakePointsStore) IncrementPoints(ctx context.Context, userID uuid.UUID, delta int) error {
	if f.failAll {
		return errors.New("db down")
	}
	f.points[userID] += delta
	return nil
}

func (f *fakePointsStore) BulkIncrementPoints(ctx context.Context, userIDs []uuid.UUID, delta int) error {
	if f.failAll {
		return errors.New("db down")
	}
	for _, id := range userIDs {
		f.points[id] += delta
	}
	return nil
}

type fakeCompletionCounts struct {
	participations map[uuid.UUID]int
	created        map[uuid.UUID]int
}

func newFakeCompletionCounts() *fakeCompletionCounts {
	return &fakeCompletionCounts{
		participations: make(map[uuid.UUID]int),
		created:        make(map[uuid.UUID]int),
	}
}

func (f *fakeCompletionCounts) CountCompletedParticipations(ctx context.Context, userID uuid.UUID) (int, error) {
	return f.participations[userID], nil
}

func (f *fakeCompletionCounts) CountCompletedCreated(ctx context.Context, userID uuid.UUID) (int, error) {
	return f.created[userID], nil
}

type fakeBadgeStore struct {
	awarded      map[uuid.UUID]map[string]bool
	failingBadge string
}

func newFakeBadgeStore() *fakeBadgeStore {
	return &fakeBadgeStore{awarded: make(map[uuid.UUID]map[string]bool)}
}

func (f *fakeBadgeStore) Award(ctx context.Context, userID uuid.UUID, badgeID string) (bool, error) {
	if badgeID == f.failingBadge {
		return false, errors.New("db down")
	}
	if f.awarded[userID] == nil {
		f.awarded[userID] = make(map[string]bool)
	}
	if f.awarded[userID][badgeID] {
		return false, nil
	}
	f.awarded[userID][badgeID] = true
	return true, nil
}

type fakeBadgeNotifier struct {
	earned []string
}

func (f *fakeBadgeNotifier) NotifyBadgeEarned(ctx context.Context, userID uuid.UUID, badgeID string) {
	f.earned = append(f.earned, badgeID)
}

func newTestGamification(points *fakePointsStore, counts *fakeCompletionCounts, badges *fakeBadgeStore, notifier *fakeBadgeNotifier) *GamificationService {
	var n BadgeNotifier
	if notifier != nil {
		n = notifier
	}
	return NewGamificationService(DefaultGamificationConfig(), points, counts, badges, n)
}

func TestGamification_AwardCompletionPoints(t *testing.T) {
	points := newFakePointsStore()
	svc := newTestGamification(points, newFakeCompletionCounts(), newFakeBadgeStore(), nil)

	creator := uuid.New()
	p1, p2 := uuid.New(), uuid.New()

	err := svc.AwardCompletionPoints(context.Background(), creator, []uuid.UUID{p1, p2})
	require.NoError(t, err)

	assert.Equal(t, 50, points.points[creator])
	assert.Equal(t, 10, points.points[p1])
	assert.Equal(t, 10, points.points[p2])
}

func TestGamification_AwardCompletionPoints_NoParticipants(t *testing.T) {
	points := newFakePointsStore()
	svc := newTestGamification(points, newFakeCompletionCounts(), newFakeBadgeStore(), nil)

	creator := uuid.New()
	err := svc.AwardCompletionPoints(context.Background(), creator, nil)
	require.NoError(t, err)
	assert.Equal(t, 50, points.points[creator])
}

func TestGamification_AwardCompletionPoints_StoreFailure(t *testing.T) {
	points := newFakePointsStore()
	points.failAll = true
	svc := newTestGamification(points, newFakeCompletionCounts(), newFakeBadgeStore(), nil)

	err := svc.AwardCompletionPoints(context.Background(), uuid.New(), []uuid.UUID{uuid.New()})
	assert.Error(t, err)
}

func TestGamification_EvaluateBadges_BelowThresholds(t *testing.T) {
	counts := newFakeCompletionCounts()
	badges := newFakeBadgeStore()
	svc := newTestGamification(newFakePointsStore(), counts, badges, nil)

	userID := uuid.New()
	counts.participations[userID] = 9
	counts.created[userID] = 2

	require.NoError(t, svc.EvaluateBadges(context.Background(), userID))
	assert.Empty(t, badges.awarded[userID])
}

func TestGamification_EvaluateBadges_JoinThreshold(t *testing.T) {
	counts := newFakeCompletionCounts()
	badges := newFakeBadgeStore()
	notifier := &fakeBadgeNotifier{}
	svc := newTestGamification(newFakePointsStore(), counts, badges, notifier)

	userID := uuid.New()
	counts.participations[userID] = 10

	require.NoError(t, svc.EvaluateBadges(context.Background(), userID))
	assert.True(t, badges.awarded[userID]["JOIN_10"])
	assert.False(t, badges.awarded[userID]["CREATE_3"])
	assert.Equal(t, []string{"JOIN_10"}, notifier.earned)
}

func TestGamification_EvaluateBadges_CreateThreshold(t *testing.T) {
	counts := newFakeCompletionCounts()
	badges := newFakeBadgeStore()
	svc := newTestGamification(newFakePointsStore(), counts, badges, nil)

	userID := uuid.New()
	counts.created[userID] = 3

	require.NoError(t, svc.EvaluateBadges(context.Background(), userID))
	assert.True(t, badges.awarded[userID]["CREATE_3"])
	assert.False(t, badges.awarded[userID]["JOIN_10"])
}

func TestGamification_EvaluateBadges_Idempotent(t *testing.T) {
	counts := newFakeCompletionCounts()
	badges := newFakeBadgeStore()
	notifier := &fakeBadgeNotifier{}
	svc := newTestGamification(newFakePointsStore(), counts, badges, notifier)

	userID := uuid.New()
	counts.participations[userID] = 12

	require.NoError(t, svc.EvaluateBadges(context.Background(), userID))
	require.NoError(t, svc.EvaluateBadges(context.Background(), userID))

	// Значок выдан один раз, уведомление отправлено один раз.
	assert.Equal(t, []string{"JOIN_10"}, notifier.earned)
}

func TestGamification_EvaluateBadges_AwardFailure(t *testing.T) {
	counts := newFakeCompletionCounts()
	badges := newFakeBadgeStore()
	badges.failingBadge = "JOIN_10"
	svc := newTestGamification(newFakePointsStore(), counts, badges, nil)

	userID := uuid.New()
	counts.participations[userID] = 10

	err := svc.EvaluateBadges(context.Background(), userID)
	assert.Error(t, err)
}
