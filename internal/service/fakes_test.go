package service

import (
	"context"
	"sync"
	"time"

	"github.com/Vibush01/EasyFitTrack/internal/domain"
	"github.com/Vibush01/EasyFitTrack/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes. They mirror the mongo implementations' contract,
// including the conditional-update semantics the services rely on: every
// compare-and-set is guarded by the same mutex, so the concurrency tests
// exercise real interleavings.

// --- users ---

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
}

func (f *fakeUserRepo) put(u *domain.User) primitive.ObjectID {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ID == primitive.NilObjectID {
		u.ID = primitive.NewObjectID()
	}
	cp := *u
	f.users[u.ID] = &cp
	return u.ID
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	f.mu.Lock()
	for _, u := range f.users {
		if u.Email == user.Email {
			f.mu.Unlock()
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	f.mu.Unlock()
	return f.put(user), nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.User
	for _, u := range f.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) ListByGym(ctx context.Context, gymID primitive.ObjectID, role domain.Role) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.User
	for _, u := range f.users {
		if u.Role == role && u.GymID != nil && *u.GymID == gymID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) AddMemberToGym(ctx context.Context, gymID, memberID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	gym, ok := f.users[gymID]
	if !ok {
		return repository.ErrNotFound
	}
	for _, id := range gym.MemberIDs {
		if id == memberID {
			return nil
		}
	}
	gym.MemberIDs = append(gym.MemberIDs, memberID)
	return nil
}

func (f *fakeUserRepo) RemoveMemberFromGym(ctx context.Context, gymID, memberID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	gym, ok := f.users[gymID]
	if !ok {
		return repository.ErrNotFound
	}
	kept := gym.MemberIDs[:0]
	for _, id := range gym.MemberIDs {
		if id != memberID {
			kept = append(kept, id)
		}
	}
	gym.MemberIDs = kept
	return nil
}

func (f *fakeUserRepo) AddTrainerToGym(ctx context.Context, gymID, trainerID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	gym, ok := f.users[gymID]
	if !ok {
		return repository.ErrNotFound
	}
	for _, id := range gym.TrainerIDs {
		if id == trainerID {
			return nil
		}
	}
	gym.TrainerIDs = append(gym.TrainerIDs, trainerID)
	return nil
}

func (f *fakeUserRepo) SetGymForUser(ctx context.Context, userID, gymID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	g := gymID
	u.GymID = &g
	return nil
}

func (f *fakeUserRepo) SetMembership(ctx context.Context, memberID primitive.ObjectID, membership *domain.Membership) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[memberID]
	if !ok {
		return repository.ErrNotFound
	}
	cp := *membership
	u.Membership = &cp
	return nil
}

func (f *fakeUserRepo) ClearGymAndMembership(ctx context.Context, userID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.GymID = nil
	u.Membership = nil
	return nil
}

func (f *fakeUserRepo) ClearGymRefs(ctx context.Context, gymID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.GymID != nil && *u.GymID == gymID {
			u.GymID = nil
			u.Membership = nil
		}
	}
	return nil
}

// --- membership requests ---

type fakeMembershipRequestRepo struct {
	mu       sync.Mutex
	requests map[primitive.ObjectID]*domain.MembershipRequest
}

func newFakeMembershipRequestRepo() *fakeMembershipRequestRepo {
	return &fakeMembershipRequestRepo{requests: make(map[primitive.ObjectID]*domain.MembershipRequest)}
}

func (f *fakeMembershipRequestRepo) Create(ctx context.Context, req *domain.MembershipRequest) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	// One pending request per (member, gym) pair, same as the partial
	// unique index in mongo.
	for _, r := range f.requests {
		if r.MemberID == req.MemberID && r.GymID == req.GymID && r.Status == domain.RequestPending {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	cp := *req
	cp.ID = primitive.NewObjectID()
	cp.CreatedAt = time.Now().UTC()
	f.requests[cp.ID] = &cp
	return cp.ID, nil
}

func (f *fakeMembershipRequestRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.MembershipRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeMembershipRequestRepo) FindPending(ctx context.Context, memberID, gymID primitive.ObjectID) (*domain.MembershipRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.requests {
		if r.MemberID == memberID && r.GymID == gymID && r.Status == domain.RequestPending {
			cp := *r
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeMembershipRequestRepo) ListByGym(ctx context.Context, gymID primitive.ObjectID) ([]domain.MembershipRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.MembershipRequest
	for _, r := range f.requests {
		if r.GymID == gymID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeMembershipRequestRepo) ListByMember(ctx context.Context, memberID primitive.ObjectID) ([]domain.MembershipRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.MembershipRequest
	for _, r := range f.requests {
		if r.MemberID == memberID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeMembershipRequestRepo) ResolveIfPending(ctx context.Context, id primitive.ObjectID, status domain.RequestStatus) (*domain.MembershipRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[id]
	if !ok || r.Status != domain.RequestPending {
		return nil, repository.ErrNotFound
	}
	r.Status = status
	now := time.Now().UTC()
	r.ResolvedAt = &now
	cp := *r
	return &cp, nil
}

func (f *fakeMembershipRequestRepo) DeletePendingByGym(ctx context.Context, gymID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, r := range f.requests {
		if r.GymID == gymID && r.Status == domain.RequestPending {
			delete(f.requests, id)
		}
	}
	return nil
}

// --- schedule slots ---

type fakeScheduleRepo struct {
	mu    sync.Mutex
	slots map[primitive.ObjectID]*domain.ScheduleSlot
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{slots: make(map[primitive.ObjectID]*domain.ScheduleSlot)}
}

func (f *fakeScheduleRepo) Create(ctx context.Context, slot *domain.ScheduleSlot) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *slot
	cp.ID = primitive.NewObjectID()
	cp.CreatedAt = time.Now().UTC()
	f.slots[cp.ID] = &cp
	return cp.ID, nil
}

func (f *fakeScheduleRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ScheduleSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slots[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeScheduleRepo) ListByTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.ScheduleSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.ScheduleSlot
	for _, s := range f.slots {
		if s.TrainerID == trainerID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) ListAvailableByTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.ScheduleSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.ScheduleSlot
	for _, s := range f.slots {
		if s.TrainerID == trainerID && s.Status == domain.SlotAvailable {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) ListBookedByMember(ctx context.Context, memberID primitive.ObjectID) ([]domain.ScheduleSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.ScheduleSlot
	for _, s := range f.slots {
		if s.Status == domain.SlotBooked && s.BookedBy != nil && *s.BookedBy == memberID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) BookIfAvailable(ctx context.Context, id, memberID primitive.ObjectID) (*domain.ScheduleSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slots[id]
	if !ok || s.Status != domain.SlotAvailable {
		return nil, repository.ErrNotFound
	}
	s.Status = domain.SlotBooked
	m := memberID
	s.BookedBy = &m
	cp := *s
	return &cp, nil
}

func (f *fakeScheduleRepo) DeleteIfAvailable(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slots[id]
	if !ok || s.Status != domain.SlotAvailable {
		return repository.ErrNotFound
	}
	delete(f.slots, id)
	return nil
}

// --- plan requests ---

type fakePlanRequestRepo struct {
	mu       sync.Mutex
	requests map[primitive.ObjectID]*domain.PlanRequest
}

func newFakePlanRequestRepo() *fakePlanRequestRepo {
	return &fakePlanRequestRepo{requests: make(map[primitive.ObjectID]*domain.PlanRequest)}
}

func (f *fakePlanRequestRepo) Create(ctx context.Context, req *domain.PlanRequest) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.requests {
		if r.MemberID == req.MemberID && r.TrainerID == req.TrainerID &&
			r.RequestType == req.RequestType && r.Status == domain.RequestPending {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	cp := *req
	cp.ID = primitive.NewObjectID()
	cp.CreatedAt = time.Now().UTC()
	f.requests[cp.ID] = &cp
	return cp.ID, nil
}

func (f *fakePlanRequestRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PlanRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakePlanRequestRepo) FindPending(ctx context.Context, memberID, trainerID primitive.ObjectID, planType domain.PlanType) (*domain.PlanRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.requests {
		if r.MemberID == memberID && r.TrainerID == trainerID &&
			r.RequestType == planType && r.Status == domain.RequestPending {
			cp := *r
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakePlanRequestRepo) ListByTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.PlanRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.PlanRequest
	for _, r := range f.requests {
		if r.TrainerID == trainerID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakePlanRequestRepo) ListByMember(ctx context.Context, memberID primitive.ObjectID) ([]domain.PlanRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.PlanRequest
	for _, r := range f.requests {
		if r.MemberID == memberID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakePlanRequestRepo) ResolveIfPending(ctx context.Context, id primitive.ObjectID, status domain.RequestStatus) (*domain.PlanRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[id]
	if !ok || r.Status != domain.RequestPending {
		return nil, repository.ErrNotFound
	}
	r.Status = status
	now := time.Now().UTC()
	r.ResolvedAt = &now
	cp := *r
	return &cp, nil
}

// --- workout plans ---

type fakeWorkoutPlanRepo struct {
	mu    sync.Mutex
	plans map[primitive.ObjectID]*domain.WorkoutPlan
}

func newFakeWorkoutPlanRepo() *fakeWorkoutPlanRepo {
	return &fakeWorkoutPlanRepo{plans: make(map[primitive.ObjectID]*domain.WorkoutPlan)}
}

func (f *fakeWorkoutPlanRepo) Create(ctx context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *plan
	cp.ID = primitive.NewObjectID()
	cp.CreatedAt = time.Now().UTC()
	cp.UpdatedAt = cp.CreatedAt
	f.plans[cp.ID] = &cp
	return cp.ID, nil
}

func (f *fakeWorkoutPlanRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeWorkoutPlanRepo) ListByMember(ctx context.Context, memberID primitive.ObjectID) ([]domain.WorkoutPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.WorkoutPlan
	for _, p := range f.plans {
		if p.MemberID == memberID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeWorkoutPlanRepo) ListByTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.WorkoutPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.WorkoutPlan
	for _, p := range f.plans {
		if p.TrainerID == trainerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeWorkoutPlanRepo) Update(ctx context.Context, plan *domain.WorkoutPlan) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.plans[plan.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *plan
	cp.UpdatedAt = time.Now().UTC()
	f.plans[plan.ID] = &cp
	return nil
}

func (f *fakeWorkoutPlanRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.plans[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.plans, id)
	return nil
}

// --- diet plans ---

type fakeDietPlanRepo struct {
	mu    sync.Mutex
	plans map[primitive.ObjectID]*domain.DietPlan
}

func newFakeDietPlanRepo() *fakeDietPlanRepo {
	return &fakeDietPlanRepo{plans: make(map[primitive.ObjectID]*domain.DietPlan)}
}

func (f *fakeDietPlanRepo) Create(ctx context.Context, plan *domain.DietPlan) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *plan
	cp.ID = primitive.NewObjectID()
	cp.CreatedAt = time.Now().UTC()
	cp.UpdatedAt = cp.CreatedAt
	f.plans[cp.ID] = &cp
	return cp.ID, nil
}

func (f *fakeDietPlanRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.DietPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeDietPlanRepo) ListByMember(ctx context.Context, memberID primitive.ObjectID) ([]domain.DietPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.DietPlan
	for _, p := range f.plans {
		if p.MemberID == memberID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeDietPlanRepo) ListByTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.DietPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.DietPlan
	for _, p := range f.plans {
		if p.TrainerID == trainerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeDietPlanRepo) Update(ctx context.Context, plan *domain.DietPlan) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.plans[plan.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *plan
	cp.UpdatedAt = time.Now().UTC()
	f.plans[plan.ID] = &cp
	return nil
}

func (f *fakeDietPlanRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.plans[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.plans, id)
	return nil
}

// --- announcements ---

type fakeAnnouncementRepo struct {
	mu            sync.Mutex
	announcements map[primitive.ObjectID]*domain.Announcement
}

func newFakeAnnouncementRepo() *fakeAnnouncementRepo {
	return &fakeAnnouncementRepo{announcements: make(map[primitive.ObjectID]*domain.Announcement)}
}

func (f *fakeAnnouncementRepo) Create(ctx context.Context, a *domain.Announcement) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *a
	cp.ID = primitive.NewObjectID()
	cp.CreatedAt = time.Now().UTC()
	cp.UpdatedAt = cp.CreatedAt
	f.announcements[cp.ID] = &cp
	return cp.ID, nil
}

func (f *fakeAnnouncementRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Announcement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.announcements[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAnnouncementRepo) ListByGym(ctx context.Context, gymID primitive.ObjectID) ([]domain.Announcement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Announcement
	for _, a := range f.announcements {
		if a.GymID == gymID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAnnouncementRepo) UpdateMessage(ctx context.Context, id primitive.ObjectID, message string) (*domain.Announcement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.announcements[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	a.Message = message
	a.UpdatedAt = time.Now().UTC()
	cp := *a
	return &cp, nil
}

func (f *fakeAnnouncementRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.announcements[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.announcements, id)
	return nil
}

func (f *fakeAnnouncementRepo) DeleteByGym(ctx context.Context, gymID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, a := range f.announcements {
		if a.GymID == gymID {
			delete(f.announcements, id)
		}
	}
	return nil
}

// --- publisher ---

type publishedEvent struct {
	gymID   string
	event   string
	payload any
}

// recordingPublisher captures every Publish call for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(gymID string, event string, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{gymID: gymID, event: event, payload: payload})
}

func (p *recordingPublisher) all() []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]publishedEvent(nil), p.events...)
}

// --- user helpers ---

func newTestGym(repo *fakeUserRepo, name string) *domain.User {
	gym := &domain.User{
		Name:  name,
		Email: name + "@example.com",
		Role:  domain.RoleGym,
		City:  "Pune",
	}
	repo.put(gym)
	return gym
}

func newTestMember(repo *fakeUserRepo, name string) *domain.User {
	member := &domain.User{
		Name:  name,
		Email: name + "@example.com",
		Role:  domain.RoleMember,
	}
	repo.put(member)
	return member
}

func newTestTrainer(repo *fakeUserRepo, name string, gymID *primitive.ObjectID) *domain.User {
	trainer := &domain.User{
		Name:  name,
		Email: name + "@example.com",
		Role:  domain.RoleTrainer,
		GymID: gymID,
	}
	repo.put(trainer)
	return trainer
}
