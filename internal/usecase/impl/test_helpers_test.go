package impl

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"

	"hailer/internal/domain/entity"
	"hailer/internal/domain/repository"
	"hailer/internal/domain/service"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeStore is an in-memory store backing the repository fakes. It enforces
// the same invariants the real store does: the unique name index and the
// conditional lifecycle writes, both decided under one lock so concurrent
// callers race the way they would against PostgreSQL.
type fakeStore struct {
	mu           sync.Mutex
	participants map[int64]*entity.Participant
	names        map[string]int64
	orders       map[int64]*entity.Order
	nextID       int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		participants: make(map[int64]*entity.Participant),
		names:        make(map[string]int64),
		orders:       make(map[int64]*entity.Order),
	}
}

// Execute implements repository.TransactionManager. The fakes take the store
// lock per call, so the check-then-act races the services guard against are
// reproduced rather than serialized away.
func (s *fakeStore) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(s)
}

func (s *fakeStore) ParticipantRepo() repository.ParticipantRepository {
	return &fakeParticipantRepo{s: s}
}

func (s *fakeStore) DriverRepo() repository.DriverRepository {
	return &fakeDriverRepo{s: s}
}

func (s *fakeStore) OrderRepo() repository.OrderRepository {
	return &fakeOrderRepo{s: s}
}

// --- fixtures ---

func (s *fakeStore) addParticipant(p *entity.Participant) *entity.Participant {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	p.ID = s.nextID
	if p.DriverProfile != nil {
		p.DriverProfile.ParticipantID = p.ID
	}
	s.participants[p.ID] = p
	s.names[p.Name] = p.ID

	return p
}

func (s *fakeStore) addOrder(o *entity.Order) *entity.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	o.ID = s.nextID
	if o.Status == "" {
		o.Status = entity.OrderCreated
	}
	s.orders[o.ID] = o

	return o
}

func (s *fakeStore) order(id int64) *entity.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.orders[id]
}

func (s *fakeStore) participant(id int64) *entity.Participant {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.participants[id]
}

// driverLocked requires s.mu to be held.
func (s *fakeStore) driverLocked(id int64) (*entity.Participant, bool) {
	p, ok := s.participants[id]
	if !ok || !p.IsDriver() || p.DriverProfile == nil {
		return nil, false
	}

	return p, true
}

// --- ParticipantRepository ---

type fakeParticipantRepo struct {
	s *fakeStore
}

func (r *fakeParticipantRepo) FindByID(_ context.Context, id int64) (*entity.Participant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.participants[id]
	if !ok {
		return nil, repository.ErrParticipantNotFound
	}
	clone := *p

	return &clone, nil
}

func (r *fakeParticipantRepo) FindByName(_ context.Context, name string) (*entity.Participant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	id, ok := r.s.names[name]
	if !ok {
		return nil, repository.ErrParticipantNotFound
	}
	clone := *r.s.participants[id]

	return &clone, nil
}

func (r *fakeParticipantRepo) Create(_ context.Context, p *entity.Participant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, taken := r.s.names[p.Name]; taken {
		return repository.ErrNameTaken
	}

	r.s.nextID++
	p.ID = r.s.nextID
	clone := *p
	r.s.participants[p.ID] = &clone
	r.s.names[p.Name] = p.ID

	return nil
}

func (r *fakeParticipantRepo) Update(_ context.Context, p *entity.Participant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.participants[p.ID]
	if !ok {
		return repository.ErrParticipantNotFound
	}
	if holder, taken := r.s.names[p.Name]; taken && holder != p.ID {
		return repository.ErrNameTaken
	}

	delete(r.s.names, stored.Name)
	clone := *p
	r.s.participants[p.ID] = &clone
	r.s.names[p.Name] = p.ID

	return nil
}

// UpdatePassword mirrors the column-scoped SQL write: only the stored hash
// changes, never the rest of the record.
func (r *fakeParticipantRepo) UpdatePassword(_ context.Context, participantID int64, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.participants[participantID]
	if !ok {
		return repository.ErrParticipantNotFound
	}
	stored.PasswordHash = passwordHash

	return nil
}

// --- DriverRepository ---

type fakeDriverRepo struct {
	s *fakeStore
}

func (r *fakeDriverRepo) FindByID(_ context.Context, driverID int64) (*entity.Driver, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.driverLocked(driverID)
	if !ok {
		return nil, repository.ErrDriverNotFound
	}
	clone := *p

	return &entity.Driver{Participant: clone}, nil
}

func (r *fakeDriverRepo) ListActiveByCarClass(_ context.Context, class entity.CarClass) ([]*entity.Driver, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ids := make([]int64, 0, len(r.s.participants))
	for id := range r.s.participants {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var drivers []*entity.Driver
	for _, id := range ids {
		p, ok := r.s.driverLocked(id)
		if !ok || !p.DriverProfile.Active || p.DriverProfile.CarClass != class {
			continue
		}
		clone := *p
		drivers = append(drivers, &entity.Driver{Participant: clone})
	}

	return drivers, nil
}

func (r *fakeDriverRepo) SetActive(_ context.Context, driverID int64, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.driverLocked(driverID)
	if !ok {
		return repository.ErrDriverNotFound
	}
	p.DriverProfile.Active = active

	return nil
}

func (r *fakeDriverRepo) AssignOrder(_ context.Context, orderID, driverID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.driverLocked(driverID); !ok {
		return repository.ErrDriverNotFound
	}

	o, ok := r.s.orders[orderID]
	if !ok || o.Status != entity.OrderCreated || o.DriverID != nil {
		return repository.ErrOrderAlreadyAssigned
	}

	id := driverID
	o.DriverID = &id
	o.DriverRequested = true
	o.Status = entity.OrderRequested

	return nil
}

func (r *fakeDriverRepo) SetCurrentOrder(_ context.Context, driverID int64, orderID *int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.driverLocked(driverID)
	if !ok {
		return repository.ErrDriverNotFound
	}
	p.DriverProfile.CurrentOrderID = orderID

	return nil
}

func (r *fakeDriverRepo) SetCoordinates(_ context.Context, driverID int64, coords entity.Coordinates) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.driverLocked(driverID)
	if !ok {
		return repository.ErrDriverNotFound
	}
	p.DriverProfile.Coordinates = coords

	return nil
}

func (r *fakeDriverRepo) SetDeviceToken(_ context.Context, driverID int64, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.driverLocked(driverID)
	if !ok {
		return repository.ErrDriverNotFound
	}
	p.DriverProfile.DeviceToken = token

	return nil
}

// --- OrderRepository ---

type fakeOrderRepo struct {
	s *fakeStore
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id int64) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	clone := *o

	return &clone, nil
}

func (r *fakeOrderRepo) FindCurrentByRiderID(_ context.Context, riderID int64) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ids := make([]int64, 0, len(r.s.orders))
	for id := range r.s.orders {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		o := r.s.orders[id]
		if o.RiderID == riderID && o.Open() {
			clone := *o

			return &clone, nil
		}
	}

	return nil, repository.ErrOrderNotFound
}

func (r *fakeOrderRepo) DriverRequested(_ context.Context, orderID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[orderID]
	if !ok {
		return false, repository.ErrOrderNotFound
	}

	return o.DriverRequested, nil
}

func (r *fakeOrderRepo) Transition(_ context.Context, orderID int64, from, to entity.OrderStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[orderID]
	if !ok {
		return repository.ErrOrderNotFound
	}
	if o.Status != from {
		return repository.ErrStateConflict
	}
	o.Status = to

	return nil
}

// --- fake domain services ---

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (fakeHasher) Check(password, hash string) bool     { return "hashed:"+password == hash }

type fakeTokenService struct{}

func (fakeTokenService) Generate(int64, []string) (string, error) { return "token", nil }

func (fakeTokenService) Validate(string) (*service.TokenClaims, error) {
	return &service.TokenClaims{}, nil
}

type fakeCredentialValidator struct {
	failWith error
}

func (v fakeCredentialValidator) ValidateCredentials(_, _, _ string) error { return v.failWith }
func (v fakeCredentialValidator) ValidatePassword(_ string) error          { return v.failWith }

// fakeNotifier records dispatch pushes.
type fakeNotifier struct {
	mu    sync.Mutex
	sends []fakePush
}

type fakePush struct {
	token string
	data  map[string]string
}

func (n *fakeNotifier) SendSingleNotification(_ context.Context, token, _, _ string, data map[string]string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.sends = append(n.sends, fakePush{token: token, data: data})

	return nil
}
