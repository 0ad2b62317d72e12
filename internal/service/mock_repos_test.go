package service

import (
	"context"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"compass-backend/internal/domain"
	"compass-backend/internal/identity"
	"compass-backend/internal/repo"
)

// ── in-memory store shared by the mock repositories ──

type mockStore struct {
	users      map[string]*domain.User
	sheets     map[uint64]*domain.DaySheet
	timestamps map[uint64]*domain.Timestamp
	categories map[uint64]*domain.Category
	ratings    []domain.Rating
	incidents  map[uint64]*domain.Incident
	seq        uint64
}

func newMockStore() *mockStore {
	return &mockStore{
		users:      make(map[string]*domain.User),
		sheets:     make(map[uint64]*domain.DaySheet),
		timestamps: make(map[uint64]*domain.Timestamp),
		categories: make(map[uint64]*domain.Category),
		incidents:  make(map[uint64]*domain.Incident),
	}
}

func (s *mockStore) next() uint64 {
	s.seq++
	return s.seq
}

func (s *mockStore) repository() *repo.Repository {
	return &repo.Repository{
		Users:      &mockUserRepo{s},
		DaySheets:  &mockDaySheetRepo{s},
		Timestamps: &mockTimestampRepo{s},
		Categories: &mockCategoryRepo{s},
		Ratings:    &mockRatingRepo{s},
		Incidents:  &mockIncidentRepo{s},
	}
}

// sheet returns a copy of the stored sheet with children attached.
func (s *mockStore) sheet(id uint64) domain.DaySheet {
	d := *s.sheets[id]
	d.Timestamps, d.Ratings, d.Incidents = nil, nil, nil
	for _, t := range s.timestamps {
		if t.DaySheetID == id {
			d.Timestamps = append(d.Timestamps, *t)
		}
	}
	sort.Slice(d.Timestamps, func(i, j int) bool { return d.Timestamps[i].StartTime < d.Timestamps[j].StartTime })
	for _, r := range s.ratings {
		if r.DaySheetID == id {
			if c, ok := s.categories[r.CategoryID]; ok {
				cat := *c
				r.Category = &cat
			}
			d.Ratings = append(d.Ratings, r)
		}
	}
	ids := make([]uint64, 0)
	for iid, i := range s.incidents {
		if i.DaySheetID == id {
			ids = append(ids, iid)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, iid := range ids {
		d.Incidents = append(d.Incidents, *s.incidents[iid])
	}
	return d
}

func (s *mockStore) sheetsWhere(keep func(*domain.DaySheet) bool) []domain.DaySheet {
	ids := make([]uint64, 0, len(s.sheets))
	for id, d := range s.sheets {
		if keep(d) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]domain.DaySheet, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.sheet(id))
	}
	return out
}

// ── Mock UserRepository ──

type mockUserRepo struct{ s *mockStore }

func (m *mockUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := m.s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepo) FindByIDs(_ context.Context, ids []string) ([]domain.User, error) {
	var out []domain.User
	for _, id := range ids {
		if u, ok := m.s.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *mockUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(m.s.users))
	for _, u := range m.s.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockUserRepo) Save(_ context.Context, u *domain.User) error {
	cp := *u
	m.s.users[u.ID] = &cp
	return nil
}

// ── Mock DaySheetRepository ──

type mockDaySheetRepo struct{ s *mockStore }

func (m *mockDaySheetRepo) Create(_ context.Context, d *domain.DaySheet) error {
	for _, e := range m.s.sheets {
		if e.OwnerID == d.OwnerID && e.Date == d.Date {
			return domain.ErrDaySheetExists
		}
	}
	d.ID = m.s.next()
	cp := *d
	m.s.sheets[d.ID] = &cp
	return nil
}

func (m *mockDaySheetRepo) FindByID(_ context.Context, id uint64) (*domain.DaySheet, error) {
	if _, ok := m.s.sheets[id]; !ok {
		return nil, domain.ErrDaySheetNotFound
	}
	d := m.s.sheet(id)
	return &d, nil
}

func (m *mockDaySheetRepo) FindByOwnerAndDate(_ context.Context, ownerID, date string) (*domain.DaySheet, error) {
	for id, d := range m.s.sheets {
		if d.OwnerID == ownerID && d.Date == date {
			out := m.s.sheet(id)
			return &out, nil
		}
	}
	return nil, domain.ErrDaySheetNotFound
}

func (m *mockDaySheetRepo) ListUnconfirmedByOwnerRole(_ context.Context, role domain.Role) ([]domain.DaySheet, error) {
	return m.s.sheetsWhere(func(d *domain.DaySheet) bool {
		u, ok := m.s.users[d.OwnerID]
		return !d.Confirmed && ok && u.Role == role
	}), nil
}

func (m *mockDaySheetRepo) ListBetween(_ context.Context, from, to string) ([]domain.DaySheet, error) {
	return m.s.sheetsWhere(func(d *domain.DaySheet) bool { return d.Date >= from && d.Date <= to }), nil
}

func (m *mockDaySheetRepo) ListByOwnerBetween(_ context.Context, ownerID, from, to string) ([]domain.DaySheet, error) {
	return m.s.sheetsWhere(func(d *domain.DaySheet) bool {
		return d.OwnerID == ownerID && d.Date >= from && d.Date <= to
	}), nil
}

func (m *mockDaySheetRepo) UpdateNotes(_ context.Context, id uint64, notes string) error {
	d, ok := m.s.sheets[id]
	if !ok {
		return domain.ErrDaySheetNotFound
	}
	d.DayNotes = notes
	return nil
}

func (m *mockDaySheetRepo) SetConfirmed(_ context.Context, id uint64, confirmed bool) error {
	d, ok := m.s.sheets[id]
	if !ok {
		return domain.ErrDaySheetNotFound
	}
	d.Confirmed = confirmed
	return nil
}

func (m *mockDaySheetRepo) Delete(_ context.Context, id uint64) error {
	if _, ok := m.s.sheets[id]; !ok {
		return domain.ErrDaySheetNotFound
	}
	delete(m.s.sheets, id)
	for tid, t := range m.s.timestamps {
		if t.DaySheetID == id {
			delete(m.s.timestamps, tid)
		}
	}
	kept := m.s.ratings[:0]
	for _, r := range m.s.ratings {
		if r.DaySheetID != id {
			kept = append(kept, r)
		}
	}
	m.s.ratings = kept
	for iid, i := range m.s.incidents {
		if i.DaySheetID == id {
			delete(m.s.incidents, iid)
		}
	}
	return nil
}

// ── Mock TimestampRepository ──

type mockTimestampRepo struct{ s *mockStore }

func (m *mockTimestampRepo) Create(_ context.Context, t *domain.Timestamp) error {
	t.ID = m.s.next()
	cp := *t
	m.s.timestamps[t.ID] = &cp
	return nil
}

func (m *mockTimestampRepo) FindByID(_ context.Context, id uint64) (*domain.Timestamp, error) {
	if t, ok := m.s.timestamps[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, domain.ErrTimestampNotFound
}

func (m *mockTimestampRepo) ListByDaySheet(_ context.Context, daySheetID uint64) ([]domain.Timestamp, error) {
	var out []domain.Timestamp
	for _, t := range m.s.timestamps {
		if t.DaySheetID == daySheetID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out, nil
}

func (m *mockTimestampRepo) Update(_ context.Context, t *domain.Timestamp) error {
	e, ok := m.s.timestamps[t.ID]
	if !ok {
		return domain.ErrTimestampNotFound
	}
	e.StartTime, e.EndTime = t.StartTime, t.EndTime
	return nil
}

func (m *mockTimestampRepo) Delete(_ context.Context, id uint64) error {
	if _, ok := m.s.timestamps[id]; !ok {
		return domain.ErrTimestampNotFound
	}
	delete(m.s.timestamps, id)
	return nil
}

// ── Mock CategoryRepository ──

type mockCategoryRepo struct{ s *mockStore }

func (m *mockCategoryRepo) Create(_ context.Context, c *domain.Category) error {
	for _, e := range m.s.categories {
		if e.Name == c.Name {
			return domain.ErrCategoryExists
		}
	}
	c.ID = m.s.next()
	cp := *c
	cp.Owners = append([]domain.User(nil), c.Owners...)
	m.s.categories[c.ID] = &cp
	return nil
}

func (m *mockCategoryRepo) FindByID(_ context.Context, id uint64) (*domain.Category, error) {
	if c, ok := m.s.categories[id]; ok {
		cp := *c
		cp.Owners = append([]domain.User(nil), c.Owners...)
		return &cp, nil
	}
	return nil, domain.ErrCategoryNotFound
}

func (m *mockCategoryRepo) FindByIDs(_ context.Context, ids []uint64) ([]domain.Category, error) {
	var out []domain.Category
	for _, id := range ids {
		if c, ok := m.s.categories[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *mockCategoryRepo) FindByName(_ context.Context, name string) (*domain.Category, error) {
	for _, c := range m.s.categories {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

func (m *mockCategoryRepo) List(_ context.Context) ([]domain.Category, error) {
	return m.where(func(*domain.Category) bool { return true }), nil
}

func (m *mockCategoryRepo) ListGlobal(_ context.Context) ([]domain.Category, error) {
	return m.where(func(c *domain.Category) bool { return c.IsGlobal() }), nil
}

func (m *mockCategoryRepo) ListOwnedBy(_ context.Context, userID string) ([]domain.Category, error) {
	return m.where(func(c *domain.Category) bool { return c.HasOwner(userID) }), nil
}

func (m *mockCategoryRepo) AddOwners(_ context.Context, c *domain.Category, owners []domain.User) error {
	e, ok := m.s.categories[c.ID]
	if !ok {
		return domain.ErrCategoryNotFound
	}
	e.Owners = append(e.Owners, owners...)
	return nil
}

func (m *mockCategoryRepo) where(keep func(*domain.Category) bool) []domain.Category {
	var out []domain.Category
	for _, c := range m.s.categories {
		if keep(c) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ── Mock RatingRepository ──

type mockRatingRepo struct{ s *mockStore }

func (m *mockRatingRepo) ListByDaySheet(_ context.Context, daySheetID uint64) ([]domain.Rating, error) {
	var out []domain.Rating
	for _, r := range m.s.ratings {
		if r.DaySheetID == daySheetID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRatingRepo) CreateBatch(_ context.Context, ratings []domain.Rating) error {
	for i := range ratings {
		ratings[i].ID = m.s.next()
		r := ratings[i]
		r.Category = nil
		m.s.ratings = append(m.s.ratings, r)
	}
	return nil
}

// ── Mock IncidentRepository ──

type mockIncidentRepo struct{ s *mockStore }

func (m *mockIncidentRepo) Create(_ context.Context, i *domain.Incident) error {
	i.ID = m.s.next()
	cp := *i
	m.s.incidents[i.ID] = &cp
	return nil
}

func (m *mockIncidentRepo) FindByID(_ context.Context, id uint64) (*domain.Incident, error) {
	i, ok := m.s.incidents[id]
	if !ok {
		return nil, domain.ErrIncidentNotFound
	}
	cp := *i
	if d, ok := m.s.sheets[i.DaySheetID]; ok {
		ds := *d
		cp.DaySheet = &ds
	}
	return &cp, nil
}

func (m *mockIncidentRepo) Update(_ context.Context, i *domain.Incident) error {
	e, ok := m.s.incidents[i.ID]
	if !ok {
		return domain.ErrIncidentNotFound
	}
	e.Title, e.Description = i.Title, i.Description
	return nil
}

func (m *mockIncidentRepo) Delete(_ context.Context, id uint64) error {
	if _, ok := m.s.incidents[id]; !ok {
		return domain.ErrIncidentNotFound
	}
	delete(m.s.incidents, id)
	return nil
}

func (m *mockIncidentRepo) List(ctx context.Context) ([]domain.Incident, error) {
	ids := make([]uint64, 0, len(m.s.incidents))
	for id := range m.s.incidents {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]domain.Incident, 0, len(ids))
	for _, id := range ids {
		i, _ := m.FindByID(ctx, id)
		out = append(out, *i)
	}
	return out, nil
}

// ── Mock identity client ──

type mockIdentity struct {
	profiles map[string]*domain.Profile
	err      error
	pingErr  error
	seq      int
}

func newMockIdentity() *mockIdentity {
	return &mockIdentity{profiles: make(map[string]*domain.Profile)}
}

func (m *mockIdentity) FetchProfile(_ context.Context, id string) (*domain.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	if p, ok := m.profiles[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockIdentity) ListProfiles(_ context.Context) ([]domain.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.Profile, 0, len(m.profiles))
	for _, p := range m.profiles {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (m *mockIdentity) CreateProfile(_ context.Context, in identity.NewProfile) (*domain.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, p := range m.profiles {
		if p.Email == in.Email {
			return nil, domain.ErrConflict
		}
	}
	m.seq++
	p := &domain.Profile{
		UserID:     "auth0|new" + strconv.Itoa(m.seq),
		Email:      in.Email,
		GivenName:  in.GivenName,
		FamilyName: in.FamilyName,
	}
	m.profiles[p.UserID] = p
	cp := *p
	return &cp, nil
}

func (m *mockIdentity) PatchProfile(_ context.Context, id string, in identity.ProfilePatch) (*domain.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.profiles[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if in.Email != "" {
		p.Email = in.Email
	}
	if in.GivenName != "" {
		p.GivenName = in.GivenName
	}
	if in.FamilyName != "" {
		p.FamilyName = in.FamilyName
	}
	if in.Blocked != nil {
		p.Blocked = *in.Blocked
	}
	cp := *p
	return &cp, nil
}

func (m *mockIdentity) Ping(_ context.Context) error { return m.pingErr }

// ── fixtures ──

const (
	adminID       = "auth0|admin"
	workerID      = "auth0|worker"
	participantID = "auth0|anna"
	otherID       = "auth0|ben"
)

var (
	admin       = domain.Principal{ID: adminID, Role: domain.RoleAdmin}
	worker      = domain.Principal{ID: workerID, Role: domain.RoleSocialWorker}
	participant = domain.Principal{ID: participantID, Role: domain.RoleParticipant}
	other       = domain.Principal{ID: otherID, Role: domain.RoleParticipant}
)

// setupTestEnv seeds four users known to both the store and the identity provider.
func setupTestEnv() (*mockStore, *mockIdentity, *repo.Repository, *zap.Logger) {
	store := newMockStore()
	idp := newMockIdentity()
	for _, u := range []struct {
		id, given string
		role      domain.Role
	}{
		{adminID, "Ada", domain.RoleAdmin},
		{workerID, "Walt", domain.RoleSocialWorker},
		{participantID, "Anna", domain.RoleParticipant},
		{otherID, "Ben", domain.RoleParticipant},
	} {
		store.users[u.id] = &domain.User{ID: u.id, Role: u.role}
		idp.profiles[u.id] = &domain.Profile{
			UserID: u.id, Email: u.given + "@example.org", GivenName: u.given, FamilyName: "Test",
		}
	}
	return store, idp, store.repository(), zap.NewNop()
}

func (s *mockStore) addSheet(owner, date string, confirmed bool) *domain.DaySheet {
	d := &domain.DaySheet{ID: s.next(), OwnerID: owner, Date: date, Confirmed: confirmed}
	s.sheets[d.ID] = d
	return d
}

func (s *mockStore) addTimestamp(sheetID uint64, start, end string) *domain.Timestamp {
	t := &domain.Timestamp{ID: s.next(), DaySheetID: sheetID, StartTime: start, EndTime: end}
	s.timestamps[t.ID] = t
	return t
}

func (s *mockStore) addCategory(name string, min, max int, owners ...string) *domain.Category {
	c := &domain.Category{ID: s.next(), Name: name, MinimumValue: min, MaximumValue: max}
	for _, o := range owners {
		c.Owners = append(c.Owners, *s.users[o])
	}
	s.categories[c.ID] = c
	return c
}
