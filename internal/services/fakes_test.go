package services

import (
	"context"
	"sync"
	"time"

	"github.com/eventease/eventease/internal/models"
	"github.com/google/uuid"
)

// testClock is a settable clock so tests can walk tokens across the
// expiry boundary.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock(t time.Time) *testClock {
	return &testClock{now: t.UTC()}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t.UTC()
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type txMarker struct{}

// memStore is an in-memory stand-in for the gorm-backed repositories. It
// mirrors their guarantees: every call is atomic, WithTx serializes with
// all other calls, and a failed transaction rolls its writes back.
type memStore struct {
	mu sync.Mutex

	events    map[uuid.UUID]models.Event
	attendees map[uuid.UUID]map[uuid.UUID]time.Time
	tickets   map[string]models.Ticket

	users map[uuid.UUID]models.User
	roles map[string]models.Role

	announcements map[uuid.UUID]models.Announcement
	lostItems     map[uuid.UUID]models.LostItem
	lots          map[string]models.ParkingLot
	bookings      map[uuid.UUID]models.ParkingBooking
	emergencies   map[uuid.UUID]models.Emergency
}

func newMemStore() *memStore {
	roles := map[string]models.Role{
		models.RoleUser:      {ID: uuid.New(), Name: models.RoleUser},
		models.RoleVolunteer: {ID: uuid.New(), Name: models.RoleVolunteer},
		models.RoleAdmin:     {ID: uuid.New(), Name: models.RoleAdmin},
	}
	return &memStore{
		events:        make(map[uuid.UUID]models.Event),
		attendees:     make(map[uuid.UUID]map[uuid.UUID]time.Time),
		tickets:       make(map[string]models.Ticket),
		users:         make(map[uuid.UUID]models.User),
		roles:         roles,
		announcements: make(map[uuid.UUID]models.Announcement),
		lostItems:     make(map[uuid.UUID]models.LostItem),
		lots:          make(map[string]models.ParkingLot),
		bookings:      make(map[uuid.UUID]models.ParkingBooking),
		emergencies:   make(map[uuid.UUID]models.Emergency),
	}
}

func (m *memStore) lock(ctx context.Context) func() {
	if ctx.Value(txMarker{}) != nil {
		return func() {}
	}
	m.mu.Lock()
	return m.mu.Unlock
}

func (m *memStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txMarker{}) != nil {
		return fn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.clone()
	if err := fn(context.WithValue(ctx, txMarker{}, true)); err != nil {
		m.restore(snapshot)
		return err
	}
	return nil
}

type memSnapshot struct {
	events    map[uuid.UUID]models.Event
	attendees map[uuid.UUID]map[uuid.UUID]time.Time
	tickets   map[string]models.Ticket
	lots      map[string]models.ParkingLot
	bookings  map[uuid.UUID]models.ParkingBooking
}

func (m *memStore) clone() memSnapshot {
	snap := memSnapshot{
		events:    make(map[uuid.UUID]models.Event, len(m.events)),
		attendees: make(map[uuid.UUID]map[uuid.UUID]time.Time, len(m.attendees)),
		tickets:   make(map[string]models.Ticket, len(m.tickets)),
		lots:      make(map[string]models.ParkingLot, len(m.lots)),
		bookings:  make(map[uuid.UUID]models.ParkingBooking, len(m.bookings)),
	}
	for k, v := range m.events {
		snap.events[k] = v
	}
	for eventID, users := range m.attendees {
		inner := make(map[uuid.UUID]time.Time, len(users))
		for userID, at := range users {
			inner[userID] = at
		}
		snap.attendees[eventID] = inner
	}
	for k, v := range m.tickets {
		snap.tickets[k] = v
	}
	for k, v := range m.lots {
		snap.lots[k] = v
	}
	for k, v := range m.bookings {
		snap.bookings[k] = v
	}
	return snap
}

func (m *memStore) restore(snap memSnapshot) {
	m.events = snap.events
	m.attendees = snap.attendees
	m.tickets = snap.tickets
	m.lots = snap.lots
	m.bookings = snap.bookings
}

// EventStore

func (m *memStore) CreateEvent(ctx context.Context, event *models.Event) error {
	defer m.lock(ctx)()
	m.events[event.ID] = *event
	return nil
}

func (m *memStore) Event(ctx context.Context, id uuid.UUID) (models.Event, error) {
	defer m.lock(ctx)()
	event, ok := m.events[id]
	if !ok {
		return models.Event{}, models.ErrEventNotFound
	}
	return event, nil
}

func (m *memStore) EventForUpdate(ctx context.Context, id uuid.UUID) (models.Event, error) {
	return m.Event(ctx, id)
}

func (m *memStore) ListEvents(ctx context.Context, page, limit int) ([]models.Event, int64, error) {
	defer m.lock(ctx)()
	events := make([]models.Event, 0, len(m.events))
	for _, event := range m.events {
		events = append(events, event)
	}
	return events, int64(len(events)), nil
}

func (m *memStore) UpdateEvent(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	defer m.lock(ctx)()
	event, ok := m.events[id]
	if !ok {
		return models.ErrEventNotFound
	}
	if v, ok := fields["name"]; ok {
		event.Name = v.(string)
	}
	if v, ok := fields["description"]; ok {
		event.Description = v.(string)
	}
	if v, ok := fields["date"]; ok {
		event.Date = v.(time.Time)
	}
	if v, ok := fields["location"]; ok {
		event.Location = v.(string)
	}
	if v, ok := fields["capacity"]; ok {
		event.Capacity = v.(int)
	}
	if v, ok := fields["updated_at"]; ok {
		event.UpdatedAt = v.(time.Time)
	}
	m.events[id] = event
	return nil
}

func (m *memStore) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	defer m.lock(ctx)()
	if _, ok := m.events[id]; !ok {
		return models.ErrEventNotFound
	}
	delete(m.events, id)
	delete(m.attendees, id)
	return nil
}

func (m *memStore) CountAttendees(ctx context.Context, eventID uuid.UUID) (int, error) {
	defer m.lock(ctx)()
	return len(m.attendees[eventID]), nil
}

func (m *memStore) IsAttendee(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	defer m.lock(ctx)()
	_, ok := m.attendees[eventID][userID]
	return ok, nil
}

func (m *memStore) AddAttendee(ctx context.Context, eventID, userID uuid.UUID) error {
	defer m.lock(ctx)()
	if m.attendees[eventID] == nil {
		m.attendees[eventID] = make(map[uuid.UUID]time.Time)
	}
	if _, ok := m.attendees[eventID][userID]; ok {
		return models.ErrAlreadyRegistered
	}
	m.attendees[eventID][userID] = time.Now()
	return nil
}

func (m *memStore) RemoveAttendee(ctx context.Context, eventID, userID uuid.UUID) error {
	defer m.lock(ctx)()
	if _, ok := m.attendees[eventID][userID]; !ok {
		return models.ErrNotRegistered
	}
	delete(m.attendees[eventID], userID)
	return nil
}

func (m *memStore) SetEntryToken(ctx context.Context, id uuid.UUID, token string, at time.Time) error {
	defer m.lock(ctx)()
	event, ok := m.events[id]
	if !ok {
		return models.ErrEventNotFound
	}
	event.EntryToken = token
	event.EntryTokenAt = &at
	m.events[id] = event
	return nil
}

// TicketStore

func (m *memStore) CreateTicket(ctx context.Context, ticket *models.Ticket) error {
	defer m.lock(ctx)()
	m.tickets[ticket.Token] = *ticket
	return nil
}

func (m *memStore) TicketByToken(ctx context.Context, token string) (models.Ticket, error) {
	defer m.lock(ctx)()
	ticket, ok := m.tickets[token]
	if !ok {
		return models.Ticket{}, models.ErrTicketNotFound
	}
	return ticket, nil
}

func (m *memStore) ConsumeTicket(ctx context.Context, token string, usedAt time.Time) (bool, error) {
	defer m.lock(ctx)()
	ticket, ok := m.tickets[token]
	if !ok || ticket.Used {
		return false, nil
	}
	ticket.Used = true
	ticket.UsedAt = &usedAt
	m.tickets[token] = ticket
	return true, nil
}

// AuthUserStore

func (m *memStore) CreateUser(ctx context.Context, user *models.User) error {
	defer m.lock(ctx)()
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return models.ErrDuplicateAccount
		}
	}
	for _, role := range m.roles {
		if role.ID == user.RoleID {
			user.Role = role
		}
	}
	m.users[user.ID] = *user
	return nil
}

func (m *memStore) UserByEmail(ctx context.Context, email string) (models.User, error) {
	defer m.lock(ctx)()
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, models.ErrUserNotFound
}

func (m *memStore) UserByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	defer m.lock(ctx)()
	user, ok := m.users[id]
	if !ok {
		return models.User{}, models.ErrUserNotFound
	}
	return user, nil
}

func (m *memStore) RoleByName(ctx context.Context, name string) (models.Role, error) {
	defer m.lock(ctx)()
	role, ok := m.roles[name]
	if !ok {
		return models.Role{}, models.ErrValidation
	}
	return role, nil
}

// AnnouncementStore

func (m *memStore) CreateAnnouncement(ctx context.Context, announcement *models.Announcement) error {
	defer m.lock(ctx)()
	m.announcements[announcement.ID] = *announcement
	return nil
}

func (m *memStore) Announcement(ctx context.Context, id uuid.UUID) (models.Announcement, error) {
	defer m.lock(ctx)()
	announcement, ok := m.announcements[id]
	if !ok {
		return models.Announcement{}, models.ErrAnnouncementNotFound
	}
	return announcement, nil
}

func (m *memStore) ListAnnouncements(ctx context.Context, now time.Time) ([]models.Announcement, error) {
	defer m.lock(ctx)()
	announcements := make([]models.Announcement, 0, len(m.announcements))
	for _, announcement := range m.announcements {
		if announcement.ExpiresAt == nil || announcement.ExpiresAt.After(now) {
			announcements = append(announcements, announcement)
		}
	}
	return announcements, nil
}

func (m *memStore) DeleteAnnouncement(ctx context.Context, id uuid.UUID) error {
	defer m.lock(ctx)()
	if _, ok := m.announcements[id]; !ok {
		return models.ErrAnnouncementNotFound
	}
	delete(m.announcements, id)
	return nil
}

func (m *memStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	defer m.lock(ctx)()
	var pruned int64
	for id, announcement := range m.announcements {
		if announcement.ExpiresAt != nil && !announcement.ExpiresAt.After(now) {
			delete(m.announcements, id)
			pruned++
		}
	}
	return pruned, nil
}

// LostItemStore

func (m *memStore) CreateItem(ctx context.Context, item *models.LostItem) error {
	defer m.lock(ctx)()
	m.lostItems[item.ID] = *item
	return nil
}

func (m *memStore) Item(ctx context.Context, id uuid.UUID) (models.LostItem, error) {
	defer m.lock(ctx)()
	item, ok := m.lostItems[id]
	if !ok {
		return models.LostItem{}, models.ErrItemNotFound
	}
	return item, nil
}

func (m *memStore) ListItems(ctx context.Context, status string) ([]models.LostItem, error) {
	defer m.lock(ctx)()
	items := make([]models.LostItem, 0, len(m.lostItems))
	for _, item := range m.lostItems {
		if status == "" || item.Status == status {
			items = append(items, item)
		}
	}
	return items, nil
}

func (m *memStore) ClaimItem(ctx context.Context, id, userID uuid.UUID, at time.Time) (bool, error) {
	defer m.lock(ctx)()
	item, ok := m.lostItems[id]
	if !ok || item.Status != models.ItemStatusOpen {
		return false, nil
	}
	item.Status = models.ItemStatusClaimed
	item.ClaimedBy = &userID
	item.ClaimedAt = &at
	m.lostItems[id] = item
	return true, nil
}

// ParkingStore

func (m *memStore) ListLots(ctx context.Context) ([]models.ParkingLot, error) {
	defer m.lock(ctx)()
	lots := make([]models.ParkingLot, 0, len(m.lots))
	for _, lot := range m.lots {
		lots = append(lots, lot)
	}
	return lots, nil
}

func (m *memStore) LotForUpdate(ctx context.Context, kind string) (models.ParkingLot, error) {
	defer m.lock(ctx)()
	lot, ok := m.lots[kind]
	if !ok {
		return models.ParkingLot{}, models.ErrValidation
	}
	return lot, nil
}

func (m *memStore) SetLotBooked(ctx context.Context, kind string, booked int) error {
	defer m.lock(ctx)()
	lot, ok := m.lots[kind]
	if !ok {
		return models.ErrValidation
	}
	lot.Booked = booked
	m.lots[kind] = lot
	return nil
}

func (m *memStore) CreateBooking(ctx context.Context, booking *models.ParkingBooking) error {
	defer m.lock(ctx)()
	m.bookings[booking.ID] = *booking
	return nil
}

func (m *memStore) ActiveBooking(ctx context.Context, kind string, userID uuid.UUID) (models.ParkingBooking, error) {
	defer m.lock(ctx)()
	for _, booking := range m.bookings {
		if booking.Kind == kind && booking.UserID == userID && booking.Active {
			return booking, nil
		}
	}
	return models.ParkingBooking{}, models.ErrBookingNotFound
}

func (m *memStore) ReleaseBooking(ctx context.Context, id uuid.UUID) (bool, error) {
	defer m.lock(ctx)()
	booking, ok := m.bookings[id]
	if !ok || !booking.Active {
		return false, nil
	}
	booking.Active = false
	m.bookings[id] = booking
	return true, nil
}

// EmergencyStore

func (m *memStore) CreateEmergency(ctx context.Context, emergency *models.Emergency) error {
	defer m.lock(ctx)()
	m.emergencies[emergency.ID] = *emergency
	return nil
}

func (m *memStore) Emergency(ctx context.Context, id uuid.UUID) (models.Emergency, error) {
	defer m.lock(ctx)()
	emergency, ok := m.emergencies[id]
	if !ok {
		return models.Emergency{}, models.ErrEmergencyNotFound
	}
	return emergency, nil
}

func (m *memStore) ListEmergencies(ctx context.Context, status string) ([]models.Emergency, error) {
	defer m.lock(ctx)()
	emergencies := make([]models.Emergency, 0, len(m.emergencies))
	for _, emergency := range m.emergencies {
		if status == "" || emergency.Status == status {
			emergencies = append(emergencies, emergency)
		}
	}
	return emergencies, nil
}

func (m *memStore) ResolveEmergency(ctx context.Context, id, resolverID uuid.UUID, at time.Time) (bool, error) {
	defer m.lock(ctx)()
	emergency, ok := m.emergencies[id]
	if !ok || emergency.Status != models.EmergencyActive {
		return false, nil
	}
	emergency.Status = models.EmergencyResolved
	emergency.ResolvedBy = &resolverID
	emergency.ResolvedAt = &at
	m.emergencies[id] = emergency
	return true, nil
}
