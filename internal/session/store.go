package session

import "sync"

type Step string

const (
	StepShop  Step = "shop"
	StepDate  Step = "date"
	StepItems Step = "items"
)

// Form is the in-progress order of one chat: what the user has entered so
// far before the item list arrives.
type Form struct {
	Step      Step
	ShopName  string
	ShopID    *int
	OrderDate string
}

// Store isolates per-chat dialog state. Every access goes through the mutex,
// so concurrent chats never observe each other's forms, and completed or
// cancelled forms are removed to keep the map from growing without bound.
type Store struct {
	mu    sync.Mutex
	forms map[int64]Form
	dates map[int64]string
}

func NewStore() *Store {
	return &Store{
		forms: map[int64]Form{},
		dates: map[int64]string{},
	}
}

// Begin opens a fresh form for the chat, replacing any stale one.
func (s *Store) Begin(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forms[chatID] = Form{Step: StepShop}
}

func (s *Store) Form(chatID int64) (Form, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	form, ok := s.forms[chatID]
	return form, ok
}

func (s *Store) Put(chatID int64, form Form) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forms[chatID] = form
}

// Clear drops the chat's form on completion or cancellation.
func (s *Store) Clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.forms, chatID)
}

// SetCurrentDate remembers the reporting date announced in a chat; orders
// without their own date are filed under it.
func (s *Store) SetCurrentDate(chatID int64, date string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dates[chatID] = date
}

func (s *Store) CurrentDate(chatID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dates[chatID]
}
