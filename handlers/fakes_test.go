package handlers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"finai/db"
	"finai/models"
)

type memUsers struct {
	mu   sync.Mutex
	byID map[string]*models.User
	seq  int
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[string]*models.User{}}
}

func (m *memUsers) CreateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.Email = db.NormalizeEmail(u.Email)
	for _, existing := range m.byID {
		if existing.Email == u.Email {
			return db.ErrEmailTaken
		}
	}
	m.seq++
	u.ID = fmt.Sprintf("user-%d", m.seq)
	if u.SubscriptionTier == "" {
		u.SubscriptionTier = "free"
	}
	if u.SubscriptionStatus == "" {
		u.SubscriptionStatus = "active"
	}
	u.CreatedAt, u.UpdatedAt = time.Now(), time.Now()
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == db.NormalizeEmail(email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, db.ErrUserNotFound
}

func (m *memUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, db.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) UpdateToken(_ context.Context, id, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return db.ErrUserNotFound
	}
	u.Token = token
	return nil
}

func (m *memUsers) UpdateSubscription(_ context.Context, id, tier, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return db.ErrUserNotFound
	}
	u.SubscriptionTier, u.SubscriptionStatus = tier, status
	return nil
}

func (m *memUsers) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}

type fakeProvider struct {
	snap   *models.CompanySnapshot
	err    error
	ticker string
}

func (f *fakeProvider) Lookup(_ context.Context, ticker string) (*models.CompanySnapshot, error) {
	f.ticker = ticker
	return f.snap, f.err
}

type fakeAnalyst struct {
	kind, subject string
	info          map[string]any
	err           error
}

func (f *fakeAnalyst) Analyze(_ context.Context, kind, subject string) (*models.Analysis, error) {
	f.kind, f.subject = kind, subject
	if f.err != nil {
		return nil, f.err
	}
	return &models.Analysis{Timestamp: "2024-03-01T09:30:00Z", Analysis: "looks fine", Disclaimer: "not advice"}, nil
}

func (f *fakeAnalyst) PersonalFinancePlan(_ context.Context, info map[string]any) (*models.Analysis, error) {
	f.info = info
	if f.err != nil {
		return nil, f.err
	}
	return &models.Analysis{Timestamp: "2024-03-01T09:30:00Z", Analysis: "save more", Disclaimer: "not advice"}, nil
}

type fakeMarket struct {
	news []models.Headline
	rows []map[string]string
	err  error
	url  string
}

func (f *fakeMarket) LatestNews(context.Context) ([]models.Headline, error) {
	return f.news, f.err
}

func (f *fakeMarket) ScreenTable(_ context.Context, pageURL string) ([]map[string]string, error) {
	f.url = pageURL
	return f.rows, f.err
}
