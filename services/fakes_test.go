package services

import (
	"context"
	"sync"
	"time"

	"backend/models"
	"backend/repository"
)

type fakeKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeKV() *fakeKV { return &fakeKV{data: make(map[string]string)} }

func (f *fakeKV) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	val, ok := f.data[key]
	if !ok {
		return "", ErrCacheMiss
	}
	return val, nil
}

func (f *fakeKV) Set(_ context.Context, key, value string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return nil
}

func (f *fakeKV) Del(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

type fakeUsers struct {
	mu     sync.Mutex
	byUID  map[string]*models.User
	nextID uint
}

func newFakeUsers() *fakeUsers { return &fakeUsers{byUID: make(map[string]*models.User)} }

func (f *fakeUsers) ByUID(uid string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byUID[uid]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) ByEmail(email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byUID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) EmailExists(email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byUID {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) UsernameExists(username string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byUID {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) Create(u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byUID {
		if existing.Email == u.Email || existing.Username == u.Username {
			return repository.ErrDuplicate
		}
	}
	f.nextID++
	u.ID = f.nextID
	u.CreatedAt = time.Now()
	u.UpdatedAt = time.Now()
	cp := *u
	f.byUID[u.UID] = &cp
	return nil
}

func (f *fakeUsers) Save(u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u.UpdatedAt = time.Now()
	cp := *u
	f.byUID[u.UID] = &cp
	return nil
}

func (f *fakeUsers) Delete(uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byUID, uid)
	return nil
}

type fakeStreaks struct {
	mu      sync.Mutex
	dates   map[string][]string
	appends int
}

func newFakeStreaks() *fakeStreaks { return &fakeStreaks{dates: make(map[string][]string)} }

func (f *fakeStreaks) Has(uid, date string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.dates[uid] {
		if d == date {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStreaks) Append(uid, date string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.dates[uid] {
		if d == date {
			return nil
		}
	}
	f.appends++
	f.dates[uid] = append(f.dates[uid], date)
	return nil
}

func (f *fakeStreaks) Dates(uid string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.dates[uid]...), nil
}

func (f *fakeStreaks) DeleteAll(uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.dates, uid)
	return nil
}

type fakeDevices struct {
	mu      sync.Mutex
	devices map[string][]models.UserDevice
}

func newFakeDevices() *fakeDevices { return &fakeDevices{devices: make(map[string][]models.UserDevice)} }

func (f *fakeDevices) Upsert(d *models.UserDevice) (*models.UserDevice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.devices[d.UserUID] = append(f.devices[d.UserUID], *d)
	return d, nil
}

func (f *fakeDevices) EnabledByUser(uid string) ([]models.UserDevice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.UserDevice
	for _, d := range f.devices[uid] {
		if d.Enabled {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDevices) SetEnabled(uid string, enabled bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := f.devices[uid]
	for i := range list {
		list[i].Enabled = enabled
	}
	return nil
}

func (f *fakeDevices) DeleteAll(uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.devices, uid)
	return nil
}
