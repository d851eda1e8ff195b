package account

import (
	"context"
	"errors"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"gorm.io/datatypes"

	domain "github.com/BruksfildServices01/garage-coop/internal/domain/account"
	"github.com/BruksfildServices01/garage-coop/internal/domain/role"
	"github.com/BruksfildServices01/garage-coop/internal/httperr"
	"github.com/BruksfildServices01/garage-coop/internal/models"
	"github.com/BruksfildServices01/garage-coop/internal/notify"
)

// -------- accounts --------

type fakeAccountRepo struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]models.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{nextID: 1, rows: map[uint]models.Account{}}
}

var errFakeNotFound = httperr.ErrNotFound("account_not_found", "Account not found.")

func (f *fakeAccountRepo) emailUsed(email string, except uint) bool {
	for id, a := range f.rows {
		if id != except && a.Email == email {
			return true
		}
	}
	return false
}

func (f *fakeAccountRepo) Create(_ context.Context, acc *models.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.emailUsed(acc.Email, 0) {
		return httperr.ErrConflict("email_already_exists", "dup")
	}
	acc.ID = f.nextID
	f.nextID++
	acc.CreatedAt = time.Now()
	f.rows[acc.ID] = *acc
	return nil
}

func (f *fakeAccountRepo) GetByID(_ context.Context, id uint) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.rows[id]
	if !ok {
		return nil, errFakeNotFound
	}
	return &a, nil
}

func (f *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.rows {
		if a.Email == email {
			a := a
			return &a, nil
		}
	}
	return nil, errFakeNotFound
}

func (f *fakeAccountRepo) EmailTaken(_ context.Context, email string, exceptID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.emailUsed(email, exceptID), nil
}

// mutate applies fn to the stored row under the lock.
func (f *fakeAccountRepo) mutate(id uint, fn func(a *models.Account) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.rows[id]
	if !ok {
		return errFakeNotFound
	}
	if err := fn(&a); err != nil {
		return err
	}
	f.rows[id] = a
	return nil
}

func (f *fakeAccountRepo) UpdatePassword(_ context.Context, id uint, hash string) error {
	return f.mutate(id, func(a *models.Account) error {
		a.PasswordHash = hash
		return nil
	})
}

func (f *fakeAccountRepo) UpdateStatus(_ context.Context, id uint, status domain.Status) error {
	return f.mutate(id, func(a *models.Account) error {
		a.Status = string(status)
		return nil
	})
}

func (f *fakeAccountRepo) UpdateProfileFields(_ context.Context, id uint, fields domain.ProfileFields) error {
	return f.mutate(id, func(a *models.Account) error {
		if fields.Name != nil {
			a.Name = *fields.Name
		}
		if fields.Phone != nil {
			a.Phone = *fields.Phone
		}
		if fields.Settings != nil {
			a.Settings = datatypes.JSON(fields.Settings)
		}
		return nil
	})
}

func (f *fakeAccountRepo) UpdateEmail(_ context.Context, id uint, email string) error {
	return f.mutate(id, func(a *models.Account) error {
		if f.emailUsed(email, id) {
			return httperr.ErrConflict("email_already_exists", "dup")
		}
		a.Email = email
		return nil
	})
}

func (f *fakeAccountRepo) UpdatePhotoKey(_ context.Context, id uint, key string) error {
	return f.mutate(id, func(a *models.Account) error {
		a.PhotoKey = &key
		return nil
	})
}

func (f *fakeAccountRepo) List(_ context.Context, lf domain.ListFilter) ([]models.Account, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []models.Account
	for _, a := range f.rows {
		q := strings.ToLower(lf.Query)
		if q != "" && !strings.Contains(strings.ToLower(a.Name+" "+a.Email), q) {
			continue
		}
		if lf.Status != "" && a.Status != lf.Status {
			continue
		}
		all = append(all, a)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := int64(len(all))
	start := (lf.Page - 1) * lf.Limit
	if start > len(all) {
		start = len(all)
	}
	end := start + lf.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (f *fakeAccountRepo) seed(email, password, status string) *models.Account {
	acc := &models.Account{
		Name:         "Seed",
		Email:        email,
		PasswordHash: "hashed:" + password,
		Status:       status,
	}
	_ = f.Create(context.Background(), acc)
	return acc
}

// -------- collaborators --------

type plainHasher struct{}

func (plainHasher) Hash(pw string) (string, error) { return "hashed:" + pw, nil }

func (plainHasher) Compare(hash, pw string) error {
	if hash != "hashed:"+pw {
		return errors.New("mismatch")
	}
	return nil
}

type fixedIssuer struct{}

func (fixedIssuer) Issue(id uint) (string, time.Time, error) {
	return "token-for-" + strconv.FormatUint(uint64(id), 10), time.Unix(1700000000, 0), nil
}

type fixedRoles map[uint]role.Role

func (f fixedRoles) Resolve(_ context.Context, id uint) (role.Role, error) {
	if r, ok := f[id]; ok {
		return r, nil
	}
	return role.Unknown, nil
}

type memoryPhotos struct {
	mu          sync.Mutex
	objects     map[string][]byte
	contentType string
}

func (m *memoryPhotos) Put(_ context.Context, key string, body io.Reader, _ int64, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	if m.objects == nil {
		m.objects = map[string][]byte{}
	}
	m.objects[key] = b
	m.contentType = contentType
	return nil
}

type outbox struct {
	mu   sync.Mutex
	sent []notify.Message
}

func (o *outbox) Send(_ context.Context, msg notify.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sent = append(o.sent, msg)
	return nil
}

// flush closes d and returns everything it delivered.
func (o *outbox) flush(d *notify.Dispatcher) []notify.Message {
	_ = d.Close(context.Background())
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]notify.Message(nil), o.sent...)
}
