package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/teamfolio/teamfolio-go/internal/model"
)

// MemoryUserRepository is a process-local UserRepository used for
// development runs without MySQL and in tests. It enforces the same unique
// keys as the users table.
type MemoryUserRepository struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]model.User
}

// NewMemoryUserRepository creates an empty MemoryUserRepository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[int64]model.User)}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID != 0 {
		if _, ok := r.users[user.ID]; ok {
			return ErrDuplicateID
		}
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
		if u.Username == user.Username {
			return ErrDuplicateUsername
		}
	}

	if user.ID == 0 {
		r.nextID++
		user.ID = r.nextID
	} else if user.ID > r.nextID {
		r.nextID = user.ID
	}
	r.users[user.ID] = cloneUser(*user)
	return nil
}

func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			c := cloneUser(u)
			return &c, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id int64) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	c := cloneUser(u)
	return &c, nil
}

// List mirrors the SQL ordering: numbers ascending with NULLs last, id breaks ties.
func (r *MemoryUserRepository) List(_ context.Context) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		c := cloneUser(u)
		c.PasswordHash = ""
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Number, out[j].Number
		switch {
		case a == nil && b != nil:
			return false
		case a != nil && b == nil:
			return true
		case a != nil && b != nil && *a != *b:
			return *a < *b
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MemoryUserRepository) UpdateProfile(_ context.Context, id int64, upd model.ProfileUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil
	}
	u.Number = upd.Number
	u.Department = upd.Department
	u.Classification = upd.Classification
	u.Hobby = upd.Hobby
	u.BusinessExperience = upd.BusinessExperience
	if upd.ProfileImage != nil {
		u.ProfileImage = upd.ProfileImage
	}
	r.users[id] = cloneUser(u)
	return nil
}

// MemoryDocumentRepository is the process-local counterpart of DocumentRepository.
type MemoryDocumentRepository struct {
	mu     sync.Mutex
	nextID int64
	docs   []model.Document
}

// NewMemoryDocumentRepository creates an empty MemoryDocumentRepository.
func NewMemoryDocumentRepository() *MemoryDocumentRepository {
	return &MemoryDocumentRepository{}
}

func (r *MemoryDocumentRepository) Create(_ context.Context, doc *model.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	doc.ID = r.nextID
	doc.CreatedAt = time.Now().UTC().Truncate(time.Second)
	r.docs = append(r.docs, *doc)
	return nil
}

func (r *MemoryDocumentRepository) ListByUser(_ context.Context, userID int64) ([]model.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []model.Document
	for _, d := range r.docs {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

func cloneUser(u model.User) model.User {
	c := u
	if u.Number != nil {
		n := *u.Number
		c.Number = &n
	}
	c.Department = cloneString(u.Department)
	c.Classification = cloneString(u.Classification)
	c.Hobby = cloneString(u.Hobby)
	c.BusinessExperience = cloneString(u.BusinessExperience)
	c.ProfileImage = cloneString(u.ProfileImage)
	return c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
