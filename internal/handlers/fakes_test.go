package handlers

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/skillsync-hq/skillsync-backend/internal/models"
	"github.com/skillsync-hq/skillsync-backend/internal/repository"
)

// In-memory store fakes. They mirror the Mongo implementations' semantics,
// including the consume-once behavior of codes and reset tokens.

type fakeStudentStore struct {
	mu       sync.Mutex
	students map[string]*models.Student
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{students: make(map[string]*models.Student)}
}

func copyStudent(s *models.Student) *models.Student {
	cp := *s
	return &cp
}

func (f *fakeStudentStore) Create(ctx context.Context, student *models.Student) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.students {
		if existing.Email == student.Email {
			return repository.ErrDuplicateEmail
		}
	}
	student.ID = primitive.NewObjectID()
	student.CreatedAt = time.Now()
	student.UpdatedAt = student.CreatedAt
	f.students[student.ID.Hex()] = copyStudent(student)
	return nil
}

func (f *fakeStudentStore) FindByID(ctx context.Context, id string) (*models.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.students[id]; ok {
		return copyStudent(s), nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStudentStore) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.students {
		if s.Email == email {
			return copyStudent(s), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStudentStore) FindByFederatedID(ctx context.Context, federatedID string) (*models.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.students {
		if s.FederatedID != "" && s.FederatedID == federatedID {
			return copyStudent(s), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStudentStore) UpdateLastLogin(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.students[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.LastLogin = time.Now()
	return nil
}

func (f *fakeStudentStore) SetVerificationCode(ctx context.Context, id, code string, expires time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.students[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.VerificationCode = code
	s.VerificationExpire = &expires
	return nil
}

func (f *fakeStudentStore) ConsumeVerificationCode(ctx context.Context, code string, now time.Time) (*models.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.students {
		if s.VerificationCode == code && s.VerificationExpire != nil && s.VerificationExpire.After(now) {
			s.IsVerified = true
			s.VerificationCode = ""
			s.VerificationExpire = nil
			return copyStudent(s), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStudentStore) SetResetToken(ctx context.Context, id, token string, expires time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.students[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.ResetToken = token
	s.ResetExpire = &expires
	return nil
}

func (f *fakeStudentStore) ConsumeResetToken(ctx context.Context, token, newPasswordHash string, now time.Time) (*models.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.students {
		if s.ResetToken == token && s.ResetExpire != nil && s.ResetExpire.After(now) {
			s.Password = newPasswordHash
			s.ResetToken = ""
			s.ResetExpire = nil
			return copyStudent(s), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStudentStore) LinkFederatedID(ctx context.Context, id, federatedID, provider string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.students[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.FederatedID = federatedID
	s.AuthProvider = provider
	return nil
}

// mutate runs fn against the stored document, for test setup like expiring a
// token in place.
func (f *fakeStudentStore) mutate(id string, fn func(*models.Student)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.students[id]; ok {
		fn(s)
	}
}

type fakeCompanyStore struct {
	mu        sync.Mutex
	companies map[string]*models.Company
}

func newFakeCompanyStore() *fakeCompanyStore {
	return &fakeCompanyStore{companies: make(map[string]*models.Company)}
}

func copyCompany(c *models.Company) *models.Company {
	cp := *c
	return &cp
}

func (f *fakeCompanyStore) Create(ctx context.Context, company *models.Company) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.companies {
		if existing.Email == company.Email {
			return repository.ErrDuplicateEmail
		}
	}
	company.ID = primitive.NewObjectID()
	company.CreatedAt = time.Now()
	company.UpdatedAt = company.CreatedAt
	f.companies[company.ID.Hex()] = copyCompany(company)
	return nil
}

func (f *fakeCompanyStore) FindByID(ctx context.Context, id string) (*models.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.companies[id]; ok {
		return copyCompany(c), nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeCompanyStore) FindByEmail(ctx context.Context, email string) (*models.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.companies {
		if c.Email == email {
			return copyCompany(c), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeCompanyStore) UpdateLastLogin(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.companies[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.LastLogin = time.Now()
	return nil
}

func (f *fakeCompanyStore) SetVerificationCode(ctx context.Context, id, code string, expires time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.companies[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.VerificationCode = code
	c.VerificationExpire = &expires
	return nil
}

func (f *fakeCompanyStore) ConsumeVerificationCode(ctx context.Context, code string, now time.Time) (*models.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.companies {
		if c.VerificationCode == code && c.VerificationExpire != nil && c.VerificationExpire.After(now) {
			c.IsVerified = true
			c.VerificationCode = ""
			c.VerificationExpire = nil
			return copyCompany(c), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeCompanyStore) SetResetToken(ctx context.Context, id, token string, expires time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.companies[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.ResetToken = token
	c.ResetExpire = &expires
	return nil
}

func (f *fakeCompanyStore) ConsumeResetToken(ctx context.Context, token, newPasswordHash string, now time.Time) (*models.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.companies {
		if c.ResetToken == token && c.ResetExpire != nil && c.ResetExpire.After(now) {
			c.Password = newPasswordHash
			c.ResetToken = ""
			c.ResetExpire = nil
			return copyCompany(c), nil
		}
	}
	return nil, repository.ErrNotFound
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (f *fakeMailer) sentTo(to string) []sentMail {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []sentMail
	for _, m := range f.sent {
		if m.To == to {
			out = append(out, m)
		}
	}
	return out
}
