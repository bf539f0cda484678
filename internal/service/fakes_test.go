package service

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"fitflow/onboarding-app/internal/domain"
	"fitflow/onboarding-app/internal/repository"
)

// In-memory fakes for the repository and collaborator interfaces. Each test
// builds exactly the slice of state it needs.

type fakeUserRepo struct {
	users map[primitive.ObjectID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
}

func (r *fakeUserRepo) add(user *domain.User) primitive.ObjectID {
	if user.ID == primitive.NilObjectID {
		user.ID = primitive.NewObjectID()
	}
	r.users[user.ID] = user
	return user.ID
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	return r.add(user), nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) MarkSurveyCompleted(_ context.Context, id primitive.ObjectID) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.SurveyCompleted = true
	return nil
}

func (r *fakeUserRepo) MarkAssessmentApproved(_ context.Context, id primitive.ObjectID) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.AssessmentApproved = true
	return nil
}

func (r *fakeUserRepo) MarkProgramApproved(_ context.Context, id primitive.ObjectID) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.ProgramApproved = true
	return nil
}

func (r *fakeUserRepo) MarkOnboarded(_ context.Context, id primitive.ObjectID, at time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.OnboardedAt = &at
	return nil
}

type fakeSurveyRepo struct {
	surveys []*domain.Survey
}

func (r *fakeSurveyRepo) Create(_ context.Context, survey *domain.Survey) (primitive.ObjectID, error) {
	survey.ID = primitive.NewObjectID()
	if survey.CompletedAt.IsZero() {
		survey.CompletedAt = time.Now().UTC()
	}
	r.surveys = append(r.surveys, survey)
	return survey.ID, nil
}

func (r *fakeSurveyRepo) GetLatestByUserID(_ context.Context, userID primitive.ObjectID) (*domain.Survey, error) {
	var matches []*domain.Survey
	for _, s := range r.surveys {
		if s.UserID == userID {
			matches = append(matches, s)
		}
	}
	if len(matches) == 0 {
		return nil, repository.ErrNotFound
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].CompletedAt.After(matches[j].CompletedAt) })
	return matches[0], nil
}

type fakeAssessmentRepo struct {
	assessments []*domain.Assessment
}

func (r *fakeAssessmentRepo) Create(_ context.Context, assessment *domain.Assessment) (primitive.ObjectID, error) {
	assessment.ID = primitive.NewObjectID()
	assessment.CreatedAt = time.Now().UTC()
	r.assessments = append(r.assessments, assessment)
	return assessment.ID, nil
}

func (r *fakeAssessmentRepo) GetLatestByUserID(_ context.Context, userID primitive.ObjectID) (*domain.Assessment, error) {
	var latest *domain.Assessment
	for _, a := range r.assessments {
		if a.UserID == userID && (latest == nil || a.CreatedAt.After(latest.CreatedAt)) {
			latest = a
		}
	}
	if latest == nil {
		return nil, repository.ErrNotFound
	}
	return latest, nil
}

func (r *fakeAssessmentRepo) SetApproved(_ context.Context, id, userID primitive.ObjectID) error {
	for _, a := range r.assessments {
		if a.ID == id && a.UserID == userID {
			a.Approved = true
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeProgramRepo struct {
	programs map[primitive.ObjectID]*domain.Program
}

func newFakeProgramRepo() *fakeProgramRepo {
	return &fakeProgramRepo{programs: make(map[primitive.ObjectID]*domain.Program)}
}

func (r *fakeProgramRepo) Create(_ context.Context, program *domain.Program) (primitive.ObjectID, error) {
	program.ID = primitive.NewObjectID()
	program.CreatedAt = time.Now().UTC()
	if program.Status == "" {
		program.Status = domain.ProgramStatusDraft
	}
	r.programs[program.ID] = program
	return program.ID, nil
}

func (r *fakeProgramRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Program, error) {
	p, ok := r.programs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakeProgramRepo) GetLatestByUserID(_ context.Context, userID primitive.ObjectID) (*domain.Program, error) {
	var latest *domain.Program
	for _, p := range r.programs {
		if p.UserID == userID && (latest == nil || p.CreatedAt.After(latest.CreatedAt)) {
			latest = p
		}
	}
	if latest == nil {
		return nil, repository.ErrNotFound
	}
	copied := *latest
	return &copied, nil
}

func (r *fakeProgramRepo) SetStatus(_ context.Context, id primitive.ObjectID, status domain.ProgramStatus) error {
	p, ok := r.programs[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Status = status
	return nil
}

func (r *fakeProgramRepo) UpdateSchedule(_ context.Context, program *domain.Program) error {
	p, ok := r.programs[program.ID]
	if !ok {
		return repository.ErrNotFound
	}
	p.Weeks = program.Weeks
	p.StartDate = program.StartDate
	p.LastScheduledAt = program.LastScheduledAt
	p.Preferences = program.Preferences
	p.Status = domain.ProgramStatusScheduled
	return nil
}

type fakeExportRepo struct {
	exports []*domain.CalendarExport
}

func (r *fakeExportRepo) Create(_ context.Context, export *domain.CalendarExport) (primitive.ObjectID, error) {
	export.ID = primitive.NewObjectID()
	export.CreatedAt = time.Now().UTC()
	r.exports = append(r.exports, export)
	return export.ID, nil
}

func (r *fakeExportRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.CalendarExport, error) {
	var out []domain.CalendarExport
	for _, e := range r.exports {
		if e.UserID == userID {
			out = append(out, *e)
		}
	}
	return out, nil
}

type fakeStorage struct {
	uploaded map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{uploaded: make(map[string][]byte)}
}

func (s *fakeStorage) UploadObject(_ context.Context, key, _ string, body []byte) error {
	s.uploaded[key] = body
	return nil
}

func (s *fakeStorage) GeneratePresignedDownloadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://storage.example.com/" + key, nil
}

func (s *fakeStorage) DeleteObject(_ context.Context, key string) error {
	delete(s.uploaded, key)
	return nil
}

type fakeGenerator struct {
	assessment *domain.Assessment
	program    *domain.Program
	err        error
}

func (g *fakeGenerator) GenerateAssessment(_ context.Context, survey *domain.Survey) (*domain.Assessment, error) {
	if g.err != nil {
		return nil, g.err
	}
	a := *g.assessment
	a.UserID = survey.UserID
	a.SurveyID = survey.ID
	return &a, nil
}

func (g *fakeGenerator) GenerateProgram(_ context.Context, assessment *domain.Assessment, _ *domain.Survey) (*domain.Program, error) {
	if g.err != nil {
		return nil, g.err
	}
	p := *g.program
	p.UserID = assessment.UserID
	return &p, nil
}
