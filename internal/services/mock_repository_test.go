package services

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/SAP-F-2025/academic-records-service/internal/models"
	"github.com/SAP-F-2025/academic-records-service/internal/repositories"
)

// fakeRepository is an in-memory Repository for service tests. It enforces
// the same uniqueness rules the database constraints do, and rolls back
// writes when a transactional callback fails.
type fakeRepository struct {
	mu sync.Mutex

	users    map[uint]*models.User
	teachers map[uint]*models.Teacher
	students map[uint]*models.Student

	nextUserID    uint
	nextTeacherID uint
	nextStudentID uint
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		users:    make(map[uint]*models.User),
		teachers: make(map[uint]*models.Teacher),
		students: make(map[uint]*models.Student),
	}
}

func (f *fakeRepository) User() repositories.UserRepository       { return &fakeUserRepo{f} }
func (f *fakeRepository) Teacher() repositories.TeacherRepository { return &fakeTeacherRepo{f} }
func (f *fakeRepository) Student() repositories.StudentRepository { return &fakeStudentRepo{f} }

func (f *fakeRepository) Course() repositories.ReferenceRepository[models.Course]         { return nil }
func (f *fakeRepository) Department() repositories.ReferenceRepository[models.Department] { return nil }
func (f *fakeRepository) Day() repositories.ReferenceRepository[models.Day]               { return nil }
func (f *fakeRepository) Room() repositories.ReferenceRepository[models.Room]             { return nil }
func (f *fakeRepository) TableType() repositories.ReferenceRepository[models.TableType]   { return nil }
func (f *fakeRepository) Table() repositories.ReferenceRepository[models.Table]           { return nil }
func (f *fakeRepository) GroupStudent() repositories.ReferenceRepository[models.GroupStudent] {
	return nil
}

// WithTransaction snapshots state and restores it when fn fails, matching
// the rollback behavior of the real implementation.
func (f *fakeRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	f.mu.Lock()
	usersCopy := copyMap(f.users)
	teachersCopy := copyMap(f.teachers)
	studentsCopy := copyMap(f.students)
	nextUser, nextTeacher, nextStudent := f.nextUserID, f.nextTeacherID, f.nextStudentID
	f.mu.Unlock()

	if err := fn(f); err != nil {
		f.mu.Lock()
		f.users = usersCopy
		f.teachers = teachersCopy
		f.students = studentsCopy
		f.nextUserID, f.nextTeacherID, f.nextStudentID = nextUser, nextTeacher, nextStudent
		f.mu.Unlock()
		return err
	}
	return nil
}

func (f *fakeRepository) Ping(ctx context.Context) error { return nil }
func (f *fakeRepository) Close() error                   { return nil }

func copyMap[V any](src map[uint]V) map[uint]V {
	dst := make(map[uint]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// ===== USERS =====

type fakeUserRepo struct{ f *fakeRepository }

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()

	for _, existing := range r.f.users {
		if existing.Username == user.Username {
			return repositories.ErrDuplicateUsername
		}
		if user.Email != nil && existing.Email != nil && *existing.Email == *user.Email {
			return repositories.ErrDuplicateEmail
		}
		if user.PhoneNumber != nil && existing.PhoneNumber != nil && *existing.PhoneNumber == *user.PhoneNumber {
			return repositories.ErrDuplicatePhone
		}
	}

	r.f.nextUserID++
	user.ID = r.f.nextUserID
	clone := *user
	r.f.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()

	user, ok := r.f.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()

	for _, user := range r.f.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()

	for _, user := range r.f.users {
		if user.Email != nil && *user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()

	if _, ok := r.f.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	for id, existing := range r.f.users {
		if id == user.ID {
			continue
		}
		if existing.Username == user.Username {
			return repositories.ErrDuplicateUsername
		}
		if user.Email != nil && existing.Email != nil && *existing.Email == *user.Email {
			return repositories.ErrDuplicateEmail
		}
	}
	clone := *user
	r.f.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uint) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()

	if _, ok := r.f.users[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.f.users, id)
	for tid, teacher := range r.f.teachers {
		if teacher.UserID == id {
			delete(r.f.teachers, tid)
		}
	}
	for sid, student := range r.f.students {
		if student.UserID == id {
			delete(r.f.students, sid)
		}
	}
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()

	var matched []*models.User
	for _, user := range r.f.users {
		if filters.Query != "" && !strings.Contains(user.Username, filters.Query) {
			continue
		}
		if filters.Role != nil && !user.HasRole(*filters.Role) {
			continue
		}
		if filters.IsActive != nil && user.IsActive != *filters.IsActive {
			continue
		}
		clone := *user
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	matched = page(matched, filters.Offset, filters.Limit)
	return matched, total, nil
}

func (r *fakeUserRepo) ExistsByID(ctx context.Context, id uint) (bool, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	_, ok := r.f.users[id]
	return ok, nil
}

func (r *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, user := range r.f.users {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

// ===== TEACHERS =====

type fakeTeacherRepo struct{ f *fakeRepository }

func (r *fakeTeacherRepo) Create(ctx context.Context, teacher *models.Teacher) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()

	for _, existing := range r.f.teachers {
		if existing.UserID == teacher.UserID {
			return repositories.ErrDuplicateProfile
		}
	}

	r.f.nextTeacherID++
	teacher.ID = r.f.nextTeacherID
	clone := *teacher
	r.f.teachers[teacher.ID] = &clone
	return nil
}

func (r *fakeTeacherRepo) GetByID(ctx context.Context, id uint) (*models.Teacher, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()

	teacher, ok := r.f.teachers[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	clone := *teacher
	if user, ok := r.f.users[teacher.UserID]; ok {
		userClone := *user
		clone.User = &userClone
	}
	return &clone, nil
}

func (r *fakeTeacherRepo) GetByUserID(ctx context.Context, userID uint) (*models.Teacher, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()

	for _, teacher := range r.f.teachers {
		if teacher.UserID == userID {
			clone := *teacher
			return &clone, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeTeacherRepo) Update(ctx context.Context, teacher *models.Teacher) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()

	if _, ok := r.f.teachers[teacher.ID]; !ok {
		return repositories.ErrNotFound
	}
	clone := *teacher
	r.f.teachers[teacher.ID] = &clone
	return nil
}

func (r *fakeTeacherRepo) Delete(ctx context.Context, id uint) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()

	if _, ok := r.f.teachers[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.f.teachers, id)
	return nil
}

func (r *fakeTeacherRepo) List(ctx context.Context, filters repositories.ListFilters) ([]*models.Teacher, int64, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()

	var matched []*models.Teacher
	for _, teacher := range r.f.teachers {
		clone := *teacher
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	matched = page(matched, filters.Offset, filters.Limit)
	return matched, total, nil
}

// ===== STUDENTS =====

type fakeStudentRepo struct{ f *fakeRepository }

func (r *fakeStudentRepo) Create(ctx context.Context, student *models.Student) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()

	for _, existing := range r.f.students {
		if existing.UserID == student.UserID {
			return repositories.ErrDuplicateProfile
		}
		if existing.StudentID == student.StudentID {
			return repositories.ErrDuplicateStudentID
		}
	}

	r.f.nextStudentID++
	student.ID = r.f.nextStudentID
	clone := *student
	r.f.students[student.ID] = &clone
	return nil
}

func (r *fakeStudentRepo) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()

	student, ok := r.f.students[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	clone := *student
	if user, ok := r.f.users[student.UserID]; ok {
		userClone := *user
		clone.User = &userClone
	}
	return &clone, nil
}

func (r *fakeStudentRepo) GetByUserID(ctx context.Context, userID uint) (*models.Student, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()

	for _, student := range r.f.students {
		if student.UserID == userID {
			clone := *student
			return &clone, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeStudentRepo) Update(ctx context.Context, student *models.Student) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()

	if _, ok := r.f.students[student.ID]; !ok {
		return repositories.ErrNotFound
	}
	for id, existing := range r.f.students {
		if id != student.ID && existing.StudentID == student.StudentID {
			return repositories.ErrDuplicateStudentID
		}
	}
	clone := *student
	r.f.students[student.ID] = &clone
	return nil
}

func (r *fakeStudentRepo) Delete(ctx context.Context, id uint) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()

	if _, ok := r.f.students[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.f.students, id)
	return nil
}

func (r *fakeStudentRepo) List(ctx context.Context, filters repositories.ListFilters) ([]*models.Student, int64, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()

	var matched []*models.Student
	for _, student := range r.f.students {
		clone := *student
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	matched = page(matched, filters.Offset, filters.Limit)
	return matched, total, nil
}

func (r *fakeStudentRepo) ListAll(ctx context.Context) ([]*models.Student, error) {
	students, _, err := r.List(ctx, repositories.ListFilters{})
	if err != nil {
		return nil, err
	}
	for _, student := range students {
		r.f.mu.Lock()
		if user, ok := r.f.users[student.UserID]; ok {
			userClone := *user
			student.User = &userClone
		}
		r.f.mu.Unlock()
	}
	return students, nil
}

func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
