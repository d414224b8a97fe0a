package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lixinchen-031016/work-record/internal/model"
	"github.com/lixinchen-031016/work-record/internal/repository"
	pkgerrors "github.com/lixinchen-031016/work-record/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: username
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if _, ok := m.users[user.Username]; ok {
		return gorm.ErrDuplicatedKey
	}
	if user.UserID == "" {
		user.UserID = uuid.NewString()
	}
	user.CreatedAt = time.Now()
	m.users[user.Username] = user
	return nil
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	if u, ok := m.users[username]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Username < result[j].Username })
	return result, nil
}

func (m *mockUserRepo) UpdatePassword(_ context.Context, username, passwordHash string) error {
	u, ok := m.users[username]
	if !ok {
		return pkgerrors.ErrNoRowsAffected
	}
	u.PasswordHash = passwordHash
	return nil
}

func (m *mockUserRepo) UpdateLastLogin(_ context.Context, username string, date time.Time) error {
	u, ok := m.users[username]
	if !ok {
		return pkgerrors.ErrNoRowsAffected
	}
	d := model.TruncateToDate(date)
	u.LastLoginDate = &d
	return nil
}

func (m *mockUserRepo) DeleteByUsername(_ context.Context, username string) error {
	if _, ok := m.users[username]; !ok {
		return pkgerrors.ErrNoRowsAffected
	}
	delete(m.users, username)
	return nil
}

// ── Mock DutyPersonRepository ──

type mockDutyPersonRepo struct {
	personnel []*model.DutyPerson // 插入顺序即轮换顺序
}

func newMockDutyPersonRepo(names ...string) *mockDutyPersonRepo {
	m := &mockDutyPersonRepo{}
	for _, name := range names {
		_ = m.Create(context.Background(), &model.DutyPerson{Name: name})
	}
	return m
}

func (m *mockDutyPersonRepo) Create(_ context.Context, person *model.DutyPerson) error {
	for _, p := range m.personnel {
		if p.Name == person.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	if person.DutyPersonID == "" {
		person.DutyPersonID = uuid.NewString()
	}
	m.personnel = append(m.personnel, person)
	return nil
}

func (m *mockDutyPersonRepo) GetByName(_ context.Context, name string) (*model.DutyPerson, error) {
	for _, p := range m.personnel {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDutyPersonRepo) ListOrdered(_ context.Context) ([]model.DutyPerson, error) {
	result := make([]model.DutyPerson, len(m.personnel))
	for i, p := range m.personnel {
		result[i] = *p
	}
	return result, nil
}

func (m *mockDutyPersonRepo) Rename(_ context.Context, oldName, newName string) error {
	for _, p := range m.personnel {
		if p.Name == oldName {
			p.Name = newName
			return nil
		}
	}
	return pkgerrors.ErrNoRowsAffected
}

func (m *mockDutyPersonRepo) DeleteByName(_ context.Context, name string) error {
	for i, p := range m.personnel {
		if p.Name == name {
			m.personnel = append(m.personnel[:i], m.personnel[i+1:]...)
			return nil
		}
	}
	return pkgerrors.ErrNoRowsAffected
}

// ── Mock DutyOverrideRepository ──

type mockDutyOverrideRepo struct {
	overrides map[string]*model.DutyOverride // key: YYYY-MM-DD
}

func newMockDutyOverrideRepo() *mockDutyOverrideRepo {
	return &mockDutyOverrideRepo{overrides: make(map[string]*model.DutyOverride)}
}

func (m *mockDutyOverrideRepo) GetByDate(_ context.Context, date time.Time) (*model.DutyOverride, error) {
	if o, ok := m.overrides[formatDate(date)]; ok {
		return o, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDutyOverrideRepo) Upsert(_ context.Context, override *model.DutyOverride) error {
	override.DutyDate = model.TruncateToDate(override.DutyDate)
	m.overrides[formatDate(override.DutyDate)] = override
	return nil
}

func (m *mockDutyOverrideRepo) DeleteByDate(_ context.Context, date time.Time) error {
	key := formatDate(date)
	if _, ok := m.overrides[key]; !ok {
		return pkgerrors.ErrNoRowsAffected
	}
	delete(m.overrides, key)
	return nil
}

func (m *mockDutyOverrideRepo) ListBetween(_ context.Context, from, to time.Time) ([]model.DutyOverride, error) {
	var result []model.DutyOverride
	for _, o := range m.overrides {
		if !o.DutyDate.Before(model.TruncateToDate(from)) && !o.DutyDate.After(model.TruncateToDate(to)) {
			result = append(result, *o)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DutyDate.Before(result[j].DutyDate) })
	return result, nil
}

// ── Mock WorkRecordRepository ──

type mockWorkRecordRepo struct {
	records []*model.WorkRecord
	seq     int
}

func newMockWorkRecordRepo() *mockWorkRecordRepo {
	return &mockWorkRecordRepo{}
}

func (m *mockWorkRecordRepo) Create(_ context.Context, record *model.WorkRecord) error {
	if record.WorkRecordID == "" {
		record.WorkRecordID = uuid.NewString()
	}
	// 递增的创建时间，保证排序稳定
	m.seq++
	record.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(m.seq) * time.Second)
	record.UpdatedAt = record.CreatedAt
	m.records = append(m.records, record)
	return nil
}

func (m *mockWorkRecordRepo) GetByID(_ context.Context, id string) (*model.WorkRecord, error) {
	for _, r := range m.records {
		if r.WorkRecordID == id {
			copied := *r
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWorkRecordRepo) List(_ context.Context, offset, limit int) ([]model.WorkRecord, int64, error) {
	all := m.snapshot()
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := int64(len(all))
	if offset >= len(all) {
		return []model.WorkRecord{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockWorkRecordRepo) UpdateFields(_ context.Context, id string, fields map[string]interface{}) error {
	for _, r := range m.records {
		if r.WorkRecordID != id {
			continue
		}
		for k, v := range fields {
			switch k {
			case "recorder":
				r.Recorder = v.(string)
			case "work_type":
				r.WorkType = v.(string)
			case "work_content":
				r.WorkContent = v.(string)
			case "start_date":
				r.StartDate = v.(time.Time)
			case "end_date":
				r.EndDate = v.(time.Time)
			case "is_completed":
				r.IsCompleted = v.(bool)
			case "updated_at":
				r.UpdatedAt = v.(time.Time)
			}
		}
		return nil
	}
	return pkgerrors.ErrNoRowsAffected
}

func (m *mockWorkRecordRepo) Delete(_ context.Context, id string) error {
	for i, r := range m.records {
		if r.WorkRecordID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return pkgerrors.ErrNoRowsAffected
}

func (m *mockWorkRecordRepo) ListPending(_ context.Context, ref *time.Time) ([]model.WorkRecord, error) {
	var result []model.WorkRecord
	for _, r := range m.records {
		if r.IsCompleted {
			continue
		}
		if ref != nil && r.EndDate.After(model.TruncateToDate(*ref)) {
			continue
		}
		result = append(result, *r)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].EndDate.Equal(result[j].EndDate) {
			return result[i].EndDate.Before(result[j].EndDate)
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (m *mockWorkRecordRepo) ListByDateRange(_ context.Context, from, to time.Time) ([]model.WorkRecord, error) {
	var result []model.WorkRecord
	for _, r := range m.records {
		if !r.StartDate.Before(from) && !r.EndDate.After(to) {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockWorkRecordRepo) ListAll(_ context.Context) ([]model.WorkRecord, error) {
	return m.snapshot(), nil
}

func (m *mockWorkRecordRepo) snapshot() []model.WorkRecord {
	result := make([]model.WorkRecord, len(m.records))
	for i, r := range m.records {
		result[i] = *r
	}
	return result
}

// ── 聚合 ──

type testRepos struct {
	user       *mockUserRepo
	dutyPerson *mockDutyPersonRepo
	override   *mockDutyOverrideRepo
	workRecord *mockWorkRecordRepo
}

func newTestRepos(personnel ...string) (*repository.Repository, *testRepos) {
	m := &testRepos{
		user:       newMockUserRepo(),
		dutyPerson: newMockDutyPersonRepo(personnel...),
		override:   newMockDutyOverrideRepo(),
		workRecord: newMockWorkRecordRepo(),
	}
	return &repository.Repository{
		User:         m.user,
		DutyPerson:   m.dutyPerson,
		DutyOverride: m.override,
		WorkRecord:   m.workRecord,
	}, m
}

// fixedClock 返回固定时间的时钟
func fixedClock(s string) func() time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}

func mustDate(s string) time.Time {
	t, err := parseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func mustLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}
