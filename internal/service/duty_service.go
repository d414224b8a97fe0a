package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lixinchen-031016/work-record/config"
	"github.com/lixinchen-031016/work-record/internal/dto"
	"github.com/lixinchen-031016/work-record/internal/model"
	"github.com/lixinchen-031016/work-record/internal/repository"
	pkgerrors "github.com/lixinchen-031016/work-record/pkg/errors"
)

// ── 值班模块业务错误 ──

var (
	ErrDutyNameRequired     = errors.New("值班人员姓名不能为空")
	ErrDutyPersonExists     = errors.New("值班人员已存在")
	ErrDutyPersonNotFound   = errors.New("值班人员不存在")
	ErrDutyOverrideNotFound = errors.New("该日期没有指定值班人员")
)

const maxCalendarDays = 366

// ResolveDuty 计算某日的值班人员
//
//   - 当日存在覆盖记录时直接返回覆盖中的姓名，不校验其是否仍在名单中
//   - 名单为空返回 ""
//   - 否则按 day-of-year（1 起算）对名单长度取模
//
// 纯函数，不做任何 I/O；today 应为值班时区下的日历日期。
func ResolveDuty(today time.Time, personnel []string, override *model.DutyOverride) string {
	if override != nil && sameDate(override.DutyDate, today) {
		return override.PersonName
	}
	if len(personnel) == 0 {
		return ""
	}
	return personnel[today.YearDay()%len(personnel)]
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DutyService 值班业务接口
type DutyService interface {
	Today(ctx context.Context) (*dto.DutyResponse, error)
	On(ctx context.Context, date string) (*dto.DutyResponse, error)
	SaveOverride(ctx context.Context, date string, req *dto.SaveOverrideRequest) (*dto.DutyOverrideResponse, error)
	DeleteOverride(ctx context.Context, date string) error

	ListPersonnel(ctx context.Context) ([]dto.DutyPersonResponse, error)
	AddPerson(ctx context.Context, req *dto.DutyPersonRequest) (*dto.DutyPersonResponse, error)
	RenamePerson(ctx context.Context, oldName string, req *dto.DutyPersonRequest) (*dto.DutyPersonResponse, error)
	DeletePerson(ctx context.Context, name string) error

	// Calendar 渲染 iCalendar 订阅内容，每天一个全天事件
	Calendar(ctx context.Context, req *dto.DutyCalendarRequest) (string, error)
}

type dutyService struct {
	cfg    *config.RosterConfig
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
	now    func() time.Time
}

// NewDutyService 创建 DutyService 实例
func NewDutyService(cfg *config.RosterConfig, repo *repository.Repository, logger *zap.Logger) DutyService {
	return &dutyService{
		cfg:    cfg,
		repo:   repo,
		loc:    cfg.Location(),
		logger: logger,
		now:    time.Now,
	}
}

// ════════════════════════════════════════════════════
// 当日值班
// ════════════════════════════════════════════════════

func (s *dutyService) Today(ctx context.Context) (*dto.DutyResponse, error) {
	return s.resolve(ctx, localToday(s.now(), s.loc))
}

func (s *dutyService) On(ctx context.Context, date string) (*dto.DutyResponse, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, day)
}

func (s *dutyService) resolve(ctx context.Context, day time.Time) (*dto.DutyResponse, error) {
	names, err := s.rosterNames(ctx)
	if err != nil {
		return nil, err
	}

	override, err := s.repo.DutyOverride.GetByDate(ctx, day)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询值班覆盖失败", zap.Error(err))
			return nil, err
		}
		override = nil
	}

	resp := &dto.DutyResponse{
		Date:       formatDate(day),
		Person:     ResolveDuty(day, names, override),
		RosterSize: len(names),
	}
	switch {
	case override != nil:
		resp.Source = dto.DutySourceOverride
	case resp.Person != "":
		resp.Source = dto.DutySourceRotation
	default:
		resp.Source = dto.DutySourceNone
	}
	return resp, nil
}

func (s *dutyService) rosterNames(ctx context.Context) ([]string, error) {
	personnel, err := s.repo.DutyPerson.ListOrdered(ctx)
	if err != nil {
		s.logger.Error("查询值班名单失败", zap.Error(err))
		return nil, err
	}
	names := make([]string, len(personnel))
	for i, p := range personnel {
		names[i] = p.Name
	}
	return names, nil
}

// ════════════════════════════════════════════════════
// 值班覆盖
// ════════════════════════════════════════════════════

// SaveOverride 指定某日值班人员，已有覆盖时直接替换
// 录入时要求姓名在当前名单中；之后名单变化不影响已保存的覆盖
func (s *dutyService) SaveOverride(ctx context.Context, date string, req *dto.SaveOverrideRequest) (*dto.DutyOverrideResponse, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.PersonName)
	if name == "" {
		return nil, ErrDutyNameRequired
	}

	if _, err := s.repo.DutyPerson.GetByName(ctx, name); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDutyPersonNotFound
		}
		return nil, err
	}

	override := &model.DutyOverride{DutyDate: day, PersonName: name}
	if err := s.repo.DutyOverride.Upsert(ctx, override); err != nil {
		s.logger.Error("保存值班覆盖失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("指定值班人员", zap.String("date", formatDate(day)), zap.String("person", name))
	return &dto.DutyOverrideResponse{Date: formatDate(day), PersonName: name}, nil
}

func (s *dutyService) DeleteOverride(ctx context.Context, date string) error {
	day, err := parseDate(date)
	if err != nil {
		return err
	}
	if err := s.repo.DutyOverride.DeleteByDate(ctx, day); err != nil {
		if errors.Is(err, pkgerrors.ErrNoRowsAffected) {
			return ErrDutyOverrideNotFound
		}
		s.logger.Error("删除值班覆盖失败", zap.Error(err))
		return err
	}
	return nil
}

// ════════════════════════════════════════════════════
// 值班名单
// ════════════════════════════════════════════════════

func (s *dutyService) ListPersonnel(ctx context.Context) ([]dto.DutyPersonResponse, error) {
	personnel, err := s.repo.DutyPerson.ListOrdered(ctx)
	if err != nil {
		s.logger.Error("查询值班名单失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.DutyPersonResponse, len(personnel))
	for i, p := range personnel {
		result[i] = dto.DutyPersonResponse{ID: p.DutyPersonID, Name: p.Name}
	}
	return result, nil
}

func (s *dutyService) AddPerson(ctx context.Context, req *dto.DutyPersonRequest) (*dto.DutyPersonResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrDutyNameRequired
	}
	if err := s.ensureNameFree(ctx, name); err != nil {
		return nil, err
	}

	person := &model.DutyPerson{Name: name}
	if err := s.repo.DutyPerson.Create(ctx, person); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDutyPersonExists
		}
		s.logger.Error("添加值班人员失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("添加值班人员", zap.String("name", name))
	return &dto.DutyPersonResponse{ID: person.DutyPersonID, Name: person.Name}, nil
}

// RenamePerson 改名不改变轮换位置
func (s *dutyService) RenamePerson(ctx context.Context, oldName string, req *dto.DutyPersonRequest) (*dto.DutyPersonResponse, error) {
	newName := strings.TrimSpace(req.Name)
	if newName == "" {
		return nil, ErrDutyNameRequired
	}

	person, err := s.repo.DutyPerson.GetByName(ctx, oldName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDutyPersonNotFound
		}
		return nil, err
	}
	if newName == oldName {
		return &dto.DutyPersonResponse{ID: person.DutyPersonID, Name: person.Name}, nil
	}
	if err := s.ensureNameFree(ctx, newName); err != nil {
		return nil, err
	}

	if err := s.repo.DutyPerson.Rename(ctx, oldName, newName); err != nil {
		switch {
		case errors.Is(err, pkgerrors.ErrNoRowsAffected):
			return nil, ErrDutyPersonNotFound
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, ErrDutyPersonExists
		}
		s.logger.Error("修改值班人员失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("修改值班人员", zap.String("old", oldName), zap.String("new", newName))
	return &dto.DutyPersonResponse{ID: person.DutyPersonID, Name: newName}, nil
}

func (s *dutyService) DeletePerson(ctx context.Context, name string) error {
	if err := s.repo.DutyPerson.DeleteByName(ctx, name); err != nil {
		if errors.Is(err, pkgerrors.ErrNoRowsAffected) {
			return ErrDutyPersonNotFound
		}
		s.logger.Error("删除值班人员失败", zap.Error(err))
		return err
	}
	s.logger.Info("删除值班人员", zap.String("name", name))
	return nil
}

func (s *dutyService) ensureNameFree(ctx context.Context, name string) error {
	_, err := s.repo.DutyPerson.GetByName(ctx, name)
	switch {
	case err == nil:
		return ErrDutyPersonExists
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	default:
		return err
	}
}

// ════════════════════════════════════════════════════
// 日历订阅
// ════════════════════════════════════════════════════

func (s *dutyService) Calendar(ctx context.Context, req *dto.DutyCalendarRequest) (string, error) {
	from := localToday(s.now(), s.loc)
	if req.From != "" {
		day, err := parseDate(req.From)
		if err != nil {
			return "", err
		}
		from = day
	}

	days := req.Days
	if days <= 0 {
		days = s.cfg.CalendarDays
	}
	if days < 1 {
		days = 1
	}
	if days > maxCalendarDays {
		days = maxCalendarDays
	}
	to := from.AddDate(0, 0, days-1)

	names, err := s.rosterNames(ctx)
	if err != nil {
		return "", err
	}
	overrides, err := s.repo.DutyOverride.ListBetween(ctx, from, to)
	if err != nil {
		s.logger.Error("查询值班覆盖失败", zap.Error(err))
		return "", err
	}
	byDate := make(map[string]*model.DutyOverride, len(overrides))
	for i := range overrides {
		byDate[formatDate(overrides[i].DutyDate)] = &overrides[i]
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//work-record//duty roster//ZH")
	cal.SetXWRCalName("值班表")
	cal.SetXWRTimezone(s.loc.String())

	stamp := s.now().UTC()
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		key := formatDate(day)
		person := ResolveDuty(day, names, byDate[key])
		if person == "" {
			continue
		}

		event := cal.AddEvent(fmt.Sprintf("duty-%s@work-record", key))
		event.SetDtStampTime(stamp)
		event.SetAllDayStartAt(day)
		event.SetAllDayEndAt(day.AddDate(0, 0, 1))
		event.SetSummary("值班: " + person)
		if byDate[key] != nil {
			event.SetDescription("手动指定")
		}
	}

	return cal.Serialize(), nil
}
