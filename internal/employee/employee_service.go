package employee

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	employeeerrors "go-hrsuit/internal/employee/errors"
	"go-hrsuit/internal/messaging/kafka"
	"go-hrsuit/internal/shared/apperror"
	"go-hrsuit/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	EmployeeOptionsKey = "employees:options"
	optionsTTL         = time.Hour

	DefaultMaxImageBytes int64 = 2 << 20
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

// ImageStore is the media backend used for profile images.
type ImageStore interface {
	Save(ctx context.Context, key, contentType string, r io.Reader) (string, error)
}

// SummaryCache holds aggregates over the directory, such as the dashboard
// active and blocked counts.
type SummaryCache interface {
	Invalidate(ctx context.Context) error
}

type Config struct {
	CodePrefix    string
	MaxImageBytes int64
}

type ImageUpload struct {
	ContentType string
	Size        int64
	Body        io.Reader
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	ListActive(ctx context.Context, filter ListFilter) (ListResponse, error)
	ListAll(ctx context.Context, filter ListFilter) (ListResponse, error)
	ListBlocked(ctx context.Context, filter ListFilter) (ListResponse, error)
	GetOptions(ctx context.Context) ([]EmployeeOption, error)
	Block(ctx context.Context, id string) (EmployeeResponse, error)
	Unblock(ctx context.Context, id string) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) (EmployeeResponse, error)
	Restore(ctx context.Context, id string) (EmployeeResponse, error)
	UploadImage(ctx context.Context, id string, upload ImageUpload) (EmployeeResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	outbox    kafka.OutboxRepository
	rdb       *redis.Client
	images    ImageStore
	summary   SummaryCache
	formatter CodeFormatter
	maxImage  int64
	sf        *singleflight.Group
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	images ImageStore,
	summary SummaryCache,
	cfg Config,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	if cfg.MaxImageBytes <= 0 {
		cfg.MaxImageBytes = DefaultMaxImageBytes
	}
	return &service{
		db:        db,
		repo:      repo,
		outbox:    outboxRepo,
		rdb:       rdb,
		images:    images,
		summary:   summary,
		formatter: NewCodeFormatter(cfg.CodePrefix),
		maxImage:  cfg.MaxImageBytes,
		sf:        &singleflight.Group{},
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("user_id", req.UserID),
	)

	empl := &Employee{ID: uuid.New(), Image: DefaultImage}
	if err := s.applyFields(empl, req); err != nil {
		s.logger.Warn("create employee validation failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.ExistsByUserID(ctx, empl.UserID.String(), "")
	if err != nil {
		s.logger.Error("create employee duplicate check failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	if exists {
		s.logger.Warn("create employee duplicate account", zap.String("user_id", req.UserID))
		return EmployeeResponse{}, employeeerrors.ErrDuplicateAccount
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := s.queueEmployeeCreated(ctx, tx, empl, rid); err != nil {
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx)
	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
	)

	return mapToResponse(*empl, s.now()), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	s.logger.Debug("update employee requested", zap.String("employee_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("update employee fetch existing failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	previousUser := empl.UserID
	if err := s.applyFields(empl, CreateEmployeeRequest(req)); err != nil {
		s.logger.Warn("update employee validation failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, err
	}

	if empl.UserID != previousUser {
		exists, err := qtx.ExistsByUserID(ctx, empl.UserID.String(), id)
		if err != nil {
			return EmployeeResponse{}, err
		}
		if exists {
			s.logger.Warn("update employee duplicate account", zap.String("user_id", req.UserID))
			return EmployeeResponse{}, employeeerrors.ErrDuplicateAccount
		}
	}

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx)
	s.invalidateSummary(ctx)
	s.logger.Info("update employee success", zap.String("employee_id", id))

	return mapToResponse(*empl, s.now()), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	s.logger.Debug("get employee by id requested", zap.String("employee_id", id))

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("get employee by id failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl, s.now()), nil
}

func (s *service) ListActive(ctx context.Context, filter ListFilter) (ListResponse, error) {
	return s.list(ctx, "active", filter, s.repo.ListActive)
}

func (s *service) ListAll(ctx context.Context, filter ListFilter) (ListResponse, error) {
	return s.list(ctx, "all", filter, s.repo.ListAll)
}

func (s *service) ListBlocked(ctx context.Context, filter ListFilter) (ListResponse, error) {
	return s.list(ctx, "blocked", filter, s.repo.ListBlocked)
}

func (s *service) list(
	ctx context.Context,
	view string,
	filter ListFilter,
	query func(context.Context, ListFilter) ([]Employee, int64, error),
) (ListResponse, error) {
	s.logger.Debug("list employees requested",
		zap.String("view", view),
		zap.String("q", filter.Q),
		zap.Int("page", filter.Page),
	)

	empls, total, err := query(ctx, filter)
	if err != nil {
		s.logger.Error("list employees failed", zap.String("view", view), zap.Error(err))
		return ListResponse{}, mapRepositoryError(err)
	}

	return ListResponse{Items: mapToListResponse(empls, s.now()), Total: total}, nil
}

func (s *service) GetOptions(ctx context.Context) ([]EmployeeOption, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, EmployeeOptionsKey).Result(); err == nil {
			var resp []EmployeeOption
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(EmployeeOptionsKey, func() (interface{}, error) {
		empls, err := s.repo.ListOptions(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]EmployeeOption, len(empls))
		for i, e := range empls {
			resp[i] = EmployeeOption{ID: e.ID.String(), FullName: e.FullName()}
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, EmployeeOptionsKey, jsonData, optionsTTL).Err(); err != nil {
					s.logger.Warn("cache employee options failed", zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		s.logger.Error("get employee options failed", zap.Error(err))
		return nil, err
	}

	return v.([]EmployeeOption), nil
}

func (s *service) Block(ctx context.Context, id string) (EmployeeResponse, error) {
	return s.setFlag(ctx, id, "block", func(e *Employee) { e.IsBlocked = true })
}

func (s *service) Unblock(ctx context.Context, id string) (EmployeeResponse, error) {
	return s.setFlag(ctx, id, "unblock", func(e *Employee) { e.IsBlocked = false })
}

// Delete is a soft delete; the row stays visible to ListAll and FindByID.
func (s *service) Delete(ctx context.Context, id string) (EmployeeResponse, error) {
	return s.setFlag(ctx, id, "delete", func(e *Employee) { e.IsDeleted = true })
}

func (s *service) Restore(ctx context.Context, id string) (EmployeeResponse, error) {
	return s.setFlag(ctx, id, "restore", func(e *Employee) { e.IsDeleted = false })
}

func (s *service) setFlag(ctx context.Context, id, action string, mutate func(*Employee)) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn(action+" employee fetch failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	mutate(empl)

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error(action+" employee persist failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx)
	s.invalidateSummary(ctx)
	s.logger.Info(action+" employee success", zap.String("employee_id", id))

	return mapToResponse(*empl, s.now()), nil
}

func (s *service) UploadImage(ctx context.Context, id string, upload ImageUpload) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	if upload.Size > s.maxImage {
		return EmployeeResponse{}, employeeerrors.ErrImageTooLarge
	}
	ext, ok := imageExtensions[upload.ContentType]
	if !ok {
		return EmployeeResponse{}, employeeerrors.ErrInvalidImage
	}
	if s.images == nil {
		return EmployeeResponse{}, fmt.Errorf("image store is not configured")
	}

	// Size is client-reported; read one byte past the limit so oversize bodies
	// are rejected before anything reaches the store.
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(io.LimitReader(upload.Body, s.maxImage+1)); err != nil {
		s.logger.Warn("read employee image failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, employeeerrors.ErrInvalidImage
	}
	if int64(buf.Len()) > s.maxImage {
		return EmployeeResponse{}, employeeerrors.ErrImageTooLarge
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	key := path.Join("profiles", fmt.Sprintf("%s-%d%s", empl.ID, s.now().Unix(), ext))
	stored, err := s.images.Save(ctx, key, upload.ContentType, bytes.NewReader(buf.Bytes()))
	if err != nil {
		s.logger.Error("store employee image failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, err
	}

	empl.Image = stored
	if err := qtx.Update(ctx, empl); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	s.logger.Info("employee image updated", zap.String("employee_id", id), zap.String("image", stored))
	return mapToResponse(*empl, s.now()), nil
}

// applyFields validates req and copies it onto empl. Errors are reported per field.
func (s *service) applyFields(empl *Employee, req CreateEmployeeRequest) error {
	fieldErrs := map[string]string{}

	userID, err := uuid.Parse(strings.TrimSpace(req.UserID))
	if err != nil {
		fieldErrs["user_id"] = "User ID must be a valid UUID"
	}
	if strings.TrimSpace(req.FirstName) == "" {
		fieldErrs["first_name"] = "First Name is required"
	}
	if strings.TrimSpace(req.LastName) == "" {
		fieldErrs["last_name"] = "Last Name is required"
	}

	birthday, err := time.Parse(dateLayout, strings.TrimSpace(req.Birthday))
	if err != nil {
		fieldErrs["birthday"] = "Birthday must be a date in YYYY-MM-DD format"
	}

	title := Title(req.Title)
	if title != "" && !title.Valid() {
		fieldErrs["title"] = "Title is not a valid choice"
	}

	employeeType := EmployeeType(req.EmployeeType)
	if employeeType == "" {
		employeeType = EmployeeTypeFullTime
	} else if !employeeType.Valid() {
		fieldErrs["employee_type"] = "Employee Type is not a valid choice"
	}

	startDate, ok := parseOptionalDate(req.StartDate)
	if !ok {
		fieldErrs["start_date"] = "Start Date must be a date in YYYY-MM-DD format"
	}
	dateIssued, ok := parseOptionalDate(req.DateIssued)
	if !ok {
		fieldErrs["date_issued"] = "Date Issued must be a date in YYYY-MM-DD format"
	}
	departmentID, ok := parseOptionalUUID(req.DepartmentID)
	if !ok {
		fieldErrs["department_id"] = "Department ID must be a valid UUID"
	}
	roleID, ok := parseOptionalUUID(req.RoleID)
	if !ok {
		fieldErrs["role_id"] = "Role ID must be a valid UUID"
	}
	if req.EmployeeCode != nil && len(s.formatter.Bare(*req.EmployeeCode)) > MaxCodeLength {
		fieldErrs["employee_code"] = fmt.Sprintf("Employee Code must be at most %d characters", MaxCodeLength)
	}

	if len(fieldErrs) > 0 {
		return apperror.FieldErrors(fieldErrs)
	}

	empl.UserID = userID
	empl.Title = title
	empl.FirstName = strings.TrimSpace(req.FirstName)
	empl.LastName = strings.TrimSpace(req.LastName)
	empl.OtherName = req.OtherName
	empl.Birthday = birthday
	empl.DepartmentID = departmentID
	empl.RoleID = roleID
	empl.StartDate = startDate
	empl.EmployeeType = employeeType
	empl.EmployeeCode = s.formatter.formatPtr(req.EmployeeCode)
	empl.DateIssued = dateIssued
	// Associations are reloaded on read; stale ones must not shadow the new ids.
	empl.Department = nil
	empl.Role = nil
	return nil
}

func (s *service) invalidateOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, EmployeeOptionsKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", EmployeeOptionsKey),
		)
	}
}

// invalidateSummary drops aggregates that count employees by flag. Create is
// covered by the employee_created event.
func (s *service) invalidateSummary(ctx context.Context) {
	if s.summary == nil {
		return
	}
	if err := s.summary.Invalidate(ctx); err != nil {
		s.logger.Error("failed to invalidate directory summary cache", zap.Error(err))
	}
}

func parseOptionalDate(v *string) (*time.Time, bool) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil, true
	}
	t, err := time.Parse(dateLayout, strings.TrimSpace(*v))
	if err != nil {
		return nil, false
	}
	return &t, true
}

func parseOptionalUUID(v *string) (*uuid.UUID, bool) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil, true
	}
	id, err := uuid.Parse(strings.TrimSpace(*v))
	if err != nil {
		return nil, false
	}
	return &id, true
}
