package reclam

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"reclamation/internal/domain"
	"reclamation/internal/events"
	"reclamation/internal/pkg/sanitize"
	"reclamation/internal/pkg/validator"
	"reclamation/internal/repository"
)

// Service holds the complaint lifecycle rules.
type Service struct {
	reclams   ReclamRepository
	regions   ExistenceChecker
	users     ExistenceChecker
	publisher events.Publisher
	log       *zap.Logger
	now       func() time.Time
}

func NewService(reclams ReclamRepository, regions, users ExistenceChecker, publisher events.Publisher, log *zap.Logger) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		reclams:   reclams,
		regions:   regions,
		users:     users,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

func (s *Service) Create(ctx context.Context, actor Actor, req ReclamRequest) (*domain.Reclam, error) {
	if !actor.IsStaff() && req.UserID != actor.ID {
		return nil, ErrForbidden
	}

	rec := &domain.Reclam{}
	if err := s.apply(ctx, rec, req); err != nil {
		return nil, err
	}
	if err := s.reclams.Create(ctx, rec); err != nil {
		return nil, err
	}

	s.publish(ctx, events.QueueReclamCreated, events.ReclamCreated{
		ReclamID:  rec.ID,
		UserID:    rec.UserID,
		RegionID:  rec.RegionID,
		Title:     rec.Title,
		Priority:  string(rec.Priority),
		Status:    string(rec.Status),
		CreatedAt: rec.CreatedAt,
	})
	return rec, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Reclam, error) {
	rec, err := s.reclams.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (s *Service) List(ctx context.Context) ([]domain.ReclamView, error) {
	return s.reclams.List(ctx)
}

func (s *Service) ListMine(ctx context.Context, actor Actor) ([]domain.ReclamView, error) {
	return s.reclams.ListByUser(ctx, actor.ID)
}

// ListByRegion answers ErrNotFound when the region has no complaint at all.
// Complaints whose submitter no longer exists are dropped, so the result can
// be empty without being an error.
func (s *Service) ListByRegion(ctx context.Context, regionID int64) ([]domain.ReclamView, error) {
	rows, err := s.reclams.ListByRegion(ctx, regionID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}

	out := make([]domain.ReclamView, 0, len(rows))
	for _, row := range rows {
		if row.User == nil {
			s.log.Warn("dropping reclamation with missing user",
				zap.Int64("reclam_id", row.ID),
				zap.Int64("user_id", row.UserID),
				zap.Int64("region_id", regionID),
			)
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *Service) ListByPriority(ctx context.Context, priority string) ([]domain.ReclamView, error) {
	p := domain.ReclamPriority(priority)
	if !p.Valid() {
		return nil, ErrInvalidPriority
	}
	rows, err := s.reclams.ListByPriority(ctx, p)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows, nil
}

func (s *Service) Search(ctx context.Context, query string) ([]domain.ReclamView, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	return s.reclams.Search(ctx, query)
}

// Update replaces the substance of a complaint. Only pending complaints
// may be edited.
func (s *Service) Update(ctx context.Context, actor Actor, id int64, req ReclamRequest) (*domain.Reclam, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(rec) {
		return nil, ErrForbidden
	}
	if rec.Status != domain.ReclamPending {
		return nil, ErrNotPending
	}
	if !actor.IsStaff() && req.UserID != actor.ID {
		return nil, ErrForbidden
	}

	from := rec.Status
	if err := s.apply(ctx, rec, req); err != nil {
		return nil, err
	}
	if err := s.reclams.Update(ctx, rec); err != nil {
		return nil, err
	}
	if rec.Status != from {
		s.statusChanged(ctx, rec, from, "")
	}
	return rec, nil
}

// UpdateStatus writes the status column only, from any prior state.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Reclam, error) {
	to := domain.ReclamStatus(strings.TrimSpace(status))
	if !to.Settable() {
		return nil, ErrInvalidStatus
	}
	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.reclams.UpdateStatus(ctx, id, to); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	from := rec.Status
	rec.Status = to
	if from != to {
		s.statusChanged(ctx, rec, from, "")
	}
	return rec, nil
}

func (s *Service) Reject(ctx context.Context, id int64, reason string) (*domain.Reclam, error) {
	reason = sanitize.Text(reason)
	if reason == "" {
		return nil, fieldError("reason", "is required")
	}
	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.reclams.Reject(ctx, id, reason); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	from := rec.Status
	rec.Status = domain.ReclamRejected
	rec.RejectionReason = reason
	s.statusChanged(ctx, rec, from, reason)
	return rec, nil
}

func (s *Service) UpdateAgency(ctx context.Context, id int64, agency string) (*domain.Reclam, error) {
	agency = sanitize.Text(agency)
	if agency == "" {
		return nil, fieldError("current_agency", "is required")
	}
	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.reclams.UpdateAgency(ctx, id, agency); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	rec.CurrentAgency = agency
	return rec, nil
}

func (s *Service) Delete(ctx context.Context, actor Actor, id int64) error {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !actor.Owns(rec) {
		return ErrForbidden
	}
	if err := s.reclams.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	byStatus, err := s.reclams.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	byPriority, err := s.reclams.CountByPriority(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{ByStatus: byStatus, ByPriority: byPriority}
	for _, c := range byStatus {
		stats.Total += c.Count
	}
	return stats, nil
}

// apply validates req and copies it onto rec, resolving region and user.
func (s *Service) apply(ctx context.Context, rec *domain.Reclam, req ReclamRequest) error {
	title := sanitize.Text(req.Title)
	if title == "" {
		return fieldError("title", "is required")
	}
	description := sanitize.Text(req.Description)
	if description == "" {
		return fieldError("description", "is required")
	}

	status := domain.ReclamStatus(req.Status)
	if !status.Settable() {
		return ErrInvalidStatus
	}
	priority := domain.ReclamPriority(req.Priority)
	if !priority.Valid() {
		return ErrInvalidPriority
	}

	start, err := validator.ParseDate(req.DateDebut)
	if err != nil {
		return fieldError("date_debut", "is not a valid date")
	}
	var end *time.Time
	if req.DateFin != nil && strings.TrimSpace(*req.DateFin) != "" {
		d, err := validator.ParseDate(*req.DateFin)
		if err != nil {
			return fieldError("date_fin", "is not a valid date")
		}
		if d.Before(start) {
			return fieldError("date_fin", "must not precede date_debut")
		}
		end = &d
	}

	ok, err := s.regions.Exists(ctx, req.RegionID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrRegionNotFound
	}
	ok, err = s.users.Exists(ctx, req.UserID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUserNotFound
	}

	rec.Title = title
	rec.Description = description
	rec.Status = status
	rec.Priority = priority
	rec.DateDebut = start
	rec.DateFin = end
	if rec.RegionID != req.RegionID {
		rec.Region = nil
	}
	rec.RegionID = req.RegionID
	rec.UserID = req.UserID
	rec.Attachment = strings.TrimSpace(req.Attachment)
	return nil
}

func (s *Service) statusChanged(ctx context.Context, rec *domain.Reclam, from domain.ReclamStatus, reason string) {
	s.publish(ctx, events.QueueReclamStatusChanged, events.ReclamStatusChanged{
		ReclamID:  rec.ID,
		UserID:    rec.UserID,
		RegionID:  rec.RegionID,
		From:      string(from),
		To:        string(rec.Status),
		Reason:    reason,
		ChangedAt: s.now(),
	})
}

// publish never fails the caller; a lost event is only logged.
func (s *Service) publish(ctx context.Context, queue string, payload any) {
	if err := s.publisher.Publish(ctx, queue, payload); err != nil {
		s.log.Error("failed to publish event", zap.String("queue", queue), zap.Error(err))
	}
}
