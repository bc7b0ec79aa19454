package member

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"gymdesk/internal/common"
	"gymdesk/internal/domain/notification"
)

// expiringWindowDays is how far ahead the dashboard and expiring-members
// listing look for memberships about to lapse.
const expiringWindowDays = 7

// Notifier is the slice of the notification core the member domain calls.
type Notifier interface {
	SendMembershipConfirmation(ctx context.Context, m notification.Member) notification.Result
	SendExpiryReminder(ctx context.Context, m notification.Member, daysLeft int) notification.Result
	SendBroadcastMessage(ctx context.Context, members []notification.Member, message string) notification.BulkResult
}

// Service orchestrates member CRUD, the dashboard summary, and the member
// entry points into the notification core.
type Service struct {
	store    Store
	notifier Notifier
	cache    StatsCache
	now      func() time.Time
}

// NewService creates a new member service. cache may be nil.
func NewService(store Store, notifier Notifier, cache StatsCache) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		cache:    cache,
		now:      time.Now,
	}
}

// CreateRequest is the payload for registering a member.
type CreateRequest struct {
	Name           string  `json:"name" binding:"required"`
	Phone          string  `json:"phone" binding:"required"`
	MembershipPlan string  `json:"membership_plan" binding:"required"`
	StartDate      string  `json:"start_date" binding:"required"`
	DurationMonths int     `json:"duration_months" binding:"required,min=1"`
	AmountPaid     float64 `json:"amount_paid"`
}

// UpdateRequest is the payload for updating a member. Nil fields are left
// unchanged.
type UpdateRequest struct {
	Name           *string  `json:"name"`
	Phone          *string  `json:"phone"`
	MembershipPlan *string  `json:"membership_plan"`
	StartDate      *string  `json:"start_date"`
	DurationMonths *int     `json:"duration_months"`
	AmountPaid     *float64 `json:"amount_paid"`
	Status         *string  `json:"status"`
}

// Create registers a new member, auto-calculating the end date, and sends
// the membership confirmation. The returned result carries the delivery
// outcome; a failed send does not fail the registration.
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*Member, notification.Result, error) {
	if !validPlans[req.MembershipPlan] {
		return nil, notification.Result{}, common.NewValidationError(
			fmt.Sprintf("unknown membership plan: %s", req.MembershipPlan))
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, notification.Result{}, common.NewValidationError("start_date must be YYYY-MM-DD")
	}

	end := ComputeEndDate(start, req.DurationMonths)
	m := &Member{
		Name:           req.Name,
		Phone:          req.Phone,
		MembershipPlan: req.MembershipPlan,
		StartDate:      start,
		DurationMonths: req.DurationMonths,
		EndDate:        &end,
		AmountPaid:     req.AmountPaid,
		Status:         StatusActive,
	}

	if err := s.store.Create(ctx, m); err != nil {
		return nil, notification.Result{}, fmt.Errorf("creating member: %w", err)
	}

	s.invalidateStats(ctx)

	result := s.notifier.SendMembershipConfirmation(ctx, m.NotificationView())
	return m, result, nil
}

// Get retrieves a member by ID.
func (s *Service) Get(ctx context.Context, id int64) (*Member, error) {
	m, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetching member: %w", err)
	}
	if m == nil {
		return nil, common.NewNotFoundError("member", strconv.FormatInt(id, 10))
	}
	return m, nil
}

// List retrieves all members.
func (s *Service) List(ctx context.Context) ([]*Member, error) {
	members, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	return members, nil
}

// Update applies partial changes to a member. Changing the start date or
// duration recalculates the end date.
func (s *Service) Update(ctx context.Context, id int64, req *UpdateRequest) (*Member, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		m.Name = *req.Name
	}
	if req.Phone != nil {
		m.Phone = *req.Phone
	}
	if req.MembershipPlan != nil {
		if !validPlans[*req.MembershipPlan] {
			return nil, common.NewValidationError(
				fmt.Sprintf("unknown membership plan: %s", *req.MembershipPlan))
		}
		m.MembershipPlan = *req.MembershipPlan
	}
	if req.StartDate != nil {
		start, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			return nil, common.NewValidationError("start_date must be YYYY-MM-DD")
		}
		m.StartDate = start
	}
	if req.DurationMonths != nil {
		m.DurationMonths = *req.DurationMonths
	}
	if req.AmountPaid != nil {
		m.AmountPaid = *req.AmountPaid
	}
	if req.Status != nil {
		if *req.Status != StatusActive && *req.Status != StatusExpired {
			return nil, common.NewValidationError(fmt.Sprintf("unknown status: %s", *req.Status))
		}
		m.Status = *req.Status
	}

	if req.StartDate != nil || req.DurationMonths != nil {
		end := ComputeEndDate(m.StartDate, m.DurationMonths)
		m.EndDate = &end
	}

	if err := s.store.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("updating member: %w", err)
	}

	s.invalidateStats(ctx)
	return m, nil
}

// Delete removes a member.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting member: %w", err)
	}
	s.invalidateStats(ctx)
	return nil
}

// Dashboard returns the admin dashboard summary, served from cache when a
// fresh copy is available.
func (s *Service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	if s.cache != nil {
		if cached := s.cache.Get(ctx); cached != nil {
			return cached, nil
		}
	}

	total, active, expired, err := s.store.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting members: %w", err)
	}

	today := dateOnly(s.now())
	soon := today.AddDate(0, 0, expiringWindowDays)
	expiring, err := s.store.ListExpiringBetween(ctx, today, soon)
	if err != nil {
		return nil, fmt.Errorf("listing expiring members: %w", err)
	}

	stats := &DashboardStats{
		TotalMembers:   total,
		ActiveMembers:  active,
		ExpiredMembers: expired,
		ExpiringSoon:   len(expiring),
	}

	if s.cache != nil {
		s.cache.Set(ctx, stats)
	}
	return stats, nil
}

// Expiring lists active members whose membership lapses within the next
// seven days, ordered soonest first.
func (s *Service) Expiring(ctx context.Context) ([]ExpiringMember, error) {
	today := dateOnly(s.now())
	soon := today.AddDate(0, 0, expiringWindowDays)

	members, err := s.store.ListExpiringBetween(ctx, today, soon)
	if err != nil {
		return nil, fmt.Errorf("listing expiring members: %w", err)
	}

	rows := make([]ExpiringMember, 0, len(members))
	for _, m := range members {
		if m.EndDate == nil {
			continue
		}
		daysLeft := daysBetween(today, dateOnly(*m.EndDate))
		rows = append(rows, ExpiringMember{
			ID:         m.ID,
			MemberID:   m.ID,
			MemberName: m.Name,
			Phone:      m.Phone,
			EndDate:    m.EndDate.Format("2006-01-02"),
			DaysLeft:   daysLeft,
			Message:    expiryLabel(daysLeft),
		})
	}
	return rows, nil
}

// SendReminder sends an expiry reminder to one member, computing days left
// from the member's end date (zero when unset).
func (s *Service) SendReminder(ctx context.Context, memberID int64) (*Member, notification.Result, error) {
	m, err := s.Get(ctx, memberID)
	if err != nil {
		return nil, notification.Result{}, err
	}

	daysLeft := 0
	if m.EndDate != nil {
		daysLeft = daysBetween(dateOnly(s.now()), dateOnly(*m.EndDate))
	}

	result := s.notifier.SendExpiryReminder(ctx, m.NotificationView(), daysLeft)
	return m, result, nil
}

// Broadcast sends a message to every active member.
func (s *Service) Broadcast(ctx context.Context, message string) (notification.BulkResult, error) {
	if message == "" {
		return notification.BulkResult{}, common.NewValidationError("message is required")
	}

	active, err := s.store.ListByStatus(ctx, StatusActive)
	if err != nil {
		return notification.BulkResult{}, fmt.Errorf("listing active members: %w", err)
	}

	views := make([]notification.Member, len(active))
	for i, m := range active {
		views[i] = m.NotificationView()
	}

	return s.notifier.SendBroadcastMessage(ctx, views, message), nil
}

// invalidateStats drops the cached dashboard after a membership change.
func (s *Service) invalidateStats(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}

// expiryLabel builds the display message for an expiring-members row.
func expiryLabel(daysLeft int) string {
	if daysLeft == 0 {
		return "Expires today"
	}
	plural := "s"
	if daysLeft == 1 {
		plural = ""
	}
	return fmt.Sprintf("Expires in %d day%s", daysLeft, plural)
}

// dateOnly truncates a timestamp to midnight UTC.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns whole days from a to b (negative when b is past).
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
