package member

import (
	"time"

	"gymdesk/internal/domain/notification"
)

// Membership plan codes.
const (
	PlanStrength = "strength"
	PlanCardio   = "cardio"
	PlanBoth     = "both"
)

// Membership statuses.
const (
	StatusActive  = "active"
	StatusExpired = "expired"
)

// validPlans is the set of accepted membership plan codes.
var validPlans = map[string]bool{
	PlanStrength: true,
	PlanCardio:   true,
	PlanBoth:     true,
}

// Member is a gym member record.
type Member struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	Phone          string     `json:"phone"`
	MembershipPlan string     `json:"membership_plan"`
	StartDate      time.Time  `json:"start_date"`
	DurationMonths int        `json:"duration_months"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	AmountPaid     float64    `json:"amount_paid"`
	Status         string     `json:"status"`
}

// ComputeEndDate derives the membership end date from the start date and
// duration: 30 days per month, matching how memberships are sold.
func ComputeEndDate(start time.Time, durationMonths int) time.Time {
	return start.AddDate(0, 0, 30*durationMonths)
}

// NotificationView converts a member to the read-only view the notification
// core consumes.
func (m *Member) NotificationView() notification.Member {
	return notification.Member{
		ID:             m.ID,
		Name:           m.Name,
		Phone:          m.Phone,
		MembershipPlan: m.MembershipPlan,
		EndDate:        m.EndDate,
	}
}

// DashboardStats is the summary shown on the admin dashboard.
type DashboardStats struct {
	TotalMembers   int `json:"total_members"`
	ActiveMembers  int `json:"active_members"`
	ExpiredMembers int `json:"expired_members"`
	ExpiringSoon   int `json:"expiring_soon"`
}

// ExpiringMember is one row of the expiring-members listing, with the
// days-left computation already applied.
type ExpiringMember struct {
	ID         int64  `json:"id"`
	MemberID   int64  `json:"member_id"`
	MemberName string `json:"member_name"`
	Phone      string `json:"phone"`
	EndDate    string `json:"end_date"`
	DaysLeft   int    `json:"days_left"`
	Message    string `json:"message"`
}
