package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"gymdesk/internal/domain/member"

	"github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"
)

const membersTable = "members"

// dateLayout is the wire format for date columns.
const dateLayout = "2006-01-02"

var _ member.Store = (*Members)(nil)

// Members implements member.Store using the Supabase Go SDK.
type Members struct {
	client *supa.Client
}

// NewMembers creates a new Supabase-backed member store.
func NewMembers(client *supa.Client) *Members {
	return &Members{client: client}
}

// memberRow is the internal representation for Supabase PostgREST rows.
type memberRow struct {
	ID             int64   `json:"id,omitempty"`
	Name           string  `json:"name"`
	Phone          string  `json:"phone"`
	MembershipPlan string  `json:"membership_plan"`
	StartDate      string  `json:"start_date"`
	DurationMonths int     `json:"duration_months"`
	EndDate        *string `json:"end_date,omitempty"`
	AmountPaid     float64 `json:"amount_paid"`
	Status         string  `json:"status"`
}

// Create inserts a new member and fills in the assigned ID.
func (s *Members) Create(ctx context.Context, m *member.Member) error {
	row := toRow(m)

	data, _, err := s.client.From(membersTable).Insert(row, false, "", "representation", "").Execute()
	if err != nil {
		return fmt.Errorf("inserting member: %w", err)
	}

	var results []memberRow
	if err := json.Unmarshal(data, &results); err != nil {
		return fmt.Errorf("parsing insert response: %w", err)
	}
	if len(results) > 0 {
		m.ID = results[0].ID
	}
	return nil
}

// GetByID retrieves a member by ID. Returns nil, nil when not found.
func (s *Members) GetByID(ctx context.Context, id int64) (*member.Member, error) {
	data, _, err := s.client.From(membersTable).
		Select("*", "exact", false).
		Eq("id", strconv.FormatInt(id, 10)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("fetching member: %w", err)
	}

	var rows []memberRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parsing member: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rowToMember(&rows[0]), nil
}

// List retrieves all members ordered by ID.
func (s *Members) List(ctx context.Context) ([]*member.Member, error) {
	data, _, err := s.client.From(membersTable).
		Select("*", "exact", false).
		Order("id", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	return parseMembers(data)
}

// ListByStatus retrieves all members with the given status.
func (s *Members) ListByStatus(ctx context.Context, status string) ([]*member.Member, error) {
	data, _, err := s.client.From(membersTable).
		Select("*", "exact", false).
		Eq("status", status).
		Order("id", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("listing members by status: %w", err)
	}
	return parseMembers(data)
}

// ListExpiringBetween retrieves active members whose end date falls inside
// [from, to], soonest first.
func (s *Members) ListExpiringBetween(ctx context.Context, from, to time.Time) ([]*member.Member, error) {
	data, _, err := s.client.From(membersTable).
		Select("*", "exact", false).
		Eq("status", member.StatusActive).
		Gte("end_date", from.Format(dateLayout)).
		Lte("end_date", to.Format(dateLayout)).
		Order("end_date", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("listing expiring members: %w", err)
	}
	return parseMembers(data)
}

// Update persists changes to an existing member.
func (s *Members) Update(ctx context.Context, m *member.Member) error {
	update := map[string]any{
		"name":            m.Name,
		"phone":           m.Phone,
		"membership_plan": m.MembershipPlan,
		"start_date":      m.StartDate.Format(dateLayout),
		"duration_months": m.DurationMonths,
		"amount_paid":     m.AmountPaid,
		"status":          m.Status,
	}
	if m.EndDate != nil {
		update["end_date"] = m.EndDate.Format(dateLayout)
	} else {
		update["end_date"] = nil
	}

	_, _, err := s.client.From(membersTable).
		Update(update, "", "").
		Eq("id", strconv.FormatInt(m.ID, 10)).
		Execute()
	if err != nil {
		return fmt.Errorf("updating member: %w", err)
	}
	return nil
}

// Delete removes a member by ID.
func (s *Members) Delete(ctx context.Context, id int64) error {
	_, _, err := s.client.From(membersTable).
		Delete("", "").
		Eq("id", strconv.FormatInt(id, 10)).
		Execute()
	if err != nil {
		return fmt.Errorf("deleting member: %w", err)
	}
	return nil
}

// Counts returns total, active, and expired member counts.
func (s *Members) Counts(ctx context.Context) (total, active, expired int, err error) {
	_, totalCount, err := s.client.From(membersTable).
		Select("id", "exact", false).
		Execute()
	if err != nil {
		return 0, 0, 0, fmt.Errorf("counting members: %w", err)
	}

	_, activeCount, err := s.client.From(membersTable).
		Select("id", "exact", false).
		Eq("status", member.StatusActive).
		Execute()
	if err != nil {
		return 0, 0, 0, fmt.Errorf("counting active members: %w", err)
	}

	_, expiredCount, err := s.client.From(membersTable).
		Select("id", "exact", false).
		Eq("status", member.StatusExpired).
		Execute()
	if err != nil {
		return 0, 0, 0, fmt.Errorf("counting expired members: %w", err)
	}

	return int(totalCount), int(activeCount), int(expiredCount), nil
}

// toRow converts a domain member to its Supabase representation.
func toRow(m *member.Member) memberRow {
	row := memberRow{
		Name:           m.Name,
		Phone:          m.Phone,
		MembershipPlan: m.MembershipPlan,
		StartDate:      m.StartDate.Format(dateLayout),
		DurationMonths: m.DurationMonths,
		AmountPaid:     m.AmountPaid,
		Status:         m.Status,
	}
	if m.EndDate != nil {
		end := m.EndDate.Format(dateLayout)
		row.EndDate = &end
	}
	return row
}

// rowToMember converts a Supabase row to a domain member.
func rowToMember(row *memberRow) *member.Member {
	m := &member.Member{
		ID:             row.ID,
		Name:           row.Name,
		Phone:          row.Phone,
		MembershipPlan: row.MembershipPlan,
		DurationMonths: row.DurationMonths,
		AmountPaid:     row.AmountPaid,
		Status:         row.Status,
	}
	if t, err := time.Parse(dateLayout, row.StartDate); err == nil {
		m.StartDate = t
	}
	if row.EndDate != nil {
		if t, err := time.Parse(dateLayout, *row.EndDate); err == nil {
			m.EndDate = &t
		}
	}
	return m
}

// parseMembers unmarshals a PostgREST list response.
func parseMembers(data []byte) ([]*member.Member, error) {
	var rows []memberRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parsing member list: %w", err)
	}
	members := make([]*member.Member, len(rows))
	for i := range rows {
		members[i] = rowToMember(&rows[i])
	}
	return members, nil
}
