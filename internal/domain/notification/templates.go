package notification

import (
	"fmt"
	"strings"
)

// DefaultGymName is used when no gym name is configured.
const DefaultGymName = "FitZone Gym"

// dateLayout is how validity dates appear in outbound messages.
const dateLayout = "02 Jan 2006"

// Message templates. Centralizing them keeps tone and branding consistent
// and gives i18n a single place to hook into later.
const (
	welcomeTemplate = "Welcome to %s, %s! 🎉 Your membership is now active. " +
		"We're excited to have you on this fitness journey!"

	confirmationTemplate = "Hi %s, your %s membership is confirmed! ✅ " +
		"Plan: %s | Valid until: %s. See you at the gym!"

	expiryReminderTemplate = "Hi %s, your %s membership expires in %d day%s. " +
		"Renew now to continue your fitness journey without interruption! 💪"

	expiryTodayTemplate = "⚠️ Hi %s, your %s membership expires TODAY. " +
		"Renew now to avoid any break in your training!"

	expiredTemplate = "Hi %s, your %s membership has expired. " +
		"We miss you! Renew today and get back to achieving your goals. 🏋️"

	renewalTemplate = "Great news, %s! 🎉 Your %s membership has been renewed. " +
		"New validity: %s. Keep up the amazing work!"

	paymentReminderTemplate = "Hi %s, this is a reminder about your pending payment " +
		"of ₹%s at %s. Please clear it at your earliest convenience."

	broadcastPrefixTemplate = "[%s] "
)

// planLabels maps membership plan codes to their human-readable labels.
// Unknown codes fall back to the raw code.
var planLabels = map[string]string{
	"strength": "Strength",
	"cardio":   "Cardio",
	"both":     "Strength + Cardio",
}

// PlanLabel returns the display label for a membership plan code,
// falling back to the code itself when unmapped.
func PlanLabel(code string) string {
	if label, ok := planLabels[code]; ok {
		return label
	}
	return code
}

// Renderer produces final message text for each notification kind.
// It is pure and deterministic: no network or persistence side effects.
// The gym name is read from the injected source on every render call
// (never cached), defaulting to DefaultGymName when unset.
type Renderer struct {
	// GymName supplies the configured gym display name. May be nil.
	GymName func() string
}

// gymName resolves the gym display name at render time.
func (r *Renderer) gymName() string {
	if r == nil || r.GymName == nil {
		return DefaultGymName
	}
	if name := r.GymName(); name != "" {
		return name
	}
	return DefaultGymName
}

// Welcome renders the new-member welcome message.
func (r *Renderer) Welcome(memberName string) string {
	return fmt.Sprintf(welcomeTemplate, r.gymName(), memberName)
}

// Confirmation renders the membership confirmation message.
// A nil end date renders as "N/A".
func (r *Renderer) Confirmation(m Member) string {
	endDate := "N/A"
	if m.EndDate != nil {
		endDate = m.EndDate.Format(dateLayout)
	}
	return fmt.Sprintf(confirmationTemplate, m.Name, r.gymName(), PlanLabel(m.MembershipPlan), endDate)
}

// Expiry renders the appropriate expiry message for the days remaining.
//
// Branch order matches the shipped behavior: daysLeft <= 0 selects the
// expired message, which makes the daysLeft == 0 "expires TODAY" branch
// unreachable. Day zero therefore renders as expired. Kept as-is pending
// a product decision on the day-zero wording.
func (r *Renderer) Expiry(memberName string, daysLeft int) string {
	gym := r.gymName()
	switch {
	case daysLeft <= 0:
		return fmt.Sprintf(expiredTemplate, memberName, gym)
	case daysLeft == 0:
		return fmt.Sprintf(expiryTodayTemplate, memberName, gym)
	default:
		plural := "s"
		if daysLeft == 1 {
			plural = ""
		}
		return fmt.Sprintf(expiryReminderTemplate, memberName, gym, daysLeft, plural)
	}
}

// Renewal renders the renewal confirmation message.
// A nil end date renders as "N/A".
func (r *Renderer) Renewal(m Member) string {
	endDate := "N/A"
	if m.EndDate != nil {
		endDate = m.EndDate.Format(dateLayout)
	}
	return fmt.Sprintf(renewalTemplate, m.Name, r.gymName(), endDate)
}

// PaymentReminder renders the pending payment reminder message.
func (r *Renderer) PaymentReminder(memberName string, amount float64) string {
	return fmt.Sprintf(paymentReminderTemplate, memberName, formatAmount(amount), r.gymName())
}

// Broadcast prepends the gym-name-bracketed prefix to a broadcast message.
func (r *Renderer) Broadcast(message string) string {
	return fmt.Sprintf(broadcastPrefixTemplate, r.gymName()) + message
}

// formatAmount formats a rupee amount with thousands separators and
// two decimal places, e.g. 1234.5 -> "1,234.50".
func formatAmount(amount float64) string {
	formatted := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(formatted, ".", 2)

	intPart := parts[0]
	negative := strings.HasPrefix(intPart, "-")
	if negative {
		intPart = intPart[1:]
	}

	var sb strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(digit)
	}

	out := sb.String() + "." + parts[1]
	if negative {
		out = "-" + out
	}
	return out
}
