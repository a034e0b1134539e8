// Package followup holds the pure filtering and follow-up classification
// rules applied to the in-memory lead collection. Nothing here touches the
// store: callers load the full collection and project it through these
// functions.
package followup

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/udmdigital/lead-crm-api/internal/entity"
)

// Bucket names a follow-up time window.
type Bucket string

// Follow-up buckets. BucketAll (and any unknown value) matches every lead
// that has a follow-up date set.
const (
	BucketAll      Bucket = "all"
	BucketOverdue  Bucket = "overdue"
	BucketToday    Bucket = "today"
	BucketTomorrow Bucket = "tomorrow"
	BucketThisWeek Bucket = "thisWeek"
	BucketNextWeek Bucket = "nextWeek"
)

// Classify partitions leads by follow-up date relative to the current day.
func Classify(leads []entity.Lead, bucket Bucket) []entity.Lead {
	return ClassifyAt(leads, bucket, time.Now())
}

// ClassifyAt is Classify with an explicit reference time. Leads without a
// follow-up date are discarded up front. Dates and the reference time are
// normalized to local midnight, so "today" means the whole calendar day.
//
// The week runs through the next occurrence of Sunday: thisWeek covers
// [today, today+(7-weekday)] inclusive, and nextWeek is the seven-day window
// starting the day after. A lead on the Sunday boundary lands in exactly one
// of the two. Input order is preserved.
func ClassifyAt(leads []entity.Lead, bucket Bucket, now time.Time) []entity.Lead {
	today := midnight(now)
	tomorrow := today.AddDate(0, 0, 1)
	endOfWeek := today.AddDate(0, 0, 7-int(today.Weekday()))
	startOfNextWeek := endOfWeek.AddDate(0, 0, 1)
	endOfNextWeek := startOfNextWeek.AddDate(0, 0, 6)

	out := make([]entity.Lead, 0, len(leads))
	for _, lead := range leads {
		if lead.NextFollowupDate == nil {
			continue
		}
		due := midnight(*lead.NextFollowupDate)

		var keep bool
		switch bucket {
		case BucketOverdue:
			keep = due.Before(today)
		case BucketToday:
			keep = due.Equal(today)
		case BucketTomorrow:
			keep = due.Equal(tomorrow)
		case BucketThisWeek:
			keep = !due.Before(today) && !due.After(endOfWeek)
		case BucketNextWeek:
			keep = !due.Before(startOfNextWeek) && !due.After(endOfNextWeek)
		default:
			keep = true
		}
		if keep {
			out = append(out, lead)
		}
	}
	return out
}

// Criteria describes the dashboard filters. A zero-value or empty field
// imposes no constraint; supplied criteria are ANDed.
type Criteria struct {
	// CityContains matches case-insensitively against the lead city.
	// Leads without a city never match a non-empty filter.
	CityContains string

	// ServiceContains matches case-insensitively against any entry in the
	// lead's interested services.
	ServiceContains string

	// FreeTextQuery matches case-insensitively against business name,
	// contact person, phone, email or first-call notes.
	FreeTextQuery string

	// ConversationMatches is the side channel populated by a prior text
	// search over conversation bodies: a lead whose id appears here
	// satisfies FreeTextQuery regardless of its own fields.
	ConversationMatches map[uuid.UUID]struct{}
}

// Empty reports whether the criteria impose no constraint at all.
func (c Criteria) Empty() bool {
	return c.CityContains == "" && c.ServiceContains == "" && c.FreeTextQuery == ""
}

// Apply returns the leads satisfying every non-empty criterion, in input
// order. It never fails: bad or absent filter values degrade to showing more
// leads, never fewer.
func Apply(leads []entity.Lead, criteria Criteria) []entity.Lead {
	if criteria.Empty() {
		return leads
	}

	city := strings.ToLower(strings.TrimSpace(criteria.CityContains))
	service := strings.ToLower(strings.TrimSpace(criteria.ServiceContains))
	query := strings.ToLower(strings.TrimSpace(criteria.FreeTextQuery))

	out := make([]entity.Lead, 0, len(leads))
	for _, lead := range leads {
		if city != "" && !matchesCity(lead, city) {
			continue
		}
		if service != "" && !matchesService(lead, service) {
			continue
		}
		if query != "" && !matchesQuery(lead, query, criteria.ConversationMatches) {
			continue
		}
		out = append(out, lead)
	}
	return out
}

func matchesCity(lead entity.Lead, city string) bool {
	return lead.City != nil && strings.Contains(strings.ToLower(*lead.City), city)
}

func matchesService(lead entity.Lead, service string) bool {
	for _, s := range lead.InterestedServices {
		if strings.Contains(strings.ToLower(s), service) {
			return true
		}
	}
	return false
}

func matchesQuery(lead entity.Lead, query string, conversationMatches map[uuid.UUID]struct{}) bool {
	if strings.Contains(strings.ToLower(lead.BusinessName), query) ||
		strings.Contains(strings.ToLower(lead.ContactPerson), query) ||
		strings.Contains(strings.ToLower(lead.Phone), query) {
		return true
	}
	if lead.Email != nil && strings.Contains(strings.ToLower(*lead.Email), query) {
		return true
	}
	if lead.NotesFirstCall != nil && strings.Contains(strings.ToLower(*lead.NotesFirstCall), query) {
		return true
	}
	_, ok := conversationMatches[lead.ID]
	return ok
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
