package schedule

import "sort"

// IsLead reports whether a client with the given details is overdue for a
// call: recurrence is configured, no booking dated after today exists, and
// the predicted next due date is on or before today.
func IsLead(d HousekeepingDetails, today Date) bool {
	if !d.HasDetails() {
		return false
	}
	if d.HasActiveBooking(today) {
		return false
	}
	return !d.NextDueDate().After(today)
}

// SelectLeads filters items down to leads and orders them soonest-due-first.
// Items without configured details fail the filter outright; they are
// excluded, not sorted to the end. The input slice is not modified.
func SelectLeads[T any](items []T, details func(T) HousekeepingDetails, today Date) []T {
	leads := make([]T, 0)
	for _, item := range items {
		if IsLead(details(item), today) {
			leads = append(leads, item)
		}
	}

	sort.SliceStable(leads, func(i, j int) bool {
		return details(leads[i]).Compare(details(leads[j])) < 0
	})
	return leads
}
