package scoring

import "time"

// DateFormat is the calendar-date granularity used by the activity ledger.
const DateFormat = "2006-01-02"

// Ledger is a user's consecutive-day activity record. LastActivityDate is a
// date string, not an instant: the streak only cares about calendar days.
type Ledger struct {
	Streak           int    `json:"streak"`
	LastActivityDate string `json:"last_activity_date"`
}

// LogActivity records activity at instant now and returns the updated ledger.
// Logging twice on the same day is a no-op, activity on the day after the
// previous one extends the streak, and any longer gap starts over at 1.
func LogActivity(l Ledger, now time.Time) Ledger {
	today := now.Format(DateFormat)
	yesterday := now.AddDate(0, 0, -1).Format(DateFormat)

	if l.LastActivityDate == today {
		return l
	}

	streak := 1
	if l.LastActivityDate == yesterday {
		streak = l.Streak + 1
	}

	return Ledger{Streak: streak, LastActivityDate: today}
}

// Reconcile recomputes whether a stored streak is still alive at instant now,
// without logging any activity. A ledger whose last activity is neither today
// nor yesterday is reset to zero; callers persist the result so that stored
// and displayed streaks never diverge.
func Reconcile(l Ledger, now time.Time) Ledger {
	today := now.Format(DateFormat)
	yesterday := now.AddDate(0, 0, -1).Format(DateFormat)

	if l.LastActivityDate == today || l.LastActivityDate == yesterday {
		return l
	}
	return Ledger{Streak: 0, LastActivityDate: l.LastActivityDate}
}
