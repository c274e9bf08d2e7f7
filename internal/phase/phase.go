// Package phase decides what the display shows for the currently
// relevant prayer: counting down to its adhan, counting down to the
// congregation, the final warning just before it, or the calm
// in-prayer screen.
package phase

import (
	"time"

	"github.com/minbar-signage/minbar/internal/clock"
	"github.com/minbar-signage/minbar/internal/prayer"
	"github.com/minbar-signage/minbar/internal/timeutil"
)

type Phase string

const (
	CountdownAdhan  Phase = "countdown-adhan"
	CountdownJamaat Phase = "countdown-jamaat"
	JamaatSoon      Phase = "jamaat-soon"
	InPrayer        Phase = "in-prayer"
)

const (
	// JamaatSoonThreshold is how close the congregation has to be
	// before the display switches to the final warning.
	JamaatSoonThreshold = 5 * time.Minute
	// InPrayerWindow is how long the calm screen stays up once the
	// congregation time arrives.
	InPrayerWindow = 5 * time.Minute
)

// Valid reports whether p is one of the four display phases.
func Valid(p Phase) bool {
	switch p {
	case CountdownAdhan, CountdownJamaat, JamaatSoon, InPrayer:
		return true
	}
	return false
}

// State is the derived display phase for one tick. Countdown carries a
// live second-level countdown to the phase's target where one applies.
type State struct {
	Phase     Phase  `json:"phase"`
	Prayer    string `json:"prayer"`
	Countdown string `json:"countdown,omitempty"`
}

// Resolve derives the phase from the schedule and the shared snapshot.
// A non-nil override returns its tag verbatim with the relevant prayer
// name attached; forced and computed state are never blended.
func Resolve(sched prayer.Schedule, snap clock.Snapshot, override *Phase) State {
	if override != nil {
		return State{Phase: *override, Prayer: relevantName(sched)}
	}

	now := snap.SecondOfDay

	// The calm screen belongs to the prayer that just started: its
	// congregation time has passed but the window has not elapsed.
	if cur := sched.Current; cur != nil && cur.JamaatMinutes >= 0 {
		jamaat := cur.JamaatMinutes * 60
		if now >= jamaat && now < jamaat+int(InPrayerWindow/time.Second) {
			return State{Phase: InPrayer, Prayer: cur.Name}
		}
	}

	if nxt := sched.Next; nxt != nil {
		adhan := nxt.AdhanMinutes * 60
		if !nxt.Tomorrow && now >= adhan && nxt.JamaatMinutes >= 0 {
			// Adhan has sounded; the wait is now for the congregation.
			remaining := time.Duration(nxt.JamaatMinutes*60-now) * time.Second
			state := State{
				Phase:     CountdownJamaat,
				Prayer:    nxt.Name,
				Countdown: timeutil.Countdown(remaining, true),
			}
			if remaining <= JamaatSoonThreshold {
				state.Phase = JamaatSoon
			}
			return state
		}

		remaining := time.Duration(timeutil.SecondsUntil(now, adhan, nxt.Tomorrow)) * time.Second
		return State{
			Phase:     CountdownAdhan,
			Prayer:    nxt.Name,
			Countdown: timeutil.Countdown(remaining, true),
		}
	}

	// No table at all: cold-start default.
	return State{Phase: CountdownAdhan}
}

func relevantName(sched prayer.Schedule) string {
	if sched.Current != nil {
		return sched.Current.Name
	}
	if sched.Next != nil {
		return sched.Next.Name
	}
	return ""
}
