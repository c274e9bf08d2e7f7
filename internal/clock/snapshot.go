package clock

import "time"

// Snapshot is an immutable point-in-time value. One Snapshot is
// broadcast per tick and every derivation for that tick reads the same
// one, so no field is computed against second 59 while another sees
// second 0 of the next minute.
type Snapshot struct {
	Time        time.Time
	Date        string // YYYY-MM-DD
	MinuteOfDay int
	SecondOfDay int
}

// SnapshotAt builds the Snapshot for a wall-clock instant.
func SnapshotAt(t time.Time) Snapshot {
	return Snapshot{
		Time:        t,
		Date:        t.Format("2006-01-02"),
		MinuteOfDay: t.Hour()*60 + t.Minute(),
		SecondOfDay: t.Hour()*3600 + t.Minute()*60 + t.Second(),
	}
}
