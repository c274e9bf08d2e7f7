package packets

// REQUESTS FOR /api/admin

// TimetableRequest carries one day of raw prayer times. Empty strings
// mean "unknown"; the engine drops those prayers from scheduling.
type TimetableRequest struct {
	Day           string `json:"day"` // YYYY-MM-DD, defaults to today
	Fajr          string `json:"fajr"`
	FajrJamaat    string `json:"fajr_jamaat"`
	Sunrise       string `json:"sunrise"`
	Zuhr          string `json:"zuhr"`
	ZuhrJamaat    string `json:"zuhr_jamaat"`
	Asr           string `json:"asr"`
	AsrJamaat     string `json:"asr_jamaat"`
	Maghrib       string `json:"maghrib"`
	MaghribJamaat string `json:"maghrib_jamaat"`
	Isha          string `json:"isha"`
	IshaJamaat    string `json:"isha_jamaat"`
}

// PhaseOverrideRequest forces a display phase; an empty phase clears
// the force.
type PhaseOverrideRequest struct {
	Phase string `json:"phase"`
}

// RamadanOverrideRequest sets the tri-state Ramadan force.
type RamadanOverrideRequest struct {
	Mode string `json:"mode" binding:"required"` // on | off | auto
}

type CreateScreenRequest struct {
	Name     string  `json:"name" binding:"required"`
	Location *string `json:"location"`
}

type PairScreenRequest struct {
	PairingCode string `json:"code" binding:"required"`
}
