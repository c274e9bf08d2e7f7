package packets

// RESPONSES FOR /api/admin

type ScreenResponse struct {
	ID        int     `json:"id"`
	DeviceID  *string `json:"device_id"`
	Name      string  `json:"name"`
	Location  *string `json:"location"`
	Paired    bool    `json:"paired"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

type OverridesResponse struct {
	Phase   string `json:"phase"`   // forced phase tag, "" when unset
	Ramadan string `json:"ramadan"` // on | off | auto
}

type SlideResponse struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	URL       string `json:"url"`
	CreatedAt string `json:"created_at"`
}
