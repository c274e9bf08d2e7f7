package packets

type RegisterPairRequest struct {
	DeviceID string `json:"device_id" binding:"required"`
}

type ConnectRequest struct {
	DeviceID string `json:"device_id" binding:"required"`
}
