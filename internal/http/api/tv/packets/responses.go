package packets

type RegisterPairResponse struct {
	PairingCode string `json:"pairing_code"`
	ExpiresIn   int    `json:"expires_in_seconds"`
}
