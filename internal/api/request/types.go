package request

// SendMessageRequest is the request body for posting a chat message.
// PlayerID is a pointer so a missing id is distinguishable from id 0.
type SendMessageRequest struct {
	PlayerID *int64 `json:"player_id"`
	Text     string `json:"text"`
}
