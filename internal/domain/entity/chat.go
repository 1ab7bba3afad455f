package entity

// ChatMessage is an incoming text line from a chat owner
type ChatMessage struct {
	UpdateID int64
	OwnerID  int64
	Text     string
}
