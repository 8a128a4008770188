package domain

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in a session transcript. Assistant content is built
// incrementally while Streaming is true; at most one message per session is
// streaming at a time and it is always the last one.
type Message struct {
	ID        string     `json:"id"`
	Role      Role       `json:"role"`
	Content   string     `json:"content"`
	Citations []Citation `json:"citations,omitempty"`
	Streaming bool       `json:"streaming,omitempty"`
}

// Citation is a numbered source reference attached to a finalized
// assistant message. Indexes are 1-based and stable within a turn.
type Citation struct {
	Index  int    `json:"index"`
	Source string `json:"source"`
}
