package types

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleModel
}

// Source is a web citation attached to a grounded chat reply.
type Source struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// ChatMessage is one turn of the advisor conversation.
type ChatMessage struct {
	Role    Role     `json:"role" validate:"required,chat_role"`
	Text    string   `json:"text"`
	Sources []Source `json:"sources,omitempty"`
}
