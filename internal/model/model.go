// Package model defines the wire-level records exchanged with the Big
// Schedule frontend. Field names follow the frontend's camelCase JSON shape;
// the store owns the translation to the snake_case database schema.
package model

// Role classifies a user account.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Permission grants a level of access to a shared agenda.
type Permission string

const (
	PermissionView   Permission = "view"
	PermissionEdit   Permission = "edit"
	PermissionManage Permission = "manage"
)

// User is an authenticated identity as reported by the identity provider.
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Role       Role   `json:"role"`
	CreatedAt  string `json:"createdAt,omitempty"`
	Phone      string `json:"phone,omitempty"`
	TelegramID string `json:"telegramId,omitempty"`
}

// Agenda is a titled collection of agenda items with an owner and a
// visibility flag.
type Agenda struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	OwnerID     string       `json:"ownerId"`
	IsPublic    bool         `json:"isPublic"`
	CreatedAt   string       `json:"createdAt"`
	AgendaItems []AgendaItem `json:"agendaItems,omitempty"`
	Author      *User        `json:"author,omitempty"`
}

// AgendaItem is a single scheduled activity with an optional time window and
// location. StartTime and EndTime are kept as the literal timestamp strings
// the frontend sends; parsing happens at the timeline boundary only.
type AgendaItem struct {
	ID          string `json:"id"`
	AgendaID    string `json:"agendaId"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	StartTime   string `json:"startTime,omitempty"`
	EndTime     string `json:"endTime,omitempty"`
	Location    string `json:"location,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

// SharedAgenda links an agenda to a user it was shared with.
type SharedAgenda struct {
	ID         string     `json:"id"`
	AgendaID   string     `json:"agendaId"`
	UserID     string     `json:"userId"`
	Permission Permission `json:"permission"`
	SharedAt   string     `json:"sharedAt"`
}

// EventDisplay carries per-item presentation hints.
type EventDisplay struct {
	ID           string `json:"id"`
	AgendaItemID string `json:"agendaItemId"`
	ColorCode    string `json:"colorCode"`
	Icon         string `json:"icon,omitempty"`
	DisplayOrder int    `json:"displayOrder,omitempty"`
}
