package types

import (
	"time"

	"github.com/jambohub/jambohub/internal/models"
)

type UserResponse struct {
	ID                 string    `json:"id"`
	Username           string    `json:"username,omitempty"`
	FirstName          string    `json:"first_name"`
	LastName           string    `json:"last_name"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone,omitempty"`
	Age                int       `json:"age,omitempty"`
	Gender             string    `json:"gender,omitempty"`
	Position           string    `json:"position,omitempty"`
	Patrol             string    `json:"patrol,omitempty"`
	EmergencyContact   string    `json:"emergency_contact,omitempty"`
	Role               string    `json:"role"`
	Unit               string    `json:"unit,omitempty"`
	Active             bool      `json:"active"`
	PasswordChanged    bool      `json:"password_changed"`
	EmailNotifications bool      `json:"email_notifications"`
	CreatedAt          time.Time `json:"created_at"`
}

func NewUserResponse(u models.User) UserResponse {
	return UserResponse{
		ID:                 u.ID,
		Username:           u.UsernameString(),
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		Name:               u.DisplayName(),
		Email:              u.Email,
		Phone:              u.Phone,
		Age:                u.Age,
		Gender:             u.Gender,
		Position:           u.Position,
		Patrol:             u.Patrol,
		EmergencyContact:   u.EmergencyContact,
		Role:               u.Role,
		Unit:               u.Unit,
		Active:             u.Active,
		PasswordChanged:    u.PasswordChanged,
		EmailNotifications: u.EmailNotifications,
		CreatedAt:          u.CreatedAt,
	}
}

type ChannelResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Type        string `json:"type"`
	Unit        string `json:"unit,omitempty"`
	CanPost     bool   `json:"canPost"`
}

type AdminChannelResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	Icon               string    `json:"icon"`
	Type               string    `json:"type"`
	Unit               string    `json:"unit,omitempty"`
	AllowedRoles       string    `json:"allowed_roles"`
	CanPostRoles       string    `json:"can_post_roles"`
	Active             bool      `json:"active"`
	EmailNotifications bool      `json:"email_notifications"`
	PushNotifications  bool      `json:"push_notifications"`
	CreatedAt          time.Time `json:"created_at"`
}

func NewAdminChannelResponse(c models.Channel) AdminChannelResponse {
	return AdminChannelResponse{
		ID:                 c.ID,
		Name:               c.Name,
		Description:        c.Description,
		Icon:               c.Icon,
		Type:               c.Type,
		Unit:               c.Unit,
		AllowedRoles:       c.AllowedRoles,
		CanPostRoles:       c.CanPostRoles,
		Active:             c.Active,
		EmailNotifications: c.EmailNotifications,
		PushNotifications:  c.PushNotifications,
		CreatedAt:          c.CreatedAt,
	}
}

type MessageAuthor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type MessageResponse struct {
	ID        uint          `json:"id"`
	Content   string        `json:"content"`
	ImageURL  string        `json:"image_url,omitempty"`
	Pinned    bool          `json:"pinned"`
	CreatedAt time.Time     `json:"createdAt"`
	Author    MessageAuthor `json:"author"`
}

func NewMessageResponse(m models.Message, author models.User) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		Content:   m.Content,
		ImageURL:  m.ImageURL,
		Pinned:    m.Pinned,
		CreatedAt: m.CreatedAt,
		Author: MessageAuthor{
			ID:   author.ID,
			Name: author.DisplayName(),
			Role: author.Role,
		},
	}
}

type UnitResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Members   int64     `json:"members"`
	CreatedAt time.Time `json:"created_at"`
}

type InfoCardResponse struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Icon      string `json:"icon,omitempty"`
	Color     string `json:"color,omitempty"`
	Link      string `json:"link,omitempty"`
	SortOrder int    `json:"sort_order"`
	Active    bool   `json:"active"`
}

func NewInfoCardResponse(c models.InfoCard) InfoCardResponse {
	return InfoCardResponse{
		ID:        c.ID,
		Title:     c.Title,
		Content:   c.Content,
		Icon:      c.Icon,
		Color:     c.Color,
		Link:      c.Link,
		SortOrder: c.SortOrder,
		Active:    c.Active,
	}
}
