package types

import (
	"time"
)

type ActivityStatus string

const (
	ActivityUpcoming  ActivityStatus = "upcoming"
	ActivityOngoing   ActivityStatus = "ongoing"
	ActivityCompleted ActivityStatus = "completed"
	ActivityCancelled ActivityStatus = "cancelled"
)

type JoinRequestStatus string

const (
	JoinRequestPending  JoinRequestStatus = "pending"
	JoinRequestAccepted JoinRequestStatus = "accepted"
	JoinRequestRejected JoinRequestStatus = "rejected"
)

type MessageType string

const (
	MessageText   MessageType = "text"
	MessageImage  MessageType = "image"
	MessageSystem MessageType = "system"
)

type UserStats struct {
	ActivitiesCreated int `json:"activities_created"`
	ActivitiesJoined  int `json:"activities_joined"`
}

type UserPreferences struct {
	ActivityMode  string `json:"activity_mode,omitempty"`
	MaxDistanceKm int    `json:"max_distance_km,omitempty"`
	Notifications bool   `json:"notifications"`
}

type User struct {
	Id           string          `json:"id"`
	Name         string          `json:"name"`
	EmailAddress string          `json:"email_address,omitempty"`
	AvatarUrl    string          `json:"avatar_url,omitempty"`
	Bio          string          `json:"bio,omitempty"`
	Stats        UserStats       `json:"stats,omitempty"`
	Preferences  UserPreferences `json:"preferences,omitempty"`
	Tier         string          `json:"tier,omitempty"`
	CreatedAt    time.Time       `json:"created_at,omitempty"`
	UpdatedAt    time.Time       `json:"updated_at,omitempty"`
}

type Location struct {
	Name      string  `json:"name,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Activity struct {
	Id              string         `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description,omitempty"`
	Location        Location       `json:"location"`
	StartsAt        time.Time      `json:"starts_at"`
	EndsAt          time.Time      `json:"ends_at,omitempty"`
	Status          ActivityStatus `json:"status"`
	CreatorId       string         `json:"creator_id"`
	Participants    []User         `json:"participants,omitempty"`
	MaxParticipants int            `json:"max_participants,omitempty"`
	CreatedAt       time.Time      `json:"created_at,omitempty"`
	UpdatedAt       time.Time      `json:"updated_at,omitempty"`
}

type Message struct {
	Id        string      `json:"id"`
	ChatId    string      `json:"chat_id"`
	SenderId  string      `json:"sender_id"`
	Content   string      `json:"content"`
	Type      MessageType `json:"type"`
	Read      bool        `json:"read"`
	CreatedAt time.Time   `json:"created_at"`
}

// Chat is the conversation attached to an activity. LastMessage is the
// preview shown in chat lists and is patched in place on real-time delivery.
type Chat struct {
	Id           string    `json:"id"`
	ActivityId   string    `json:"activity_id"`
	Participants []User    `json:"participants,omitempty"`
	LastMessage  *Message  `json:"last_message,omitempty"`
	UnreadCount  int       `json:"unread_count"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

type Notification struct {
	Id        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

type JoinRequest struct {
	Id         string            `json:"id"`
	ActivityId string            `json:"activity_id"`
	User       User              `json:"user"`
	Message    string            `json:"message,omitempty"`
	Status     JoinRequestStatus `json:"status"`
	CreatedAt  time.Time         `json:"created_at,omitempty"`
	UpdatedAt  time.Time         `json:"updated_at,omitempty"`
}

type SubscriptionTier struct {
	Id                   string `json:"id"`
	Name                 string `json:"name"`
	PriceCents           int    `json:"price_cents"`
	Currency             string `json:"currency,omitempty"`
	MaxJoinsPerMonth     int    `json:"max_joins_per_month,omitempty"`
	MaxCreatedActivities int    `json:"max_created_activities,omitempty"`
}
