package model

import "time"

type BaseResponse struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message"`
}

type SignupRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=150"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
	City      string `json:"city" validate:"max=100"`
	Role      string `json:"role" validate:"omitempty,oneof=volunteer nko_representative corporate_volunteer corporate_coordinator"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type EventCreateRequest struct {
	Title                string     `json:"title" validate:"required,max=200"`
	Description          string     `json:"description" validate:"required"`
	EventType            string     `json:"event_type" validate:"required,oneof=volunteer meeting training conference celebration cleanup fundraising"`
	StartDate            time.Time  `json:"start_date" validate:"required"`
	EndDate              time.Time  `json:"end_date" validate:"required,gtfield=StartDate"`
	RegistrationDeadline *time.Time `json:"registration_deadline"`
	City                 string     `json:"city" validate:"required,max=100"`
	Address              string     `json:"address"`
	Online               bool       `json:"online"`
	OnlineLink           string     `json:"online_link" validate:"omitempty,url"`
	NKOID                *string    `json:"nko_id"`
	MaxParticipants      *int       `json:"max_participants" validate:"omitempty,gt=0"`
	Requirements         string     `json:"requirements"`
	WhatToBring          string     `json:"what_to_bring"`
	ContactInfo          string     `json:"contact_info"`
}

type EventStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft pending published cancelled completed"`
}

type RegistrationRequest struct {
	Notes string `json:"notes" validate:"max=2000"`
}

type ParticipantStatusRequest struct {
	Status         string `json:"status" validate:"required,oneof=confirmed attended no_show"`
	VolunteerHours *int   `json:"volunteer_hours" validate:"omitempty,gte=0"`
}

type NKOCreateRequest struct {
	Name        string            `json:"name" validate:"required,max=200"`
	Description string            `json:"description" validate:"required"`
	Mission     string            `json:"mission"`
	Category    string            `json:"category" validate:"required,oneof=ecology animals children elderly sport culture education health"`
	Email       string            `json:"email" validate:"required,email"`
	Phone       string            `json:"phone" validate:"max=20"`
	Website     string            `json:"website" validate:"omitempty,url"`
	SocialLinks map[string]string `json:"social_links"`
	City        string            `json:"city" validate:"required,max=100"`
	Address     string            `json:"address"`
}

type NewsCreateRequest struct {
	Title   string  `json:"title" validate:"required,max=200"`
	Content string  `json:"content" validate:"required"`
	Excerpt string  `json:"excerpt" validate:"max=500"`
	City    string  `json:"city" validate:"required,max=100"`
	NKOID   *string `json:"nko_id"`
}

type KnowledgeCreateRequest struct {
	Title           string `json:"title" validate:"required,max=200"`
	Content         string `json:"content" validate:"required"`
	Excerpt         string `json:"excerpt"`
	Category        string `json:"category" validate:"required,oneof=guide law finance volunteer reporting success_story methodology"`
	IsPublic        bool   `json:"is_public"`
	DifficultyLevel string `json:"difficulty_level" validate:"omitempty,oneof=beginner intermediate advanced"`
}

type CommentCreateRequest struct {
	Kind     string  `json:"content_kind" validate:"required,oneof=news event knowledge"`
	TargetID string  `json:"content_id" validate:"required"`
	Text     string  `json:"text" validate:"required,max=5000"`
	ParentID *string `json:"parent_id"`
}

type LikeRequest struct {
	Kind     string `json:"content_kind" validate:"required,oneof=news event knowledge"`
	TargetID string `json:"content_id" validate:"required"`
}
