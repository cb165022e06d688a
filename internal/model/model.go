// Package model defines the core domain types for the event signup system.
package model

import "time"

// Event represents a listed activity that users can register for.
// The structured fields (highlights, prizes, agenda, speakers, ...) are
// stored as JSONB blobs and passed through to the client untouched.
type Event struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	StartTime       string           `json:"startTime"`
	EndTime         string           `json:"endTime,omitempty"`
	Location        string           `json:"location"`
	SignupDeadline  string           `json:"signupDeadline"`
	Highlights      []string         `json:"highlights"`
	Prizes          []Prize          `json:"prizes"`
	RegisteredCount int              `json:"registeredCount"`
	MaxParticipants *int             `json:"maxParticipants,omitempty"`
	BannerURL       string           `json:"bannerUrl,omitempty"`
	ReplayURL       string           `json:"replayUrl,omitempty"`
	Description     string           `json:"description,omitempty"`
	Agenda          []AgendaItem     `json:"agenda,omitempty"`
	TargetAudience  []string         `json:"targetAudience,omitempty"`
	Requirements    []string         `json:"requirements,omitempty"`
	Speakers        []Speaker        `json:"speakers,omitempty"`
	Organizer       *Organizer       `json:"organizer,omitempty"`
	Tags            []string         `json:"tags,omitempty"`
	Difficulty      string           `json:"difficulty,omitempty"`
	Benefits        []string         `json:"benefits,omitempty"`
	SurveyQuestions []SurveyQuestion `json:"surveyQuestions"`
}

// Prize is one prize tier shown on the event page.
type Prize struct {
	Rank string `json:"rank"`
	Text string `json:"text"`
}

// AgendaItem is one row of the event schedule.
type AgendaItem struct {
	Time        string `json:"time"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Speaker describes a presenter.
type Speaker struct {
	Name   string `json:"name"`
	Title  string `json:"title"`
	Avatar string `json:"avatar"`
}

// Organizer describes the hosting team.
type Organizer struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Contact     string `json:"contact"`
}

// SurveyQuestion is one multiple-choice question attached to an event.
type SurveyQuestion struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// Registration is one claimed attendance slot, identified by the declared
// name and department. The (EventID, Name, Department) triple is unique.
type Registration struct {
	ID           string    `json:"id"`
	EventID      string    `json:"eventId"`
	Name         string    `json:"name"`
	Department   string    `json:"department"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// SurveyResponse is one user's ordered answer vector for an event's survey.
// Answers[i] is the chosen option index for question i.
type SurveyResponse struct {
	EventID     string    `json:"eventId"`
	UserID      string    `json:"userId"`
	Answers     []int     `json:"answers"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// SurveyQuestionStats is the derived percentage distribution for one
// question: Stats[j] is the rounded percentage of responses that picked
// option j.
type SurveyQuestionStats struct {
	QuestionIndex  int   `json:"questionIndex"`
	TotalResponses int   `json:"totalResponses"`
	Stats          []int `json:"stats"`
}

// CreateEventRequest is the payload for creating a new event.
type CreateEventRequest struct {
	Title           string           `json:"title"`
	StartTime       string           `json:"startTime"`
	EndTime         string           `json:"endTime"`
	Location        string           `json:"location"`
	SignupDeadline  string           `json:"signupDeadline"`
	Highlights      []string         `json:"highlights"`
	Prizes          []Prize          `json:"prizes"`
	MaxParticipants *int             `json:"maxParticipants"`
	BannerURL       string           `json:"bannerUrl"`
	ReplayURL       string           `json:"replayUrl"`
	Description     string           `json:"description"`
	SurveyQuestions []SurveyQuestion `json:"surveyQuestions"`
}

// EventUpdate is an explicit partial update: nil fields are left unchanged.
// Only these fields may ever be rewritten; id and registeredCount are not
// client-writable.
type EventUpdate struct {
	Title           *string           `json:"title"`
	StartTime       *string           `json:"startTime"`
	EndTime         *string           `json:"endTime"`
	Location        *string           `json:"location"`
	SignupDeadline  *string           `json:"signupDeadline"`
	Highlights      *[]string         `json:"highlights"`
	Prizes          *[]Prize          `json:"prizes"`
	MaxParticipants *int              `json:"maxParticipants"`
	BannerURL       *string           `json:"bannerUrl"`
	ReplayURL       *string           `json:"replayUrl"`
	Description     *string           `json:"description"`
	Agenda          *[]AgendaItem     `json:"agenda"`
	TargetAudience  *[]string         `json:"targetAudience"`
	Requirements    *[]string         `json:"requirements"`
	Speakers        *[]Speaker        `json:"speakers"`
	Organizer       *Organizer        `json:"organizer"`
	Tags            *[]string         `json:"tags"`
	Difficulty      *string           `json:"difficulty"`
	Benefits        *[]string         `json:"benefits"`
	SurveyQuestions *[]SurveyQuestion `json:"surveyQuestions"`
}

// RegisterRequest is the payload for registering for an event.
type RegisterRequest struct {
	Name       string `json:"name"`
	Department string `json:"department"`
}

// RegisterResponse reports the outcome of a registration attempt. On
// success RegisteredCount carries the updated counter; on failure Message
// carries a user-facing explanation.
type RegisterResponse struct {
	Success         bool   `json:"success"`
	RegisteredCount int    `json:"registeredCount"`
	Message         string `json:"message,omitempty"`
}

// SubmitSurveyRequest is the payload for submitting a survey response.
type SubmitSurveyRequest struct {
	UserID  string `json:"userId"`
	Answers []int  `json:"answers"`
}

// SurveyStatsResponse wraps the per-question distributions.
type SurveyStatsResponse struct {
	Stats []SurveyQuestionStats `json:"stats"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
