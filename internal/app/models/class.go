package models

import "time"

// ClassSchedule is one meeting slot of a class
type ClassSchedule struct {
	Day       string `json:"day" binding:"required"`
	StartTime string `json:"startTime" binding:"required,timehhmm"`
	EndTime   string `json:"endTime" binding:"required,timehhmm"`
}

// Class represents a teachable class of a subject. Students join either by
// direct enrollment or through the class invite code.
type Class struct {
	ID             int64           `json:"id" db:"id"`
	SubjectID      int64           `json:"subjectId" db:"subject_id"`
	TeacherID      string          `json:"teacherId" db:"teacher_id"`
	InviteCode     string          `json:"inviteCode" db:"invite_code"`
	Name           string          `json:"name" db:"name"`
	BannerURL      *string         `json:"bannerUrl,omitempty" db:"banner_url"`
	BannerCldPubID *string         `json:"bannerCldPubId,omitempty" db:"banner_cld_pub_id"`
	Description    *string         `json:"description,omitempty" db:"description"`
	Capacity       int             `json:"capacity" db:"capacity"`
	Status         ClassStatus     `json:"status" db:"status"`
	Schedules      []ClassSchedule `json:"schedules" db:"schedules"`
	CreatedAt      time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time       `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Subject *Subject    `json:"subject,omitempty"`
	Teacher *PublicUser `json:"teacher,omitempty"`
}
