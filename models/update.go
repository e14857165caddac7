package models

import "time"

type ProjectUpdate struct {
	ID              string    `bson:"id" json:"id"`
	Title           string    `bson:"title" json:"title"`
	Description     string    `bson:"description" json:"description"`
	Type            string    `bson:"type" json:"type"`
	Author          string    `bson:"author" json:"author"`
	IsAdminResponse bool      `bson:"isAdminResponse,omitempty" json:"isAdminResponse,omitempty"`
	ParentUpdateID  string    `bson:"parentUpdateId,omitempty" json:"parentUpdateId,omitempty"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
}

const (
	UpdateGeneral            = "general"
	UpdateProgress           = "progress"
	UpdateMilestone          = "milestone"
	UpdateMilestoneCompleted = "milestone_completed"
	UpdateIssue              = "issue"
	UpdateBlocker            = "blocker"
	UpdateAdminResponse      = "admin_response"
	UpdateCompleted          = "completed"
)

func IsValidUpdateType(t string) bool {
	switch t {
	case UpdateGeneral, UpdateProgress, UpdateMilestone, UpdateMilestoneCompleted,
		UpdateIssue, UpdateBlocker, UpdateAdminResponse, UpdateCompleted:
		return true
	}
	return false
}

type ProjectFile struct {
	ID          string    `bson:"id" json:"id"`
	FileName    string    `bson:"fileName" json:"fileName"`
	FileURL     string    `bson:"fileUrl" json:"fileUrl"`
	FileSize    int64     `bson:"fileSize,omitempty" json:"fileSize,omitempty"`
	FileType    string    `bson:"fileType" json:"fileType"`
	UploadedBy  string    `bson:"uploadedBy,omitempty" json:"uploadedBy,omitempty"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

const (
	FileDocument = "document"
	FileImage    = "image"
	FileVideo    = "video"
	FileOther    = "other"
)
