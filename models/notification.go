package models

import "time"

type Notification struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"userId" json:"userId"`
	ProjectID string    `bson:"projectId" json:"projectId"`
	Message   string    `bson:"message" json:"message"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	IsRead    bool      `bson:"isRead" json:"isRead"`
}
