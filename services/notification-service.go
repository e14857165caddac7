package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Charanos/andishi-mvp-sub001/logging"
	"github.com/Charanos/andishi-mvp-sub001/models"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NotificationService persists a notification per project status change
// and pushes it to the configured webhook through a circuit breaker.
// Webhook failures are logged and never fail the triggering transition.
type NotificationService struct {
	NotificationsCollection *mongo.Collection
	HTTPClient              *http.Client
	Breaker                 *gobreaker.CircuitBreaker
	WebhookURL              string
}

func NewNotificationService(notificationsCollection *mongo.Collection, httpClient *http.Client, breaker *gobreaker.CircuitBreaker, webhookURL string) *NotificationService {
	return &NotificationService{
		NotificationsCollection: notificationsCollection,
		HTTPClient:              httpClient,
		Breaker:                 breaker,
		WebhookURL:              webhookURL,
	}
}

func (s *NotificationService) NotifyStatusChange(ctx context.Context, project *models.Project, oldStatus string) {
	notification := models.Notification{
		ID:        uuid.New().String(),
		UserID:    project.ClientID.Hex(),
		ProjectID: project.ID.Hex(),
		Message:   fmt.Sprintf("Project %q moved from %s to %s", project.ProjectDetails.Title, oldStatus, project.Status),
		CreatedAt: time.Now(),
		IsRead:    false,
	}

	if _, err := s.NotificationsCollection.InsertOne(ctx, notification); err != nil {
		logging.Logger.Errorf("Event ID: NOTIFICATION_STORE_FAILED, Description: Failed to store notification for project %s: %v", notification.ProjectID, err)
		return
	}

	if s.WebhookURL == "" {
		return
	}

	_, err := s.Breaker.Execute(func() (interface{}, error) {
		payload, err := json.Marshal(notification)
		if err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.WebhookURL, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		resp, err := s.HTTPClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("webhook returned status %d", resp.StatusCode)
		}
		return nil, nil
	})
	if err != nil {
		logging.Logger.Warnf("Event ID: NOTIFICATION_WEBHOOK_FAILED, Description: Webhook delivery for notification %s failed: %v", notification.ID, err)
	}
}

func (s *NotificationService) GetNotificationsByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.NotificationsCollection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %v", err)
	}
	defer cursor.Close(ctx)

	notifications := []models.Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %v", err)
	}
	return notifications, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, notificationID string) error {
	result, err := s.NotificationsCollection.UpdateOne(ctx,
		bson.M{"id": notificationID},
		bson.M{"$set": bson.M{"isRead": true}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification as read: %v", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("notification: %w", models.ErrNotFound)
	}
	return nil
}
