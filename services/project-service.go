package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Charanos/andishi-mvp-sub001/logging"
	"github.com/Charanos/andishi-mvp-sub001/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProjectService struct {
	ProjectsCollection *mongo.Collection
	UsersCollection    *mongo.Collection
	Notifier           *NotificationService
}

func NewProjectService(projectsCollection, usersCollection *mongo.Collection, notifier *NotificationService) *ProjectService {
	return &ProjectService{
		ProjectsCollection: projectsCollection,
		UsersCollection:    usersCollection,
		Notifier:           notifier,
	}
}

// GetAllProjects returns every project, newest first.
func (s *ProjectService) GetAllProjects(ctx context.Context) ([]models.Project, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.ProjectsCollection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %v", err)
	}
	defer cursor.Close(ctx)

	projects := []models.Project{}
	if err = cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %v", err)
	}
	return projects, nil
}

func (s *ProjectService) GetProjectByID(ctx context.Context, projectID string) (*models.Project, error) {
	objectID, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return nil, models.NewValidationError("projectId", "invalid project ID format")
	}

	var project models.Project
	err = s.ProjectsCollection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&project)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("project: %w", models.ErrNotFound)
		}
		return nil, fmt.Errorf("error fetching project: %v", err)
	}
	return &project, nil
}

// ChangeStatus applies an admin-driven status transition. The lifecycle
// table is checked before anything is written, so illegal transitions
// never reach the database.
func (s *ProjectService) ChangeStatus(ctx context.Context, projectID, newStatus, adminName string) (*models.Project, error) {
	project, err := s.GetProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	oldStatus := project.Status
	if err := project.ApplyStatus(newStatus, time.Now()); err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"status":               project.Status,
		"progress":             project.Progress,
		"startDate":            project.StartDate,
		"actualCompletionDate": project.ActualCompletionDate,
		"updatedAt":            project.UpdatedAt,
	}}
	if _, err := s.ProjectsCollection.UpdateOne(ctx, bson.M{"_id": project.ID}, update); err != nil {
		return nil, fmt.Errorf("failed to update project status: %v", err)
	}

	logging.Logger.Infof("Event ID: PROJECT_STATUS_CHANGED, Description: Project %s moved from %s to %s by %s", projectID, oldStatus, newStatus, adminName)

	if s.Notifier != nil {
		s.Notifier.NotifyStatusChange(ctx, project, oldStatus)
	}
	return project, nil
}

// SetProgress updates the progress bar. Hitting 100 while in progress
// completes the project in the same write.
func (s *ProjectService) SetProgress(ctx context.Context, projectID string, progress int) (*models.Project, error) {
	project, err := s.GetProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	oldStatus := project.Status
	if err := project.ApplyProgress(progress, time.Now()); err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"progress":             project.Progress,
		"status":               project.Status,
		"actualCompletionDate": project.ActualCompletionDate,
		"updatedAt":            project.UpdatedAt,
	}}
	if _, err := s.ProjectsCollection.UpdateOne(ctx, bson.M{"_id": project.ID}, update); err != nil {
		return nil, fmt.Errorf("failed to update project progress: %v", err)
	}

	if project.Status != oldStatus && s.Notifier != nil {
		s.Notifier.NotifyStatusChange(ctx, project, oldStatus)
	}
	return project, nil
}

// DeleteProject is the explicit admin hard delete; everything else in the
// lifecycle is a soft state change.
func (s *ProjectService) DeleteProject(ctx context.Context, projectID string) error {
	objectID, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return models.NewValidationError("projectId", "invalid project ID format")
	}

	result, err := s.ProjectsCollection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete project: %v", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("project: %w", models.ErrNotFound)
	}

	logging.Logger.Infof("Event ID: PROJECT_DELETED, Description: Project %s deleted", projectID)
	return nil
}

// GetReport recomputes the derived read model for a project.
func (s *ProjectService) GetReport(ctx context.Context, projectID string) (*models.ProjectReport, error) {
	project, err := s.GetProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	report := models.BuildReport(project)
	return &report, nil
}
