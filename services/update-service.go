package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Charanos/andishi-mvp-sub001/logging"
	"github.com/Charanos/andishi-mvp-sub001/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type UpdateService struct {
	ProjectsCollection *mongo.Collection
}

func NewUpdateService(projectsCollection *mongo.Collection) *UpdateService {
	return &UpdateService{ProjectsCollection: projectsCollection}
}

type UpdateInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type,omitempty"`
}

type FileInput struct {
	FileName    string `json:"fileName"`
	FileURL     string `json:"fileUrl"`
	FileSize    int64  `json:"fileSize,omitempty"`
	FileType    string `json:"fileType,omitempty"`
	UploadedBy  string `json:"uploadedBy,omitempty"`
	Description string `json:"description,omitempty"`
}

func (s *UpdateService) loadProject(ctx context.Context, projectID string) (*models.Project, error) {
	ps := &ProjectService{ProjectsCollection: s.ProjectsCollection}
	return ps.GetProjectByID(ctx, projectID)
}

// prependUpdate pushes at position 0 so the updates array stays
// most-recent-first.
func (s *UpdateService) prependUpdate(ctx context.Context, project *models.Project, update models.ProjectUpdate) error {
	change := bson.M{
		"$push": bson.M{"updates": bson.M{"$each": []models.ProjectUpdate{update}, "$position": 0}},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	if _, err := s.ProjectsCollection.UpdateOne(ctx, bson.M{"_id": project.ID}, change); err != nil {
		return fmt.Errorf("failed to add update: %v", err)
	}
	return nil
}

func (s *UpdateService) AddUpdate(ctx context.Context, projectID string, input UpdateInput, author string) (*models.ProjectUpdate, error) {
	if input.Title == "" {
		return nil, models.NewValidationError("title", "update title is required")
	}
	updateType := input.Type
	if updateType == "" {
		updateType = models.UpdateGeneral
	}
	if !models.IsValidUpdateType(updateType) {
		return nil, models.NewValidationError("type", fmt.Sprintf("unknown update type %q", updateType))
	}

	project, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	update := models.ProjectUpdate{
		ID:          uuid.New().String(),
		Title:       input.Title,
		Description: input.Description,
		Type:        updateType,
		Author:      author,
		CreatedAt:   time.Now(),
	}
	if err := s.prependUpdate(ctx, project, update); err != nil {
		return nil, err
	}

	logging.Logger.Infof("Event ID: UPDATE_ADDED, Description: Update %s added to project %s", update.ID, projectID)
	return &update, nil
}

// ReplyToUpdate posts an admin response as a new top-level update
// annotated with the parent's id. The thread is flat: the parent is
// never mutated.
func (s *UpdateService) ReplyToUpdate(ctx context.Context, projectID, parentUpdateID string, input UpdateInput, author string) (*models.ProjectUpdate, error) {
	if input.Description == "" {
		return nil, models.NewValidationError("description", "reply description is required")
	}

	project, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	parentExists := false
	for _, u := range project.Updates {
		if u.ID == parentUpdateID {
			parentExists = true
			break
		}
	}
	if !parentExists {
		return nil, fmt.Errorf("update: %w", models.ErrNotFound)
	}

	title := input.Title
	if title == "" {
		title = "Admin response"
	}
	reply := models.ProjectUpdate{
		ID:              uuid.New().String(),
		Title:           title,
		Description:     input.Description,
		Type:            models.UpdateAdminResponse,
		Author:          author,
		IsAdminResponse: true,
		ParentUpdateID:  parentUpdateID,
		CreatedAt:       time.Now(),
	}
	if err := s.prependUpdate(ctx, project, reply); err != nil {
		return nil, err
	}

	logging.Logger.Infof("Event ID: UPDATE_REPLY_ADDED, Description: Reply %s to update %s added on project %s", reply.ID, parentUpdateID, projectID)
	return &reply, nil
}

// FileTypeForName buckets a file into document/image/video/other by
// extension.
func FileTypeForName(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf", ".doc", ".docx", ".txt", ".md", ".xls", ".xlsx", ".csv":
		return models.FileDocument
	case ".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp":
		return models.FileImage
	case ".mp4", ".mov", ".avi", ".webm", ".mkv":
		return models.FileVideo
	}
	return models.FileOther
}

func (s *UpdateService) AttachFile(ctx context.Context, projectID string, input FileInput) (*models.ProjectFile, error) {
	if input.FileName == "" {
		return nil, models.NewValidationError("fileName", "file name is required")
	}
	if input.FileURL == "" {
		return nil, models.NewValidationError("fileUrl", "file URL is required")
	}

	project, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	fileType := input.FileType
	if fileType == "" {
		fileType = FileTypeForName(input.FileName)
	}
	file := models.ProjectFile{
		ID:          uuid.New().String(),
		FileName:    input.FileName,
		FileURL:     input.FileURL,
		FileSize:    input.FileSize,
		FileType:    fileType,
		UploadedBy:  input.UploadedBy,
		Description: input.Description,
		CreatedAt:   time.Now(),
	}

	change := bson.M{
		"$push": bson.M{"files": file},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	if _, err := s.ProjectsCollection.UpdateOne(ctx, bson.M{"_id": project.ID}, change); err != nil {
		return nil, fmt.Errorf("failed to attach file: %v", err)
	}

	logging.Logger.Infof("Event ID: FILE_ATTACHED, Description: File %s attached to project %s", file.ID, projectID)
	return &file, nil
}
