package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Charanos/andishi-mvp-sub001/logging"
	"github.com/Charanos/andishi-mvp-sub001/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MilestoneService struct {
	ProjectsCollection *mongo.Collection
}

func NewMilestoneService(projectsCollection *mongo.Collection) *MilestoneService {
	return &MilestoneService{ProjectsCollection: projectsCollection}
}

func (s *MilestoneService) loadProject(ctx context.Context, projectID string) (*models.Project, error) {
	ps := &ProjectService{ProjectsCollection: s.ProjectsCollection}
	return ps.GetProjectByID(ctx, projectID)
}

func (s *MilestoneService) findMilestone(project *models.Project, milestoneID string) (*models.Milestone, error) {
	for i := range project.Milestones {
		if project.Milestones[i].ID == milestoneID {
			return &project.Milestones[i], nil
		}
	}
	return nil, fmt.Errorf("milestone: %w", models.ErrNotFound)
}

func (s *MilestoneService) saveMilestone(ctx context.Context, project *models.Project, m *models.Milestone) error {
	filter := bson.M{"_id": project.ID, "milestones.id": m.ID}
	update := bson.M{"$set": bson.M{"milestones.$": m, "updatedAt": time.Now()}}
	result, err := s.ProjectsCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update milestone: %v", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("milestone: %w", models.ErrNotFound)
	}
	return nil
}

// AddMilestone appends a milestone with the next dense order value.
// Client-submitted milestones enter the approval queue; admin-originated
// ones are pre-approved.
func (s *MilestoneService) AddMilestone(ctx context.Context, projectID string, input models.MilestoneInput, submittedBy string) (*models.Milestone, error) {
	if input.Title == "" {
		return nil, models.NewValidationError("title", "milestone title is required")
	}

	project, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	status := models.MilestonePending
	if submittedBy == models.SubmittedByAdmin {
		status = models.MilestoneApproved
	}
	deliverables := input.Deliverables
	if deliverables == nil {
		deliverables = []string{}
	}
	milestone := models.Milestone{
		ID:           uuid.New().String(),
		Title:        input.Title,
		Description:  input.Description,
		Budget:       input.Budget,
		Timeline:     input.Timeline,
		Status:       status,
		Order:        len(project.Milestones) + 1,
		Deliverables: deliverables,
		SubmittedBy:  submittedBy,
	}

	update := bson.M{
		"$push": bson.M{"milestones": milestone},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	if _, err := s.ProjectsCollection.UpdateOne(ctx, bson.M{"_id": project.ID}, update); err != nil {
		return nil, fmt.Errorf("failed to add milestone: %v", err)
	}

	logging.Logger.Infof("Event ID: MILESTONE_ADDED, Description: Milestone %s added to project %s by %s", milestone.ID, projectID, submittedBy)
	return &milestone, nil
}

func (s *MilestoneService) ApproveMilestone(ctx context.Context, projectID, milestoneID, adminName string) (*models.Milestone, error) {
	project, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	milestone, err := s.findMilestone(project, milestoneID)
	if err != nil {
		return nil, err
	}
	if err := milestone.Approve(adminName, time.Now()); err != nil {
		return nil, err
	}
	if err := s.saveMilestone(ctx, project, milestone); err != nil {
		return nil, err
	}
	logging.Logger.Infof("Event ID: MILESTONE_APPROVED, Description: Milestone %s on project %s approved by %s", milestoneID, projectID, adminName)
	return milestone, nil
}

func (s *MilestoneService) RejectMilestone(ctx context.Context, projectID, milestoneID, adminName, reason string) (*models.Milestone, error) {
	project, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	milestone, err := s.findMilestone(project, milestoneID)
	if err != nil {
		return nil, err
	}
	if err := milestone.Reject(adminName, reason, time.Now()); err != nil {
		return nil, err
	}
	if err := s.saveMilestone(ctx, project, milestone); err != nil {
		return nil, err
	}
	logging.Logger.Infof("Event ID: MILESTONE_REJECTED, Description: Milestone %s on project %s rejected by %s", milestoneID, projectID, adminName)
	return milestone, nil
}

// ToggleMilestoneProgress flips a milestone between in-progress and
// completed, independent of the approval queue.
func (s *MilestoneService) ToggleMilestoneProgress(ctx context.Context, projectID, milestoneID string) (*models.Milestone, error) {
	project, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	milestone, err := s.findMilestone(project, milestoneID)
	if err != nil {
		return nil, err
	}
	if err := milestone.ToggleProgress(time.Now()); err != nil {
		return nil, err
	}
	if err := s.saveMilestone(ctx, project, milestone); err != nil {
		return nil, err
	}
	return milestone, nil
}

// CancelMilestone soft-deletes a milestone, keeping it for audit history.
func (s *MilestoneService) CancelMilestone(ctx context.Context, projectID, milestoneID string) (*models.Milestone, error) {
	project, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	milestone, err := s.findMilestone(project, milestoneID)
	if err != nil {
		return nil, err
	}
	if err := milestone.Cancel(); err != nil {
		return nil, err
	}
	if err := s.saveMilestone(ctx, project, milestone); err != nil {
		return nil, err
	}
	logging.Logger.Infof("Event ID: MILESTONE_CANCELLED, Description: Milestone %s on project %s cancelled", milestoneID, projectID)
	return milestone, nil
}
