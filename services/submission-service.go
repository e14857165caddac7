package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Charanos/andishi-mvp-sub001/logging"
	"github.com/Charanos/andishi-mvp-sub001/models"

	"github.com/google/uuid"
	"github.com/qri-io/jsonschema"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// authenticatedSchema validates submissions that reference an existing
// user by id; anonymousSchema validates public-form submissions that
// carry full contact info instead.
const authenticatedSchema = `{
	"type": "object",
	"required": ["userId", "projectDetails"],
	"properties": {
		"userId": {"type": "string", "minLength": 1},
		"projectDetails": {
			"type": "object",
			"required": ["title", "description", "category", "timeline"],
			"properties": {
				"title": {"type": "string", "minLength": 1},
				"description": {"type": "string", "minLength": 1},
				"category": {"type": "string", "minLength": 1},
				"timeline": {"type": "string", "minLength": 1},
				"priority": {"type": "string", "enum": ["low", "medium", "high", "urgent"]},
				"techStack": {"type": "array", "items": {"type": "string"}}
			}
		},
		"pricing": {
			"type": "object",
			"properties": {
				"type": {"type": "string", "enum": ["fixed", "milestone", "hourly"]},
				"currency": {"type": "string", "enum": ["USD", "KES"]}
			}
		}
	}
}`

const anonymousSchema = `{
	"type": "object",
	"required": ["userInfo", "projectDetails"],
	"properties": {
		"userInfo": {
			"type": "object",
			"required": ["firstName", "lastName", "email", "phone"],
			"properties": {
				"firstName": {"type": "string", "minLength": 1},
				"lastName": {"type": "string", "minLength": 1},
				"email": {"type": "string", "minLength": 3},
				"phone": {"type": "string", "minLength": 1},
				"company": {"type": "string"}
			}
		},
		"projectDetails": {
			"type": "object",
			"required": ["title", "description", "category", "timeline"],
			"properties": {
				"title": {"type": "string", "minLength": 1},
				"description": {"type": "string", "minLength": 1},
				"category": {"type": "string", "minLength": 1},
				"timeline": {"type": "string", "minLength": 1},
				"priority": {"type": "string", "enum": ["low", "medium", "high", "urgent"]},
				"techStack": {"type": "array", "items": {"type": "string"}}
			}
		},
		"pricing": {
			"type": "object",
			"properties": {
				"type": {"type": "string", "enum": ["fixed", "milestone", "hourly"]},
				"currency": {"type": "string", "enum": ["USD", "KES"]}
			}
		}
	}
}`

type SubmissionService struct {
	Client             *mongo.Client
	UsersCollection    *mongo.Collection
	ProjectsCollection *mongo.Collection
	authSchema         *jsonschema.Schema
	anonSchema         *jsonschema.Schema
}

func NewSubmissionService(client *mongo.Client, usersCollection, projectsCollection *mongo.Collection) (*SubmissionService, error) {
	auth := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(authenticatedSchema), auth); err != nil {
		return nil, fmt.Errorf("failed to compile authenticated submission schema: %v", err)
	}
	anon := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(anonymousSchema), anon); err != nil {
		return nil, fmt.Errorf("failed to compile anonymous submission schema: %v", err)
	}
	return &SubmissionService{
		Client:             client,
		UsersCollection:    usersCollection,
		ProjectsCollection: projectsCollection,
		authSchema:         auth,
		anonSchema:         anon,
	}, nil
}

// ParseSubmission decodes and schema-checks a raw payload. Every failed
// field is collected into the returned ValidationError so the caller can
// surface the whole map, not just the first problem.
func (s *SubmissionService) ParseSubmission(ctx context.Context, body []byte) (*models.Submission, error) {
	var sub models.Submission
	if err := json.Unmarshal(body, &sub); err != nil {
		return nil, models.NewValidationError("body", "invalid JSON payload")
	}

	schema := s.anonSchema
	if sub.IsAuthenticated() {
		schema = s.authSchema
	}

	keyErrs, err := schema.ValidateBytes(ctx, body)
	if err != nil {
		return nil, models.NewValidationError("body", "payload could not be validated")
	}
	if len(keyErrs) > 0 {
		vErr := &models.ValidationError{}
		for _, ke := range keyErrs {
			field := strings.ReplaceAll(strings.TrimPrefix(ke.PropertyPath, "/"), "/", ".")
			if field == "" {
				field = "body"
			}
			vErr.Add(field, ke.Message)
		}
		return nil, vErr
	}

	if err := validatePricing(&sub); err != nil {
		return nil, err
	}
	if !sub.IsAuthenticated() && !strings.Contains(sub.UserInfo.Email, "@") {
		return nil, models.NewValidationError("userInfo.email", "invalid email address")
	}

	return &sub, nil
}

func validatePricing(sub *models.Submission) error {
	vErr := &models.ValidationError{}
	switch sub.Pricing.Type {
	case models.PricingFixed:
		if strings.TrimSpace(sub.Pricing.FixedBudget) == "" {
			vErr.Add("pricing.fixedBudget", "fixed budget is required for fixed pricing")
		}
	case models.PricingHourly:
		if strings.TrimSpace(sub.Pricing.HourlyRate) == "" {
			vErr.Add("pricing.hourlyRate", "hourly rate is required for hourly pricing")
		}
		if strings.TrimSpace(sub.Pricing.EstimatedHours) == "" {
			vErr.Add("pricing.estimatedHours", "estimated hours are required for hourly pricing")
		}
	}
	if vErr.HasErrors() {
		return vErr
	}
	return nil
}

// BuildProject normalizes a validated submission into a new pending
// project. Defaults: techStack -> empty, priority -> low, pricing type ->
// fixed, currency -> USD. Milestone-type pricing stamps each milestone
// pending with a dense 1-based order.
func BuildProject(sub *models.Submission, clientID primitive.ObjectID, now time.Time) *models.Project {
	details := sub.ProjectDetails
	if details.TechStack == nil {
		details.TechStack = []string{}
	}
	if details.Priority == "" {
		details.Priority = "low"
	}

	pricing := models.Pricing{
		Type:           sub.Pricing.Type,
		Currency:       sub.Pricing.Currency,
		FixedBudget:    sub.Pricing.FixedBudget,
		HourlyRate:     sub.Pricing.HourlyRate,
		EstimatedHours: sub.Pricing.EstimatedHours,
	}
	if pricing.Type == "" {
		pricing.Type = models.PricingFixed
	}
	if pricing.Currency == "" {
		pricing.Currency = models.CurrencyUSD
	}

	milestones := []models.Milestone{}
	if pricing.Type == models.PricingMilestone {
		for i, in := range sub.Pricing.Milestones {
			deliverables := in.Deliverables
			if deliverables == nil {
				deliverables = []string{}
			}
			milestones = append(milestones, models.Milestone{
				ID:           uuid.New().String(),
				Title:        in.Title,
				Description:  in.Description,
				Budget:       in.Budget,
				Timeline:     in.Timeline,
				Status:       models.MilestonePending,
				DueDate:      nil,
				CompletedAt:  nil,
				Order:        i + 1,
				Deliverables: deliverables,
				SubmittedBy:  models.SubmittedByClient,
			})
		}
	}

	return &models.Project{
		ClientID:       clientID,
		SubmissionID:   sub.SubmissionID,
		Status:         models.StatusPending,
		Progress:       0,
		ProjectDetails: details,
		Pricing:        pricing,
		Milestones:     milestones,
		Payments:       []models.Payment{},
		Updates:        []models.ProjectUpdate{},
		Files:          []models.ProjectFile{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// CreateProject runs the onboarding side effects for a validated
// submission: resolve or create the owning user, bump their
// projectsCount and insert the new project. Both writes run inside one
// session transaction so a crash cannot leave an orphaned count
// increment. A repeated submissionId returns the original project
// instead of inserting a second one.
func (s *SubmissionService) CreateProject(ctx context.Context, sub *models.Submission) (string, bool, error) {
	if sub.SubmissionID != "" {
		var existing models.Project
		err := s.ProjectsCollection.FindOne(ctx, bson.M{"submissionId": sub.SubmissionID}).Decode(&existing)
		if err == nil {
			logging.Logger.Infof("Event ID: SUBMISSION_REPLAYED, Description: Submission %s already created project %s", sub.SubmissionID, existing.ID.Hex())
			return existing.ID.Hex(), false, nil
		}
		if err != mongo.ErrNoDocuments {
			return "", false, fmt.Errorf("failed to check submission id: %v", err)
		}
	}

	session, err := s.Client.StartSession()
	if err != nil {
		return "", false, fmt.Errorf("failed to start session: %v", err)
	}
	defer session.EndSession(ctx)

	var insertedID string
	var isNewUser bool

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		now := time.Now()

		var clientID primitive.ObjectID
		if sub.IsAuthenticated() {
			oid, err := primitive.ObjectIDFromHex(sub.UserID)
			if err != nil {
				return nil, models.NewValidationError("userId", "invalid user ID format")
			}
			result, err := s.UsersCollection.UpdateOne(sc, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"projectsCount": 1}})
			if err != nil {
				return nil, fmt.Errorf("failed to update user: %v", err)
			}
			if result.MatchedCount == 0 {
				return nil, fmt.Errorf("user: %w", models.ErrNotFound)
			}
			clientID = oid
		} else {
			email := strings.ToLower(strings.TrimSpace(sub.UserInfo.Email))
			var existing models.User
			err := s.UsersCollection.FindOne(sc, bson.M{"email": email}).Decode(&existing)
			switch {
			case err == mongo.ErrNoDocuments:
				user := models.User{
					ID:            primitive.NewObjectID(),
					FirstName:     sub.UserInfo.FirstName,
					LastName:      sub.UserInfo.LastName,
					Email:         email,
					Phone:         sub.UserInfo.Phone,
					Company:       sub.UserInfo.Company,
					Role:          models.RoleClient,
					Status:        "active",
					ProjectsCount: 1,
					IsActive:      true,
					CreatedAt:     now,
				}
				if _, err := s.UsersCollection.InsertOne(sc, user); err != nil {
					return nil, fmt.Errorf("failed to create user: %v", err)
				}
				clientID = user.ID
				isNewUser = true
			case err != nil:
				return nil, fmt.Errorf("failed to look up user: %v", err)
			default:
				if _, err := s.UsersCollection.UpdateOne(sc, bson.M{"_id": existing.ID}, bson.M{"$inc": bson.M{"projectsCount": 1}}); err != nil {
					return nil, fmt.Errorf("failed to update user: %v", err)
				}
				clientID = existing.ID
			}
		}

		project := BuildProject(sub, clientID, now)
		project.ID = primitive.NewObjectID()
		if _, err := s.ProjectsCollection.InsertOne(sc, project); err != nil {
			return nil, fmt.Errorf("failed to create project: %v", err)
		}
		insertedID = project.ID.Hex()
		return nil, nil
	})
	if err != nil {
		// The unique submissionId index catches retries that raced past
		// the read above; hand back the project the winner inserted.
		if sub.SubmissionID != "" && mongo.IsDuplicateKeyError(err) {
			var existing models.Project
			if findErr := s.ProjectsCollection.FindOne(ctx, bson.M{"submissionId": sub.SubmissionID}).Decode(&existing); findErr == nil {
				logging.Logger.Infof("Event ID: SUBMISSION_REPLAYED, Description: Submission %s already created project %s", sub.SubmissionID, existing.ID.Hex())
				return existing.ID.Hex(), false, nil
			}
		}
		return "", false, err
	}

	logging.Logger.Infof("Event ID: PROJECT_SUBMITTED, Description: Project %s created (new user: %v)", insertedID, isNewUser)
	return insertedID, isNewUser, nil
}
