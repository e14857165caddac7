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

type PaymentService struct {
	ProjectsCollection *mongo.Collection
}

func NewPaymentService(projectsCollection *mongo.Collection) *PaymentService {
	return &PaymentService{ProjectsCollection: projectsCollection}
}

type PaymentInput struct {
	Amount      float64 `json:"amount"`
	Method      string  `json:"method"`
	Currency    string  `json:"currency,omitempty"`
	Description string  `json:"description,omitempty"`
	Notes       string  `json:"notes,omitempty"`
	InvoiceURL  string  `json:"invoiceUrl,omitempty"`
}

func (s *PaymentService) loadProject(ctx context.Context, projectID string) (*models.Project, error) {
	ps := &ProjectService{ProjectsCollection: s.ProjectsCollection}
	return ps.GetProjectByID(ctx, projectID)
}

func (s *PaymentService) findPayment(project *models.Project, paymentID string) (*models.Payment, error) {
	for i := range project.Payments {
		if project.Payments[i].ID == paymentID {
			return &project.Payments[i], nil
		}
	}
	return nil, fmt.Errorf("payment: %w", models.ErrNotFound)
}

func (s *PaymentService) savePayment(ctx context.Context, project *models.Project, p *models.Payment) error {
	filter := bson.M{"_id": project.ID, "payments.id": p.ID}
	update := bson.M{"$set": bson.M{"payments.$": p, "updatedAt": time.Now()}}
	result, err := s.ProjectsCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update payment: %v", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("payment: %w", models.ErrNotFound)
	}
	return nil
}

// RecordPayment appends a payment. Client-submitted payments wait in the
// approval queue; admin-recorded ones are approved immediately.
func (s *PaymentService) RecordPayment(ctx context.Context, projectID string, input PaymentInput, submittedBy string) (*models.Payment, error) {
	if input.Amount <= 0 {
		return nil, models.NewValidationError("amount", "payment amount must be greater than zero")
	}
	if input.Method == "" {
		return nil, models.NewValidationError("method", "payment method is required")
	}
	if input.Currency != "" && input.Currency != models.CurrencyUSD && input.Currency != models.CurrencyKES {
		return nil, models.NewValidationError("currency", "currency must be USD or KES")
	}

	project, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	status := models.PaymentPending
	if submittedBy == models.SubmittedByAdmin {
		status = models.PaymentApproved
	}
	currency := input.Currency
	if currency == "" {
		currency = project.Pricing.Currency
	}
	payment := models.Payment{
		ID:          uuid.New().String(),
		Amount:      input.Amount,
		Date:        time.Now(),
		Method:      input.Method,
		Currency:    currency,
		Status:      status,
		Description: input.Description,
		Notes:       input.Notes,
		SubmittedBy: submittedBy,
		InvoiceURL:  input.InvoiceURL,
	}

	update := bson.M{
		"$push": bson.M{"payments": payment},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	if _, err := s.ProjectsCollection.UpdateOne(ctx, bson.M{"_id": project.ID}, update); err != nil {
		return nil, fmt.Errorf("failed to record payment: %v", err)
	}

	logging.Logger.Infof("Event ID: PAYMENT_RECORDED, Description: Payment of %.2f %s recorded on project %s by %s", payment.Amount, payment.Currency, projectID, submittedBy)
	return &payment, nil
}

func (s *PaymentService) ApprovePayment(ctx context.Context, projectID, paymentID, adminName string) (*models.Payment, error) {
	project, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	payment, err := s.findPayment(project, paymentID)
	if err != nil {
		return nil, err
	}
	if err := payment.Approve(adminName, time.Now()); err != nil {
		return nil, err
	}
	if err := s.savePayment(ctx, project, payment); err != nil {
		return nil, err
	}
	logging.Logger.Infof("Event ID: PAYMENT_APPROVED, Description: Payment %s on project %s approved by %s", paymentID, projectID, adminName)
	return payment, nil
}

func (s *PaymentService) RejectPayment(ctx context.Context, projectID, paymentID, adminName, reason string) (*models.Payment, error) {
	project, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	payment, err := s.findPayment(project, paymentID)
	if err != nil {
		return nil, err
	}
	if err := payment.Reject(adminName, reason, time.Now()); err != nil {
		return nil, err
	}
	if err := s.savePayment(ctx, project, payment); err != nil {
		return nil, err
	}
	logging.Logger.Infof("Event ID: PAYMENT_REJECTED, Description: Payment %s on project %s rejected by %s", paymentID, projectID, adminName)
	return payment, nil
}
