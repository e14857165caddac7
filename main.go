package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/Charanos/andishi-mvp-sub001/handlers"
	"github.com/Charanos/andishi-mvp-sub001/logging"
	"github.com/Charanos/andishi-mvp-sub001/middleware"
	"github.com/Charanos/andishi-mvp-sub001/services"
	"github.com/Charanos/andishi-mvp-sub001/utils"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// userEmailIndexModel keeps the one-user-per-email guarantee for
// repeated anonymous submissions.
func userEmailIndexModel() mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.M{"email": 1},
		Options: options.Index().SetUnique(true),
	}
}

// projectSubmissionIndexModel backs the submissionId replay check with a
// database-level guarantee, so two racing retries cannot both insert.
// Sparse because projects created before submission IDs existed carry none.
func projectSubmissionIndexModel() mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.M{"submissionId": 1},
		Options: options.Index().SetUnique(true).SetSparse(true),
	}
}

func createUserEmailIndex(collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(context.TODO(), userEmailIndexModel())
	if err != nil {
		return fmt.Errorf("failed to create unique index on user email: %v", err)
	}
	return nil
}

func createProjectSubmissionIndex(collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(context.TODO(), projectSubmissionIndexModel())
	if err != nil {
		return fmt.Errorf("failed to create unique index on project submissionId: %v", err)
	}
	return nil
}

func main() {
	logging.InitLogger()
	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting Projects Service...")

	if err := godotenv.Load(".env"); err != nil {
		logging.Logger.Warnf("Event ID: ENV_LOAD_WARNING, Description: No .env file loaded: %v", err)
	}

	mongoURI := os.Getenv("MONGO_URI")
	mongoDBName := os.Getenv("MONGO_DB_NAME")
	if mongoURI == "" || mongoDBName == "" {
		logging.Logger.Fatal("Event ID: CONFIG_ERROR, Description: MONGO_URI and MONGO_DB_NAME must be set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		logging.Logger.Fatalf("Event ID: DB_CONNECTION_FAILED, Description: Database connection failed: %v", err)
	}
	defer client.Disconnect(context.TODO())

	if err := client.Ping(ctx, nil); err != nil {
		logging.Logger.Fatalf("Event ID: DB_PING_FAILED, Description: MongoDB connection ping error: %v", err)
	}
	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Successfully connected to MongoDB at %s.", mongoURI)

	db := client.Database(mongoDBName)
	usersCollection := db.Collection("users")
	projectsCollection := db.Collection("projects")
	notificationsCollection := db.Collection("notifications")

	if err := createUserEmailIndex(usersCollection); err != nil {
		logging.Logger.Fatalf("Event ID: DB_INDEX_FAILED, Description: %v", err)
	}
	if err := createProjectSubmissionIndex(projectsCollection); err != nil {
		logging.Logger.Fatalf("Event ID: DB_INDEX_FAILED, Description: %v", err)
	}

	notificationsBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "notifications-cb",
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' state changed from %s to %s", name, from.String(), to.String())
		},
	})

	httpClient := utils.NewHTTPClient()
	notificationService := services.NewNotificationService(notificationsCollection, httpClient, notificationsBreaker, os.Getenv("NOTIFICATIONS_WEBHOOK_URL"))

	submissionService, err := services.NewSubmissionService(client, usersCollection, projectsCollection)
	if err != nil {
		logging.Logger.Fatalf("Event ID: SCHEMA_COMPILE_FAILED, Description: %v", err)
	}
	projectService := services.NewProjectService(projectsCollection, usersCollection, notificationService)
	milestoneService := services.NewMilestoneService(projectsCollection)
	paymentService := services.NewPaymentService(projectsCollection)
	updateService := services.NewUpdateService(projectsCollection)
	userService := services.NewUserService(usersCollection)

	submissionHandler := handlers.NewSubmissionHandler(submissionService)
	projectHandler := handlers.NewProjectHandler(projectService)
	milestoneHandler := handlers.NewMilestoneHandler(milestoneService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	updateHandler := handlers.NewUpdateHandler(updateService)
	userHandler := handlers.NewUserHandler(userService, notificationService)

	r := mux.NewRouter()

	// Public submission endpoint.
	r.HandleFunc("/api/projects", submissionHandler.CreateProject).Methods("POST")

	// Client-facing routes: milestone/payment submission, updates, files.
	r.HandleFunc("/api/projects/{id}/milestones", milestoneHandler.AddMilestone).Methods("POST")
	r.HandleFunc("/api/projects/{id}/payments", paymentHandler.RecordPayment).Methods("POST")
	r.HandleFunc("/api/projects/{id}/updates", updateHandler.AddUpdate).Methods("POST")
	r.HandleFunc("/api/projects/{id}/files", updateHandler.AttachFile).Methods("POST")
	r.HandleFunc("/api/users/{id}/notifications", userHandler.GetNotifications).Methods("GET")
	r.HandleFunc("/api/notifications/{notificationId}/read", userHandler.MarkNotificationRead).Methods("PATCH")

	// Admin routes behind JWT auth.
	admin := r.PathPrefix("/api").Subrouter()
	admin.Use(middleware.JWTAuthMiddleware)
	admin.HandleFunc("/projects", projectHandler.ListProjects).Methods("GET")
	admin.HandleFunc("/projects/{id}", projectHandler.GetProjectByID).Methods("GET")
	admin.HandleFunc("/projects/{id}", projectHandler.DeleteProject).Methods("DELETE")
	admin.HandleFunc("/projects/{id}/status", projectHandler.ChangeStatus).Methods("PATCH")
	admin.HandleFunc("/projects/{id}/progress", projectHandler.SetProgress).Methods("PATCH")
	admin.HandleFunc("/projects/{id}/report", projectHandler.GetReport).Methods("GET")
	admin.HandleFunc("/projects/{id}/milestones/{milestoneId}/approve", milestoneHandler.ApproveMilestone).Methods("PATCH")
	admin.HandleFunc("/projects/{id}/milestones/{milestoneId}/reject", milestoneHandler.RejectMilestone).Methods("PATCH")
	admin.HandleFunc("/projects/{id}/milestones/{milestoneId}/toggle", milestoneHandler.ToggleMilestoneProgress).Methods("PATCH")
	admin.HandleFunc("/projects/{id}/milestones/{milestoneId}", milestoneHandler.CancelMilestone).Methods("DELETE")
	admin.HandleFunc("/projects/{id}/payments/{paymentId}/approve", paymentHandler.ApprovePayment).Methods("PATCH")
	admin.HandleFunc("/projects/{id}/payments/{paymentId}/reject", paymentHandler.RejectPayment).Methods("PATCH")
	admin.HandleFunc("/projects/{id}/updates/{updateId}/reply", updateHandler.ReplyToUpdate).Methods("POST")
	admin.HandleFunc("/users", userHandler.ListUsers).Methods("GET")
	admin.HandleFunc("/users/{id}", userHandler.GetUserByID).Methods("GET")

	corsRouter := enableCORS(r)

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}
	serverAddress := fmt.Sprintf(":%s", serverPort)
	logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost%s", serverAddress)

	srv := &http.Server{
		Addr:         serverAddress,
		Handler:      corsRouter,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
	}
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
