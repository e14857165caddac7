package main

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestUserEmailIndexModel(t *testing.T) {
	model := userEmailIndexModel()
	keys, ok := model.Keys.(bson.M)
	if !ok || keys["email"] != 1 {
		t.Fatalf("expected ascending key on email, got %v", model.Keys)
	}
	if model.Options.Unique == nil || !*model.Options.Unique {
		t.Error("expected unique index on user email")
	}
}

func TestProjectSubmissionIndexModel(t *testing.T) {
	model := projectSubmissionIndexModel()
	keys, ok := model.Keys.(bson.M)
	if !ok || keys["submissionId"] != 1 {
		t.Fatalf("expected ascending key on submissionId, got %v", model.Keys)
	}
	if model.Options.Unique == nil || !*model.Options.Unique {
		t.Error("expected unique index on submissionId")
	}
	if model.Options.Sparse == nil || !*model.Options.Sparse {
		t.Error("expected sparse index so documents without a submissionId are skipped")
	}
}
