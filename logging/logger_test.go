package logging_test

import (
	"strings"
	"testing"
	"time"

	"github.com/Charanos/andishi-mvp-sub001/logging"

	"github.com/sirupsen/logrus"
)

func TestCustomFormatter_Format(t *testing.T) {
	f := &logging.CustomFormatter{SystemName: "projects-service"}
	entry := &logrus.Entry{
		Time:    time.Date(2026, 8, 29, 14, 30, 0, 0, time.UTC),
		Level:   logrus.InfoLevel,
		Message: "Event ID: PROJECT_SUBMITTED, Description: Project created",
	}

	out, err := f.Format(entry)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	line := string(out)

	if !strings.HasPrefix(line, "Date: 2026-08-29, Time: 14:30:00, ") {
		t.Errorf("unexpected timestamp prefix: %q", line)
	}
	if !strings.Contains(line, "Event Source: projects-service, ") {
		t.Errorf("expected event source in line: %q", line)
	}
	if !strings.Contains(line, "Event Type: INFO, ") {
		t.Errorf("expected level in line: %q", line)
	}
	if !strings.Contains(line, "Message: Event ID: PROJECT_SUBMITTED, Description: Project created") {
		t.Errorf("expected message in line: %q", line)
	}
	if !strings.HasSuffix(line, "\n") {
		t.Errorf("expected newline-terminated line: %q", line)
	}
}
