package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"

	"trainingLog/internal/config"
)

func TestNewWithOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithOutput(config.LogConfig{Level: "debug", Format: "json"}, &buf)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if log.GetLevel() != logrus.DebugLevel {
		t.Fatalf("level = %v", log.GetLevel())
	}
	log.WithField("workout_id", 7).Info("created")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if entry["msg"] != "created" || entry["workout_id"] != float64(7) {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestNewWithOutput_Rejects(t *testing.T) {
	if _, err := NewWithOutput(config.LogConfig{Level: "loud"}, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for bad level")
	}
	if _, err := NewWithOutput(config.LogConfig{Format: "xml"}, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for bad format")
	}
}
