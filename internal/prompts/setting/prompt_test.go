package setting

import (
	"strings"
	"testing"
)

func TestBuildRequest(t *testing.T) {
	req := BuildRequest("The lighthouse keeper climbed the stairs.")

	if len(req.Messages) != 2 {
		t.Fatalf("expected system+user messages, got %d", len(req.Messages))
	}
	if req.Messages[0].Role != "system" || req.Messages[1].Role != "user" {
		t.Errorf("unexpected roles: %s, %s", req.Messages[0].Role, req.Messages[1].Role)
	}
	if !strings.Contains(req.Messages[1].Content, "The lighthouse keeper climbed the stairs.") {
		t.Error("user prompt missing the page text")
	}
}

func TestValidateOutput(t *testing.T) {
	valid := "setting_location: lighthouse\nsetting_environment: coastal"
	if err := ValidateOutput(valid); err != nil {
		t.Errorf("expected valid output, got %v", err)
	}

	if err := ValidateOutput("setting_location: lighthouse"); err == nil {
		t.Error("expected error for missing environment line")
	}
	if err := ValidateOutput("the scene is a lighthouse"); err == nil {
		t.Error("expected error for unlabelled output")
	}
}
