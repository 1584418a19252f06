package datasource_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vanderheijden86/workdeck/internal/datasource"
	"github.com/vanderheijden86/workdeck/pkg/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile_BareArray(t *testing.T) {
	path := writeFile(t, "issues.json", `[
		{"id":"a","key":"WD-1","summary":"First","status":"TO DO",
		 "startDate":"2025-06-01","dueDate":"2025-06-20","targetDate":"2025-06-15"},
		{"id":"b","key":"WD-2","summary":"Second","status":"DONE",
		 "startDate":"2025-06-02","dueDate":"2025-06-25","targetDate":"2025-06-18"}
	]`)

	c, err := datasource.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if len(c.Issues) != 2 {
		t.Fatalf("len(Issues) = %d, want 2", len(c.Issues))
	}
	if c.Issues[1].Status != model.StatusDone {
		t.Errorf("Issues[1].Status = %q, want %q", c.Issues[1].Status, model.StatusDone)
	}
	if c.Path != path {
		t.Errorf("Path = %q, want %q", c.Path, path)
	}
}

func TestLoadFile_WrappedObject(t *testing.T) {
	path := writeFile(t, "issues.json", `{"issues":[
		{"id":"a","key":"WD-1","summary":"Only one","status":"IN PROGRESS",
		 "startDate":"2025-06-01","dueDate":"2025-06-20","targetDate":"2025-06-15"}
	]}`)

	c, err := datasource.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if len(c.Issues) != 1 {
		t.Fatalf("len(Issues) = %d, want 1", len(c.Issues))
	}
}

func TestLoadFile_InvalidJSON(t *testing.T) {
	path := writeFile(t, "issues.json", `{"issues": [`)
	if _, err := datasource.LoadFile(path); err == nil {
		t.Error("expected an error for truncated JSON")
	}
}

func TestLoadFile_ValidationFailure(t *testing.T) {
	path := writeFile(t, "issues.json", `[
		{"id":"a","key":"WD-1","summary":"Bad status","status":"BLOCKED",
		 "startDate":"2025-06-01","dueDate":"2025-06-20","targetDate":"2025-06-15"}
	]`)
	if _, err := datasource.LoadFile(path); err == nil {
		t.Error("expected a validation error for an unknown status")
	}
}

func TestLoadFile_MissingRequiredDates(t *testing.T) {
	// startDate, dueDate and targetDate are mandatory; everything else is
	// optional.
	path := writeFile(t, "issues.json", `[
		{"id":"a","key":"WD-1","summary":"No schedule","status":"TO DO"}
	]`)
	if _, err := datasource.LoadFile(path); err == nil {
		t.Error("expected a validation error for missing schedule dates")
	}
}

func TestLoadFile_SharedRoster(t *testing.T) {
	path := writeFile(t, "issues.json", `[
		{"id":"a","key":"WD-1","summary":"One","status":"TO DO",
		 "startDate":"2025-06-01","dueDate":"2025-06-20","targetDate":"2025-06-15",
		 "assignee":{"id":"u1","name":"Zoe"}},
		{"id":"b","key":"WD-2","summary":"Two","status":"TO DO",
		 "startDate":"2025-06-01","dueDate":"2025-06-20","targetDate":"2025-06-15",
		 "assignee":{"id":"u1","name":"Zoe"}},
		{"id":"c","key":"WD-3","summary":"Three","status":"TO DO",
		 "startDate":"2025-06-01","dueDate":"2025-06-20","targetDate":"2025-06-15",
		 "assignee":{"id":"u2","name":"Ali"}}
	]`)

	c, err := datasource.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}

	if c.Issues[0].Assignee != c.Issues[1].Assignee {
		t.Error("issues with the same assignee ID should share one record")
	}
	if len(c.Roster) != 2 {
		t.Fatalf("len(Roster) = %d, want 2", len(c.Roster))
	}
	// Name-sorted.
	if c.Roster[0].Name != "Ali" || c.Roster[1].Name != "Zoe" {
		t.Errorf("roster order = [%s %s], want [Ali Zoe]", c.Roster[0].Name, c.Roster[1].Name)
	}
}

func TestLoadFile_BlankAssigneeID(t *testing.T) {
	path := writeFile(t, "issues.json", `[
		{"id":"a","key":"WD-1","summary":"Ghost owner","status":"TO DO",
		 "startDate":"2025-06-01","dueDate":"2025-06-20","targetDate":"2025-06-15",
		 "assignee":{"id":"","name":"Nobody"}}
	]`)

	c, err := datasource.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if c.Issues[0].Assignee != nil {
		t.Error("blank assignee ID should normalize to unassigned")
	}
	if len(c.Roster) != 0 {
		t.Errorf("len(Roster) = %d, want 0", len(c.Roster))
	}
}

func TestLoad_EmptyPathReturnsSample(t *testing.T) {
	c, err := datasource.Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if len(c.Issues) == 0 {
		t.Fatal("sample collection should not be empty")
	}
	if c.Path != "" {
		t.Errorf("sample Path = %q, want empty", c.Path)
	}
	for i := range c.Issues {
		if err := c.Issues[i].Validate(); err != nil {
			t.Errorf("sample issue %s invalid: %v", c.Issues[i].Key, err)
		}
	}
	if len(c.Roster) == 0 {
		t.Error("sample roster should not be empty")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	issues := []model.Issue{
		{
			ID: "a", Key: "WD-1", Summary: "Round trip", Status: model.StatusTodo,
			StartDate: "2025-06-01", DueDate: "2025-06-20", TargetDate: "2025-06-15",
		},
	}
	if err := datasource.Save(path, issues); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	c, err := datasource.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if len(c.Issues) != 1 || c.Issues[0].Key != "WD-1" {
		t.Errorf("round trip lost data: %+v", c.Issues)
	}
}
