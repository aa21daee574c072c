package model

import (
	"errors"
	"testing"
	"time"
)

var testNow = time.Date(2025, 5, 21, 14, 30, 0, 0, time.UTC)

// TestNewProject tests the NewProject constructor
func TestNewProject(t *testing.T) {
	project, err := NewProject("Smith Wedding", "2025-06-01", testNow)
	if err != nil {
		t.Fatalf("Failed to create project: %v", err)
	}

	// IDが自動生成されているか確認
	if project.ID == "" {
		t.Error("Expected non-empty ID")
	}

	if project.Name != "Smith Wedding" {
		t.Errorf("Expected name %s, got %s", "Smith Wedding", project.Name)
	}

	if project.Date.String() != "2025-06-01" {
		t.Errorf("Expected date 2025-06-01, got %s", project.Date)
	}

	// 新規作成時は全タスク未完了
	if project.Tasks != (Tasks{}) {
		t.Errorf("Expected all tasks false, got %+v", project.Tasks)
	}
	if project.Progress != 0 || project.Completed {
		t.Errorf("Expected progress 0 and not completed, got %d/%v", project.Progress, project.Completed)
	}

	if !project.CreatedAt.Equal(testNow) {
		t.Errorf("Expected CreatedAt %v, got %v", testNow, project.CreatedAt)
	}

	// タスク更新前は LastModified は未設定
	if project.LastModified != nil {
		t.Errorf("Expected LastModified to be nil, got %v", project.LastModified)
	}
}

// TestNewProjectUniqueID tests that every project gets its own ID
func TestNewProjectUniqueID(t *testing.T) {
	seen := make(map[ProjectID]bool)
	for range 100 {
		p, err := NewProject("p", "2025-01-01", testNow)
		if err != nil {
			t.Fatalf("Failed to create project: %v", err)
		}
		if seen[p.ID] {
			t.Fatalf("Duplicate ID %s", p.ID)
		}
		seen[p.ID] = true
	}
}

// TestNewProjectValidation tests that NewProject rejects missing input
func TestNewProjectValidation(t *testing.T) {
	tests := []struct {
		name        string
		projectName string
		date        string
		field       string
	}{
		{name: "Empty name", projectName: "", date: "2025-01-01", field: "name"},
		{name: "Blank name", projectName: "   ", date: "2025-01-01", field: "name"},
		{name: "Empty date", projectName: "Smith", date: "", field: "date"},
		{name: "Unparseable date", projectName: "Smith", date: "next june", field: "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProject(tt.projectName, tt.date, testNow)
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("Expected ValidationError, got %v", err)
			}
			if validationErr.Field != tt.field {
				t.Errorf("Expected field %s, got %s", tt.field, validationErr.Field)
			}
		})
	}
}

// TestSetTaskProgress tests that progress follows the number of completed tasks
func TestSetTaskProgress(t *testing.T) {
	project, err := NewProject("Smith Wedding", "2025-06-01", testNow)
	if err != nil {
		t.Fatalf("Failed to create project: %v", err)
	}

	steps := []struct {
		key       TaskKey
		progress  int
		completed bool
	}{
		{TaskCull, 25, false},
		{TaskSpeeches, 50, false},
		{TaskFeatureFilm, 75, false},
		{TaskShortFilm, 100, true},
	}

	for i, step := range steps {
		became, _, err := project.SetTask(step.key, true, testNow.Add(time.Duration(i)*time.Minute))
		if err != nil {
			t.Fatalf("SetTask(%s) failed: %v", step.key, err)
		}
		if project.Progress != step.progress {
			t.Errorf("After %s: expected progress %d, got %d", step.key, step.progress, project.Progress)
		}
		if project.Completed != step.completed {
			t.Errorf("After %s: expected completed %v, got %v", step.key, step.completed, project.Completed)
		}
		if became != step.completed {
			t.Errorf("After %s: expected becameComplete %v, got %v", step.key, step.completed, became)
		}
	}
}

// TestSetTaskTransitions tests the completion state machine
func TestSetTaskTransitions(t *testing.T) {
	project, err := LoadProject("p1", "Jones", mustDate("2025-07-01"),
		Tasks{Cull: true, Speeches: true, FeatureFilm: true}, testNow, nil)
	if err != nil {
		t.Fatalf("Failed to load project: %v", err)
	}

	became, lost, _ := project.SetTask(TaskShortFilm, true, testNow)
	if !became || lost {
		t.Errorf("Expected INCOMPLETE->COMPLETE, got became=%v lost=%v", became, lost)
	}

	// 既に完了している状態で同じ値を設定しても遷移しない
	became, lost, _ = project.SetTask(TaskShortFilm, true, testNow)
	if became || lost {
		t.Errorf("Expected no transition, got became=%v lost=%v", became, lost)
	}
	if project.Progress != 100 {
		t.Errorf("Expected progress 100, got %d", project.Progress)
	}

	became, lost, _ = project.SetTask(TaskCull, false, testNow)
	if became || !lost {
		t.Errorf("Expected COMPLETE->INCOMPLETE, got became=%v lost=%v", became, lost)
	}
	if project.Progress != 75 || project.Completed {
		t.Errorf("Expected 75/false, got %d/%v", project.Progress, project.Completed)
	}
}

// TestSetTaskStampsLastModified tests that every task write updates LastModified
func TestSetTaskStampsLastModified(t *testing.T) {
	project, _ := NewProject("Smith", "2025-06-01", testNow)
	later := testNow.Add(time.Hour)

	if _, _, err := project.SetTask(TaskCull, false, later); err != nil {
		t.Fatalf("SetTask failed: %v", err)
	}
	if project.LastModified == nil || !project.LastModified.Equal(later) {
		t.Errorf("Expected LastModified %v, got %v", later, project.LastModified)
	}
	if project.Progress != 0 {
		t.Errorf("Expected progress unchanged at 0, got %d", project.Progress)
	}
}

// TestSetTaskInvalidKey tests that unknown keys leave the project untouched
func TestSetTaskInvalidKey(t *testing.T) {
	project, _ := NewProject("Smith", "2025-06-01", testNow)

	_, _, err := project.SetTask(TaskKey("colorGrade"), true, testNow)
	var keyErr *InvalidTaskKeyError
	if !errors.As(err, &keyErr) {
		t.Fatalf("Expected InvalidTaskKeyError, got %v", err)
	}
	if project.LastModified != nil {
		t.Error("Expected LastModified to stay nil after a rejected update")
	}
}

// TestLoadProjectRecomputesDerivedFields tests that stored progress is never trusted
func TestLoadProjectRecomputesDerivedFields(t *testing.T) {
	project, err := LoadProject("p1", "Jones", mustDate("2025-07-01"),
		Tasks{Cull: true, ShortFilm: true}, testNow, nil)
	if err != nil {
		t.Fatalf("Failed to load project: %v", err)
	}
	if project.Progress != 50 {
		t.Errorf("Expected progress 50, got %d", project.Progress)
	}
	if project.Completed {
		t.Error("Expected project to be incomplete")
	}
}

// TestProjectValidate tests the Validate method
func TestProjectValidate(t *testing.T) {
	tests := []struct {
		name        string
		project     *Project
		expectError bool
		description string
	}{
		{
			name: "Valid project",
			project: &Project{
				ID:        "p1",
				Name:      "valid-project",
				Date:      mustDate("2025-06-01"),
				CreatedAt: testNow,
			},
			expectError: false,
			description: "正常なプロジェクトは検証をパスすること",
		},
		{
			name: "Empty ID",
			project: &Project{
				Name:      "project",
				Date:      mustDate("2025-06-01"),
				CreatedAt: testNow,
			},
			expectError: true,
			description: "IDが空の場合はエラーになること",
		},
		{
			name: "Empty name",
			project: &Project{
				ID:        "p1",
				Date:      mustDate("2025-06-01"),
				CreatedAt: testNow,
			},
			expectError: true,
			description: "名前が空の場合はエラーになること",
		},
		{
			name: "Zero date",
			project: &Project{
				ID:        "p1",
				Name:      "project",
				CreatedAt: testNow,
			},
			expectError: true,
			description: "日付がゼロ値の場合はエラーになること",
		},
		{
			name: "Zero CreatedAt",
			project: &Project{
				ID:   "p1",
				Name: "project",
				Date: mustDate("2025-06-01"),
			},
			expectError: true,
			description: "CreatedAtがゼロ値の場合はエラーになること",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.project.Validate()
			if tt.expectError {
				if err == nil {
					t.Errorf("%s: expected error but got nil", tt.description)
				}
			} else {
				if err != nil {
					t.Errorf("%s: unexpected error: %v", tt.description, err)
				}
			}
		})
	}
}

// TestSnapshotIsCopy tests that snapshots do not alias the project
func TestSnapshotIsCopy(t *testing.T) {
	project, _ := NewProject("Smith", "2025-06-01", testNow)
	project.SetTask(TaskCull, true, testNow)

	snap := project.Snapshot()
	*snap.LastModified = time.Time{}
	snap.Tasks.Speeches = true

	if project.LastModified.IsZero() {
		t.Error("Modifying the snapshot changed the project's LastModified")
	}
	if project.Tasks.Speeches {
		t.Error("Modifying the snapshot changed the project's tasks")
	}
	if snap.DateFormatted != "June 1, 2025" {
		t.Errorf("Expected dateFormatted June 1, 2025, got %s", snap.DateFormatted)
	}
}
