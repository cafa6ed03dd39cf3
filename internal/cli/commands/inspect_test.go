package commands

import (
	"context"
	"reflect"
	"testing"
)

func TestSortedTags(t *testing.T) {
	counts := map[string]int{"SUBM": 1, "NOTE": 3, "OBJE": 2, "REPO": 1}

	want := []string{"NOTE", "OBJE", "REPO", "SUBM"}
	for i := 0; i < 10; i++ {
		if got := sortedTags(counts); !reflect.DeepEqual(got, want) {
			t.Fatalf("sortedTags() = %v, want %v", got, want)
		}
	}
}

func TestSortedTags_Empty(t *testing.T) {
	if got := sortedTags(map[string]int{}); len(got) != 0 {
		t.Errorf("sortedTags() = %v, want empty", got)
	}
}

func TestRunInspect(t *testing.T) {
	resetExitCode(t)
	tmpDir := t.TempDir()
	gedPath := writeTestFile(t, tmpDir, "family.ged", validGedcom+"0 @N1@ NOTE remark\n")

	cmd := NewInspectCommand()
	cmd.SetArgs([]string{gedPath})

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
}
