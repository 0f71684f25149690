package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"cornell-empty", "Cornell Empty"},
		{"mirror_hall", "Mirror Hall"},
		{"my-custom-scene", "My Custom Scene"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			if result := titleCase(tc.input); result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestParseSceneMetadata(t *testing.T) {
	dir := t.TempDir()

	testCases := []struct {
		name     string
		content  string
		expected SceneInfo
	}{
		{
			name: "complete_metadata.txt",
			content: `// Scene: Mirror Hall
// Description: Two facing mirrors
// Group: Mirrors

sphere
P 0 0 0
R 1
C #ffff`,
			expected: SceneInfo{
				ID:          "file:complete_metadata",
				Name:        "Mirror Hall",
				Description: "Two facing mirrors",
				Group:       "Mirrors",
				Type:        "file",
			},
		},
		{
			name:    "no_metadata.txt",
			content: "sphere\nP 0 0 0\nR 1\nC #ffff\n// Scene: ignored after geometry",
			expected: SceneInfo{
				ID:    "file:no_metadata",
				Name:  "No Metadata",
				Group: "Scene Files",
				Type:  "file",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name)
			if err := os.WriteFile(path, []byte(tc.content), 0644); err != nil {
				t.Fatalf("Failed to write scene file: %v", err)
			}

			result, err := ParseSceneMetadata(path)
			if err != nil {
				t.Fatalf("ParseSceneMetadata() error: %v", err)
			}

			tc.expected.FilePath = path
			if diff := cmp.Diff(tc.expected, result); diff != "" {
				t.Errorf("ParseSceneMetadata() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestListSceneFiles_MissingDirectory(t *testing.T) {
	scenes, err := ListSceneFiles(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("ListSceneFiles() error: %v", err)
	}
	if scenes == nil || len(scenes) != 0 {
		t.Errorf("Expected empty non-nil list, got %v", scenes)
	}
}

func TestListAllScenes(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b.txt":     "// Scene: Beta\n// Group: Extra\n",
		"a.txt":     "// Scene: Alpha\n",
		"notes.md":  "ignored",
		"gamma.txt": "",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	response, err := ListAllScenes(dir)
	if err != nil {
		t.Fatalf("ListAllScenes() error: %v", err)
	}

	var names []string
	for _, group := range response.Groups {
		names = append(names, group.Name)
	}
	if diff := cmp.Diff([]string{"Built-in Scenes", "Extra", "Scene Files"}, names); diff != "" {
		t.Errorf("Group order mismatch (-want +got):\n%s", diff)
	}

	if got := len(response.Groups[0].Scenes); got != len(BuiltinScenes()) {
		t.Errorf("Built-in scenes count = %d, want %d", got, len(BuiltinScenes()))
	}

	var fileScenes []string
	for _, info := range response.Groups[2].Scenes {
		fileScenes = append(fileScenes, info.Name)
	}
	if diff := cmp.Diff([]string{"Alpha", "Gamma"}, fileScenes); diff != "" {
		t.Errorf("Scene files mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadByID(t *testing.T) {
	dir := t.TempDir()
	content := "// Scene: Lit Ball\nsphere\n  P 0 0 0\n  R 1\n  C #ffff\npoint\n  P 0 5 0\n  CG #ffff 100\n  F 1\n"
	if err := os.WriteFile(filepath.Join(dir, "ball.txt"), []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	sampling := DefaultSamplingConfig()

	s, err := LoadByID("file:ball", dir, sampling)
	if err != nil {
		t.Fatalf("LoadByID(file:ball) failed: %v", err)
	}
	if len(s.Objects) != 1 || len(s.Lights) != 1 {
		t.Errorf("Expected 1 object and 1 light, got %d and %d", len(s.Objects), len(s.Lights))
	}
	if diff := cmp.Diff(DefaultCameraConfig(), s.Camera); diff != "" {
		t.Errorf("File scenes should use the default camera (-want +got):\n%s", diff)
	}

	if _, err := LoadByID("cornell", dir, sampling); err != nil {
		t.Errorf("LoadByID(cornell) failed: %v", err)
	}

	for _, id := range []string{"file:", "file:../ball", "file:missing", "nope"} {
		if _, err := LoadByID(id, dir, sampling); err == nil {
			t.Errorf("LoadByID(%q) should fail", id)
		}
	}
}
