package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParser_FindTestCases(t *testing.T) {
	parser := NewParser()

	tmpDir := t.TempDir()

	testFile := filepath.Join(tmpDir, "user.test.ts")
	tsContent := `import { describe, it, expect } from "vitest";

describe("user", () => {
  it("creates a user", () => {
    expect(1).toBe(1);
  });

  test('updates a user', () => {});

  it.skip(` + "`deletes a user`" + `, () => {});

  it("creates a user", () => {});

  const helper = () => "it('not a test')";
});
`
	if err := os.WriteFile(testFile, []byte(tsContent), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	t.Run("finds test cases", func(t *testing.T) {
		testCases, err := parser.FindTestCases(testFile)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expected := []string{"creates a user", "deletes a user", "updates a user"}
		if len(testCases) != len(expected) {
			t.Fatalf("expected %d test cases, got %d: %v", len(expected), len(testCases), testCases)
		}
		for i := range expected {
			if testCases[i] != expected[i] {
				t.Errorf("expected %q at %d, got %q", expected[i], i, testCases[i])
			}
		}
	})

	t.Run("returns error for non-existent file", func(t *testing.T) {
		_, err := parser.FindTestCases("/non/existent/file.test.ts")
		if err == nil {
			t.Error("expected error for non-existent file")
		}
	})
}

func TestParser_FindStories(t *testing.T) {
	parser := NewParser()

	storyFile := filepath.Join(t.TempDir(), "Button.stories.ts")
	content := `import type { Meta, StoryObj } from "@storybook/vue3";
import Button from "./Button.vue";

const meta: Meta<typeof Button> = { component: Button };
export default meta;
type Story = StoryObj<typeof meta>;

export const Primary: Story = { args: { primary: true } };
export const Disabled = { args: { disabled: true } };
export const helper = () => null;
`
	if err := os.WriteFile(storyFile, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write story file: %v", err)
	}

	stories, err := parser.FindStories(storyFile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stories) != 2 || stories[0] != "Disabled" || stories[1] != "Primary" {
		t.Errorf("expected [Disabled Primary], got %v", stories)
	}
}
