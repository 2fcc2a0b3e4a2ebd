package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAssertGolden_Matches(t *testing.T) {
	path := filepath.Join(t.TempDir(), "screen.golden")
	if err := os.WriteFile(path, []byte("Ad *\n  Ada\n"), 0o644); err != nil {
		t.Fatalf("seed golden: %v", err)
	}
	AssertGolden(t, path, []byte("Ad *\n  Ada\n"))
}

func TestWriteMaybeGolden_Update(t *testing.T) {
	t.Setenv(UpdateEnv, "1")
	path := filepath.Join(t.TempDir(), "nested", "out.golden")

	if !WriteMaybeGolden(t, path, []byte("payload")) {
		t.Fatalf("expected golden to be written")
	}
	if got := MustReadGoldenString(t, path); got != "payload" {
		t.Fatalf("unexpected golden content %q", got)
	}
}

func TestWriteMaybeGolden_NoopWithoutEnv(t *testing.T) {
	t.Setenv(UpdateEnv, "")
	path := filepath.Join(t.TempDir(), "out.golden")

	if WriteMaybeGolden(t, path, []byte("payload")) {
		t.Fatalf("expected no write")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("golden should not exist, stat err = %v", err)
	}
}

func TestCompareGolden(t *testing.T) {
	if diff := CompareGolden("a", "a"); diff != "" {
		t.Fatalf("unexpected diff: %s", diff)
	}
	if diff := CompareGolden("a", "b"); diff == "" {
		t.Fatalf("expected diff")
	}
}
