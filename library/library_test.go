package library

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tsawler/ghostwriter/format"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"My Book", "My.Book"},
		{"  padded  ", "padded"},
		{"Ça va? Oui!", "a.va.Oui"},
		{"v1.2 (draft)", "v1.2.draft"},
		{"under_score/slash", "underscoreslash"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFileName(t *testing.T) {
	at := time.Date(2024, 3, 5, 14, 7, 9, 0, time.FixedZone("CEST", 2*60*60))

	got := FileName("My Book", "Jane Doe", at)
	want := "My.Book_Jane.Doe_2024-03-05T120709Z.ghb"
	if got != want {
		t.Errorf("FileName() = %q, want %q", got, want)
	}
}

func TestDirs(t *testing.T) {
	root := filepath.Join(t.TempDir(), "Ghostwriter")
	d := NewDirs(root)

	if d.SavedBooks != filepath.Join(root, "SavedBooks") {
		t.Errorf("SavedBooks = %q", d.SavedBooks)
	}
	if d.SignaturePath() != filepath.Join(root, "Signatures", "default.ghb") {
		t.Errorf("SignaturePath() = %q", d.SignaturePath())
	}

	if err := d.Ensure(); err != nil {
		t.Fatalf("Ensure() failed: %v", err)
	}
	for _, dir := range []string{d.Root, d.SavedBooks, d.Signatures} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Errorf("%s was not created: %v", dir, err)
		}
	}
	// A second call is a no-op.
	if err := d.Ensure(); err != nil {
		t.Errorf("Ensure() again failed: %v", err)
	}

	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if got := d.SavePath("T", "A", at); got != filepath.Join(d.SavedBooks, "T_A_2024-01-02T030405Z.ghb") {
		t.Errorf("SavePath() = %q", got)
	}
}

func TestDirs_EnsureFails(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	if err := NewDirs(file).Ensure(); err == nil {
		t.Error("Ensure() expected error when the root is a file")
	}
}

func TestParent(t *testing.T) {
	root := string(filepath.Separator)
	tests := []struct {
		in   string
		want string
	}{
		{filepath.Join(root, "a", "b"), filepath.Join(root, "a")},
		{filepath.Join(root, "a") + string(filepath.Separator), root},
		{root, root},
	}

	for _, tt := range tests {
		if got := Parent(tt.in); got != tt.want {
			t.Errorf("Parent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// ===== Listing Tests =====

func makeTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"b.ghb", "a.txt", "notes.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("failed to write test file: %v", err)
		}
	}
	for _, name := range []string{"zeta", "alpha"} {
		if err := os.Mkdir(filepath.Join(dir, name), 0755); err != nil {
			t.Fatalf("failed to create test dir: %v", err)
		}
	}
	return dir
}

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestListing_Order(t *testing.T) {
	dir := makeTree(t)

	var l Listing
	entries, err := l.List(dir, false)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}

	want := []string{"alpha", "zeta", "a.txt", "b.ghb", "notes.md"}
	got := names(entries)
	if len(got) != len(want) {
		t.Fatalf("List() = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %q, want %q", i, got[i], want[i])
		}
	}

	if !entries[0].Dir || entries[0].Loadable() {
		t.Errorf("alpha: Dir = %v, Loadable = %v; want directory", entries[0].Dir, entries[0].Loadable())
	}
	if entries[3].Format != format.GHB || !entries[3].Loadable() {
		t.Errorf("b.ghb: Format = %v, Loadable = %v", entries[3].Format, entries[3].Loadable())
	}
	if entries[4].Loadable() {
		t.Error("notes.md should not be loadable")
	}
	if entries[2].Size != 1 {
		t.Errorf("a.txt: Size = %d, want 1", entries[2].Size)
	}
}

func TestListing_Cache(t *testing.T) {
	dir := makeTree(t)

	var l Listing
	first, err := l.List(dir, false)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "c.ghb"), nil, 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	cached, _ := l.List(dir, false)
	if len(cached) != len(first) {
		t.Errorf("cached listing has %d entries, want %d", len(cached), len(first))
	}

	refreshed, _ := l.List(dir, true)
	if len(refreshed) != len(first)+1 {
		t.Errorf("forced refresh has %d entries, want %d", len(refreshed), len(first)+1)
	}

	if err := os.WriteFile(filepath.Join(dir, "d.ghb"), nil, 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	l.Invalidate()
	if l.Path() != "" {
		t.Errorf("Path() = %q after Invalidate, want empty", l.Path())
	}
	after, _ := l.List(dir, false)
	if len(after) != len(first)+2 {
		t.Errorf("listing after Invalidate has %d entries, want %d", len(after), len(first)+2)
	}
}

func TestListing_OtherDirectory(t *testing.T) {
	var l Listing
	one, two := makeTree(t), t.TempDir()

	if _, err := l.List(one, false); err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	entries, err := l.List(two, false)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("List(empty dir) = %q, want none", names(entries))
	}
	if l.Path() != two {
		t.Errorf("Path() = %q, want %q", l.Path(), two)
	}
}

func TestListing_Missing(t *testing.T) {
	var l Listing
	if _, err := l.List(filepath.Join(t.TempDir(), "missing"), false); err == nil {
		t.Error("List() expected error for a missing directory")
	}
	if l.Path() != "" {
		t.Errorf("Path() = %q after failure, want empty", l.Path())
	}
}
