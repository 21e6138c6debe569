package source

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func writeTitleFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func collect(t *testing.T, s TitleSource) []*Title {
	t.Helper()
	var titles []*Title
	for {
		title, err := s.Next(context.Background())
		if err == io.EOF {
			return titles
		}
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		titles = append(titles, title)
	}
}

func TestFileSource_SingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeTitleFile(t, dir, "titles.txt", "Lunch tomorrow\nDentist jan 27\n")

	s := NewFileSource([]string{path})
	defer s.Close()

	titles := collect(t, s)
	if len(titles) != 2 {
		t.Fatalf("got %d titles, want 2", len(titles))
	}
	if titles[0].Text != "Lunch tomorrow" {
		t.Errorf("titles[0].Text = %q", titles[0].Text)
	}
	if titles[1].LineNum != 2 {
		t.Errorf("titles[1].LineNum = %d, want 2", titles[1].LineNum)
	}
	if titles[0].Source != path {
		t.Errorf("titles[0].Source = %q, want %q", titles[0].Source, path)
	}
}

func TestFileSource_SkipsBlanksAndComments(t *testing.T) {
	dir := t.TempDir()
	path := writeTitleFile(t, dir, "titles.txt", "# schedule\n\nLunch tomorrow\n   \n# done\nDinner friday\n")

	s := NewFileSource([]string{path})
	defer s.Close()

	titles := collect(t, s)
	if len(titles) != 2 {
		t.Fatalf("got %d titles, want 2", len(titles))
	}
	if titles[0].Text != "Lunch tomorrow" || titles[1].Text != "Dinner friday" {
		t.Errorf("titles = [%q, %q]", titles[0].Text, titles[1].Text)
	}
}

func TestFileSource_TrimsWhitespace(t *testing.T) {
	dir := t.TempDir()
	path := writeTitleFile(t, dir, "titles.txt", "  Lunch tomorrow  \n")

	s := NewFileSource([]string{path})
	defer s.Close()

	titles := collect(t, s)
	if len(titles) != 1 || titles[0].Text != "Lunch tomorrow" {
		t.Errorf("titles = %+v", titles)
	}
}

func TestFileSource_MultipleFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeTitleFile(t, dir, "a.txt", "Lunch tomorrow\n")
	b := writeTitleFile(t, dir, "b.txt", "Dinner friday\n")

	s := NewFileSource([]string{a, b})
	defer s.Close()

	titles := collect(t, s)
	if len(titles) != 2 {
		t.Fatalf("got %d titles, want 2", len(titles))
	}
	if titles[1].Source != b {
		t.Errorf("titles[1].Source = %q, want %q", titles[1].Source, b)
	}
}

func TestFileSource_MissingFile(t *testing.T) {
	s := NewFileSource([]string{filepath.Join(t.TempDir(), "missing.txt")})
	defer s.Close()

	_, err := s.Next(context.Background())
	if err == nil || err == io.EOF {
		t.Errorf("Next() error = %v, want open error", err)
	}
}

func TestFileSource_ContextCancellation(t *testing.T) {
	dir := t.TempDir()
	path := writeTitleFile(t, dir, "titles.txt", "Lunch tomorrow\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewFileSource([]string{path})
	defer s.Close()

	if _, err := s.Next(ctx); err != context.Canceled {
		t.Errorf("Next() error = %v, want context.Canceled", err)
	}
}

func TestFileSource_EmptyFileList(t *testing.T) {
	s := NewFileSource(nil)
	defer s.Close()

	if _, err := s.Next(context.Background()); err != io.EOF {
		t.Errorf("Next() error = %v, want io.EOF", err)
	}
}
