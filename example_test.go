package notes_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/aretw0/notes"
)

// Example_basic demonstrates how to open a notes file, add a section and write to it.
func Example_basic() {
	tmpDir, err := os.MkdirTemp("", "notes-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	svc, err := notes.New(filepath.Join(tmpDir, "notes.txt"),
		notes.WithAutoInit(true),
		notes.WithVersioning(false),
	)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	work, err := svc.AddSection(ctx, "Work")
	if err != nil {
		log.Fatal(err)
	}
	if err := svc.Select(ctx, work); err != nil {
		log.Fatal(err)
	}
	if err := svc.SetContent("meeting at 10"); err != nil {
		log.Fatal(err)
	}
	if err := svc.Save(ctx); err != nil {
		log.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, "notes.txt"))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(data))
	// Output:
	// <section=first>
	//
	// <section=Work>
	// meeting at 10
}

// ExampleService_Search shows a search over every section.
func ExampleService_Search() {
	tmpDir, err := os.MkdirTemp("", "notes-search-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "notes.txt")
	text := "<section=Work>\nMeeting with Ana\n<section=Home>\nno meeting today"
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		log.Fatal(err)
	}

	svc, err := notes.New(path, notes.WithVersioning(false))
	if err != nil {
		log.Fatal(err)
	}

	matches, err := svc.Search("meeting", notes.SearchOptions{AllSections: true})
	if err != nil {
		log.Fatal(err)
	}
	for m := range matches {
		fmt.Println(m.Location())
	}
	// Output:
	// section: Work, position: 0
	// section: Home, position: 3
}
