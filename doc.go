// Package notes is the Composition Root for the notes application.
//
// It connects the session logic (pkg/core) with the storage adapter
// (pkg/adapters/fs) using the Hexagonal Architecture pattern.
//
// All notes live in a single text file split into named sections. Each
// section starts with a separator line:
//
//	<section=Work>
//	meeting at 10
//	<section=Personal>
//	buy milk
//
// Features:
//
//   - **Sections**: add, rename, delete and select, persisted atomically.
//   - **Unsaved Counter**: edits are held in memory until saved or until another section is selected.
//   - **Search**: case (in)sensitive, current section or all sections, with snippets.
//   - **Live Reload**: external changes to the file are picked up and merged with unsaved edits.
//   - **Versioning (optional)**: every write can be committed to Git.
//
// Usage:
//
//	svc, err := notes.New("./notes.txt",
//		notes.WithAutoInit(true),
//		notes.WithLogger(logger),
//	)
//
//	work, err := svc.AddSection(ctx, "Work")
//	err = svc.Select(ctx, work)
//	err = svc.SetContent("meeting at 10")
//	err = svc.Save(ctx)
package notes
