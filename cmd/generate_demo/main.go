// Command generate_demo creates a sample KoboReader.sqlite with annotations
// from public domain books, for trying the exporter and the viewer without
// a device.
// Usage: go run cmd/generate_demo/main.go [-db path/to/KoboReader.sqlite] [-schema-version N]
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const defaultDemoDatabasePath = "./demo/KoboReader.sqlite"

var schema = []string{
	`CREATE TABLE DbVersion (version INTEGER);`,
	`CREATE TABLE content (
		ContentID TEXT,
		BookID TEXT,
		BookTitle TEXT,
		Title TEXT,
		Attribution TEXT
	);`,
	`CREATE TABLE Bookmark (
		BookmarkID TEXT,
		VolumeID TEXT,
		ContentID TEXT,
		Text TEXT,
		Annotation TEXT,
		DateCreated TEXT,
		DateModified TEXT,
		ChapterProgress REAL
	);`,
}

type demoItem struct {
	chapter    string
	progress   float64
	text       string
	annotation string
	created    string
}

type demoBook struct {
	volumeID string
	title    string
	author   string
	items    []demoItem
}

var demoBooks = []demoBook{
	{
		volumeID: "file:///mnt/onboard/meditations.epub",
		title:    "Meditations",
		author:   "Marcus Aurelius",
		items: []demoItem{
			{
				chapter:  "Book Two",
				progress: 0.12,
				text:     "Begin the morning by saying to thyself, I shall meet with the busy-body, the ungrateful, arrogant, deceitful, envious, unsocial.",
				created:  "2014-12-19T19:54:11.000",
			},
			{
				chapter:    "Book Two",
				progress:   0.14,
				text:       "The best revenge is to be unlike him who performed the injury.",
				annotation: "Worth re-reading.",
				created:    "2014-12-19T20:02:45.000",
			},
			{
				chapter:  "Book Four",
				progress: 0.31,
				text:     "The universe is change; our life is what our thoughts make it.",
				created:  "2014-12-21T09:15:03.000",
			},
		},
	},
	{
		volumeID: "file:///mnt/onboard/frankenstein.epub",
		title:    "Frankenstein",
		author:   "Mary Shelley",
		items: []demoItem{
			{
				chapter:  "Letter 1",
				progress: 0.01,
				text:     "I am about to proceed on a long and difficult voyage, the emergencies of which will demand all my fortitude.",
				created:  "2015-03-02T22:41:30.000",
			},
			{
				chapter:  "Chapter 5",
				progress: 0.24,
				// A bare bookmark: no text, no annotation.
				created: "2015-03-04T21:10:00.000",
			},
		},
	},
}

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	schemaVersion := flag.Int("schema-version", 174, "schema version to report (175 uses the BookID join)")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	if err := os.MkdirAll(filepath.Dir(*dbPath), 0755); err != nil {
		log.Fatalf("Failed to create the demo directory: %v", err)
	}
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	db, err := sql.Open("sqlite3", *dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			log.Fatalf("Failed to create schema: %v", err)
		}
	}

	if _, err := db.Exec(`INSERT INTO DbVersion (version) VALUES (?)`, *schemaVersion); err != nil {
		log.Fatalf("Failed to write schema version: %v", err)
	}

	for _, book := range demoBooks {
		if err := insertBook(db, book); err != nil {
			log.Fatalf("Failed to insert %s: %v", book.title, err)
		}
		log.Printf("Saved: %s by %s (%d items)", book.title, book.author, len(book.items))
	}

	log.Println("Demo database generated successfully!")
}

func insertBook(db *sql.DB, book demoBook) error {
	// The book-level content row: ContentID equals the volume id.
	_, err := db.Exec(
		`INSERT INTO content (ContentID, BookID, BookTitle, Title, Attribution) VALUES (?, ?, ?, ?, ?)`,
		book.volumeID, "", book.title, book.title, book.author,
	)
	if err != nil {
		return err
	}

	for i, item := range book.items {
		chapterContentID := fmt.Sprintf("%s!%d", book.volumeID, i+1)
		_, err := db.Exec(
			`INSERT INTO content (ContentID, BookID, BookTitle, Title, Attribution) VALUES (?, ?, ?, ?, ?)`,
			chapterContentID, book.volumeID, book.title, item.chapter, book.author,
		)
		if err != nil {
			return err
		}

		_, err = db.Exec(
			`INSERT INTO Bookmark (BookmarkID, VolumeID, ContentID, Text, Annotation, DateCreated, DateModified, ChapterProgress)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			fmt.Sprintf("%s-%d", book.volumeID, i+1),
			book.volumeID,
			chapterContentID,
			item.text,
			item.annotation,
			item.created,
			item.created,
			item.progress,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
