package storage

import (
	"context"
	"os"
	"testing"
)

func TestOpenJournalWithoutDSN(t *testing.T) {
	j := OpenJournal("")
	if _, ok := j.(NopJournal); !ok {
		t.Fatalf("OpenJournal(\"\") = %T, want NopJournal", j)
	}
	if err := j.Record(context.Background(), &Entry{Op: "create task"}); err != nil {
		t.Errorf("Record: %v", err)
	}
	if entries, err := j.Recent(context.Background(), 10); err != nil || len(entries) != 0 {
		t.Errorf("Recent = %v, %v", entries, err)
	}
}

// Journal tests need MySQL: TASKDECK_TEST_DSN=user:pass@tcp(host:3306)/db
func TestWithParseTime(t *testing.T) {
	cases := map[string]string{
		"u:p@tcp(db:3306)/deck":                       "u:p@tcp(db:3306)/deck?parseTime=True",
		"u:p@tcp(db:3306)/deck?charset=utf8mb4":       "u:p@tcp(db:3306)/deck?charset=utf8mb4&parseTime=True",
		"u:p@tcp(db:3306)/deck?parseTime=true":        "u:p@tcp(db:3306)/deck?parseTime=true",
		"u:p@tcp(db:3306)/deck?loc=Local&parseTime=1": "u:p@tcp(db:3306)/deck?loc=Local&parseTime=1",
	}
	for in, want := range cases {
		if got := withParseTime(in); got != want {
			t.Errorf("withParseTime(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestJournal_RecordRecent(t *testing.T) {
	dsn := os.Getenv("TASKDECK_TEST_DSN")
	if dsn == "" {
		t.Skip("TASKDECK_TEST_DSN not set")
	}
	j, err := NewJournal(dsn)
	if err != nil {
		t.Fatalf("NewJournal: %v", err)
	}
	defer j.Close()

	ctx := context.Background()
	e := &Entry{Op: "execute task", TaskID: "42", TaskName: "backup", Success: true}
	if err := j.Record(ctx, e); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if e.ID == 0 {
		t.Errorf("Record did not assign an id")
	}
	entries, err := j.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != e.ID {
		t.Errorf("Recent = %+v, want the entry just written", entries)
	}
}
