package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/notedhq/go-formkit/pkg/auth"
	"github.com/notedhq/go-formkit/pkg/form"
	"github.com/notedhq/go-formkit/pkg/noted"
	"github.com/notedhq/go-formkit/pkg/notify"
	"github.com/notedhq/go-formkit/pkg/persist/gormstore"
	"github.com/notedhq/go-formkit/pkg/renderers/tui"
	"github.com/notedhq/go-formkit/pkg/schema"
)

func main() {
	dbPath := flag.String("db", "formkit.db", "SQLite database path")
	userID := flag.String("user", "", "user id to act as")
	schemaPath := flag.String("schema", "", "form definition file (JSON or YAML); built-in note form if empty")
	editID := flag.String("edit", "", "note id to edit instead of creating")
	list := flag.Bool("list", false, "list notes and exit")
	deleteID := flag.String("delete", "", "note id to delete, then exit")
	flag.Parse()

	if *userID == "" {
		log.Fatal("a -user id is required")
	}

	ctx := context.Background()

	store, err := gormstore.Open(*dbPath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer store.Close()

	svc, err := noted.NewService(store, &auth.User{ID: *userID}, noted.WithToaster(notify.Logger{}))
	if err != nil {
		log.Fatalf("configure service: %v", err)
	}

	switch {
	case *list:
		listNotes(ctx, svc)
	case *deleteID != "":
		if err := svc.Delete(ctx, *deleteID); err != nil {
			log.Fatalf("delete note: %v", err)
		}
		fmt.Printf("Deleted %s\n", *deleteID)
	default:
		runForm(ctx, svc, store, *userID, *schemaPath, *editID)
	}
}

func listNotes(ctx context.Context, svc *noted.Service) {
	rows, err := svc.List(ctx)
	if err != nil {
		log.Fatalf("list notes: %v", err)
	}
	if len(rows) == 0 {
		fmt.Println("No notes yet.")
		return
	}
	for _, row := range rows {
		fmt.Printf("%v  %v\n", row["id"], row["title"])
	}
}

func runForm(ctx context.Context, svc *noted.Service, store *gormstore.Store, userID, schemaPath, editID string) {
	session, err := newSession(ctx, svc, store, userID, schemaPath, editID)
	if err != nil {
		log.Fatalf("start session: %v", err)
	}

	runner := tui.New(tui.WithProjectSource(svc))
	saved, err := runner.Run(ctx, session)
	if err != nil {
		log.Fatalf("form not saved: %v", err)
	}
	fmt.Printf("Saved %v\n", saved["id"])
}

func newSession(ctx context.Context, svc *noted.Service, store *gormstore.Store, userID, schemaPath, editID string) (*form.Session, error) {
	if schemaPath == "" {
		if editID != "" {
			return svc.NewEditSession(ctx, editID)
		}
		return svc.NewCreateSession()
	}

	data, err := os.ReadFile(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	f, err := schema.Parse(data, schemaPath)
	if err != nil {
		return nil, err
	}

	options := []form.Option{
		form.WithStore(store),
		form.WithUser(&auth.User{ID: userID}),
		form.WithToaster(notify.Logger{}),
	}
	if editID != "" {
		record, err := store.From(f.Table).Eq("id", editID).Eq("user_id", userID).One(ctx)
		if err != nil {
			return nil, fmt.Errorf("load record %s: %w", editID, err)
		}
		options = append(options, form.WithRecord(editID, record))
	}
	return form.New(f, options...)
}
