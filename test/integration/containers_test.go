package integration

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/sandrolain/regkit/pkg/connfile"
	"github.com/sandrolain/regkit/pkg/mongoinfo"
	"github.com/sandrolain/regkit/pkg/registrant"
)

// TestRegistrantStoreIntegration exercises the registrant operations
// against a real MongoDB instance.
func TestRegistrantStoreIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start MongoDB container: %v", err)
	}
	defer func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	}()

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "27017")
	if err != nil {
		t.Fatalf("Failed to get mapped port: %v", err)
	}

	cfg, err := connfile.Parse("mongodb://" + host + ":" + port.Port() + "/regkit_test")
	if err != nil {
		t.Fatalf("Failed to parse URI: %v", err)
	}

	client, err := connfile.Connect(ctx, cfg)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			t.Logf("Failed to disconnect: %v", err)
		}
	}()

	db := client.Database(cfg.Database)
	store := registrant.NewStore(db, registrant.DefaultCollection)

	seed := []registrant.Registrant{
		registrant.New("Alice", 30, "Rome", "a@x.com", 41.9, 12.5),
		registrant.New("Bob", 25, "Milan", "b@x.com", 45.5, 9.2),
		registrant.New("Carol", 40, "Turin", "c@y.com", 45.1, 7.7),
		registrant.New("Mallory", 35, "Naples", "no-at-sign", 40.8, 14.3),
	}
	for _, r := range seed {
		if err := store.Insert(ctx, r); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}

	t.Run("Query after insert returns the same fields", func(t *testing.T) {
		doc, err := store.FindByEmail(ctx, "a@x.com")
		if err != nil {
			t.Fatalf("FindByEmail() error = %v", err)
		}
		fields := doc.Map()
		if fields["name"] != "Alice" || fields["city"] != "Rome" {
			t.Errorf("FindByEmail() = %v, fields do not match insert", fields)
		}
	})

	t.Run("Stored coordinates are longitude first", func(t *testing.T) {
		doc, err := store.FindByEmail(ctx, "a@x.com")
		if err != nil {
			t.Fatalf("FindByEmail() error = %v", err)
		}
		raw, err := bson.Marshal(doc)
		if err != nil {
			t.Fatalf("Failed to remarshal document: %v", err)
		}
		var rec registrant.Registrant
		if err := bson.Unmarshal(raw, &rec); err != nil {
			t.Fatalf("Failed to decode registrant: %v", err)
		}
		if len(rec.Location.Coordinates) != 2 {
			t.Fatalf("coordinates = %v, want two values", rec.Location.Coordinates)
		}
		if rec.Location.Coordinates[0] != 12.5 || rec.Location.Coordinates[1] != 41.9 {
			t.Errorf("coordinates = %v, want [12.5 41.9]", rec.Location.Coordinates)
		}
	})

	t.Run("Unknown email is not found", func(t *testing.T) {
		if _, err := store.FindByEmail(ctx, "nobody@z.com"); err != registrant.ErrNotFound {
			t.Errorf("FindByEmail() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("AddNotes merges notes on a match", func(t *testing.T) {
		matched, err := store.AddNotes(ctx, "b@x.com", "vip")
		if err != nil {
			t.Fatalf("AddNotes() error = %v", err)
		}
		if matched != 1 {
			t.Errorf("AddNotes() matched = %d, want 1", matched)
		}
		doc, err := store.FindByEmail(ctx, "b@x.com")
		if err != nil {
			t.Fatalf("FindByEmail() error = %v", err)
		}
		if doc.Map()["notes"] != "vip" {
			t.Errorf("notes = %v, want 'vip'", doc.Map()["notes"])
		}
	})

	t.Run("AddNotes on a missing email succeeds without creating", func(t *testing.T) {
		matched, err := store.AddNotes(ctx, "ghost@z.com", "boo")
		if err != nil {
			t.Fatalf("AddNotes() error = %v", err)
		}
		if matched != 0 {
			t.Errorf("AddNotes() matched = %d, want 0", matched)
		}
		if _, err := store.FindByEmail(ctx, "ghost@z.com"); err != registrant.ErrNotFound {
			t.Errorf("AddNotes() must not upsert, find error = %v", err)
		}
	})

	t.Run("Histogram skips malformed emails, total counts them", func(t *testing.T) {
		hist, err := store.DomainHistogram(ctx)
		if err != nil {
			t.Fatalf("DomainHistogram() error = %v", err)
		}
		want := []registrant.DomainCount{{Domain: "x.com", Count: 2}, {Domain: "y.com", Count: 1}}
		if len(hist) != len(want) {
			t.Fatalf("DomainHistogram() = %v, want %v", hist, want)
		}
		for i := range want {
			if hist[i] != want[i] {
				t.Errorf("DomainHistogram()[%d] = %v, want %v", i, hist[i], want[i])
			}
		}

		total, err := store.Count(ctx)
		if err != nil {
			t.Fatalf("Count() error = %v", err)
		}
		if total != 4 {
			t.Errorf("Count() = %d, want 4 (document without '@' included)", total)
		}
	})

	t.Run("All returns every registrant", func(t *testing.T) {
		regs, err := store.All(ctx)
		if err != nil {
			t.Fatalf("All() error = %v", err)
		}
		if len(regs) != 4 {
			t.Errorf("All() returned %d registrants, want 4", len(regs))
		}
	})

	t.Run("Access and status introspection succeed", func(t *testing.T) {
		access, err := mongoinfo.ListAccess(ctx, client)
		if err != nil {
			t.Fatalf("ListAccess() error = %v", err)
		}
		found := false
		for _, dbAcc := range access {
			if dbAcc.Name == cfg.Database && !dbAcc.Denied {
				found = true
			}
		}
		if !found {
			t.Errorf("ListAccess() = %v, target database not visible", access)
		}

		if _, err := mongoinfo.ConnectionStatus(ctx, db); err != nil {
			t.Errorf("ConnectionStatus() error = %v", err)
		}

		report, err := mongoinfo.RolesInfo(ctx, client, db)
		if err != nil {
			t.Fatalf("RolesInfo() error = %v", err)
		}
		if report.Source == "" {
			t.Error("RolesInfo() returned an empty source")
		}
	})
}
