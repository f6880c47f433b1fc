package store

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/flowboard/pkg/config"
	"github.com/matzehuels/flowboard/pkg/errors"
	"github.com/matzehuels/flowboard/pkg/flow"
	"github.com/matzehuels/flowboard/pkg/graph"
	"github.com/matzehuels/flowboard/pkg/observability"
)

func sampleGraph() flow.Graph {
	return flow.Graph{
		Nodes: []flow.Node{
			{ID: "start", Shape: flow.ShapeStart, Label: "Start", Geometry: flow.Rect{X: 0, Y: 0, Width: 48, Height: 48}},
			{ID: "lane", Kind: flow.KindLane, Label: "Ops", Geometry: flow.Rect{X: 0, Y: 100, Width: 600, Height: 200}, ZIndex: -1},
			{
				ID: "task", ParentID: "lane", ExternalRef: "R-7", Shape: flow.ShapeTask, Label: "Check",
				Geometry: flow.Rect{X: 40, Y: 30, Width: 200, Height: 72},
				Style:    flow.Style{Fill: "#eef", Opacity: flow.Float(0.5)},
				Interaction: &flow.Interaction{
					Action: flow.ActionOpen, TargetType: "url", TargetURL: "https://example.com/runbook",
				},
				Locked: true,
			},
		},
		Edges: []flow.Edge{
			{
				ID: "e1", Source: "start", Target: "task", Kind: flow.EdgeOrthogonal, LabelPosition: 0.3,
				Width: 1.5, ArrowEnd: flow.ArrowClosed, Badge: &flow.Badge{Text: "1d"},
			},
		},
		Legend: []flow.LegendItem{{Key: "ops", Label: "Operations", Color: "#333"}},
	}
}

// testStore runs the behaviour every backend must share.
func testStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.Load(ctx, "missing"); !stderrors.Is(err, ErrNotFound) {
		t.Fatalf("Load missing = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, "missing"); !stderrors.Is(err, ErrNotFound) {
		t.Fatalf("Delete missing = %v, want ErrNotFound", err)
	}

	g := sampleGraph()
	doc := graph.NewDocument("onboarding", g)
	if err := s.Save(ctx, doc); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(ctx, graph.NewDocument("billing", flow.Graph{})); err != nil {
		t.Fatalf("Save empty: %v", err)
	}

	got, err := s.Load(ctx, "onboarding")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.ProcessID != "onboarding" || got.EntryNodeID != "start" {
		t.Errorf("loaded header = %q/%q", got.ProcessID, got.EntryNodeID)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("UpdatedAt should be stamped on save")
	}
	if !got.Graph().Equal(g) {
		t.Errorf("graph changed through the store:\n got  %+v\n want %+v", got.Graph(), g)
	}
	if Revision(got) != Revision(doc) {
		t.Error("revision should ignore the save timestamp")
	}

	empty, err := s.Load(ctx, "billing")
	if err != nil {
		t.Fatalf("Load empty: %v", err)
	}
	if !empty.Graph().Empty() || empty.EntryNodeID != "" {
		t.Errorf("empty document = %+v", empty)
	}

	ids, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if want := []string{"billing", "onboarding"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("List = %v, want %v", ids, want)
	}

	g.Nodes[0].Label = "Begin"
	if err := s.Save(ctx, graph.NewDocument("onboarding", g)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err = s.Load(ctx, "onboarding")
	if err != nil {
		t.Fatalf("Load after overwrite: %v", err)
	}
	if got.Nodes[0].Label != "Begin" {
		t.Errorf("overwrite not visible, label = %q", got.Nodes[0].Label)
	}

	if err := s.Delete(ctx, "onboarding"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Load(ctx, "onboarding"); !stderrors.Is(err, ErrNotFound) {
		t.Errorf("Load after delete = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, "billing"); err != nil {
		t.Fatalf("Delete billing: %v", err)
	}
	ids, err = s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("List after deletes = %v", ids)
	}

	if err := s.Save(ctx, graph.NewDocument("../escape", g)); !errors.Is(err, errors.ErrCodeInvalidID) {
		t.Errorf("unsafe id should be rejected, got %v", err)
	}
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer s.Close()
	testStore(t, s)
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	s, err := NewSQLiteStore(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer s.Close()
	testStore(t, s)
}

func TestSQLiteStoreFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "flow.db")

	s, err := NewSQLiteStore(ctx, path)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	if err := s.Save(ctx, graph.NewDocument("p", sampleGraph())); err != nil {
		t.Fatalf("Save: %v", err)
	}
	s.Close()

	reopened, err := NewSQLiteStore(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	doc, err := reopened.Load(ctx, "p")
	if err != nil {
		t.Fatalf("Load after reopen: %v", err)
	}
	if !doc.Graph().Equal(sampleGraph()) {
		t.Error("graph changed across reopen")
	}
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("FLOWBOARD_REDIS_ADDR")
	if addr == "" {
		t.Skip("FLOWBOARD_REDIS_ADDR not set")
	}
	prefix := "flowboard:test:" + uuid.NewString() + ":"
	s, err := NewRedisStore(context.Background(), RedisOptions{Addr: addr, Prefix: prefix})
	if err != nil {
		t.Fatalf("NewRedisStore: %v", err)
	}
	defer s.Close()
	testStore(t, s)
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("FLOWBOARD_MONGO_URI")
	if uri == "" {
		t.Skip("FLOWBOARD_MONGO_URI not set")
	}
	ctx := context.Background()
	database := "flowboard_test_" + uuid.NewString()[:8]
	s, err := NewMongoStore(ctx, uri, database)
	if err != nil {
		t.Fatalf("NewMongoStore: %v", err)
	}
	defer func() {
		_ = s.client.Database(database).Drop(ctx)
		s.Close()
	}()
	testStore(t, s)
}

func TestMsgpackEncoding(t *testing.T) {
	doc := graph.NewDocument("p", sampleGraph())
	doc.UpdatedAt = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	data, err := encodeMsgpack(doc)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var back graph.Document
	if err := decodeMsgpack(data, &back); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if back.ProcessID != "p" || back.EntryNodeID != "start" || !back.UpdatedAt.Equal(doc.UpdatedAt) {
		t.Errorf("header = %+v", back)
	}
	if !back.Graph().Equal(sampleGraph()) {
		t.Error("graph changed through msgpack")
	}
}

func TestFileStorePersistenceError(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "procs")
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	// Replace the directory with a regular file so every write fails.
	if err := os.RemoveAll(dir); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dir, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	err = s.Save(context.Background(), graph.NewDocument("p", sampleGraph()))
	if !errors.IsPersistenceError(err) {
		t.Errorf("Save into a broken dir = %v, want PERSISTENCE_ERROR", err)
	}
	if _, err := s.List(context.Background()); !errors.IsPersistenceError(err) {
		t.Errorf("List of a broken dir = %v, want PERSISTENCE_ERROR", err)
	}
}

func TestRevision(t *testing.T) {
	a := graph.NewDocument("p", sampleGraph())
	b := graph.NewDocument("p", sampleGraph())
	b.UpdatedAt = time.Now()
	if Revision(a) != Revision(b) {
		t.Error("identical content should share a revision")
	}
	if len(Revision(a)) != 64 {
		t.Errorf("revision length = %d, want 64 hex chars", len(Revision(a)))
	}

	g := sampleGraph()
	g.Nodes[0].Geometry.X = 1
	if Revision(graph.NewDocument("p", g)) == Revision(a) {
		t.Error("different content should change the revision")
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name    string
		cfg     config.Store
		want    string
		wantErr errors.Code
	}{
		{name: "File", cfg: config.Store{Backend: config.BackendFile, Dir: t.TempDir()}, want: "*store.FileStore"},
		{name: "Memory", cfg: config.Store{Backend: config.BackendMemory}, want: "*store.MemoryStore"},
		{name: "SQLite", cfg: config.Store{Backend: config.BackendSQLite, SQLitePath: ":memory:"}, want: "*store.SQLiteStore"},
		{name: "Unknown", cfg: config.Store{Backend: "s3"}, wantErr: errors.ErrCodeUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(ctx, tt.cfg, nil)
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %s", err, tt.wantErr)
				}
				if s != nil {
					t.Error("failed open should return a nil store")
				}
				return
			}
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer s.Close()
			if got := reflect.TypeOf(s).String(); got != tt.want {
				t.Errorf("backend = %s, want %s", got, tt.want)
			}
		})
	}
}

type recordingStoreHooks struct {
	observability.NoopStoreHooks
	mu    sync.Mutex
	saves []string
	loads []error
}

func (h *recordingStoreHooks) OnSave(_ context.Context, backend, processID string, _ time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.saves = append(h.saves, backend+":"+processID)
}

func (h *recordingStoreHooks) OnLoad(_ context.Context, _, _ string, _ time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.loads = append(h.loads, err)
}

func TestStoreHooks(t *testing.T) {
	hooks := &recordingStoreHooks{}
	observability.SetStoreHooks(hooks)
	defer observability.Reset()

	ctx := context.Background()
	s := NewMemoryStore()
	if err := s.Save(ctx, graph.NewDocument("p", sampleGraph())); err != nil {
		t.Fatal(err)
	}
	_, _ = s.Load(ctx, "p")
	_, _ = s.Load(ctx, "q")

	if want := []string{"memory:p"}; !reflect.DeepEqual(hooks.saves, want) {
		t.Errorf("saves = %v, want %v", hooks.saves, want)
	}
	if len(hooks.loads) != 2 || hooks.loads[0] != nil || !stderrors.Is(hooks.loads[1], ErrNotFound) {
		t.Errorf("loads = %v", hooks.loads)
	}
}
