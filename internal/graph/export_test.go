package graph

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"insightgraph/internal/model"
)

type fakeWriter struct {
	calls     []string
	keep      []string
	failNode  string
	removed   int64
	ensureErr error
}

func (f *fakeWriter) EnsureIndexes(ctx context.Context) error {
	f.calls = append(f.calls, "indexes")
	return f.ensureErr
}

func (f *fakeWriter) UpsertNode(ctx context.Context, node model.InformationNode) error {
	if node.NodeID == f.failNode {
		return errors.New("boom")
	}
	f.calls = append(f.calls, "node:"+node.NodeID)
	return nil
}

func (f *fakeWriter) UpsertLink(ctx context.Context, link model.NodeLink) error {
	f.calls = append(f.calls, "link:"+link.LinkID)
	return nil
}

func (f *fakeWriter) RemoveStaleNodes(ctx context.Context, keep []string) (int64, error) {
	f.calls = append(f.calls, "prune")
	f.keep = keep
	return f.removed, nil
}

func TestExport_Order(t *testing.T) {
	w := &fakeWriter{removed: 2}
	nodes := []model.InformationNode{{NodeID: "node_0002"}, {NodeID: "node_0001"}}
	links := []model.NodeLink{{LinkID: "link_0001"}}

	stats, err := export(context.Background(), w, nodes, links)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantCalls := []string{"indexes", "node:node_0002", "node:node_0001", "link:link_0001", "prune"}
	if !reflect.DeepEqual(w.calls, wantCalls) {
		t.Fatalf("expected calls %v, got %v", wantCalls, w.calls)
	}
	if !reflect.DeepEqual(w.keep, []string{"node_0002", "node_0001"}) {
		t.Fatalf("unexpected keep list: %v", w.keep)
	}
	if stats != (ExportStats{Nodes: 2, Links: 1, Removed: 2}) {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestExport_StopsOnFailure(t *testing.T) {
	w := &fakeWriter{failNode: "node_0001"}
	nodes := []model.InformationNode{{NodeID: "node_0002"}, {NodeID: "node_0001"}}

	stats, err := export(context.Background(), w, nodes, []model.NodeLink{{LinkID: "link_0001"}})
	if err == nil {
		t.Fatalf("expected error")
	}
	if stats.Nodes != 1 || stats.Links != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	for _, call := range w.calls {
		if call == "prune" {
			t.Fatalf("prune must not run after a failed write")
		}
	}
}

func TestExport_EnsureIndexesFailure(t *testing.T) {
	w := &fakeWriter{ensureErr: errors.New("no auth")}
	if _, err := export(context.Background(), w, nil, nil); err == nil {
		t.Fatalf("expected error")
	}
	if len(w.calls) != 1 {
		t.Fatalf("expected only the index call, got %v", w.calls)
	}
}

func TestExport_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := &fakeWriter{}
	_, err := export(ctx, w, []model.InformationNode{{NodeID: "node_0001"}}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNodeParams(t *testing.T) {
	node := model.InformationNode{
		NodeID:     "node_0001",
		Tags:       []string{"x1", "purchase"},
		Importance: model.ImportanceHigh,
		SourceRefs: model.SourceRef{RawID: "r1", PayloadRef: "s3://pos/r1.json"},
	}

	params := nodeParams(node)
	if params["tags_text"] != "x1 purchase" {
		t.Fatalf("unexpected tags_text: %v", params["tags_text"])
	}
	if params["importance"] != "high" || params["raw_id"] != "r1" {
		t.Fatalf("unexpected params: %v", params)
	}
	if entities, ok := params["entities"].([]string); !ok || entities == nil {
		t.Fatalf("expected empty non-nil entities, got %#v", params["entities"])
	}
}

func TestLinkParams(t *testing.T) {
	params := linkParams(model.NodeLink{LinkID: "link_0001", FromNodeID: "a", ToNodeID: "b", Strength: 0.33})
	if params["strength"] != 0.33 || params["from_node_id"] != "a" {
		t.Fatalf("unexpected params: %v", params)
	}
	if keys, ok := params["shared_keys"].([]string); !ok || keys == nil {
		t.Fatalf("expected empty non-nil shared_keys, got %#v", params["shared_keys"])
	}
}
