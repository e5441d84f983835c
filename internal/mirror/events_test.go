package mirror

import "testing"

func TestListReplacedDiscardsPriorState(t *testing.T) {
	prior := []testRecord{{ID: "stale"}}
	next := listReplaced[testRecord]{records: []testRecord{{ID: "a"}, {ID: "b"}}}.apply(prior)
	if len(next) != 2 || next[0].ID != "a" {
		t.Fatalf("unexpected state: %#v", next)
	}
}

func TestRecordReplacedLeavesUnknownIDAlone(t *testing.T) {
	prior := []testRecord{{ID: "a", Name: "x"}}
	next := recordReplaced[testRecord]{record: testRecord{ID: "missing", Name: "y"}}.apply(prior)
	if len(next) != 1 || next[0].Name != "x" {
		t.Fatalf("replace of unknown id must be a no-op, got %#v", next)
	}
}

func TestRecordRemovedUnknownIDIsNoOp(t *testing.T) {
	prior := []testRecord{{ID: "a"}}
	next := recordRemoved[testRecord]{id: "missing"}.apply(prior)
	if len(next) != 1 {
		t.Fatalf("remove of unknown id must be a no-op, got %#v", next)
	}
}

func TestEventsDoNotAliasPriorSlice(t *testing.T) {
	prior := []testRecord{{ID: "a", Name: "x"}, {ID: "b"}}
	next := recordReplaced[testRecord]{record: testRecord{ID: "a", Name: "y"}}.apply(prior)
	if prior[0].Name != "x" {
		t.Fatalf("prior snapshot mutated: %#v", prior)
	}
	if next[0].Name != "y" {
		t.Fatalf("unexpected result: %#v", next)
	}
}
