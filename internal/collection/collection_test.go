package collection

import "testing"

type item struct {
	ID   string
	Name string
}

func newItems() *Collection[item] {
	return New(func(it item) string { return it.ID })
}

func TestAppendAndItems(t *testing.T) {
	c := newItems()
	c.Append(item{ID: "a", Name: "first"})
	c.Append(item{ID: "b", Name: "second"})

	got := c.Items()
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	if got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("order not preserved: %v", got)
	}
}

func TestItemsIsACopy(t *testing.T) {
	c := newItems()
	c.Append(item{ID: "a", Name: "first"})

	got := c.Items()
	got[0].Name = "mutated"

	if c.Items()[0].Name != "first" {
		t.Error("Items must return a copy, not the backing slice")
	}
}

func TestReplaceByKey(t *testing.T) {
	c := newItems()
	c.Append(item{ID: "a", Name: "first"})
	c.Append(item{ID: "b", Name: "second"})

	c.ReplaceByKey(item{ID: "b", Name: "updated"})

	got := c.Items()
	if got[1].Name != "updated" {
		t.Errorf("expected replacement in place, got %v", got[1])
	}
	if got[0].Name != "first" {
		t.Errorf("unrelated item changed: %v", got[0])
	}
}

func TestReplaceByKey_NoMatchIsNoop(t *testing.T) {
	c := newItems()
	c.Append(item{ID: "a", Name: "first"})

	c.ReplaceByKey(item{ID: "zzz", Name: "ghost"})

	got := c.Items()
	if len(got) != 1 || got[0].Name != "first" {
		t.Errorf("collection changed on no-match replace: %v", got)
	}
}

func TestRemoveByKey(t *testing.T) {
	c := newItems()
	c.Append(item{ID: "a"})
	c.Append(item{ID: "b"})
	c.Append(item{ID: "c"})

	c.RemoveByKey("b")

	got := c.Items()
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	for _, it := range got {
		if it.ID == "b" {
			t.Error("key b should be gone")
		}
	}
}

func TestRemoveByKey_AfterAppendLeavesNoMatch(t *testing.T) {
	c := newItems()
	c.Append(item{ID: "x"})
	c.Append(item{ID: "x"}) // duplicate keys are not rejected by Append

	c.RemoveByKey("x")

	if c.Len() != 0 {
		t.Errorf("RemoveByKey must remove all matches, %d left", c.Len())
	}
}

func TestReplaceAll(t *testing.T) {
	c := newItems()
	c.Append(item{ID: "old"})

	c.ReplaceAll([]item{{ID: "n1"}, {ID: "n2"}})

	got := c.Items()
	if len(got) != 2 || got[0].ID != "n1" || got[1].ID != "n2" {
		t.Errorf("ReplaceAll result wrong: %v", got)
	}
}

func TestReplaceAll_DetachesFromInput(t *testing.T) {
	c := newItems()
	in := []item{{ID: "n1", Name: "one"}}
	c.ReplaceAll(in)
	in[0].Name = "mutated"

	if c.Items()[0].Name != "one" {
		t.Error("ReplaceAll must copy the input slice")
	}
}
