package warnings

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCollector_PreservesOrder(t *testing.T) {
	t.Parallel()

	c := New()
	c.Add(ContrastRatio, "first")
	c.Addf(FootnoteNotFound, "footnote %q not found", "x")
	c.Add(UnsupportedHTMLTag, "third")

	want := []Warning{
		{Kind: ContrastRatio, Message: "first"},
		{Kind: FootnoteNotFound, Message: `footnote "x" not found`},
		{Kind: UnsupportedHTMLTag, Message: "third"},
	}
	if diff := cmp.Diff(want, c.Items()); diff != "" {
		t.Errorf("Items() mismatch (-want +got):\n%s", diff)
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
}

func TestCollector_NilIsNoop(t *testing.T) {
	t.Parallel()

	var c *Collector
	c.Add(ContrastRatio, "ignored")
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
	if c.Items() != nil {
		t.Errorf("Items() = %v, want nil", c.Items())
	}
}

func TestCollector_ItemsReturnsCopy(t *testing.T) {
	t.Parallel()

	c := New()
	c.Add(ContrastRatio, "a")
	items := c.Items()
	items[0].Message = "mutated"

	if got := c.Messages()[0]; got != "a" {
		t.Errorf("Messages()[0] = %q, want %q", got, "a")
	}
}

func TestCollector_Concurrent(t *testing.T) {
	t.Parallel()

	c := New()
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Add(UnknownLanguage, "x")
		}()
	}
	wg.Wait()

	if c.Len() != 50 {
		t.Errorf("Len() = %d, want 50", c.Len())
	}
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind Kind
		want string
	}{
		{ContrastRatio, "contrast"},
		{RemoteImageSkipped, "remote-image"},
		{Kind(99), "kind(99)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}
