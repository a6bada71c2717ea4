package book

import (
	"errors"
	"slices"
	"testing"

	"github.com/smileynet/rolodex/internal/contact"
)

func newRecord(t *testing.T, name string) *contact.Record {
	t.Helper()
	r, err := contact.NewRecord(name)
	if err != nil {
		t.Fatalf("NewRecord(%q) error = %v", name, err)
	}
	return r
}

func bookWith(t *testing.T, names ...string) *AddressBook {
	t.Helper()
	b := New()
	for _, n := range names {
		if err := b.Add(newRecord(t, n)); err != nil {
			t.Fatalf("Add(%q) error = %v", n, err)
		}
	}
	return b
}

func names(records []*contact.Record) []string {
	var out []string
	for _, r := range records {
		out = append(out, r.Name().String())
	}
	return out
}

func TestAdd_DuplicateNameCaseInsensitive(t *testing.T) {
	b := bookWith(t, "Anna")

	err := b.Add(newRecord(t, "ANNA"))
	if !errors.Is(err, contact.ErrDuplicateName) {
		t.Fatalf("Add(dup) error = %v, want ErrDuplicateName", err)
	}
	if b.Len() != 1 {
		t.Errorf("Len() = %d, want 1", b.Len())
	}
}

func TestFind(t *testing.T) {
	b := bookWith(t, "Anna")

	if r, ok := b.Find("aNNa"); !ok || r.Name().String() != "anna" {
		t.Errorf("Find(aNNa) = %v, %v; want anna", r, ok)
	}
	if _, ok := b.Find("Mark"); ok {
		t.Error("Find(Mark) ok = true, want false")
	}
}

func TestDelete(t *testing.T) {
	t.Run("absent name is a no-op", func(t *testing.T) {
		b := bookWith(t, "Anna", "Mark")
		if b.Delete("Zoe") {
			t.Error("Delete(Zoe) = true, want false")
		}
		if got := names(b.All()); !slices.Equal(got, []string{"anna", "mark"}) {
			t.Errorf("records = %v, want unchanged", got)
		}
	})

	t.Run("existing name removes exactly that record", func(t *testing.T) {
		b := bookWith(t, "Anna", "Banana", "Mark")
		if !b.Delete("BANANA") {
			t.Error("Delete(BANANA) = false, want true")
		}
		if got := names(b.All()); !slices.Equal(got, []string{"anna", "mark"}) {
			t.Errorf("records = %v, want [anna mark]", got)
		}
		if _, ok := b.Find("banana"); ok {
			t.Error("deleted record still found")
		}
	})
}

func TestSearchByName(t *testing.T) {
	// Given Anna, Mark, Banana in insertion order
	b := bookWith(t, "Anna", "Mark", "Banana")

	// When searching for "an"
	got := names(b.SearchByName("an"))

	// Then exactly Anna and Banana are returned in book order
	if !slices.Equal(got, []string{"anna", "banana"}) {
		t.Errorf("SearchByName(an) = %v, want [anna banana]", got)
	}
	if got := b.SearchByName("zz"); len(got) != 0 {
		t.Errorf("SearchByName(zz) = %v, want none", names(got))
	}
}

func TestFindByNote(t *testing.T) {
	b := bookWith(t, "Anna", "Mark", "Zoe")
	anna, _ := b.Find("anna")
	mark, _ := b.Find("mark")
	_ = anna.AddNote("Budget meeting", "monday", nil)
	_ = mark.AddNote("Birthday", "buy a BUDGET gift", nil)

	got := names(b.FindByNote("budget"))
	if !slices.Equal(got, []string{"anna", "mark"}) {
		t.Errorf("FindByNote(budget) = %v, want [anna mark]", got)
	}
	if got := b.FindByNote("holiday"); len(got) != 0 {
		t.Errorf("FindByNote(holiday) = %v, want none", names(got))
	}
}

func TestFindByTags(t *testing.T) {
	// Given one record with legacy comma-joined tags and one with list tags
	b := bookWith(t, "Anna", "Mark", "Zoe", "Kate")
	anna, _ := b.Find("anna")
	mark, _ := b.Find("mark")
	kate, _ := b.Find("kate")
	_ = anna.AddNote("n", "", []string{"work,urgent"})
	_ = mark.AddNote("n", "", []string{"Home", "Work"})
	_ = kate.AddNote("n", "", nil)

	// When searching for work
	got := b.FindByTags([]string{"work"})

	// Then both tagged records match with the folded tag
	if len(got) != 2 {
		t.Fatalf("FindByTags(work) returned %d matches, want 2", len(got))
	}
	if got[0].Record.Name().String() != "anna" || !slices.Equal(got[0].Tags, []string{"work"}) {
		t.Errorf("match[0] = %s %v, want anna [work]", got[0].Record.Name(), got[0].Tags)
	}
	if got[1].Record.Name().String() != "mark" || !slices.Equal(got[1].Tags, []string{"work"}) {
		t.Errorf("match[1] = %s %v, want mark [work]", got[1].Record.Name(), got[1].Tags)
	}

	// And multiple requested tags report every overlap in request order
	multi := b.FindByTags([]string{"URGENT", "home", "work"})
	if len(multi) != 2 {
		t.Fatalf("FindByTags(multi) returned %d matches, want 2", len(multi))
	}
	if !slices.Equal(multi[0].Tags, []string{"urgent", "work"}) {
		t.Errorf("anna tags = %v, want [urgent work]", multi[0].Tags)
	}
	if !slices.Equal(multi[1].Tags, []string{"home", "work"}) {
		t.Errorf("mark tags = %v, want [home work]", multi[1].Tags)
	}

	// And no overlap excludes every record
	if none := b.FindByTags([]string{"travel"}); len(none) != 0 {
		t.Errorf("FindByTags(travel) = %d matches, want 0", len(none))
	}
}

func TestEmails(t *testing.T) {
	b := bookWith(t, "Anna", "Mark")
	anna, _ := b.Find("anna")
	mark, _ := b.Find("mark")
	_ = mark.AddEmail("mark@example.com")
	_ = anna.AddEmail("anna@example.com")
	_ = anna.AddEmail("anna@work.org")

	got := b.Emails()
	var flat []string
	for _, e := range got {
		flat = append(flat, e.Name.String()+":"+e.Email.String())
	}
	want := []string{"anna:anna@example.com", "anna:anna@work.org", "mark:mark@example.com"}
	if !slices.Equal(flat, want) {
		t.Errorf("Emails() = %v, want %v", flat, want)
	}
}

func TestString(t *testing.T) {
	b := bookWith(t, "Anna", "Mark")
	anna, _ := b.Find("anna")
	_ = anna.AddPhone("0501234567")

	want := "Contact name: Anna, phones: 0501234567\nThere are no phones in Mark's record"
	if got := b.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
