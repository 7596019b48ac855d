package scraper

import (
	"fmt"
	"sync"
	"testing"
)

func makeLinks(n int) []string {
	links := make([]string, n)
	for i := range links {
		links[i] = fmt.Sprintf("https://www.billiger.de/products/p-%d", i)
	}
	return links
}

func TestFrontierPlanSearchCapsAtRemaining(t *testing.T) {
	f := NewFrontier(20)
	for i := 0; i < 5; i++ {
		if !f.CommitSave() {
			t.Fatalf("save %d should succeed", i)
		}
	}

	enqueue, followNext := f.PlanSearch(makeLinks(30), "https://www.billiger.de/search?page=2")
	if len(enqueue) != 15 {
		t.Fatalf("enqueued = %d, want 15 (results_wanted - saved)", len(enqueue))
	}
	if followNext {
		t.Fatalf("next page must not be followed when the enqueue fills the budget")
	}
}

func TestFrontierPlanSearchFollowsNextWhenShort(t *testing.T) {
	f := NewFrontier(20)
	next := "https://www.billiger.de/search?page=2"

	enqueue, followNext := f.PlanSearch(makeLinks(4), next)
	if len(enqueue) != 4 {
		t.Fatalf("enqueued = %d, want 4", len(enqueue))
	}
	if !followNext {
		t.Fatalf("next page should be followed while the budget is unmet")
	}

	// The next page is now seen; a second plan must not follow it again.
	_, followAgain := f.PlanSearch(nil, next)
	if followAgain {
		t.Fatalf("a seen next page must not be re-enqueued")
	}
}

func TestFrontierSeenNeverReEnqueued(t *testing.T) {
	f := NewFrontier(100)
	links := makeLinks(10)

	first, _ := f.PlanSearch(links, "")
	if len(first) != 10 {
		t.Fatalf("first plan enqueued %d, want 10", len(first))
	}
	second, _ := f.PlanSearch(links, "")
	if len(second) != 0 {
		t.Fatalf("second plan enqueued %d, want 0", len(second))
	}
}

func TestFrontierPlanSearchZeroRemaining(t *testing.T) {
	f := NewFrontier(1)
	if !f.CommitSave() {
		t.Fatalf("first save should succeed")
	}

	enqueue, followNext := f.PlanSearch(makeLinks(5), "https://www.billiger.de/search?page=2")
	if len(enqueue) != 0 || followNext {
		t.Fatalf("exhausted budget must enqueue nothing, got %d next=%v", len(enqueue), followNext)
	}
}

func TestFrontierCommitSaveNeverExceedsCap(t *testing.T) {
	f := NewFrontier(3)
	saves := 0
	for i := 0; i < 10; i++ {
		if f.CommitSave() {
			saves++
		}
	}
	if saves != 3 {
		t.Fatalf("saves = %d, want 3", saves)
	}
	if !f.AtCap() {
		t.Fatalf("frontier should report the cap as reached")
	}
	if got := f.Saved(); got != 3 {
		t.Fatalf("saved = %d, want 3", got)
	}
}

func TestFrontierConcurrentSavesStayBounded(t *testing.T) {
	f := NewFrontier(50)

	var wg sync.WaitGroup
	var mu sync.Mutex
	committed := 0
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				if f.CommitSave() {
					mu.Lock()
					committed++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	if committed != 50 {
		t.Fatalf("committed = %d, want exactly 50", committed)
	}
	if got := f.Saved(); got != 50 {
		t.Fatalf("saved = %d, want 50", got)
	}
}

func TestFrontierConcurrentPlansRespectBudget(t *testing.T) {
	f := NewFrontier(10)

	var wg sync.WaitGroup
	var mu sync.Mutex
	total := 0
	for w := 0; w < 6; w++ {
		w := w
		wg.Add(1)
		go func() {
			defer wg.Done()
			links := make([]string, 10)
			for i := range links {
				links[i] = fmt.Sprintf("https://www.billiger.de/products/w%d-p%d", w, i)
			}
			enqueue, _ := f.PlanSearch(links, "")
			mu.Lock()
			total += len(enqueue)
			mu.Unlock()
		}()
	}
	wg.Wait()

	if total > 10 {
		t.Fatalf("concurrent plans enqueued %d links, budget is 10", total)
	}
}

func TestFrontierMarkSeen(t *testing.T) {
	f := NewFrontier(5)
	seed := "https://www.billiger.de/search?searchstring=laptop"
	if !f.MarkSeen(seed) {
		t.Fatalf("first mark should be new")
	}
	if f.MarkSeen(seed) {
		t.Fatalf("second mark should report a duplicate")
	}
}
