package scraper

import "sync"

// Frontier owns the crawl bookkeeping shared between concurrently
// completing page handlers: the set of every URL ever enqueued and the
// number of records emitted so far. All decisions that read and update
// this state happen under one lock so that two search pages finishing at
// the same time cannot jointly enqueue past the remaining cap, and so
// that check-and-insert into the seen set is atomic.
type Frontier struct {
	mu     sync.Mutex
	seen   map[string]struct{}
	saved  int
	wanted int
}

// NewFrontier builds the bookkeeping for one run targeting wanted records.
func NewFrontier(wanted int) *Frontier {
	if wanted < 1 {
		wanted = 1
	}
	return &Frontier{
		seen:   make(map[string]struct{}),
		wanted: wanted,
	}
}

// PlanSearch decides what a finished search page contributes to the
// frontier: the unseen detail links capped at the remaining result budget,
// and whether the next result page should be followed. Admitted links and
// the next page are marked seen before the lock is released.
func (f *Frontier) PlanSearch(links []string, nextPage string) (enqueue []string, followNext bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	remaining := f.wanted - f.saved
	if remaining < 0 {
		remaining = 0
	}

	for _, link := range links {
		if len(enqueue) >= remaining {
			break
		}
		if _, ok := f.seen[link]; ok {
			continue
		}
		f.seen[link] = struct{}{}
		enqueue = append(enqueue, link)
	}

	if f.saved+len(enqueue) < f.wanted && nextPage != "" {
		if _, ok := f.seen[nextPage]; !ok {
			f.seen[nextPage] = struct{}{}
			followNext = true
		}
	}
	return enqueue, followNext
}

// MarkSeen records a seed URL, reporting whether it was new.
func (f *Frontier) MarkSeen(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.seen[url]; ok {
		return false
	}
	f.seen[url] = struct{}{}
	return true
}

// AtCap reports whether the result budget has been exhausted. Detail pages
// arriving after that point are fetched but ignored.
func (f *Frontier) AtCap() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saved >= f.wanted
}

// CommitSave claims one slot of the result budget. It returns false when
// the budget is already spent, so concurrent detail handlers can never
// push the saved count past the cap.
func (f *Frontier) CommitSave() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saved >= f.wanted {
		return false
	}
	f.saved++
	return true
}

// Saved returns the number of records emitted so far.
func (f *Frontier) Saved() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saved
}

// Wanted returns the result budget for this run.
func (f *Frontier) Wanted() int {
	return f.wanted
}
