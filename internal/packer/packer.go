// Package packer implements a forward-only shelf rectangle packer for
// laying out lightmap tiles into fixed-size atlas pages, in the spirit of
// the teacher's terrain chunk layout but generalized to arbitrary rect
// sizes instead of a fixed grid.
package packer

import "sort"

// Rect is a width/height pair to be placed.
type Rect struct {
	Width, Height int
}

// Placement is where a Rect ended up: which page, and its top-left corner
// within that page.
type Placement struct {
	Page int
	X, Y int
}

// Packer places rectangles into pageSize x pageSize pages using a
// single-pass shelf algorithm: rectangles are placed left to right on the
// current shelf; when a rectangle doesn't fit the remaining width, a new
// shelf starts below the tallest rectangle placed on the current shelf;
// when a shelf doesn't fit in the remaining page height, a new page
// starts. Pages are never revisited once advanced past.
type Packer struct {
	pageSize int

	curPage        int
	curX           int
	curShelfY      int
	curShelfHeight int
}

// New creates a Packer for square pages of the given size.
func New(pageSize int) *Packer {
	return &Packer{pageSize: pageSize}
}

// Insert places a single rectangle, advancing shelves and pages as needed.
// It never fails: if a rectangle is larger than a page in either
// dimension, it is placed alone on its own fresh page at (0,0), overflowing
// that page's bounds, so callers that enforce a max-page-count should
// check the rect size themselves.
func (p *Packer) Insert(r Rect) Placement {
	if r.Width > p.pageSize || r.Height > p.pageSize {
		p.startPage()
		placed := Placement{Page: p.curPage, X: 0, Y: 0}
		p.startPage() // this oversized tile owns the whole page
		return placed
	}

	if p.curX+r.Width > p.pageSize {
		// Doesn't fit on the current shelf; start a new one.
		p.curShelfY += p.curShelfHeight
		p.curX = 0
		p.curShelfHeight = 0
	}

	if p.curShelfY+r.Height > p.pageSize {
		// Doesn't fit on the current page; start a new one.
		p.startPage()
	}

	placed := Placement{Page: p.curPage, X: p.curX, Y: p.curShelfY}
	p.curX += r.Width
	if r.Height > p.curShelfHeight {
		p.curShelfHeight = r.Height
	}
	return placed
}

func (p *Packer) startPage() {
	p.curPage++
	p.curX = 0
	p.curShelfY = 0
	p.curShelfHeight = 0
}

// PageCount returns how many pages have been touched so far (1-based; a
// fresh Packer that has placed at least one rect reports at least 1).
func (p *Packer) PageCount() int {
	return p.curPage + 1
}

// Pack sorts rects by height descending, then width descending (the
// standard shelf-packer ordering that minimizes wasted shelf height), and
// inserts them in that order. It returns placements in input order (not
// sorted order) so callers can zip them back up with their source tiles.
func Pack(pageSize int, rects []Rect) []Placement {
	order := make([]int, len(rects))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := rects[order[i]], rects[order[j]]
		if a.Height != b.Height {
			return a.Height > b.Height
		}
		return a.Width > b.Width
	})

	p := New(pageSize)
	placements := make([]Placement, len(rects))
	for _, idx := range order {
		placements[idx] = p.Insert(rects[idx])
	}
	return placements
}
