package bake

import "fmt"

// errTileTooLarge reports a packing failure per the spec's error-handling
// design: a tile larger than the configured atlas size is fatal, not a
// skip, since no page could ever hold it.
func errTileTooLarge(tileIdx, width, height, textureSize int) error {
	return fmt.Errorf("bake: tile %d (%dx%d) exceeds lightmap texture size %d", tileIdx, width, height, textureSize)
}

// errTooManyPages reports an atlas-page-ceiling overflow.
func errTooManyPages(pageCount, maxPages int) error {
	return fmt.Errorf("bake: atlas needs %d pages, exceeds configured ceiling %d", pageCount, maxPages)
}
