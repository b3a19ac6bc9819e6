package bvh

import (
	"testing"

	"github.com/zdray-go/lightbake/pkg/math"
)

func quadVertsIndices() ([]math.Vec3, []uint32) {
	verts := []math.Vec3{
		{-10, -10, 0},
		{10, -10, 0},
		{10, 10, 0},
		{-10, 10, 0},
	}
	indices := []uint32{0, 1, 2, 0, 2, 3}
	return verts, indices
}

func TestFindFirstHit_Quad(t *testing.T) {
	verts, indices := quadVertsIndices()
	tree := Build(verts, indices)

	hit := tree.FindFirstHit(math.Vec3{X: 0, Y: 0, Z: 10}, math.Vec3{X: 0, Y: 0, Z: -10})
	if hit.Triangle < 0 {
		t.Fatalf("expected a hit through the center of the quad")
	}
	if hit.Fraction <= 0 || hit.Fraction >= 1 {
		t.Errorf("expected fraction in (0,1), got %v", hit.Fraction)
	}
}

func TestFindFirstHit_Miss(t *testing.T) {
	verts, indices := quadVertsIndices()
	tree := Build(verts, indices)

	hit := tree.FindFirstHit(math.Vec3{X: 100, Y: 100, Z: 10}, math.Vec3{X: 100, Y: 100, Z: -10})
	if hit.Triangle != -1 {
		t.Errorf("expected a miss outside the quad, got triangle %d", hit.Triangle)
	}
}

func TestFindFirstHit_EmptyMesh(t *testing.T) {
	tree := Build(nil, nil)
	hit := tree.FindFirstHit(math.Vec3{}, math.Vec3{X: 1})
	if hit.Triangle != -1 {
		t.Errorf("expected miss against an empty mesh")
	}
}

func TestOriginalIndex(t *testing.T) {
	verts, indices := quadVertsIndices()
	tree := Build(verts, indices)

	hit := tree.FindFirstHit(math.Vec3{X: 0, Y: 0, Z: 10}, math.Vec3{X: 0, Y: 0, Z: -10})
	if hit.Triangle < 0 {
		t.Fatalf("expected a hit")
	}
	orig := tree.OriginalIndex(hit.Triangle)
	if orig < 0 || orig >= len(indices)/3 {
		t.Errorf("original triangle index %d out of range", orig)
	}
}

func TestFindFirstHit_NearerTriangleWins(t *testing.T) {
	// Two stacked quads; the ray should report the closer one.
	verts := []math.Vec3{
		{-10, -10, 5}, {10, -10, 5}, {10, 10, 5}, {-10, 10, 5},
		{-10, -10, -5}, {10, -10, -5}, {10, 10, -5}, {-10, 10, -5},
	}
	indices := []uint32{
		0, 1, 2, 0, 2, 3,
		4, 5, 6, 4, 6, 7,
	}
	tree := Build(verts, indices)
	hit := tree.FindFirstHit(math.Vec3{X: 0, Y: 0, Z: 100}, math.Vec3{X: 0, Y: 0, Z: -100})
	if hit.Triangle < 0 {
		t.Fatalf("expected a hit")
	}
	orig := tree.OriginalIndex(hit.Triangle)
	if orig > 1 {
		t.Errorf("expected the nearer (top) quad to win, got triangle %d", orig)
	}
}
