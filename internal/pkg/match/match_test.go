package match

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{"identical strings", "hero_idle", "hero_idle", 0},
		{"empty against empty", "", "", 0},
		{"empty against full", "", "hero", 4},
		{"full against empty", "hero", "", 4},
		{"single substitution", "hero", "herp", 1},
		{"single insertion", "hero", "heros", 1},
		{"single deletion", "hero", "her", 1},
		{"classic kitten sitting", "kitten", "sitting", 3},
		{"disjoint strings", "abc", "xyz", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Distance(tt.a, tt.b))
			// distance is symmetric
			assert.Equal(t, tt.want, Distance(tt.b, tt.a))
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Hero_Idle.PNG", "hero_idle"},
		{"strips extension", "hero_idle.png", "hero_idle"},
		{"strips style suffix", "hero_idle_cartoon.png", "hero_idle"},
		{"strips path", "/mnt/art/hero_idle.png", "hero_idle"},
		{"only one suffix removed", "hero_org_cartoon.png", "hero_org"},
		{"no suffix present", "tree_birch.png", "tree_birch"},
		{"empty name", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in, DefaultSuffixes))
		})
	}
}

func TestFindBestMatch_PairsStyledWithOriginal(t *testing.T) {
	heroID := uuid.New()
	treeID := uuid.New()
	candidates := []Candidate{
		{ID: treeID, Name: "tree_birch.png"},
		{ID: heroID, Name: "hero_idle.png"},
	}

	got := FindBestMatch("hero_idle_cartoon.png", candidates, Options{})

	assert.NotNil(t, got)
	assert.Equal(t, heroID, got.AssetID)
	assert.Equal(t, 0, got.Distance)
	assert.True(t, got.Exact)
	assert.Equal(t, 1.0, got.Similarity)
}

func TestFindBestMatch_TieGoesToFirstCandidate(t *testing.T) {
	firstID := uuid.New()
	secondID := uuid.New()
	candidates := []Candidate{
		{ID: firstID, Name: "hero_a.png"},
		{ID: secondID, Name: "hero_b.png"},
	}

	got := FindBestMatch("hero_c.png", candidates, Options{})

	assert.NotNil(t, got)
	assert.Equal(t, firstID, got.AssetID)
	assert.Equal(t, 1, got.Distance)
}

func TestFindBestMatch_RejectsBeyondThreshold(t *testing.T) {
	candidates := []Candidate{
		{ID: uuid.New(), Name: "tree_birch.png"},
	}

	got := FindBestMatch("hero_idle_cartoon.png", candidates, Options{})
	assert.Nil(t, got)

	// a looser threshold accepts the same pair
	got = FindBestMatch("hero_idle_cartoon.png", candidates, Options{MaxDistance: 20})
	assert.NotNil(t, got)
}

func TestFindBestMatch_EmptyInputs(t *testing.T) {
	assert.Nil(t, FindBestMatch("hero.png", nil, Options{}))
	assert.Nil(t, FindBestMatch("", []Candidate{{ID: uuid.New(), Name: "hero.png"}}, Options{}))
}

func TestFindBestMatch_SimilarityReflectsDistance(t *testing.T) {
	candidates := []Candidate{
		{ID: uuid.New(), Name: "hero_idl.png"},
	}

	got := FindBestMatch("hero_idle.png", candidates, Options{})

	assert.NotNil(t, got)
	assert.Equal(t, 1, got.Distance)
	assert.InDelta(t, 1.0-1.0/9.0, got.Similarity, 1e-9)
}
