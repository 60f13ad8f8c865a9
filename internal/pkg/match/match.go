package match

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DefaultSuffixes are the style suffixes stripped during name normalization,
// checked in order; at most one is removed.
var DefaultSuffixes = []string{"_cartoon", "_realistic", "_pixel", "_org", "_original"}

// DefaultMaxDistance is the edit-distance threshold above which a best match
// is rejected (unless it is exact).
const DefaultMaxDistance = 3

type Candidate struct {
	ID   uuid.UUID
	Name string
}

type Match struct {
	AssetID    uuid.UUID `json:"asset_id"`
	AssetName  string    `json:"asset_name"`
	Distance   int       `json:"distance"`
	Similarity float64   `json:"similarity"`
	Exact      bool      `json:"exact"`
}

type Options struct {
	MaxDistance int
	Suffixes    []string
}

func (o Options) withDefaults() Options {
	if o.MaxDistance == 0 {
		o.MaxDistance = DefaultMaxDistance
	}
	if o.Suffixes == nil {
		o.Suffixes = DefaultSuffixes
	}
	return o
}

// Normalize lowercases name, strips its extension and removes at most one
// trailing style suffix.
func Normalize(name string, suffixes []string) string {
	if name == "" {
		return ""
	}
	base := filepath.Base(name)
	normalized := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
	for _, suffix := range suffixes {
		if strings.HasSuffix(normalized, suffix) {
			normalized = normalized[:len(normalized)-len(suffix)]
			break
		}
	}
	return normalized
}

// Distance is the Levenshtein edit distance between a and b, with unit cost
// for insertion, deletion and substitution.
func Distance(a, b string) int {
	if a == "" {
		return len(b)
	}
	if b == "" {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

// FindBestMatch normalizes target and every candidate name, then picks the
// candidate at the smallest edit distance. Ties go to the earliest candidate.
// Returns nil when the target is empty, there are no candidates, or the best
// distance exceeds the threshold without being an exact match.
func FindBestMatch(target string, candidates []Candidate, opts Options) *Match {
	opts = opts.withDefaults()

	normTarget := Normalize(target, opts.Suffixes)
	if normTarget == "" || len(candidates) == 0 {
		return nil
	}

	var best *Match
	for _, c := range candidates {
		normName := Normalize(c.Name, opts.Suffixes)
		d := Distance(normTarget, normName)
		if best != nil && d >= best.Distance {
			continue
		}
		maxLen := max(len(normTarget), len(normName))
		similarity := 1.0
		if maxLen > 0 {
			similarity = 1.0 - float64(d)/float64(maxLen)
		}
		best = &Match{
			AssetID:    c.ID,
			AssetName:  c.Name,
			Distance:   d,
			Similarity: similarity,
			Exact:      d == 0,
		}
	}

	if best.Distance > opts.MaxDistance && !best.Exact {
		return nil
	}
	return best
}
