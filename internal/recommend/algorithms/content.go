// Steamlens - Steam Playtime Analytics and Recommendation Service
// Copyright 2026 Steamlens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

package algorithms

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/steamlens/steamlens/internal/recommend"
)

// ContentConfig contains configuration for the content similarity model.
type ContentConfig struct {
	// SampleRatio bounds the candidate fraction scanned per lookup.
	// 1.0 scans the full catalog; 0.5 scans every second item. Sampling is
	// a deterministic stride, not random, so repeated lookups agree.
	SampleRatio float64
}

// DefaultContentConfig returns default configuration.
func DefaultContentConfig() ContentConfig {
	return ContentConfig{SampleRatio: 1.0}
}

// ContentTFIDF finds items whose name and genre text are closest to a given
// item under TF-IDF weighted cosine similarity.
//
// Term weights use the smoothed formulation idf = log((1+N)/(1+df)) + 1,
// which keeps terms that appear in every document at a non-zero weight.
// Vectors and norms are precomputed at training time; a lookup only scores
// candidates against the source vector.
type ContentTFIDF struct {
	BaseAlgorithm
	config ContentConfig

	// items holds the deduplicated catalog in export order
	items []recommend.Item

	// index maps item ID to position in items
	index map[int64]int

	// vectors holds the TF-IDF weight vector per item
	vectors []map[string]float64

	// norms holds the precomputed Euclidean norm per vector
	norms []float64
}

// NewContentTFIDF creates a new content similarity model.
func NewContentTFIDF(cfg ContentConfig) *ContentTFIDF {
	if cfg.SampleRatio <= 0 || cfg.SampleRatio > 1 {
		cfg.SampleRatio = 1.0
	}

	return &ContentTFIDF{
		BaseAlgorithm: NewBaseAlgorithm("content_tfidf"),
		config:        cfg,
		index:         make(map[int64]int),
	}
}

// Train builds TF-IDF vectors over the item catalog. Duplicate item IDs keep
// their first occurrence so row order in the export stays authoritative.
func (c *ContentTFIDF) Train(ctx context.Context, items []recommend.Item) error {
	c.acquireTrainLock()
	defer c.releaseTrainLock()

	if ContextCancelled(ctx) {
		return ctx.Err()
	}

	// Dedupe by ID, first occurrence wins
	c.items = make([]recommend.Item, 0, len(items))
	c.index = make(map[int64]int, len(items))
	for i := range items {
		if _, ok := c.index[items[i].ID]; ok {
			continue
		}
		c.index[items[i].ID] = len(c.items)
		c.items = append(c.items, items[i])
	}

	// Term frequencies per document
	termFreqs := make([]map[string]float64, len(c.items))
	docFreq := make(map[string]int)
	for i := range c.items {
		tokens := tokenize(c.items[i].Name + " " + c.items[i].Genres)
		tf := make(map[string]float64, len(tokens))
		for _, tok := range tokens {
			tf[tok]++
		}
		if n := float64(len(tokens)); n > 0 {
			for tok := range tf {
				tf[tok] /= n
			}
		}
		for tok := range tf {
			docFreq[tok]++
		}
		termFreqs[i] = tf
	}

	if ContextCancelled(ctx) {
		return ctx.Err()
	}

	// Weight vectors and norms
	n := float64(len(c.items))
	c.vectors = make([]map[string]float64, len(c.items))
	c.norms = make([]float64, len(c.items))
	for i, tf := range termFreqs {
		vec := make(map[string]float64, len(tf))
		var sumSquares float64
		for tok, f := range tf {
			idf := math.Log((1+n)/(1+float64(docFreq[tok]))) + 1
			w := f * idf
			vec[tok] = w
			sumSquares += w * w
		}
		c.vectors[i] = vec
		c.norms[i] = math.Sqrt(sumSquares)
	}

	c.markTrained()
	return nil
}

// SimilarTo returns up to n names of items most similar to the given item.
// The source itself and items sharing its name are excluded, and duplicate
// names among candidates collapse to their best-ranked occurrence. When the
// catalog cannot supply n distinct names, the returned message says how many
// were found; a shortfall is a valid result, not an error.
func (c *ContentTFIDF) SimilarTo(itemID int64, n int) ([]string, string, error) {
	c.acquirePredictLock()
	defer c.releasePredictLock()

	if !c.trained {
		return nil, "", recommend.ErrNotTrained
	}

	pos, ok := c.index[itemID]
	if !ok {
		return nil, "", recommend.ErrUnknownItem
	}

	source := c.vectors[pos]
	sourceNorm := c.norms[pos]
	sourceName := c.items[pos].Name

	step := 1
	if c.config.SampleRatio < 1 {
		step = int(1 / c.config.SampleRatio)
	}

	type scored struct {
		pos   int
		score float64
	}
	candidates := make([]scored, 0, len(c.items)/step+1)

	for i := 0; i < len(c.items); i += step {
		if i == pos {
			continue
		}
		score := c.cosineAt(source, sourceNorm, i)
		if score > 0 {
			candidates = append(candidates, scored{pos: i, score: score})
		}
	}

	// Rank by similarity, ties keep export order
	sort.Slice(candidates, func(a, b int) bool {
		if candidates[a].score != candidates[b].score {
			return candidates[a].score > candidates[b].score
		}
		return candidates[a].pos < candidates[b].pos
	})

	seen := map[string]struct{}{sourceName: {}}
	names := []string{}
	for _, cand := range candidates {
		if len(names) >= n {
			break
		}
		name := c.items[cand.pos].Name
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	message := ""
	if len(names) < n {
		message = fmt.Sprintf("only %d similar titles found", len(names))
	}

	return names, message, nil
}

// cosineAt computes cosine similarity between the source vector and the
// vector at position i using the precomputed norms.
func (c *ContentTFIDF) cosineAt(source map[string]float64, sourceNorm float64, i int) float64 {
	other := c.vectors[i]
	otherNorm := c.norms[i]
	if sourceNorm == 0 || otherNorm == 0 {
		return 0
	}

	small, large := source, other
	if len(other) < len(source) {
		small, large = other, source
	}

	var dot float64
	for tok, w := range small {
		if v, ok := large[tok]; ok {
			dot += w * v
		}
	}

	return dot / (sourceNorm * otherNorm)
}

// ItemCount returns the number of items in the trained catalog.
func (c *ContentTFIDF) ItemCount() int {
	c.acquirePredictLock()
	defer c.releasePredictLock()
	return len(c.items)
}

// tokenize lowercases text and splits on any non-alphanumeric rune.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
