// Steamlens - Steam Playtime Analytics and Recommendation Service
// Copyright 2026 Steamlens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

package algorithms

import (
	"context"
	"sort"
	"sync"

	"github.com/steamlens/steamlens/internal/recommend"
)

// UserCFConfig contains configuration for the user-neighbor filter.
type UserCFConfig struct {
	// Neighbors is the number of similar users consulted per request.
	Neighbors int

	// ItemsPerNeighbor is how many of each neighbor's top items contribute.
	ItemsPerNeighbor int

	// MinSimilarity filters out near-zero similarities.
	MinSimilarity float64

	// NumWorkers is the number of parallel workers for the similarity
	// precompute.
	NumWorkers int
}

// DefaultUserCFConfig returns default configuration.
func DefaultUserCFConfig() UserCFConfig {
	return UserCFConfig{
		Neighbors:        5,
		ItemsPerNeighbor: 5,
		MinSimilarity:    0.0,
		NumWorkers:       4,
	}
}

// neighbor is a similar user with their similarity score.
type neighbor struct {
	ID         string
	Similarity float64
}

// UserNeighborCF recommends items that a user's nearest neighbors played
// most. Similarity between users is the cosine of their playtime vectors
// over the item catalog, with minutes summed across duplicate records.
//
// A recommendation for user u is the deduplicated union of the top
// ItemsPerNeighbor items of u's top Neighbors most similar users, ordered by
// neighbor rank then item rank.
type UserNeighborCF struct {
	BaseAlgorithm
	config UserCFConfig

	// userVectors stores summed playtime per item for each user
	userVectors map[string]map[int64]float64

	// userTopItems stores each user's items ordered by playtime descending,
	// item ID ascending on ties
	userTopItems map[string][]int64

	// userNeighbors stores precomputed nearest neighbors per user
	userNeighbors map[string][]neighbor

	// itemNames maps item IDs to display names
	itemNames map[int64]string
}

// NewUserNeighborCF creates a new user-neighbor filter.
func NewUserNeighborCF(cfg UserCFConfig) *UserNeighborCF {
	if cfg.Neighbors <= 0 {
		cfg.Neighbors = 5
	}
	if cfg.ItemsPerNeighbor <= 0 {
		cfg.ItemsPerNeighbor = 5
	}
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = 4
	}

	return &UserNeighborCF{
		BaseAlgorithm: NewBaseAlgorithm("user_neighbor_cf"),
		config:        cfg,
		userVectors:   make(map[string]map[int64]float64),
		userTopItems:  make(map[string][]int64),
		userNeighbors: make(map[string][]neighbor),
		itemNames:     make(map[int64]string),
	}
}

// Train builds playtime vectors and precomputes each user's nearest
// neighbors. Pairwise similarity is quadratic in the user count, so the
// computation is chunked across NumWorkers goroutines.
func (u *UserNeighborCF) Train(ctx context.Context, interactions []recommend.Interaction) error {
	u.acquireTrainLock()
	defer u.releaseTrainLock()

	if ContextCancelled(ctx) {
		return ctx.Err()
	}

	// Build playtime vectors, summing duplicate user-item records
	u.userVectors = make(map[string]map[int64]float64)
	u.itemNames = make(map[int64]string)

	for i := range interactions {
		inter := &interactions[i]
		if u.userVectors[inter.UserID] == nil {
			u.userVectors[inter.UserID] = make(map[int64]float64)
		}
		u.userVectors[inter.UserID][inter.ItemID] += inter.PlaytimeMinutes
		if _, ok := u.itemNames[inter.ItemID]; !ok {
			u.itemNames[inter.ItemID] = inter.ItemName
		}
	}

	// Precompute each user's item ranking
	u.userTopItems = make(map[string][]int64, len(u.userVectors))
	for userID, vec := range u.userVectors {
		items := make([]int64, 0, len(vec))
		for itemID := range vec {
			items = append(items, itemID)
		}
		sort.Slice(items, func(a, b int) bool {
			if vec[items[a]] != vec[items[b]] {
				return vec[items[a]] > vec[items[b]]
			}
			return items[a] < items[b]
		})
		u.userTopItems[userID] = items
	}

	if ContextCancelled(ctx) {
		return ctx.Err()
	}

	// Precompute user neighbors in parallel chunks
	u.userNeighbors = make(map[string][]neighbor, len(u.userVectors))
	userIDs := make([]string, 0, len(u.userVectors))
	for uid := range u.userVectors {
		userIDs = append(userIDs, uid)
	}
	sort.Strings(userIDs)

	var wg sync.WaitGroup
	var mu sync.Mutex
	chunkSize := (len(userIDs) + u.config.NumWorkers - 1) / u.config.NumWorkers

	for w := 0; w < u.config.NumWorkers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > len(userIDs) {
			end = len(userIDs)
		}
		if start >= end {
			break
		}

		wg.Add(1)
		go func(users []string) {
			defer wg.Done()

			for _, uid := range users {
				if ContextCancelled(ctx) {
					return
				}

				neighbors := u.computeUserNeighbors(uid, userIDs)

				mu.Lock()
				u.userNeighbors[uid] = neighbors
				mu.Unlock()
			}
		}(userIDs[start:end])
	}

	wg.Wait()

	if ContextCancelled(ctx) {
		return ctx.Err()
	}

	u.markTrained()
	return nil
}

// computeUserNeighbors finds the most similar users for a given user.
// Ties break toward the lexicographically smaller user ID so results are
// stable across training runs.
func (u *UserNeighborCF) computeUserNeighbors(userID string, allUsers []string) []neighbor {
	userVec := u.userVectors[userID]
	if len(userVec) == 0 {
		return nil
	}

	neighbors := make([]neighbor, 0, len(allUsers))

	for _, otherID := range allUsers {
		if otherID == userID {
			continue
		}

		sim := sparseCosine(userVec, u.userVectors[otherID])
		if sim > 0 && sim >= u.config.MinSimilarity {
			neighbors = append(neighbors, neighbor{ID: otherID, Similarity: sim})
		}
	}

	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].Similarity != neighbors[j].Similarity {
			return neighbors[i].Similarity > neighbors[j].Similarity
		}
		return neighbors[i].ID < neighbors[j].ID
	})

	if len(neighbors) > u.config.Neighbors {
		neighbors = neighbors[:u.config.Neighbors]
	}

	return neighbors
}

// Recommend returns item names drawn from the user's nearest neighbors:
// each neighbor contributes its top items, duplicates are dropped, and the
// union keeps neighbor-rank order. A user whose neighbors all overlap with
// few items can receive fewer names than Neighbors*ItemsPerNeighbor.
func (u *UserNeighborCF) Recommend(userID string) ([]string, error) {
	u.acquirePredictLock()
	defer u.releasePredictLock()

	if !u.trained {
		return nil, recommend.ErrNotTrained
	}

	if _, ok := u.userVectors[userID]; !ok {
		return nil, recommend.ErrUnknownUser
	}

	seen := make(map[string]struct{})
	names := []string{}

	for _, n := range u.userNeighbors[userID] {
		topItems := u.userTopItems[n.ID]
		if len(topItems) > u.config.ItemsPerNeighbor {
			topItems = topItems[:u.config.ItemsPerNeighbor]
		}
		for _, itemID := range topItems {
			name := u.itemNames[itemID]
			if name == "" {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}

	return names, nil
}

// UserCount returns the number of users in the trained model.
func (u *UserNeighborCF) UserCount() int {
	u.acquirePredictLock()
	defer u.releasePredictLock()
	return len(u.userVectors)
}
