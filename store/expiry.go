// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"time"
)

// ExpireElections ends every active election whose end time has passed and
// returns their ids in the order they were ended.
func (s *Store) ExpireElections() []string {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	var ended []string
	for i := 0; i < len(s.active); {
		e := s.active[i]
		if e.EndTime.IsZero() || e.EndTime.After(now) {
			i++
			continue
		}
		s.endLocked(i)
		ended = append(ended, e.ID)
	}

	if len(ended) > 0 {
		s.persistLocked("expire elections")
	}
	return ended
}

// RunExpiry calls ExpireElections every interval until ctx is done
func (s *Store) RunExpiry(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("election expiry started", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("election expiry stopped")
			return
		case <-ticker.C:
			if ids := s.ExpireElections(); len(ids) > 0 {
				s.logger.Info("expired elections", "election_ids", ids)
			}
		}
	}
}
