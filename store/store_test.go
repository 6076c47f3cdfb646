package store

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/danielhkuo/ballotchain/models"
)

const (
	alice = "0x1111111111111111111111111111111111111111"
	bob   = "0x2222222222222222222222222222222222222222"
)

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type recordingPersister struct {
	mu    sync.Mutex
	saves []models.Snapshot
	err   error
}

func (p *recordingPersister) Save(snap models.Snapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.saves = append(p.saves, snap)
	return p.err
}

func (p *recordingPersister) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.saves)
}

func newElection(id string, votes ...int) models.Election {
	e := models.Election{
		ID:           id,
		Title:        "Election " + id,
		Description:  "test election",
		EndTime:      epoch.Add(72 * time.Hour),
		Candidates:   []models.Candidate{},
		Status:       models.StatusActive,
		Transactions: []models.Transaction{},
	}
	for i, v := range votes {
		e.Candidates = append(e.Candidates, models.Candidate{
			ID:    fmt.Sprint(i + 1),
			Name:  fmt.Sprintf("Candidate %d", i+1),
			Party: "Party",
			Votes: v,
		})
		e.TotalVotes += v
	}
	return e
}

func sumVotes(e models.Election) int {
	sum := 0
	for _, c := range e.Candidates {
		sum += c.Votes
	}
	return sum
}

var _ = Describe("Store", func() {

	var (
		store *Store
		now   time.Time
		hashN int
	)

	BeforeEach(func() {
		now = epoch
		hashN = 0
		store = New(
			WithClock(func() time.Time { return now }),
			WithHashFunc(func() (string, error) {
				hashN++
				return fmt.Sprintf("0x%064x", hashN), nil
			}),
			WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		)
	})

	Describe("#AddElection", func() {
		It("returns an identical election from ElectionByID", func() {
			e := newElection("a", 0, 0, 0)
			Expect(store.AddElection(e)).To(Succeed())

			got, ok := store.ElectionByID("a")
			Expect(ok).To(BeTrue())
			Expect(got).To(Equal(e))
			Expect(got.TotalVotes).To(Equal(0))
			for _, c := range got.Candidates {
				Expect(c.Votes).To(Equal(0))
			}
		})

		It("appends to the active elections in order", func() {
			Expect(store.AddElection(newElection("a", 0))).To(Succeed())
			Expect(store.AddElection(newElection("b", 0))).To(Succeed())

			active := store.ActiveElections()
			Expect(active).To(HaveLen(2))
			Expect(active[0].ID).To(Equal("a"))
			Expect(active[1].ID).To(Equal("b"))
		})

		It("defaults an empty status to Active", func() {
			e := newElection("a", 0)
			e.Status = ""
			Expect(store.AddElection(e)).To(Succeed())

			got, _ := store.ElectionByID("a")
			Expect(got.Status).To(Equal(models.StatusActive))
		})

		It("rejects a duplicate id, including ids of past elections", func() {
			Expect(store.AddElection(newElection("a", 0))).To(Succeed())
			Expect(store.AddElection(newElection("a", 0))).To(MatchError(ErrDuplicateElection))

			_, err := store.EndElection("a")
			Expect(err).NotTo(HaveOccurred())
			Expect(store.AddElection(newElection("a", 0))).To(MatchError(ErrDuplicateElection))
		})

		It("rejects an inconsistent total", func() {
			e := newElection("a", 1, 2)
			e.TotalVotes = 5
			Expect(store.AddElection(e)).To(MatchError(ErrInvalidElection))
			Expect(store.ActiveElections()).To(BeEmpty())
		})

		It("rejects a missing id and an Ended status", func() {
			Expect(store.AddElection(newElection("", 0))).To(MatchError(ErrInvalidElection))

			e := newElection("a", 0)
			e.Status = models.StatusEnded
			Expect(store.AddElection(e)).To(MatchError(ErrInvalidElection))
		})

		It("returns copies that do not alias store state", func() {
			Expect(store.AddElection(newElection("a", 0, 0))).To(Succeed())

			got, _ := store.ElectionByID("a")
			got.Candidates[0].Votes = 99
			got.Title = "changed"

			again, _ := store.ElectionByID("a")
			Expect(again.Candidates[0].Votes).To(Equal(0))
			Expect(again.Title).To(Equal("Election a"))
		})
	})

	Describe("#UpdateElection", func() {
		It("merges only the fields that are set", func() {
			Expect(store.AddElection(newElection("a", 0))).To(Succeed())

			title := "New title"
			end := epoch.Add(240 * time.Hour)
			got, err := store.UpdateElection("a", ElectionUpdate{Title: &title, EndTime: &end})
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Title).To(Equal("New title"))
			Expect(got.EndTime).To(Equal(end))
			Expect(got.Description).To(Equal("test election"))
		})

		It("updates past elections too", func() {
			Expect(store.AddElection(newElection("a", 1))).To(Succeed())
			_, err := store.EndElection("a")
			Expect(err).NotTo(HaveOccurred())

			desc := "closed"
			got, err := store.UpdateElection("a", ElectionUpdate{Description: &desc})
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Description).To(Equal("closed"))
			Expect(got.Status).To(Equal(models.StatusEnded))
			Expect(store.PastElections()[0].Description).To(Equal("closed"))
		})

		It("reports unknown ids, empty updates and empty titles", func() {
			title := "x"
			_, err := store.UpdateElection("missing", ElectionUpdate{Title: &title})
			Expect(err).To(MatchError(ErrElectionNotFound))

			Expect(store.AddElection(newElection("a", 0))).To(Succeed())
			_, err = store.UpdateElection("a", ElectionUpdate{})
			Expect(err).To(MatchError(ErrEmptyUpdate))

			empty := ""
			_, err = store.UpdateElection("a", ElectionUpdate{Title: &empty})
			Expect(err).To(MatchError(ErrInvalidElection))
		})
	})

	Describe("#EndElection", func() {
		It("picks the first candidate reaching the maximum", func() {
			Expect(store.AddElection(newElection("a", 10, 30, 30))).To(Succeed())

			ended, err := store.EndElection("a")
			Expect(err).NotTo(HaveOccurred())
			Expect(ended.Status).To(Equal(models.StatusEnded))
			Expect(ended.Candidates[0].Winner).To(BeFalse())
			Expect(ended.Candidates[1].Winner).To(BeTrue())
			Expect(ended.Candidates[2].Winner).To(BeFalse())

			winner, ok := store.WinnerForElection("a")
			Expect(ok).To(BeTrue())
			Expect(winner.ID).To(Equal("2"))
		})

		It("moves the election from active to past", func() {
			Expect(store.AddElection(newElection("a", 1))).To(Succeed())
			Expect(store.AddElection(newElection("b", 1))).To(Succeed())

			_, err := store.EndElection("a")
			Expect(err).NotTo(HaveOccurred())

			Expect(store.ActiveElections()).To(HaveLen(1))
			Expect(store.ActiveElections()[0].ID).To(Equal("b"))
			Expect(store.PastElections()).To(HaveLen(1))
			Expect(store.PastElections()[0].ID).To(Equal("a"))
		})

		It("has no effect the second time", func() {
			Expect(store.AddElection(newElection("a", 1, 2))).To(Succeed())
			_, err := store.EndElection("a")
			Expect(err).NotTo(HaveOccurred())

			_, err = store.EndElection("a")
			Expect(err).To(MatchError(ErrElectionEnded))
			Expect(store.PastElections()).To(HaveLen(1))
		})

		It("reports unknown elections", func() {
			_, err := store.EndElection("missing")
			Expect(err).To(MatchError(ErrElectionNotFound))
		})

		It("ends an election without candidates and without a winner", func() {
			Expect(store.AddElection(newElection("a"))).To(Succeed())
			ended, err := store.EndElection("a")
			Expect(err).NotTo(HaveOccurred())
			Expect(ended.Status).To(Equal(models.StatusEnded))

			_, ok := store.WinnerForElection("a")
			Expect(ok).To(BeFalse())
		})
	})

	Describe("#WinnerForElection", func() {
		It("returns nothing for active elections", func() {
			Expect(store.AddElection(newElection("a", 5, 1))).To(Succeed())
			_, ok := store.WinnerForElection("a")
			Expect(ok).To(BeFalse())

			_, ok = store.WinnerForElection("missing")
			Expect(ok).To(BeFalse())
		})
	})

	Describe("#CastVote", func() {
		BeforeEach(func() {
			Expect(store.AddElection(newElection("a", 0, 0, 0))).To(Succeed())
		})

		It("keeps the total equal to the sum of candidate votes", func() {
			s := New(WithVotePolicy(PolicyAllowRepeat), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
			Expect(s.AddElection(newElection("a", 4, 0, 2))).To(Succeed())

			for i, cid := range []string{"1", "2", "2", "3", "1", "2"} {
				_, err := s.CastVote("a", cid, fmt.Sprintf("0x%040d", i), "")
				Expect(err).NotTo(HaveOccurred())
			}

			e, _ := s.ElectionByID("a")
			Expect(e.TotalVotes).To(Equal(12))
			Expect(sumVotes(e)).To(Equal(e.TotalVotes))
			Expect(e.Candidates[1].Votes).To(Equal(3))
		})

		It("records the transaction, voter and voted flag", func() {
			tx, err := store.CastVote("a", "2", alice, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(tx.Hash).To(Equal(fmt.Sprintf("0x%064x", 1)))
			Expect(tx.Voter).To(Equal(alice))
			Expect(tx.Candidate).To(Equal("Candidate 2"))
			Expect(tx.Timestamp).To(Equal(epoch))

			Expect(store.TransactionsForElection("a")).To(Equal([]models.Transaction{tx}))

			voters := store.VotersForElection("a")
			Expect(voters).To(HaveLen(1))
			Expect(voters[0].Address).To(Equal(alice))
			Expect(voters[0].Registered).To(BeTrue())
			Expect(voters[0].HasVoted).To(BeTrue())
			Expect(voters[0].VotedFor).To(Equal("Candidate 2"))
			Expect(*voters[0].Timestamp).To(Equal(epoch))

			Expect(store.HasVoted("a")).To(BeTrue())
			Expect(store.HasAddressVoted("a", alice)).To(BeTrue())
			Expect(store.HasAddressVoted("a", bob)).To(BeFalse())
		})

		It("keeps the given candidate name", func() {
			tx, err := store.CastVote("a", "1", alice, "Jane Smith")
			Expect(err).NotTo(HaveOccurred())
			Expect(tx.Candidate).To(Equal("Jane Smith"))
		})

		It("prepends transactions newest first", func() {
			first, _ := store.CastVote("a", "1", alice, "")
			now = now.Add(time.Minute)
			second, _ := store.CastVote("a", "3", bob, "")

			txs := store.TransactionsForElection("a")
			Expect(txs).To(Equal([]models.Transaction{second, first}))
		})

		It("rejects a second vote from the same address", func() {
			_, err := store.CastVote("a", "1", alice, "")
			Expect(err).NotTo(HaveOccurred())

			_, err = store.CastVote("a", "2", "0x1111111111111111111111111111111111111111", "")
			Expect(err).To(MatchError(ErrDuplicateVote))

			e, _ := store.ElectionByID("a")
			Expect(e.TotalVotes).To(Equal(1))
			Expect(store.VotersForElection("a")).To(HaveLen(1))
			Expect(store.TransactionsForElection("a")).To(HaveLen(1))
		})

		It("allows repeat votes under PolicyAllowRepeat", func() {
			s := New(WithVotePolicy(PolicyAllowRepeat), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
			Expect(s.AddElection(newElection("a", 0, 0))).To(Succeed())

			_, err := s.CastVote("a", "1", alice, "")
			Expect(err).NotTo(HaveOccurred())
			_, err = s.CastVote("a", "1", alice, "")
			Expect(err).NotTo(HaveOccurred())

			e, _ := s.ElectionByID("a")
			Expect(e.Candidates[0].Votes).To(Equal(2))
			Expect(s.VotersForElection("a")).To(HaveLen(2))
		})

		It("fails for an unknown election without touching any state", func() {
			_, err := store.CastVote("X", "1", alice, "Someone")
			Expect(err).To(MatchError(ErrElectionNotFound))

			Expect(store.VotersForElection("X")).To(BeEmpty())
			Expect(store.TransactionsForElection("X")).To(BeEmpty())
			Expect(store.HasVoted("X")).To(BeFalse())
			Expect(hashN).To(Equal(0))
		})

		It("fails for an unknown candidate without touching any state", func() {
			_, err := store.CastVote("a", "9", alice, "")
			Expect(err).To(MatchError(ErrCandidateNotFound))

			e, _ := store.ElectionByID("a")
			Expect(e.TotalVotes).To(Equal(0))
			Expect(e.Transactions).To(BeEmpty())
			Expect(store.VotersForElection("a")).To(BeEmpty())
			Expect(store.HasVoted("a")).To(BeFalse())
		})

		It("fails for an ended election", func() {
			_, err := store.EndElection("a")
			Expect(err).NotTo(HaveOccurred())

			_, err = store.CastVote("a", "1", alice, "")
			Expect(err).To(MatchError(ErrElectionEnded))
		})

		It("fails for a pending election", func() {
			e := newElection("p", 0)
			e.Status = models.StatusPending
			Expect(store.AddElection(e)).To(Succeed())

			_, err := store.CastVote("p", "1", alice, "")
			Expect(err).To(MatchError(ErrElectionNotOpen))
		})

		It("fails when the hash cannot be generated", func() {
			s := New(
				WithHashFunc(func() (string, error) { return "", errors.New("entropy exhausted") }),
				WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
			)
			Expect(s.AddElection(newElection("a", 0))).To(Succeed())

			_, err := s.CastVote("a", "1", alice, "")
			Expect(err).To(HaveOccurred())
			e, _ := s.ElectionByID("a")
			Expect(e.TotalVotes).To(Equal(0))
		})

		It("counts concurrent votes exactly", func() {
			s := New(WithVotePolicy(PolicyAllowRepeat), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
			Expect(s.AddElection(newElection("a", 0, 0))).To(Succeed())

			var wg sync.WaitGroup
			for i := 0; i < 50; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					defer GinkgoRecover()
					_, err := s.CastVote("a", fmt.Sprint(i%2+1), alice, "")
					Expect(err).NotTo(HaveOccurred())
				}(i)
			}
			wg.Wait()

			e, _ := s.ElectionByID("a")
			Expect(e.TotalVotes).To(Equal(50))
			Expect(sumVotes(e)).To(Equal(50))
			Expect(e.Transactions).To(HaveLen(50))
		})
	})

	Describe("#RegisterVoter", func() {
		BeforeEach(func() {
			Expect(store.AddElection(newElection("a", 0, 0))).To(Succeed())
		})

		It("adds a registered voter who has not voted", func() {
			v, err := store.RegisterVoter("a", alice)
			Expect(err).NotTo(HaveOccurred())
			Expect(v.Registered).To(BeTrue())
			Expect(v.HasVoted).To(BeFalse())
			Expect(store.HasAddressVoted("a", alice)).To(BeFalse())
		})

		It("completes the registered record when the voter votes", func() {
			_, err := store.RegisterVoter("a", alice)
			Expect(err).NotTo(HaveOccurred())

			_, err = store.CastVote("a", "2", alice, "")
			Expect(err).NotTo(HaveOccurred())

			voters := store.VotersForElection("a")
			Expect(voters).To(HaveLen(1))
			Expect(voters[0].HasVoted).To(BeTrue())
			Expect(voters[0].VotedFor).To(Equal("Candidate 2"))
		})

		It("rejects duplicates and unknown or ended elections", func() {
			_, err := store.RegisterVoter("a", alice)
			Expect(err).NotTo(HaveOccurred())
			_, err = store.RegisterVoter("a", alice)
			Expect(err).To(MatchError(ErrDuplicateVoter))

			_, err = store.RegisterVoter("missing", alice)
			Expect(err).To(MatchError(ErrElectionNotFound))

			_, err = store.EndElection("a")
			Expect(err).NotTo(HaveOccurred())
			_, err = store.RegisterVoter("a", bob)
			Expect(err).To(MatchError(ErrElectionEnded))
		})
	})

	Describe("#MarkElectionAsVoted", func() {
		It("sets the voted flag without a vote", func() {
			Expect(store.HasVoted("a")).To(BeFalse())
			store.MarkElectionAsVoted("a")
			Expect(store.HasVoted("a")).To(BeTrue())
			Expect(store.VotersForElection("a")).To(BeEmpty())
		})
	})

	Describe("#RecentlyEndedElections", func() {
		It("reports the same election on every call inside the window", func() {
			e := newElection("a", 3, 1)
			e.EndTime = epoch.Add(-2 * time.Hour)
			Expect(store.AddElection(e)).To(Succeed())
			_, err := store.EndElection("a")
			Expect(err).NotTo(HaveOccurred())

			first := store.RecentlyEndedElections()
			Expect(first).To(HaveLen(1))
			Expect(first[0].ID).To(Equal("a"))

			now = now.Add(time.Hour)
			second := store.RecentlyEndedElections()
			Expect(second).To(HaveLen(1))
			Expect(second[0].ID).To(Equal("a"))
		})

		It("skips elections outside the window and active elections", func() {
			old := newElection("old", 1)
			old.EndTime = epoch.Add(-48 * time.Hour)
			Expect(store.AddElection(old)).To(Succeed())
			_, err := store.EndElection("old")
			Expect(err).NotTo(HaveOccurred())

			recent := newElection("recent", 1)
			recent.EndTime = epoch.Add(-time.Hour)
			Expect(store.AddElection(recent)).To(Succeed())

			Expect(store.RecentlyEndedElections()).To(BeEmpty())
		})

		It("honours a custom window", func() {
			s := New(
				WithClock(func() time.Time { return epoch }),
				WithRecentWindow(72*time.Hour),
				WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
			)
			old := newElection("old", 1)
			old.EndTime = epoch.Add(-48 * time.Hour)
			Expect(s.AddElection(old)).To(Succeed())
			_, err := s.EndElection("old")
			Expect(err).NotTo(HaveOccurred())

			Expect(s.RecentlyEndedElections()).To(HaveLen(1))
		})
	})

	Describe("#ExpireElections", func() {
		It("ends only the elections whose end time has passed", func() {
			expired := newElection("expired", 2, 5)
			expired.EndTime = epoch.Add(-time.Minute)
			Expect(store.AddElection(expired)).To(Succeed())
			Expect(store.AddElection(newElection("running", 1))).To(Succeed())

			Expect(store.ExpireElections()).To(Equal([]string{"expired"}))

			Expect(store.ActiveElections()).To(HaveLen(1))
			winner, ok := store.WinnerForElection("expired")
			Expect(ok).To(BeTrue())
			Expect(winner.ID).To(Equal("2"))

			Expect(store.ExpireElections()).To(BeEmpty())
		})
	})

	Describe("#Stats", func() {
		It("counts elections, voters and votes", func() {
			store.Restore(SampleSnapshot(epoch))
			_, err := store.CastVote("1", "1", alice, "")
			Expect(err).NotTo(HaveOccurred())

			st := store.Stats()
			Expect(st.TotalElections).To(Equal(3))
			Expect(st.ActiveElections).To(Equal(2))
			Expect(st.PastElections).To(Equal(1))
			Expect(st.TotalVoters).To(Equal(1))
			Expect(st.TotalVotes).To(Equal(343 + 1 + 258 + 2943))
		})
	})

	Describe("persistence", func() {
		It("saves after every successful mutation only", func() {
			p := &recordingPersister{}
			s := New(WithPersister(p), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

			Expect(s.AddElection(newElection("a", 0, 0))).To(Succeed())
			_, err := s.CastVote("a", "1", alice, "")
			Expect(err).NotTo(HaveOccurred())
			_, err = s.CastVote("a", "9", bob, "")
			Expect(err).To(HaveOccurred())
			_, err = s.EndElection("a")
			Expect(err).NotTo(HaveOccurred())

			Expect(p.count()).To(Equal(3))
			last := p.saves[2]
			Expect(last.Active).To(BeEmpty())
			Expect(last.Past).To(HaveLen(1))
			Expect(last.VotedElections).To(HaveKeyWithValue("a", true))
			Expect(last.Voters["a"]).To(HaveLen(1))
		})

		It("keeps the mutation when saving fails", func() {
			p := &recordingPersister{err: errors.New("disk full")}
			s := New(WithPersister(p), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

			Expect(s.AddElection(newElection("a", 0))).To(Succeed())
			_, ok := s.ElectionByID("a")
			Expect(ok).To(BeTrue())
		})

		It("restores a snapshot", func() {
			s := New(WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
			s.Restore(store.Snapshot())
			Expect(s.ActiveElections()).To(BeEmpty())

			snap := SampleSnapshot(epoch)
			store.Restore(snap)
			Expect(store.Snapshot()).To(Equal(snap))
		})
	})

	Describe("SampleSnapshot", func() {
		It("contains consistent totals", func() {
			snap := SampleSnapshot(epoch)
			for _, e := range append(snap.Active, snap.Past...) {
				Expect(sumVotes(e)).To(Equal(e.TotalVotes), e.ID)
			}
			Expect(snap.Past[0].Candidates[0].Winner).To(BeTrue())
		})
	})

	Describe("ParseVotePolicy", func() {
		It("parses known policies", func() {
			p, err := ParseVotePolicy("allow-repeat")
			Expect(err).NotTo(HaveOccurred())
			Expect(p).To(Equal(PolicyAllowRepeat))

			p, err = ParseVotePolicy("")
			Expect(err).NotTo(HaveOccurred())
			Expect(p).To(Equal(PolicyOnePerAddress))
			Expect(p.String()).To(Equal("one-per-address"))

			_, err = ParseVotePolicy("sometimes")
			Expect(err).To(HaveOccurred())
		})
	})
})
