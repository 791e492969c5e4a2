package services

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/zachariahbioto-bot/Nutrition/models"
)

const candidateTTL = 30 * time.Minute

// CandidateSession is the pending set of generated recipes for one user.
type CandidateSession struct {
	Token       string            `json:"token"`
	Ingredients string            `json:"ingredients"`
	MealType    models.MealType   `json:"meal_type"`
	Servings    int               `json:"servings"`
	Candidates  []RecipeCandidate `json:"candidates"`
	ExpiresAt   time.Time         `json:"expires_at"`
}

// CandidateSlots keeps at most one session per user. Put replaces, Take
// consumes, and entries expire on their own.
type CandidateSlots struct {
	mu  sync.Mutex // orders Put, Take, Restore and Clear
	c   *cache.Cache
	ttl time.Duration
}

func NewCandidateSlots(ttl time.Duration) *CandidateSlots {
	if ttl <= 0 {
		ttl = candidateTTL
	}
	return &CandidateSlots{c: cache.New(ttl, ttl), ttl: ttl}
}

func slotKey(userID uint) string { return "recipes_" + strconv.FormatUint(uint64(userID), 10) }

func (s *CandidateSlots) Put(userID uint, sess CandidateSession) *CandidateSession {
	sess.Token = uuid.NewString()
	sess.ExpiresAt = time.Now().Add(s.ttl)
	s.mu.Lock()
	s.c.Set(slotKey(userID), &sess, s.ttl)
	s.mu.Unlock()
	return &sess
}

func (s *CandidateSlots) Get(userID uint) (*CandidateSession, bool) {
	v, ok := s.c.Get(slotKey(userID))
	if !ok {
		return nil, false
	}
	return v.(*CandidateSession), true
}

// Take removes and returns the session when token matches it. An empty token
// matches whatever session is pending.
func (s *CandidateSlots) Take(userID uint, token string) (*CandidateSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.Get(userID)
	if !ok {
		return nil, errNoPendingRecipes
	}
	if token != "" && token != sess.Token {
		return nil, fmt.Errorf("recipe session %s is no longer pending: %w", token, errNoPendingRecipes)
	}
	s.c.Delete(slotKey(userID))
	return sess, nil
}

// Restore puts back a session taken by Take, keeping its token and expiry.
// A session generated in the meantime wins.
func (s *CandidateSlots) Restore(userID uint, sess *CandidateSession) {
	left := time.Until(sess.ExpiresAt)
	if left <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.c.Add(slotKey(userID), sess, left)
}

func (s *CandidateSlots) Clear(userID uint) {
	s.mu.Lock()
	s.c.Delete(slotKey(userID))
	s.mu.Unlock()
}
