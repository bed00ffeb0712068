package site

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/pm-portfolio/internal/store"
)

// visitRetentionMonths is how long anonymised visits are kept.
const visitRetentionMonths = 12

type visitTracker struct {
	store Store
	salt  string
	now   func() time.Time
	// inflight counts background writes so shutdown can drain them.
	inflight sync.WaitGroup
	// wait, when set, is called after each recording finishes; tests
	// use it to synchronise with the background write.
	wait func()
}

func newVisitTracker(st Store, now func() time.Time) *visitTracker {
	return &visitTracker{store: st, salt: randomToken(), now: now}
}

func randomToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Fatal("Failed to generate random token:", err)
	}
	return hex.EncodeToString(b)
}

// hashIP returns a salted, truncated hash so raw addresses are never stored.
func (t *visitTracker) hashIP(ip string) string {
	h := sha256.Sum256([]byte(ip + t.salt))
	return hex.EncodeToString(h[:])[:16]
}

// middleware records full page loads of "/" in the background. Fragment
// requests and visitors sending Do Not Track are skipped.
func (t *visitTracker) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method != http.MethodGet || c.Request.URL.Path != "/" ||
			c.Writer.Status() != http.StatusOK || isHTMX(c) || c.GetHeader("DNT") == "1" {
			return
		}
		v := store.Visit{
			HashedIP:  t.hashIP(c.ClientIP()),
			UserAgent: c.GetHeader("User-Agent"),
			Path:      c.Request.URL.Path,
			CreatedAt: t.now(),
		}
		t.inflight.Add(1)
		go t.record(v)
	}
}

func (t *visitTracker) record(v store.Visit) {
	defer t.inflight.Done()
	if t.wait != nil {
		defer t.wait()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := t.store.RecordVisit(ctx, v); err != nil {
		log.Printf("Error recording visit: %v", err)
	}
}

// drain blocks until every background write has finished.
func (t *visitTracker) drain() {
	t.inflight.Wait()
}

func (t *visitTracker) retentionCutoff() time.Time {
	return t.now().AddDate(0, -visitRetentionMonths, 0)
}

// prune removes visits older than the retention period and returns how
// many were deleted.
func (t *visitTracker) prune(ctx context.Context) (int64, error) {
	n, err := t.store.PruneVisits(ctx, t.retentionCutoff())
	if err != nil {
		log.Printf("Error cleaning up old visits: %v", err)
		return 0, err
	}
	if n > 0 {
		log.Printf("Privacy cleanup: removed %d visits older than %d months", n, visitRetentionMonths)
	}
	return n, nil
}
