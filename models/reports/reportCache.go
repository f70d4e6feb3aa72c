package reports

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/assets_backend/config"
	"bitbucket.org/mmdatafocus/assets_backend/utils"
	"github.com/bsm/redislock"
)

func reportCacheEnabled() bool {
	v := strings.TrimSpace(os.Getenv("ENABLE_REPORT_CACHE"))
	return v == "1" || strings.EqualFold(v, "true") || strings.EqualFold(v, "yes") || strings.EqualFold(v, "on")
}

func reportCacheTTL() time.Duration {
	// Env: REPORT_CACHE_TTL_SECONDS (default 120s)
	ttl := 120
	if v := strings.TrimSpace(os.Getenv("REPORT_CACHE_TTL_SECONDS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			ttl = n
		}
	}
	return time.Duration(ttl) * time.Second
}

func reportSlowMs() int64 {
	// Env: REPORT_SLOW_MS (default 500ms)
	ms := int64(500)
	if v := strings.TrimSpace(os.Getenv("REPORT_SLOW_MS")); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			ms = n
		}
	}
	return ms
}

func logSlowReport(ctx context.Context, name string, started time.Time, extra map[string]any) {
	d := time.Since(started)
	if d.Milliseconds() < reportSlowMs() {
		return
	}
	cid, _ := utils.GetCorrelationIdFromContext(ctx)
	log.Printf("slow_report name=%s ms=%d correlation_id=%s extra=%v", name, d.Milliseconds(), cid, extra)
}

// reportCacheKey hashes the normalized request. Two requests differing only in
// column order still miss each other; that costs a regeneration, nothing else.
func reportCacheKey(req *AssetReportRequest) string {
	h := sha256.New()
	h.Write([]byte(req.ReportType))
	for _, r := range req.ReferenceIds {
		h.Write([]byte{0})
		h.Write([]byte(r))
	}
	h.Write([]byte{1})
	for _, c := range req.Columns {
		h.Write([]byte{0})
		h.Write([]byte(c))
	}
	h.Write([]byte{1})
	h.Write([]byte(req.FundName))
	h.Write([]byte{1})
	h.Write([]byte(req.OperatorCode))
	return "report:asset:" + hex.EncodeToString(h.Sum(nil))
}

// cachedReport returns the cached workbook content for the key, if any.
// The filename is regenerated per request; only the bytes are cached.
func cachedReport(key string) ([]byte, bool) {
	if !reportCacheEnabled() {
		return nil, false
	}
	content, hit, err := config.GetRedisBytes(key)
	if err != nil || !hit {
		return nil, false
	}
	return content, true
}

func storeReport(key string, content []byte) {
	if !reportCacheEnabled() {
		return
	}
	_ = config.SetRedisBytes(key, content, reportCacheTTL())
}

// lockReport serializes generation of identical reports so concurrent
// requests don't all hit the ERP for the same workbook. Best effort: without
// redis, or when the lock cannot be obtained, we just generate.
func lockReport(ctx context.Context, key string) func() {
	if !reportCacheEnabled() {
		return func() {}
	}
	locker := config.GetRedisLock()
	if locker == nil {
		return func() {}
	}
	lock, err := locker.Obtain(ctx, "lock:"+key, 30*time.Second, &redislock.Options{
		RetryStrategy: redislock.LinearBackoff(100 * time.Millisecond),
	})
	if err != nil {
		return func() {}
	}
	return func() { _ = lock.Release(ctx) }
}
