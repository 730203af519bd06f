package sntp

import (
	"sort"
	"sync"
	"time"

	"github.com/beevik/ntp"
	"github.com/go-i2p/logger"
	"github.com/samber/oops"
	"golang.org/x/time/rate"

	"github.com/go-timekit/timekit/lib/clock/source"
	"github.com/go-timekit/timekit/lib/timespec"
)

var log = logger.GetGoI2PLogger()

const (
	defaultQueryTimeout     = 10 * time.Second
	defaultMinQueryInterval = 5 * time.Minute
	maxRTT                  = 2 * time.Second
	maxClockOffset          = 10 * time.Minute
)

var defaultServers = []string{"0.pool.ntp.org", "1.pool.ntp.org", "2.pool.ntp.org"}

// NTPClient abstracts the NTP query so tests can inject fakes.
type NTPClient interface {
	QueryWithOptions(host string, options ntp.QueryOptions) (*ntp.Response, error)
}

// DefaultNTPClient queries real NTP servers.
type DefaultNTPClient struct{}

func (c *DefaultNTPClient) QueryWithOptions(host string, options ntp.QueryOptions) (*ntp.Response, error) {
	return ntp.QueryWithOptions(host, options)
}

// Options configures a Source. Zero fields fall back to defaults.
type Options struct {
	// Servers to query during Sync.
	Servers []string
	// QueryTimeout bounds each individual server query.
	QueryTimeout time.Duration
	// MinQueryInterval rate-limits Sync calls.
	MinQueryInterval time.Duration
}

// Source applies an NTP-derived offset to wall readings from an inner source.
// It implements source.Source and is safe for concurrent use.
type Source struct {
	inner   source.Source
	client  NTPClient
	servers []string
	timeout time.Duration
	limiter *rate.Limiter

	mu     sync.RWMutex
	offset time.Duration
}

// NewSource wraps inner with NTP correction. The offset starts at zero, so
// the source behaves exactly like inner until the first Sync (or SetOffset).
func NewSource(inner source.Source, client NTPClient, opts Options) *Source {
	if client == nil {
		client = &DefaultNTPClient{}
	}
	servers := opts.Servers
	if len(servers) == 0 {
		servers = defaultServers
	}
	timeout := opts.QueryTimeout
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	interval := opts.MinQueryInterval
	if interval <= 0 {
		interval = defaultMinQueryInterval
	}
	return &Source{
		inner:   inner,
		client:  client,
		servers: servers,
		timeout: timeout,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Sync queries the configured servers once and stores the median of the
// validated clock offsets. It fails when the rate limit is exhausted or when
// no server returns a usable response; the previous offset is kept either way.
func (s *Source) Sync() error {
	if !s.limiter.Allow() {
		return oops.Errorf("sntp: sync rate limit exceeded, minimum interval not elapsed")
	}

	var offsets []time.Duration
	for _, server := range s.servers {
		resp, err := s.client.QueryWithOptions(server, ntp.QueryOptions{Timeout: s.timeout})
		if err != nil {
			log.WithFields(map[string]interface{}{
				"server": server,
				"error":  err.Error(),
			}).Warn("sntp: server query failed")
			continue
		}
		if !validResponse(resp) {
			log.WithField("server", server).Warn("sntp: rejecting invalid response")
			continue
		}
		offsets = append(offsets, resp.ClockOffset)
	}
	if len(offsets) == 0 {
		return oops.Errorf("sntp: no usable responses from %d servers", len(s.servers))
	}

	sort.Slice(offsets, func(i, j int) bool { return offsets[i] < offsets[j] })
	median := offsets[len(offsets)/2]

	s.mu.Lock()
	s.offset = median
	s.mu.Unlock()

	log.WithFields(map[string]interface{}{
		"offset":  median.String(),
		"servers": len(offsets),
	}).Debug("sntp: clock offset updated")
	return nil
}

// Offset returns the currently applied correction.
func (s *Source) Offset() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.offset
}

// SetOffset installs a correction directly, bypassing the NTP query. Useful
// when an external subsystem already knows the skew.
func (s *Source) SetOffset(offset time.Duration) {
	s.mu.Lock()
	s.offset = offset
	s.mu.Unlock()
}

// ReadWall returns the inner wall reading shifted by the current offset. The
// shift goes through checked arithmetic: a correction that would leave the
// representable range is an error, never a wrapped timestamp.
func (s *Source) ReadWall() (source.Reading, error) {
	r, err := s.inner.ReadWall()
	if err != nil {
		return source.Reading{}, err
	}
	offset := s.Offset()
	if offset == 0 {
		return r, nil
	}

	ts, err := r.Timespec()
	if err != nil {
		return source.Reading{}, oops.Wrapf(err, "sntp: inner reading rejected")
	}
	adjusted, err := applyOffset(ts, offset)
	if err != nil {
		return source.Reading{}, err
	}
	return source.Reading{
		Seconds:  adjusted.Seconds(),
		Fraction: int64(adjusted.Nanoseconds()),
		Unit:     source.Nanoseconds,
	}, nil
}

// ReadMonotonic passes through to the inner source unmodified.
func (s *Source) ReadMonotonic() (source.Reading, error) {
	return s.inner.ReadMonotonic()
}

// validResponse screens a server response before its offset is trusted:
// synchronized leap indicator, sane stratum, bounded round trip, bounded
// offset, and a nonzero server time.
func validResponse(resp *ntp.Response) bool {
	if resp.Leap == ntp.LeapNotInSync {
		return false
	}
	if resp.Stratum == 0 || resp.Stratum > 15 {
		return false
	}
	if resp.RTT < 0 || resp.RTT > maxRTT {
		return false
	}
	if absDuration(resp.ClockOffset) > maxClockOffset {
		return false
	}
	if resp.Time.IsZero() {
		return false
	}
	return true
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

func applyOffset(ts timespec.Timespec, offset time.Duration) (timespec.Timespec, error) {
	if offset > 0 {
		d, err := timespec.DurationFromStd(offset)
		if err != nil {
			return timespec.Timespec{}, err
		}
		out, ok := ts.CheckedAdd(d)
		if !ok {
			return timespec.Timespec{}, oops.Errorf("sntp: offset %s overflows reading %s", offset, ts)
		}
		return out, nil
	}
	d, err := timespec.DurationFromStd(-offset)
	if err != nil {
		return timespec.Timespec{}, err
	}
	out, ok := ts.CheckedSub(d)
	if !ok {
		return timespec.Timespec{}, oops.Errorf("sntp: offset %s underflows reading %s", offset, ts)
	}
	return out, nil
}
