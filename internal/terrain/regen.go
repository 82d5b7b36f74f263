package terrain

import (
	"context"
	"encoding/binary"
	"hash/fnv"
	"math"
	"sync"

	"terraforge/internal/noise"
	"terraforge/internal/profiling"
)

// Params is the complete governing-parameter snapshot for one
// regeneration. Callers capture it atomically before generation
// starts so a pass never sees a torn mix of old and new values.
type Params struct {
	Noise      noise.Config
	Grid       GridSpec
	Expression string
	Smooth     bool
}

// Key hashes the snapshot with FNV-1a over a canonical binary
// encoding. Two snapshots share a key iff every governing parameter
// matches bit for bit.
func (p Params) Key() uint64 {
	h := fnv.New64a()
	var buf [8]byte

	wu := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	wi := func(v int64) { wu(uint64(v)) }
	wf := func(v float64) { wu(math.Float64bits(v)) }
	wb := func(v bool) {
		if v {
			wu(1)
		} else {
			wu(0)
		}
	}

	n := p.Noise
	wi(int64(n.Base))
	wi(n.Seed)
	wf(n.Frequency)
	wi(int64(n.Fractal.Kind))
	wi(int64(n.Fractal.Octaves))
	wf(n.Fractal.Lacunarity)
	wf(n.Fractal.Gain)
	wf(n.Fractal.WeightedStrength)
	wf(n.Fractal.PingPongStrength)
	if w := n.Warp; w != nil {
		wu(1)
		wi(int64(w.Type))
		wf(w.Amplitude)
		wi(w.Seed)
		wf(w.Frequency)
		wi(int64(w.Fractal))
		wi(int64(w.Octaves))
		wf(w.Lacunarity)
		wf(w.Gain)
	} else {
		wu(0)
	}

	g := p.Grid
	wi(int64(g.SizeX))
	wi(int64(g.SizeY))
	wi(int64(g.SizeZ))
	wf(g.Isolevel)
	wf(g.Amplitude)
	wf(g.VerticalOffset)
	wf(g.OffsetX)
	wf(g.OffsetZ)
	wb(g.Use3D)
	wb(p.Smooth)

	h.Write([]byte(p.Expression))
	return h.Sum64()
}

// Result is one regeneration's output. Exactly one of Voxels or Mesh
// is populated, matching the snapshot's Smooth flag. EvalErr carries
// the expression fallback diagnostic, if any; the geometry is valid
// either way. Timings holds the pass's phase durations.
type Result struct {
	Key     uint64
	Params  Params
	Voxels  VoxelSet
	Mesh    *Mesh
	EvalErr error
	Timings *profiling.Pass
}

// Generate runs one full synchronous regeneration. The context is
// checked between grid slabs; a canceled pass returns ctx.Err() and
// no partial geometry.
func Generate(ctx context.Context, p Params) (*Result, error) {
	pass := profiling.NewPass()

	stop := pass.Track("field")
	field := NewField(p.Noise, p.Grid, p.Expression)
	stop()

	res := &Result{Key: p.Key(), Params: p, Timings: pass}

	if p.Smooth {
		stop = pass.Track("extract")
		mesh, err := extract(ctx, p.Grid, field, p.Grid.Isolevel)
		stop()
		if err != nil {
			return nil, err
		}
		res.Mesh = mesh
	} else {
		stop = pass.Track("enumerate")
		voxels, err := enumerate(ctx, p.Grid, field)
		stop()
		if err != nil {
			return nil, err
		}
		res.Voxels = voxels
	}

	res.EvalErr = field.EvalErr()
	return res, nil
}

// Cache memoizes regeneration results by parameter key, so unrelated
// state changes never trigger an O(grid) recomputation.
type Cache struct {
	mu      sync.Mutex
	entries map[uint64]*Result
}

func NewCache() *Cache {
	return &Cache{entries: make(map[uint64]*Result)}
}

// Generate returns the cached result for the snapshot, regenerating
// only on a miss. The second return reports whether the result came
// from the cache.
func (c *Cache) Generate(ctx context.Context, p Params) (*Result, bool, error) {
	key := p.Key()

	c.mu.Lock()
	if r, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return r, true, nil
	}
	c.mu.Unlock()

	r, err := Generate(ctx, p)
	if err != nil {
		return nil, false, err
	}

	c.mu.Lock()
	c.entries[key] = r
	c.mu.Unlock()
	return r, false, nil
}

// Invalidate drops every cached result.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[uint64]*Result)
	c.mu.Unlock()
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// job pairs a snapshot with its submission sequence number, so the
// worker can tell whether the snapshot is still the newest one.
type job struct {
	params Params
	seq    uint64
}

// Regenerator runs regenerations on a single background worker with
// latest-wins semantics: submitting a new snapshot replaces any
// pending one and cancels the pass in flight, so interactive callers
// only ever pay for the newest parameters.
type Regenerator struct {
	jobs    chan job
	results chan *Result
	cache   *Cache

	// mu guards seq, cancel, closed AND every send on jobs; Close
	// closes jobs under the same lock, so a send can never follow
	// the close.
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	closed bool
}

func NewRegenerator() *Regenerator {
	r := &Regenerator{
		jobs:    make(chan job, 1),
		results: make(chan *Result, 1),
		cache:   NewCache(),
	}
	go r.worker()
	return r
}

// Submit queues a snapshot, discarding any not-yet-started one and
// canceling the pass in flight. Submitting after Close is a no-op.
func (r *Regenerator) Submit(p Params) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.seq++
	if r.cancel != nil {
		r.cancel()
	}
	j := job{params: p, seq: r.seq}
	for {
		select {
		case r.jobs <- j:
			return
		default:
		}
		// Full slot holds a stale snapshot; drop it. Only the worker
		// receives, so this loop terminates after one drain.
		select {
		case <-r.jobs:
		default:
		}
	}
}

// Results delivers finished regenerations. A result superseded by a
// newer Submit before delivery is discarded, never delivered.
func (r *Regenerator) Results() <-chan *Result {
	return r.results
}

// Close stops the worker and cancels the pass in flight. A job still
// queued is received but not processed.
func (r *Regenerator) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	if r.cancel != nil {
		r.cancel()
	}
	close(r.jobs)
}

func (r *Regenerator) worker() {
	for j := range r.jobs {
		ctx, cancel := context.WithCancel(context.Background())
		r.mu.Lock()
		if r.closed || j.seq != r.seq {
			// Superseded before it started, or shutting down.
			r.mu.Unlock()
			cancel()
			continue
		}
		r.cancel = cancel
		r.mu.Unlock()

		res, _, err := r.cache.Generate(ctx, j.params)

		r.mu.Lock()
		stale := r.closed || j.seq != r.seq
		r.mu.Unlock()
		cancel()
		if err != nil || stale {
			continue
		}

		// Latest-wins on the result side too: replace an unread one.
	deliver:
		for {
			select {
			case r.results <- res:
				break deliver
			default:
				select {
				case <-r.results:
				default:
				}
			}
		}
	}
	close(r.results)
}
