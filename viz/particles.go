package viz

import "github.com/nvolker/laserfield/common"

// Spark is a short-lived particle emitted from the group origin on a bass
// peak. Positions are in group space so sparks ride the group transform.
type Spark struct {
	X, Y, Z    float64
	VX, VY, VZ float64
	Size       float64
	Alpha      float64
	PoolIndex  int // Index in pool for swap-and-pop
}

// SparkPool manages reusable spark objects.
type SparkPool struct {
	Pool        []*Spark
	ActiveCount int
	MaxSize     int
}

// NewSparkPool creates a new spark pool with pre-allocated objects.
func NewSparkPool(maxSize int) *SparkPool {
	pool := &SparkPool{
		Pool:    make([]*Spark, maxSize),
		MaxSize: maxSize,
	}
	for i := 0; i < maxSize; i++ {
		pool.Pool[i] = &Spark{PoolIndex: i}
	}
	return pool
}

// Acquire gets an available spark from the pool.
func (p *SparkPool) Acquire() *Spark {
	if p.ActiveCount >= p.MaxSize {
		return nil
	}
	s := p.Pool[p.ActiveCount]
	s.PoolIndex = p.ActiveCount
	p.ActiveCount++
	return s
}

// Release returns a spark to the pool using swap-and-pop.
func (p *SparkPool) Release(index int) {
	if index >= p.ActiveCount || index < 0 {
		return
	}
	lastIndex := p.ActiveCount - 1
	if index != lastIndex {
		p.Pool[index], p.Pool[lastIndex] = p.Pool[lastIndex], p.Pool[index]
		p.Pool[index].PoolIndex = index
	}
	p.ActiveCount--
}

// Clear resets the pool, marking all objects as inactive.
func (p *SparkPool) Clear() {
	p.ActiveCount = 0
}

// ForEachReverse iterates over active sparks in reverse order.
func (p *SparkPool) ForEachReverse(fn func(*Spark, int)) {
	for i := p.ActiveCount - 1; i >= 0; i-- {
		fn(p.Pool[i], i)
	}
}

// SparkEmitter fires a burst of sparks when the smoothed bass rises through
// SparkTriggerLevel, then re-arms once it falls below SparkRearmLevel.
// Decorative only; laser state is never touched.
type SparkEmitter struct {
	Pool *SparkPool

	rng   *common.SeededRNG
	armed bool
}

// NewSparkEmitter creates an emitter with its own spark pool.
func NewSparkEmitter(rng *common.SeededRNG) *SparkEmitter {
	return &SparkEmitter{
		Pool:  NewSparkPool(MaxSparks),
		rng:   rng,
		armed: true,
	}
}

// Update advances all live sparks and fires a burst when the bass level
// crosses the trigger threshold. Called once per frame.
func (e *SparkEmitter) Update(bass float64) {
	if e.armed && bass >= SparkTriggerLevel {
		e.burst(bass)
		e.armed = false
	}
	if bass < SparkRearmLevel {
		e.armed = true
	}

	e.Pool.ForEachReverse(func(s *Spark, idx int) {
		s.X += s.VX
		s.Y += s.VY
		s.Z += s.VZ
		s.VY -= 0.15 // gravity
		s.Alpha -= 0.04

		if s.Alpha < 0.05 {
			e.Pool.Release(idx)
		}
	})
}

// burst emits a fan of sparks whose speed scales with the bass level.
func (e *SparkEmitter) burst(bass float64) {
	speed := 4 + bass*8
	for i := 0; i < SparkBurstCount; i++ {
		s := e.Pool.Acquire()
		if s == nil {
			return
		}
		s.X, s.Y, s.Z = 0, 0, 0
		s.VX = e.rng.RandomFloat(-1, 1) * speed
		s.VY = e.rng.RandomFloat(0.2, 1) * speed // upward bias
		s.VZ = e.rng.RandomFloat(-1, 1) * speed
		s.Size = e.rng.RandomFloat(2, 6)
		s.Alpha = 1
	}
}
