package viz

import (
	"testing"

	"github.com/nvolker/laserfield/common"
)

func TestSparkPool_AcquireRelease(t *testing.T) {
	pool := NewSparkPool(4)

	a := pool.Acquire()
	b := pool.Acquire()
	if a == nil || b == nil {
		t.Fatal("Expected acquires to succeed")
	}
	if pool.ActiveCount != 2 {
		t.Errorf("Expected 2 active, got %d", pool.ActiveCount)
	}

	pool.Release(a.PoolIndex)
	if pool.ActiveCount != 1 {
		t.Errorf("Expected 1 active after release, got %d", pool.ActiveCount)
	}

	// The survivor was swapped into slot 0 and its index updated
	if pool.Pool[0] != b || b.PoolIndex != 0 {
		t.Errorf("Expected swap-and-pop to move survivor to slot 0")
	}
}

func TestSparkPool_Exhaustion(t *testing.T) {
	pool := NewSparkPool(3)
	for i := 0; i < 3; i++ {
		if pool.Acquire() == nil {
			t.Fatalf("Acquire %d failed below capacity", i)
		}
	}
	if pool.Acquire() != nil {
		t.Error("Expected nil when pool is exhausted")
	}

	pool.Clear()
	if pool.ActiveCount != 0 {
		t.Errorf("Expected 0 active after Clear, got %d", pool.ActiveCount)
	}
	if pool.Acquire() == nil {
		t.Error("Expected Acquire to succeed after Clear")
	}
}

func TestSparkPool_ReleaseOutOfRange(t *testing.T) {
	pool := NewSparkPool(2)
	pool.Acquire()

	pool.Release(-1)
	pool.Release(5)
	if pool.ActiveCount != 1 {
		t.Errorf("Out-of-range release changed count: %d", pool.ActiveCount)
	}
}

func TestSparkEmitter_BurstAndRearm(t *testing.T) {
	e := NewSparkEmitter(common.NewSeededRNG(7))

	// Rising through the trigger fires exactly one burst
	e.Update(0.8)
	if e.Pool.ActiveCount != SparkBurstCount {
		t.Fatalf("Expected %d sparks after burst, got %d", SparkBurstCount, e.Pool.ActiveCount)
	}

	// Held above the trigger: no second burst
	e.Update(0.9)
	e.Update(0.7)
	if e.Pool.ActiveCount != SparkBurstCount {
		t.Errorf("Expected no re-fire while held high, got %d sparks", e.Pool.ActiveCount)
	}

	// Between re-arm and trigger: still armed off
	e.Update(0.5)
	if e.Pool.ActiveCount != SparkBurstCount {
		t.Errorf("Expected no re-fire in hysteresis band, got %d sparks", e.Pool.ActiveCount)
	}

	// Dropping below the re-arm level then rising again fires a second burst
	e.Update(0.2)
	e.Update(0.8)
	if e.Pool.ActiveCount != 2*SparkBurstCount {
		t.Errorf("Expected %d sparks after second burst, got %d", 2*SparkBurstCount, e.Pool.ActiveCount)
	}
}

func TestSparkEmitter_SparksFadeOut(t *testing.T) {
	e := NewSparkEmitter(common.NewSeededRNG(7))
	e.Update(0.8)
	if e.Pool.ActiveCount == 0 {
		t.Fatal("Expected a burst")
	}

	// Alpha drains 0.04 per frame from 1; everything is gone well within
	// 30 silent frames.
	for i := 0; i < 30; i++ {
		e.Update(0)
	}
	if e.Pool.ActiveCount != 0 {
		t.Errorf("Expected all sparks released, %d still active", e.Pool.ActiveCount)
	}
}

func TestSparkEmitter_BurstSpeedScalesWithBass(t *testing.T) {
	quiet := NewSparkEmitter(common.NewSeededRNG(7))
	loud := NewSparkEmitter(common.NewSeededRNG(7))

	quiet.Update(SparkTriggerLevel)
	loud.Update(1.0)

	// Same RNG stream, so per-spark velocities differ only by the speed
	// factor: 4 + bass*8.
	qs := quiet.Pool.Pool[0]
	ls := loud.Pool.Pool[0]
	qSpeed := 4 + SparkTriggerLevel*8
	lSpeed := 4 + 1.0*8

	// One Update already advanced positions once, compare velocities
	// (VY has had one gravity step applied to both).
	if !floatNear(qs.VX/qSpeed, ls.VX/lSpeed, 1e-9) {
		t.Errorf("Expected proportional VX, got %f vs %f", qs.VX, ls.VX)
	}
	if !floatNear(qs.VZ/qSpeed, ls.VZ/lSpeed, 1e-9) {
		t.Errorf("Expected proportional VZ, got %f vs %f", qs.VZ, ls.VZ)
	}
}
