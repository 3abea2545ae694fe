package emulator

import "time"

// TimerPeriod is the interval at which the delay and sound timers count down.
const TimerPeriod = time.Second / 60

// timers holds the two countdown registers. They decay at TimerPeriod no
// matter how many instructions run in between.
type timers struct {
	delay uint8
	sound uint8

	elapsed time.Duration
	tone    bool
}

// advance adds the elapsed time and decrements both timers once when a full
// period has accumulated. The accumulator restarts at zero afterwards.
func (t *timers) advance(d time.Duration) {
	if d < 0 {
		d = 0
	}
	t.elapsed += d
	if t.elapsed < TimerPeriod {
		return
	}
	t.elapsed = 0

	if t.delay > 0 {
		t.delay--
	}
	if t.sound > 0 {
		if t.sound == 1 {
			t.tone = true
		}
		t.sound--
	}
}
