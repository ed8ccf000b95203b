package nes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestAPUMixSilentChannelsIsZero reproduces the first half of §8 scenario
// 6: with every channel silent, the mixer emits exactly 0.
func TestAPUMixSilentChannelsIsZero(t *testing.T) {
	a := newAPU()
	assert.Equal(t, float32(0), a.mixOutput())
}

// TestAPUMixSinglePulseMatchesPulseTable reproduces the second half of §8
// scenario 6: pulse 1 at 50% duty, volume 15, with everything else silent,
// mixes to exactly pulseTable[15].
func TestAPUMixSinglePulseMatchesPulseTable(t *testing.T) {
	a := newAPU()
	a.pulse1.enabled = true
	a.pulse1.lengthValue = 1
	a.pulse1.timerPeriod = 100
	a.pulse1.dutyMode = 2 // 50% duty: {0,1,1,1,1,0,0,0}
	a.pulse1.dutyValue = 1
	a.pulse1.envelopeEnabled = false
	a.pulse1.constantVolume = 15

	assert.Equal(t, pulseTable[15], a.mixOutput())
	assert.InDelta(t, 0.1488, a.mixOutput(), 1e-3)
}

func TestAPUPulseOutputSilentBelowMinimumTimerPeriod(t *testing.T) {
	p := pulse{enabled: true, lengthValue: 1, dutyMode: 2, dutyValue: 1, constantVolume: 15}
	p.timerPeriod = 7 // below the 8-period floor
	assert.Equal(t, uint8(0), p.output())
	p.timerPeriod = 8
	assert.Equal(t, uint8(15), p.output())
}

// TestAPUFrameCounterFourStepFiresIRQOnLastStep reproduces §4.6's 4-step
// frame sequencer: only step 3 raises the frame IRQ, and only when the
// inhibit flag is clear.
func TestAPUFrameCounterFourStepFiresIRQOnLastStep(t *testing.T) {
	c := newTestConsole(t, []byte{}, 0x8000)
	c.apu.frameMode = 0
	c.apu.frameIRQInhibit = false

	c.apu.stepFrameCounter(c) // frameStep -> 1
	c.apu.stepFrameCounter(c) // frameStep -> 2
	assert.Equal(t, interruptNone, c.cpu.interrupt)

	c.apu.stepFrameCounter(c) // frameStep -> 3, fires the frame IRQ
	assert.Equal(t, interruptIRQ, c.cpu.interrupt)
}

func TestAPUWritingFrameCounterFiveStepModeClocksImmediately(t *testing.T) {
	c := newTestConsole(t, []byte{}, 0x8000)
	c.apu.pulse1.enabled = true
	c.apu.pulse1.lengthEnabled = true
	c.apu.pulse1.lengthValue = 5

	c.cpuWrite(0x4017, 0x80)

	assert.Equal(t, uint8(1), c.apu.frameMode)
	assert.Equal(t, uint8(4), c.apu.pulse1.lengthValue, "the immediate clock on 5-step entry decrements length")
}

func TestAPULengthCounterHaltsWhenChannelDisabled(t *testing.T) {
	a := newAPU()
	a.writeRegister(nil, 0x4000, 0x00) // pulse1 control, envelope loop off
	a.pulse1.lengthValue = 10
	a.writeRegister(nil, 0x4015, 0x00) // disable all channels
	assert.Equal(t, uint8(0), a.pulse1.lengthValue)
}
