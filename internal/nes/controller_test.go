package nes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestControllerStrobeLatchesAndShiftsOut reproduces §8 scenario 4: writing
// 1 then 0 to $4016 with only button A held latches the button state, and
// eight reads return it in A,B,Select,Start,Up,Down,Left,Right order,
// followed by all-ones.
func TestControllerStrobeLatchesAndShiftsOut(t *testing.T) {
	c := newTestConsole(t, []byte{}, 0x8000)
	c.ButtonDown(1, ButtonA)

	c.cpuWrite(0x4016, 0x01)
	c.cpuWrite(0x4016, 0x00)

	want := []uint8{1, 0, 0, 0, 0, 0, 0, 0}
	for i, w := range want {
		got := c.cpuRead(0x4016) & 0x01
		assert.Equal(t, w, got, "read %d", i)
	}
	for i := 0; i < 3; i++ {
		assert.Equal(t, uint8(1), c.cpuRead(0x4016)&0x01, "reads past the eighth return 1")
	}
}

// TestControllerStrobeHeldHighAlwaysReturnsButtonA covers the strobe-mode
// case: while bit 0 of $4016 stays set, every read re-latches and returns
// button A's current state rather than shifting.
func TestControllerStrobeHeldHighAlwaysReturnsButtonA(t *testing.T) {
	c := newTestConsole(t, []byte{}, 0x8000)
	c.cpuWrite(0x4016, 0x01)
	assert.Equal(t, uint8(0), c.cpuRead(0x4016)&0x01)

	c.ButtonDown(1, ButtonA)
	assert.Equal(t, uint8(1), c.cpuRead(0x4016)&0x01)
	assert.Equal(t, uint8(1), c.cpuRead(0x4016)&0x01)
}

func TestControllerSecondPlayerIsIndependent(t *testing.T) {
	c := newTestConsole(t, []byte{}, 0x8000)
	c.ButtonDown(2, ButtonStart)
	c.cpuWrite(0x4016, 0x01)
	c.cpuWrite(0x4016, 0x00)

	assert.Equal(t, uint8(0), c.cpuRead(0x4016)&0x01, "player 1 has nothing held")
	for i := 0; i < 3; i++ {
		c.cpuRead(0x4017)
	}
	assert.Equal(t, uint8(1), c.cpuRead(0x4017)&0x01, "player 2's fourth read is Start")
}
