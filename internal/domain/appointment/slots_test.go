package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateAllTimeSlots(t *testing.T) {
	slots := GenerateAllTimeSlots()

	assert.Len(t, slots, 25)
	assert.Equal(t, "10:00", slots[0])
	assert.Equal(t, "10:30", slots[1])
	assert.Equal(t, "22:00", slots[len(slots)-1])

	for i := 1; i < len(slots); i++ {
		assert.Less(t, slots[i-1], slots[i])
	}
}

func TestIsValidSlot(t *testing.T) {
	cases := map[string]bool{
		"10:00": true,
		"14:30": true,
		"22:00": true,
		"09:30": false,
		"22:30": false,
		"10:15": false,
		"1000":  false,
		"ab:cd": false,
		"":      false,
	}
	for in, want := range cases {
		assert.Equal(t, want, IsValidSlot(in), in)
	}
}

func TestFreeSlots(t *testing.T) {
	t.Run("nothing booked", func(t *testing.T) {
		assert.Equal(t, GenerateAllTimeSlots(), FreeSlots(nil))
	})

	t.Run("removes booked in catalog order", func(t *testing.T) {
		free := FreeSlots([]string{"10:00", "14:30"})

		assert.Len(t, free, 23)
		assert.Equal(t, "10:30", free[0])
		assert.NotContains(t, free, "14:30")
		assert.Contains(t, free, "14:00")
	})

	t.Run("ignores times outside catalog", func(t *testing.T) {
		assert.Len(t, FreeSlots([]string{"08:00", "10:15"}), 25)
	})
}
