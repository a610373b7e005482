package midjourney

import (
	"math/rand/v2"
	"strconv"
	"sync/atomic"
	"time"
)

// discordEpoch is 2015-01-01T00:00:00Z in milliseconds.
const discordEpoch = 1420070400000

var nonceCounter atomic.Uint32

// newNonce returns a snowflake-shaped nonce: timestamp in the high bits,
// a random worker id and a process-wide increment in the low 22 bits.
func newNonce() string {
	ms := uint64(time.Now().UnixMilli() - discordEpoch)
	worker := uint64(rand.IntN(1 << 10))
	seq := uint64(nonceCounter.Add(1) & 0xFFF)
	return strconv.FormatUint(ms<<22|worker<<12|seq, 10)
}
