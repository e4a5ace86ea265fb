package idgenerator

import (
	"math/rand"
	"rewatch/internal/core/domain/reminder"
	"strconv"
	"sync"
	"time"
)

const suffixLength = 9

// Generator builds reminder IDs from the base-36 millisecond timestamp and a
// random base-36 suffix.
type Generator struct {
	chars []rune
	rand  *rand.Rand
	lock  sync.Mutex
}

func NewGenerator() *Generator {
	return &Generator{
		chars: []rune("0123456789abcdefghijklmnopqrstuvwxyz"),
		rand:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (g *Generator) GenerateReminderID(now time.Time) reminder.ID {
	g.lock.Lock()
	defer g.lock.Unlock()
	b := make([]rune, suffixLength)
	for i := range b {
		b[i] = g.chars[g.rand.Intn(len(g.chars))]
	}
	return reminder.ID(strconv.FormatInt(now.UnixMilli(), 36) + string(b))
}
