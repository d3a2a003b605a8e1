package message

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/bits-and-blooms/bloom/v3"
)

// codeAlphabet matches the uppercase base36 suffix the storefront generated.
const codeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

const (
	codePrefix    = "PP"
	codeSuffixLen = 4
	codeAttempts  = 5

	// Sized for years of orders; the filter only has to make repeats
	// unlikely, not impossible.
	codeBloomCapacity = 1_000_000
	codeBloomFPR      = 0.001
)

// CodeGenerator issues short order codes of the form PP-YYMMDD-XXXX.
// Uniqueness is best effort: a bloom filter of issued codes makes the
// generator re-roll the random suffix on a probable repeat, which is enough
// for a human-read chat message.
type CodeGenerator struct {
	now  func() time.Time
	intN func(int) int

	mu     sync.Mutex
	issued *bloom.BloomFilter
}

// NewCodeGenerator creates a generator backed by the default clock and
// randomness.
func NewCodeGenerator() *CodeGenerator {
	return &CodeGenerator{
		now:    time.Now,
		intN:   rand.IntN,
		issued: bloom.NewWithEstimates(codeBloomCapacity, codeBloomFPR),
	}
}

// Next returns a fresh order code.
func (g *CodeGenerator) Next() string {
	d := g.now()
	base := fmt.Sprintf("%s-%02d%02d%02d-", codePrefix, d.Year()%100, int(d.Month()), d.Day())

	g.mu.Lock()
	defer g.mu.Unlock()

	var code string
	for range codeAttempts {
		code = base + g.suffix()
		if !g.issued.TestString(code) {
			break
		}
	}
	g.issued.AddString(code)
	return code
}

func (g *CodeGenerator) suffix() string {
	var b strings.Builder
	b.Grow(codeSuffixLen)
	for range codeSuffixLen {
		b.WriteByte(codeAlphabet[g.intN(len(codeAlphabet))])
	}
	return b.String()
}
