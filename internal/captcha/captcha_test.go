package captcha

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_LengthAndAlphabet(t *testing.T) {
	gen := New(&Config{Seed: 42})

	for i := 0; i < 1000; i++ {
		challenge := gen.Generate()
		require.Len(t, challenge, DefaultLength)
		for _, r := range challenge {
			assert.True(t, strings.ContainsRune(Alphabet, r), "unexpected character %q in %q", r, challenge)
		}
	}
}

func TestGenerate_CustomLength(t *testing.T) {
	gen := New(&Config{Seed: 1, Length: 8})
	assert.Len(t, gen.Generate(), 8)
}

func TestGenerate_NilConfig(t *testing.T) {
	gen := New(nil)
	assert.Len(t, gen.Generate(), DefaultLength)
}

func TestGenerate_FreshChallenges(t *testing.T) {
	gen := New(&Config{Seed: 7})

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		seen[gen.Generate()] = struct{}{}
	}
	// 62^5 possibilities, 100 draws should essentially never repeat
	assert.Greater(t, len(seen), 95)
}

func TestGenerate_UsesWholeAlphabet(t *testing.T) {
	gen := New(&Config{Seed: 99})

	counts := make(map[rune]int)
	for i := 0; i < 5000; i++ {
		for _, r := range gen.Generate() {
			counts[r]++
		}
	}
	assert.Len(t, counts, len(Alphabet))
}

func TestGenerate_Concurrent(t *testing.T) {
	gen := New(nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.Len(t, gen.Generate(), DefaultLength)
			}
		}()
	}
	wg.Wait()
}

func TestVerify(t *testing.T) {
	testCases := []struct {
		name      string
		challenge string
		response  string
		want      bool
	}{
		{name: "exact", challenge: "aZ3kQ", response: "aZ3kQ", want: true},
		{name: "upper", challenge: "aZ3kQ", response: "AZ3KQ", want: true},
		{name: "lower", challenge: "aZ3kQ", response: "az3kq", want: true},
		{name: "one character off", challenge: "aZ3kQ", response: "aZ3kX", want: false},
		{name: "trailing space", challenge: "aZ3kQ", response: "aZ3kQ ", want: false},
		{name: "leading space", challenge: "aZ3kQ", response: " aZ3kQ", want: false},
		{name: "prefix only", challenge: "aZ3kQ", response: "aZ3k", want: false},
		{name: "empty", challenge: "aZ3kQ", response: "", want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Verify(tc.challenge, tc.response))
		})
	}
}

func TestVerify_GeneratedChallenges(t *testing.T) {
	gen := New(&Config{Seed: 3})

	for i := 0; i < 200; i++ {
		c := gen.Generate()
		assert.True(t, Verify(c, c))
		assert.True(t, Verify(c, strings.ToUpper(c)))
		assert.False(t, Verify(c, c+" "))
	}
}
