package category

import (
	"math/rand/v2"
	"strings"
)

// Result is the outcome of categorizing one commit message.
type Result struct {
	Category Category
	// Keyword is the first keyword of Category, in declaration order, found
	// in the message. Empty for Other.
	Keyword string
	Score   int
}

// Categorize scores message against every category and returns the best
// match. Each keyword contributes at most one match, the score is
// matches*priority, and on equal scores the higher-priority category wins.
// Messages without any keyword yield Other.
func Categorize(message string) Result {
	msg := strings.ToLower(message)
	best := Result{Category: Other}

	for _, c := range ordered {
		matches := 0
		first := ""
		for _, kw := range table[c].keywords {
			if strings.Contains(msg, kw) {
				matches++
				if first == "" {
					first = kw
				}
			}
		}
		if matches == 0 {
			continue
		}
		score := matches * table[c].priority
		if score > best.Score {
			best = Result{Category: c, Keyword: first, Score: score}
		}
	}
	return best
}

// Breakdown tallies categorized commits.
type Breakdown struct {
	Total  int
	Counts map[Category]int
	// Keywords holds every matched keyword seen per category, in the order
	// the commits were added.
	Keywords map[Category][]string
}

// NewBreakdown returns an empty Breakdown.
func NewBreakdown() *Breakdown {
	return &Breakdown{
		Counts:   make(map[Category]int),
		Keywords: make(map[Category][]string),
	}
}

// Add categorizes message and records the result.
func (b *Breakdown) Add(message string) Result {
	r := Categorize(message)
	b.Total++
	b.Counts[r.Category]++
	if r.Keyword != "" {
		b.Keywords[r.Category] = append(b.Keywords[r.Category], r.Keyword)
	}
	return r
}

// Percent is the integer share of c in the breakdown, truncated toward zero.
func (b *Breakdown) Percent(c Category) int {
	if b.Total == 0 {
		return 0
	}
	return b.Counts[c] * 100 / b.Total
}

// RandomKeyword picks one of the keywords matched for c, or "" if none.
func (b *Breakdown) RandomKeyword(c Category, rng *rand.Rand) string {
	kws := b.Keywords[c]
	if len(kws) == 0 {
		return ""
	}
	return kws[rng.IntN(len(kws))]
}

// Suggestion is a keyword tip for writing categorizable commit messages.
type Suggestion struct {
	Category Category
	Keyword  string
}

// Suggestions returns up to n keyword tips drawn from distinct, randomly
// chosen categories.
func Suggestions(rng *rand.Rand, n int) []Suggestion {
	cats := All()
	rng.Shuffle(len(cats), func(i, j int) { cats[i], cats[j] = cats[j], cats[i] })
	n = max(0, min(n, len(cats)))
	out := make([]Suggestion, 0, n)
	for _, c := range cats[:n] {
		kw := table[c].keywords
		out = append(out, Suggestion{Category: c, Keyword: kw[rng.IntN(len(kw))]})
	}
	return out
}
