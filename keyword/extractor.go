// Package keyword is the local, rule-based fallback for keyword and topic
// extraction. It runs when the remote extraction function is unavailable and
// must stay fully deterministic: same text in, same candidates out.
package keyword

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/seoforge/seoforge/model"
)

const (
	// MaxKeywords caps the number of returned keyword candidates.
	MaxKeywords = 15

	titleBoost         = 2.5
	firstSentenceBoost = 1.3
	idfDamping         = 0.3
)

var (
	nonWordRegexp    = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespaceRegexp = regexp.MustCompile(`\s+`)
	numericRegexp    = regexp.MustCompile(`^[0-9]+$`)
	letterRegexp     = regexp.MustCompile(`[a-z]`)
	sentenceEndRe    = regexp.MustCompile(`[.!?]`)
)

// Result bundles the two candidate lists produced by a single extraction.
type Result struct {
	Keywords []model.KeywordCandidate `json:"keywords"`
	Topics   []model.TopicCandidate   `json:"topics"`
}

type candidate struct {
	phrase string
	freq   int
	words  int // number of tokens in the phrase
}

// Extract produces scored keyword and topic candidates from the article body
// and its title. The algorithm is a damped TF-IDF over unigrams, bigrams and
// trigrams with title and first-sentence boosts, a diversity pass favoring
// phrases over their head words, and templated topic headlines derived from
// the top keywords.
func Extract(text string, title string) Result {
	normalizedText := normalize(text)
	normalizedTitle := normalize(title)
	firstSentence := normalize(firstSentenceOf(text))

	tokens := tokenize(normalizedText)
	total := len(tokens)
	if total == 0 {
		return Result{Keywords: []model.KeywordCandidate{}, Topics: []model.TopicCandidate{}}
	}

	candidates := collectCandidates(tokens)

	scored := make([]model.KeywordCandidate, 0, len(candidates))
	for _, c := range candidates {
		tf := float64(c.freq) / float64(total)
		idf := math.Log(float64(total+1) / float64(c.freq+1))
		score := tf * (1 + idf*idfDamping)

		// length-proportional boost so that phrases outrank their head words
		if c.words > 1 {
			score *= float64(c.words + 1)
		}

		source := "body"
		if strings.Contains(normalizedTitle, c.phrase) {
			score *= titleBoost
			source = "title"
		}
		if firstSentence != "" && strings.Contains(firstSentence, c.phrase) {
			score *= firstSentenceBoost
		}

		scored = append(scored, model.KeywordCandidate{
			Keyword: c.phrase,
			Score:   score,
			Source:  source,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		// deterministic tiebreak
		return scored[i].Keyword < scored[j].Keyword
	})

	keywords := selectDiverse(scored)
	for i := range keywords {
		keywords[i].Score = clampScore(keywords[i].Score)
	}

	return Result{
		Keywords: keywords,
		Topics:   deriveTopics(keywords),
	}
}

// normalize lowercases, strips characters outside [a-z0-9\s-] and collapses
// whitespace runs.
func normalize(s string) string {
	s = strings.ToLower(s)
	s = nonWordRegexp.ReplaceAllString(s, " ")
	s = whitespaceRegexp.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// tokenize splits on whitespace and drops tokens shorter than 3 characters,
// pure-numeric tokens, tokens without any letter, and stopwords.
func tokenize(normalized string) []string {
	if normalized == "" {
		return nil
	}
	var kept []string
	for _, tok := range strings.Fields(normalized) {
		if len(tok) < 3 {
			continue
		}
		if numericRegexp.MatchString(tok) {
			continue
		}
		if !letterRegexp.MatchString(tok) {
			continue
		}
		if isStopword(tok) {
			continue
		}
		kept = append(kept, tok)
	}
	return kept
}

// collectCandidates counts unigram frequencies and generates bigram/trigram
// candidates over the filtered token stream. An n-gram is discarded when at
// least n/2 of its constituent tokens are stopwords or its joined length is
// 5 characters or less.
func collectCandidates(tokens []string) []candidate {
	freq := map[string]*candidate{}
	add := func(phrase string, words int) {
		if c, ok := freq[phrase]; ok {
			c.freq++
			return
		}
		freq[phrase] = &candidate{phrase: phrase, freq: 1, words: words}
	}

	for _, tok := range tokens {
		add(tok, 1)
	}
	for n := 2; n <= 3; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			gram := tokens[i : i+n]
			if stopwordCount(gram)*2 >= n {
				continue
			}
			joined := strings.Join(gram, " ")
			if len(joined) <= 5 {
				continue
			}
			add(joined, n)
		}
	}

	out := make([]candidate, 0, len(freq))
	for _, c := range freq {
		out = append(out, *c)
	}
	return out
}

func stopwordCount(tokens []string) int {
	count := 0
	for _, tok := range tokens {
		if isStopword(tok) {
			count++
		}
	}
	return count
}

// selectDiverse walks the ranked candidates and skips a single-word candidate
// whose word is already covered by an earlier, higher-scored multi-word
// selection. Capped at MaxKeywords.
func selectDiverse(ranked []model.KeywordCandidate) []model.KeywordCandidate {
	covered := map[string]bool{}
	selected := []model.KeywordCandidate{}
	for _, cand := range ranked {
		words := strings.Fields(cand.Keyword)
		if len(words) == 1 && covered[words[0]] {
			continue
		}
		selected = append(selected, cand)
		if len(words) > 1 {
			for _, w := range words {
				covered[w] = true
			}
		}
		if len(selected) == MaxKeywords {
			break
		}
	}
	return selected
}

func firstSentenceOf(text string) string {
	loc := sentenceEndRe.FindStringIndex(text)
	if loc == nil {
		return text
	}
	return text[:loc[0]]
}

func clampScore(score float64) float64 {
	if score > 1 {
		return 1
	}
	if score < 0 {
		return 0
	}
	return score
}
