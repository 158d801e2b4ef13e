package analytics

import (
	"sort"
	"strconv"
	"strings"

	"github.com/soporte-insights/backend/internal/models"
)

const (
	topBigramLimit   = 10
	trendBigramLimit = 5
	exampleLimit     = 3
)

// StopWords is the Spanish stop-word list, including domain words that
// carry no signal in support-ticket subjects.
var StopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"de", "la", "que", "el", "en", "y", "a", "los", "del", "se", "las", "por", "un",
		"para", "con", "no", "una", "su", "al", "lo", "como", "más", "pero", "sus",
		"le", "ya", "o", "este", "ha", "me", "si", "porque", "esta", "cuando",
		"muy", "sin", "sobre", "también", "mi", "hasta", "hay", "donde", "quien",
		"desde", "todo", "nos", "durante", "todos", "uno", "les", "ni", "contra",
		"otros", "ese", "eso", "ante", "ellos", "e", "esto", "mí", "antes",
		"algunos", "qué", "entre", "ser", "es", "está", "están", "soy", "eres",
		"somos", "son", "fue", "fui", "fuimos", "fueron", "sea", "sean", "sido",
		"saber", "solicito", "ayuda", "soporte", "requiero", "necesito", "ticket",
		"caso", "plataforma", "aula", "virtual",
	} {
		StopWords[w] = struct{}{}
	}
}

var punctuationStripper = strings.NewReplacer(
	".", "", ",", "", ":", "", ";", "", "!", "", "?", "", "¿", "", "¡", "", `"`, "", "(", "", ")", "",
)

// BigramCount is one phrase with its total occurrence count.
type BigramCount struct {
	Phrase string `json:"phrase"`
	Count  int    `json:"count"`
}

// TrendRow holds, for one month, the subject-match count of each trended
// phrase.
type TrendRow struct {
	Month  string         `json:"month"`
	Counts map[string]int `json:"counts"`
}

// BigramExamples carries up to three example subjects containing a phrase.
type BigramExamples struct {
	Phrase   string   `json:"phrase"`
	Count    int      `json:"count"`
	Examples []string `json:"examples"`
}

// TextResult bundles the bigram frequency table, the trend lines and the
// representative examples.
type TextResult struct {
	TopBigrams   []BigramCount    `json:"topBigrams"`
	TrendPhrases []string         `json:"trendPhrases"`
	Trends       []TrendRow       `json:"trends"`
	Examples     []BigramExamples `json:"examples"`
}

// CalculateText tokenizes the subject field into stop-word-filtered bigrams
// and derives the frequency ranking, monthly trends and examples.
func CalculateText(tickets []models.Ticket) TextResult {
	counts := map[string]int{}
	var order []string
	for _, t := range tickets {
		for _, bigram := range GenerateBigrams(subject(t)) {
			if _, ok := counts[bigram]; !ok {
				order = append(order, bigram)
			}
			counts[bigram]++
		}
	}

	ranked := make([]BigramCount, 0, len(order))
	for _, phrase := range order {
		ranked = append(ranked, BigramCount{Phrase: phrase, Count: counts[phrase]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > topBigramLimit {
		ranked = ranked[:topBigramLimit]
	}

	trendPhrases := make([]string, 0, trendBigramLimit)
	for i, b := range ranked {
		if i == trendBigramLimit {
			break
		}
		trendPhrases = append(trendPhrases, b.Phrase)
	}

	return TextResult{
		TopBigrams:   ranked,
		TrendPhrases: trendPhrases,
		Trends:       monthlyTrends(tickets, trendPhrases),
		Examples:     collectExamples(tickets, ranked),
	}
}

// GenerateBigrams lower-cases and tokenizes a subject line, drops
// punctuation, single-character tokens, stop words and purely numeric
// tokens, then pairs each surviving token with its neighbor.
func GenerateBigrams(text string) []string {
	if text == "" {
		return nil
	}
	stripped := punctuationStripper.Replace(strings.ToLower(text))

	var words []string
	for _, w := range strings.Fields(stripped) {
		if len([]rune(w)) <= 1 {
			continue
		}
		if _, stop := StopWords[w]; stop {
			continue
		}
		if _, err := strconv.ParseFloat(w, 64); err == nil {
			continue
		}
		words = append(words, w)
	}
	if len(words) < 2 {
		return nil
	}

	bigrams := make([]string, 0, len(words)-1)
	for i := 0; i < len(words)-1; i++ {
		bigrams = append(bigrams, words[i]+" "+words[i+1])
	}
	return bigrams
}

// monthlyTrends counts, per chronological month bucket, the tickets whose
// lower-cased subject contains each trended phrase as a substring.
func monthlyTrends(tickets []models.Ticket, phrases []string) []TrendRow {
	byMonth := map[monthKey]map[string]int{}
	for _, t := range tickets {
		subj := strings.ToLower(subject(t))
		if subj == "" {
			continue
		}
		k := monthOf(t.CreationTime)
		if byMonth[k] == nil {
			byMonth[k] = map[string]int{}
		}
		for _, phrase := range phrases {
			if strings.Contains(subj, phrase) {
				byMonth[k][phrase]++
			}
		}
	}

	keys := sortedMonthKeys(byMonth)
	out := make([]TrendRow, 0, len(keys))
	for _, k := range keys {
		row := TrendRow{Month: k.label(), Counts: map[string]int{}}
		for _, phrase := range phrases {
			row.Counts[phrase] = byMonth[k][phrase]
		}
		out = append(out, row)
	}
	return out
}

// collectExamples picks the first matching subjects, in dataset order, for
// each ranked phrase.
func collectExamples(tickets []models.Ticket, ranked []BigramCount) []BigramExamples {
	out := make([]BigramExamples, 0, len(ranked))
	for _, b := range ranked {
		entry := BigramExamples{Phrase: b.Phrase, Count: b.Count, Examples: []string{}}
		for _, t := range tickets {
			subj := subject(t)
			if strings.Contains(strings.ToLower(subj), b.Phrase) {
				entry.Examples = append(entry.Examples, subj)
				if len(entry.Examples) == exampleLimit {
					break
				}
			}
		}
		out = append(out, entry)
	}
	return out
}

func subject(t models.Ticket) string {
	if t.Asunto == nil {
		return ""
	}
	return *t.Asunto
}
