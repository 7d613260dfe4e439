// Package facts produces one human-readable statistic sentence about the
// imported data set, picked pseudo-randomly across collection, genre and
// style facts.
package facts

import (
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/sdeneef/discodash/internal/database"
	"github.com/sdeneef/discodash/internal/database/collection"
	"github.com/sdeneef/discodash/internal/database/musicinfo"
	"github.com/sdeneef/discodash/internal/entities"
)

// ErrNoData indicates the store holds nothing to generate a fact about.
var ErrNoData = errors.New("no imported data to generate a fact from")

// Sentence templates for each fact category.
const (
	templatePopularArtist = "\"%s\" %s %d items in the collection, ranking them %s among artists"
	templateSoleEntry     = "\"%s\" is the only entry for \"%s\""
	templatePopularGenre  = "There are %d item(s) under \"%s\", ranking it %s among genres"
	templatePopularStyle  = "There are %d item(s) under \"%s\", ranking it %s among styles"
	templateAdded         = "%d item(s) were added in %s %d"
)

// Checker is the store connectivity probe consulted before sampling.
type Checker interface {
	CanConnect() bool
}

// Generator samples the persisted data set for fact sentences.
type Generator struct {
	checker    Checker
	collection *collection.Repository
	musicinfo  *musicinfo.Repository
	rand       *rand.Rand
}

// NewGenerator creates a fact generator seeded from the current time.
func NewGenerator(checker Checker, collectionRepo *collection.Repository, musicinfoRepo *musicinfo.Repository) *Generator {
	return NewGeneratorWithSource(checker, collectionRepo, musicinfoRepo, rand.NewSource(time.Now().UnixNano()))
}

// NewGeneratorWithSource creates a generator with an explicit random
// source, which makes the category draws reproducible in tests.
func NewGeneratorWithSource(checker Checker, collectionRepo *collection.Repository, musicinfoRepo *musicinfo.Repository, source rand.Source) *Generator {
	return &Generator{
		checker:    checker,
		collection: collectionRepo,
		musicinfo:  musicinfoRepo,
		rand:       rand.New(source),
	}
}

// Fact generates one fact sentence. Draws are weighted 8/1/1 across
// collection, genre and style facts.
func (g *Generator) Fact() (string, error) {
	if !g.checker.CanConnect() {
		return "", database.ErrUnreachable
	}

	switch draw := g.rand.Intn(10); {
	case draw <= 7:
		return g.collectionFact()
	case draw == 8:
		return g.infoFact(g.musicinfo.Genres, templatePopularGenre)
	default:
		return g.infoFact(g.musicinfo.Styles, templatePopularStyle)
	}
}

func (g *Generator) collectionFact() (string, error) {
	items, err := g.collection.All()
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "", ErrNoData
	}

	if g.rand.Intn(10) <= 7 {
		return g.artistFact(items)
	}
	return g.temporalFact(items)
}

type artistGroup struct {
	name  string
	count int
}

func (g *Generator) artistFact(items []entities.CollectionItem) (string, error) {
	counts := make(map[string]int)
	for _, item := range items {
		// An item with several credited artists counts once per artist
		for _, artist := range item.Artists {
			counts[artist]++
		}
	}
	if len(counts) == 0 {
		return "", ErrNoData
	}

	groups := make([]artistGroup, 0, len(counts))
	for name, count := range counts {
		groups = append(groups, artistGroup{name: name, count: count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].name < groups[j].name
	})

	index := g.rankIndex(len(groups))
	entry := groups[index]

	if entry.count == 1 {
		for _, item := range items {
			for _, artist := range item.Artists {
				if artist == entry.name {
					return fmt.Sprintf(templateSoleEntry, item.ReleaseName, entry.name), nil
				}
			}
		}
	}

	return fmt.Sprintf(templatePopularArtist, entry.name, GetHasOrHave(entry.name), entry.count, MapIntToPlace(index)), nil
}

type monthGroup struct {
	year  int
	month time.Month
	count int
}

func (g *Generator) temporalFact(items []entities.CollectionItem) (string, error) {
	counts := make(map[[2]int]int)
	for _, item := range items {
		key := [2]int{item.DateAdded.Year(), int(item.DateAdded.Month())}
		counts[key]++
	}

	groups := make([]monthGroup, 0, len(counts))
	for key, count := range counts {
		groups = append(groups, monthGroup{year: key[0], month: time.Month(key[1]), count: count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].year != groups[j].year {
			return groups[i].year < groups[j].year
		}
		return groups[i].month < groups[j].month
	})

	entry := groups[g.rankIndex(len(groups))]
	return fmt.Sprintf(templateAdded, entry.count, entry.month.String(), entry.year), nil
}

func (g *Generator) infoFact(load func() ([]entities.MusicInfo, error), template string) (string, error) {
	infos, err := load()
	if err != nil {
		return "", err
	}
	if len(infos) == 0 {
		return "", ErrNoData
	}

	index := g.rankIndex(len(infos))
	entry := infos[index]
	return fmt.Sprintf(template, entry.Instances, entry.Text, MapIntToPlace(index)), nil
}

// rankIndex picks a random rank from a ranked list of length n. The last
// rank is deliberately excluded: the original implementation drew from
// n-1 positions and that behavior is kept as-is. Single-entry lists always
// pick rank 0.
func (g *Generator) rankIndex(n int) int {
	if n <= 1 {
		return 0
	}
	return g.rand.Intn(n - 1)
}

var trailingNumber = regexp.MustCompile(`\s*\(\d+\)$`)

// GetHasOrHave picks the verb agreeing with the subject. A trailing
// parenthesized number is stripped first, then the remainder is treated as
// plural when it ends in "s" but not "ss".
func GetHasOrHave(subject string) string {
	cleaned := trailingNumber.ReplaceAllString(strings.TrimSpace(subject), "")
	if cleaned == "" {
		return "has"
	}

	lower := strings.ToLower(cleaned)
	if strings.HasSuffix(lower, "s") && !strings.HasSuffix(lower, "ss") {
		return "have"
	}
	return "has"
}

// MapIntToPlace converts a zero-based rank into its ordinal form:
// 0 -> "1st", 1 -> "2nd", 12 -> "13th", with the 11th-13th exception.
func MapIntToPlace(index int) string {
	place := index + 1
	lastTwo := place % 100
	last := place % 10

	suffix := "th"
	if lastTwo < 11 || lastTwo > 13 {
		switch last {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}

	return fmt.Sprintf("%d%s", place, suffix)
}
