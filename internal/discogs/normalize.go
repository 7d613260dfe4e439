package discogs

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sdeneef/discodash/internal/entities"
)

// defaultDiscLabel is used when a pressing carries no colour/description
// text. Discogs leaves the field empty (or the literal "null") for plain
// black vinyl.
const defaultDiscLabel = "Black"

// ClassifyFormat resolves the format of a release from its raw formats
// array. The "All Media" entries Discogs injects are ignored, and Vinyl
// wins over CD over Cassette when a release ships several media. Disc
// details are only collected for vinyl.
func ClassifyFormat(formats []RawFormat) (entities.FormatType, []entities.DiscInfo) {
	names := make(map[string]bool, len(formats))
	for _, format := range formats {
		if format.Name != "All Media" {
			names[format.Name] = true
		}
	}

	switch {
	case names[string(entities.FormatVinyl)]:
		return entities.FormatVinyl, discInfoFrom(formats)
	case names[string(entities.FormatCD)]:
		return entities.FormatCD, nil
	case names[string(entities.FormatCassette)]:
		return entities.FormatCassette, nil
	default:
		return entities.FormatUnknown, nil
	}
}

func discInfoFrom(formats []RawFormat) []entities.DiscInfo {
	discs := make([]entities.DiscInfo, 0, len(formats))
	for _, format := range formats {
		quantity, _ := strconv.Atoi(format.Qty)

		text := strings.TrimSpace(strings.ReplaceAll(format.Text, "Vinyl", ""))
		if text == "" || text == "null" {
			text = defaultDiscLabel
		}

		discs = append(discs, entities.DiscInfo{Quantity: quantity, Text: text})
	}
	return discs
}

// NormalizeItem maps one raw payload into the normalized Item shape.
// A payload without a release id is a data-integrity fault; every other
// missing field degrades to its zero value.
func NormalizeItem(raw RawItem) (entities.Item, error) {
	if raw.ID == nil {
		return entities.Item{}, fmt.Errorf("raw item %q has no release id", raw.BasicInfo.Title)
	}

	artists := make([]string, 0, len(raw.BasicInfo.Artists))
	for _, artist := range raw.BasicInfo.Artists {
		artists = append(artists, artist.Name)
	}

	// Lenient: an unparseable date_added stays at the zero time
	dateAdded, _ := time.Parse(time.RFC3339, raw.DateAdded)

	formatType, discs := ClassifyFormat(raw.BasicInfo.Formats)

	return entities.Item{
		ReleaseID:   *raw.ID,
		Artists:     artists,
		ReleaseName: raw.BasicInfo.Title,
		ReleaseYear: raw.BasicInfo.Year,
		DateAdded:   dateAdded,
		Thumbnail:   raw.BasicInfo.Thumb,
		CoverImage:  raw.BasicInfo.CoverImage,
		Genres:      raw.BasicInfo.Genres,
		Styles:      raw.BasicInfo.Styles,
		FormatType:  formatType,
		Discs:       discs,
	}, nil
}

type mappedItem struct {
	releaseID int
	item      entities.Item
}

// NormalizeBatch maps a fetched batch into normalized items, deduplicated
// by release id. The batch is split into contiguous partitions mapped in
// parallel; partitions are then merged sequentially, so a release id seen
// twice keeps its first position with the last value winning. The result
// is deterministic for a given input order. The first mapping error fails
// the whole batch.
func NormalizeBatch(raws []RawItem) ([]entities.Item, error) {
	if len(raws) == 0 {
		return nil, nil
	}

	workers := runtime.NumCPU()
	if workers > len(raws) {
		workers = len(raws)
	}

	chunkSize := (len(raws) + workers - 1) / workers
	partitions := make([][]mappedItem, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > len(raws) {
			end = len(raws)
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(w int, chunk []RawItem) {
			defer wg.Done()
			local := make([]mappedItem, 0, len(chunk))
			for _, raw := range chunk {
				item, err := NormalizeItem(raw)
				if err != nil {
					errs[w] = err
					return
				}
				local = append(local, mappedItem{releaseID: item.ReleaseID, item: item})
			}
			partitions[w] = local
		}(w, raws[start:end])
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	// Sequential merge, last write wins at the first-seen position
	position := make(map[int]int, len(raws))
	items := make([]entities.Item, 0, len(raws))
	for _, partition := range partitions {
		for _, mapped := range partition {
			if at, seen := position[mapped.releaseID]; seen {
				items[at] = mapped.item
				continue
			}
			position[mapped.releaseID] = len(items)
			items = append(items, mapped.item)
		}
	}

	return items, nil
}
