package search

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/seanblong/transcriptsearch/internal/corpus"
	"github.com/seanblong/transcriptsearch/internal/metrics"
	"github.com/seanblong/transcriptsearch/internal/normalize"
	"github.com/seanblong/transcriptsearch/pkg/models"
)

// PageSize is the number of results per page.
const PageSize = 12

// Corpus is the read side of corpus.Corpus the service depends on.
type Corpus interface {
	List() ([]corpus.File, error)
	Segments(f corpus.File) ([]models.Segment, error)
}

// Service scans the corpus on every call; it holds no per-request state
// and is safe for concurrent use.
type Service struct {
	Corpus  Corpus
	Links   Links
	Workers int
	Metrics *metrics.Metrics
}

// NewService creates a new search service over the given corpus
func NewService(c Corpus, links Links, workers int, m *metrics.Metrics) *Service {
	return &Service{
		Corpus:  c,
		Links:   links,
		Workers: workers,
		Metrics: m,
	}
}

// Search returns one page of the segments whose normalized text contains
// the normalized query. page < 1 is treated as 1; pages past the end are
// empty but still carry the totals.
func (s *Service) Search(ctx context.Context, query string, page int) (models.Page, error) {
	start := time.Now()
	all, err := s.Matches(ctx, query)
	switch {
	case errors.Is(err, ErrQueryRequired):
		s.Metrics.ObserveSearch(metrics.OutcomeClientError, time.Since(start), 0)
		return models.Page{}, err
	case err != nil:
		s.Metrics.ObserveSearch(metrics.OutcomeError, time.Since(start), 0)
		return models.Page{}, err
	}
	s.Metrics.ObserveSearch(metrics.OutcomeOK, time.Since(start), len(all))
	return Paginate(all, page), nil
}

// Matches returns every match in file order, then segment order.
func (s *Service) Matches(ctx context.Context, query string) ([]models.SearchResult, error) {
	if query == "" {
		return nil, ErrQueryRequired
	}
	needle := normalize.Text(query)

	files, err := s.Corpus.List()
	if err != nil {
		return nil, err
	}

	slots, err := s.scan(ctx, files, needle)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, m := range slots {
		total += len(m)
	}
	all := make([]models.SearchResult, 0, total)
	for _, m := range slots {
		all = append(all, m...)
	}

	log.Debug().Str("query", query).Int("files", len(files)).Int("matches", total).Msg("corpus scanned")
	return all, nil
}

// scan filters every file with a bounded pool of workers. Each file's
// matches land in the slot at its listing index, so the caller can fold
// them in listing order whatever order the reads finish in.
func (s *Service) scan(ctx context.Context, files []corpus.File, needle string) ([][]models.SearchResult, error) {
	slots := make([][]models.SearchResult, len(files))
	if len(files) == 0 {
		return slots, nil
	}

	scanCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	numWorkers := s.workers(len(files))
	workChan := make(chan int)
	errorChan := make(chan error, 1)

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range workChan {
				matches, err := s.scanFile(files[idx], needle)
				if err != nil {
					select {
					case errorChan <- err:
					default:
					}
					cancel()
					continue
				}
				slots[idx] = matches
			}
		}()
	}

feed:
	for i := range files {
		select {
		case workChan <- i:
		case <-scanCtx.Done():
			break feed
		}
	}
	close(workChan)
	wg.Wait()

	select {
	case err := <-errorChan:
		return nil, err
	default:
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slots, nil
}

// scanFile returns the matches of one file. A file with malformed content
// is logged and yields no matches.
func (s *Service) scanFile(f corpus.File, needle string) ([]models.SearchResult, error) {
	segs, err := s.Corpus.Segments(f)
	if err != nil {
		var parseErr *corpus.ParseError
		if errors.As(err, &parseErr) {
			log.Warn().Err(parseErr.Err).Str("file", parseErr.File).Msg("skipping unparseable corpus file")
			s.Metrics.ParseFailed()
			return nil, nil
		}
		return nil, err
	}
	s.Metrics.FileScanned()

	var out []models.SearchResult
	for _, seg := range segs {
		if !strings.Contains(normalize.Text(seg.Text), needle) {
			continue
		}
		out = append(out, models.SearchResult{
			Text:        seg.Text,
			FileName:    f.Meta.Title,
			YoutubeLink: s.Links.Video(f.Meta.SourceID, seg.Start),
			Thumbnail:   s.Links.Thumbnail(f.Meta.SourceID),
			Date:        f.Meta.Date,
		})
	}
	return out, nil
}

func (s *Service) workers(files int) int {
	n := s.Workers
	if n <= 0 {
		n = runtime.NumCPU()
		if n > 8 {
			n = 8
		}
	}
	if n > files {
		n = files
	}
	return n
}

// Paginate slices one page out of the full match list.
func Paginate(all []models.SearchResult, page int) models.Page {
	if page < 1 {
		page = 1
	}
	total := len(all)
	p := models.Page{
		Results:      []models.SearchResult{},
		TotalResults: total,
		TotalPages:   (total + PageSize - 1) / PageSize,
		CurrentPage:  page,
	}
	if page-1 >= p.TotalPages {
		return p
	}
	from := (page - 1) * PageSize
	to := from + PageSize
	if to > total {
		to = total
	}
	p.Results = all[from:to]
	return p
}
