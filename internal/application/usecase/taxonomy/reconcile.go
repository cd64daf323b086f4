package taxonomy

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/haanhpham/autopress/internal/domain/taxonomy"
	"github.com/haanhpham/autopress/pkg/logger"
)

var tracer = otel.Tracer("taxonomy_usecase")

// ReconcileUseCase turns the free-form category and tag names of one publish
// request into WordPress term IDs: fetch both indexes (in parallel), resolve
// names, create the tags that resolved to nothing. Categories are a closed
// list curated on the site, so category misses are dropped, never created.
type ReconcileUseCase struct {
	lister  taxonomy.Lister
	creator taxonomy.Creator
	cache   taxonomy.Cache
	siteURL string
	logger  logger.Logger
}

// NewReconcileUseCase wires the orchestrator. cache may be nil, then every
// call fetches fresh.
func NewReconcileUseCase(lister taxonomy.Lister, creator taxonomy.Creator, cache taxonomy.Cache, siteURL string, log logger.Logger) *ReconcileUseCase {
	return &ReconcileUseCase{
		lister:  lister,
		creator: creator,
		cache:   cache,
		siteURL: siteURL,
		logger:  log,
	}
}

type ReconcileInput struct {
	CategoryNames []string
	TagNames      []string
}

// Execute runs one reconciliation. Local failures degrade to fewer matches;
// the returned error is non-nil only when the site's taxonomy listing could
// not be reached at all.
func (uc *ReconcileUseCase) Execute(ctx context.Context, input ReconcileInput) (*taxonomy.ResolutionResult, error) {
	ctx, span := tracer.Start(ctx, "Execute")
	defer span.End()

	result := &taxonomy.ResolutionResult{
		CategoryIDs: []int{},
		TagIDs:      []int{},
	}

	needCategories := len(input.CategoryNames) > 0
	needTags := len(input.TagNames) > 0
	if !needCategories && !needTags {
		return result, nil
	}

	// The two kinds write to disjoint indexes, so they fetch in parallel.
	var (
		wg             sync.WaitGroup
		catIx, tagIx   taxonomy.Index
		catErr, tagErr error
	)
	if needCategories {
		wg.Add(1)
		go func() {
			defer wg.Done()
			catIx, catErr = uc.loadIndex(ctx, taxonomy.KindCategories)
		}()
	}
	if needTags {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tagIx, tagErr = uc.loadIndex(ctx, taxonomy.KindTags)
		}()
	}
	wg.Wait()

	// Only total unreachability is a hard failure: every requested listing
	// failed on its first page. A single failed kind degrades below.
	if hardFailure(needCategories, catErr, needTags, tagErr) {
		err := catErr
		if err == nil {
			err = tagErr
		}
		span.RecordError(err)
		return nil, fmt.Errorf("taxonomy listing unreachable: %w", err)
	}

	if needCategories {
		if catErr != nil {
			uc.logger.Warn("category listing failed, resolve with empty index", zap.Error(catErr))
			catIx = taxonomy.Index{}
		}
		res := taxonomy.ResolveIDs(input.CategoryNames, catIx)
		result.CategoryIDs = dedupe(res.IDs)
		result.UnmatchedCategories = res.Unmatched
	}

	if needTags {
		if tagErr != nil {
			uc.logger.Warn("tag listing failed, resolve with empty index", zap.Error(tagErr))
			tagIx = taxonomy.Index{}
		}
		res := taxonomy.ResolveIDs(input.TagNames, tagIx)
		tagIDs := res.IDs

		if len(res.Unmatched) > 0 {
			created := uc.creator.CreateTags(ctx, res.Unmatched)
			tagIDs = append(tagIDs, created...)
		}
		result.TagIDs = dedupe(tagIDs)
	}

	span.SetAttributes(
		attribute.Int("category_ids", len(result.CategoryIDs)),
		attribute.Int("tag_ids", len(result.TagIDs)),
		attribute.Int("unmatched_categories", len(result.UnmatchedCategories)),
	)
	return result, nil
}

func (uc *ReconcileUseCase) loadIndex(ctx context.Context, kind taxonomy.Kind) (taxonomy.Index, error) {
	if uc.cache != nil {
		if ix, ok := uc.cache.Get(ctx, uc.siteURL, kind); ok {
			return ix, nil
		}
	}

	ix, err := uc.lister.FetchAllTerms(ctx, kind)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.Set(ctx, uc.siteURL, kind, ix)
	}
	return ix, nil
}

func hardFailure(needCategories bool, catErr error, needTags bool, tagErr error) bool {
	if needCategories && catErr == nil {
		return false
	}
	if needTags && tagErr == nil {
		return false
	}
	return true
}

// dedupe keeps the first occurrence of each id, preserving order. Two input
// names can legitimately land on the same term; the post payload wants the
// id once.
func dedupe(ids []int) []int {
	out := make([]int, 0, len(ids))
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
