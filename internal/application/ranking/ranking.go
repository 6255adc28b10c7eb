// Package ranking reports how posts relate to their owning users.
package ranking

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/lllypuk/userhub/internal/application/appcore"
	"github.com/lllypuk/userhub/internal/domain/post"
)

// Mode selects which aggregation a ranking request runs
type Mode string

const (
	// ModeLiteral joins users against each post and reports the join size per title
	ModeLiteral Mode = "literal"

	// ModeTopK groups posts by owner and reports the top users by post count
	ModeTopK Mode = "top_k"

	// DefaultMaxTop caps the top parameter in top_k mode
	DefaultMaxTop = 100
)

// ParseMode converts a configuration value to a Mode. Empty means literal.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeLiteral:
		return ModeLiteral, nil
	case ModeTopK:
		return ModeTopK, nil
	default:
		return "", fmt.Errorf("unknown ranking mode %q", s)
	}
}

// TopQuery - compute the ranking; Top is the raw path value
type TopQuery struct {
	Top string
}

func (q TopQuery) QueryName() string { return "TopUsers" }

// Result holds whichever row shape the configured mode produced.
// Exactly one of Titles and Users is non-nil.
type Result struct {
	Mode   Mode
	Titles []post.TitleCount
	Users  []post.UserCount
}

// Rows returns the populated row slice for serialization
func (r Result) Rows() any {
	if r.Mode == ModeTopK {
		return r.Users
	}
	return r.Titles
}

var (
	_ appcore.Query                     = TopQuery{}
	_ appcore.UseCase[TopQuery, Result] = (*ComputeUseCase)(nil)
)

// ComputeUseCase runs the post aggregation
type ComputeUseCase struct {
	aggregator post.Aggregator
	mode       Mode
	maxTop     int
}

// NewComputeUseCase creates a new ComputeUseCase. maxTop <= 0 uses DefaultMaxTop.
func NewComputeUseCase(aggregator post.Aggregator, mode Mode, maxTop int) *ComputeUseCase {
	if maxTop <= 0 {
		maxTop = DefaultMaxTop
	}
	if mode == "" {
		mode = ModeLiteral
	}
	return &ComputeUseCase{aggregator: aggregator, mode: mode, maxTop: maxTop}
}

// Mode returns the configured mode
func (uc *ComputeUseCase) Mode() Mode {
	return uc.mode
}

// Execute runs the query
func (uc *ComputeUseCase) Execute(ctx context.Context, query TopQuery) (Result, error) {
	if uc.mode != ModeTopK {
		// top is accepted and ignored
		rows, err := uc.aggregator.CountJoinedUsersByTitle(ctx)
		if err != nil {
			return Result{}, fmt.Errorf("%w: %w", appcore.ErrStoreFailure, err)
		}
		if rows == nil {
			rows = []post.TitleCount{}
		}
		return Result{Mode: ModeLiteral, Titles: rows}, nil
	}

	top, err := uc.parseTop(query.Top)
	if err != nil {
		return Result{}, fmt.Errorf("validation failed: %w", err)
	}

	rows, err := uc.aggregator.TopUsersByPostCount(ctx, top)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", appcore.ErrStoreFailure, err)
	}
	if rows == nil {
		rows = []post.UserCount{}
	}
	return Result{Mode: ModeTopK, Users: rows}, nil
}

func (uc *ComputeUseCase) parseTop(raw string) (int, error) {
	if err := appcore.ValidateRequired("top", raw); err != nil {
		return 0, err
	}
	top, err := strconv.Atoi(raw)
	if err != nil {
		return 0, appcore.NewValidationError("top", "must be an integer")
	}
	if err = appcore.ValidateRange("top", top, 1, uc.maxTop); err != nil {
		return 0, err
	}
	return top, nil
}
