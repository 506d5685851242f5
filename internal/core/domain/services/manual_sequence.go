package services

import (
	"errors"
	"fmt"
	"sort"

	"medrush/internal/core/domain/model/kernel"
)

// Sentinel errors for manual sequence computation. Use errors.Is to classify.
var (
	ErrDuplicateExplicitPosition = errors.New("duplicate explicit position")
	ErrInsufficientFreePositions = errors.New("insufficient free positions")
	ErrDuplicateComputedPosition = errors.New("duplicate computed position")
)

// DuplicateExplicitPositionError reports a position value requested for two
// or more distinct items. The whole reorder request is rejected.
type DuplicateExplicitPositionError struct {
	Position int
}

func (e *DuplicateExplicitPositionError) Error() string {
	return fmt.Sprintf("%s: %d requested for multiple items", ErrDuplicateExplicitPosition, e.Position)
}

func (e *DuplicateExplicitPositionError) Unwrap() error {
	return ErrDuplicateExplicitPosition
}

// DuplicateComputedPositionError reports that the computed assignment ended
// up with colliding positions. Unreachable for well-formed input; it guards
// against caller misuse such as explicit positions referencing items outside
// the sequence.
type DuplicateComputedPositionError struct {
	Positions []int
}

func (e *DuplicateComputedPositionError) Error() string {
	return fmt.Sprintf("%s: computed positions %v collide", ErrDuplicateComputedPosition, e.Positions)
}

func (e *DuplicateComputedPositionError) Unwrap() error {
	return ErrDuplicateComputedPosition
}

// SequencedItem is one entry of a computed ordering.
type SequencedItem struct {
	ID       kernel.UUID
	Position int
}

// ManualSequenceCalculator computes a full re-ordering of a sequence given a
// partial map of explicit new positions. It is a pure domain service: it only
// computes numbers, persistence of the result belongs to the caller.
//
// Items without an explicit position keep their original relative order and
// fill the lowest free positions. Explicit positions may lie outside the
// nominal [base..base+N-1] range ("move far beyond the end"); the calculator
// tolerates this and only guarantees that no two items share a position.
type ManualSequenceCalculator struct {
	basePosition int
}

// NewManualSequenceCalculator creates a calculator numbering positions from 1.
func NewManualSequenceCalculator() ManualSequenceCalculator {
	return ManualSequenceCalculator{basePosition: 1}
}

// NewManualSequenceCalculatorFrom creates a calculator numbering positions
// from basePosition.
func NewManualSequenceCalculatorFrom(basePosition int) ManualSequenceCalculator {
	return ManualSequenceCalculator{basePosition: basePosition}
}

// ComputeOrder assigns a position to every item and returns the result sorted
// ascending by position.
//
// Items appearing as keys of explicitPositions receive their requested
// position; all other items receive the free positions of
// [base..base+N-1] in ascending order, walking the items in their original
// relative order. The computation fails as a whole, with no partial result,
// when a position is explicitly requested twice, when the free positions run
// out, or when the final assignment contains a collision.
func (c ManualSequenceCalculator) ComputeOrder(
	itemIDs []kernel.UUID,
	explicitPositions map[kernel.UUID]int,
) ([]SequencedItem, error) {
	if len(itemIDs) == 0 {
		return []SequencedItem{}, nil
	}

	// Positions claimed explicitly; a value claimed twice is a hard error.
	claimed := make(map[int]bool, len(explicitPositions))
	for _, position := range explicitPositions {
		if claimed[position] {
			return nil, &DuplicateExplicitPositionError{Position: position}
		}
		claimed[position] = true
	}

	// Free positions of the nominal range, ascending.
	free := make([]int, 0, len(itemIDs))
	for p := c.basePosition; p < c.basePosition+len(itemIDs); p++ {
		if !claimed[p] {
			free = append(free, p)
		}
	}

	result := make([]SequencedItem, 0, len(itemIDs))
	for _, id := range itemIDs {
		position, hasExplicit := explicitPositions[id]
		if !hasExplicit {
			if len(free) == 0 {
				return nil, ErrInsufficientFreePositions
			}
			position = free[0]
			free = free[1:]
		}
		result = append(result, SequencedItem{ID: id, Position: position})
	}

	// Defensive: steps above cannot collide for well-formed input, but an
	// explicit map carrying ids outside itemIDs can poison the free list.
	seen := make(map[int]bool, len(result))
	for _, item := range result {
		if seen[item.Position] {
			positions := make([]int, 0, len(result))
			for _, it := range result {
				positions = append(positions, it.Position)
			}
			return nil, &DuplicateComputedPositionError{Positions: positions}
		}
		seen[item.Position] = true
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Position < result[j].Position
	})

	return result, nil
}
