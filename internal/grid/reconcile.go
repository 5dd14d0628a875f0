package grid

import "github.com/blockday/blockday/internal/models"

// BlockUpdate instructs the caller to refresh a surviving block's end time.
// Planned, Actual, and Status are deliberately absent: reconciliation never
// touches user-entered data on a block whose slot survives.
type BlockUpdate struct {
	Block   models.TimeBlock
	EndTime string
}

// Plan is the create/update/delete set produced by Reconcile. The three sets
// target disjoint slot keys, so they can be applied in any order.
type Plan struct {
	Update []BlockUpdate
	Create []Slot
	Delete []models.TimeBlock
}

// Empty reports whether the plan requires no persistence calls at all.
func (p Plan) Empty() bool {
	return len(p.Update) == 0 && len(p.Create) == 0 && len(p.Delete) == 0
}

// Reconcile merges an existing block set with a newly generated grid. Identity
// is the StartTime string, not the persisted ID: a block survives iff a
// desired slot starts at the same wall-clock minute. Surviving blocks get an
// end-time refresh (always emitted, even when unchanged, so that any drift in
// stored end times self-heals on the next settings save); slots with no
// existing block become creations; blocks whose slot fell out of the grid
// become deletions.
func Reconcile(existing []models.TimeBlock, desired []Slot) Plan {
	byStart := make(map[string]models.TimeBlock, len(existing))
	for _, b := range existing {
		byStart[b.StartTime] = b
	}

	var plan Plan
	desiredSet := make(map[string]struct{}, len(desired))
	for _, slot := range desired {
		desiredSet[slot.Start] = struct{}{}
		if b, ok := byStart[slot.Start]; ok {
			plan.Update = append(plan.Update, BlockUpdate{Block: b, EndTime: slot.End})
		} else {
			plan.Create = append(plan.Create, slot)
		}
	}

	for _, b := range existing {
		if _, ok := desiredSet[b.StartTime]; !ok {
			plan.Delete = append(plan.Delete, b)
		}
	}

	return plan
}
