package engine

import (
	"fmt"
)

// TurnPlan is a drawn but uncommitted turn. Plan stages Target as the
// state's pending position so callers can show where the player is about
// to go before calling Commit.
type TurnPlan struct {
	Turn      int
	Outcome   Outcome
	Forced    bool
	Head      HeadKind
	Resolved  HeadKind
	Actual    Direction
	Announced Direction
	From      Position
	Target    Position
	Banned    []Direction // movement bans at From, before any lie extension
	DrawBans  []Direction // directions excluded from the actual draw
	Trait     string
}

// Lying reports whether the planned head lies.
func (p *TurnPlan) Lying() bool {
	return p.Resolved == Lie
}

// Plan draws the next turn without changing the position. A banned forced
// direction yields a plan with OutcomeIllegalForcedMove and no head. The
// plan replaces any earlier one staged for CommitPending.
func (e *GameEngine) Plan(forced *Direction) (*TurnPlan, error) {
	if e.state.Won {
		return nil, ErrGameOver
	}
	if forced != nil && !forced.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDirection, int(*forced))
	}

	from := e.state.Position
	bans := e.state.BannedDirections()
	plan := &TurnPlan{
		Turn:   e.state.Turn + 1,
		From:   from,
		Target: from,
		Banned: bans,
	}

	if forced != nil {
		plan.Forced = true
		plan.Actual = *forced
		if containsDirection(bans, *forced) {
			plan.Outcome = OutcomeIllegalForcedMove
			plan.Turn = e.state.Turn
			e.state.Pending = nil
			e.staged = plan
			return plan, nil
		}
	}

	// Repeat needs a previous head to copy.
	var excludeHeads []HeadKind
	if e.state.Turn == 0 {
		excludeHeads = append(excludeHeads, Repeat)
	}
	head, err := e.heads.Select(excludeHeads...)
	if err != nil {
		return nil, fmt.Errorf("draw head: %w", err)
	}
	resolved, err := Resolve(head, e.state.LastResolved)
	if err != nil {
		return nil, fmt.Errorf("resolve head: %w", err)
	}
	plan.Head = head
	plan.Resolved = resolved

	plan.DrawBans = bans
	if resolved == Lie {
		plan.DrawBans = ExtendForLie(bans)
	}

	if !plan.Forced {
		actual, err := e.directions.Select(plan.DrawBans...)
		if err != nil {
			return nil, fmt.Errorf("draw direction: %w", err)
		}
		plan.Actual = actual
	}

	plan.Announced = announce(plan.Actual, resolved, bans)
	plan.Target = from.Move(plan.Actual)
	plan.Outcome = OutcomeMoved

	if plan.Trait, err = e.describeHead(head); err != nil {
		return nil, err
	}

	target := plan.Target
	e.state.Pending = &target
	e.staged = plan
	return plan, nil
}

// announce derives what the head says. A lying head names the inverse of
// the actual move, or nothing when that inverse is banned where the player
// stood.
func announce(actual Direction, resolved HeadKind, bans []Direction) Direction {
	if resolved != Lie {
		return actual
	}
	inv := Invert(actual)
	if containsDirection(bans, inv) {
		return NoDirection
	}
	return inv
}

// Commit applies a plan returned by the last Plan call.
func (e *GameEngine) Commit(plan *TurnPlan) (*TurnResult, error) {
	if plan == nil {
		return nil, ErrNilPlan
	}
	if e.state.Won {
		return nil, ErrGameOver
	}
	if plan.From != e.state.Position {
		return nil, fmt.Errorf("%w: planned from (%d,%d), at (%d,%d)",
			ErrStalePlan, plan.From.Row, plan.From.Col, e.state.Position.Row, e.state.Position.Col)
	}

	if plan.Outcome == OutcomeIllegalForcedMove {
		e.state.Pending = nil
		e.staged = nil
		e.state.Rejected++
		result := &TurnResult{
			Turn:    e.state.Turn,
			Outcome: OutcomeIllegalForcedMove,
			Actual:  plan.Actual,
			Forced:  true,
			From:    plan.From,
			To:      plan.From,
			Banned:  plan.Banned,
			Message: e.illegalMoveMessage(plan.Actual),
		}
		e.state.LastTurn = result
		e.state.Message = result.Message
		return result, nil
	}

	if plan.Turn != e.state.Turn+1 {
		return nil, fmt.Errorf("%w: planned turn %d, next is %d", ErrStalePlan, plan.Turn, e.state.Turn+1)
	}
	if !e.state.CanMoveTo(plan.Target) {
		return nil, fmt.Errorf("%w: target (%d,%d) is off the grid", ErrStalePlan, plan.Target.Row, plan.Target.Col)
	}

	e.state.Position = plan.Target
	e.state.Pending = nil
	e.staged = nil
	e.state.AddTurnToHistory(TurnRecord{
		Turn:      plan.Turn,
		Head:      plan.Head,
		Resolved:  plan.Resolved,
		Announced: plan.Announced,
		Actual:    plan.Actual,
		From:      plan.From,
		To:        plan.Target,
		Forced:    plan.Forced,
		Timestamp: e.now().Unix(),
	})

	result := &TurnResult{
		Turn:        plan.Turn,
		Outcome:     OutcomeMoved,
		Head:        plan.Head,
		HeadLabel:   e.config.HeadLabel(plan.Head),
		Resolved:    plan.Resolved,
		Lying:       plan.Lying(),
		Actual:      plan.Actual,
		Announced:   plan.Announced,
		Forced:      plan.Forced,
		From:        plan.From,
		To:          plan.Target,
		Banned:      plan.Banned,
		Description: plan.Trait,
	}
	if plan.Announced != NoDirection {
		result.AnnouncedLabel = e.config.DirectionLabel(plan.Announced)
	}

	if e.state.AtGoal(plan.Target) {
		e.state.Won = true
		result.Won = true
		result.Message = fmt.Sprintf(e.config.Messages.Victory, plan.Turn)
	} else {
		result.Message = e.announcementMessage(result)
	}

	e.state.LastTurn = result
	e.state.Message = result.Message
	return result, nil
}

// CommitPending commits the plan staged by the last Plan call.
func (e *GameEngine) CommitPending() (*TurnResult, error) {
	if e.staged == nil {
		return nil, ErrNoPendingPlan
	}
	return e.Commit(e.staged)
}

// PendingPlan returns the staged plan, or nil if there is none.
func (e *GameEngine) PendingPlan() *TurnPlan {
	return e.staged
}

func (e *GameEngine) announcementMessage(result *TurnResult) string {
	msgs := e.config.Messages
	if !result.HasAnnouncement() {
		if msgs.NoAnnouncement != "" {
			return msgs.NoAnnouncement
		}
		return "The head has nothing to say."
	}
	if msgs.Announce != "" {
		return fmt.Sprintf(msgs.Announce, result.AnnouncedLabel)
	}
	return fmt.Sprintf("The head says: %s", result.AnnouncedLabel)
}

func (e *GameEngine) illegalMoveMessage(d Direction) string {
	label := e.config.DirectionLabel(d)
	if e.config.Messages.IllegalMove != "" {
		return fmt.Sprintf(e.config.Messages.IllegalMove, label)
	}
	return fmt.Sprintf("Cannot move %s from here", label)
}
