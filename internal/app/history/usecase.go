package history

import (
	"context"
	"errors"

	"wildbound/internal/app/ports"
	"wildbound/internal/app/session"
	"wildbound/internal/domain/battle"
)

const (
	DefaultLimit = 20
	MaxLimit     = 200
)

var ErrInvalidRequest = errors.New("invalid history request")

type UseCase struct {
	Records ports.BattleRecordRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	slot, err := session.NormalizeSlot(req.Slot)
	if err != nil {
		return Response{}, ErrInvalidRequest
	}
	if req.EndedFrom > 0 && req.EndedTo > 0 && req.EndedFrom > req.EndedTo {
		return Response{}, ErrInvalidRequest
	}
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	records, err := u.Records.ListBySlot(ctx, slot, limit)
	if err != nil {
		return Response{}, err
	}
	records = filterByTimeWindow(records, req.EndedFrom, req.EndedTo)
	return Response{Slot: slot, Records: records, Summary: summarize(records)}, nil
}

func filterByTimeWindow(records []ports.BattleRecord, from, to int64) []ports.BattleRecord {
	if from <= 0 && to <= 0 {
		return records
	}
	out := make([]ports.BattleRecord, 0, len(records))
	for _, rec := range records {
		ts := rec.EndedAt.Unix()
		if from > 0 && ts < from {
			continue
		}
		if to > 0 && ts > to {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func summarize(records []ports.BattleRecord) Summary {
	var s Summary
	for _, rec := range records {
		switch battle.Outcome(rec.Outcome) {
		case battle.OutcomeWon:
			s.Won++
			if rec.IsBoss {
				s.Bosses++
			}
		case battle.OutcomeLost:
			s.Lost++
		case battle.OutcomeRan:
			s.Ran++
		case battle.OutcomeCaptured:
			s.Captured++
		}
	}
	return s
}
