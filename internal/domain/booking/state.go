package booking

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// State は予約一覧の絞り込み状態を表す
// 時間軸（CURRENT/PAST/FUTURE）とステータス（PENDING/REJECTED）が混在する
// 一つの分類軸としてAPIに公開される
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StatePending  State = "PENDING"
	StateRejected State = "REJECTED"
)

// ParseState は状態トークンを解釈する（大文字小文字を区別しない）
// 空文字は ALL とみなし、未知のトークンはエラー
func ParseState(s string) (State, error) {
	if s == "" {
		return StateAll, nil
	}
	state := State(strings.ToUpper(s))
	switch state {
	case StateAll, StateCurrent, StatePast, StateFuture, StatePending, StateRejected:
		return state, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownState, s)
	}
}

// Matches は予約が now 時点でこの状態に分類されるかを返す
func (s State) Matches(b *Booking, now time.Time) bool {
	switch s {
	case StateAll:
		return true
	case StateCurrent:
		return b.InEffectAt(now)
	case StatePast:
		return b.EndedBefore(now)
	case StateFuture:
		return b.StartsAfter(now)
	case StatePending:
		return b.Status == StatusPending
	case StateRejected:
		return b.Status == StatusRejected
	default:
		return false
	}
}

// Viewpoint は一覧の視点を表す
// 予約した側（booker）と、予約されたアイテムの所有者側（owner）
type Viewpoint string

const (
	ViewpointBooker Viewpoint = "booker"
	ViewpointOwner  Viewpoint = "owner"
)

// SortByStartDesc は開始時刻の降順に並べ替える
// ページネーションのオフセットが意味を持つよう、同時刻はID降順で安定させる
func SortByStartDesc(bookings []*Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		if bookings[i].Start.Equal(bookings[j].Start) {
			return bookings[i].ID > bookings[j].ID
		}
		return bookings[i].Start.After(bookings[j].Start)
	})
}

// FilterByState は now 時点の分類で予約を絞り込む
// now は呼び出しごとに一度だけ評価し、要素間で境界がずれないようにする
func FilterByState(bookings []*Booking, state State, now time.Time) []*Booking {
	if state == StateAll {
		return bookings
	}
	filtered := make([]*Booking, 0, len(bookings))
	for _, b := range bookings {
		if state.Matches(b, now) {
			filtered = append(filtered, b)
		}
	}
	return filtered
}

// Paginate は from 件をスキップして最大 size 件を返す
func Paginate(bookings []*Booking, from, size int) []*Booking {
	if from >= len(bookings) {
		return []*Booking{}
	}
	end := from + size
	if end > len(bookings) {
		end = len(bookings)
	}
	return bookings[from:end]
}
