package clock

import "time"

// Clock は現在時刻を供給するインターフェース
// 時刻判定ロジックをテストで決定的にするため、time.Now() を直接呼ばずに注入する
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// NewSystem はシステム時刻を返すClockを作成する
func NewSystem() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

type fixedClock struct {
	now time.Time
}

// NewFixed は常に同じ時刻を返すClockを作成する（テスト用）
func NewFixed(t time.Time) Clock {
	return fixedClock{now: t.UTC()}
}

func (f fixedClock) Now() time.Time {
	return f.now
}
