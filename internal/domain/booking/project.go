package booking

import "time"

// Project は承認済み予約の一覧から、アイテムの直近終了予約と次回予約を導出する
// last: end <= now のうち end が最大のもの（同値はID降順）
// next: start > now のうち start が最小のもの（同値はID昇順）
// pending / rejected の予約は射影に決して含めない
// 結果は保存せず、読み取りのたびに再計算する
func Project(bookings []*Booking, now time.Time) (last, next *Booking) {
	for _, b := range bookings {
		if b.Status != StatusApproved {
			continue
		}
		if !b.End.After(now) {
			if last == nil || b.End.After(last.End) || (b.End.Equal(last.End) && b.ID > last.ID) {
				last = b
			}
		}
		if b.Start.After(now) {
			if next == nil || b.Start.Before(next.Start) || (b.Start.Equal(next.Start) && b.ID < next.ID) {
				next = b
			}
		}
	}
	return last, next
}
