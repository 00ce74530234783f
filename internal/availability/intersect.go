package availability

import (
	"sort"
	"time"

	"github.com/maxturnos/turnos-service/pkg/types"
)

// IntersectAcross пересечение множеств времени по всем спискам.
// Результат отсортирован по минутам и без повторов. Если хотя бы один список пуст
// (или списков нет), результат пуст. Некорректные значения отбрасываются.
func IntersectAcross[T ~string](lists [][]T) []T {
	if len(lists) == 0 {
		return []T{}
	}

	counts := make(map[int]int)
	for _, list := range lists {
		if len(list) == 0 {
			return []T{}
		}
		seen := make(map[int]struct{}, len(list))
		for _, s := range list {
			m := types.TimeString(s).Minutes()
			if m < 0 {
				continue
			}
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			counts[m]++
		}
	}

	minutes := make([]int, 0, len(counts))
	for m, c := range counts {
		if c == len(lists) {
			minutes = append(minutes, m)
		}
	}
	return fromMinutes[T](minutes)
}

// UnionSorted объединение множеств времени, отсортированное по минутам
func UnionSorted[T ~string](lists [][]T) []T {
	set := make(map[int]struct{})
	for _, list := range lists {
		for _, s := range list {
			if m := types.TimeString(s).Minutes(); m >= 0 {
				set[m] = struct{}{}
			}
		}
	}
	minutes := make([]int, 0, len(set))
	for m := range set {
		minutes = append(minutes, m)
	}
	return fromMinutes[T](minutes)
}

// FilterWindow оставляет время в диапазоне [minOpening, closing] включительно
func FilterWindow[T ~string](slots []T, minOpening, closing string) []T {
	lo, okLo := TimeToMinutes(minOpening)
	hi, okHi := TimeToMinutes(closing)
	if !okLo {
		lo = 0
	}
	if !okHi {
		hi = 24*60 - 1
	}

	result := make([]T, 0, len(slots))
	for _, s := range slots {
		m := types.TimeString(s).Minutes()
		if m >= lo && m <= hi {
			result = append(result, s)
		}
	}
	return result
}

// ReferenceDate самая ранняя из выбранных дат; по ней считается время закрытия
// при массовых операциях над несколькими датами
func ReferenceDate(dates []time.Time) (time.Time, bool) {
	if len(dates) == 0 {
		return time.Time{}, false
	}
	ref := dates[0]
	for _, d := range dates[1:] {
		if StartOfDay(d).Before(StartOfDay(ref)) {
			ref = d
		}
	}
	return ref, true
}

func fromMinutes[T ~string](minutes []int) []T {
	sort.Ints(minutes)
	result := make([]T, len(minutes))
	for i, m := range minutes {
		result[i] = T(types.FromMinutes(m))
	}
	return result
}
