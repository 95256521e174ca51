// Package schedule содержит чистую календарную арифметику
// для планирования серий регулярных занятий.
package schedule

import "time"

// NextWeekday возвращает ближайшую дату с нужным днём недели.
// Если date уже приходится на weekday, дата возвращается без сдвига.
func NextWeekday(date time.Time, weekday time.Weekday) time.Time {
	for date.Weekday() != weekday {
		date = date.AddDate(0, 0, 1)
	}
	return date
}

// Series генерирует ровно count дат занятий: первая - ближайший weekday
// начиная со start, каждая следующая через intervalWeeks недель.
// Проверка, что даты умещаются до конца семестра, остаётся за вызывающим.
func Series(start time.Time, weekday time.Weekday, intervalWeeks, count int) []time.Time {
	dates := make([]time.Time, 0, count)
	date := NextWeekday(start, weekday)
	for i := 0; i < count; i++ {
		dates = append(dates, date)
		date = date.AddDate(0, 0, intervalWeeks*7)
	}
	return dates
}

// Fits проверяет умещаются ли count занятий между start и end включительно.
// Если уже первое занятие выпадает за end, не умещается ни одно.
func Fits(start, end time.Time, count, intervalWeeks int, weekday time.Weekday) bool {
	date := NextWeekday(start, weekday)
	for i := 0; i < count; i++ {
		if date.After(end) {
			return false
		}
		date = date.AddDate(0, 0, intervalWeeks*7)
	}
	return true
}

// MaxFitting считает сколько из первых requested занятий умещается до end.
// Используется только для подсказки "умещается не больше N", бронирование
// никогда не урезается молча.
func MaxFitting(start, end time.Time, requested, intervalWeeks int, weekday time.Weekday) int {
	date := NextWeekday(start, weekday)
	fits := 0
	for i := 0; i < requested; i++ {
		if date.After(end) {
			break
		}
		fits++
		date = date.AddDate(0, 0, intervalWeeks*7)
	}
	return fits
}
