package main

import (
	"time"

	"gymhub/internal/models"
)

const breakBetweenSessions = 15 * time.Minute

// ScheduleOptions задают сетку расписания
type ScheduleOptions struct {
	From      time.Time
	Days      int
	PerDay    int
	StartHour int
}

// PlanSessions распределяет занятия по залам и тренерам на Days дней начиная
// со следующего дня после From. Activities and trainers rotate so neighbouring
// rooms do not run the same class at the same time.
func PlanSessions(opts ScheduleOptions, activities []models.Activity, roomIDs, trainerIDs []int64) []models.Session {
	if len(activities) == 0 || len(roomIDs) == 0 || len(trainerIDs) == 0 || opts.Days <= 0 || opts.PerDay <= 0 {
		return nil
	}

	firstDay := time.Date(opts.From.Year(), opts.From.Month(), opts.From.Day(), 0, 0, 0, 0, opts.From.Location()).AddDate(0, 0, 1)

	sessions := make([]models.Session, 0, opts.Days*len(roomIDs)*opts.PerDay)
	n := 0
	for day := 0; day < opts.Days; day++ {
		dayStart := firstDay.AddDate(0, 0, day).Add(time.Duration(opts.StartHour) * time.Hour)

		for r, roomID := range roomIDs {
			at := dayStart
			for slot := 0; slot < opts.PerDay; slot++ {
				activity := activities[(day+r+slot)%len(activities)]
				sessions = append(sessions, models.Session{
					Datetime:      at,
					RoomID:        roomID,
					ActivityID:    activity.ID,
					TrainerUserID: trainerIDs[n%len(trainerIDs)],
				})
				n++
				at = at.Add(time.Duration(activity.Duration)*time.Minute + breakBetweenSessions)
			}
		}
	}
	return sessions
}
