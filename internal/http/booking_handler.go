package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tutorschool/msms/internal/service"
)

type BookingHandler struct {
	svc *service.BookingService
}

func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RequestRoutes(r chi.Router) {
	r.Post("/{id}/book", h.book)
}

func (h *BookingHandler) StudentRoutes(r chi.Router) {
	r.Get("/{id}/schedule", h.schedule)
}

func (h *BookingHandler) LessonRoutes(r chi.Router) {
	r.Patch("/{id}", h.updateLesson)
	r.Delete("/{id}", h.deleteLesson)
}

type bookRequest struct {
	TermName      string `json:"term_name"`
	StartDate     string `json:"start_date"` // YYYY-MM-DD
	EndDate       string `json:"end_date"`   // YYYY-MM-DD
	Day           string `json:"day"`        // Monday..Sunday
	Time          string `json:"time"`       // HH:MM
	IntervalWeeks int    `json:"interval_weeks"`
	LessonCount   int    `json:"lesson_count"`
	Duration      int    `json:"duration"`
	Topic         string `json:"topic"`
	Teacher       string `json:"teacher"`
}

func (h *BookingHandler) book(w http.ResponseWriter, r *http.Request) {
	requestID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid start_date", Field: "start_date"})
		return
	}

	end, err := parseDate(req.EndDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid end_date", Field: "end_date"})
		return
	}

	weekday, err := parseWeekday(req.Day)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Field: "day"})
		return
	}

	hour, minute, err := parseTimeOfDay(req.Time)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Field: "time"})
		return
	}

	lessons, err := h.svc.Book(r.Context(), requestID, service.BookParams{
		TermName:      req.TermName,
		StartDate:     start,
		EndDate:       end,
		Weekday:       weekday,
		StartHour:     hour,
		StartMinute:   minute,
		IntervalWeeks: req.IntervalWeeks,
		LessonCount:   req.LessonCount,
		Duration:      req.Duration,
		Topic:         req.Topic,
		Teacher:       req.Teacher,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, lessons)
}

func (h *BookingHandler) schedule(w http.ResponseWriter, r *http.Request) {
	studentID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	lessons, err := h.svc.Schedule(r.Context(), studentID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, lessons)
}

type updateLessonRequest struct {
	Date     string `json:"date"`
	Duration int    `json:"duration"`
	Topic    string `json:"topic"`
	Teacher  string `json:"teacher"`
}

func (h *BookingHandler) updateLesson(w http.ResponseWriter, r *http.Request) {
	lessonID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateLessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid date", Field: "date"})
		return
	}

	lesson, err := h.svc.UpdateLesson(r.Context(), lessonID, date, req.Duration, req.Topic, req.Teacher)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, lesson)
}

func (h *BookingHandler) deleteLesson(w http.ResponseWriter, r *http.Request) {
	lessonID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteLesson(r.Context(), lessonID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

var weekdays = map[string]time.Weekday{
	"Sunday":    time.Sunday,
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
}

// parseWeekday принимает только полные имена с большой буквы,
// как их присылает форма бронирования
func parseWeekday(value string) (time.Weekday, error) {
	weekday, ok := weekdays[value]
	if !ok {
		return 0, fmt.Errorf("invalid day %q", value)
	}
	return weekday, nil
}

// parseTimeOfDay разбирает время вида "HH:MM"
func parseTimeOfDay(value string) (hour, minute int, err error) {
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q", value)
	}
	return parsed.Hour(), parsed.Minute(), nil
}
